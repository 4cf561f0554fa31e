package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/shop-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product catalogue.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /product/list.
//
// @Summary      List all products
// @Tags         product
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  productListResponse
// @Failure      401  {object}  errorResponse
// @Router       /product/list [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Message: "list", Products: toProductResponses(products)})
}

// Add handles POST /product/add. The seller is always the caller.
//
// @Summary      Add a product
// @Tags         product
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      productRequest  true   "Product details"
// @Success      201              {object}  productEnvelope
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /product/add [post]
func (h *ProductHandler) Add(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Product:        req.toInput(),
		SellerID:       principal.ID,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, productEnvelope{Message: "product added successfully", Product: toProductResponse(product)})
}

// Delete handles DELETE /product/delete/:id.
//
// @Summary      Delete an owned product
// @Tags         product
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /product/delete/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal.ID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "deleted"})
}

// Edit handles PUT /product/edit/:id. The full payload is required.
//
// @Summary      Edit an owned product
// @Tags         product
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /product/edit/{id} [put]
func (h *ProductHandler) Edit(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), principal.ID, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productEnvelope{Message: "edited successfully", Product: toProductResponse(product)})
}

// Detail handles GET /product/detail/:id.
//
// @Summary      Get a product
// @Tags         product
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /product/detail/{id} [get]
func (h *ProductHandler) Detail(c echo.Context) error {
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productEnvelope{Message: "product detail", Product: toProductResponse(product)})
}

// SellerList handles POST /product/seller/list.
//
// @Summary      List the caller's products
// @Tags         product
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pageRequest  true  "Page, limit and optional name search"
// @Success      200   {object}  sellerListResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /product/seller/list [post]
func (h *ProductHandler) SellerList(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req pageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	views, err := h.service.ListBySeller(c.Request().Context(), principal.ID, req.toPage())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sellerListResponse{Message: "seller list", Products: toSellerProductResponses(views)})
}

// BuyerList handles POST /product/buyer/list.
//
// @Summary      Browse products
// @Tags         product
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pageRequest  true  "Page and limit"
// @Success      200   {object}  buyerListResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /product/buyer/list [post]
func (h *ProductHandler) BuyerList(c echo.Context) error {
	var req pageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	views, err := h.service.ListForBuyer(c.Request().Context(), req.toPage())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, buyerListResponse{Message: "buyer list", Products: toBuyerProductResponses(views)})
}
