package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/shop-api/internal/core/ports"
)

// CartHandler handles the buyer's cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// AddItem handles POST /cart/add/item.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      addCartItemRequest  true   "Product and quantity"
// @Success      201              {object}  cartItemEnvelope
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /cart/add/item [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.service.AddItem(c.Request().Context(), ports.AddCartItemInput{
		BuyerID:        principal.ID,
		ProductID:      req.ProductID,
		OrderQuantity:  req.OrderQuantity,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cartItemEnvelope{Message: "added to cart successfully", Item: toCartItemResponse(item)})
}

// Flush handles DELETE /cart/flush.
//
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  flushCartResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /cart/flush [delete]
func (h *CartHandler) Flush(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	n, err := h.service.Flush(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, flushCartResponse{Message: "cart cleared", Deleted: n})
}

// RemoveItem handles DELETE /cart/item/delete/:id.
//
// @Summary      Remove one cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart item id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /cart/item/delete/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.RemoveItem(c.Request().Context(), principal.ID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "item removed from cart"})
}

// List handles GET /cart/list.
//
// @Summary      List the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /cart/list [get]
func (h *CartHandler) List(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartListResponse{Message: "cart", Items: toCartItemResponses(items)})
}
