package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopfront/shop-api/internal/core/domain"
	"github.com/shopfront/shop-api/internal/core/ports"
)

const (
	collectionProducts = "products"
	descriptionPreview = 200
)

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type productDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Brand        string             `bson:"brand"`
	Price        float64            `bson:"price"`
	Quantity     int                `bson:"quantity"`
	Category     string             `bson:"category"`
	FreeShipping bool               `bson:"free_shipping"`
	SellerID     primitive.ObjectID `bson:"seller_id"`
	Description  string             `bson:"description"`
	Image        string             `bson:"image,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d productDoc) toDomain() *domain.Product {
	return &domain.Product{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Brand:        d.Brand,
		Price:        d.Price,
		Quantity:     d.Quantity,
		Category:     d.Category,
		FreeShipping: d.FreeShipping,
		SellerID:     d.SellerID.Hex(),
		Description:  d.Description,
		Image:        d.Image,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// Create inserts a new product document.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sellerID, err := primitive.ObjectIDFromHex(p.SellerID)
	if err != nil {
		return nil, fmt.Errorf("insert product: seller id: %w", err)
	}

	doc := productDoc{
		ID:           primitive.NewObjectID(),
		Name:         p.Name,
		Brand:        p.Brand,
		Price:        p.Price,
		Quantity:     p.Quantity,
		Category:     p.Category,
		FreeShipping: p.FreeShipping,
		SellerID:     sellerID,
		Description:  p.Description,
		Image:        p.Image,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID returns domain.ErrProductNotFound for unknown or malformed ids.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

// Update sets the writable fields; seller_id is never part of the update.
func (r *ProductRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":          patch.Name,
		"brand":         patch.Brand,
		"price":         patch.Price,
		"quantity":      patch.Quantity,
		"category":      patch.Category,
		"free_shipping": patch.FreeShipping,
		"description":   patch.Description,
		"image":         patch.Image,
		"updated_at":    time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]*domain.Product, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

type sellerViewDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Brand       string             `bson:"brand"`
	Price       float64            `bson:"price"`
	Image       string             `bson:"image"`
	Description string             `bson:"description"`
}

// ListBySeller returns one page of the seller's products. SearchText is
// matched literally and case-insensitively against the name.
func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID string, page ports.ProductPage) ([]ports.SellerProductView, error) {
	oid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller products: seller id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{"seller_id": oid}
	if page.SearchText != "" {
		match["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(page.SearchText), Options: "i"}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$skip", Value: page.Skip()}},
		{{Key: "$limit", Value: int64(page.Limit)}},
		{{Key: "$project", Value: bson.M{
			"name":        1,
			"brand":       1,
			"price":       1,
			"image":       1,
			"description": bson.M{"$substrCP": bson.A{"$description", 0, descriptionPreview}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}

	var docs []sellerViewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}

	out := make([]ports.SellerProductView, len(docs))
	for i, d := range docs {
		out[i] = ports.SellerProductView{
			ID:          d.ID.Hex(),
			Name:        d.Name,
			Brand:       d.Brand,
			Price:       d.Price,
			Image:       d.Image,
			Description: d.Description,
		}
	}
	return out, nil
}

type buyerViewDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Brand        string             `bson:"brand"`
	Price        float64            `bson:"price"`
	FreeShipping bool               `bson:"free_shipping"`
}

// ListForBuyer returns one page of all products with the buyer projection.
func (r *ProductRepository) ListForBuyer(ctx context.Context, page ports.ProductPage) ([]ports.BuyerProductView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)).
		SetProjection(bson.M{"name": 1, "brand": 1, "price": 1, "free_shipping": 1})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list buyer products: %w", err)
	}

	var docs []buyerViewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list buyer products: %w", err)
	}

	out := make([]ports.BuyerProductView, len(docs))
	for i, d := range docs {
		out[i] = ports.BuyerProductView{
			ID:           d.ID.Hex(),
			Name:         d.Name,
			Brand:        d.Brand,
			Price:        d.Price,
			FreeShipping: d.FreeShipping,
		}
	}
	return out, nil
}

// EnsureIndexes creates the indexes used by seller listings.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "name", Value: 1}}},
	})
	return err
}
