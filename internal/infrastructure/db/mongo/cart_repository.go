package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopfront/shop-api/internal/core/domain"
)

const collectionCarts = "carts"

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts)}
}

type cartDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	BuyerID         primitive.ObjectID `bson:"buyer_id"`
	ProductID       primitive.ObjectID `bson:"product_id"`
	OrderedQuantity int                `bson:"ordered_quantity"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func (d cartDoc) toDomain() *domain.CartItem {
	return &domain.CartItem{
		ID:              d.ID.Hex(),
		BuyerID:         d.BuyerID.Hex(),
		ProductID:       d.ProductID.Hex(),
		OrderedQuantity: d.OrderedQuantity,
		CreatedAt:       d.CreatedAt.UTC(),
	}
}

func (r *CartRepository) Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	buyerID, err := primitive.ObjectIDFromHex(item.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("insert cart item: buyer id: %w", err)
	}
	productID, err := primitive.ObjectIDFromHex(item.ProductID)
	if err != nil {
		return nil, fmt.Errorf("insert cart item: product id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := cartDoc{
		ID:              primitive.NewObjectID(),
		BuyerID:         buyerID,
		ProductID:       productID,
		OrderedQuantity: item.OrderedQuantity,
		CreatedAt:       item.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert cart item: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID returns domain.ErrCartItemNotFound for unknown or malformed ids.
func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.CartItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCartItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc cartDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCartItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) DeleteByBuyer(ctx context.Context, buyerID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(buyerID)
	if err != nil {
		return 0, fmt.Errorf("flush cart: buyer id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"buyer_id": oid})
	if err != nil {
		return 0, fmt.Errorf("flush cart: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *CartRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*domain.CartItem, error) {
	oid, err := primitive.ObjectIDFromHex(buyerID)
	if err != nil {
		return nil, fmt.Errorf("list cart: buyer id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"buyer_id": oid}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	var docs []cartDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	out := make([]*domain.CartItem, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// EnsureIndexes creates the buyer index used by flush and list.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "buyer_id", Value: 1}},
	})
	return err
}
