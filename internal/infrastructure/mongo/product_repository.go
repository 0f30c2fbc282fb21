package mongo

import (
	"context"
	"errors"
	"time"

	domain "github.com/minimart/catalog-api/internal/domain/product"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Price     float64   `bson:"price"`
	Stock     int       `bson:"stock"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"createdAt"`
}

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database, collection string) *ProductRepository {
	return &ProductRepository{coll: db.Collection(collection)}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.coll.InsertOne(ctx, toProductDoc(p))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return mapError(err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var doc productDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError(err)
	}
	return fromProductDoc(&doc), nil
}

func (r *ProductRepository) List(ctx context.Context, limit int, cursor string) (*domain.Page, error) {
	filter := bson.M{}
	if cursor != "" {
		lastID, err := decodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		filter["_id"] = bson.M{"$gt": lastID}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit + 1))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err)
	}

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err)
	}

	page := &domain.Page{}
	more := len(docs) > limit
	if more {
		docs = docs[:limit]
	}
	for i := range docs {
		page.Products = append(page.Products, fromProductDoc(&docs[i]))
	}
	if more && len(page.Products) > 0 {
		page.NextCursor = encodeCursor(page.Products[len(page.Products)-1].ID)
	}
	return page, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Product, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError(err)
	}
	return fromProductDoc(&doc), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock subtracts qty only while the server-side predicate
// (product exists, stock >= qty) holds, so stock can never go negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}

	filter := bson.M{"_id": productID, "stock": bson.M{"$gte": qty}}
	update := bson.M{"$inc": bson.M{"stock": -qty}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// DecrementStockForItems awaits each decrement before starting the next; no
// cross-item atomicity. The count reports the applied prefix.
func (r *ProductRepository) DecrementStockForItems(ctx context.Context, items []domain.StockAdjustment) (int, error) {
	for i, it := range items {
		if err := r.DecrementStock(ctx, it.ProductID, it.Qty); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

func (r *ProductRepository) IncrementStockForItems(ctx context.Context, items []domain.StockAdjustment) error {
	for _, it := range items {
		res, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": it.ProductID},
			bson.M{"$inc": bson.M{"stock": it.Qty}},
		)
		if err != nil {
			return mapError(err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toProductDoc(p *domain.Product) *productDoc {
	return &productDoc{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func fromProductDoc(doc *productDoc) *domain.Product {
	return &domain.Product{
		ID:        doc.ID,
		Name:      doc.Name,
		Price:     doc.Price,
		Stock:     doc.Stock,
		Status:    domain.Status(doc.Status),
		CreatedAt: doc.CreatedAt,
	}
}
