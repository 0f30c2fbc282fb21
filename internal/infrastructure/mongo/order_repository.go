package mongo

import (
	"context"
	"errors"
	"time"

	domain "github.com/minimart/catalog-api/internal/domain/order"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type lineItemDoc struct {
	ProductID string `bson:"productId"`
	Qty       int    `bson:"qty"`
}

type orderDoc struct {
	ID        string        `bson:"_id"`
	UserID    string        `bson:"userId"`
	Items     []lineItemDoc `bson:"items"`
	Total     float64       `bson:"total"`
	Status    string        `bson:"status"`
	PaymentID string        `bson:"paymentId,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database, collection string) *OrderRepository {
	return &OrderRepository{coll: db.Collection(collection)}
}

// EnsureIndexes creates the secondary index backing ListByUser.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	_, err := r.coll.InsertOne(ctx, toOrderDoc(o))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return mapError(err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var doc orderDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError(err)
	}
	return fromOrderDoc(&doc), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit int, cursor string) (*domain.Page, error) {
	filter := bson.M{"userId": userID}
	if cursor != "" {
		lastID, err := decodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		filter["_id"] = bson.M{"$gt": lastID}
	}

	// Fetch one extra document to learn whether another page exists.
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit + 1))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err)
	}

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err)
	}

	page := &domain.Page{}
	more := len(docs) > limit
	if more {
		docs = docs[:limit]
	}
	for i := range docs {
		page.Orders = append(page.Orders, fromOrderDoc(&docs[i]))
	}
	if more && len(page.Orders) > 0 {
		page.NextCursor = encodeCursor(page.Orders[len(page.Orders)-1].ID)
	}
	return page, nil
}

// Confirm performs the single conditional update that gates the whole
// confirmation workflow: match on (_id, status=CREATED), set status and
// paymentId, return the post-update document. The store arbitrates racing
// confirms; exactly one caller observes CREATED.
func (r *OrderRepository) Confirm(ctx context.Context, orderID, paymentID string) (*domain.Order, error) {
	filter := bson.M{"_id": orderID, "status": string(domain.StatusCreated)}
	update := bson.M{"$set": bson.M{
		"status":    string(domain.StatusConfirmed),
		"paymentId": paymentID,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoMatch
		}
		return nil, mapError(err)
	}
	return fromOrderDoc(&doc), nil
}

func toOrderDoc(o *domain.Order) *orderDoc {
	items := make([]lineItemDoc, len(o.Items))
	for i, it := range o.Items {
		items[i] = lineItemDoc{ProductID: it.ProductID, Qty: it.Qty}
	}
	return &orderDoc{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     items,
		Total:     o.Total,
		Status:    string(o.Status),
		PaymentID: o.PaymentID,
		CreatedAt: o.CreatedAt,
	}
}

func fromOrderDoc(doc *orderDoc) *domain.Order {
	items := make([]domain.LineItem, len(doc.Items))
	for i, it := range doc.Items {
		items[i] = domain.LineItem{ProductID: it.ProductID, Qty: it.Qty}
	}
	return &domain.Order{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Items:     items,
		Total:     doc.Total,
		Status:    domain.Status(doc.Status),
		PaymentID: doc.PaymentID,
		CreatedAt: doc.CreatedAt,
	}
}
