package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/ports"
)

const newsCollection = "news"

var _ ports.NewsRepository = (*NewsRepository)(nil)

// NewsRepository stores portal announcements as documents.
type NewsRepository struct {
	coll *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) *NewsRepository {
	return &NewsRepository{coll: db.Collection(newsCollection)}
}

type newsDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Body      string             `bson:"body"`
	Category  string             `bson:"category"`
	Published bool               `bson:"published"`
	StartsAt  time.Time          `bson:"starts_at"`
	EndsAt    time.Time          `bson:"ends_at"`
	CreatedBy int64              `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d newsDoc) toDomain() domain.NewsItem {
	return domain.NewsItem{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Body:      d.Body,
		Category:  d.Category,
		Published: d.Published,
		StartsAt:  d.StartsAt,
		EndsAt:    d.EndsAt,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
	}
}

func (r *NewsRepository) Insert(ctx context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	doc := newsDoc{
		Title:     item.Title,
		Body:      item.Body,
		Category:  item.Category,
		Published: item.Published,
		StartsAt:  item.StartsAt.UTC(),
		EndsAt:    item.EndsAt.UTC(),
		CreatedBy: item.CreatedBy,
		CreatedAt: item.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert news: %w", err)
	}

	created := *item
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// ListActive returns published items whose visibility window contains now,
// newest first.
func (r *NewsRepository) ListActive(ctx context.Context) ([]domain.NewsItem, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"published": true,
		"starts_at": bson.M{"$lte": now},
		"ends_at":   bson.M{"$gte": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.NewsItem
	for cursor.Next(ctx) {
		var doc newsDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode news: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

// GetByID fetches one announcement. A malformed hex id is treated the same as
// an unknown one: the item does not exist.
func (r *NewsRepository) GetByID(ctx context.Context, id string) (*domain.NewsItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNewsNotFound
	}

	var doc newsDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNewsNotFound
		}
		return nil, fmt.Errorf("get news %s: %w", id, err)
	}

	item := doc.toDomain()
	return &item, nil
}
