package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

const collectionReviews = "crisis_reviews"

type reviewDocument struct {
	Key       string    `bson:"_id"`
	Status    string    `bson:"status"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// ReviewRepository stores one document per triaged crisis message.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

// SetStatus upserts the status for key.
func (r *ReviewRepository) SetStatus(ctx context.Context, key string, status domain.CrisisStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert crisis review %q: %w", key, err)
	}
	return nil
}

// Statuses returns every stored status.
func (r *ReviewRepository) Statuses(ctx context.Context) (map[string]domain.CrisisStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find crisis reviews: %w", err)
	}
	defer cur.Close(ctx)

	var docs []reviewDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode crisis reviews: %w", err)
	}

	out := make(map[string]domain.CrisisStatus, len(docs))
	for _, d := range docs {
		out[d.Key] = domain.CrisisStatus(d.Status)
	}
	return out, nil
}
