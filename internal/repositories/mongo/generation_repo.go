package mongo

import (
	"context"
	"time"

	"github.com/yoockh/careerly/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GenerationRepository interface {
	Insert(ctx context.Context, g *models.GenerationLog) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.GenerationLog, error)
}

type generationRepo struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewGenerationRepo(db *mongo.Database, ttl time.Duration) GenerationRepository {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &generationRepo{col: db.Collection("ai_generations"), ttl: ttl}
}

func (r *generationRepo) Insert(ctx context.Context, g *models.GenerationLog) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if g.ExpiresAt.IsZero() {
		g.ExpiresAt = g.CreatedAt.Add(r.ttl)
	}
	_, err := r.col.InsertOne(ctx, g)
	return err
}

func (r *generationRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.GenerationLog, error) {
	if limit <= 0 {
		limit = 20
	}

	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.GenerationLog{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
