package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

func (r *MongoAuditRepository) Insert(ctx context.Context, action *domain.ModerationAction) error {
	if _, err := r.coll.InsertOne(ctx, action); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
