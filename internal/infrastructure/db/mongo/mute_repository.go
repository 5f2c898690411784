package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

type MongoMuteRepository struct {
	coll *mongo.Collection
}

func NewMuteRepository(db *mongo.Database) *MongoMuteRepository {
	return &MongoMuteRepository{coll: db.Collection(mutesCollection)}
}

// Add upserts the (province, username) pair. $setOnInsert keeps the original
// muted_by and timestamp when the pair is already present.
func (r *MongoMuteRepository) Add(ctx context.Context, entry *domain.MuteEntry) (bool, error) {
	filter := bson.M{"province": entry.Province, "username": entry.Username}
	update := bson.M{"$setOnInsert": bson.M{
		"province":   entry.Province,
		"username":   entry.Username,
		"muted_by":   entry.MutedBy,
		"created_at": entry.CreatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("add mute: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *MongoMuteRepository) Remove(ctx context.Context, province, username string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"province": province, "username": username})
	if err != nil {
		return false, fmt.Errorf("remove mute: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoMuteRepository) IsMuted(ctx context.Context, province, username string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"province": province, "username": username})
	if err != nil {
		return false, fmt.Errorf("check mute: %w", err)
	}
	return n > 0, nil
}

func (r *MongoMuteRepository) ListUsernames(ctx context.Context, province string) ([]string, error) {
	cur, err := r.coll.Find(ctx, bson.M{"province": province})
	if err != nil {
		return nil, fmt.Errorf("list mutes: %w", err)
	}
	defer cur.Close(ctx)

	var usernames []string
	for cur.Next(ctx) {
		var doc struct {
			Username string `bson:"username"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode mute: %w", err)
		}
		usernames = append(usernames, doc.Username)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate mutes: %w", err)
	}
	return usernames, nil
}
