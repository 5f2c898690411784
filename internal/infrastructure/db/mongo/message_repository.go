package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

type MongoMessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{coll: db.Collection(messagesCollection)}
}

func (r *MongoMessageRepository) Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	doc := bson.M{
		"author_id":  msg.AuthorID,
		"author":     msg.Author,
		"province":   msg.Province,
		"content":    msg.Content,
		"created_at": msg.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	created := *msg
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoMessageRepository) ListByProvince(ctx context.Context, province string) ([]*domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"province": province}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var msgs []*domain.Message
	for cur.Next(ctx) {
		var doc struct {
			ID        primitive.ObjectID `bson:"_id"`
			AuthorID  string             `bson:"author_id"`
			Author    string             `bson:"author"`
			Province  string             `bson:"province"`
			Content   string             `bson:"content"`
			CreatedAt primitive.DateTime `bson:"created_at"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		msgs = append(msgs, &domain.Message{
			ID:        doc.ID.Hex(),
			AuthorID:  doc.AuthorID,
			Author:    doc.Author,
			Province:  doc.Province,
			Content:   doc.Content,
			CreatedAt: doc.CreatedAt.Time().UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return msgs, nil
}
