package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

type MongoRoleRepository struct {
	roles       *mongo.Collection
	assignments *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{
		roles:       db.Collection(rolesCollection),
		assignments: db.Collection(assignmentsCollection),
	}
}

type mongoRole struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Province    string             `bson:"province"`
	Permissions []string           `bson:"permissions"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mr mongoRole) toDomain() *domain.Role {
	perms := mr.Permissions
	if perms == nil {
		perms = []string{}
	}
	return &domain.Role{
		ID:          mr.ID.Hex(),
		Name:        mr.Name,
		Province:    mr.Province,
		Permissions: perms,
		CreatedAt:   mr.CreatedAt.UTC(),
	}
}

func (r *MongoRoleRepository) CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	doc := mongoRole{
		Name:        role.Name,
		Province:    role.Province,
		Permissions: role.Permissions,
		CreatedAt:   role.CreatedAt,
	}

	res, err := r.roles.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRoleExists
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}

	created := *role
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoRoleRepository) FindByName(ctx context.Context, province, name string) (*domain.Role, error) {
	var mr mongoRole
	err := r.roles.FindOne(ctx, bson.M{"province": province, "name": name}).Decode(&mr)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoRoleRepository) ListByProvince(ctx context.Context, province string) ([]*domain.Role, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.roles.Find(ctx, bson.M{"province": province}, opts)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var roles []*domain.Role
	for cur.Next(ctx) {
		var mr mongoRole
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}

// Assign upserts the (username, role_id) link. Safe to repeat.
func (r *MongoRoleRepository) Assign(ctx context.Context, username, roleID string) (bool, error) {
	filter := bson.M{"username": username, "role_id": roleID}
	update := bson.M{"$setOnInsert": bson.M{
		"username":   username,
		"role_id":    roleID,
		"created_at": time.Now().UTC(),
	}}

	res, err := r.assignments.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("assign role: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *MongoRoleRepository) RolesForUser(ctx context.Context, username string) ([]*domain.Role, error) {
	cur, err := r.assignments.Find(ctx, bson.M{"username": username})
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var doc struct {
			RoleID string `bson:"role_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		oid, err := primitive.ObjectIDFromHex(doc.RoleID)
		if err != nil {
			continue
		}
		ids = append(ids, oid)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	roleCur, err := r.roles.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find assigned roles: %w", err)
	}
	defer roleCur.Close(ctx)

	var roles []*domain.Role
	for roleCur.Next(ctx) {
		var mr mongoRole
		if err := roleCur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, mr.toDomain())
	}
	if err := roleCur.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}
