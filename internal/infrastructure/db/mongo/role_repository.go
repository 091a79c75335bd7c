package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/assettracker/admin-console/internal/core/domain"
)

const roleCollection = "roles"

// MongoRoleRepository stores the role catalog keyed by name.
type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{coll: db.Collection(roleCollection)}
}

type mongoRole struct {
	Name        string   `bson:"_id"`
	Permissions []string `bson:"permissions"`
}

func (r *MongoRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{Name: mr.Name, Permissions: mr.Permissions}, nil
}

func (r *MongoRoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cursor.Close(ctx)

	var roles []*domain.Role
	for cursor.Next(ctx) {
		var mr mongoRole
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, &domain.Role{Name: mr.Name, Permissions: mr.Permissions})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// Seed inserts the role only when absent, so redeployments never clobber
// permission edits made in storage.
func (r *MongoRoleRepository) Seed(ctx context.Context, role *domain.Role) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": role.Name},
		bson.M{"$setOnInsert": bson.M{"permissions": role.Permissions}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("seed role: %w", err)
	}
	return nil
}
