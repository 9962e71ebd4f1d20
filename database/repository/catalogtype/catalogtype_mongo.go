package catalogTypeRepo

import (
	"context"
	"fmt"
	"time"

	"pestcontrol/database"
	"pestcontrol/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogTypeRepo implements CatalogTypeRepository on one collection.
type MongoCatalogTypeRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogTypeRepo builds a repository over db.collection and makes
// sure its indexes exist.
func NewMongoCatalogTypeRepo(db *mongo.Database, collection string) CatalogTypeRepository {
	repo := &MongoCatalogTypeRepo{coll: db.Collection(collection)}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create %s indexes: %v\n", collection, err)
	}
	return repo
}

// ensureIndexes backs the name uniqueness rule with the store.
func (r *MongoCatalogTypeRepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCatalogTypeRepo) Create(ctx context.Context, t *models.CatalogType) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, t)
	return database.WriteError("failed to create "+r.coll.Name(), err)
}

func (r *MongoCatalogTypeRepo) GetByID(ctx context.Context, id string) (*models.CatalogType, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoCatalogTypeRepo) GetByName(ctx context.Context, name string) (*models.CatalogType, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *MongoCatalogTypeRepo) findOne(ctx context.Context, filter bson.M) (*models.CatalogType, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var t models.CatalogType
	if err := r.coll.FindOne(ctx, filter).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", r.coll.Name(), err)
	}
	return &t, nil
}

func (r *MongoCatalogTypeRepo) UpdateName(ctx context.Context, id, name string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return false, database.WriteError(fmt.Sprintf("failed to update %s %s", r.coll.Name(), id), err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoCatalogTypeRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s %s: %w", r.coll.Name(), id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoCatalogTypeRepo) List(ctx context.Context) ([]models.CatalogType, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	types := []models.CatalogType{}
	if err := cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.coll.Name(), err)
	}
	return types, nil
}
