package serviceRepo

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

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo(db *mongo.Database) ServiceRepository {
	repo := &MongoServiceRepo{coll: db.Collection("services")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create service indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields that are frequently used in queries.
// The slug index is deliberately not scoped to isDeleted: a soft-deleted slug
// stays reserved.
func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "isDeleted", Value: 1},
			{Key: "featured", Value: -1},
			{Key: "createdAt", Value: -1},
		}},
		{Keys: bson.D{{Key: "serviceType", Value: 1}}},
		{Keys: bson.D{
			{Key: "serviceName", Value: "text"},
			{Key: "shortDescription", Value: "text"},
			{Key: "description", Value: "text"},
		}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) Create(ctx context.Context, s *models.Service) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, s)
	return database.WriteError("failed to create service", err)
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	return r.findOne(ctx, bson.M{"id": id}, nil)
}

func (r *MongoServiceRepo) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	return r.findOne(ctx, bson.M{"slug": slug}, nil)
}

func (r *MongoServiceRepo) GetPublicBySlug(ctx context.Context, slug string) (*models.Service, error) {
	filter := PublicFilter(models.ServiceFilter{})
	filter["slug"] = slug
	return r.findOne(ctx, filter, PublicProjection)
}

func (r *MongoServiceRepo) findOne(ctx context.Context, filter bson.M, projection bson.M) (*models.Service, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var s models.Service
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	return &s, nil
}

func (r *MongoServiceRepo) Update(ctx context.Context, id string, set bson.M) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "isDeleted": false}, bson.M{"$set": set})
	if err != nil {
		return false, database.WriteError("failed to update service "+id, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoServiceRepo) MarkDeleted(ctx context.Context, id string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "isDeleted": false}, update)
	if err != nil {
		return false, fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoServiceRepo) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "isDeleted": false}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views for %s: %w", id, err)
	}
	return nil
}

func (r *MongoServiceRepo) IncrementBookingsBySlug(ctx context.Context, slug string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"slug": slug, "isDeleted": false}, bson.M{"$inc": bson.M{"bookings": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment bookings for %s: %w", slug, err)
	}
	return nil
}
