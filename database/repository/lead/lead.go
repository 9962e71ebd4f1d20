package leadRepo

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

type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	// GetByID returns nil, nil when the lead does not exist.
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	// List returns leads newest first.
	List(ctx context.Context) ([]models.Lead, error)
	// SetReviewTokenIfAbsent stores token only when the lead has none yet and
	// reports whether it was stored.
	SetReviewTokenIfAbsent(ctx context.Context, id, token string) (bool, error)
}

type mongoLeadRepo struct {
	coll *mongo.Collection
}

// NewMongoLeadRepo returns a new LeadRepository instance using MongoDB.
func NewMongoLeadRepo(db *mongo.Database) LeadRepository {
	repo := &mongoLeadRepo{coll: db.Collection("leads")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create lead indexes: %v\n", err)
	}
	return repo
}

func (r *mongoLeadRepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		// Sparse so leads without a token do not collide on the empty value.
		{Keys: bson.D{{Key: "reviewToken", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new lead.
func (r *mongoLeadRepo) Create(ctx context.Context, lead *models.Lead) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, lead)
	return database.WriteError("failed to create lead", err)
}

// GetByID returns a lead by its ID.
func (r *mongoLeadRepo) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var lead models.Lead
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&lead); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch lead %s: %w", id, err)
	}
	return &lead, nil
}

// List fetches all leads, newest first.
func (r *mongoLeadRepo) List(ctx context.Context) ([]models.Lead, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}
	return leads, nil
}

func (r *mongoLeadRepo) SetReviewTokenIfAbsent(ctx context.Context, id, token string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": id,
		"$or": bson.A{
			bson.M{"reviewToken": bson.M{"$exists": false}},
			bson.M{"reviewToken": ""},
		},
	}
	update := bson.M{"$set": bson.M{"reviewToken": token, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, database.WriteError("failed to store review token for lead "+id, err)
	}
	return res.ModifiedCount > 0, nil
}
