package seoRepo

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

type SEORepository interface {
	// EnsurePages inserts the given pages unless a page with the same key
	// already exists. Existing pages are never modified.
	EnsurePages(ctx context.Context, pages []models.SEOPage) error
	// List returns all pages ordered by page key.
	List(ctx context.Context) ([]models.SEOPage, error)
	// GetByID and GetByPage return nil, nil when absent.
	GetByID(ctx context.Context, id string) (*models.SEOPage, error)
	GetByPage(ctx context.Context, page string) (*models.SEOPage, error)
	// Update applies set and reports whether the page existed.
	Update(ctx context.Context, id string, set bson.M) (bool, error)
}

type mongoSEORepo struct {
	coll *mongo.Collection
}

// NewMongoSEORepo returns a new SEORepository instance using MongoDB.
func NewMongoSEORepo(db *mongo.Database) SEORepository {
	repo := &mongoSEORepo{coll: db.Collection("seoPages")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create seo indexes: %v\n", err)
	}
	return repo
}

func (r *mongoSEORepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "page", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoSEORepo) EnsurePages(ctx context.Context, pages []models.SEOPage) error {
	if len(pages) == 0 {
		return nil
	}
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(pages))
	for _, p := range pages {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"page": p.Page}).
			SetUpdate(bson.M{"$setOnInsert": p}).
			SetUpsert(true))
	}
	// Unordered so a concurrent first call racing on the unique page index
	// does not stop the remaining upserts.
	_, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to seed seo pages: %w", err)
	}
	return nil
}

func (r *mongoSEORepo) List(ctx context.Context) ([]models.SEOPage, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "page", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list seo pages: %w", err)
	}
	defer cursor.Close(ctx)

	pages := []models.SEOPage{}
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, fmt.Errorf("failed to decode seo pages: %w", err)
	}
	return pages, nil
}

func (r *mongoSEORepo) GetByID(ctx context.Context, id string) (*models.SEOPage, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoSEORepo) GetByPage(ctx context.Context, page string) (*models.SEOPage, error) {
	return r.findOne(ctx, bson.M{"page": page})
}

func (r *mongoSEORepo) findOne(ctx context.Context, filter bson.M) (*models.SEOPage, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.SEOPage
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch seo page: %w", err)
	}
	return &p, nil
}

func (r *mongoSEORepo) Update(ctx context.Context, id string, set bson.M) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update seo page %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}
