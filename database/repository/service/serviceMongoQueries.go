package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pestcontrol/database"
	"pestcontrol/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PublicProjection hides internal fields from public reads.
var PublicProjection = bson.M{"_id": 0, "isDeleted": 0}

// PublicSort puts featured services first, newest first within each group.
var PublicSort = bson.D{
	{Key: "featured", Value: -1},
	{Key: "createdAt", Value: -1},
}

// PublicFilter builds the listing filter. Visibility conditions are always set.
func PublicFilter(f models.ServiceFilter) bson.M {
	filter := bson.M{
		"status":    models.ServiceStatusActive,
		"isDeleted": false,
	}
	if f.ServiceType != "" {
		filter["serviceType"] = f.ServiceType
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	return filter
}

func (r *MongoServiceRepo) FindPublic(ctx context.Context, filter models.ServiceFilter, page models.PageRequest) ([]models.Service, error) {
	opts := options.Find().
		SetSort(PublicSort).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)).
		SetProjection(PublicProjection)
	return r.find(ctx, PublicFilter(filter), opts)
}

func (r *MongoServiceRepo) CountPublic(ctx context.Context, filter models.ServiceFilter) (int64, error) {
	return r.count(ctx, PublicFilter(filter))
}

func (r *MongoServiceRepo) FindAll(ctx context.Context, page models.PageRequest) ([]models.Service, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)).
		SetProjection(bson.M{"_id": 0})
	return r.find(ctx, bson.M{"isDeleted": false}, opts)
}

func (r *MongoServiceRepo) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"isDeleted": false})
}

func (r *MongoServiceRepo) CountFeatured(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"featured": true, "isDeleted": false})
}

func (r *MongoServiceRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Service, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("service query failed: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return services, nil
}

func (r *MongoServiceRepo) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("service count failed: %w", err)
	}
	return n, nil
}

// mongoFeaturedSlots keeps the featured counter in a single document so the
// ceiling check and the increment happen in one findOneAndUpdate.
type mongoFeaturedSlots struct {
	coll *mongo.Collection
}

const featuredCounterID = "featured"

// NewMongoFeaturedSlots stores the counter in the catalogCounters collection.
func NewMongoFeaturedSlots(db *mongo.Database) FeaturedSlots {
	return &mongoFeaturedSlots{coll: db.Collection("catalogCounters")}
}

func (s *mongoFeaturedSlots) Reserve(ctx context.Context, max int) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": featuredCounterID, "count": bson.M{"$lt": max}}
	update := bson.M{
		"$inc":         bson.M{"count": 1, "version": 1},
		"$currentDate": bson.M{"updatedAt": true},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true)

	return reserveOutcome(s.coll.FindOneAndUpdate(ctx, filter, update, opts).Err())
}

// reserveOutcome maps the result of the conditional upsert in Reserve.
func reserveOutcome(err error) (bool, error) {
	switch {
	case err == nil, errors.Is(err, mongo.ErrNoDocuments):
		// ErrNoDocuments means the upsert created the counter at 1.
		return true, nil
	case mongo.IsDuplicateKeyError(err):
		// The counter exists but is at the ceiling, so the upsert collided on _id.
		return false, nil
	default:
		return false, fmt.Errorf("failed to reserve featured slot: %w", err)
	}
}

func (s *mongoFeaturedSlots) Release(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": featuredCounterID, "count": bson.M{"$gt": 0}}
	update := bson.M{
		"$inc":         bson.M{"count": -1, "version": 1},
		"$currentDate": bson.M{"updatedAt": true},
	}
	if _, err := s.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release featured slot: %w", err)
	}
	return nil
}

func (s *mongoFeaturedSlots) Snapshot(ctx context.Context) (FeaturedCounter, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c FeaturedCounter
	err := s.coll.FindOne(ctx, bson.M{"_id": featuredCounterID}).Decode(&c)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return FeaturedCounter{}, fmt.Errorf("failed to read featured counter: %w", err)
	}
	return c, nil
}

func (s *mongoFeaturedSlots) Raise(ctx context.Context, count int64) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$max":         bson.M{"count": count},
		"$inc":         bson.M{"version": 1},
		"$currentDate": bson.M{"updatedAt": true},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": featuredCounterID}, update, opts); err != nil {
		return fmt.Errorf("failed to raise featured counter: %w", err)
	}
	return nil
}

func (s *mongoFeaturedSlots) Lower(ctx context.Context, version, count int64) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"count": count},
		"$inc":         bson.M{"version": 1},
		"$currentDate": bson.M{"updatedAt": true},
	}
	res, err := s.coll.UpdateOne(ctx, counterAtVersion(version), update)
	if err != nil {
		return false, fmt.Errorf("failed to lower featured counter: %w", err)
	}
	return res.MatchedCount == 1, nil
}

// counterAtVersion matches the counter only at version. Counters written
// before versioning have no field and read as version 0.
func counterAtVersion(version int64) bson.M {
	if version == 0 {
		return bson.M{"_id": featuredCounterID, "version": bson.M{"$in": bson.A{0, nil}}}
	}
	return bson.M{"_id": featuredCounterID, "version": version}
}
