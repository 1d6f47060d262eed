package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
)

const pickupsCollection = "laundry_pickups"

type PickupRepository struct {
	coll *mongo.Collection
}

func NewPickupRepository(db *mongo.Database) *PickupRepository {
	return &PickupRepository{coll: db.Collection(pickupsCollection)}
}

type mongoPickup struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PickupDate  time.Time          `bson:"pickup_date"`
	UserID      primitive.ObjectID `bson:"user_id"`
	LaundererID primitive.ObjectID `bson:"launderer_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *PickupRepository) Create(ctx context.Context, p *domain.PickupRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	laundererID, err := primitive.ObjectIDFromHex(p.LaundererID)
	if err != nil {
		return fmt.Errorf("invalid launderer id: %w", err)
	}

	doc := mongoPickup{
		PickupDate:  p.PickupDate.UTC(),
		UserID:      userID,
		LaundererID: laundererID,
		CreatedAt:   p.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert pickup: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *PickupRepository) ListByCustomer(ctx context.Context, userID string) ([]domain.PickupView, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.list(ctx, bson.M{"user_id": oid})
}

func (r *PickupRepository) ListByLaunderer(ctx context.Context, laundererID string) ([]domain.PickupView, error) {
	oid, err := primitive.ObjectIDFromHex(laundererID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.list(ctx, bson.M{"launderer_id": oid})
}

// pickupRow is the shape produced by the aggregation pipeline below.
type pickupRow struct {
	ID         primitive.ObjectID `bson:"_id"`
	PickupDate time.Time          `bson:"pickup_date"`
	User       []struct {
		Name string `bson:"name"`
	} `bson:"user"`
	Launderer []struct {
		Name string `bson:"name"`
	} `bson:"launderer"`
}

// list resolves the referenced user and launderer names with $lookup
// (the Mongo equivalent of a populate) and sorts by pickup date ascending.
func (r *PickupRepository) list(ctx context.Context, match bson.M) ([]domain.PickupView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "launderer_id",
			"foreignField": "_id",
			"as":           "launderer",
		}}},
		{{Key: "$sort", Value: bson.M{"pickup_date": 1}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list pickups: %w", err)
	}
	defer cur.Close(ctx)

	views := []domain.PickupView{}
	for cur.Next(ctx) {
		var row pickupRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode pickup: %w", err)
		}
		view := domain.PickupView{
			ID:         row.ID.Hex(),
			PickupDate: row.PickupDate,
		}
		if len(row.User) > 0 {
			view.UserName = row.User[0].Name
		}
		if len(row.Launderer) > 0 {
			view.LaundererName = row.Launderer[0].Name
		}
		views = append(views, view)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate pickups: %w", err)
	}
	return views, nil
}

// EnsureIndexes creates the query indexes for the dashboard lookups.
func (r *PickupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "pickup_date", Value: 1}}},
		{Keys: bson.D{{Key: "launderer_id", Value: 1}, {Key: "pickup_date", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
