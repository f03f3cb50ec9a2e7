package databases

// go generate: mockery --name MultipleDatabase

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hmcts/et-multiples-api/models"
)

const multipleName = "multiples"

// MultipleDatabase contains the methods to use with the multiple database
type MultipleDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Multiple, error)
	FindByReference(ctx context.Context, country, multipleRef string) (*models.Multiple, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Multiple, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, multiple *models.Multiple) error
	UpdateVersioned(ctx context.Context, multiple *models.Multiple) error
}

type multipleDatabase struct {
	db DatabaseHelper
}

// NewMultipleDatabase initializes a new instance of multiple database with the provided db connection
func NewMultipleDatabase(db DatabaseHelper) MultipleDatabase {
	return &multipleDatabase{
		db: db,
	}
}

func (m *multipleDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Multiple, error) {
	multiple := &models.Multiple{}
	err := retry.Do(
		func() error {
			return m.db.Collection(multipleName).FindOne(ctx, filter, opts...).Decode(&multiple)
		},
		retry.Attempts(fetchAttempts),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return multiple, nil
}

func (m *multipleDatabase) FindByReference(ctx context.Context, country, multipleRef string) (*models.Multiple, error) {
	return m.FindOne(ctx, bson.M{"multiple.country": country, "multiple.multipleReference": multipleRef})
}

func (m *multipleDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Multiple, error) {
	var multiples []models.Multiple
	err := retry.Do(
		func() error {
			curr, err := m.db.Collection(multipleName).Find(ctx, filter, opts...)
			if err != nil {
				return err
			}
			defer curr.Close(ctx)
			return curr.All(ctx, &multiples)
		},
		retry.Attempts(fetchAttempts),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, err
	}
	return multiples, nil
}

func (m *multipleDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return m.db.Collection(multipleName).CountDocuments(ctx, filter, opts...)
}

func (m *multipleDatabase) InsertOne(ctx context.Context, multiple *models.Multiple) error {
	multiple.Details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	multiple.Details.UpdatedAt = multiple.Details.CreatedAt
	_, err := m.db.Collection(multipleName).InsertOne(ctx, multiple)
	return err
}

// UpdateVersioned writes the multiple's details back guarded by the record's
// version. The multiple write is the commit point of every bulk action, so a
// lost race here must surface to the caller rather than clobber the winner.
func (m *multipleDatabase) UpdateVersioned(ctx context.Context, multiple *models.Multiple) error {
	multiple.Details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	filter := bson.M{"_id": multiple.ID, "__v": multiple.Version}
	update := bson.M{
		"$set": bson.M{"multiple": multiple.Details},
		"$inc": bson.M{"__v": 1},
	}

	res, err := m.db.Collection(multipleName).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, countErr := m.db.Collection(multipleName).CountDocuments(ctx, bson.M{"_id": multiple.ID})
		if countErr != nil {
			return countErr
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	multiple.Version++
	return nil
}
