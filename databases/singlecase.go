package databases

// go generate: mockery --name SingleCaseDatabase

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

const singleCaseName = "cases"

const fetchAttempts = 3

// SingleCaseDatabase contains the methods to use with the single case database
type SingleCaseDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SingleCase, error)
	FindByReference(ctx context.Context, country, caseRef string) (*models.SingleCase, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SingleCase, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, singleCase *models.SingleCase) error
	UpdateVersioned(ctx context.Context, singleCase *models.SingleCase) error
}

type singleCaseDatabase struct {
	db DatabaseHelper
}

// NewSingleCaseDatabase initializes a new instance of single case database with the provided db connection
func NewSingleCaseDatabase(db DatabaseHelper) SingleCaseDatabase {
	return &singleCaseDatabase{
		db: db,
	}
}

func (s *singleCaseDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SingleCase, error) {
	singleCase := &models.SingleCase{}
	err := retry.Do(
		func() error {
			return s.db.Collection(singleCaseName).FindOne(ctx, filter, opts...).Decode(&singleCase)
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
	return singleCase, nil
}

func (s *singleCaseDatabase) FindByReference(ctx context.Context, country, caseRef string) (*models.SingleCase, error) {
	return s.FindOne(ctx, bson.M{"case.country": country, "case.caseReference": caseRef})
}

func (s *singleCaseDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SingleCase, error) {
	var singleCases []models.SingleCase
	err := retry.Do(
		func() error {
			curr, err := s.db.Collection(singleCaseName).Find(ctx, filter, opts...)
			if err != nil {
				return err
			}
			defer curr.Close(ctx)
			return curr.All(ctx, &singleCases)
		},
		retry.Attempts(fetchAttempts),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, err
	}
	return singleCases, nil
}

func (s *singleCaseDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return s.db.Collection(singleCaseName).CountDocuments(ctx, filter, opts...)
}

func (s *singleCaseDatabase) InsertOne(ctx context.Context, singleCase *models.SingleCase) error {
	singleCase.Details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	singleCase.Details.UpdatedAt = singleCase.Details.CreatedAt
	_, err := s.db.Collection(singleCaseName).InsertOne(ctx, singleCase)
	return err
}

// UpdateVersioned writes the case details back guarded by the record's
// version. A losing concurrent writer gets ErrVersionConflict, a vanished
// record gets ErrNotFound; the local version is bumped on success so the
// same value can be written again within one bulk run.
func (s *singleCaseDatabase) UpdateVersioned(ctx context.Context, singleCase *models.SingleCase) error {
	singleCase.Details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	filter := bson.M{"_id": singleCase.ID, "__v": singleCase.Version}
	update := bson.M{
		"$set": bson.M{"case": singleCase.Details},
		"$inc": bson.M{"__v": 1},
	}

	res, err := s.db.Collection(singleCaseName).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, countErr := s.db.Collection(singleCaseName).CountDocuments(ctx, bson.M{"_id": singleCase.ID})
		if countErr != nil {
			return countErr
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	singleCase.Version++
	return nil
}
