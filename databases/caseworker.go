package databases

// go generate: mockery --name CaseworkerDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hmcts/et-multiples-api/models"
)

const caseworkerName = "caseworkers"

// CaseworkerDatabase contains the methods to use with the caseworker database
type CaseworkerDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Caseworker, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Caseworker, error)
}

type caseworkerDatabase struct {
	db DatabaseHelper
}

// NewCaseworkerDatabase initializes a new instance of caseworker database with the provided db connection
func NewCaseworkerDatabase(db DatabaseHelper) CaseworkerDatabase {
	return &caseworkerDatabase{
		db: db,
	}
}

func (c *caseworkerDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Caseworker, error) {
	caseworker := &models.Caseworker{}
	err := c.db.Collection(caseworkerName).FindOne(ctx, filter, opts...).Decode(&caseworker)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return caseworker, nil
}

func (c *caseworkerDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Caseworker, error) {
	var caseworkers []models.Caseworker
	curr, err := c.db.Collection(caseworkerName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &caseworkers)
	if err != nil {
		return nil, err
	}
	return caseworkers, nil
}
