package databases

// go generate: mockery --name AuditLockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const auditLockName = "auditLocks"

// AuditLockDatabase guards scheduled jobs so only one instance runs them when
// several pods are deployed.
type AuditLockDatabase interface {
	TryAcquire(ctx context.Context, job, holder string, ttl time.Duration) (bool, error)
}

type auditLockDatabase struct {
	db DatabaseHelper
}

// NewAuditLockDatabase initializes a new instance of audit lock database with the provided db connection
func NewAuditLockDatabase(db DatabaseHelper) AuditLockDatabase {
	return &auditLockDatabase{
		db: db,
	}
}

// TryAcquire upserts the lock document if it is absent or expired. A
// duplicate-key error means another holder got there first.
func (a *auditLockDatabase) TryAcquire(ctx context.Context, job, holder string, ttl time.Duration) (bool, error) {
	now := time.Now()

	filter := bson.M{
		"_id":       job,
		"expiresAt": bson.M{"$lt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"holder":     holder,
			"acquiredAt": now,
			"expiresAt":  now.Add(ttl),
		},
	}

	opts := options.Update().SetUpsert(true)
	res, err := a.db.Collection(auditLockName).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.MatchedCount > 0 || res.UpsertedCount > 0, nil
}
