package storage

import (
	"context"
	"errors"

	pkgerrors "github.com/bookhavenhq/bookhaven/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists store snapshots to the embedded database. Each store
// writes its own key independently; there is no cross-key transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a snapshot repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the persisted value for key, or a not-found coded error when no
// snapshot exists yet.
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	var snap Snapshot
	err := r.db.WithContext(ctx).First(&snap, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "snapshot not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snapshot")
	}
	return snap.Value, nil
}

// Put upserts the value for key.
func (r *Repository) Put(ctx context.Context, key, value string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&Snapshot{Key: key, Value: value}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist snapshot")
	}
	return nil
}

// Delete removes the snapshot for key. Deleting an absent key is a no-op.
func (r *Repository) Delete(ctx context.Context, key string) error {
	err := r.db.WithContext(ctx).Delete(&Snapshot{}, "key = ?", key).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete snapshot")
	}
	return nil
}
