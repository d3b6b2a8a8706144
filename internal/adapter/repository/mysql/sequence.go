package mysql

import (
	"context"
	"errors"

	sequenceDomain "otsc-backend/internal/domain/sequence"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SequenceRepository struct{ db *gorm.DB }

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next locks the counter row, increments it and returns the new value.
// Runs on whatever db handle the repository is bound to, so inside a unit
// of work the increment commits or rolls back with the rest of the
// mutation.
func (r *SequenceRepository) Next(ctx context.Context, prefix string) (uint64, error) {
	var c sequenceDomain.Counter
	tx := r.db.WithContext(ctx)

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("prefix = ?", prefix).
		First(&c).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c = sequenceDomain.Counter{Prefix: prefix, Value: 1}
		if err := tx.Create(&c).Error; err != nil {
			return 0, err
		}
		return c.Value, nil
	case err != nil:
		return 0, err
	}

	c.Value++
	if err := tx.Save(&c).Error; err != nil {
		return 0, err
	}
	return c.Value, nil
}
