package dashboard

import (
	"context"

	"gorm.io/gorm"
)

// Repository loads the data snapshot the dashboard computes over.
type Repository interface {
	LoadSnapshot(ctx context.Context) (snapshot, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new dashboard repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LoadSnapshot(ctx context.Context) (snapshot, error) {
	var s snapshot
	db := r.db.WithContext(ctx)

	if err := db.Find(&s.Tasks).Error; err != nil {
		return s, err
	}
	if err := db.Find(&s.Projects).Error; err != nil {
		return s, err
	}
	if err := db.Find(&s.Reviews).Error; err != nil {
		return s, err
	}
	if err := db.Find(&s.Decisions).Error; err != nil {
		return s, err
	}
	if err := db.Find(&s.Samples).Error; err != nil {
		return s, err
	}
	if err := db.Find(&s.Briefs).Error; err != nil {
		return s, err
	}
	if err := db.Find(&s.DoDs).Error; err != nil {
		return s, err
	}
	return s, nil
}
