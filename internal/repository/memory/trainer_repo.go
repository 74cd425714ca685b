package memory

import (
	"context"
	"sync"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
)

// memoryTrainerRepository implements repository.TrainerRepository over
// the seeded trainer catalog. The catalog is read-only reference data.
type memoryTrainerRepository struct {
	mu      sync.RWMutex
	catalog []domain.Trainer
}

// NewTrainerRepository creates a trainer repository with the given
// catalog as its injected initial data.
func NewTrainerRepository(catalog []domain.Trainer) repository.TrainerRepository {
	return &memoryTrainerRepository{
		catalog: append([]domain.Trainer(nil), catalog...),
	}
}

// List returns every trainer in the catalog.
func (r *memoryTrainerRepository) List(ctx context.Context) ([]domain.Trainer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Trainer(nil), r.catalog...), nil
}

// GetByID looks a trainer up by ID.
func (r *memoryTrainerRepository) GetByID(ctx context.Context, trainerID string) (*domain.Trainer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.catalog {
		if t.ID == trainerID {
			trainer := t
			return &trainer, nil
		}
	}
	return nil, repository.ErrNotFound
}
