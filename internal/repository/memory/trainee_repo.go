package memory

import (
	"context"
	"sync"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
)

// memoryTraineeRepository implements repository.TraineeRepository. The
// catalog is fixed at construction; rosters are keyed by trainer ID and
// preserve link order.
type memoryTraineeRepository struct {
	mu      sync.RWMutex
	catalog []domain.Trainee
	rosters map[string][]domain.Trainee
}

// NewTraineeRepository creates a trainee repository with the given
// catalog as its injected initial data.
func NewTraineeRepository(catalog []domain.Trainee) repository.TraineeRepository {
	return &memoryTraineeRepository{
		catalog: append([]domain.Trainee(nil), catalog...),
		rosters: make(map[string][]domain.Trainee),
	}
}

// Catalog returns every trainee known to the system.
func (r *memoryTraineeRepository) Catalog(ctx context.Context) ([]domain.Trainee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Trainee(nil), r.catalog...), nil
}

// CatalogGet looks a trainee up in the catalog by ID.
func (r *memoryTraineeRepository) CatalogGet(ctx context.Context, traineeID string) (*domain.Trainee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.catalog {
		if t.ID == traineeID {
			trainee := t
			return &trainee, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Link adds the trainee to the trainer's roster. Linking an already
// linked trainee is rejected with ErrAlreadyExists so callers can treat
// the second attempt as a no-op.
func (r *memoryTraineeRepository) Link(ctx context.Context, trainerID string, trainee domain.Trainee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.rosters[trainerID] {
		if t.ID == trainee.ID {
			return repository.ErrAlreadyExists
		}
	}
	r.rosters[trainerID] = append(r.rosters[trainerID], trainee)
	return nil
}

// Unlink removes the trainee from the trainer's roster only; task
// cleanup is the caller's job.
func (r *memoryTraineeRepository) Unlink(ctx context.Context, trainerID, traineeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	roster := r.rosters[trainerID]
	for i, t := range roster {
		if t.ID == traineeID {
			r.rosters[trainerID] = append(roster[:i], roster[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// Linked returns the trainer's roster in link order.
func (r *memoryTraineeRepository) Linked(ctx context.Context, trainerID string) ([]domain.Trainee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Trainee(nil), r.rosters[trainerID]...), nil
}

// IsLinked reports whether the trainee is on the trainer's roster.
func (r *memoryTraineeRepository) IsLinked(ctx context.Context, trainerID, traineeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.rosters[trainerID] {
		if t.ID == traineeID {
			return true, nil
		}
	}
	return false, nil
}
