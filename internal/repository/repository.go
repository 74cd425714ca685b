package repository

import (
	"context"

	"alcyxob/coaching-app/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrAlreadyExists = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// AccountRepository defines the interface for registered credential records.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (string, error)
	GetByLogin(ctx context.Context, login string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// TraineeRepository holds the fixed trainee catalog and the per-trainer
// linked rosters. Linking copies a catalog entry into a roster; the
// catalog itself is never mutated after seeding.
type TraineeRepository interface {
	Catalog(ctx context.Context) ([]domain.Trainee, error)
	CatalogGet(ctx context.Context, traineeID string) (*domain.Trainee, error)
	Link(ctx context.Context, trainerID string, trainee domain.Trainee) error
	Unlink(ctx context.Context, trainerID, traineeID string) error
	Linked(ctx context.Context, trainerID string) ([]domain.Trainee, error)
	IsLinked(ctx context.Context, trainerID, traineeID string) (bool, error)
}

// TrainerRepository exposes the read-only trainer catalog.
type TrainerRepository interface {
	List(ctx context.Context) ([]domain.Trainer, error)
	GetByID(ctx context.Context, trainerID string) (*domain.Trainer, error)
}

// TaskRepository defines the interface for task data. Update replaces the
// stored task wholesale; partial-merge semantics live in the services.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (string, error)
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)
	GetByTrainerID(ctx context.Context, trainerID string) ([]domain.Task, error)
	GetByTraineeID(ctx context.Context, traineeID string) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	DeleteByTraineeID(ctx context.Context, traineeID string) error
}

// ReviewRepository defines the interface for trainer reviews. Reviews
// only ever append.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.TrainerReview) (string, error)
	GetByTrainerID(ctx context.Context, trainerID string) ([]domain.TrainerReview, error)
	GetByTraineeID(ctx context.Context, traineeID string) ([]domain.TrainerReview, error)
}
