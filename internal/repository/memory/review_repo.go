package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"github.com/google/uuid"
)

// memoryReviewRepository implements repository.ReviewRepository. Reviews
// append in submission order and are never rewritten.
type memoryReviewRepository struct {
	mu      sync.RWMutex
	reviews []domain.TrainerReview
}

// NewReviewRepository creates an in-memory review repository, optionally
// pre-populated with seed reviews.
func NewReviewRepository(seed []domain.TrainerReview) repository.ReviewRepository {
	return &memoryReviewRepository{
		reviews: append([]domain.TrainerReview(nil), seed...),
	}
}

// Create appends a new review with a generated ID and timestamp.
func (r *memoryReviewRepository) Create(ctx context.Context, review *domain.TrainerReview) (string, error) {
	if review.TrainerID == "" || review.TraineeID == "" {
		return "", errors.New("trainer ID and trainee ID are required")
	}

	review.ID = uuid.NewString()
	review.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, *review)
	return review.ID, nil
}

// GetByTrainerID retrieves all reviews left about a trainer.
func (r *memoryReviewRepository) GetByTrainerID(ctx context.Context, trainerID string) ([]domain.TrainerReview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.TrainerReview
	for _, rv := range r.reviews {
		if rv.TrainerID == trainerID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// GetByTraineeID retrieves all reviews a trainee has left.
func (r *memoryReviewRepository) GetByTraineeID(ctx context.Context, traineeID string) ([]domain.TrainerReview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.TrainerReview
	for _, rv := range r.reviews {
		if rv.TraineeID == traineeID {
			out = append(out, rv)
		}
	}
	return out, nil
}
