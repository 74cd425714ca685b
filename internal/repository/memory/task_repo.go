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

// memoryTaskRepository implements repository.TaskRepository. Tasks are
// kept in creation order; lookups are linear scans, which is appropriate
// for the small session-lifetime collections this store holds.
type memoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

// NewTaskRepository creates an empty in-memory task repository.
func NewTaskRepository() repository.TaskRepository {
	return &memoryTaskRepository{}
}

// cloneTask copies a task so callers never alias the stored pointers.
func cloneTask(t domain.Task) domain.Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.QualityRating != nil {
		rating := *t.QualityRating
		out.QualityRating = &rating
	}
	if t.Solution != nil {
		sol := *t.Solution
		if t.Solution.Distance != nil {
			d := *t.Solution.Distance
			sol.Distance = &d
		}
		if t.Solution.Minutes != nil {
			m := *t.Solution.Minutes
			sol.Minutes = &m
		}
		sol.Attachments = append([]string(nil), t.Solution.Attachments...)
		out.Solution = &sol
	}
	return out
}

// Create stores a new task with a generated ID and creation timestamp.
// The initial status is whatever the caller supplied.
func (r *memoryTaskRepository) Create(ctx context.Context, task *domain.Task) (string, error) {
	if task.Title == "" || task.TrainerID == "" || task.TraineeID == "" {
		return "", errors.New("task title, trainer ID, and trainee ID are required")
	}

	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, cloneTask(*task))
	return task.ID, nil
}

// GetByID retrieves a task by its ID.
func (r *memoryTaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tasks {
		if t.ID == taskID {
			task := cloneTask(t)
			return &task, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByTrainerID retrieves all tasks created by a trainer.
func (r *memoryTaskRepository) GetByTrainerID(ctx context.Context, trainerID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Task
	for _, t := range r.tasks {
		if t.TrainerID == trainerID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

// GetByTraineeID retrieves all tasks assigned to a trainee.
func (r *memoryTaskRepository) GetByTraineeID(ctx context.Context, traineeID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Task
	for _, t := range r.tasks {
		if t.TraineeID == traineeID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

// Update replaces the stored task matching the given ID.
func (r *memoryTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		return errors.New("task ID is required for update")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tasks {
		if t.ID == task.ID {
			r.tasks[i] = cloneTask(*task)
			return nil
		}
	}
	return repository.ErrNotFound
}

// DeleteByTraineeID removes every task assigned to the trainee. This is
// the cascade half of unlinking a trainee from a roster.
func (r *memoryTaskRepository) DeleteByTraineeID(ctx context.Context, traineeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if t.TraineeID != traineeID {
			kept = append(kept, t)
		}
	}
	r.tasks = kept
	return nil
}
