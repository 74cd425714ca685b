package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrTraineeNotFound    = errors.New("trainee not found in catalog")
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskAccessDenied   = errors.New("access denied to this task")
	ErrNoSolution         = errors.New("task has no submitted solution to review")
	ErrInvalidRating      = errors.New("invalid quality rating")
	ErrInvalidStarRating  = errors.New("review rating must be between 1 and 5")
	ErrAttachmentNotFound = errors.New("attachment does not belong to this solution")
	ErrDownloadURLError   = errors.New("failed to generate download URL")
)

// TraineeWithStats is a roster entry enriched with live task statistics.
type TraineeWithStats struct {
	domain.Trainee
	PendingTasks   int `json:"pendingTasks"`
	SubmittedTasks int `json:"submittedTasks"`
	ReviewedTasks  int `json:"reviewedTasks"`
}

// TrainerProfile aggregates a trainer's activity for the profile view.
type TrainerProfile struct {
	Tasks         domain.StatusCounts            `json:"tasks"`
	AverageRating *domain.QualityRating          `json:"averageRating,omitempty"`
	Distribution  map[domain.QualityRating]int   `json:"ratingDistribution"`
	TraineesCount int                            `json:"traineesCount"`
	Trainees      []TraineeWithStats             `json:"trainees"`
}

// CreateTaskInput carries the caller-supplied task fields. Status is
// passed through as-is; the API layer always sends pending.
type CreateTaskInput struct {
	Title       string
	Description string
	TraineeID   string
	SportType   domain.SportType
	Status      domain.TaskStatus
	DueDate     *time.Time
}

// TrainerService owns the trainer-side operations: roster management,
// task creation, solution review, and join links.
type TrainerService interface {
	// Roster Management
	Catalog(ctx context.Context) ([]domain.Trainee, error)
	LinkTrainee(ctx context.Context, actor *domain.User, traineeID, trainerID string) error
	UnlinkTrainee(ctx context.Context, trainerID, traineeID string) error
	Roster(ctx context.Context, trainerID string) ([]TraineeWithStats, error)
	JoinLink(ctx context.Context, trainerID, traineeID string) (string, error)

	// Task Management
	CreateTask(ctx context.Context, trainerID string, input CreateTaskInput) (*domain.Task, error)
	FindSameDayTask(ctx context.Context, traineeID string, dueDate time.Time) (*domain.Task, error)
	Tasks(ctx context.Context, trainerID string) ([]domain.Task, error)
	ReviewSolution(ctx context.Context, trainerID, taskID string, rating domain.QualityRating, feedback string) (*domain.Task, error)
	AttachmentDownloadURL(ctx context.Context, trainerID, taskID, objectKey string) (string, error)

	// Profile & Reviews
	Profile(ctx context.Context, trainerID string) (*TrainerProfile, error)
	Reviews(ctx context.Context, trainerID string) ([]domain.TrainerReview, float64, error)
}

// --- Service Implementation ---

type trainerService struct {
	traineeRepo repository.TraineeRepository
	trainerRepo repository.TrainerRepository
	taskRepo    repository.TaskRepository
	reviewRepo  repository.ReviewRepository
	fileStorage storage.FileStorage
	baseURL     string
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	traineeRepo repository.TraineeRepository,
	trainerRepo repository.TrainerRepository,
	taskRepo repository.TaskRepository,
	reviewRepo repository.ReviewRepository,
	fileStorage storage.FileStorage,
	baseURL string,
) TrainerService {
	return &trainerService{
		traineeRepo: traineeRepo,
		trainerRepo: trainerRepo,
		taskRepo:    taskRepo,
		reviewRepo:  reviewRepo,
		fileStorage: fileStorage,
		baseURL:     baseURL,
	}
}

// === Roster Management ===

// Catalog lists every trainee known to the system.
func (s *trainerService) Catalog(ctx context.Context) ([]domain.Trainee, error) {
	return s.traineeRepo.Catalog(ctx)
}

// LinkTrainee copies a catalog trainee into a trainer's roster with its
// task count reset. A missing catalog entry or an existing roster entry
// makes this a silent no-op. Linking is permitted when the actor is a
// trainer, or when an explicit trainerID is supplied — the latter is the
// join-link path, where the acting session is the trainee being linked
// and no proof of control over the trainer identity exists. Known
// authorization gap, preserved deliberately.
func (s *trainerService) LinkTrainee(ctx context.Context, actor *domain.User, traineeID, trainerID string) error {
	targetTrainer := trainerID
	if targetTrainer == "" {
		if actor == nil || !actor.IsTrainer() {
			return nil
		}
		targetTrainer = actor.ID
	}

	trainee, err := s.traineeRepo.CatalogGet(ctx, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	entry := *trainee
	entry.TasksCount = 0
	entry.AverageRating = nil

	err = s.traineeRepo.Link(ctx, targetTrainer, entry)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil
	}
	return err
}

// UnlinkTrainee removes the trainee from the roster and cascades deletion
// of every task assigned to that trainee. Unlinking an unknown trainee is
// a no-op, but the cascade still runs.
func (s *trainerService) UnlinkTrainee(ctx context.Context, trainerID, traineeID string) error {
	err := s.traineeRepo.Unlink(ctx, trainerID, traineeID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return s.taskRepo.DeleteByTraineeID(ctx, traineeID)
}

// Roster returns the trainer's linked trainees with live task counts and
// the bucketed average rating.
func (s *trainerService) Roster(ctx context.Context, trainerID string) ([]TraineeWithStats, error) {
	linked, err := s.traineeRepo.Linked(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	out := make([]TraineeWithStats, 0, len(linked))
	for _, trainee := range linked {
		tasks, err := s.taskRepo.GetByTraineeID(ctx, trainee.ID)
		if err != nil {
			return nil, err
		}
		counts := domain.CountByStatus(tasks)
		entry := TraineeWithStats{
			Trainee:        trainee,
			PendingTasks:   counts.Pending,
			SubmittedTasks: counts.Submitted,
			ReviewedTasks:  counts.Reviewed,
		}
		entry.TasksCount = counts.Total
		if avg, ok := domain.AverageQualityOfTasks(tasks); ok {
			entry.AverageRating = &avg
		} else {
			entry.AverageRating = nil
		}
		out = append(out, entry)
	}
	return out, nil
}

// JoinLink builds the shareable URL that attaches the trainee to the
// trainer when opened. The QR image itself is rendered by the consumer.
func (s *trainerService) JoinLink(ctx context.Context, trainerID, traineeID string) (string, error) {
	if trainerID == "" || traineeID == "" {
		return "", errors.New("trainer ID and trainee ID are required")
	}
	if _, err := s.traineeRepo.CatalogGet(ctx, traineeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrTraineeNotFound
		}
		return "", err
	}
	return fmt.Sprintf("%s/join?trainer=%s&trainee=%s", s.baseURL, trainerID, traineeID), nil
}

// === Task Management ===

// CreateTask appends a new task for a linked trainee. The repository
// generates the ID and creation timestamp.
func (s *trainerService) CreateTask(ctx context.Context, trainerID string, input CreateTaskInput) (*domain.Task, error) {
	if trainerID == "" {
		return nil, errors.New("trainer ID is required")
	}
	if input.Status == "" {
		input.Status = domain.StatusPending
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		TrainerID:   trainerID,
		TraineeID:   input.TraineeID,
		Status:      input.Status,
		SportType:   input.SportType,
		DueDate:     input.DueDate,
	}

	taskID, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	task.ID = taskID
	return task, nil
}

// FindSameDayTask returns an existing task for the trainee due on the
// same calendar day, or nil. Callers surface this as a soft warning; it
// never blocks creation.
func (s *trainerService) FindSameDayTask(ctx context.Context, traineeID string, dueDate time.Time) (*domain.Task, error) {
	tasks, err := s.taskRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	y, m, d := dueDate.Date()
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		ty, tm, td := t.DueDate.Date()
		if ty == y && tm == m && td == d {
			task := t
			return &task, nil
		}
	}
	return nil, nil
}

// Tasks retrieves every task the trainer has created.
func (s *trainerService) Tasks(ctx context.Context, trainerID string) ([]domain.Task, error) {
	return s.taskRepo.GetByTrainerID(ctx, trainerID)
}

// ReviewSolution grades a submitted solution. The task must carry a
// solution and be in submitted state; afterwards the status is reviewed
// and the grade and feedback persist with the task.
func (s *trainerService) ReviewSolution(ctx context.Context, trainerID, taskID string, rating domain.QualityRating, feedback string) (*domain.Task, error) {
	if !rating.Valid() {
		return nil, ErrInvalidRating
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.TrainerID != trainerID {
		return nil, ErrTaskAccessDenied
	}
	if task.Solution == nil || task.Status != domain.StatusSubmitted {
		return nil, ErrNoSolution
	}

	task.QualityRating = &rating
	task.Feedback = feedback
	task.Status = domain.StatusReviewed

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// AttachmentDownloadURL generates a temporary URL for the trainer to view
// a solution attachment while reviewing.
func (s *trainerService) AttachmentDownloadURL(ctx context.Context, trainerID, taskID, objectKey string) (string, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrTaskNotFound
		}
		return "", err
	}
	if task.TrainerID != trainerID {
		return "", ErrTaskAccessDenied
	}
	if task.Solution == nil || !containsAttachment(task.Solution.Attachments, objectKey) {
		return "", ErrAttachmentNotFound
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return url, nil
}

func containsAttachment(attachments []string, objectKey string) bool {
	for _, key := range attachments {
		if key == objectKey {
			return true
		}
	}
	return false
}

// === Profile & Reviews ===

// Profile aggregates the trainer's tasks, grade distribution, and roster.
func (s *trainerService) Profile(ctx context.Context, trainerID string) (*TrainerProfile, error) {
	tasks, err := s.taskRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	roster, err := s.Roster(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	profile := &TrainerProfile{
		Tasks:         domain.CountByStatus(tasks),
		Distribution:  domain.RatingDistribution(tasks),
		TraineesCount: len(roster),
		Trainees:      roster,
	}
	if avg, ok := domain.AverageQualityOfTasks(tasks); ok {
		profile.AverageRating = &avg
	}
	return profile, nil
}

// Reviews returns the reviews left about the trainer and their numeric
// mean rating.
func (s *trainerService) Reviews(ctx context.Context, trainerID string) ([]domain.TrainerReview, float64, error) {
	reviews, err := s.reviewRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, domain.ReviewAverage(reviews), nil
}
