package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/storage"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrTaskAlreadyReviewed = errors.New("task is already reviewed and cannot accept a new report")
	ErrContentRequired     = errors.New("report content is required")
	ErrDistanceRequired    = errors.New("distance is required for this sport")
	ErrMinutesRequired     = errors.New("minutes are required for this sport")
	ErrUploadURLError      = errors.New("failed to generate upload URL")
)

// UploadURLResponse carries a presigned PUT URL and the object key the
// trainee must include in the subsequent report.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// SubmitSolutionInput carries a trainee's training report. Distance is
// meters, Minutes a duration; which one is required depends on the
// task's sport type. Attachments are object keys from prior uploads.
type SubmitSolutionInput struct {
	Content     string
	Distance    *int
	Minutes     *int
	Attachments []string
}

// TrainerInfo is a catalog trainer enriched with live review statistics.
type TrainerInfo struct {
	domain.Trainer
	ReviewCount   int     `json:"reviewCount"`
	ReviewAverage float64 `json:"reviewAverage"`
}

// JoinResult is the terminal state of a join-link visit. Status is one of
// success or error; Message is human-readable either way.
type JoinResult struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	User     *domain.User `json:"user,omitempty"`
	Redirect string       `json:"redirect,omitempty"`
}

// TraineeProfile aggregates a trainee's activity for the profile view.
type TraineeProfile struct {
	Tasks         domain.StatusCounts          `json:"tasks"`
	AverageRating *domain.QualityRating        `json:"averageRating,omitempty"`
	Distribution  map[domain.QualityRating]int `json:"ratingDistribution"`
	Trainers      []TrainerBreakdown           `json:"trainers"`
}

// TrainerBreakdown is a trainee-side view of one trainer relationship.
type TrainerBreakdown struct {
	Trainer       domain.Trainer `json:"trainer"`
	TasksCount    int            `json:"tasksCount"`
	ReviewedTasks int            `json:"reviewedTasks"`
}

// SportStatsReport is the trainee's sport dashboard read model.
type SportStatsReport struct {
	Sports        []SportStatEntry `json:"sports"`
	TotalDistance int              `json:"totalDistance"`
	TotalMinutes  int              `json:"totalMinutes"`
	SportsCount   int              `json:"sportsCount"`
}

// SportStatEntry is one sport's aggregate, with rounded averages.
type SportStatEntry struct {
	Sport         domain.SportType `json:"sport"`
	DistanceSport bool             `json:"distanceSport"`
	Count         int              `json:"count"`
	TotalDistance int              `json:"totalDistance"`
	AvgDistance   int              `json:"avgDistance"`
	TotalMinutes  int              `json:"totalMinutes"`
	AvgMinutes    int              `json:"avgMinutes"`
}

// CalendarDay buckets a trainee's tasks on one day of a month.
type CalendarDay struct {
	Day   int           `json:"day"`
	Tasks []domain.Task `json:"tasks"`
}

// TraineeService owns the trainee-side operations: viewing and reporting
// on tasks, reviewing trainers, the join-link flow, and the statistics
// read models.
type TraineeService interface {
	// Task Viewing & Reporting
	MyTasks(ctx context.Context, traineeID string) ([]domain.Task, error)
	Task(ctx context.Context, traineeID, taskID string) (*domain.Task, error)
	SubmitSolution(ctx context.Context, traineeID, taskID string, input SubmitSolutionInput) (*domain.Task, error)

	// Attachment Process
	RequestAttachmentUploadURL(ctx context.Context, traineeID, taskID, contentType string) (*UploadURLResponse, error)
	AttachmentDownloadURL(ctx context.Context, traineeID, taskID, objectKey string) (string, error)

	// Trainers & Reviews
	Trainers(ctx context.Context) ([]TrainerInfo, error)
	TrainerReviews(ctx context.Context, trainerID string) ([]domain.TrainerReview, float64, error)
	AddTrainerReview(ctx context.Context, actor *domain.User, trainerID string, rating int, comment string) (*domain.TrainerReview, error)

	// Join-Link Flow
	Join(ctx context.Context, actor *domain.User, trainerID, traineeID string) (*JoinResult, error)

	// Statistics
	SportStats(ctx context.Context, traineeID string) (*SportStatsReport, error)
	Profile(ctx context.Context, traineeID string) (*TraineeProfile, error)
	Calendar(ctx context.Context, traineeID string, year int, month time.Month) ([]CalendarDay, error)
}

// --- Service Implementation ---

type traineeService struct {
	traineeRepo repository.TraineeRepository
	trainerRepo repository.TrainerRepository
	taskRepo    repository.TaskRepository
	reviewRepo  repository.ReviewRepository
	fileStorage storage.FileStorage
}

// NewTraineeService creates a new instance of traineeService.
func NewTraineeService(
	traineeRepo repository.TraineeRepository,
	trainerRepo repository.TrainerRepository,
	taskRepo repository.TaskRepository,
	reviewRepo repository.ReviewRepository,
	fileStorage storage.FileStorage,
) TraineeService {
	return &traineeService{
		traineeRepo: traineeRepo,
		trainerRepo: trainerRepo,
		taskRepo:    taskRepo,
		reviewRepo:  reviewRepo,
		fileStorage: fileStorage,
	}
}

// === Task Viewing & Reporting ===

// MyTasks retrieves every task assigned to the trainee.
func (s *traineeService) MyTasks(ctx context.Context, traineeID string) ([]domain.Task, error) {
	return s.taskRepo.GetByTraineeID(ctx, traineeID)
}

// Task retrieves one task, verifying it belongs to the trainee. A task
// belonging to someone else reads as not found rather than forbidden.
func (s *traineeService) Task(ctx context.Context, traineeID, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.TraineeID != traineeID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// SubmitSolution attaches a training report to the task and forces the
// status to submitted. A resubmission replaces the prior report wholesale;
// a reviewed task no longer accepts reports. Distance is required for
// distance sports and minutes for everything else.
func (s *traineeService) SubmitSolution(ctx context.Context, traineeID, taskID string, input SubmitSolutionInput) (*domain.Task, error) {
	task, err := s.Task(ctx, traineeID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == domain.StatusReviewed {
		return nil, ErrTaskAlreadyReviewed
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}
	if task.SportType.IsDistanceSport() {
		if input.Distance == nil {
			return nil, ErrDistanceRequired
		}
	} else if input.Minutes == nil {
		return nil, ErrMinutesRequired
	}

	task.Solution = &domain.Solution{
		ID:          uuid.NewString(),
		TaskID:      task.ID,
		Content:     input.Content,
		SubmittedAt: time.Now().UTC(),
		Distance:    input.Distance,
		Minutes:     input.Minutes,
		Attachments: input.Attachments,
	}
	task.Status = domain.StatusSubmitted

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// === Attachment Process ===

// RequestAttachmentUploadURL generates a presigned URL for the trainee to
// upload a report attachment directly to object storage. The returned
// object key must be included in the report's attachments.
func (s *traineeService) RequestAttachmentUploadURL(ctx context.Context, traineeID, taskID, contentType string) (*UploadURLResponse, error) {
	if contentType == "" {
		return nil, errors.New("content type is required")
	}

	task, err := s.Task(ctx, traineeID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == domain.StatusReviewed {
		return nil, ErrTaskAlreadyReviewed
	}

	fileExtension := "bin"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 && parts[1] != "" {
		fileExtension = parts[1]
	}
	objectKey := path.Join("attachments", traineeID, taskID, fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// AttachmentDownloadURL generates a temporary URL for the trainee to view
// one of their own report attachments.
func (s *traineeService) AttachmentDownloadURL(ctx context.Context, traineeID, taskID, objectKey string) (string, error) {
	task, err := s.Task(ctx, traineeID, taskID)
	if err != nil {
		return "", err
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

// === Trainers & Reviews ===

// Trainers lists the trainer catalog enriched with review counts and the
// numeric mean of submitted review ratings.
func (s *traineeService) Trainers(ctx context.Context) ([]TrainerInfo, error) {
	trainers, err := s.trainerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TrainerInfo, 0, len(trainers))
	for _, trainer := range trainers {
		reviews, err := s.reviewRepo.GetByTrainerID(ctx, trainer.ID)
		if err != nil {
			return nil, err
		}
		info := TrainerInfo{
			Trainer:       trainer,
			ReviewCount:   len(reviews),
			ReviewAverage: domain.ReviewAverage(reviews),
		}
		// Fall back to the seeded catalog rating until reviews exist.
		if info.ReviewCount == 0 {
			info.ReviewAverage = trainer.Rating
		}
		out = append(out, info)
	}
	return out, nil
}

// TrainerReviews returns the reviews left about one trainer and their
// numeric mean rating.
func (s *traineeService) TrainerReviews(ctx context.Context, trainerID string) ([]domain.TrainerReview, float64, error) {
	reviews, err := s.reviewRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, domain.ReviewAverage(reviews), nil
}

// AddTrainerReview appends a review stamped with the acting trainee's
// identity. Callers that are not trainees get a silent no-op. Repeat
// reviews per (trainer, trainee) pair append rather than replace.
func (s *traineeService) AddTrainerReview(ctx context.Context, actor *domain.User, trainerID string, rating int, comment string) (*domain.TrainerReview, error) {
	if actor == nil || !actor.IsTrainee() {
		return nil, nil
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidStarRating
	}

	review := &domain.TrainerReview{
		TrainerID:   trainerID,
		TraineeID:   actor.ID,
		TraineeName: actor.Name,
		Rating:      rating,
		Comment:     comment,
	}
	if _, err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// === Join-Link Flow ===

/// Join processes a join-link visit: validates the two identifiers, looks
// the trainee up in the catalog, synthesizes a trainee session when the
// acting session lacks one, and links the trainee to the trainer. The
// result always carries a human-readable message.
func (s *traineeService) Join(ctx context.Context, actor *domain.User, trainerID, traineeID string) (*JoinResult, error) {
	if trainerID == "" || traineeID == "" {
		return &JoinResult{
			Status:  "error",
			Message: "Invalid link: required parameters are missing.",
		}, nil
	}

	trainee, err := s.traineeRepo.CatalogGet(ctx, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &JoinResult{
				Status:  "error",
				Message: "Trainee is not known to the system.",
			}, nil
		}
		return nil, err
	}

	user := actor
	if user == nil || !user.IsTrainee() {
		user = &domain.User{
			ID:    trainee.ID,
			Name:  trainee.Name,
			Email: trainee.Email,
			Role:  domain.RoleTrainee,
		}
	}

	if err := s.linkForJoin(ctx, traineeID, trainerID); err != nil {
		return &JoinResult{
			Status:  "error",
			Message: "Something went wrong while joining. Please try again later.",
		}, nil
	}

	return &JoinResult{
		Status:   "success",
		Message:  fmt.Sprintf("You have been added to the trainer's roster. Welcome, %s!", trainee.Name),
		User:     user,
		Redirect: "/trainee",
	}, nil
}

// linkForJoin mirrors TrainerService.LinkTrainee for the join path: the
// explicit trainerID authorizes the link even though the actor is the
// trainee. Missing or already-linked entries are silent no-ops.
func (s *traineeService) linkForJoin(ctx context.Context, traineeID, trainerID string) error {
	if trainerID == "" {
		return nil
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

	err = s.traineeRepo.Link(ctx, trainerID, entry)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil
	}
	return err
}

// === Statistics ===

// SportStats aggregates the trainee's submitted training volume per
// sport. Only tasks carrying a solution count.
func (s *traineeService) SportStats(ctx context.Context, traineeID string) (*SportStatsReport, error) {
	tasks, err := s.taskRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		return nil, err
	}

	stats := domain.SportStats(tasks)
	report := &SportStatsReport{SportsCount: len(stats)}
	for _, stat := range stats {
		report.Sports = append(report.Sports, SportStatEntry{
			Sport:         stat.Sport,
			DistanceSport: stat.Sport.IsDistanceSport(),
			Count:         stat.Count,
			TotalDistance: stat.TotalDistance,
			AvgDistance:   stat.AvgDistance(),
			TotalMinutes:  stat.TotalMinutes,
			AvgMinutes:    stat.AvgMinutes(),
		})
		report.TotalDistance += stat.TotalDistance
		report.TotalMinutes += stat.TotalMinutes
	}
	sort.Slice(report.Sports, func(i, j int) bool {
		return report.Sports[i].Sport < report.Sports[j].Sport
	})
	return report, nil
}

// Profile aggregates the trainee's tasks, grades, and trainers.
func (s *traineeService) Profile(ctx context.Context, traineeID string) (*TraineeProfile, error) {
	tasks, err := s.taskRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		return nil, err
	}

	profile := &TraineeProfile{
		Tasks:        domain.CountByStatus(tasks),
		Distribution: domain.RatingDistribution(tasks),
	}
	if avg, ok := domain.AverageQualityOfTasks(tasks); ok {
		profile.AverageRating = &avg
	}

	// Per-trainer breakdown, preserving catalog order.
	byTrainer := make(map[string][]domain.Task)
	for _, t := range tasks {
		byTrainer[t.TrainerID] = append(byTrainer[t.TrainerID], t)
	}
	trainers, err := s.trainerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, trainer := range trainers {
		trainerTasks, ok := byTrainer[trainer.ID]
		if !ok {
			continue
		}
		counts := domain.CountByStatus(trainerTasks)
		profile.Trainers = append(profile.Trainers, TrainerBreakdown{
			Trainer:       trainer,
			TasksCount:    counts.Total,
			ReviewedTasks: counts.Reviewed,
		})
	}
	return profile, nil
}

// Calendar buckets the trainee's tasks by day for one month. A task lands
// on its due date, falling back to its creation date.
func (s *traineeService) Calendar(ctx context.Context, traineeID string, year int, month time.Month) ([]CalendarDay, error) {
	tasks, err := s.taskRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int][]domain.Task)
	for _, t := range tasks {
		date := t.CreatedAt
		if t.DueDate != nil {
			date = *t.DueDate
		}
		if date.Year() != year || date.Month() != month {
			continue
		}
		byDay[date.Day()] = append(byDay[date.Day()], t)
	}

	days := make([]CalendarDay, 0, len(byDay))
	for day, dayTasks := range byDay {
		days = append(days, CalendarDay{Day: day, Tasks: dayTasks})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days, nil
}
