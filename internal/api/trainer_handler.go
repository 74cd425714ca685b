package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request/Response Structs ---

type LinkTraineeRequest struct {
	TraineeID string `json:"traineeId" binding:"required"`
}

type CreateTaskRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description" binding:"required"`
	TraineeID   string           `json:"traineeId" binding:"required"`
	SportType   domain.SportType `json:"sportType" binding:"required"`
	DueDate     string           `json:"dueDate"` // YYYY-MM-DD, optional
	// CheckOnly performs the same-day duplicate check without creating
	// anything; the UI uses it to drive its soft confirmation.
	CheckOnly bool `json:"checkOnly"`
}

type CreateTaskResponse struct {
	Task *domain.Task `json:"task,omitempty"`
	// DuplicateOf is set when the trainee already has a task due the same
	// day. It is a warning, never a rejection.
	DuplicateOf *domain.Task `json:"duplicateOf,omitempty"`
}

type ReviewSolutionRequest struct {
	Rating   domain.QualityRating `json:"rating" binding:"required"`
	Feedback string               `json:"feedback" binding:"required"`
}

type JoinLinkResponse struct {
	URL string `json:"url"`
}

type TrainerReviewsResponse struct {
	Reviews []domain.TrainerReview `json:"reviews"`
	Average float64                `json:"average"`
}

// --- Handler Methods ---

// GetCatalog lists every trainee known to the system.
func (h *TrainerHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.trainerService.Catalog(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load trainee catalog")
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// GetRoster returns the trainer's linked trainees with live statistics.
func (h *TrainerHandler) GetRoster(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	roster, err := h.trainerService.Roster(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load roster")
		return
	}
	c.JSON(http.StatusOK, roster)
}

// LinkTrainee adds a catalog trainee to the trainer's roster. Unknown or
// already-linked trainees are silent no-ops, so this always returns 204.
func (h *TrainerHandler) LinkTrainee(c *gin.Context) {
	var req LinkTraineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	actor := currentUserFromContext(c)
	if err := h.trainerService.LinkTrainee(c.Request.Context(), actor, req.TraineeID, ""); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to link trainee")
		return
	}
	c.Status(http.StatusNoContent)
}

// UnlinkTrainee removes the trainee from the roster and deletes all of
// the trainee's tasks.
func (h *TrainerHandler) UnlinkTrainee(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	traineeID := c.Param("traineeId")
	if err := h.trainerService.UnlinkTrainee(c.Request.Context(), trainerID, traineeID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to unlink trainee")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetJoinLink builds the shareable join URL for a catalog trainee.
func (h *TrainerHandler) GetJoinLink(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	url, err := h.trainerService.JoinLink(c.Request.Context(), trainerID, c.Param("traineeId"))
	if err != nil {
		if errors.Is(err, service.ErrTraineeNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to build join link")
		}
		return
	}
	c.JSON(http.StatusOK, JoinLinkResponse{URL: url})
}

// GetTasks lists every task the trainer has created.
func (h *TrainerHandler) GetTasks(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	tasks, err := h.trainerService.Tasks(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a training task for a trainee. When the trainee
// already has a task due the same day, the response carries the existing
// task as a soft duplicate warning; with checkOnly set, only the check
// runs.
func (h *TrainerHandler) CreateTask(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Due date must be in YYYY-MM-DD format")
			return
		}
		dueDate = &parsed
	}

	var duplicate *domain.Task
	if dueDate != nil {
		duplicate, err = h.trainerService.FindSameDayTask(c.Request.Context(), req.TraineeID, *dueDate)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to check for duplicate tasks")
			return
		}
	}

	if req.CheckOnly {
		c.JSON(http.StatusOK, CreateTaskResponse{DuplicateOf: duplicate})
		return
	}

	task, err := h.trainerService.CreateTask(c.Request.Context(), trainerID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		TraineeID:   req.TraineeID,
		SportType:   req.SportType,
		Status:      domain.StatusPending,
		DueDate:     dueDate,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, CreateTaskResponse{Task: task, DuplicateOf: duplicate})
}

// ReviewSolution grades a submitted training report.
func (h *TrainerHandler) ReviewSolution(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ReviewSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	task, err := h.trainerService.ReviewSolution(c.Request.Context(), trainerID, c.Param("taskId"), req.Rating, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTaskAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrNoSolution), errors.Is(err, service.ErrInvalidRating):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to review solution")
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

// GetAttachmentURL returns a temporary download URL for a report
// attachment on one of the trainer's tasks.
func (h *TrainerHandler) GetAttachmentURL(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'key' is required")
		return
	}

	url, err := h.trainerService.AttachmentDownloadURL(c.Request.Context(), trainerID, c.Param("taskId"), objectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTaskAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAttachmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// GetProfile returns the trainer's aggregated profile statistics.
func (h *TrainerHandler) GetProfile(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.trainerService.Profile(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetReviews returns the reviews trainees left about this trainer.
func (h *TrainerHandler) GetReviews(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	reviews, average, err := h.trainerService.Reviews(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load reviews")
		return
	}
	c.JSON(http.StatusOK, TrainerReviewsResponse{Reviews: reviews, Average: average})
}
