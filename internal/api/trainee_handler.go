package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// TraineeHandler holds the trainee-side service dependencies. The auth
// service is needed by the join flow to mint a session token for the
// synthesized trainee user.
type TraineeHandler struct {
	traineeService service.TraineeService
	authService    service.AuthService
}

// NewTraineeHandler creates a new TraineeHandler.
func NewTraineeHandler(traineeService service.TraineeService, authService service.AuthService) *TraineeHandler {
	return &TraineeHandler{traineeService: traineeService, authService: authService}
}

// --- Request/Response Structs ---

type SubmitSolutionRequest struct {
	Content     string   `json:"content" binding:"required"`
	Distance    *int     `json:"distance"`
	Minutes     *int     `json:"minutes"`
	Attachments []string `json:"attachments"`
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type JoinResponse struct {
	service.JoinResult
	Token string `json:"token,omitempty"`
}

// --- Handler Methods ---

// GetMyTasks lists the trainee's tasks.
func (h *TraineeHandler) GetMyTasks(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	tasks, err := h.traineeService.MyTasks(c.Request.Context(), traineeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTask returns one of the trainee's tasks by ID.
func (h *TraineeHandler) GetTask(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	task, err := h.traineeService.Task(c.Request.Context(), traineeID, c.Param("taskId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTaskAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load task")
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

// SubmitSolution files (or replaces) the trainee's training report on a
// task and moves the task to submitted.
func (h *TraineeHandler) SubmitSolution(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SubmitSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	task, err := h.traineeService.SubmitSolution(c.Request.Context(), traineeID, c.Param("taskId"), service.SubmitSolutionInput{
		Content:     req.Content,
		Distance:    req.Distance,
		Minutes:     req.Minutes,
		Attachments: req.Attachments,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTaskAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrTaskAlreadyReviewed),
			errors.Is(err, service.ErrContentRequired),
			errors.Is(err, service.ErrDistanceRequired),
			errors.Is(err, service.ErrMinutesRequired):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit report")
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

// RequestUploadURL hands out a presigned PUT URL for a report attachment.
func (h *TraineeHandler) RequestUploadURL(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.traineeService.RequestAttachmentUploadURL(c.Request.Context(), traineeID, c.Param("taskId"), req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTaskAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrTaskAlreadyReviewed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAttachmentURL returns a temporary download URL for one of the
// trainee's own report attachments.
func (h *TraineeHandler) GetAttachmentURL(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'key' is required")
		return
	}

	url, err := h.traineeService.AttachmentDownloadURL(c.Request.Context(), traineeID, c.Param("taskId"), objectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, service.ErrAttachmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTaskAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// GetTrainers lists the trainer catalog enriched with review statistics.
func (h *TraineeHandler) GetTrainers(c *gin.Context) {
	trainers, err := h.traineeService.Trainers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load trainers")
		return
	}
	c.JSON(http.StatusOK, trainers)
}

// GetTrainerReviews returns the reviews left about one trainer.
func (h *TraineeHandler) GetTrainerReviews(c *gin.Context) {
	reviews, average, err := h.traineeService.TrainerReviews(c.Request.Context(), c.Param("trainerId"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "average": average})
}

// AddTrainerReview records a 1..5 star review about a trainer.
func (h *TraineeHandler) AddTrainerReview(c *gin.Context) {
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	actor := currentUserFromContext(c)
	review, err := h.traineeService.AddTrainerReview(c.Request.Context(), actor, c.Param("trainerId"), req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStarRating) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save review")
		}
		return
	}
	if review == nil {
		// Non-trainee actors are ignored without complaint.
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetSportStats returns the trainee's per-sport aggregates.
func (h *TraineeHandler) GetSportStats(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	report, err := h.traineeService.SportStats(c.Request.Context(), traineeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load sport statistics")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetProfile returns the trainee's aggregated profile statistics.
func (h *TraineeHandler) GetProfile(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.traineeService.Profile(c.Request.Context(), traineeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetCalendar buckets the trainee's tasks into the days of one month.
// Defaults to the current month when year/month are absent.
func (h *TraineeHandler) GetCalendar(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Query parameter 'year' must be a number")
			return
		}
		year = parsed
	}
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			abortWithError(c, http.StatusBadRequest, "Query parameter 'month' must be 1..12")
			return
		}
		month = time.Month(parsed)
	}

	days, err := h.traineeService.Calendar(c.Request.Context(), traineeID, year, month)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load calendar")
		return
	}
	c.JSON(http.StatusOK, days)
}

// Join is the public join-link endpoint. It never requires a session;
// when the visitor has no trainee session the service synthesizes one
// and this handler mints a token for it.
func (h *TraineeHandler) Join(c *gin.Context) {
	actor := currentUserFromContext(c)
	result, err := h.traineeService.Join(c.Request.Context(), actor, c.Query("trainer"), c.Query("trainee"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to process join link")
		return
	}

	resp := JoinResponse{JoinResult: *result}
	if result.Status == "success" && result.User != nil {
		token, err := h.authService.TokenForUser(*result.User)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to create session")
			return
		}
		resp.Token = token
	}
	c.JSON(http.StatusOK, resp)
}
