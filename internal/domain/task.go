package domain

import "time"

// TaskStatus type for the task lifecycle. Status only moves forward:
// pending/in_progress -> submitted -> reviewed.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusSubmitted  TaskStatus = "submitted" // Trainee sent a report
	StatusReviewed   TaskStatus = "reviewed"  // Trainer graded the report
)

// QualityRating is the trainer's qualitative grade on a reviewed solution.
type QualityRating string

const (
	RatingExcellent        QualityRating = "excellent"
	RatingGood             QualityRating = "good"
	RatingSatisfactory     QualityRating = "satisfactory"
	RatingNeedsImprovement QualityRating = "needs_improvement"
)

// Valid reports whether r is one of the four fixed grade levels.
func (r QualityRating) Valid() bool {
	switch r {
	case RatingExcellent, RatingGood, RatingSatisfactory, RatingNeedsImprovement:
		return true
	}
	return false
}

// Task is an assigned unit of training work, created by a trainer for a
// trainee. A task holds at most one Solution; resubmission overwrites it.
type Task struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	TrainerID     string         `json:"trainerId"`
	TraineeID     string         `json:"traineeId"`
	Status        TaskStatus     `json:"status"`
	SportType     SportType      `json:"sportType"`
	CreatedAt     time.Time      `json:"createdAt"`
	DueDate       *time.Time     `json:"dueDate,omitempty"`
	Solution      *Solution      `json:"solution,omitempty"`
	QualityRating *QualityRating `json:"qualityRating,omitempty"`
	Feedback      string         `json:"feedback,omitempty"`
}

// Solution is a trainee's report against a task. Distance is recorded in
// meters for distance sports, Minutes for everything else; both may be
// present. Attachments hold object-storage keys.
type Solution struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	Content     string    `json:"content"`
	SubmittedAt time.Time `json:"submittedAt"`
	Distance    *int      `json:"distance,omitempty"`
	Minutes     *int      `json:"minutes,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
}
