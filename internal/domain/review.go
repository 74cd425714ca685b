package domain

import "time"

// TrainerReview is a trainee's review of a trainer. Reviews append; the
// system keeps the full history per (trainer, trainee) pair.
type TrainerReview struct {
	ID          string    `json:"id"`
	TrainerID   string    `json:"trainerId"`
	TraineeID   string    `json:"traineeId"`
	TraineeName string    `json:"traineeName"`
	Rating      int       `json:"rating"` // 1..5
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}
