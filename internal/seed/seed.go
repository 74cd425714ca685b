// Package seed builds the demo dataset the service starts with. All state
// is process memory, so without seeding every catalog begins empty and
// the demo credentials do not exist.
package seed

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Demo credentials: trainer/123456 and trainee/123456. The account IDs
// line up with catalog entries so the demo roster and tasks belong to
// the logged-in identities.
const (
	DemoTrainerID = "trainer-1"
	DemoTraineeID = "trainee-1"
	demoPassword  = "123456"
)

// Data is the injected initial state for the in-memory repositories.
type Data struct {
	Accounts []domain.Account
	Trainees []domain.Trainee
	Trainers []domain.Trainer
	Reviews  []domain.TrainerReview
}

// Demo returns the demo dataset. With enabled=false it returns empty
// collections so the repositories start blank.
func Demo(enabled bool) (Data, error) {
	if !enabled {
		return Data{}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return Data{}, err
	}

	now := time.Now().UTC()
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }

	return Data{
		Accounts: []domain.Account{
			{
				ID:           DemoTrainerID,
				Login:        "trainer",
				PasswordHash: string(hash),
				Name:         "Alex Ivanov",
				Email:        "alex.trainer@example.com",
				Role:         domain.RoleTrainer,
				CreatedAt:    daysAgo(30),
			},
			{
				ID:           DemoTraineeID,
				Login:        "trainee",
				PasswordHash: string(hash),
				Name:         "Ivan Petrov",
				Email:        "ivan@example.com",
				Role:         domain.RoleTrainee,
				CreatedAt:    daysAgo(30),
			},
		},
		Trainees: []domain.Trainee{
			{ID: "trainee-1", Name: "Ivan Petrov", Email: "ivan@example.com"},
			{ID: "trainee-2", Name: "Maria Sidorova", Email: "maria@example.com"},
			{ID: "trainee-3", Name: "Alexey Kozlov", Email: "alexey@example.com"},
			{ID: "trainee-4", Name: "Elena Volkova", Email: "elena@example.com"},
			{ID: "trainee-5", Name: "Dmitry Sokolov", Email: "dmitry@example.com"},
			{ID: "trainee-6", Name: "Anna Morozova", Email: "anna@example.com"},
		},
		Trainers: []domain.Trainer{
			{
				ID: "trainer-1", Name: "Alex Ivanov", Email: "alex.trainer@example.com",
				Categories:  []domain.SportType{domain.SportAthletics, domain.SportTriathlon},
				Description: "Endurance coach, track and triathlon programs.",
				Rating:      4.8, TraineesCount: 25, Experience: "10+ years",
			},
			{
				ID: "trainer-2", Name: "Elena Smirnova", Email: "elena.trainer@example.com",
				Categories:  []domain.SportType{domain.SportSwimming, domain.SportTriathlon},
				Description: "Swimming technique and open-water preparation.",
				Rating:      4.9, TraineesCount: 18, Experience: "8 years",
			},
			{
				ID: "trainer-3", Name: "Dmitry Petrov", Email: "dmitry.trainer@example.com",
				Categories:  []domain.SportType{domain.SportFootball, domain.SportFitness},
				Description: "Team conditioning and football fundamentals.",
				Rating:      4.7, TraineesCount: 32, Experience: "12 years",
			},
			{
				ID: "trainer-4", Name: "Anna Kozlova", Email: "anna.trainer@example.com",
				Categories:  []domain.SportType{domain.SportYoga, domain.SportGymnastics},
				Description: "Mobility, balance, and individual gymnastics work.",
				Rating:      4.9, TraineesCount: 15, Experience: "6 years",
			},
			{
				ID: "trainer-5", Name: "Mikhail Volkov", Email: "mikhail.trainer@example.com",
				Categories:  []domain.SportType{domain.SportFitness, domain.SportBoxing},
				Description: "Personal strength programs and boxing basics.",
				Rating:      4.6, TraineesCount: 20, Experience: "5 years",
			},
			{
				ID: "trainer-6", Name: "Olga Morozova", Email: "olga.trainer@example.com",
				Categories:  []domain.SportType{domain.SportTennis, domain.SportVolleyball},
				Description: "Racket sports coaching for all levels.",
				Rating:      4.8, TraineesCount: 12, Experience: "7 years",
			},
			{
				ID: "trainer-7", Name: "Sergey Novikov", Email: "sergey.trainer@example.com",
				Categories:  []domain.SportType{domain.SportCycling, domain.SportSkiing},
				Description: "Cycling and cross-country ski training plans.",
				Rating:      4.9, TraineesCount: 28, Experience: "9 years",
			},
			{
				ID: "trainer-8", Name: "Maria Lebedeva", Email: "maria.trainer@example.com",
				Categories:  []domain.SportType{domain.SportHockey, domain.SportMartialArts, domain.SportOther},
				Description: "Contact sports conditioning and recovery.",
				Rating:      4.7, TraineesCount: 22, Experience: "11 years",
			},
		},
		Reviews: []domain.TrainerReview{
			{
				ID: "review-1", TrainerID: "trainer-1", TraineeID: "trainee-1",
				TraineeName: "Ivan Petrov", Rating: 5,
				Comment:   "Great coach, workouts are always well structured.",
				CreatedAt: daysAgo(10),
			},
			{
				ID: "review-2", TrainerID: "trainer-1", TraineeID: "trainee-2",
				TraineeName: "Maria Sidorova", Rating: 4,
				Comment:   "Solid programs, though feedback sometimes takes a while.",
				CreatedAt: daysAgo(5),
			},
			{
				ID: "review-3", TrainerID: "trainer-2", TraineeID: "trainee-1",
				TraineeName: "Ivan Petrov", Rating: 5,
				Comment:   "My swimming technique improved a lot in a month.",
				CreatedAt: daysAgo(7),
			},
		},
	}, nil
}

// ApplyTasks links the demo roster and creates a few sample tasks
// through the regular repository interfaces, so the seeded state went
// through the same code paths as live mutations.
func ApplyTasks(ctx context.Context, trainees repository.TraineeRepository, tasks repository.TaskRepository) error {
	for _, traineeID := range []string{"trainee-1", "trainee-2", "trainee-3"} {
		trainee, err := trainees.CatalogGet(ctx, traineeID)
		if err != nil {
			return err
		}
		if err := trainees.Link(ctx, DemoTrainerID, *trainee); err != nil {
			return err
		}
	}

	// A reviewed task with a submitted report.
	reviewed := &domain.Task{
		Title:       "Interval run 5x400m",
		Description: "Five 400m repeats at mile pace with 90 seconds rest.",
		TrainerID:   DemoTrainerID,
		TraineeID:   "trainee-1",
		Status:      domain.StatusPending,
		SportType:   domain.SportAthletics,
	}
	if _, err := tasks.Create(ctx, reviewed); err != nil {
		return err
	}
	distance := 2000
	rating := domain.RatingGood
	reviewed.Solution = &domain.Solution{
		ID:          "sol-1",
		TaskID:      reviewed.ID,
		Content:     "Completed all five repeats, last two slightly slower.",
		SubmittedAt: time.Now().UTC().AddDate(0, 0, -3),
		Distance:    &distance,
	}
	reviewed.Status = domain.StatusReviewed
	reviewed.QualityRating = &rating
	reviewed.Feedback = "Good session. Watch your pacing on the final repeats."
	if err := tasks.Update(ctx, reviewed); err != nil {
		return err
	}

	// A submitted task awaiting review.
	submitted := &domain.Task{
		Title:       "Technique swim 1500m",
		Description: "Warm up 300m, then 12x100m drills focusing on catch.",
		TrainerID:   DemoTrainerID,
		TraineeID:   "trainee-2",
		Status:      domain.StatusPending,
		SportType:   domain.SportSwimming,
	}
	if _, err := tasks.Create(ctx, submitted); err != nil {
		return err
	}
	swimDistance := 1500
	submitted.Solution = &domain.Solution{
		ID:          "sol-2",
		TaskID:      submitted.ID,
		Content:     "Drills done, catch feels more stable at slower pace.",
		SubmittedAt: time.Now().UTC().AddDate(0, 0, -1),
		Distance:    &swimDistance,
	}
	submitted.Status = domain.StatusSubmitted
	if err := tasks.Update(ctx, submitted); err != nil {
		return err
	}

	return nil
}
