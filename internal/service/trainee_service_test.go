package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type traineeFixture struct {
	svc        TraineeService
	trainerSvc TrainerService
	taskRepo   repository.TaskRepository
	reviewRepo repository.ReviewRepository
}

func newTraineeFixture(t *testing.T) *traineeFixture {
	t.Helper()
	traineeRepo := memory.NewTraineeRepository([]domain.Trainee{
		{ID: "trainee-1", Name: "Anna Miller", Email: "anna@example.com"},
		{ID: "trainee-2", Name: "Boris Clark", Email: "boris@example.com"},
	})
	trainerRepo := memory.NewTrainerRepository([]domain.Trainer{
		{ID: "trainer-1", Name: "Coach Carter", Rating: 4.5, Categories: []domain.SportType{domain.SportAthletics}},
		{ID: "trainer-2", Name: "Coach Lee", Rating: 4.8, Categories: []domain.SportType{domain.SportSwimming}},
	})
	taskRepo := memory.NewTaskRepository()
	reviewRepo := memory.NewReviewRepository(nil)
	return &traineeFixture{
		svc:        NewTraineeService(traineeRepo, trainerRepo, taskRepo, reviewRepo, stubFileStorage{}),
		trainerSvc: NewTrainerService(traineeRepo, trainerRepo, taskRepo, reviewRepo, stubFileStorage{}, "http://localhost:8080"),
		taskRepo:   taskRepo,
		reviewRepo: reviewRepo,
	}
}

func (f *traineeFixture) createTask(t *testing.T, traineeID string, sport domain.SportType, dueDate *time.Time) *domain.Task {
	t.Helper()
	task, err := f.trainerSvc.CreateTask(context.Background(), "trainer-1", CreateTaskInput{
		Title: "Session", Description: "work", TraineeID: traineeID, SportType: sport, DueDate: dueDate,
	})
	require.NoError(t, err)
	return task
}

func traineeActor(id, name string) *domain.User {
	return &domain.User{ID: id, Name: name, Role: domain.RoleTrainee}
}

func TestTaskHidesOtherTrainees(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)
	task := f.createTask(t, "trainee-1", domain.SportYoga, nil)

	got, err := f.svc.Task(ctx, "trainee-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	// Someone else's task reads as not found rather than forbidden.
	_, err = f.svc.Task(ctx, "trainee-2", task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestSubmitSolutionValidation(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)

	distanceTask := f.createTask(t, "trainee-1", domain.SportSwimming, nil)
	durationTask := f.createTask(t, "trainee-1", domain.SportYoga, nil)

	minutes := 60
	distance := 1500

	tests := []struct {
		name    string
		taskID  string
		input   SubmitSolutionInput
		wantErr error
	}{
		{
			name:    "content required",
			taskID:  distanceTask.ID,
			input:   SubmitSolutionInput{Content: "   ", Distance: &distance},
			wantErr: ErrContentRequired,
		},
		{
			name:    "distance sport needs distance",
			taskID:  distanceTask.ID,
			input:   SubmitSolutionInput{Content: "swam hard", Minutes: &minutes},
			wantErr: ErrDistanceRequired,
		},
		{
			name:    "duration sport needs minutes",
			taskID:  durationTask.ID,
			input:   SubmitSolutionInput{Content: "long flow", Distance: &distance},
			wantErr: ErrMinutesRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitSolution(ctx, "trainee-1", tt.taskID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitSolutionAndResubmit(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)
	task := f.createTask(t, "trainee-1", domain.SportSwimming, nil)

	first := 1000
	submitted, err := f.svc.SubmitSolution(ctx, "trainee-1", task.ID, SubmitSolutionInput{
		Content: "first attempt", Distance: &first,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.Solution)
	firstSolutionID := submitted.Solution.ID

	// Resubmission replaces the report wholesale.
	second := 1500
	resubmitted, err := f.svc.SubmitSolution(ctx, "trainee-1", task.ID, SubmitSolutionInput{
		Content: "second attempt", Distance: &second,
	})
	require.NoError(t, err)
	assert.NotEqual(t, firstSolutionID, resubmitted.Solution.ID)
	assert.Equal(t, "second attempt", resubmitted.Solution.Content)
	assert.Equal(t, 1500, *resubmitted.Solution.Distance)

	tasks, err := f.svc.MyTasks(ctx, "trainee-1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "second attempt", tasks[0].Solution.Content)
}

func TestSubmitSolutionRejectedAfterReview(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)
	task := f.createTask(t, "trainee-1", domain.SportAthletics, nil)

	distance := 5000
	_, err := f.svc.SubmitSolution(ctx, "trainee-1", task.ID, SubmitSolutionInput{Content: "5k done", Distance: &distance})
	require.NoError(t, err)

	_, err = f.trainerSvc.ReviewSolution(ctx, "trainer-1", task.ID, domain.RatingGood, "solid")
	require.NoError(t, err)

	_, err = f.svc.SubmitSolution(ctx, "trainee-1", task.ID, SubmitSolutionInput{Content: "again", Distance: &distance})
	assert.ErrorIs(t, err, ErrTaskAlreadyReviewed)
}

func TestRequestAttachmentUploadURL(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)
	task := f.createTask(t, "trainee-1", domain.SportGymnastics, nil)

	resp, err := f.svc.RequestAttachmentUploadURL(ctx, "trainee-1", task.ID, "video/mp4")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.UploadURL)
	assert.Contains(t, resp.ObjectKey, "attachments/trainee-1/"+task.ID+"/")
	assert.Contains(t, resp.ObjectKey, ".mp4")
}

func TestTrainersReviewAggregation(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)

	_, err := f.svc.AddTrainerReview(ctx, traineeActor("trainee-1", "Anna Miller"), "trainer-1", 5, "great coach")
	require.NoError(t, err)
	_, err = f.svc.AddTrainerReview(ctx, traineeActor("trainee-2", "Boris Clark"), "trainer-1", 4, "good sessions")
	require.NoError(t, err)

	trainers, err := f.svc.Trainers(ctx)
	require.NoError(t, err)
	require.Len(t, trainers, 2)

	byID := make(map[string]TrainerInfo)
	for _, tr := range trainers {
		byID[tr.ID] = tr
	}

	assert.Equal(t, 2, byID["trainer-1"].ReviewCount)
	assert.InDelta(t, 4.5, byID["trainer-1"].ReviewAverage, 0.0001)

	// No reviews yet: falls back to the seeded catalog rating.
	assert.Equal(t, 0, byID["trainer-2"].ReviewCount)
	assert.InDelta(t, 4.8, byID["trainer-2"].ReviewAverage, 0.0001)

	reviews, mean, err := f.svc.TrainerReviews(ctx, "trainer-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.InDelta(t, 4.5, mean, 0.0001)
}

func TestAddTrainerReviewRules(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)

	_, err := f.svc.AddTrainerReview(ctx, traineeActor("trainee-1", "Anna Miller"), "trainer-1", 6, "x")
	assert.ErrorIs(t, err, ErrInvalidStarRating)

	// Non-trainee actors are ignored without error.
	review, err := f.svc.AddTrainerReview(ctx, &domain.User{ID: "trainer-1", Role: domain.RoleTrainer}, "trainer-1", 5, "x")
	require.NoError(t, err)
	assert.Nil(t, review)

	// Repeat reviews from the same trainee append.
	_, err = f.svc.AddTrainerReview(ctx, traineeActor("trainee-1", "Anna Miller"), "trainer-1", 5, "first")
	require.NoError(t, err)
	_, err = f.svc.AddTrainerReview(ctx, traineeActor("trainee-1", "Anna Miller"), "trainer-1", 3, "second")
	require.NoError(t, err)

	reviews, err := f.reviewRepo.GetByTrainerID(ctx, "trainer-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, "Anna Miller", reviews[0].TraineeName)
}

func TestJoinFlow(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)

	t.Run("missing parameters", func(t *testing.T) {
		result, err := f.svc.Join(ctx, nil, "", "trainee-1")
		require.NoError(t, err)
		assert.Equal(t, "error", result.Status)
		assert.Equal(t, "Invalid link: required parameters are missing.", result.Message)
	})

	t.Run("unknown trainee", func(t *testing.T) {
		result, err := f.svc.Join(ctx, nil, "trainer-1", "ghost")
		require.NoError(t, err)
		assert.Equal(t, "error", result.Status)
		assert.Equal(t, "Trainee is not known to the system.", result.Message)
	})

	t.Run("anonymous visitor gets a synthesized session", func(t *testing.T) {
		result, err := f.svc.Join(ctx, nil, "trainer-1", "trainee-1")
		require.NoError(t, err)
		assert.Equal(t, "success", result.Status)
		assert.Equal(t, "/trainee", result.Redirect)
		require.NotNil(t, result.User)
		assert.Equal(t, "trainee-1", result.User.ID)
		assert.Equal(t, "Anna Miller", result.User.Name)
		assert.Equal(t, domain.RoleTrainee, result.User.Role)

		roster, err := f.trainerSvc.Roster(ctx, "trainer-1")
		require.NoError(t, err)
		require.Len(t, roster, 1)
		assert.Equal(t, "trainee-1", roster[0].ID)
	})

	t.Run("existing trainee session is kept", func(t *testing.T) {
		actor := traineeActor("trainee-2", "Boris Clark")
		result, err := f.svc.Join(ctx, actor, "trainer-1", "trainee-2")
		require.NoError(t, err)
		assert.Equal(t, "success", result.Status)
		assert.Same(t, actor, result.User)
	})

	t.Run("revisiting the link is idempotent", func(t *testing.T) {
		result, err := f.svc.Join(ctx, nil, "trainer-1", "trainee-1")
		require.NoError(t, err)
		assert.Equal(t, "success", result.Status)

		roster, err := f.trainerSvc.Roster(ctx, "trainer-1")
		require.NoError(t, err)
		assert.Len(t, roster, 2)
	})
}

func TestSportStatsReport(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)

	swim1 := f.createTask(t, "trainee-1", domain.SportSwimming, nil)
	swim2 := f.createTask(t, "trainee-1", domain.SportSwimming, nil)
	yoga := f.createTask(t, "trainee-1", domain.SportYoga, nil)
	f.createTask(t, "trainee-1", domain.SportFootball, nil) // never reported

	d1, d2, m := 500, 1000, 45
	_, err := f.svc.SubmitSolution(ctx, "trainee-1", swim1.ID, SubmitSolutionInput{Content: "laps", Distance: &d1})
	require.NoError(t, err)
	_, err = f.svc.SubmitSolution(ctx, "trainee-1", swim2.ID, SubmitSolutionInput{Content: "more laps", Distance: &d2})
	require.NoError(t, err)
	_, err = f.svc.SubmitSolution(ctx, "trainee-1", yoga.ID, SubmitSolutionInput{Content: "flow", Minutes: &m})
	require.NoError(t, err)

	report, err := f.svc.SportStats(ctx, "trainee-1")
	require.NoError(t, err)
	assert.Equal(t, 2, report.SportsCount)
	assert.Equal(t, 1500, report.TotalDistance)
	assert.Equal(t, 45, report.TotalMinutes)

	require.Len(t, report.Sports, 2)
	for _, entry := range report.Sports {
		switch entry.Sport {
		case domain.SportSwimming:
			assert.True(t, entry.DistanceSport)
			assert.Equal(t, 2, entry.Count)
			assert.Equal(t, 750, entry.AvgDistance)
		case domain.SportYoga:
			assert.False(t, entry.DistanceSport)
			assert.Equal(t, 45, entry.AvgMinutes)
		default:
			t.Fatalf("unexpected sport in report: %s", entry.Sport)
		}
	}
}

func TestCalendarBucketsByDueDate(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)

	day3 := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)
	day17 := time.Date(2026, time.September, 17, 0, 0, 0, 0, time.UTC)
	otherMonth := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

	f.createTask(t, "trainee-1", domain.SportAthletics, &day3)
	f.createTask(t, "trainee-1", domain.SportAthletics, &day3)
	f.createTask(t, "trainee-1", domain.SportYoga, &day17)
	f.createTask(t, "trainee-1", domain.SportYoga, &otherMonth)

	days, err := f.svc.Calendar(ctx, "trainee-1", 2026, time.September)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 3, days[0].Day)
	assert.Len(t, days[0].Tasks, 2)
	assert.Equal(t, 17, days[1].Day)
	assert.Len(t, days[1].Tasks, 1)
}

func TestTraineeProfile(t *testing.T) {
	ctx := context.Background()
	f := newTraineeFixture(t)

	task := f.createTask(t, "trainee-1", domain.SportAthletics, nil)
	f.createTask(t, "trainee-1", domain.SportYoga, nil)

	distance := 8000
	_, err := f.svc.SubmitSolution(ctx, "trainee-1", task.ID, SubmitSolutionInput{Content: "long run", Distance: &distance})
	require.NoError(t, err)
	_, err = f.trainerSvc.ReviewSolution(ctx, "trainer-1", task.ID, domain.RatingExcellent, "well paced")
	require.NoError(t, err)

	profile, err := f.svc.Profile(ctx, "trainee-1")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Tasks.Total)
	assert.Equal(t, 1, profile.Tasks.Pending)
	assert.Equal(t, 1, profile.Tasks.Reviewed)
	require.NotNil(t, profile.AverageRating)
	assert.Equal(t, domain.RatingExcellent, *profile.AverageRating)

	require.Len(t, profile.Trainers, 1)
	assert.Equal(t, "trainer-1", profile.Trainers[0].Trainer.ID)
	assert.Equal(t, 2, profile.Trainers[0].TasksCount)
	assert.Equal(t, 1, profile.Trainers[0].ReviewedTasks)
}
