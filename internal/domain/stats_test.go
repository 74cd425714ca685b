package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratingPtr(r QualityRating) *QualityRating { return &r }
func intPtr(n int) *int                        { return &n }

func TestAverageQuality(t *testing.T) {
	tests := []struct {
		name    string
		ratings []QualityRating
		want    QualityRating
		ok      bool
	}{
		{
			name:    "majority excellent wins",
			ratings: []QualityRating{RatingExcellent, RatingExcellent, RatingExcellent, RatingGood},
			want:    RatingExcellent,
			ok:      true,
		},
		{
			name:    "exactly half excellent is not a majority",
			ratings: []QualityRating{RatingExcellent, RatingExcellent, RatingGood, RatingSatisfactory},
			want:    RatingGood,
			ok:      true,
		},
		{
			name:    "good over threshold",
			ratings: []QualityRating{RatingGood, RatingGood, RatingSatisfactory},
			want:    RatingGood,
			ok:      true,
		},
		{
			name:    "satisfactory over threshold",
			ratings: []QualityRating{RatingSatisfactory, RatingSatisfactory, RatingNeedsImprovement},
			want:    RatingSatisfactory,
			ok:      true,
		},
		{
			name:    "fallback to needs improvement",
			ratings: []QualityRating{RatingNeedsImprovement, RatingNeedsImprovement, RatingGood},
			want:    RatingNeedsImprovement,
			ok:      true,
		},
		{
			name:    "single grade",
			ratings: []QualityRating{RatingSatisfactory},
			want:    RatingSatisfactory,
			ok:      true,
		},
		{
			name:    "good checked before satisfactory",
			ratings: []QualityRating{RatingGood, RatingGood, RatingSatisfactory, RatingSatisfactory, RatingNeedsImprovement},
			want:    RatingGood,
			ok:      true,
		},
		{
			name:    "no grades",
			ratings: nil,
			want:    "",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AverageQuality(tt.ratings)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAverageQualityOfTasksIgnoresUngraded(t *testing.T) {
	tasks := []Task{
		{QualityRating: ratingPtr(RatingExcellent)},
		{QualityRating: ratingPtr(RatingExcellent)},
		{QualityRating: nil},
		{QualityRating: ratingPtr(RatingGood)},
	}

	got, ok := AverageQualityOfTasks(tasks)
	assert.True(t, ok)
	assert.Equal(t, RatingExcellent, got)
}

func TestCountByStatus(t *testing.T) {
	tasks := []Task{
		{Status: StatusPending},
		{Status: StatusInProgress},
		{Status: StatusSubmitted},
		{Status: StatusReviewed},
		{Status: StatusReviewed},
	}

	counts := CountByStatus(tasks)
	assert.Equal(t, 5, counts.Total)
	assert.Equal(t, 2, counts.Pending, "in_progress counts as pending")
	assert.Equal(t, 1, counts.Submitted)
	assert.Equal(t, 2, counts.Reviewed)
}

func TestSportStats(t *testing.T) {
	tasks := []Task{
		{SportType: SportSwimming, Solution: &Solution{Distance: intPtr(500)}},
		{SportType: SportSwimming, Solution: &Solution{Distance: intPtr(1000)}},
		{SportType: SportYoga, Solution: &Solution{Minutes: intPtr(45)}},
		{SportType: SportFootball, Solution: nil}, // no report, not counted
	}

	stats := SportStats(tasks)
	assert.Len(t, stats, 2)

	swimming := stats[SportSwimming]
	assert.Equal(t, 2, swimming.Count)
	assert.Equal(t, 1500, swimming.TotalDistance)
	assert.Equal(t, 750, swimming.AvgDistance())

	yoga := stats[SportYoga]
	assert.Equal(t, 1, yoga.Count)
	assert.Equal(t, 45, yoga.TotalMinutes)
	assert.Equal(t, 45, yoga.AvgMinutes())
}

func TestIsDistanceSport(t *testing.T) {
	tests := []struct {
		sport SportType
		want  bool
	}{
		{SportSwimming, true},
		{SportAthletics, true},
		{SportCycling, true},
		{SportSkiing, true},
		{SportTriathlon, true},
		{SportFootball, false},
		{SportYoga, false},
		{SportOther, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.sport), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sport.IsDistanceSport())
		})
	}
}

func TestRatingDistribution(t *testing.T) {
	tasks := []Task{
		{QualityRating: ratingPtr(RatingGood)},
		{QualityRating: ratingPtr(RatingGood)},
		{QualityRating: ratingPtr(RatingNeedsImprovement)},
		{QualityRating: nil},
	}

	dist := RatingDistribution(tasks)
	assert.Equal(t, 2, dist[RatingGood])
	assert.Equal(t, 1, dist[RatingNeedsImprovement])
	assert.Equal(t, 0, dist[RatingExcellent])
}

func TestReviewAverage(t *testing.T) {
	assert.Equal(t, 0.0, ReviewAverage(nil))

	reviews := []TrainerReview{{Rating: 5}, {Rating: 4}, {Rating: 3}}
	assert.InDelta(t, 4.0, ReviewAverage(reviews), 0.0001)
}
