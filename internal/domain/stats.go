package domain

import "math"

// StatusCounts is a task-count breakdown by lifecycle stage. Pending
// folds in in_progress: both read as "still being worked on".
type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Submitted int `json:"submitted"`
	Reviewed  int `json:"reviewed"`
}

// CountByStatus tallies tasks per lifecycle stage.
func CountByStatus(tasks []Task) StatusCounts {
	var c StatusCounts
	c.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case StatusPending, StatusInProgress:
			c.Pending++
		case StatusSubmitted:
			c.Submitted++
		case StatusReviewed:
			c.Reviewed++
		}
	}
	return c
}

// RatingDistribution counts graded tasks per quality level.
func RatingDistribution(tasks []Task) map[QualityRating]int {
	dist := make(map[QualityRating]int)
	for _, t := range tasks {
		if t.QualityRating != nil {
			dist[*t.QualityRating]++
		}
	}
	return dist
}

// AverageQuality buckets a multiset of grades into a single label by the
// majority-threshold rule: excellent if more than half the grades are
// excellent, else good if more than 30% are good, else satisfactory if
// more than 30% are satisfactory, else needs_improvement. The thresholds
// are checked in exactly that order and the first satisfied wins; this is
// a displayed behavioral contract, not a numeric mean. The second return
// is false when there are no grades at all.
func AverageQuality(ratings []QualityRating) (QualityRating, bool) {
	total := len(ratings)
	if total == 0 {
		return "", false
	}
	var excellent, good, satisfactory int
	for _, r := range ratings {
		switch r {
		case RatingExcellent:
			excellent++
		case RatingGood:
			good++
		case RatingSatisfactory:
			satisfactory++
		}
	}
	switch {
	case float64(excellent)/float64(total) > 0.5:
		return RatingExcellent, true
	case float64(good)/float64(total) > 0.3:
		return RatingGood, true
	case float64(satisfactory)/float64(total) > 0.3:
		return RatingSatisfactory, true
	default:
		return RatingNeedsImprovement, true
	}
}

// AverageQualityOfTasks applies AverageQuality over the graded tasks in
// the slice. Both trainer- and trainee-side profiles go through this one
// function so identical rating multisets always bucket identically.
func AverageQualityOfTasks(tasks []Task) (QualityRating, bool) {
	var ratings []QualityRating
	for _, t := range tasks {
		if t.QualityRating != nil {
			ratings = append(ratings, *t.QualityRating)
		}
	}
	return AverageQuality(ratings)
}

// SportStat aggregates submitted training volume for one sport.
type SportStat struct {
	Sport         SportType `json:"sport"`
	Count         int       `json:"count"`
	TotalDistance int       `json:"totalDistance"` // meters
	TotalMinutes  int       `json:"totalMinutes"`
}

// AvgDistance is the mean submitted distance in meters, rounded.
func (s SportStat) AvgDistance() int {
	if s.Count == 0 {
		return 0
	}
	return int(math.Round(float64(s.TotalDistance) / float64(s.Count)))
}

// AvgMinutes is the mean submitted duration in minutes, rounded.
func (s SportStat) AvgMinutes() int {
	if s.Count == 0 {
		return 0
	}
	return int(math.Round(float64(s.TotalMinutes) / float64(s.Count)))
}

// SportStats aggregates per-sport distance and minutes over tasks that
// carry a solution. A distance sport's solutions may also carry minutes,
// in which case both totals are populated.
func SportStats(tasks []Task) map[SportType]SportStat {
	stats := make(map[SportType]SportStat)
	for _, t := range tasks {
		if t.Solution == nil {
			continue
		}
		s := stats[t.SportType]
		s.Sport = t.SportType
		s.Count++
		if t.Solution.Distance != nil {
			s.TotalDistance += *t.Solution.Distance
		}
		if t.Solution.Minutes != nil {
			s.TotalMinutes += *t.Solution.Minutes
		}
		stats[t.SportType] = s
	}
	return stats
}

// ReviewAverage is the plain numeric mean of review ratings, 0 when there
// are none. Trainer cards show this next to the seeded static rating.
func ReviewAverage(reviews []TrainerReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
