package domain

// Trainee is a roster entry. The same struct backs two collections: the
// fixed catalog of everyone known to the system, and the subset linked to
// a trainer. Linking copies a catalog entry into the roster with
// TasksCount reset; unlinking removes it from the roster only.
type Trainee struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	TasksCount    int            `json:"tasksCount"`
	AverageRating *QualityRating `json:"averageRating,omitempty"`
}
