package domain

// SportType classifies a task or a trainer specialty.
type SportType string

const (
	SportFootball    SportType = "football"
	SportBasketball  SportType = "basketball"
	SportVolleyball  SportType = "volleyball"
	SportTennis      SportType = "tennis"
	SportSwimming    SportType = "swimming"
	SportAthletics   SportType = "athletics"
	SportBoxing      SportType = "boxing"
	SportMartialArts SportType = "martial_arts"
	SportYoga        SportType = "yoga"
	SportFitness     SportType = "fitness"
	SportCycling     SportType = "cycling"
	SportSkiing      SportType = "skiing"
	SportHockey      SportType = "hockey"
	SportGymnastics  SportType = "gymnastics"
	SportTriathlon   SportType = "triathlon"
	SportOther       SportType = "other"
)

// distanceSports report their training volume in meters; everything else
// reports minutes.
var distanceSports = map[SportType]bool{
	SportSwimming:  true,
	SportAthletics: true,
	SportCycling:   true,
	SportSkiing:    true,
	SportTriathlon: true,
}

// IsDistanceSport reports whether solutions for this sport carry a
// distance metric rather than a duration.
func (s SportType) IsDistanceSport() bool {
	return distanceSports[s]
}

// Trainer is a read-only catalog entry. The catalog comes from seed data
// and is never mutated by the services.
type Trainer struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Categories    []SportType `json:"categories"`
	Description   string      `json:"description,omitempty"`
	Rating        float64     `json:"rating,omitempty"`
	TraineesCount int         `json:"traineesCount,omitempty"`
	Experience    string      `json:"experience,omitempty"`
}
