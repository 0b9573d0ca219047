package models

import "time"

// Exercise is shared by the user-owned and the default collections. For user
// exercises CreatedBy always holds the owner id; default exercises may carry a
// nil CreatedBy.
type Exercise struct {
	ID             string     `bson:"_id"`
	Name           string     `bson:"name"`
	Category       Category   `bson:"category"`
	Difficulty     Difficulty `bson:"difficulty"`
	Description    string     `bson:"description"`
	TargetMuscles  []string   `bson:"target_muscles"`
	Equipment      []string   `bson:"equipment"`
	Instructions   []string   `bson:"instructions"`
	Sets           *int       `bson:"sets,omitempty"`
	Reps           *int       `bson:"reps,omitempty"`
	Duration       *int       `bson:"duration,omitempty"`
	CaloriesBurned int        `bson:"calories_burned"`
	CreatedBy      *string    `bson:"created_by"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

// OwnedBy reports whether userID is the recorded owner.
func (e Exercise) OwnedBy(userID string) bool {
	return e.CreatedBy != nil && *e.CreatedBy == userID
}
