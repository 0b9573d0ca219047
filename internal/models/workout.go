package models

import "time"

// Workout is shared by the user-owned and the default collections. Exercises
// holds ordered exercise ids which may point at either exercise collection.
type Workout struct {
	ID             string     `bson:"_id"`
	Name           string     `bson:"name"`
	Category       Category   `bson:"category"`
	Difficulty     Difficulty `bson:"difficulty"`
	Description    string     `bson:"description"`
	Duration       int        `bson:"duration"`
	CaloriesBurned int        `bson:"calories_burned"`
	Exercises      []string   `bson:"exercises"`
	Instructions   []string   `bson:"instructions"`
	CreatedBy      *string    `bson:"created_by"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

func (w Workout) OwnedBy(userID string) bool {
	return w.CreatedBy != nil && *w.CreatedBy == userID
}
