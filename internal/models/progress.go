package models

import "time"

type ProgressLog struct {
	ID             string    `bson:"_id"`
	UserID         string    `bson:"user_id"`
	WorkoutID      *string   `bson:"workout_id"`
	WorkoutName    string    `bson:"workout_name"`
	Date           time.Time `bson:"date"`
	Duration       int       `bson:"duration"`
	CaloriesBurned int       `bson:"calories_burned"`
	Notes          string    `bson:"notes"`
	Completed      bool      `bson:"completed"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

// Stats is derived from completed logs on every read and never stored.
type Stats struct {
	TotalWorkouts             int
	TotalMinutes              int
	TotalCalories             int
	AverageCaloriesPerWorkout int
}
