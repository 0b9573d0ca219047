// Package api holds the JSON shapes exchanged over HTTP. The handlers encode
// them and the Go client decodes them.
package api

import "time"

// Envelope wraps every response body.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ListEnvelope always carries data and count, even for empty lists.
type ListEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	Count   int  `json:"count"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Goals     string    `json:"goals"`
	Role      string    `json:"role"`
	JoinDate  time.Time `json:"joinDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UserPayload struct {
	User User `json:"user"`
}

type Exercise struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Difficulty     string    `json:"difficulty"`
	Description    string    `json:"description"`
	TargetMuscles  []string  `json:"targetMuscles"`
	Equipment      []string  `json:"equipment"`
	Instructions   []string  `json:"instructions"`
	Sets           *int      `json:"sets,omitempty"`
	Reps           *int      `json:"reps,omitempty"`
	Duration       *int      `json:"duration,omitempty"`
	CaloriesBurned int       `json:"caloriesBurned"`
	CreatedBy      *string   `json:"createdBy"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Workout struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	Difficulty     string     `json:"difficulty"`
	Description    string     `json:"description"`
	Duration       int        `json:"duration"`
	CaloriesBurned int        `json:"caloriesBurned"`
	Exercises      []Exercise `json:"exercises"`
	Instructions   []string   `json:"instructions"`
	CreatedBy      *string    `json:"createdBy"`
	IsDefault      bool       `json:"isDefault"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type WorkoutSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	IsDefault  bool   `json:"isDefault"`
}

type ProgressLog struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	WorkoutID      *string         `json:"workoutId"`
	WorkoutName    string          `json:"workoutName"`
	Workout        *WorkoutSummary `json:"workout,omitempty"`
	Date           time.Time       `json:"date"`
	Duration       int             `json:"duration"`
	CaloriesBurned int             `json:"caloriesBurned"`
	Notes          string          `json:"notes"`
	Completed      bool            `json:"completed"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type Stats struct {
	TotalWorkouts             int `json:"totalWorkouts"`
	TotalMinutes              int `json:"totalMinutes"`
	TotalCalories             int `json:"totalCalories"`
	AverageCaloriesPerWorkout int `json:"averageCaloriesPerWorkout"`
}

type Health struct {
	Environment string `json:"environment"`
	Database    string `json:"database"`
	Cache       string `json:"cache"`
}

// MissingExercises is the data attached to a rejected workout write.
type MissingExercises struct {
	Missing []string `json:"missing"`
}

// Default and OwnerID let client code treat exercises and workouts alike.
func (e Exercise) Default() bool { return e.IsDefault }

func (e Exercise) OwnerID() string { return deref(e.CreatedBy) }

func (w Workout) Default() bool { return w.IsDefault }

func (w Workout) OwnerID() string { return deref(w.CreatedBy) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Request bodies. Nil fields are omitted or sent as null, and the server
// leaves them unchanged, so updates stay partial.

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Goals    string `json:"goals,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Goals    *string `json:"goals,omitempty"`
	Password *string `json:"password,omitempty"`
}

type ExerciseRequest struct {
	Name           *string  `json:"name,omitempty"`
	Category       *string  `json:"category,omitempty"`
	Difficulty     *string  `json:"difficulty,omitempty"`
	Description    *string  `json:"description,omitempty"`
	TargetMuscles  []string `json:"targetMuscles"`
	Equipment      []string `json:"equipment"`
	Instructions   []string `json:"instructions"`
	Sets           *int     `json:"sets,omitempty"`
	Reps           *int     `json:"reps,omitempty"`
	Duration       *int     `json:"duration,omitempty"`
	CaloriesBurned *int     `json:"caloriesBurned,omitempty"`
}

type WorkoutRequest struct {
	Name           *string  `json:"name,omitempty"`
	Category       *string  `json:"category,omitempty"`
	Difficulty     *string  `json:"difficulty,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Duration       *int     `json:"duration,omitempty"`
	CaloriesBurned *int     `json:"caloriesBurned,omitempty"`
	Exercises      []string `json:"exercises"`
	Instructions   []string `json:"instructions"`
}

type ProgressRequest struct {
	WorkoutID      *string `json:"workoutId,omitempty"`
	WorkoutName    *string `json:"workoutName,omitempty"`
	Date           *string `json:"date,omitempty"`
	Duration       *int    `json:"duration,omitempty"`
	CaloriesBurned *int    `json:"caloriesBurned,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Completed      *bool   `json:"completed,omitempty"`
}
