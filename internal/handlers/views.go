package handlers

import (
	"fittrack/api/internal/api"
	"fittrack/api/internal/catalog"
	"fittrack/api/internal/models"
	"fittrack/api/internal/service"
)

func userView(u models.User) api.User {
	return api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Goals:     u.Goals,
		Role:      string(u.Role),
		JoinDate:  u.JoinDate,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func exerciseView(entry catalog.Entry[models.Exercise]) api.Exercise {
	e := entry.Item
	return api.Exercise{
		ID:             e.ID,
		Name:           e.Name,
		Category:       string(e.Category),
		Difficulty:     string(e.Difficulty),
		Description:    e.Description,
		TargetMuscles:  orEmpty(e.TargetMuscles),
		Equipment:      orEmpty(e.Equipment),
		Instructions:   orEmpty(e.Instructions),
		Sets:           e.Sets,
		Reps:           e.Reps,
		Duration:       e.Duration,
		CaloriesBurned: e.CaloriesBurned,
		CreatedBy:      e.CreatedBy,
		IsDefault:      entry.IsDefault(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func exerciseViews(entries []catalog.Entry[models.Exercise]) []api.Exercise {
	out := make([]api.Exercise, 0, len(entries))
	for _, entry := range entries {
		out = append(out, exerciseView(entry))
	}
	return out
}

func workoutView(v service.WorkoutView) api.Workout {
	w := v.Workout.Item
	return api.Workout{
		ID:             w.ID,
		Name:           w.Name,
		Category:       string(w.Category),
		Difficulty:     string(w.Difficulty),
		Description:    w.Description,
		Duration:       w.Duration,
		CaloriesBurned: w.CaloriesBurned,
		Exercises:      exerciseViews(v.Exercises),
		Instructions:   orEmpty(w.Instructions),
		CreatedBy:      w.CreatedBy,
		IsDefault:      v.IsDefault(),
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

func workoutViews(views []service.WorkoutView) []api.Workout {
	out := make([]api.Workout, 0, len(views))
	for _, v := range views {
		out = append(out, workoutView(v))
	}
	return out
}

func progressView(v service.ProgressView) api.ProgressLog {
	l := v.Log
	out := api.ProgressLog{
		ID:             l.ID,
		UserID:         l.UserID,
		WorkoutID:      l.WorkoutID,
		WorkoutName:    l.WorkoutName,
		Date:           l.Date,
		Duration:       l.Duration,
		CaloriesBurned: l.CaloriesBurned,
		Notes:          l.Notes,
		Completed:      l.Completed,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	if v.Workout != nil {
		out.Workout = &api.WorkoutSummary{
			ID:         v.Workout.ID,
			Name:       v.Workout.Name,
			Category:   string(v.Workout.Category),
			Difficulty: string(v.Workout.Difficulty),
			IsDefault:  v.Workout.IsDefault,
		}
	}
	return out
}

func statsView(s models.Stats) api.Stats {
	return api.Stats{
		TotalWorkouts:             s.TotalWorkouts,
		TotalMinutes:              s.TotalMinutes,
		TotalCalories:             s.TotalCalories,
		AverageCaloriesPerWorkout: s.AverageCaloriesPerWorkout,
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
