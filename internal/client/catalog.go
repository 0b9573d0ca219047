package client

import (
	"context"
	"net/http"
	"net/url"

	"fittrack/api/internal/api"
)

func item(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}

// ListExercises returns defaults first, then the session user's own entries.
func (c *Client) ListExercises(ctx context.Context) ([]api.Exercise, error) {
	return call[[]api.Exercise](ctx, c, http.MethodGet, "/exercises", nil)
}

func (c *Client) GetExercise(ctx context.Context, id string) (api.Exercise, error) {
	return call[api.Exercise](ctx, c, http.MethodGet, item("exercises", id), nil)
}

func (c *Client) CreateExercise(ctx context.Context, in api.ExerciseRequest) (api.Exercise, error) {
	return call[api.Exercise](ctx, c, http.MethodPost, "/exercises", in)
}

func (c *Client) UpdateExercise(ctx context.Context, id string, in api.ExerciseRequest) (api.Exercise, error) {
	return call[api.Exercise](ctx, c, http.MethodPut, item("exercises", id), in)
}

func (c *Client) DeleteExercise(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, item("exercises", id), nil, nil)
}

func (c *Client) ListDefaultExercises(ctx context.Context) ([]api.Exercise, error) {
	return call[[]api.Exercise](ctx, c, http.MethodGet, "/default-exercises", nil)
}

func (c *Client) GetDefaultExercise(ctx context.Context, id string) (api.Exercise, error) {
	return call[api.Exercise](ctx, c, http.MethodGet, item("default-exercises", id), nil)
}

func (c *Client) CreateDefaultExercise(ctx context.Context, in api.ExerciseRequest) (api.Exercise, error) {
	return call[api.Exercise](ctx, c, http.MethodPost, "/default-exercises", in)
}

func (c *Client) UpdateDefaultExercise(ctx context.Context, id string, in api.ExerciseRequest) (api.Exercise, error) {
	return call[api.Exercise](ctx, c, http.MethodPut, item("default-exercises", id), in)
}

func (c *Client) DeleteDefaultExercise(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, item("default-exercises", id), nil, nil)
}

func (c *Client) ListWorkouts(ctx context.Context) ([]api.Workout, error) {
	return call[[]api.Workout](ctx, c, http.MethodGet, "/workouts", nil)
}

func (c *Client) GetWorkout(ctx context.Context, id string) (api.Workout, error) {
	return call[api.Workout](ctx, c, http.MethodGet, item("workouts", id), nil)
}

func (c *Client) CreateWorkout(ctx context.Context, in api.WorkoutRequest) (api.Workout, error) {
	return call[api.Workout](ctx, c, http.MethodPost, "/workouts", in)
}

func (c *Client) UpdateWorkout(ctx context.Context, id string, in api.WorkoutRequest) (api.Workout, error) {
	return call[api.Workout](ctx, c, http.MethodPut, item("workouts", id), in)
}

func (c *Client) DeleteWorkout(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, item("workouts", id), nil, nil)
}

func (c *Client) ListDefaultWorkouts(ctx context.Context) ([]api.Workout, error) {
	return call[[]api.Workout](ctx, c, http.MethodGet, "/default-workouts", nil)
}

func (c *Client) GetDefaultWorkout(ctx context.Context, id string) (api.Workout, error) {
	return call[api.Workout](ctx, c, http.MethodGet, item("default-workouts", id), nil)
}

func (c *Client) CreateDefaultWorkout(ctx context.Context, in api.WorkoutRequest) (api.Workout, error) {
	return call[api.Workout](ctx, c, http.MethodPost, "/default-workouts", in)
}

func (c *Client) UpdateDefaultWorkout(ctx context.Context, id string, in api.WorkoutRequest) (api.Workout, error) {
	return call[api.Workout](ctx, c, http.MethodPut, item("default-workouts", id), in)
}

func (c *Client) DeleteDefaultWorkout(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, item("default-workouts", id), nil, nil)
}

func (c *Client) ListProgress(ctx context.Context) ([]api.ProgressLog, error) {
	return call[[]api.ProgressLog](ctx, c, http.MethodGet, "/progress", nil)
}

func (c *Client) GetProgress(ctx context.Context, id string) (api.ProgressLog, error) {
	return call[api.ProgressLog](ctx, c, http.MethodGet, item("progress", id), nil)
}

// LogProgress records a session. Completing an in-progress session is a new
// log, not an update.
func (c *Client) LogProgress(ctx context.Context, in api.ProgressRequest) (api.ProgressLog, error) {
	return call[api.ProgressLog](ctx, c, http.MethodPost, "/progress", in)
}

func (c *Client) UpdateProgress(ctx context.Context, id string, in api.ProgressRequest) (api.ProgressLog, error) {
	return call[api.ProgressLog](ctx, c, http.MethodPut, item("progress", id), in)
}

func (c *Client) DeleteProgress(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, item("progress", id), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (api.Stats, error) {
	return call[api.Stats](ctx, c, http.MethodGet, "/progress/stats", nil)
}
