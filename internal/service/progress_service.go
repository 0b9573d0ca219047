package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"fittrack/api/internal/catalog"
	"fittrack/api/internal/ids"
	"fittrack/api/internal/models"
	"fittrack/api/internal/repository"
)

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type ProgressService struct {
	logs            repository.ProgressStore
	workouts        repository.WorkoutStore
	defaultWorkouts repository.WorkoutStore
	log             zerolog.Logger
	now             func() time.Time
}

func NewProgressService(store repository.Store, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		logs:            store.Progress,
		workouts:        store.Workouts,
		defaultWorkouts: store.DefaultWorkouts,
		log:             log,
		now:             time.Now,
	}
}

type ProgressInput struct {
	WorkoutID      *string `json:"workoutId"`
	WorkoutName    *string `json:"workoutName"`
	Date           *string `json:"date"`
	Duration       *int    `json:"duration"`
	CaloriesBurned *int    `json:"caloriesBurned"`
	Notes          *string `json:"notes"`
	Completed      *bool   `json:"completed"`
}

// WorkoutSummary describes the catalog workout a log points at, when it can
// still be found.
type WorkoutSummary struct {
	ID         string
	Name       string
	Category   models.Category
	Difficulty models.Difficulty
	IsDefault  bool
}

type ProgressView struct {
	Log     models.ProgressLog
	Workout *WorkoutSummary
}

func (in ProgressInput) apply(l *models.ProgressLog) error {
	if in.WorkoutID != nil {
		if id := strings.TrimSpace(*in.WorkoutID); id != "" {
			l.WorkoutID = &id
		} else {
			l.WorkoutID = nil
		}
	}
	if in.WorkoutName != nil {
		l.WorkoutName = strings.TrimSpace(*in.WorkoutName)
	}
	if in.Date != nil {
		date, err := parseDate(*in.Date)
		if err != nil {
			return err
		}
		l.Date = date
	}
	if in.Duration != nil {
		l.Duration = *in.Duration
	}
	if in.CaloriesBurned != nil {
		l.CaloriesBurned = *in.CaloriesBurned
	}
	if in.Notes != nil {
		l.Notes = *in.Notes
	}
	if in.Completed != nil {
		l.Completed = *in.Completed
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, newError(ErrValidation, "Invalid date")
}

func validateProgress(l models.ProgressLog) error {
	if l.WorkoutName == "" {
		return newError(ErrValidation, "Workout name is required")
	}
	if err := validateMin("Duration", l.Duration, 0); err != nil {
		return err
	}
	return validateMin("Calories burned", l.CaloriesBurned, 0)
}

func (s *ProgressService) workoutChain(ownerID string) catalog.Chain[models.Workout] {
	return catalog.Chain[models.Workout]{
		{
			Source: catalog.SourceUser,
			Repo:   s.workouts,
			Accept: func(w models.Workout) bool { return w.OwnedBy(ownerID) },
		},
		{Source: catalog.SourceDefault, Repo: s.defaultWorkouts},
	}
}

// summarize never fails the request: a log may point at a workout that was
// deleted or never existed in either catalog.
func (s *ProgressService) summarize(ctx context.Context, logs []models.ProgressLog, ownerID string) []ProgressView {
	chain := s.workoutChain(ownerID)
	seen := make(map[string]*WorkoutSummary)
	views := make([]ProgressView, 0, len(logs))

	for _, l := range logs {
		view := ProgressView{Log: l}
		if l.WorkoutID != nil {
			summary, ok := seen[*l.WorkoutID]
			if !ok {
				entry, err := chain.Resolve(ctx, *l.WorkoutID)
				switch {
				case err == nil:
					summary = &WorkoutSummary{
						ID:         entry.Item.ID,
						Name:       entry.Item.Name,
						Category:   entry.Item.Category,
						Difficulty: entry.Item.Difficulty,
						IsDefault:  entry.IsDefault(),
					}
				case !errors.Is(err, catalog.ErrNotFound):
					s.log.Warn().Err(err).Str("log_id", l.ID).Str("workout_id", *l.WorkoutID).Msg("resolve progress workout failed")
				}
				seen[*l.WorkoutID] = summary
			}
			view.Workout = summary
		}
		views = append(views, view)
	}
	return views
}

func (s *ProgressService) List(ctx context.Context, req Requester) ([]ProgressView, error) {
	if err := req.requireUser(); err != nil {
		return nil, err
	}
	logs, err := s.logs.ListByUser(ctx, req.ID(), false)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, logs, req.ID()), nil
}

// owned loads a log and checks it belongs to the requester. A log owned by
// someone else is forbidden rather than hidden.
func (s *ProgressService) owned(ctx context.Context, req Requester, id, action string) (models.ProgressLog, error) {
	if err := req.requireUser(); err != nil {
		return models.ProgressLog{}, err
	}
	l, err := s.logs.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.ProgressLog{}, newError(ErrNotFound, "Progress log not found")
	}
	if err != nil {
		return models.ProgressLog{}, err
	}
	if l.UserID != req.ID() {
		return models.ProgressLog{}, newError(ErrForbidden, "Not authorized to %s this progress log", action)
	}
	return l, nil
}

func (s *ProgressService) Get(ctx context.Context, req Requester, id string) (ProgressView, error) {
	l, err := s.owned(ctx, req, id, "view")
	if err != nil {
		return ProgressView{}, err
	}
	return s.summarize(ctx, []models.ProgressLog{l}, req.ID())[0], nil
}

func (s *ProgressService) Create(ctx context.Context, req Requester, input ProgressInput) (ProgressView, error) {
	if err := req.requireUser(); err != nil {
		return ProgressView{}, err
	}
	if input.WorkoutName == nil || strings.TrimSpace(*input.WorkoutName) == "" ||
		input.Date == nil || input.Duration == nil || input.CaloriesBurned == nil {
		return ProgressView{}, newError(ErrValidation, "Please provide workoutName, date, duration, and caloriesBurned")
	}

	now := s.now().UTC()
	l := models.ProgressLog{
		ID:        ids.New(),
		UserID:    req.ID(),
		Completed: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := input.apply(&l); err != nil {
		return ProgressView{}, err
	}
	if err := validateProgress(l); err != nil {
		return ProgressView{}, err
	}

	if err := s.logs.Create(ctx, l); err != nil {
		return ProgressView{}, err
	}
	s.log.Info().Str("log_id", l.ID).Str("user_id", l.UserID).Bool("completed", l.Completed).Msg("progress logged")
	return s.summarize(ctx, []models.ProgressLog{l}, req.ID())[0], nil
}

func (s *ProgressService) Update(ctx context.Context, req Requester, id string, input ProgressInput) (ProgressView, error) {
	l, err := s.owned(ctx, req, id, "update")
	if err != nil {
		return ProgressView{}, err
	}
	if err := input.apply(&l); err != nil {
		return ProgressView{}, err
	}
	if err := validateProgress(l); err != nil {
		return ProgressView{}, err
	}
	l.UpdatedAt = s.now().UTC()

	if err := s.logs.Update(ctx, l); err != nil {
		return ProgressView{}, resolveError(err, "Progress log not found")
	}
	return s.summarize(ctx, []models.ProgressLog{l}, req.ID())[0], nil
}

func (s *ProgressService) Delete(ctx context.Context, req Requester, id string) error {
	l, err := s.owned(ctx, req, id, "delete")
	if err != nil {
		return err
	}
	if err := s.logs.Delete(ctx, l.ID); err != nil {
		return resolveError(err, "Progress log not found")
	}
	return nil
}

// Stats aggregates the requester's completed logs.
func (s *ProgressService) Stats(ctx context.Context, req Requester) (models.Stats, error) {
	if err := req.requireUser(); err != nil {
		return models.Stats{}, err
	}
	logs, err := s.logs.ListByUser(ctx, req.ID(), true)
	if err != nil {
		return models.Stats{}, err
	}
	return ComputeStats(logs), nil
}

// ComputeStats reduces logs flagged completed. The average is rounded half
// away from zero and is 0 when nothing was completed.
func ComputeStats(logs []models.ProgressLog) models.Stats {
	var stats models.Stats
	for _, l := range logs {
		if !l.Completed {
			continue
		}
		stats.TotalWorkouts++
		stats.TotalMinutes += l.Duration
		stats.TotalCalories += l.CaloriesBurned
	}
	if stats.TotalWorkouts > 0 {
		stats.AverageCaloriesPerWorkout = int(math.Round(float64(stats.TotalCalories) / float64(stats.TotalWorkouts)))
	}
	return stats
}
