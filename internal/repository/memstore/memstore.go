// Package memstore keeps every collection in process memory. It backs the
// handler and service tests and the `memory` database driver.
package memstore

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"fittrack/api/internal/models"
	"fittrack/api/internal/repository"
)

type backend struct{}

func (backend) Name() string                { return "memory" }
func (backend) Ping(context.Context) error  { return nil }
func (backend) Close(context.Context) error { return nil }

// New returns an empty store bundle.
func New() repository.Store {
	return repository.Store{
		Backend:          backend{},
		Users:            NewUsers(),
		Exercises:        NewExercises(),
		DefaultExercises: NewExercises(),
		Workouts:         NewWorkouts(),
		DefaultWorkouts:  NewWorkouts(),
		Progress:         NewProgress(),
	}
}

type Users struct {
	mu    sync.RWMutex
	items map[string]models.User
}

func NewUsers() *Users {
	return &Users{items: make(map[string]models.User)}
}

func (s *Users) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[user.ID]; ok {
		return repository.ErrDuplicate
	}
	for _, existing := range s.items {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	s.items[user.ID] = user
	return nil
}

func (s *Users) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.items[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.items {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (s *Users) Update(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range s.items {
		if id != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	s.items[user.ID] = user
	return nil
}

type Exercises struct {
	mu    sync.RWMutex
	items map[string]models.Exercise
}

func NewExercises() *Exercises {
	return &Exercises{items: make(map[string]models.Exercise)}
}

func (s *Exercises) Create(_ context.Context, exercise models.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[exercise.ID]; ok {
		return repository.ErrDuplicate
	}
	s.items[exercise.ID] = cloneExercise(exercise)
	return nil
}

func (s *Exercises) GetByID(_ context.Context, id string) (models.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exercise, ok := s.items[id]
	if !ok {
		return models.Exercise{}, repository.ErrNotFound
	}
	return cloneExercise(exercise), nil
}

func (s *Exercises) FindByIDs(_ context.Context, ids []string) ([]models.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found []models.Exercise
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if exercise, ok := s.items[id]; ok {
			found = append(found, cloneExercise(exercise))
		}
	}
	return found, nil
}

func (s *Exercises) List(_ context.Context) ([]models.Exercise, error) {
	return s.filter(func(models.Exercise) bool { return true }), nil
}

func (s *Exercises) ListByOwner(_ context.Context, ownerID string) ([]models.Exercise, error) {
	return s.filter(func(e models.Exercise) bool { return e.OwnedBy(ownerID) }), nil
}

func (s *Exercises) Update(_ context.Context, exercise models.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	s.items[exercise.ID] = cloneExercise(exercise)
	return nil
}

func (s *Exercises) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Exercises) filter(keep func(models.Exercise) bool) []models.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Exercise
	for _, exercise := range s.items {
		if keep(exercise) {
			out = append(out, cloneExercise(exercise))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out
}

type Workouts struct {
	mu    sync.RWMutex
	items map[string]models.Workout
}

func NewWorkouts() *Workouts {
	return &Workouts{items: make(map[string]models.Workout)}
}

func (s *Workouts) Create(_ context.Context, workout models.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[workout.ID]; ok {
		return repository.ErrDuplicate
	}
	s.items[workout.ID] = cloneWorkout(workout)
	return nil
}

func (s *Workouts) GetByID(_ context.Context, id string) (models.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	workout, ok := s.items[id]
	if !ok {
		return models.Workout{}, repository.ErrNotFound
	}
	return cloneWorkout(workout), nil
}

func (s *Workouts) List(_ context.Context) ([]models.Workout, error) {
	return s.filter(func(models.Workout) bool { return true }), nil
}

func (s *Workouts) ListByOwner(_ context.Context, ownerID string) ([]models.Workout, error) {
	return s.filter(func(w models.Workout) bool { return w.OwnedBy(ownerID) }), nil
}

func (s *Workouts) Update(_ context.Context, workout models.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	s.items[workout.ID] = cloneWorkout(workout)
	return nil
}

func (s *Workouts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Workouts) ReferencesExercise(_ context.Context, exerciseID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, workout := range s.items {
		if slices.Contains(workout.Exercises, exerciseID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Workouts) filter(keep func(models.Workout) bool) []models.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Workout
	for _, workout := range s.items {
		if keep(workout) {
			out = append(out, cloneWorkout(workout))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out
}

type Progress struct {
	mu    sync.RWMutex
	items map[string]models.ProgressLog
}

func NewProgress() *Progress {
	return &Progress{items: make(map[string]models.ProgressLog)}
}

func (s *Progress) Create(_ context.Context, log models.ProgressLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[log.ID]; ok {
		return repository.ErrDuplicate
	}
	s.items[log.ID] = log
	return nil
}

func (s *Progress) GetByID(_ context.Context, id string) (models.ProgressLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log, ok := s.items[id]
	if !ok {
		return models.ProgressLog{}, repository.ErrNotFound
	}
	return log, nil
}

func (s *Progress) ListByUser(_ context.Context, userID string, completedOnly bool) ([]models.ProgressLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ProgressLog
	for _, log := range s.items {
		if log.UserID != userID || (completedOnly && !log.Completed) {
			continue
		}
		out = append(out, log)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return newerFirst(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out, nil
}

func (s *Progress) Update(_ context.Context, log models.ProgressLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[log.ID]; !ok {
		return repository.ErrNotFound
	}
	s.items[log.ID] = log
	return nil
}

func (s *Progress) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func newerFirst(at time.Time, id string, bt time.Time, bid string) bool {
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return id > bid
}

func cloneExercise(e models.Exercise) models.Exercise {
	e.TargetMuscles = slices.Clone(e.TargetMuscles)
	e.Equipment = slices.Clone(e.Equipment)
	e.Instructions = slices.Clone(e.Instructions)
	return e
}

func cloneWorkout(w models.Workout) models.Workout {
	w.Exercises = slices.Clone(w.Exercises)
	w.Instructions = slices.Clone(w.Instructions)
	return w
}
