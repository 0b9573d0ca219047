package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"fittrack/api/internal/api"
)

func newFlags(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// optional returns nil for an empty flag so partial updates leave the field
// alone.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(n int) *int {
	if n < 0 {
		return nil
	}
	return &n
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (a *app) saveSession() error {
	return a.store.Save(a.session)
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlags("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	goals := fs.String("goals", "", "fitness goals")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.api.Register(ctx, api.RegisterRequest{Name: *name, Email: *email, Password: *password, Goals: *goals})
	if err != nil {
		return err
	}
	if err := a.saveSession(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered and logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.saveSession(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *app) logout() error {
	a.api.Logout()
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *app) requireLogin() error {
	if !a.session.LoggedIn() {
		return errors.New("not logged in; run fitctl login")
	}
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	user, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	if err := a.saveSession(); err != nil {
		return err
	}
	renderUser(a.out, user)
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := newFlags("profile")
	name := fs.String("name", "", "new display name")
	email := fs.String("email", "", "new email")
	goals := fs.String("goals", "", "new goals")
	password := fs.String("password", "", "new password (logs you out)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	user, err := a.api.UpdateProfile(ctx, api.ProfileRequest{
		Name:     optional(*name),
		Email:    optional(*email),
		Goals:    optional(*goals),
		Password: optional(*password),
	})
	if err != nil {
		return err
	}
	if err := a.saveSession(); err != nil {
		return err
	}
	if !a.session.LoggedIn() {
		fmt.Fprintln(a.out, "password changed; log in again")
		return nil
	}
	renderUser(a.out, user)
	return nil
}

func (a *app) exercises(ctx context.Context, args []string) error {
	sub, rest := "list", args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, rest = args[0], args[1:]
	}

	fs := newFlags("exercises " + sub)
	shared := fs.Bool("default", false, "operate on the shared default catalog (admin)")
	name := fs.String("name", "", "name")
	category := fs.String("category", "", "strength | cardio | flexibility | sports")
	difficulty := fs.String("difficulty", "", "beginner | intermediate | advanced")
	description := fs.String("description", "", "description")
	muscles := fs.String("muscles", "", "comma separated target muscles")
	equipment := fs.String("equipment", "", "comma separated equipment")
	sets := fs.Int("sets", -1, "sets")
	reps := fs.Int("reps", -1, "reps")
	duration := fs.Int("duration", -1, "duration in minutes")
	calories := fs.Int("calories", -1, "calories burned")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	req := api.ExerciseRequest{
		Name:           optional(*name),
		Category:       optional(*category),
		Difficulty:     optional(*difficulty),
		Description:    optional(*description),
		TargetMuscles:  splitList(*muscles),
		Equipment:      splitList(*equipment),
		Sets:           optionalInt(*sets),
		Reps:           optionalInt(*reps),
		Duration:       optionalInt(*duration),
		CaloriesBurned: optionalInt(*calories),
	}

	switch sub {
	case "list":
		var list []api.Exercise
		var err error
		if *shared {
			list, err = a.api.ListDefaultExercises(ctx)
		} else {
			list, err = a.api.ListExercises(ctx)
		}
		if err != nil {
			return err
		}
		renderExercises(a.out, list, a.session)
		return nil

	case "show":
		id, err := oneID(fs)
		if err != nil {
			return err
		}
		e, err := a.api.GetExercise(ctx, id)
		if err != nil {
			return err
		}
		renderExercise(a.out, e, a.session)
		return nil

	case "add":
		var e api.Exercise
		var err error
		if *shared {
			e, err = a.api.CreateDefaultExercise(ctx, req)
		} else {
			e, err = a.api.CreateExercise(ctx, req)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "created exercise %s (%s)\n", e.Name, e.ID)
		return nil

	case "edit":
		id, err := oneID(fs)
		if err != nil {
			return err
		}
		var e api.Exercise
		if *shared {
			e, err = a.api.UpdateDefaultExercise(ctx, id, req)
		} else {
			e, err = a.api.UpdateExercise(ctx, id, req)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "updated exercise %s\n", e.Name)
		return nil

	case "rm":
		id, err := oneID(fs)
		if err != nil {
			return err
		}
		if *shared {
			err = a.api.DeleteDefaultExercise(ctx, id)
		} else {
			err = a.api.DeleteExercise(ctx, id)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted exercise %s\n", id)
		return nil
	}
	return fmt.Errorf("unknown exercises command %q", sub)
}

func (a *app) workouts(ctx context.Context, args []string) error {
	sub, rest := "list", args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, rest = args[0], args[1:]
	}

	fs := newFlags("workouts " + sub)
	shared := fs.Bool("default", false, "operate on the shared default catalog (admin)")
	name := fs.String("name", "", "name")
	category := fs.String("category", "", "strength | cardio | flexibility | sports")
	difficulty := fs.String("difficulty", "", "beginner | intermediate | advanced")
	description := fs.String("description", "", "description")
	exercises := fs.String("exercises", "", "comma separated exercise ids, in order")
	duration := fs.Int("duration", -1, "duration in minutes")
	calories := fs.Int("calories", -1, "calories burned")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	req := api.WorkoutRequest{
		Name:           optional(*name),
		Category:       optional(*category),
		Difficulty:     optional(*difficulty),
		Description:    optional(*description),
		Duration:       optionalInt(*duration),
		CaloriesBurned: optionalInt(*calories),
		Exercises:      splitList(*exercises),
	}

	switch sub {
	case "list":
		var list []api.Workout
		var err error
		if *shared {
			list, err = a.api.ListDefaultWorkouts(ctx)
		} else {
			list, err = a.api.ListWorkouts(ctx)
		}
		if err != nil {
			return err
		}
		renderWorkouts(a.out, list, a.session)
		return nil

	case "show":
		id, err := oneID(fs)
		if err != nil {
			return err
		}
		w, err := a.api.GetWorkout(ctx, id)
		if err != nil {
			return err
		}
		renderWorkout(a.out, w, a.session)
		return nil

	case "add":
		var w api.Workout
		var err error
		if *shared {
			w, err = a.api.CreateDefaultWorkout(ctx, req)
		} else {
			w, err = a.api.CreateWorkout(ctx, req)
		}
		if err != nil {
			return missingExercises(err)
		}
		fmt.Fprintf(a.out, "created workout %s (%s) with %d exercises\n", w.Name, w.ID, len(w.Exercises))
		return nil

	case "edit":
		id, err := oneID(fs)
		if err != nil {
			return err
		}
		var w api.Workout
		if *shared {
			w, err = a.api.UpdateDefaultWorkout(ctx, id, req)
		} else {
			w, err = a.api.UpdateWorkout(ctx, id, req)
		}
		if err != nil {
			return missingExercises(err)
		}
		fmt.Fprintf(a.out, "updated workout %s\n", w.Name)
		return nil

	case "rm":
		id, err := oneID(fs)
		if err != nil {
			return err
		}
		if *shared {
			err = a.api.DeleteDefaultWorkout(ctx, id)
		} else {
			err = a.api.DeleteWorkout(ctx, id)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted workout %s\n", id)
		return nil
	}
	return fmt.Errorf("unknown workouts command %q", sub)
}

func (a *app) logSession(ctx context.Context, args []string) error {
	fs := newFlags("log")
	workoutID := fs.String("workout", "", "catalog workout id (optional)")
	name := fs.String("name", "", "workout name")
	date := fs.String("date", time.Now().Format("2006-01-02"), "date, YYYY-MM-DD or RFC 3339")
	duration := fs.Int("duration", -1, "duration in minutes")
	calories := fs.Int("calories", -1, "calories burned")
	notes := fs.String("notes", "", "notes")
	inProgress := fs.Bool("in-progress", false, "record as not yet completed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	completed := !*inProgress
	entry, err := a.api.LogProgress(ctx, api.ProgressRequest{
		WorkoutID:      optional(*workoutID),
		WorkoutName:    optional(*name),
		Date:           optional(*date),
		Duration:       optionalInt(*duration),
		CaloriesBurned: optionalInt(*calories),
		Notes:          optional(*notes),
		Completed:      &completed,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged %s on %s (%d min, %d kcal)\n",
		entry.WorkoutName, entry.Date.Format("2006-01-02"), entry.Duration, entry.CaloriesBurned)
	return nil
}

func (a *app) history(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	logs, err := a.api.ListProgress(ctx)
	if err != nil {
		return err
	}
	renderProgress(a.out, logs)
	return nil
}

func (a *app) stats(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	stats, err := a.api.Stats(ctx)
	if err != nil {
		return err
	}
	renderStats(a.out, stats)
	return nil
}

func (a *app) health(ctx context.Context) error {
	h, err := a.api.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "environment=%s database=%s cache=%s\n", h.Environment, h.Database, h.Cache)
	return nil
}

func oneID(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one id", fs.Name())
	}
	return fs.Arg(0), nil
}
