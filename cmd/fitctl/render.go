package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"fittrack/api/internal/api"
	"fittrack/api/internal/client"
)

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

// access renders what the session may do with an entry, e.g. "edit,rm".
func access(entry client.CatalogEntry, s *client.Session) string {
	aff := client.Affordances(entry, s)
	var parts []string
	if aff.CanEdit {
		parts = append(parts, "edit")
	}
	if aff.CanDelete {
		parts = append(parts, "rm")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func renderUser(out io.Writer, u api.User) {
	w := table(out)
	fmt.Fprintf(w, "id\t%s\n", u.ID)
	fmt.Fprintf(w, "name\t%s\n", u.Name)
	fmt.Fprintf(w, "email\t%s\n", u.Email)
	fmt.Fprintf(w, "role\t%s\n", u.Role)
	fmt.Fprintf(w, "goals\t%s\n", orDash(u.Goals))
	fmt.Fprintf(w, "joined\t%s\n", u.JoinDate.Format("2006-01-02"))
	w.Flush()
}

func renderExercises(out io.Writer, list []api.Exercise, s *client.Session) {
	if len(list) == 0 {
		fmt.Fprintln(out, "no exercises")
		return
	}
	w := table(out)
	fmt.Fprintln(w, "MARK\tID\tNAME\tCATEGORY\tDIFFICULTY\tKCAL\tACCESS")
	for _, e := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			client.Marker(e, s), e.ID, e.Name, e.Category, e.Difficulty, e.CaloriesBurned, access(e, s))
	}
	w.Flush()
}

func renderExercise(out io.Writer, e api.Exercise, s *client.Session) {
	w := table(out)
	fmt.Fprintf(w, "id\t%s\n", e.ID)
	fmt.Fprintf(w, "name\t%s %s\n", e.Name, client.Marker(e, s))
	fmt.Fprintf(w, "category\t%s\n", e.Category)
	fmt.Fprintf(w, "difficulty\t%s\n", e.Difficulty)
	fmt.Fprintf(w, "description\t%s\n", orDash(e.Description))
	fmt.Fprintf(w, "muscles\t%s\n", orDash(strings.Join(e.TargetMuscles, ", ")))
	fmt.Fprintf(w, "equipment\t%s\n", orDash(strings.Join(e.Equipment, ", ")))
	fmt.Fprintf(w, "sets x reps\t%s x %s\n", intOrDash(e.Sets), intOrDash(e.Reps))
	fmt.Fprintf(w, "duration\t%s min\n", intOrDash(e.Duration))
	fmt.Fprintf(w, "calories\t%d\n", e.CaloriesBurned)
	fmt.Fprintf(w, "access\t%s\n", access(e, s))
	w.Flush()
	for i, step := range e.Instructions {
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}
}

func renderWorkouts(out io.Writer, list []api.Workout, s *client.Session) {
	if len(list) == 0 {
		fmt.Fprintln(out, "no workouts")
		return
	}
	w := table(out)
	fmt.Fprintln(w, "MARK\tID\tNAME\tCATEGORY\tDIFFICULTY\tMIN\tEXERCISES\tACCESS")
	for _, wo := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			client.Marker(wo, s), wo.ID, wo.Name, wo.Category, wo.Difficulty, wo.Duration, len(wo.Exercises), access(wo, s))
	}
	w.Flush()
}

func renderWorkout(out io.Writer, wo api.Workout, s *client.Session) {
	w := table(out)
	fmt.Fprintf(w, "id\t%s\n", wo.ID)
	fmt.Fprintf(w, "name\t%s %s\n", wo.Name, client.Marker(wo, s))
	fmt.Fprintf(w, "category\t%s\n", wo.Category)
	fmt.Fprintf(w, "difficulty\t%s\n", wo.Difficulty)
	fmt.Fprintf(w, "description\t%s\n", orDash(wo.Description))
	fmt.Fprintf(w, "duration\t%d min\n", wo.Duration)
	fmt.Fprintf(w, "calories\t%d\n", wo.CaloriesBurned)
	fmt.Fprintf(w, "access\t%s\n", access(wo, s))
	w.Flush()

	if len(wo.Exercises) > 0 {
		fmt.Fprintln(out, "exercises:")
		for i, e := range wo.Exercises {
			fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, e.Name, e.ID)
		}
	}
}

func renderProgress(out io.Writer, logs []api.ProgressLog) {
	if len(logs) == 0 {
		fmt.Fprintln(out, "no sessions logged")
		return
	}
	w := table(out)
	fmt.Fprintln(w, "DATE\tID\tWORKOUT\tMIN\tKCAL\tDONE\tNOTES")
	for _, l := range logs {
		done := "no"
		if l.Completed {
			done = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			l.Date.Format("2006-01-02"), l.ID, l.WorkoutName, l.Duration, l.CaloriesBurned, done, l.Notes)
	}
	w.Flush()
}

func renderStats(out io.Writer, st api.Stats) {
	w := table(out)
	fmt.Fprintf(w, "workouts\t%d\n", st.TotalWorkouts)
	fmt.Fprintf(w, "minutes\t%d\n", st.TotalMinutes)
	fmt.Fprintf(w, "calories\t%d\n", st.TotalCalories)
	fmt.Fprintf(w, "avg calories\t%d\n", st.AverageCaloriesPerWorkout)
	w.Flush()
}

// missingExercises expands a rejected workout write with the ids the server
// could not resolve.
func missingExercises(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || len(apiErr.Data) == 0 {
		return err
	}
	var data api.MissingExercises
	if json.Unmarshal(apiErr.Data, &data) != nil || len(data.Missing) == 0 {
		return err
	}
	return fmt.Errorf("%s: %s", apiErr.Message, strings.Join(data.Missing, ", "))
}
