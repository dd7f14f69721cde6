package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/prescribe/internal/generator"
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/storage"
	"github.com/misterclayt0n/prescribe/internal/utils"
	"github.com/spf13/cobra"
)

var genTemplate string

var generateProgramCmd = &cobra.Command{
	Use:   "generate-program",
	Short: "Personalize a stored template against the athlete's current maxima",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		profile, err := st.GetProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("Failed to load profile: %w", err)
		}
		tmpl, err := st.GetTemplate(ctx, genTemplate)
		if err != nil {
			return fmt.Errorf("Failed to load template: %w", err)
		}

		gen := generator.New(generator.Config{
			Increment:              cfg.Engine.LoadIncrement,
			DefaultPercentage:      cfg.Engine.DefaultPercentage,
			DefaultWeeklyIncrement: cfg.Engine.DefaultWeeklyIncrement,
		}, generator.WithLogger(logger))

		program, err := gen.Generate(profile, tmpl)
		if err != nil {
			return fmt.Errorf("Failed to generate program: %w", err)
		}
		if err := st.SaveProgram(ctx, program); err != nil {
			return err
		}

		fmt.Printf("✅ Program %s generated from '%s' (%d workouts)\n", program.ID, tmpl.Name, len(program.Workouts))
		for _, m := range program.Milestones {
			fmt.Printf("   Week %d: %s (%s)\n", m.Week, m.Label, m.Phase)
		}
		return nil
	},
}

var (
	showProgramID string
	weekFilter    int
)

var showProgramCmd = &cobra.Command{
	Use:   "show-program",
	Short: "Display a personalized program (the active one by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		prog, err := loadProgram(context.Background(), st, showProgramID)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()

		fmt.Printf("\n%s\n", green(strings.ToUpper(prog.TemplateName)))
		fmt.Printf("%s: %s\n", cyan("Program"), prog.ID)
		fmt.Printf("%s: %s\n", cyan("Status"), prog.Status)
		fmt.Printf("%s: week %d day %d\n", cyan("Next"), prog.CurrentWeek, prog.CurrentDay)
		fmt.Println(strings.Repeat("=", 60))

		for _, w := range prog.Workouts {
			if weekFilter != 0 && w.Week != weekFilter {
				continue
			}
			header := fmt.Sprintf("Week %d Day %d", w.Week, w.Day)
			if w.PhaseName != "" {
				header += " - " + w.PhaseName
			}
			if w.WeekType != models.WeekNormal {
				header += fmt.Sprintf(" [%s]", w.WeekType)
			}
			if w.Completed {
				header += " ✅"
			}
			fmt.Printf("\n%s\n", yellow(header))
			fmt.Println(strings.Repeat("-", 60))

			for i, ex := range w.Exercises {
				fmt.Printf("%d. %s %dx%d", i+1, ex.Name, ex.Sets, ex.TargetReps)
				if ex.WeightKg != nil {
					fmt.Printf(" @ %.1fkg", *ex.WeightKg)
				}
				if ex.Percentage != nil {
					fmt.Printf(" (%.0f%%)", *ex.Percentage*100)
				}
				if ex.TargetRPE != nil {
					fmt.Printf(" RPE %.1f", *ex.TargetRPE)
				}
				if ex.TargetVelocity != nil {
					fmt.Printf(" %s", magenta(fmt.Sprintf("%.2f m/s", *ex.TargetVelocity)))
				}
				fmt.Println()
				for j, set := range ex.Performed {
					fmt.Printf("   set %d: %.1fkg × %d\n", j+1, set.WeightKg, set.Reps)
				}
			}
		}
		fmt.Println()
		return nil
	},
}

var (
	completeWeek int
	completeDay  int
	completeSets []string
)

var completeWorkoutCmd = &cobra.Command{
	Use:   "complete-workout",
	Short: "Mark a workout of the active program as done",
	Long: `Mark a workout of the active program as done. Performed sets are given
as --set EXERCISE:WEIGHTxREPS[@RPE], e.g. --set 1:140x5@8 --set 1:140x5.
Without --week/--day the next open workout is completed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		prog, err := st.GetActiveProgram(ctx, userID)
		if err != nil {
			return fmt.Errorf("Failed to load active program: %w", err)
		}

		week, day := completeWeek, completeDay
		if week == 0 || day == 0 {
			next := prog.NextWorkout()
			if next == nil {
				return fmt.Errorf("No open workout left")
			}
			week, day = next.Week, next.Day
		}
		w, err := prog.Workout(week, day)
		if err != nil {
			return err
		}

		performed, err := parsePerformedSets(completeSets, len(w.Exercises))
		if err != nil {
			return err
		}
		if err := prog.CompleteWorkout(week, day, performed, time.Now().UTC()); err != nil {
			return err
		}
		if err := st.SaveProgram(ctx, prog); err != nil {
			return err
		}

		fmt.Printf("✅ Week %d day %d completed\n", week, day)
		if prog.Status == models.StatusCompleted {
			fmt.Println("🎉 Program complete")
		}
		return nil
	},
}

// parsePerformedSets turns "2:100x5@8" entries into per-exercise set lists.
func parsePerformedSets(entries []string, exercises int) ([][]models.PerformedSet, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make([][]models.PerformedSet, exercises)
	for _, entry := range entries {
		idxStr, rest, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("Invalid set %q. Expected EXERCISE:WEIGHTxREPS[@RPE]", entry)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 1 || idx > exercises {
			return nil, fmt.Errorf("Invalid exercise index in %q. Must be between 1 and %d", entry, exercises)
		}

		var set models.PerformedSet
		load, rpeStr, hasRPE := strings.Cut(rest, "@")
		weightStr, repsStr, ok := strings.Cut(strings.ToLower(load), "x")
		if !ok {
			return nil, fmt.Errorf("Invalid set %q. Expected EXERCISE:WEIGHTxREPS[@RPE]", entry)
		}
		if set.WeightKg, err = strconv.ParseFloat(weightStr, 64); err != nil || set.WeightKg < 0 {
			return nil, fmt.Errorf("Invalid weight in %q", entry)
		}
		if set.Reps, err = strconv.Atoi(repsStr); err != nil || set.Reps < 1 {
			return nil, fmt.Errorf("Invalid reps in %q", entry)
		}
		if hasRPE {
			rpe, err := strconv.ParseFloat(rpeStr, 64)
			if err != nil || rpe < 1 || rpe > 10 {
				return nil, fmt.Errorf("Invalid RPE in %q", entry)
			}
			set.RPE = &rpe
		}
		out[idx-1] = append(out[idx-1], set)
	}
	return out, nil
}

var statusProgramID string

var programStatusCmd = &cobra.Command{
	Use:       "program-status [pause|resume|abandon]",
	Short:     "Pause, resume or abandon a program",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pause", "resume", "abandon"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		want := models.StatusActive
		if args[0] == "resume" {
			want = models.StatusPaused
		}
		prog, err := findProgram(ctx, st, statusProgramID, want)
		if err != nil {
			return fmt.Errorf("Failed to load program: %w", err)
		}

		switch args[0] {
		case "pause":
			err = prog.Pause()
		case "resume":
			err = prog.Resume()
		case "abandon":
			err = prog.Abandon()
		default:
			return fmt.Errorf("Unknown action %q", args[0])
		}
		if err != nil {
			return err
		}
		if err := st.SaveProgram(ctx, prog); err != nil {
			return err
		}
		fmt.Printf("✅ Program %s is now %s\n", prog.ID, prog.Status)
		return nil
	},
}

func loadProgram(ctx context.Context, st *storage.Storage, id string) (*models.PersonalizedProgram, error) {
	if id != "" {
		return st.GetProgram(ctx, id)
	}
	return st.GetActiveProgram(ctx, userID)
}

// findProgram loads the program by id, or the user's newest program in the
// wanted status.
func findProgram(ctx context.Context, st *storage.Storage, id string, want models.ProgramStatus) (*models.PersonalizedProgram, error) {
	if id != "" {
		return st.GetProgram(ctx, id)
	}
	programs, err := st.ListPrograms(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range programs {
		if p.Status == want {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no %s program for %q: %w", want, userID, storage.ErrNotFound)
}

var listProgramsCmd = &cobra.Command{
	Use:   "list-programs",
	Short: "List the athlete's generated programs",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		programs, err := st.ListPrograms(context.Background(), userID)
		if err != nil {
			return err
		}
		if len(programs) == 0 {
			fmt.Println("No programs found.")
			return nil
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		for _, p := range programs {
			done := 0
			for _, w := range p.Workouts {
				if w.Completed {
					done++
				}
			}
			fmt.Printf("%s  %-28s %-10s %d/%d workouts  %s\n",
				p.ID, cyan(p.TemplateName), p.Status, done, len(p.Workouts), utils.FormatDate(p.CreatedAt))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateProgramCmd)
	rootCmd.AddCommand(listProgramsCmd)
	rootCmd.AddCommand(showProgramCmd)
	rootCmd.AddCommand(completeWorkoutCmd)
	rootCmd.AddCommand(programStatusCmd)

	generateProgramCmd.Flags().StringVarP(&genTemplate, "template", "t", "", "Template name or id (required)")
	generateProgramCmd.MarkFlagRequired("template")

	showProgramCmd.Flags().StringVarP(&showProgramID, "program", "p", "", "Program id (defaults to the active program)")
	showProgramCmd.Flags().IntVarP(&weekFilter, "week", "w", 0, "Only show this week")

	completeWorkoutCmd.Flags().IntVarP(&completeWeek, "week", "w", 0, "Absolute week number")
	completeWorkoutCmd.Flags().IntVarP(&completeDay, "day", "d", 0, "Day number")
	completeWorkoutCmd.Flags().StringArrayVarP(&completeSets, "set", "s", nil, "Performed set, EXERCISE:WEIGHTxREPS[@RPE]")

	programStatusCmd.Flags().StringVarP(&statusProgramID, "program", "p", "", "Program id (defaults to the active program)")
}
