package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/prescribe/internal/calibration"
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/relation"
	"github.com/misterclayt0n/prescribe/internal/storage"
	"github.com/misterclayt0n/prescribe/internal/utils"
	"github.com/spf13/cobra"
)

var startTestCmd = &cobra.Command{
	Use:   "start-test",
	Short: "Start a max-test (AMRAP calibration) session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if utils.SessionExists() {
			return fmt.Errorf("A test session is already active. Finish it with end-test or cancel-test")
		}
		state := &utils.SessionState{UserID: userID, StartedAt: time.Now().UTC()}
		if err := utils.SaveSessionState(state); err != nil {
			return fmt.Errorf("Failed to save session state: %w", err)
		}
		fmt.Println("✅ Test session started")
		return nil
	},
}

var warmupCmd = &cobra.Command{
	Use:   "warmup [test-weight]",
	Short: "Show the warm-up ladder for a test weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := strconv.ParseFloat(args[0], 64)
		if err != nil || w <= 0 {
			return fmt.Errorf("Invalid test weight %q. Must be a positive number", args[0])
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("%s %.1fkg\n", cyan("Warm-up for"), w)
		fmt.Printf("  %-4s | %-5s | %-12s | %-5s\n", "Set", "%", "Weight (kg)", "Reps")
		for i, s := range calibration.GenerateWarmupSets(w, cfg.Engine.LoadIncrement) {
			fmt.Printf("  %-4d | %-5.0f | %-12.1f | %-5d\n", i+1, s.Percentage*100, s.WeightKg, s.Reps)
		}
		return nil
	},
}

var (
	amrapWeight float64
	amrapReps   int
)

var recordAMRAPCmd = &cobra.Command{
	Use:   "record-amrap [exercise-name]",
	Short: "Record an AMRAP set in the current test session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.SessionExists() {
			return fmt.Errorf("No active test session")
		}
		state, err := utils.LoadSessionState()
		if err != nil {
			return fmt.Errorf("Failed to load session state: %w", err)
		}

		name := args[0]
		if !calibration.IsEligibleForTest(name) {
			color.New(color.FgYellow).Printf("⚠ %s has no correlation to a base lift; its maximum will not feed the profile\n", name)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		svc, err := resumeService(context.Background(), st, state)
		if err != nil {
			return err
		}
		res, err := svc.ProcessAMRAPResult(calibration.Attempt{
			ExerciseID:   utils.ExerciseID(name),
			ExerciseName: name,
			Weight:       amrapWeight,
			Reps:         amrapReps,
		})
		if err != nil {
			return err
		}

		state.Results = svc.Results()
		if err := utils.SaveSessionState(state); err != nil {
			return fmt.Errorf("Failed to save session state: %w", err)
		}
		printResult(res)
		return nil
	},
}

var applyResults bool

var endTestCmd = &cobra.Command{
	Use:   "end-test",
	Short: "Close the test session and store its results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.SessionExists() {
			return fmt.Errorf("No active test session")
		}
		state, err := utils.LoadSessionState()
		if err != nil {
			return fmt.Errorf("Failed to load session state: %w", err)
		}

		ctx := context.Background()
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		svc, err := resumeService(ctx, st, state)
		if err != nil {
			return err
		}
		results, err := svc.EndSession()
		if err != nil {
			return err
		}

		if err := st.SaveTestResults(ctx, state.UserID, results); err != nil {
			return fmt.Errorf("Failed to save results: %w", err)
		}
		newMaxima := make(map[string]float64, len(results))
		for _, r := range results {
			newMaxima[r.ExerciseID] = r.NewMax
		}
		if err := st.SaveMaxima(ctx, state.UserID, newMaxima); err != nil {
			return fmt.Errorf("Failed to save maxima: %w", err)
		}

		if applyResults && len(results) > 0 {
			profile, err := st.GetProfile(ctx, state.UserID)
			if err != nil {
				return fmt.Errorf("Failed to load profile: %w", err)
			}
			updated := calibration.ApplyToProfile(profile, results, relation.New())
			if len(updated) > 0 {
				if err := st.PutProfile(ctx, profile); err != nil {
					return fmt.Errorf("Failed to save profile: %w", err)
				}
				for _, lift := range updated {
					v, _ := profile.Current.For(lift)
					fmt.Printf("   %s max is now %.1fkg\n", lift, v)
				}
			}
		}

		if err := utils.ClearSessionState(); err != nil {
			return fmt.Errorf("Failed to clear session: %w", err)
		}
		fmt.Printf("✅ Test session saved (%d results)\n", len(results))
		return nil
	},
}

var cancelTestCmd = &cobra.Command{
	Use:   "cancel-test",
	Short: "Discard the current test session without storing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.SessionExists() {
			return fmt.Errorf("No active test session")
		}
		if err := utils.ClearSessionState(); err != nil {
			return fmt.Errorf("Failed to clear session: %w", err)
		}
		fmt.Println("✅ Test session discarded")
		return nil
	},
}

var historyLimit int

var testHistoryCmd = &cobra.Command{
	Use:   "test-history [exercise-name]",
	Short: "Show stored max-test results, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		var id string
		if len(args) == 1 {
			id = utils.ExerciseID(args[0])
		}
		results, err := st.ListTestResults(context.Background(), userID, id, historyLimit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No test results found.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s  ", utils.FormatDate(r.TestedAt))
			printResult(r)
		}
		return nil
	},
}

// resumeService rebuilds a calibration service from the stored maxima and
// the attempts already recorded in this session.
func resumeService(ctx context.Context, st *storage.Storage, state *utils.SessionState) (*calibration.Service, error) {
	maxima, err := st.LoadMaxima(ctx, state.UserID)
	if err != nil {
		return nil, err
	}
	store := calibration.NewMaxStore()
	store.Load(maxima)
	for _, r := range state.Results {
		store.Set(r.ExerciseID, r.NewMax)
	}

	svc := calibration.NewService(store, calibration.WithLogger(logger))
	if err := svc.Resume(state.Results); err != nil {
		return nil, err
	}
	return svc, nil
}

func printResult(r models.ILBTestResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("%s: %.1fkg × %d → %s", cyan(r.ExerciseName), r.TestWeight, r.Reps, fmt.Sprintf("%.1fkg", r.NewMax))
	switch r.Outcome() {
	case models.OutcomeImproved:
		fmt.Printf(" %s", green(fmt.Sprintf("(+%.1fkg, +%.1f%%)", *r.ChangeAbsolute, *r.ChangePercent)))
	case models.OutcomeDeclined:
		fmt.Printf(" %s", red(fmt.Sprintf("(%.1fkg, %.1f%%)", *r.ChangeAbsolute, *r.ChangePercent)))
	case models.OutcomeStable:
		fmt.Printf(" (stable, %.1f%%)", *r.ChangePercent)
	default:
		fmt.Print(" (first test)")
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(startTestCmd)
	rootCmd.AddCommand(warmupCmd)
	rootCmd.AddCommand(recordAMRAPCmd)
	rootCmd.AddCommand(endTestCmd)
	rootCmd.AddCommand(cancelTestCmd)
	rootCmd.AddCommand(testHistoryCmd)

	recordAMRAPCmd.Flags().Float64VarP(&amrapWeight, "weight", "w", 0, "Test weight in kg")
	recordAMRAPCmd.Flags().IntVarP(&amrapReps, "reps", "r", 0, "Reps performed")
	recordAMRAPCmd.MarkFlagRequired("weight")
	recordAMRAPCmd.MarkFlagRequired("reps")

	endTestCmd.Flags().BoolVarP(&applyResults, "apply", "a", false, "Update the profile's base maxima from the results")

	testHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "l", 10, "Number of results to display")
}
