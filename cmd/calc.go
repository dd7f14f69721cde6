package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/prescribe/internal/autoreg"
	"github.com/misterclayt0n/prescribe/internal/generator"
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/onerm"
	"github.com/misterclayt0n/prescribe/internal/relation"
	"github.com/misterclayt0n/prescribe/internal/storage"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate-1rm [weight] [reps]",
	Short: "Estimate a one-rep max from a set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[0], 64)
		if err != nil || weight <= 0 {
			return fmt.Errorf("Invalid weight %q. Must be a positive number", args[0])
		}
		reps, err := strconv.Atoi(args[1])
		if err != nil || reps < 1 {
			return fmt.Errorf("Invalid reps %q. Must be a positive integer", args[1])
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("Epley:   %.1fkg\n", onerm.Epley(weight, reps))
		fmt.Printf("Brzycki: %.1fkg\n", onerm.Brzycki(weight, reps))
		fmt.Printf("%s %.1fkg\n", yellow("Estimate:"), onerm.Estimate1RM(weight, reps))
		return nil
	},
}

var tableIncrement float64

var loadTableCmd = &cobra.Command{
	Use:   "load-table [one-rep-max]",
	Short: "Print working weights per rep count for a maximum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		oneRM, err := strconv.ParseFloat(args[0], 64)
		if err != nil || oneRM <= 0 {
			return fmt.Errorf("Invalid maximum %q. Must be a positive number", args[0])
		}
		inc := tableIncrement
		if inc <= 0 {
			inc = cfg.Engine.LoadIncrement
		}

		fmt.Printf("  %-5s | %-5s | %-12s\n", "Reps", "%1RM", "Weight (kg)")
		fmt.Println("  " + strings.Repeat("─", 28))
		for _, reps := range []int{1, 2, 3, 4, 5, 6, 8, 10, 12, 15, 20} {
			fmt.Printf("  %-5d | %-5.1f | %-12.1f\n",
				reps, onerm.PercentageForReps(reps)*100, onerm.WeightForReps(oneRM, reps, inc))
		}
		return nil
	},
}

var (
	wilksGender     string
	wilksBodyweight float64
	wilksTotal      float64
)

var wilksCmd = &cobra.Command{
	Use:   "wilks",
	Short: "Compute a Wilks score (from flags, or the stored profile)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var gender models.Gender
		bw, total := wilksBodyweight, wilksTotal

		if wilksGender == "" || bw <= 0 || total <= 0 {
			st, err := openStorage()
			if err != nil {
				return err
			}
			defer st.Close()
			p, err := st.GetProfile(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("Failed to load profile: %w", err)
			}
			gender = p.Gender
			if bw <= 0 {
				bw = p.BodyweightKg
			}
			if total <= 0 {
				total = p.Current.Total()
			}
		}
		if wilksGender != "" {
			if err := gender.UnmarshalText([]byte(wilksGender)); err != nil {
				return err
			}
		}
		if gender == 0 || bw <= 0 || total <= 0 {
			return fmt.Errorf("gender, bodyweight and total are all required")
		}

		fmt.Printf("Wilks: %.2f (%s, %.1fkg bodyweight, %.1fkg total)\n",
			onerm.Wilks(gender, bw, total), gender, bw, total)
		return nil
	},
}

var resolveExerciseCmd = &cobra.Command{
	Use:   "resolve-exercise [exercise-name]",
	Short: "Show which base lift an exercise is scaled from",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		res := relation.New().Explain(name)

		cyan := color.New(color.FgCyan).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()

		fmt.Printf("%s: %s\n", cyan("Exercise"), name)
		fmt.Printf("%s: %s", cyan("Match"), res.Stage)
		if res.Rule != "" {
			fmt.Printf(" (%s)", res.Rule)
		}
		fmt.Println()
		if res.Relation == nil {
			fmt.Println(magenta("No relation to a base lift."))
			return nil
		}
		fmt.Printf("%s: %s × %.2f\n", cyan("Scaled from"), res.Relation.Lift, res.Relation.Multiplier)
		return nil
	},
}

var recommendReps int

var recommendCmd = &cobra.Command{
	Use:   "recommend [exercise-name]",
	Short: "Suggest a working weight for any exercise from the profile's maxima",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.GetProfile(context.Background(), userID)
		if err != nil {
			return fmt.Errorf("Failed to load profile: %w", err)
		}
		w := generator.RecommendWeight(p, name, recommendReps, relation.New(), cfg.Engine.LoadIncrement)
		if w == nil {
			fmt.Printf("No recommendation for %s\n", name)
			return nil
		}
		fmt.Printf("%s: %.1fkg × %d\n", name, *w, recommendReps)
		return nil
	},
}

var (
	vbtPercentage float64
	vbtVelocity   float64
	vbtExperience string
)

var vbtAdjustCmd = &cobra.Command{
	Use:   "vbt-adjust",
	Short: "Suggest a load change from a measured bar velocity",
	RunE: func(cmd *cobra.Command, args []string) error {
		pct := vbtPercentage
		if pct > 1.5 {
			pct /= 100 // Accept 80 as well as 0.80.
		}
		if pct <= 0 || vbtVelocity <= 0 {
			return fmt.Errorf("--percentage and --velocity must be positive")
		}

		profile, err := vbtProfile()
		if err != nil {
			return err
		}
		s := autoreg.SuggestAdjustment(pct, vbtVelocity, profile)

		fmt.Printf("Expected: %.2f m/s, measured: %.2f m/s (%+.2f)\n",
			autoreg.ExpectedVelocity(pct), vbtVelocity, s.VelocityDiff)
		fmt.Printf("Action: %s → %.1f%% 1RM\n", s.Action, s.TargetPercentage*100)
		return nil
	},
}

// vbtProfile picks the experience tier from the flag, then the stored profile,
// and falls back to default steps when neither is available.
func vbtProfile() (*models.StrengthProfile, error) {
	if vbtExperience != "" {
		p := &models.StrengthProfile{}
		if err := p.Experience.UnmarshalText([]byte(vbtExperience)); err != nil {
			return nil, err
		}
		return p, nil
	}
	if cfg.DB.ConnectionString == "" {
		return nil, nil
	}
	st, err := openStorage()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	p, err := st.GetProfile(context.Background(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(loadTableCmd)
	rootCmd.AddCommand(wilksCmd)
	rootCmd.AddCommand(resolveExerciseCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(vbtAdjustCmd)

	loadTableCmd.Flags().Float64VarP(&tableIncrement, "increment", "i", 0, "Plate increment in kg (defaults to the configured one)")

	wilksCmd.Flags().StringVarP(&wilksGender, "gender", "g", "", "male or female")
	wilksCmd.Flags().Float64VarP(&wilksBodyweight, "bodyweight", "b", 0, "Bodyweight in kg")
	wilksCmd.Flags().Float64VarP(&wilksTotal, "total", "t", 0, "Squat + bench + deadlift in kg")

	recommendCmd.Flags().IntVarP(&recommendReps, "reps", "r", 5, "Target reps")

	vbtAdjustCmd.Flags().Float64VarP(&vbtPercentage, "percentage", "p", 0, "Target %1RM (0.80 or 80)")
	vbtAdjustCmd.Flags().Float64VarP(&vbtVelocity, "velocity", "v", 0, "Measured mean velocity in m/s")
	vbtAdjustCmd.Flags().StringVarP(&vbtExperience, "experience", "e", "", "Experience tier (beginner, intermediate, advanced, elite)")
	vbtAdjustCmd.MarkFlagRequired("percentage")
	vbtAdjustCmd.MarkFlagRequired("velocity")
}
