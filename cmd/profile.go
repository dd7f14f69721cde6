package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/onerm"
	"github.com/misterclayt0n/prescribe/internal/utils"
	"github.com/spf13/cobra"
)

var importProfileCmd = &cobra.Command{
	Use:   "import-profile [profile-file]",
	Short: "Create or replace an athlete profile from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := utils.ParseProfileFromTOML(args[0])
		if err != nil {
			return fmt.Errorf("Failed to read profile: %w", err)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.PutProfile(context.Background(), p); err != nil {
			return fmt.Errorf("Failed to save profile: %w", err)
		}
		fmt.Printf("✅ Profile '%s' saved\n", p.UserID)
		return nil
	},
}

var setMaxGoal bool

var setMaxCmd = &cobra.Command{
	Use:   "set-max [lift] [kg]",
	Short: "Set the current (or goal) maximum of a base lift",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lift, err := models.ParseBaseLift(args[0])
		if err != nil {
			return err
		}
		kg, err := strconv.ParseFloat(args[1], 64)
		if err != nil || kg <= 0 {
			return fmt.Errorf("Invalid weight %q. Must be a positive number", args[1])
		}

		ctx := context.Background()
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.GetProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("Failed to load profile: %w", err)
		}
		if setMaxGoal {
			p.Goal = p.Goal.With(lift, kg)
		} else {
			p.Current = p.Current.With(lift, kg)
		}
		if err := st.PutProfile(ctx, p); err != nil {
			return fmt.Errorf("Failed to save profile: %w", err)
		}
		fmt.Printf("✅ %s max set to %.1fkg\n", lift, kg)
		return nil
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show-profile",
	Short: "Display the athlete profile and its maxima",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.GetProfile(context.Background(), userID)
		if err != nil {
			return fmt.Errorf("Failed to load profile: %w", err)
		}

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()

		fmt.Println(boldGreen("Profile:"))
		fmt.Printf("  %s: %s\n", boldCyan("User"), p.UserID)
		if p.Name != "" {
			fmt.Printf("  %s: %s\n", boldCyan("Name"), p.Name)
		}
		if p.Gender != 0 {
			fmt.Printf("  %s: %s\n", boldCyan("Gender"), p.Gender)
		}
		if p.BodyweightKg > 0 {
			fmt.Printf("  %s: %.1fkg\n", boldCyan("Bodyweight"), p.BodyweightKg)
		}
		if p.Experience != 0 {
			fmt.Printf("  %s: %s\n", boldCyan("Experience"), p.Experience)
		}
		if p.Commitment.SessionsPerWeek > 0 {
			fmt.Printf("  %s: %d sessions/week, effort %d/10\n",
				boldCyan("Commitment"), p.Commitment.SessionsPerWeek, p.Commitment.Effort)
		}
		fmt.Printf("  %s: %s\n", boldCyan("Updated"), utils.FormatLocal(p.UpdatedAt))

		fmt.Println()
		fmt.Printf("  %-10s | %-12s | %-12s\n", "Lift", "Current (kg)", "Goal (kg)")
		for _, lift := range models.AllLifts {
			fmt.Printf("  %-10s | %-12s | %-12s\n", lift, formatMax(p.Current, lift), formatMax(p.Goal, lift))
		}
		if p.Current.Overhead == nil && p.Current.Bench > 0 {
			fmt.Println(magenta("  Overhead derived from bench."))
		}

		total := p.Current.Total()
		fmt.Printf("\n  %s: %.1fkg\n", boldCyan("Total"), total)
		if p.Gender != 0 && p.BodyweightKg > 0 && total > 0 {
			fmt.Printf("  %s: %s\n", boldCyan("Wilks"), yellow(fmt.Sprintf("%.1f", onerm.Wilks(p.Gender, p.BodyweightKg, total))))
		}
		return nil
	},
}

func formatMax(m models.Maxima, lift models.BaseLift) string {
	v, err := m.For(lift)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}

func init() {
	rootCmd.AddCommand(importProfileCmd)
	rootCmd.AddCommand(setMaxCmd)
	rootCmd.AddCommand(showProfileCmd)
	setMaxCmd.Flags().BoolVarP(&setMaxGoal, "goal", "g", false, "Set the goal maximum instead of the current one")
}
