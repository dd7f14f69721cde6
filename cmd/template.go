package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/utils"
	"github.com/spf13/cobra"
)

var importTemplateCmd = &cobra.Command{
	Use:   "import-template [template-file]",
	Short: "Import a program template from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("Failed to read template file: %w", err)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		tmpl, err := st.ImportTemplate(context.Background(), data)
		if err != nil {
			return fmt.Errorf("Failed to import template: %w", err)
		}
		fmt.Printf("✅ Template '%s' imported (%d weeks)\n", tmpl.Name, tmpl.TotalWeeks())
		return nil
	},
}

var listTemplatesCmd = &cobra.Command{
	Use:   "list-templates",
	Short: "List all stored program templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.ListTemplates(context.Background())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No templates found.")
			return nil
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		for _, t := range list {
			fmt.Printf("%s  %s\n", cyan(t.Name), t.ID)
			if t.Description != "" {
				fmt.Printf("   %s\n", t.Description)
			}
		}
		return nil
	},
}

var templateFile string

var showTemplateCmd = &cobra.Command{
	Use:   "show-template [name-or-id]",
	Short: "Display a stored template, or a template file with --file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tmpl *models.ProgramTemplate
		switch {
		case templateFile != "":
			t, err := utils.ParseTemplateFromTOML(templateFile)
			if err != nil {
				return fmt.Errorf("Failed to parse template: %w", err)
			}
			tmpl = t
		case len(args) == 1:
			st, err := openStorage()
			if err != nil {
				return err
			}
			defer st.Close()
			t, err := st.GetTemplate(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("Failed to load template: %w", err)
			}
			tmpl = t
		default:
			return fmt.Errorf("a template name or --file must be provided")
		}

		printTemplate(tmpl)
		return nil
	},
}

func printTemplate(tmpl *models.ProgramTemplate) {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("\n%s\n", green(strings.ToUpper(tmpl.Name)))
	if tmpl.Description != "" {
		fmt.Printf("%s: %s\n", cyan("Description"), tmpl.Description)
	}
	fmt.Printf("%s: %s", cyan("Progression"), tmpl.Progression.Type)
	if tmpl.Progression.WeeklyIncrement != nil {
		fmt.Printf(" (+%.1f%%/week)", *tmpl.Progression.WeeklyIncrement*100)
	}
	if tmpl.Progression.VelocityBased {
		fmt.Print(" [VBT]")
	}
	fmt.Printf("\n%s: %d\n", cyan("Weeks"), tmpl.TotalWeeks())
	fmt.Println(strings.Repeat("=", 60))

	for _, phase := range tmpl.Phases {
		fmt.Printf("\n%s: %s (%d weeks", yellow("Phase"), phase.Name, phase.WeekCount())
		if phase.Intensity.Max > 0 {
			fmt.Printf(", %.0f-%.0f%%", phase.Intensity.Min*100, phase.Intensity.Max*100)
		}
		fmt.Println(")")

		for _, week := range phase.Weeks {
			fmt.Printf("  Week %d", week.WeekNumber)
			if week.Type != models.WeekNormal {
				fmt.Printf(" [%s]", week.Type)
			}
			fmt.Println()
			for _, day := range week.Days {
				fmt.Printf("    Day %d %s\n", day.DayNumber, day.Name)
				for i, ex := range day.Exercises {
					fmt.Printf("      %d. %s %dx%s", i+1, ex.Name, ex.Sets, formatRepRange(ex.Reps))
					if ex.Percentage != nil {
						fmt.Printf(" @ %.0f-%.0f%%", ex.Percentage.Min*100, ex.Percentage.Max*100)
					}
					if ex.TargetRPE != nil {
						fmt.Printf(" RPE %.1f", *ex.TargetRPE)
					}
					fmt.Println()
				}
			}
		}
	}
	fmt.Println()
}

func formatRepRange(r models.RepRange) string {
	if r.Min == r.Max {
		return fmt.Sprint(r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

func init() {
	rootCmd.AddCommand(importTemplateCmd)
	rootCmd.AddCommand(listTemplatesCmd)
	rootCmd.AddCommand(showTemplateCmd)
	showTemplateCmd.Flags().StringVarP(&templateFile, "file", "f", "", "Read the template from a TOML file instead of the database")
}
