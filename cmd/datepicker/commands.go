package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/datepicker/internal/render"
	"github.com/username/datepicker/internal/schedule"
	"go.uber.org/zap"
)

func gridCmd() *cobra.Command {
	var monthStr string
	var selectStr string
	var plain bool

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Render the calendar grid of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			month, err := parseMonthFlag(monthStr)
			if err != nil {
				return err
			}
			selected, err := parseDateFlag(selectStr)
			if err != nil {
				return err
			}
			if month == nil {
				month = selected
			}

			engine, err := initializeEngine(cfg, engineParams{month: month})
			if err != nil {
				return err
			}

			if selected != nil && !engine.SelectDay(*selected) {
				fmt.Fprintf(os.Stderr, "⚠️  %s is disabled, selection ignored\n", selected)
			}

			renderer := render.NewTextRenderer(plain, cfg.Picker.IndicatorColor)
			return renderer.Render(os.Stdout, engine)
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "Month to show (YYYY-MM), default: selection or current month")
	cmd.Flags().StringVar(&selectStr, "select", "", "Date to select (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors and styling")

	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check DATE",
		Short: "Show whether a date is disabled or scheduled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			date, err := parseDateFlag(args[0])
			if err != nil {
				return err
			}

			engine, err := initializeEngine(cfg, engineParams{month: date})
			if err != nil {
				return err
			}

			fmt.Printf("Date:       %s (%s)\n", date, date.Format("dddd"))
			fmt.Printf("Display:    %s\n", date.Format(engine.Format()))
			fmt.Printf("Disabled:   %t\n", engine.IsDisabled(*date))
			fmt.Printf("Scheduled:  %t\n", engine.HasSchedule(*date))
			return nil
		},
	}

	return cmd
}

func optionsCmd() *cobra.Command {
	var span int

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List month and year dropdown options",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("span") {
				span = cfg.Picker.GetYearSpan()
			}

			engine, err := initializeEngine(cfg, engineParams{})
			if err != nil {
				return err
			}

			fmt.Println("Months:")
			for _, opt := range engine.MonthOptions() {
				fmt.Printf("  %2d  %s\n", opt.Value, opt.Label)
			}

			years := engine.YearOptions(span)
			fmt.Printf("\nYears (%d):\n", len(years))
			for _, opt := range years {
				fmt.Printf("  %s\n", opt.Label)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&span, "span", 0, "Years either side of the current year (default from config)")

	return cmd
}

func demoCmd() *cobra.Command {
	var monthStr string
	var count int
	var weekdaysOnly bool
	var plain bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render a month with random demo schedule dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			month, err := parseMonthFlag(monthStr)
			if err != nil {
				return err
			}

			// Build once to learn the view month, then again with demo dates for it
			engine, err := initializeEngine(cfg, engineParams{month: month})
			if err != nil {
				return err
			}
			view := engine.ViewMonth()
			demo := schedule.Demo(view, count, weekdaysOnly)

			logger.Info("Demo schedule generated",
				zap.String("month", view.Format("YYYY-MM")),
				zap.Int("count", len(demo)))

			engine, err = initializeEngine(cfg, engineParams{month: &view, extra: demo})
			if err != nil {
				return err
			}

			renderer := render.NewTextRenderer(plain, cfg.Picker.IndicatorColor)
			return renderer.Render(os.Stdout, engine)
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "Month to show (YYYY-MM)")
	cmd.Flags().IntVar(&count, "count", 5, "Number of demo dates")
	cmd.Flags().BoolVar(&weekdaysOnly, "weekdays-only", false, "Only pick Monday to Friday")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors and styling")

	return cmd
}

func describeCmd() *cobra.Command {
	var format string
	var monthStr string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the picker state for an external date widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			month, err := parseMonthFlag(monthStr)
			if err != nil {
				return err
			}

			engine, err := initializeEngine(cfg, engineParams{month: month})
			if err != nil {
				return err
			}

			return render.Describe(engine).Write(os.Stdout, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVar(&monthStr, "month", "", "Month to describe (YYYY-MM)")

	return cmd
}
