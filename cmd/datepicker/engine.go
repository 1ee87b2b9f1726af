package main

import (
	"fmt"
	"time"

	"github.com/username/datepicker/internal/calendar"
	"github.com/username/datepicker/internal/config"
	"github.com/username/datepicker/internal/picker"
	"github.com/username/datepicker/internal/schedule"
	"github.com/username/datepicker/pkg/dateutil"
	"go.uber.org/zap"
)

// icsWindowMonths bounds ICS expansion around the starting view month
const icsWindowMonths = 12

type engineParams struct {
	initial  *dateutil.Date
	month    *dateutil.Date
	extra    picker.ScheduleSet
	onChange func(*dateutil.Date)
}

func initializeEngine(cfg *config.Config, params engineParams) (*picker.Engine, error) {
	loc, err := cfg.Picker.GetLocation()
	if err != nil {
		return nil, err
	}
	weekStart, err := cfg.Picker.GetWeekStart()
	if err != nil {
		return nil, err
	}
	minDate, err := cfg.Picker.GetMinDate()
	if err != nil {
		return nil, err
	}
	maxDate, err := cfg.Picker.GetMaxDate()
	if err != nil {
		return nil, err
	}

	initial := params.initial
	if initial == nil {
		if initial, err = cfg.Picker.GetInitialDate(); err != nil {
			return nil, err
		}
	}

	clock := func() time.Time { return time.Now().In(loc) }

	anchor := dateutil.FromTime(clock())
	if params.month != nil {
		anchor = *params.month
	} else if initial != nil {
		anchor = *initial
	}

	var predicates []picker.DisablePredicate
	if cfg.Picker.DisableWeekends {
		predicates = append(predicates, picker.DisableWeekends())
	}
	if cfg.Picker.DisableHolidays {
		cal, err := initializeCalendar(cfg)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, calendar.NonWorkdays(cal, logger))
	}

	var shouldDisable picker.DisablePredicate
	if len(predicates) > 0 {
		shouldDisable = picker.AnyOf(predicates...)
	}

	sched := schedule.Merge(
		schedule.FromStrings(cfg.Schedule.Dates),
		loadICSSchedules(cfg.Schedule.ICSFiles, anchor, loc),
		params.extra,
	)

	engine := picker.NewEngine(picker.Options{
		Initial:       initial,
		MinDate:       minDate,
		MaxDate:       maxDate,
		DisablePast:   cfg.Picker.DisablePast,
		DisableFuture: cfg.Picker.DisableFuture,
		ShouldDisable: shouldDisable,
		Schedule:      sched,
		Format:        cfg.Picker.Format,
		WeekStart:     weekStart,
		Mode:          cfg.Picker.GetMode(),
		Clock:         clock,
		OnChange:      params.onChange,
		Logger:        logger,
	})

	if params.month != nil {
		engine.SetYear(params.month.Year())
		engine.SetMonth(params.month.Month())
	}

	logger.Debug("Engine initialized",
		zap.String("mode", engine.Mode().String()),
		zap.String("week_start", weekStart.String()),
		zap.String("view_month", engine.ViewMonth().Format("YYYY-MM")),
		zap.Int("schedule_entries", len(sched)))

	return engine, nil
}

func initializeCalendar(cfg *config.Config) (calendar.Calendar, error) {
	calType := cfg.Calendar.Type
	if calType == "" {
		calType = "weekend" // Default
	}

	switch calType {
	case "weekend":
		return calendar.NewWeekendCalendar(), nil

	case "file":
		logger.Info("Using holiday file calendar", zap.String("file", cfg.Calendar.File))
		primaryCal := calendar.NewFileCalendar(cfg.Calendar.File, logger)
		compositeCal := calendar.NewCompositeCalendar(primaryCal, calendar.NewWeekendCalendar(), logger)

		if err := compositeCal.LoadPrimary(); err != nil {
			logger.Warn("Failed to load holiday file, continuing with weekends only",
				zap.Error(err))
		}
		return compositeCal, nil

	case "yearly":
		logger.Info("Using yearly calendar files", zap.String("pattern", cfg.Calendar.PathPattern))
		primaryCal := calendar.NewYearFileCalendar(cfg.Calendar.PathPattern, logger)
		return calendar.NewCompositeCalendar(primaryCal, calendar.NewWeekendCalendar(), logger), nil
	}

	return nil, fmt.Errorf("unknown calendar type: %s", calType)
}

func loadICSSchedules(files []string, anchor dateutil.Date, loc *time.Location) picker.ScheduleSet {
	if len(files) == 0 {
		return nil
	}

	loader := schedule.NewICSLoader(loc, logger)
	from := anchor.StartOfMonth().AddMonths(-icsWindowMonths)
	to := anchor.EndOfMonth().AddMonths(icsWindowMonths)

	var sets []picker.ScheduleSet
	for _, path := range files {
		set, err := loader.LoadFile(path, from, to)
		if err != nil {
			logger.Warn("Skipping ICS file", zap.String("file", path), zap.Error(err))
			continue
		}
		sets = append(sets, set)
	}
	return schedule.Merge(sets...)
}

// parseMonthFlag accepts YYYY-MM
func parseMonthFlag(value string) (*dateutil.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := dateutil.Parse("2006-01", value)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, want YYYY-MM", value)
	}
	return &d, nil
}

func parseDateFlag(value string) (*dateutil.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := dateutil.Parse(dateutil.ISOLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", value, err)
	}
	return &d, nil
}
