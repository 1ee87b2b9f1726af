package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/datepicker/internal/picker"
	"github.com/username/datepicker/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	Picker   PickerConfig   `mapstructure:"picker"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
}

// PickerConfig represents the date picker behaviour
type PickerConfig struct {
	Mode            string `mapstructure:"mode"`   // "custom" or "delegate"
	Format          string `mapstructure:"format"` // display pattern, e.g. DD/MM/YYYY
	WeekStart       string `mapstructure:"week_start"`
	InitialDate     string `mapstructure:"initial_date"`
	MinDate         string `mapstructure:"min_date"`
	MaxDate         string `mapstructure:"max_date"`
	DisablePast     bool   `mapstructure:"disable_past"`
	DisableFuture   bool   `mapstructure:"disable_future"`
	DisableWeekends bool   `mapstructure:"disable_weekends"`
	DisableHolidays bool   `mapstructure:"disable_holidays"` // uses the calendar section
	YearSpan        int    `mapstructure:"year_span"`
	Timezone        string `mapstructure:"timezone"`
	IndicatorColor  string `mapstructure:"indicator_color"`
}

// ScheduleConfig represents the sources of schedule indicators
type ScheduleConfig struct {
	Dates    []string `mapstructure:"dates"`
	ICSFiles []string `mapstructure:"ics_files"`
}

// CalendarConfig represents the holiday calendar used by disable_holidays
type CalendarConfig struct {
	Type        string `mapstructure:"type"`         // "weekend", "file" or "yearly"
	File        string `mapstructure:"file"`         // for "file"
	PathPattern string `mapstructure:"path_pattern"` // for "yearly", contains {year}
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing file is not an error when
// no explicit path was given: defaults and environment variables apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.datepicker")
		v.AddConfigPath("/etc/datepicker")
	}

	// Read environment variables, e.g. DATEPICKER_PICKER_FORMAT
	v.SetEnvPrefix("datepicker")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without defaults are invisible to Unmarshal unless bound
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// envKeys are the settings that have no default but may come from DATEPICKER_* variables
var envKeys = []string{
	"picker.initial_date",
	"picker.min_date",
	"picker.max_date",
	"picker.disable_past",
	"picker.disable_future",
	"picker.disable_weekends",
	"picker.disable_holidays",
	"picker.timezone",
	"schedule.dates",
	"schedule.ics_files",
	"calendar.file",
	"calendar.path_pattern",
	"log.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("picker.mode", "custom")
	v.SetDefault("picker.format", picker.DefaultFormat)
	v.SetDefault("picker.week_start", "sunday")
	v.SetDefault("picker.year_span", picker.DefaultYearSpan)
	v.SetDefault("picker.indicator_color", "#4CAF50")
	v.SetDefault("calendar.type", "weekend")
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Picker config
	if _, err := picker.ParseMode(c.Picker.Mode); err != nil {
		return fmt.Errorf("picker.mode: %w", err)
	}
	if _, err := c.Picker.GetWeekStart(); err != nil {
		return err
	}
	if _, err := c.Picker.GetLocation(); err != nil {
		return err
	}
	if c.Picker.YearSpan < 0 {
		return fmt.Errorf("picker.year_span must not be negative")
	}

	minDate, err := c.Picker.GetMinDate()
	if err != nil {
		return err
	}
	maxDate, err := c.Picker.GetMaxDate()
	if err != nil {
		return err
	}
	if minDate != nil && maxDate != nil && maxDate.Before(*minDate) {
		return fmt.Errorf("picker.max_date %s is before picker.min_date %s", maxDate, minDate)
	}
	if _, err := c.Picker.GetInitialDate(); err != nil {
		return err
	}

	// Validate Calendar config
	calType := c.Calendar.Type
	if calType == "" {
		calType = "weekend"
	}

	switch calType {
	case "weekend":
	case "file":
		if c.Calendar.File == "" {
			return fmt.Errorf("calendar.file is required for file type")
		}
	case "yearly":
		if !strings.Contains(c.Calendar.PathPattern, "{year}") {
			return fmt.Errorf("calendar.path_pattern must contain {year} for yearly type")
		}
	default:
		return fmt.Errorf("calendar.type must be 'weekend', 'file' or 'yearly', got '%s'", calType)
	}

	return nil
}

// GetMode returns the picker mode
func (c *PickerConfig) GetMode() picker.Mode {
	mode, _ := picker.ParseMode(c.Mode)
	return mode
}

// GetWeekStart returns the first weekday of the grid. Default: Sunday
func (c *PickerConfig) GetWeekStart() (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(c.WeekStart)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("picker.week_start must be sunday, monday or saturday, got '%s'", c.WeekStart)
}

// GetLocation returns the configured timezone. Default: time.Local
func (c *PickerConfig) GetLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("picker.timezone: %w", err)
	}
	return loc, nil
}

// GetInitialDate returns the configured initial selection, or nil
func (c *PickerConfig) GetInitialDate() (*dateutil.Date, error) {
	return c.optionalDate("picker.initial_date", c.InitialDate)
}

// GetMinDate returns the lower selection bound, or nil
func (c *PickerConfig) GetMinDate() (*dateutil.Date, error) {
	return c.optionalDate("picker.min_date", c.MinDate)
}

// GetMaxDate returns the upper selection bound, or nil
func (c *PickerConfig) GetMaxDate() (*dateutil.Date, error) {
	return c.optionalDate("picker.max_date", c.MaxDate)
}

// GetYearSpan returns how many years either side of today the year dropdown shows
func (c *PickerConfig) GetYearSpan() int {
	if c.YearSpan <= 0 {
		return picker.DefaultYearSpan
	}
	return c.YearSpan
}

func (c *PickerConfig) optionalDate(key, value string) (*dateutil.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := dateutil.Parse(dateutil.ISOLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD: %w", key, err)
	}
	return &d, nil
}

// ExpandEnvVars expands environment variables in config paths
func (c *Config) ExpandEnvVars() {
	c.Calendar.File = os.ExpandEnv(c.Calendar.File)
	c.Calendar.PathPattern = os.ExpandEnv(c.Calendar.PathPattern)
	c.Log.File = os.ExpandEnv(c.Log.File)
	for i, f := range c.Schedule.ICSFiles {
		c.Schedule.ICSFiles[i] = os.ExpandEnv(f)
	}
}
