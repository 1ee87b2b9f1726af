package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/datepicker/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datepicker",
		Short: "Calendar date picker engine",
		Long:  "Render, query and drive a calendar date picker with range limits, holiday calendars and schedule indicators",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log settings
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				cfg.ExpandEnvVars()
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger("info") // Fallback to console
				}
			} else if err == nil {
				initLogger(cfg.Log.Level)
			} else {
				initLogger("info") // Default console logger
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml, $HOME/.datepicker, /etc/datepicker)")

	rootCmd.AddCommand(gridCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(optionsCmd())
	rootCmd.AddCommand(sessionCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(describeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()
	return cfg, nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err == nil {
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
