package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-cli/skillet/pkg/logger"
	"github.com/skillet-cli/skillet/pkg/presenter"
	"github.com/skillet-cli/skillet/pkg/telemetry"
	"github.com/skillet-cli/skillet/pkg/validator"
)

// ValidateConfig holds configuration for the validate command
type ValidateConfig struct {
	Format   string
	Watch    bool
	Debounce int
}

// NewValidateConfig creates a new ValidateConfig with default values
func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{
		Format:   "text",
		Watch:    false,
		Debounce: 500,
	}
}

// Validate validates the ValidateConfig and returns an error if invalid
func (c *ValidateConfig) Validate() error {
	if c.Format != "text" && c.Format != "json" {
		return errors.Errorf("invalid format: %s, must be one of: text, json", c.Format)
	}
	if c.Debounce < 0 {
		return errors.Errorf("debounce time cannot be negative: %d", c.Debounce)
	}
	return nil
}

var validateCmd = &cobra.Command{
	Use:   "validate <skill-directory>",
	Short: "Validate a skill directory",
	Long: `Validate a skill directory against the SKILL.md authoring rules.

Errors make the skill invalid and fail validation; warnings are advisory
and never affect the exit code. The command exits non-zero when the report
contains errors.

Examples:
  skillet validate ./my-skill
  skillet validate ./my-skill --format json
  skillet validate ./my-skill --watch`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := getValidateConfigFromFlags(cmd)

		if err := config.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(1)
		}

		engine := validator.NewEngine()

		if config.Watch {
			runValidateWatch(ctx, engine, args[0], config)
			return
		}

		report, err := runValidation(ctx, engine, args[0], config)
		if err != nil {
			presenter.Error(err, "Validation could not run")
			os.Exit(1)
		}
		if !report.Passed() {
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewValidateConfig()
	validateCmd.Flags().StringP("format", "f", defaults.Format, "Output format (text, json)")
	validateCmd.Flags().BoolP("watch", "w", defaults.Watch, "Re-validate whenever the skill directory changes")
	validateCmd.Flags().Int("debounce", defaults.Debounce, "Debounce time in milliseconds for file change events")

	rootCmd.AddCommand(withTracing(validateCmd))
}

// getValidateConfigFromFlags extracts validate configuration from command flags
func getValidateConfigFromFlags(cmd *cobra.Command) *ValidateConfig {
	config := NewValidateConfig()

	if format, err := cmd.Flags().GetString("format"); err == nil {
		config.Format = format
	}
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		config.Watch = watch
	}
	if debounce, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.Debounce = debounce
	}

	return config
}

// runValidation validates one skill directory and renders the report in
// the configured format.
func runValidation(ctx context.Context, engine *validator.Engine, dir string, config *ValidateConfig) (*validator.Report, error) {
	var report *validator.Report
	err := telemetry.WithSpan(ctx, "validate.run", func(ctx context.Context) error {
		var err error
		report, err = engine.ValidateDir(ctx, dir)
		return err
	}, attribute.String("skill.dir", dir))
	if err != nil {
		return nil, err
	}

	if config.Format == "json" {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal report")
		}
		fmt.Println(string(out))
		return report, nil
	}

	printReport(dir, report)
	return report, nil
}

// printReport renders a report: errors first, then warnings, then a single
// verdict line.
func printReport(dir string, report *validator.Report) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	presenter.Info(fmt.Sprintf("Validating skill: %s", filepath.Base(abs)))
	presenter.Info(fmt.Sprintf("Location: %s", abs))
	presenter.Separator()

	errs := report.Errors()
	warnings := report.Warnings()

	for _, issue := range errs {
		presenter.Error(errors.New(issue.Message), issue.Code)
	}
	for _, issue := range warnings {
		presenter.Warning(fmt.Sprintf("[%s] %s", issue.Code, issue.Message))
	}
	if len(report.Issues) > 0 {
		presenter.Separator()
	}

	switch {
	case !report.Passed():
		presenter.Error(errors.Errorf("%d error(s), %d warning(s)", len(errs), len(warnings)), "VALIDATION FAILED")
	case len(warnings) > 0:
		presenter.Success("VALIDATION PASSED (with warnings)")
	default:
		presenter.Success("VALIDATION PASSED")
	}
}

// runValidateWatch validates once, then keeps re-validating whenever the
// skill directory changes, until interrupted.
func runValidateWatch(ctx context.Context, engine *validator.Engine, dir string, config *ValidateConfig) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		presenter.Warning("Shutting down...")
		cancel()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		presenter.Error(err, "Failed to create file watcher")
		os.Exit(1)
	}
	defer watcher.Close()

	if err := watchTree(watcher, dir); err != nil {
		presenter.Error(err, "Failed to watch skill directory")
		os.Exit(1)
	}

	if _, err := runValidation(ctx, engine, dir, config); err != nil {
		presenter.Error(err, "Validation could not run")
	}
	presenter.Info("Watching for changes... Press Ctrl+C to stop")

	debounce := time.Duration(config.Debounce) * time.Millisecond
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.G(ctx).WithField("file", event.Name).Debug("change detected")

			// New subdirectories need their own watch registration.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					watcher.Add(event.Name)
				}
			}
			timerC = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			presenter.Error(err, "File watcher error")
		case <-timerC:
			timerC = nil
			if _, err := runValidation(ctx, engine, dir, config); err != nil {
				presenter.Error(err, "Validation could not run")
			}
			presenter.Info("Watching for changes... Press Ctrl+C to stop")
		case <-ctx.Done():
			return
		}
	}
}

// watchTree registers dir and every subdirectory with the watcher.
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if info.Name() == ".git" || info.Name() == "node_modules" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
