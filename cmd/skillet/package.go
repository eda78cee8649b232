package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-cli/skillet/pkg/packager"
	"github.com/skillet-cli/skillet/pkg/presenter"
	"github.com/skillet-cli/skillet/pkg/telemetry"
	"github.com/skillet-cli/skillet/pkg/validator"
)

// PackageConfig holds configuration for the package command
type PackageConfig struct {
	Output string
	Force  bool
}

// NewPackageConfig creates a new PackageConfig with default values
func NewPackageConfig() *PackageConfig {
	return &PackageConfig{
		Output: "",
		Force:  false,
	}
}

var packageCmd = &cobra.Command{
	Use:   "package <skill-directory>",
	Short: "Package a skill directory into a distributable zip archive",
	Long: `Package a skill directory into a zip archive for distribution.

The skill is validated first and packaging is refused when validation
reports errors; pass --force to package anyway. The archive contains the
skill directory as its top-level entry, so unzipping it recreates the
skill in place.

Examples:
  skillet package ./my-skill
  skillet package ./my-skill --output dist/my-skill.zip
  skillet package ./my-skill --force`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := getPackageConfigFromFlags(cmd)
		dir := args[0]

		engine := validator.NewEngine()
		report, err := runValidation(ctx, engine, dir, NewValidateConfig())
		if err != nil {
			presenter.Error(err, "Validation failed")
			os.Exit(1)
		}
		if !report.Passed() && !config.Force {
			presenter.Error(errors.New("skill has validation errors"), "Refusing to package (use --force to override)")
			os.Exit(1)
		}

		output := config.Output
		if output == "" {
			output, err = packager.DefaultOutput(dir)
			if err != nil {
				presenter.Error(err, "Failed to determine archive path")
				os.Exit(1)
			}
		}

		err = telemetry.WithSpan(ctx, "package.run", func(ctx context.Context) error {
			return packager.Create(dir, output)
		},
			attribute.String("skill.dir", dir),
			attribute.String("archive.path", output),
		)
		if err != nil {
			presenter.Error(err, "Failed to package skill")
			os.Exit(1)
		}

		abs, absErr := filepath.Abs(output)
		if absErr != nil {
			abs = output
		}
		presenter.Success(fmt.Sprintf("Packaged skill into %s", abs))
	},
}

func init() {
	defaults := NewPackageConfig()
	packageCmd.Flags().StringP("output", "o", defaults.Output, "Path of the zip archive to write (default <skill-name>.zip)")
	packageCmd.Flags().Bool("force", defaults.Force, "Package even when validation reports errors")

	rootCmd.AddCommand(withTracing(packageCmd))
}

// getPackageConfigFromFlags extracts package configuration from command flags
func getPackageConfigFromFlags(cmd *cobra.Command) *PackageConfig {
	config := NewPackageConfig()

	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	if force, err := cmd.Flags().GetBool("force"); err == nil {
		config.Force = force
	}

	return config
}
