package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillet-cli/skillet/pkg/presenter"
	"github.com/skillet-cli/skillet/pkg/scaffold"
)

// InitConfig holds configuration for the init command
type InitConfig struct {
	Target  string
	License string
	DryRun  bool
}

// NewInitConfig creates a new InitConfig with default values
func NewInitConfig() *InitConfig {
	return &InitConfig{
		Target:  ".",
		License: scaffold.DefaultLicense,
		DryRun:  false,
	}
}

var initCmd = &cobra.Command{
	Use:   "init <skill-name> <description>",
	Short: "Create a new skill directory",
	Long: `Create a new skill directory with the conventional layout: a SKILL.md
that passes validation, a README.md, and scripts/, references/,
templates/, and examples/ subdirectories.

The skill name must be lowercase letters, numbers, and single hyphens,
and is also used as the directory name.

Examples:
  skillet init task-analyzer "Analyze and break down complex tasks"
  skillet init task-analyzer "Analyze tasks" --target ./skills
  skillet init task-analyzer "Analyze tasks" --dry-run`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config := getInitConfigFromFlags(cmd)
		name, description := args[0], args[1]

		scaffolder, err := scaffold.NewScaffolder(
			scaffold.WithParentDir(config.Target),
			scaffold.WithLicense(config.License),
			scaffold.WithDryRun(config.DryRun),
		)
		if err != nil {
			presenter.Error(err, "Failed to initialize scaffolder")
			os.Exit(1)
		}

		presenter.Info(fmt.Sprintf("Creating skill: %s", name))
		presenter.Info(fmt.Sprintf("Location: %s", filepath.Join(config.Target, name)))

		actions, err := scaffolder.Create(ctx, name, description)
		if err != nil {
			presenter.Error(err, "Failed to create skill")
			os.Exit(1)
		}

		verb := "Created"
		if config.DryRun {
			verb = "Would create"
		}
		for _, action := range actions {
			if action.Kind == scaffold.ActionDir {
				presenter.Success(fmt.Sprintf("  %s %s/", verb, action.Path))
			} else {
				presenter.Success(fmt.Sprintf("  %s %s", verb, action.Path))
			}
		}

		if config.DryRun {
			presenter.Info("Dry run: no files were written")
			return
		}

		presenter.Success(fmt.Sprintf("Skill '%s' created successfully", name))
		presenter.Info("")
		presenter.Info("Next steps:")
		presenter.Info(fmt.Sprintf("  1. cd %s", filepath.Join(config.Target, name)))
		presenter.Info("  2. Edit SKILL.md with your instructions")
		presenter.Info("  3. Add scripts, references, and templates as needed")
		presenter.Info("  4. Validate with: skillet validate .")
		presenter.Info("  5. Test with real use cases")
	},
}

func init() {
	defaults := NewInitConfig()
	initCmd.Flags().StringP("target", "t", defaults.Target, "Parent directory to create the skill under")
	initCmd.Flags().String("license", defaults.License, "License written to the skill frontmatter (empty to omit)")
	initCmd.Flags().Bool("dry-run", defaults.DryRun, "Show what would be created without writing anything")

	rootCmd.AddCommand(withTracing(initCmd))
}

// getInitConfigFromFlags extracts init configuration from command flags
func getInitConfigFromFlags(cmd *cobra.Command) *InitConfig {
	config := NewInitConfig()

	if target, err := cmd.Flags().GetString("target"); err == nil {
		config.Target = target
	}
	if license, err := cmd.Flags().GetString("license"); err == nil {
		config.License = license
	}
	if dryRun, err := cmd.Flags().GetBool("dry-run"); err == nil {
		config.DryRun = dryRun
	}

	return config
}
