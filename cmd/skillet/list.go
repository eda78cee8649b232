package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-cli/skillet/pkg/presenter"
	"github.com/skillet-cli/skillet/pkg/skill"
)

// ListConfig holds configuration for the list command
type ListConfig struct {
	Recursive bool
	Filter    string
	Format    string
}

// NewListConfig creates a new ListConfig with default values
func NewListConfig() *ListConfig {
	return &ListConfig{
		Recursive: false,
		Filter:    "",
		Format:    "text",
	}
}

// Validate validates the ListConfig and returns an error if invalid
func (c *ListConfig) Validate() error {
	if c.Format != "text" && c.Format != "json" {
		return errors.Errorf("invalid format: %s, must be one of: text, json", c.Format)
	}
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list [directory...]",
	Short: "List skills under one or more directories",
	Long: `List the skills found under the given directories, or the current
directory when none are given. Each immediate subdirectory with a
parseable SKILL.md counts as a skill; use --recursive to search whole
trees.

Examples:
  skillet list
  skillet list ./skills --recursive
  skillet list --filter 'data-*'
  skillet list --format json`,
	Run: func(cmd *cobra.Command, args []string) {
		config := getListConfigFromFlags(cmd)
		if err := config.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(1)
		}

		discovery, err := skill.NewDiscovery(
			skill.WithDirs(args...),
			skill.WithRecursive(config.Recursive),
			skill.WithNameFilter(config.Filter),
		)
		if err != nil {
			presenter.Error(err, "Failed to initialize skill discovery")
			os.Exit(1)
		}

		skills, err := discovery.Discover()
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}

		if config.Format == "json" {
			printSkillsJSON(skills)
			return
		}

		if len(skills) == 0 {
			presenter.Info("No skills found")
			return
		}

		names := make([]string, 0, len(skills))
		for name := range skills {
			names = append(names, name)
		}
		sort.Strings(names)

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t---------\t-----------")

		for _, name := range names {
			s := skills[name]
			description := s.Description
			if len(description) > 60 {
				description = description[:57] + "..."
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.Dir, description)
		}
		tw.Flush()
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().BoolP("recursive", "r", defaults.Recursive, "Search whole directory trees instead of immediate subdirectories")
	listCmd.Flags().String("filter", defaults.Filter, "Only list skills whose name matches this glob pattern")
	listCmd.Flags().StringP("format", "f", defaults.Format, "Output format (text, json)")

	rootCmd.AddCommand(withTracing(listCmd))
}

// getListConfigFromFlags extracts list configuration from command flags
func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()

	if recursive, err := cmd.Flags().GetBool("recursive"); err == nil {
		config.Recursive = recursive
	}
	if filter, err := cmd.Flags().GetString("filter"); err == nil {
		config.Filter = filter
	}
	if format, err := cmd.Flags().GetString("format"); err == nil {
		config.Format = format
	}

	return config
}

type skillRow struct {
	Name        string `json:"name"`
	Directory   string `json:"directory"`
	Description string `json:"description"`
	License     string `json:"license,omitempty"`
}

func printSkillsJSON(skills map[string]*skill.Skill) {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]skillRow, 0, len(names))
	for _, name := range names {
		s := skills[name]
		rows = append(rows, skillRow{
			Name:        s.Name,
			Directory:   s.Dir,
			Description: s.Description,
			License:     s.License,
		})
	}

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		presenter.Error(err, "Failed to marshal skills")
		os.Exit(1)
	}
	fmt.Println(string(out))
}
