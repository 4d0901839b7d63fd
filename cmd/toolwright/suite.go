package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soundmesh/toolwright"
	"github.com/soundmesh/toolwright/internal/presentation"
	"github.com/soundmesh/toolwright/pkg/domain"
	"github.com/soundmesh/toolwright/pkg/tools"
)

// SuiteConfig is the optional YAML document the suite command consumes.
type SuiteConfig struct {
	Files   []string `yaml:"files"`
	Catalog *bool    `yaml:"catalog"`
	Timeout string   `yaml:"timeout"`
	Workers int      `yaml:"workers"`
}

var suiteCmd = &cobra.Command{
	Use:   "suite [config.yaml]",
	Short: "Validate and functionally exercise the tool catalog",
	Long: `Runs the full conformance suite: static validation of every tool, then
the mock-harness battery against every built-in tool. Without a config
file the suite covers the embedded catalog only.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		passed, err := runSuite(cmd, args)
		if err != nil {
			fmt.Printf("Suite failed: %v\n", err)
			os.Exit(1)
		}
		if !passed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(suiteCmd)

	suiteCmd.Flags().Bool("markdown", false, "Emit the report as markdown")
}

func loadSuiteConfig(args []string) (SuiteConfig, error) {
	var cfg SuiteConfig
	if len(args) == 0 {
		return cfg, nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", args[0], err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", args[0], err)
	}
	return cfg, nil
}

func runSuite(cmd *cobra.Command, args []string) (bool, error) {
	cfg, err := loadSuiteConfig(args)
	if err != nil {
		return false, err
	}

	if markdown, _ := cmd.Flags().GetBool("markdown"); !markdown && presentation.IsTerminal() {
		presentation.PrintBanner(toolwright.Version)
	}

	opts := []toolwright.Option{toolwright.WithLogger(newLogger(cmd))}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return false, fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
		}
		opts = append(opts, toolwright.WithTimeout(d))
	}
	if cfg.Workers > 0 {
		opts = append(opts, toolwright.WithWorkers(cfg.Workers))
	}
	suite := toolwright.New(opts...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	withCatalog := cfg.Catalog == nil || *cfg.Catalog

	var validations []domain.ValidationReport
	var defs []domain.ToolDefinition

	if withCatalog {
		for _, src := range tools.Sources() {
			reports, err := suite.ValidateSource(src)
			if err != nil {
				return false, err
			}
			validations = append(validations, reports...)
			extracted, _ := suite.Extract(src)
			defs = append(defs, extracted...)
		}
	}
	for _, path := range cfg.Files {
		reports, err := suite.ValidateFile(path)
		if err != nil {
			return false, err
		}
		validations = append(validations, reports...)
	}

	// The harness can only run tools with a live callable, which means the
	// embedded catalog. File-based tools get static validation only.
	var tests []domain.TestReport
	for i := range defs {
		fn := tools.Lookup(defs[i].Name)
		if fn == nil {
			continue
		}
		tests = append(tests, suite.Exercise(ctx, fn, &defs[i]))
	}

	renderSuite(cmd, validations, tests)

	passed := true
	for _, r := range validations {
		if !r.OverallPassed {
			passed = false
		}
	}
	for _, r := range tests {
		if !r.OverallPassed {
			passed = false
		}
	}
	return passed, nil
}

func renderSuite(cmd *cobra.Command, validations []domain.ValidationReport, tests []domain.TestReport) {
	markdown, _ := cmd.Flags().GetBool("markdown")
	if markdown {
		md := presentation.Markdown(validations, tests)
		if presentation.IsTerminal() {
			render := presentation.NewRenderer()
			if out, err := render(md); err == nil {
				fmt.Print(out)
				return
			}
		}
		fmt.Print(md)
		return
	}

	for _, r := range validations {
		fmt.Print(presentation.Validation(r))
	}
	if len(tests) > 0 {
		fmt.Println()
		for _, r := range tests {
			fmt.Print(presentation.Test(r))
		}
	}
	fmt.Println()
	fmt.Print(presentation.Summary(validations, tests))
}
