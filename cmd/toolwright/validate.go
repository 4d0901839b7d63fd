package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/soundmesh/toolwright"
	"github.com/soundmesh/toolwright/internal/presentation"
	redisadapter "github.com/soundmesh/toolwright/pkg/adapters/redis"
	"github.com/soundmesh/toolwright/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check tool source files against the conformance rules",
	Long: `Extracts every marked tool from the given files and evaluates the full
rule set against each one. All rules run for every tool, so a single
invocation reports every violation at once.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		passed, err := runValidate(cmd, args)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if !passed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("markdown", false, "Emit the report as markdown")
	validateCmd.Flags().String("cache", "", "Redis address for the report cache (e.g. localhost:6379)")
}

func runValidate(cmd *cobra.Command, args []string) (bool, error) {
	logger := newLogger(cmd)
	suite := toolwright.New(toolwright.WithLogger(logger))

	cacheAddr, _ := cmd.Flags().GetString("cache")
	var cache *redisadapter.Store
	if cacheAddr != "" {
		cache = redisadapter.New(cacheAddr, "", 0)
		defer cache.Close()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var all []domain.ValidationReport
	for _, path := range args {
		reports, err := validateOne(ctx, suite, cache, logger, path)
		if err != nil {
			return false, err
		}
		all = append(all, reports...)
	}

	renderValidation(cmd, all)

	for _, r := range all {
		if !r.OverallPassed {
			return false, nil
		}
	}
	return true, nil
}

func validateOne(ctx context.Context, suite *toolwright.Suite, cache *redisadapter.Store, logger *slog.Logger, path string) ([]domain.ValidationReport, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if cache != nil {
		hash := redisadapter.Hash(string(src))
		if cached, err := cache.Load(ctx, hash); err == nil {
			return cached, nil
		}
		reports, err := suite.ValidateSource(string(src))
		if reports == nil && err != nil {
			return nil, err
		}
		if saveErr := cache.Save(ctx, hash, reports); saveErr != nil {
			logger.Warn("cache save failed", "path", path, "error", saveErr)
		}
		return reports, nil
	}

	reports, err := suite.ValidateSource(string(src))
	if reports == nil && err != nil {
		return nil, err
	}
	if err != nil {
		logger.Warn("partial extraction", "path", path, "error", err)
	}
	return reports, nil
}

func renderValidation(cmd *cobra.Command, reports []domain.ValidationReport) {
	markdown, _ := cmd.Flags().GetBool("markdown")
	if markdown {
		md := presentation.Markdown(reports, nil)
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

	for _, r := range reports {
		fmt.Print(presentation.Validation(r))
	}
	fmt.Println()
	fmt.Print(presentation.Summary(reports, nil))
}
