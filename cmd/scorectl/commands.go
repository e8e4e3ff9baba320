package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/app"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/config"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/models"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/monitoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/resilience"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/types"
)

type cliOptions struct {
	file     string
	modelDir string
	detailed bool
	format   string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "scorectl",
		Short:         "Run FlowDesk scoring on JSON request files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "-", "request JSON file, - for stdin")
	root.PersistentFlags().StringVar(&opts.modelDir, "model-dir", "", "model artifact directory (overrides MODEL_DIR)")

	riskCmd := &cobra.Command{
		Use:   "risk",
		Short: "Predict completion risk for a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRiskCommand(cmd, opts)
		},
	}

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank developers for a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommendCommand(cmd, opts)
		},
	}
	recommendCmd.Flags().BoolVar(&opts.detailed, "detailed", false, "print percentages, confidence and reasoning")

	summarizeCmd := &cobra.Command{
		Use:   "summarize",
		Short: "Write a narrative for a completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummarizeCommand(cmd, opts)
		},
	}

	suggestCmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a checklist and complexity for a new task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuggestCommand(cmd, opts)
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage model artifacts",
	}
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in model artifacts to the model directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExportCommand(cmd, opts)
		},
	}
	exportCmd.Flags().StringVar(&opts.format, "format", "yaml", "artifact format: yaml or json")
	modelsCmd.AddCommand(exportCmd)

	root.AddCommand(riskCmd, recommendCmd, summarizeCmd, suggestCmd, modelsCmd)
	return root
}

func runRiskCommand(cmd *cobra.Command, opts *cliOptions) error {
	services, err := loadServices(cmd, opts)
	if err != nil {
		return err
	}
	body, err := readInput(cmd, opts.file)
	if err != nil {
		return err
	}
	features, err := scoring.ParseTaskFeatures(body)
	if err != nil {
		return err
	}
	assessment, err := services.AssessRisk(cmd.Context(), features)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), types.ToRiskResponse(assessment))
}

func runRecommendCommand(cmd *cobra.Command, opts *cliOptions) error {
	services, err := loadServices(cmd, opts)
	if err != nil {
		return err
	}
	body, err := readInput(cmd, opts.file)
	if err != nil {
		return err
	}
	task, developers, err := scoring.ParseAssigneeRequest(body)
	if err != nil {
		return err
	}
	recs, err := services.RecommendAssignees(cmd.Context(), task, developers)
	if err != nil {
		return err
	}
	if opts.detailed {
		return printJSON(cmd.OutOrStdout(), recs)
	}
	return printJSON(cmd.OutOrStdout(), types.ToAssigneeScores(recs))
}

func runSummarizeCommand(cmd *cobra.Command, opts *cliOptions) error {
	body, err := readInput(cmd, opts.file)
	if err != nil {
		return err
	}
	in, err := scoring.ParseSummaryInput(body)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), scoring.Narrative(in))
	return err
}

func runSuggestCommand(cmd *cobra.Command, opts *cliOptions) error {
	body, err := readInput(cmd, opts.file)
	if err != nil {
		return err
	}
	title, description, taskType, err := scoring.ParseSuggestionRequest(body)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), scoring.SuggestTask(title, description, taskType))
}

func runExportCommand(cmd *cobra.Command, opts *cliOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	paths, err := models.NewArtifactStore(cfg.Models.Dir).Bootstrap(opts.format)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func loadConfig(opts *cliOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.modelDir != "" {
		cfg.Models.Dir = opts.modelDir
	}
	return cfg, nil
}

func loadServices(cmd *cobra.Command, opts *cliOptions) (*scoring.Services, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	logger := monitoring.NewLoggerTo(cmd.ErrOrStderr(), cfg.LogLevel)
	loaded, err := app.LoadScoring(cfg, monitoring.NewMetrics(), logger, resilience.NewCircuitBreakerRegistry())
	if err != nil {
		return nil, err
	}
	return loaded.Services, nil
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(file)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
