package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ado-issue-sync/config"
	"ado-issue-sync/internal/mirror"
	azureRepo "ado-issue-sync/internal/mirror/repository/azure"
	githubRepo "ado-issue-sync/internal/mirror/repository/github"
	"ado-issue-sync/internal/webhook"
	"ado-issue-sync/pkg/log"
)

type options struct {
	eventPath  string
	outputPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "ado-issue-sync",
		Short: "Mirror one GitHub issue event into Azure Boards",
		Long: `Reads a GitHub "issues" or "issue_comment" event payload, creates or
updates the linked Azure Boards work item, and writes the work item id
as "id=<n>" to the step output file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.eventPath, "event", os.Getenv("GITHUB_EVENT_PATH"), "path to the event payload (defaults to $GITHUB_EVENT_PATH)")
	cmd.Flags().StringVar(&opts.outputPath, "output", os.Getenv("GITHUB_OUTPUT"), "step output file (defaults to $GITHUB_OUTPUT, stdout when empty)")

	return cmd
}

func run(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		return err
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	ctx = log.WithRunID(ctx, uuid.NewString())

	// 3. Event
	if opts.eventPath == "" {
		err := errors.New("no event payload: set GITHUB_EVENT_PATH or --event")
		logger.Error(ctx, err)
		return err
	}
	payload, err := os.ReadFile(opts.eventPath)
	if err != nil {
		logger.Errorf(ctx, "Failed to read event payload: %v", err)
		return err
	}

	event, err := webhook.NewGitHubParser(cfg.IssueNumberOverride).ParseIssueEvent(payload, cfg.SyncConfig())
	if err != nil {
		logger.Errorf(ctx, "Failed to parse event payload: %v", err)
		return err
	}

	// 4. Mirror
	azureClient := azureRepo.NewClient(cfg.AzureDevOps.OrgURL(), cfg.AzureDevOps.Token)
	output, err := newMirror(ctx, cfg, azureClient, logger).Sync(ctx, mirror.SyncInput{Event: event})
	if output.HasWorkItem() {
		logger.Infof(ctx, "Work item: %s", azureClient.BuildWorkItemURL(cfg.AzureDevOps.Project, output.WorkItemID))
		if werr := writeOutput(opts.outputPath, output.WorkItemID); werr != nil {
			logger.Errorf(ctx, "Failed to write step output: %v", werr)
			if err == nil {
				err = werr
			}
		}
	}
	if err != nil {
		logger.Errorf(ctx, "Sync failed: %v", err)
		return err
	}

	logger.Infof(ctx, "Sync finished: %s", output.Outcome)
	return nil
}

func newMirror(ctx context.Context, cfg *config.Config, azureClient *azureRepo.Client, logger log.Logger) mirror.UseCase {
	workItems := azureRepo.New(azureClient, logger)

	if cfg.GitHub.Token == "" {
		logger.Warn(ctx, "GITHUB_TOKEN is not set, work items will not be linked back to issues")
		return mirror.New(workItems, nil, logger)
	}

	githubClient := githubRepo.NewClient(ctx, cfg.GitHub.APIURL, cfg.GitHub.Token)
	return mirror.New(workItems, githubRepo.New(githubClient, logger), logger)
}
