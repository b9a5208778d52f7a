package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ado-issue-sync/config"
	_ "ado-issue-sync/docs" // Swagger docs
	"ado-issue-sync/internal/httpserver"
	"ado-issue-sync/internal/mirror"
	azureRepo "ado-issue-sync/internal/mirror/repository/azure"
	githubRepo "ado-issue-sync/internal/mirror/repository/github"
	"ado-issue-sync/internal/webhook"
	"ado-issue-sync/pkg/log"
)

// @title       ADO Issue Sync API
// @description Mirrors GitHub issue lifecycle events into Azure Boards work items.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting ADO Issue Sync...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Azure DevOps: %s / %s", cfg.AzureDevOps.OrgURL(), cfg.AzureDevOps.Project)

	// 3. Mirror
	azureClient := azureRepo.NewClient(cfg.AzureDevOps.OrgURL(), cfg.AzureDevOps.Token)
	workItems := azureRepo.New(azureClient, logger)

	var mirrorUC mirror.UseCase
	if cfg.GitHub.Token != "" {
		githubClient := githubRepo.NewClient(ctx, cfg.GitHub.APIURL, cfg.GitHub.Token)
		mirrorUC = mirror.New(workItems, githubRepo.New(githubClient, logger), logger)
	} else {
		logger.Warn(ctx, "GITHUB_TOKEN is not set, work items will not be linked back to issues")
		mirrorUC = mirror.New(workItems, nil, logger)
	}

	// 4. Webhook
	srvCfg := httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
	}
	if cfg.Webhook.Enabled {
		if cfg.Webhook.Secret == "" {
			logger.Warn(ctx, "WEBHOOK_SECRET is not set, every delivery will be rejected")
		}
		srvCfg.GitHubWebhookHandler = webhook.NewHandler(
			mirrorUC,
			cfg.SyncConfig(),
			cfg.IssueNumberOverride,
			webhook.SecurityConfig{
				Secret:           cfg.Webhook.Secret,
				AllowedIPs:       cfg.Webhook.AllowedIPs,
				DeliveryCacheTTL: cfg.Webhook.DeliveryCacheTTL,
				DeliveryCacheMax: cfg.Webhook.DeliveryCacheMax,
			},
			logger,
		)
	} else {
		logger.Warn(ctx, "Webhook disabled (webhook.enabled=false)")
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, srvCfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}
