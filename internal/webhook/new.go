package webhook

import (
	"ado-issue-sync/internal/mirror"
	"ado-issue-sync/internal/model"
	pkgLog "ado-issue-sync/pkg/log"
)

type Handler struct {
	mirrorUC     mirror.UseCase
	syncConfig   model.SyncConfig
	security     *SecurityValidator
	githubParser *GitHubWebhookParser
	l            pkgLog.Logger
}

func NewHandler(
	mirrorUC mirror.UseCase,
	syncConfig model.SyncConfig,
	issueOverride *int,
	securityConfig SecurityConfig,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		mirrorUC:     mirrorUC,
		syncConfig:   syncConfig,
		security:     NewSecurityValidator(securityConfig),
		githubParser: NewGitHubParser(issueOverride),
		l:            l,
	}
}
