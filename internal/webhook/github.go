package webhook

import (
	"encoding/json"
	"fmt"
	"strings"

	"ado-issue-sync/internal/model"
)

// GitHubWebhookParser turns GitHub issue payloads into issue events.
type GitHubWebhookParser struct {
	// override replaces the payload's issue number when set.
	override *int
}

func NewGitHubParser(override *int) *GitHubWebhookParser {
	return &GitHubWebhookParser{override: override}
}

type githubUser struct {
	Login string `json:"login"`
}

type githubIssuePayload struct {
	Action string `json:"action"`
	Issue  *struct {
		HTMLURL  string      `json:"html_url"`
		Number   *int        `json:"number"`
		Title    string      `json:"title"`
		State    string      `json:"state"`
		User     *githubUser `json:"user"`
		Body     *string     `json:"body"`
		ClosedAt *string     `json:"closed_at"`
	} `json:"issue"`
	Repository *struct {
		FullName string      `json:"full_name"`
		Name     string      `json:"name"`
		HTMLURL  string      `json:"html_url"`
		Owner    *githubUser `json:"owner"`
	} `json:"repository"`
	Sender *githubUser `json:"sender"`
	Label  *struct {
		Name string `json:"name"`
	} `json:"label"`
	Comment *struct {
		Body    *string `json:"body"`
		HTMLURL string  `json:"html_url"`
	} `json:"comment"`
}

// ParseIssueEvent parses an "issues" or "issue_comment" payload. Missing
// objects leave their fields at "" and the issue number at NoIssueNumber.
func (p *GitHubWebhookParser) ParseIssueEvent(payload []byte, cfg model.SyncConfig) (model.IssueEvent, error) {
	var raw githubIssuePayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return model.IssueEvent{}, fmt.Errorf("failed to parse issue event: %w", err)
	}

	ev := model.IssueEvent{
		Action: model.Action(raw.Action),
		Number: model.NoIssueNumber,
		Config: cfg,
	}

	if is := raw.Issue; is != nil {
		ev.URL = is.HTMLURL
		ev.Title = is.Title
		ev.State = is.State
		if is.Number != nil {
			ev.Number = *is.Number
		}
		if is.User != nil {
			ev.User = is.User.Login
		}
		if is.Body != nil {
			ev.Body = *is.Body
		}
		if is.ClosedAt != nil {
			ev.ClosedAt = *is.ClosedAt
		}
	}

	if repo := raw.Repository; repo != nil {
		ev.RepoFullName = repo.FullName
		ev.RepoName = repo.Name
		ev.RepoURL = repo.HTMLURL
		if repo.Owner != nil {
			ev.Owner = repo.Owner.Login
		}
	}

	// full_name is "org/repo"
	if ev.RepoFullName != "" {
		org, name, _ := strings.Cut(ev.RepoFullName, "/")
		ev.Organization = org
		ev.Repository = name
	}

	if raw.Sender != nil {
		ev.Sender = raw.Sender.Login
	}
	if raw.Label != nil {
		ev.Label = raw.Label.Name
	}
	if c := raw.Comment; c != nil {
		ev.CommentURL = c.HTMLURL
		if c.Body != nil {
			ev.CommentText = *c.Body
		}
	}

	if p.override != nil {
		ev.Number = *p.override
	}

	return ev, nil
}
