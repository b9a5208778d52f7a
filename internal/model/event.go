package model

// Action is the lifecycle action carried by an issue event.
type Action string

const (
	ActionOpened      Action = "opened"
	ActionEdited      Action = "edited"
	ActionCreated     Action = "created" // new comment on the issue
	ActionClosed      Action = "closed"
	ActionReopened    Action = "reopened"
	ActionLabeled     Action = "labeled"
	ActionUnlabeled   Action = "unlabeled"
	ActionAssigned    Action = "assigned"
	ActionDeleted     Action = "deleted"
	ActionTransferred Action = "transferred"
)

// BotSender is the login of the Azure Boards GitHub app. Events it sends are
// echoes of our own writes and are ignored.
const BotSender = "azure-boards[bot]"

// NoIssueNumber is the issue number used when the payload carries none.
const NoIssueNumber = -1

// IssueEvent is the normalized view of one GitHub issue lifecycle event.
// Every field is populated at construction; empty strings and NoIssueNumber
// stand in for values missing from the payload.
type IssueEvent struct {
	Action Action

	// Issue
	Number   int
	Title    string
	Body     string
	URL      string
	State    string
	ClosedAt string
	User     string

	// Repository
	Owner        string
	RepoName     string
	RepoFullName string
	RepoURL      string

	// Organization and Repository are the two halves of RepoFullName.
	Organization string
	Repository   string

	Sender string

	// Label is set for labeled/unlabeled events only.
	Label string

	// CommentText and CommentURL are set for comment events only.
	CommentText string
	CommentURL  string

	Config SyncConfig
}

// FromBot reports whether the event was sent by the Azure Boards bot.
func (e IssueEvent) FromBot() bool {
	return e.Sender == BotSender
}

// SyncConfig is the immutable per-run configuration threaded through the engine.
type SyncConfig struct {
	Organization  string
	OrgURL        string
	AzureToken    string
	GitHubToken   string
	Project       string
	AreaPath      string
	IterationPath string
	WorkItemType  string
	ClosedState   string
	ActiveState   string
	NewState      string
	BypassRules   bool
}

// CanLinkBack reports whether a GitHub credential is available for write-back.
func (c SyncConfig) CanLinkBack() bool {
	return c.GitHubToken != ""
}
