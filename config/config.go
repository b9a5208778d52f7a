package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ado-issue-sync/internal/model"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Trackers
	AzureDevOps AzureDevOpsConfig
	GitHub      GitHubConfig

	// IssueNumberOverride replaces the issue number from the payload when set.
	IssueNumberOverride *int

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// AzureDevOpsConfig is the target tracker configuration.
type AzureDevOpsConfig struct {
	Organization  string
	Token         string
	Project       string
	AreaPath      string
	IterationPath string
	WorkItemType  string
	ClosedState   string
	ActiveState   string
	NewState      string
	BypassRules   bool
}

// OrgURL returns the organization base URL, or "" when no organization is set.
func (c AzureDevOpsConfig) OrgURL() string {
	if c.Organization == "" {
		return ""
	}
	if strings.HasPrefix(c.Organization, "http") {
		return strings.TrimSuffix(c.Organization, "/")
	}
	return "https://dev.azure.com/" + c.Organization
}

// SyncConfig returns the per-run configuration handed to the mirror engine.
func (c Config) SyncConfig() model.SyncConfig {
	return model.SyncConfig{
		Organization:  c.AzureDevOps.Organization,
		OrgURL:        c.AzureDevOps.OrgURL(),
		AzureToken:    c.AzureDevOps.Token,
		GitHubToken:   c.GitHub.Token,
		Project:       c.AzureDevOps.Project,
		AreaPath:      c.AzureDevOps.AreaPath,
		IterationPath: c.AzureDevOps.IterationPath,
		WorkItemType:  c.AzureDevOps.WorkItemType,
		ClosedState:   c.AzureDevOps.ClosedState,
		ActiveState:   c.AzureDevOps.ActiveState,
		NewState:      c.AzureDevOps.NewState,
		BypassRules:   c.AzureDevOps.BypassRules,
	}
}

// GitHubConfig is the source tracker configuration.
type GitHubConfig struct {
	Token  string
	APIURL string
}

type WebhookConfig struct {
	Enabled          bool
	Secret           string
	AllowedIPs       []string
	DeliveryCacheTTL time.Duration
	DeliveryCacheMax int
}

// envBindings maps config keys to the environment variables that can set them.
// The lowercase names are the ones used by existing workflow files.
var envBindings = map[string][]string{
	"ado.organization":   {"ADO_ORGANIZATION", "ado_organization"},
	"ado.token":          {"ADO_TOKEN", "ado_token"},
	"ado.project":        {"ADO_PROJECT", "ado_project"},
	"ado.area_path":      {"ADO_AREA_PATH", "ado_area_path"},
	"ado.iteration_path": {"ADO_ITERATION_PATH", "ado_iteration_path"},
	"ado.wit":            {"ADO_WIT", "ado_wit"},
	"ado.close_state":    {"ADO_CLOSE_STATE", "ado_close_state"},
	"ado.active_state":   {"ADO_ACTIVE_STATE", "ado_active_state"},
	"ado.new_state":      {"ADO_NEW_STATE", "ado_new_state"},
	"ado.bypass_rules":   {"ADO_BYPASSRULES", "ado_bypassrules"},
	"github.token":       {"GITHUB_TOKEN", "github_token"},
	"github.api_url":     {"GITHUB_API_URL"},
	"issue_id":           {"ISSUE_ID", "issue_id"},
	"webhook.secret":     {"WEBHOOK_SECRET", "webhook_secret"},
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/ado-issue-sync/
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/ado-issue-sync/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Azure DevOps
	cfg.AzureDevOps.Organization = strings.TrimSpace(v.GetString("ado.organization"))
	cfg.AzureDevOps.Token = v.GetString("ado.token")
	cfg.AzureDevOps.Project = v.GetString("ado.project")
	cfg.AzureDevOps.AreaPath = v.GetString("ado.area_path")
	cfg.AzureDevOps.IterationPath = v.GetString("ado.iteration_path")
	cfg.AzureDevOps.WorkItemType = v.GetString("ado.wit")
	cfg.AzureDevOps.ClosedState = v.GetString("ado.close_state")
	cfg.AzureDevOps.ActiveState = v.GetString("ado.active_state")
	cfg.AzureDevOps.NewState = v.GetString("ado.new_state")
	cfg.AzureDevOps.BypassRules = v.GetBool("ado.bypass_rules")

	// GitHub
	cfg.GitHub.Token = v.GetString("github.token")
	cfg.GitHub.APIURL = strings.TrimRight(v.GetString("github.api_url"), "/")

	if raw := strings.TrimSpace(v.GetString("issue_id")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("issue_id %q is not a number: %w", raw, err)
		}
		cfg.IssueNumberOverride = &n
	}

	// Webhooks
	cfg.Webhook.Enabled = v.GetBool("webhook.enabled")
	cfg.Webhook.Secret = v.GetString("webhook.secret")
	cfg.Webhook.AllowedIPs = v.GetStringSlice("webhook.allowed_ips")
	cfg.Webhook.DeliveryCacheTTL = v.GetDuration("webhook.delivery_cache_ttl")
	cfg.Webhook.DeliveryCacheMax = v.GetInt("webhook.delivery_cache_max")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("ado.wit", "Issue")
	v.SetDefault("ado.close_state", "Closed")
	v.SetDefault("ado.active_state", "Active")
	v.SetDefault("ado.new_state", "New")
	v.SetDefault("ado.bypass_rules", false)

	v.SetDefault("github.api_url", "https://api.github.com")

	v.SetDefault("webhook.enabled", true)
	v.SetDefault("webhook.delivery_cache_ttl", "10m")
	v.SetDefault("webhook.delivery_cache_max", 1000)
}
