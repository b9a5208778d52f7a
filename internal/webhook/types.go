package webhook

import (
	"time"

	pkgResponse "ado-issue-sync/pkg/response"
)

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret           string        // Shared secret for signature verification
	AllowedIPs       []string      // IP whitelist (optional)
	DeliveryCacheTTL time.Duration // How long a delivery id is remembered
	DeliveryCacheMax int           // Max delivery ids remembered
}

// Response bodies returned by the webhook endpoint.
type syncResponse struct {
	DeliveryID string `json:"delivery_id"`
	Status     string `json:"status"`
	Outcome    string `json:"outcome,omitempty"`
	Reason     string `json:"reason,omitempty"`
	WorkItemID int    `json:"work_item_id,omitempty"`
	LinkBack   string `json:"link_back,omitempty"`

	ProcessedAt *pkgResponse.DateTime `json:"processed_at,omitempty"`
}

func processedNow() *pkgResponse.DateTime {
	now := pkgResponse.DateTime(time.Now())
	return &now
}
