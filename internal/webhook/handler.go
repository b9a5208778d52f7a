package webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ado-issue-sync/internal/mirror"
	pkgLog "ado-issue-sync/pkg/log"
	pkgResponse "ado-issue-sync/pkg/response"
)

// GitHub event names handled by the mirror.
const (
	EventIssues       = "issues"
	EventIssueComment = "issue_comment"
	EventPing         = "ping"
)

// HandleGitHubWebhook mirrors one GitHub issue delivery into Azure Boards.
// The delivery is processed synchronously so the response reflects the outcome.
// @Summary GitHub issue webhook
// @Description Mirrors an issues or issue_comment delivery into Azure Boards
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-GitHub-Event header string true "GitHub event name"
// @Param X-GitHub-Delivery header string false "GitHub delivery id"
// @Param X-Hub-Signature-256 header string true "HMAC-SHA256 signature"
// @Success 200 {object} response.Resp "Delivery processed or ignored"
// @Failure 400 {object} response.Resp "Malformed payload"
// @Failure 401 {object} response.Resp "Invalid signature"
// @Failure 502 {object} response.Resp "Tracker call failed"
// @Router /webhook/github [post]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	deliveryID := c.GetHeader("X-GitHub-Delivery")
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	ctx := pkgLog.WithRunID(c.Request.Context(), deliveryID)

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "Rejected webhook: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	signature := c.GetHeader("X-Hub-Signature-256")
	if err := h.security.ValidateGitHubSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "GitHub signature verification failed: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	eventType := c.GetHeader("X-GitHub-Event")
	switch eventType {
	case EventIssues, EventIssueComment:
	case EventPing:
		pkgResponse.OK(c, syncResponse{DeliveryID: deliveryID, Status: "pong"})
		return
	default:
		h.l.Infof(ctx, "Unsupported GitHub event type: %s", eventType)
		pkgResponse.OK(c, syncResponse{DeliveryID: deliveryID, Status: "ignored", Reason: "unsupported event type"})
		return
	}

	if h.security.MarkDelivery(c.GetHeader("X-GitHub-Delivery")) {
		h.l.Infof(ctx, "Delivery %s already processed", deliveryID)
		pkgResponse.OK(c, syncResponse{DeliveryID: deliveryID, Status: "duplicate"})
		return
	}

	event, err := h.githubParser.ParseIssueEvent(body, h.syncConfig)
	if err != nil {
		h.l.Errorf(ctx, "Failed to parse GitHub event: %v", err)
		h.security.ForgetDelivery(deliveryID)
		pkgResponse.Error(c, err, nil)
		return
	}

	output, err := h.mirrorUC.Sync(ctx, mirror.SyncInput{Event: event})
	if err != nil {
		h.l.Errorf(ctx, "Webhook processing failed: %v", err)
		h.security.ForgetDelivery(deliveryID)
		pkgResponse.ErrorWithStatus(c, syncErrorStatus(err), err, syncResponse{
			DeliveryID:  deliveryID,
			Status:      "failed",
			ProcessedAt: processedNow(),
		})
		return
	}

	resp := syncResponse{
		DeliveryID: deliveryID,
		Status:     "processed",
		Outcome:    string(output.Outcome),
		Reason:     string(output.Reason),
		WorkItemID: output.WorkItemID,
		LinkBack:   string(output.LinkBack.Status),

		ProcessedAt: processedNow(),
	}
	if output.LinkBackErr != nil {
		resp.LinkBack = "failed"
	}

	h.l.Infof(ctx, "Webhook processed: %s (work item %d)", output.Outcome, output.WorkItemID)
	pkgResponse.OK(c, resp)
}

func syncErrorStatus(err error) int {
	switch {
	case errors.Is(err, mirror.ErrConfiguration):
		return http.StatusInternalServerError
	case errors.Is(err, mirror.ErrSearch), errors.Is(err, mirror.ErrMutation):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
