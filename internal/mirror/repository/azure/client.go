package azure

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ado-issue-sync/internal/mirror/repository"
	"ado-issue-sync/internal/model"
)

const (
	// APIVersion is the Azure DevOps REST API version sent with every call.
	APIVersion = "7.0"

	contentTypeJSON      = "application/json"
	contentTypeJSONPatch = "application/json-patch+json"
)

// Client is the HTTP wrapper for the Azure Boards work item tracking API.
type Client struct {
	baseURL    string
	pat        string
	httpClient *http.Client
}

// NewClient creates a new Azure DevOps client for an organization URL
// such as https://dev.azure.com/contoso.
func NewClient(orgURL, pat string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(orgURL, "/"),
		pat:        pat,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithHTTPClient returns a copy of the client using httpClient.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	cp := *c
	cp.httpClient = httpClient
	return &cp
}

// APIError is a non-2xx response from Azure DevOps.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("azure devops API error %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps well-known statuses onto repository sentinels.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return repository.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return repository.ErrUnauthorized
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any, contentType string) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", APIVersion)
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Basic auth with an empty user name and the PAT as password.
	auth := base64.StdEncoding.EncodeToString([]byte(":" + c.pat))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// QueryByWIQL runs a flat WIQL query scoped to project.
func (c *Client) QueryByWIQL(ctx context.Context, project, wiql string) (*WIQLQueryResponse, error) {
	path := fmt.Sprintf("/%s/_apis/wit/wiql", url.PathEscape(project))

	respBody, err := c.doRequest(ctx, http.MethodPost, path, nil, WIQLQueryRequest{Query: wiql}, contentTypeJSON)
	if err != nil {
		return nil, fmt.Errorf("WIQL query failed: %w", err)
	}

	var queryResp WIQLQueryResponse
	if err := json.Unmarshal(respBody, &queryResp); err != nil {
		return nil, fmt.Errorf("failed to parse WIQL response: %w", err)
	}
	return &queryResp, nil
}

// GetWorkItem fetches one work item. expand is the $expand value ("all" for
// fields plus relations).
func (c *Client) GetWorkItem(ctx context.Context, project string, id int, expand string) (*model.WorkItem, error) {
	path := fmt.Sprintf("/%s/_apis/wit/workitems/%d", url.PathEscape(project), id)
	query := url.Values{}
	if expand != "" {
		query.Set("$expand", expand)
	}

	respBody, err := c.doRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get work item %d: %w", id, err)
	}

	var wi model.WorkItem
	if err := json.Unmarshal(respBody, &wi); err != nil {
		return nil, fmt.Errorf("failed to parse work item: %w", err)
	}
	return &wi, nil
}

// CreateWorkItem creates a work item of workItemType from a patch document.
func (c *Client) CreateWorkItem(ctx context.Context, project, workItemType string, doc model.PatchDocument, validateOnly, bypassRules bool) (*model.WorkItem, error) {
	// the type segment is "$" followed by the escaped type name
	path := fmt.Sprintf("/%s/_apis/wit/workitems/$%s", url.PathEscape(project), url.PathEscape(workItemType))

	respBody, err := c.doRequest(ctx, http.MethodPost, path, mutationQuery(validateOnly, bypassRules), doc, contentTypeJSONPatch)
	if err != nil {
		return nil, fmt.Errorf("failed to create work item: %w", err)
	}

	return decodeMutation(respBody)
}

// UpdateWorkItem applies a patch document to an existing work item.
func (c *Client) UpdateWorkItem(ctx context.Context, project string, id int, doc model.PatchDocument, validateOnly, bypassRules bool) (*model.WorkItem, error) {
	path := fmt.Sprintf("/%s/_apis/wit/workitems/%d", url.PathEscape(project), id)

	respBody, err := c.doRequest(ctx, http.MethodPatch, path, mutationQuery(validateOnly, bypassRules), doc, contentTypeJSONPatch)
	if err != nil {
		return nil, fmt.Errorf("failed to update work item %d: %w", id, err)
	}

	return decodeMutation(respBody)
}

func mutationQuery(validateOnly, bypassRules bool) url.Values {
	q := url.Values{}
	q.Set("validateOnly", strconv.FormatBool(validateOnly))
	q.Set("bypassRules", strconv.FormatBool(bypassRules))
	return q
}

// decodeMutation returns nil without error for an empty or null body.
func decodeMutation(respBody []byte) (*model.WorkItem, error) {
	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var wi model.WorkItem
	if err := json.Unmarshal(trimmed, &wi); err != nil {
		return nil, fmt.Errorf("failed to parse work item response: %w", err)
	}
	return &wi, nil
}

// BuildWorkItemURL returns the web URL for a work item.
func (c *Client) BuildWorkItemURL(project string, id int) string {
	return fmt.Sprintf("%s/%s/_workitems/edit/%d", c.baseURL, url.PathEscape(project), id)
}
