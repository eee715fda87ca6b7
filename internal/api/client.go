// Package api is the HTTP client for the retrieval-augmented answer service.
// All calls are JSON-in/JSON-out except ExportChat, which returns a binary
// blob. Any non-success status is surfaced as a generic backend failure; the
// service does not promise a structured error contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/citedapp/cited/internal/errors"
	"github.com/citedapp/cited/internal/logger"
)

const defaultHTTPTimeout = 30 * time.Second

// Client talks to the answer service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the answer service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// NewClientWithHTTP creates a client with a custom HTTP client (for testing).
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// postJSON issues a POST with a JSON body and decodes a JSON response into out.
// Passing a nil out discards the response body.
func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.E(apperrors.Op("api.post"), apperrors.KindNetwork, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.E(apperrors.Op("api.post"), apperrors.KindBackend,
			fmt.Sprintf("%s returned status %d", path, resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}

// del issues a DELETE request and discards the response body.
func (c *Client) del(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.E(apperrors.Op("api.delete"), apperrors.KindNetwork, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.E(apperrors.Op("api.delete"), apperrors.KindBackend,
			fmt.Sprintf("%s returned status %d", path, resp.StatusCode))
	}
	return nil
}

// ListChats fetches the organized session listing.
func (c *Client) ListChats(ctx context.Context) (*ChatList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/list_chats/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.E(apperrors.Op("api.ListChats"), apperrors.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.E(apperrors.Op("api.ListChats"), apperrors.KindBackend,
			fmt.Sprintf("list_chats returned status %d", resp.StatusCode))
	}

	var list ChatList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to parse chat list: %w", err)
	}
	return &list, nil
}

// ListProjects fetches every project, including ones with no chats yet.
// The chat listing only mentions projects that have members, so this is
// the authoritative project list.
func (c *Client) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/list_projects/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.E(apperrors.Op("api.ListProjects"), apperrors.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.E(apperrors.Op("api.ListProjects"), apperrors.KindBackend,
			fmt.Sprintf("list_projects returned status %d", resp.StatusCode))
	}

	var projects []ProjectInfo
	if err := json.NewDecoder(resp.Body).Decode(&projects); err != nil {
		return nil, fmt.Errorf("failed to parse project list: %w", err)
	}
	return projects, nil
}

// History fetches the stored conversation for a session.
func (c *Client) History(ctx context.Context, sessionID string) (*HistoryResponse, error) {
	var out HistoryResponse
	body := map[string]string{"session_id": sessionID}
	if err := c.postJSON(ctx, "/get_chat_history/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Generate asks the service to answer a query within a session.
func (c *Client) Generate(ctx context.Context, sessionID, query string) (*GenerateResponse, error) {
	logger.Debug("API: Generate issued for session %s, query len=%d", sessionID, len(query))
	var out GenerateResponse
	body := map[string]string{"session_id": sessionID, "query": query}
	if err := c.postJSON(ctx, "/generate/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleFavorite flips a session's favorite flag and returns the new value.
func (c *Client) ToggleFavorite(ctx context.Context, sessionID string) (bool, error) {
	var out struct {
		IsFavorite bool `json:"is_favorite"`
	}
	body := map[string]string{"session_id": sessionID}
	if err := c.postJSON(ctx, "/toggle_favorite/", body, &out); err != nil {
		return false, err
	}
	return out.IsFavorite, nil
}

// RenameChat sets a session's display name.
func (c *Client) RenameChat(ctx context.Context, sessionID, name string) error {
	body := map[string]string{"session_id": sessionID, "new_name": name}
	return c.postJSON(ctx, "/rename_chat/", body, nil)
}

// MoveToProject assigns a session to a project, or to none when projectID
// is empty.
func (c *Client) MoveToProject(ctx context.Context, sessionID, projectID string) error {
	body := map[string]interface{}{"session_id": sessionID}
	if projectID == "" {
		body["project_id"] = nil
	} else {
		body["project_id"] = projectID
	}
	return c.postJSON(ctx, "/move_to_project/", body, nil)
}

// DeleteChat removes a session. The backend owns cleanup of its history.
func (c *Client) DeleteChat(ctx context.Context, sessionID string) error {
	return c.del(ctx, "/delete_chat/"+url.PathEscape(sessionID))
}

// CreateProject creates a named project and returns its ID.
func (c *Client) CreateProject(ctx context.Context, name string) (string, error) {
	var out CreateProjectResponse
	body := map[string]string{"name": name}
	if err := c.postJSON(ctx, "/create_project/", body, &out); err != nil {
		return "", err
	}
	return out.ProjectID, nil
}

// DeleteProject removes a project. Its chats are reassigned to unfiled by
// the backend; the client never guesses the reassignment.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.del(ctx, "/delete_project/"+url.PathEscape(projectID))
}

// NewChat creates a session, optionally inside a project.
func (c *Client) NewChat(ctx context.Context, projectID string) (*NewChatResponse, error) {
	path := "/new_chat/"
	if projectID != "" {
		path += "?project_id=" + url.QueryEscape(projectID)
	}
	var out NewChatResponse
	if err := c.postJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ViewDocument fetches a source document's full text with the given passages
// resolved to highlight spans.
func (c *Client) ViewDocument(ctx context.Context, filename string, passages []PassageInfo) (*DocumentResponse, error) {
	highlights := make([]map[string]interface{}, len(passages))
	for i, p := range passages {
		highlights[i] = map[string]interface{}{
			"passage":       p.Passage,
			"passage_index": p.PassageIndex,
		}
	}
	var out DocumentResponse
	body := map[string]interface{}{"filename": filename, "highlights": highlights}
	if err := c.postJSON(ctx, "/view_document/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportChat downloads a session transcript in the given format ("txt",
// "docx", "pdf"). Returns the raw blob.
func (c *Client) ExportChat(ctx context.Context, sessionID, format string) ([]byte, error) {
	body := map[string]string{"session_id": sessionID, "format": format}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/export_chat/", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.E(apperrors.Op("api.ExportChat"), apperrors.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.E(apperrors.Op("api.ExportChat"), apperrors.KindBackend,
			fmt.Sprintf("export_chat returned status %d", resp.StatusCode))
	}
	return io.ReadAll(resp.Body)
}

// SaveRating records feedback for one question/answer pair. Rating is +1 for
// positive, -1 for negative; reason and comments are optional.
func (c *Client) SaveRating(ctx context.Context, question, answer string, rating int, reason, comments string) error {
	body := map[string]interface{}{
		"question": question,
		"response": answer,
		"rating":   rating,
	}
	if reason != "" {
		body["reason"] = reason
	}
	if comments != "" {
		body["comments"] = comments
	}
	return c.postJSON(ctx, "/save_rating/", body, nil)
}
