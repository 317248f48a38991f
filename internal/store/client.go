// client.go
//
// A single-file data backend and sync core for the piggy family web hub
// Copyright (c) 2026 SchellingX (https://github.com/schellingx)
//
// This file is part of piggyweb.
// piggyweb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// piggyweb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with piggyweb.
// If not, see <https://www.gnu.org/licenses/>.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/schellingx/piggyweb/internal/models"
)

// Client is the HTTP client for the sync gateway and the chat session
// endpoints. The sync paths deliberately carry no request timeout: an
// in-flight save is never aborted by a later state change.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a gateway client for the given base URL
// (e.g. "http://localhost:3001").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// FetchState retrieves the server document. The second return value is
// false when the server reports {initialized:false}, i.e. no document has
// ever been written.
func (c *Client) FetchState(ctx context.Context) (models.StatePatch, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/data", nil)
	if err != nil {
		return models.StatePatch{}, false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.StatePatch{}, false, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.StatePatch{}, false, err
	}
	if resp.StatusCode != http.StatusOK {
		return models.StatePatch{}, false, fmt.Errorf("fetch state: status %d", resp.StatusCode)
	}

	var probe struct {
		Initialized *bool `json:"initialized"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return models.StatePatch{}, false, fmt.Errorf("fetch state: %w", err)
	}
	if probe.Initialized != nil && !*probe.Initialized {
		return models.StatePatch{}, false, nil
	}

	var patch models.StatePatch
	if err := json.Unmarshal(body, &patch); err != nil {
		return models.StatePatch{}, false, fmt.Errorf("fetch state: %w", err)
	}
	return patch, true, nil
}

// SaveState uploads the entire document, replacing whatever the server
// holds.
func (c *Client) SaveState(ctx context.Context, doc models.StateDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/data", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save state: status %d", resp.StatusCode)
	}
	return nil
}

// ListSessions fetches all chat sessions for a user.
func (c *Client) ListSessions(ctx context.Context, userID string) ([]models.ChatSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.chatURL(userID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list sessions: status %d", resp.StatusCode)
	}

	var result struct {
		Sessions []models.ChatSession `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return result.Sessions, nil
}

// SaveSession persists a full transcript. A nil sessionID creates a new
// session; the returned session carries the id to use for follow-up saves.
func (c *Client) SaveSession(ctx context.Context, userID string, sessionID *string, messages []models.ChatMessage, title string) (models.ChatSession, error) {
	payload, err := json.Marshal(map[string]any{
		"sessionId": sessionID,
		"messages":  messages,
		"title":     title,
	})
	if err != nil {
		return models.ChatSession{}, fmt.Errorf("save session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL(userID), bytes.NewReader(payload))
	if err != nil {
		return models.ChatSession{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.ChatSession{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.ChatSession{}, fmt.Errorf("save session: status %d", resp.StatusCode)
	}

	var session models.ChatSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return models.ChatSession{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// DeleteSession removes one session.
func (c *Client) DeleteSession(ctx context.Context, userID, sessionID string) error {
	return c.deleteSessions(ctx, c.chatURL(userID)+"?sessionId="+url.QueryEscape(sessionID))
}

// ClearSessions removes all sessions for a user.
func (c *Client) ClearSessions(ctx context.Context, userID string) error {
	return c.deleteSessions(ctx, c.chatURL(userID))
}

func (c *Client) deleteSessions(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete sessions: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) chatURL(userID string) string {
	return c.baseURL + "/api/chat/" + url.PathEscape(userID)
}
