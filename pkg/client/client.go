// Package client is a Go client for the panel API. It owns the session
// state (bearer token plus derived authenticated flag) and attaches the
// token to every protected request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"panel/internal/models"
)

// ErrUnauthenticated is returned when the server rejects the request with
// 401: missing, invalid or expired token, or bad login credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrNotFound is returned for resources that are absent or not owned by the
// authenticated user.
var ErrNotFound = errors.New("not found")

// Client for interacting with the panel API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// NewClient creates a new panel API client bound to a session.
func NewClient(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		session: session,
	}
}

// Session exposes the session so callers can subscribe to auth changes.
func (c *Client) Session() *Session {
	return c.session
}

// Login authenticates and stores the returned token in the session, firing
// the auth-change broadcast.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var response struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &response, false); err != nil {
		return err
	}

	c.session.SetToken(response.Token)
	return nil
}

// Logout discards the local token. The server holds no session table, so
// this is purely a client-side operation.
func (c *Client) Logout() {
	c.session.Clear()
}

// Profile fetches the authenticated user's record.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the mutable profile fields; nil fields are left
// unchanged by the server.
type ProfileUpdate struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", update, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar uploads a data-URI encoded image.
func (c *Client) UpdateAvatar(ctx context.Context, avatar string) (*models.User, error) {
	body := map[string]string{"avatar": avatar}
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile/avatar", body, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckPassword verifies the password without changing anything.
func (c *Client) CheckPassword(ctx context.Context, password string) (bool, error) {
	body := map[string]string{"password": password}
	var response struct {
		IsValid bool `json:"isValid"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/check-password", body, &response, true); err != nil {
		return false, err
	}
	return response.IsValid, nil
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/change-password", body, nil, true)
}

// Notifications lists the authenticated user's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &notifications, true); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	path := fmt.Sprintf("/api/notifications/%s/read", id)
	if err := c.do(ctx, http.MethodPost, path, nil, &notification, true); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	var response struct {
		ModifiedCount int64 `json:"modifiedCount"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/notifications/mark-all-read", nil, &response, true); err != nil {
		return 0, err
	}
	return response.ModifiedCount, nil
}

func (c *Client) DeleteNotification(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	path := fmt.Sprintf("/api/notifications/%s", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &notification, true); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authenticated bool) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthenticated
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
