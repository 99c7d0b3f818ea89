package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// SessionUser is the profile slice the auth endpoints return.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is a file-backed login state. A missing or corrupt file
// just means logged out; a corrupt one is also cleared so it can't
// keep failing on every start.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`

	path string
}

func LoadSession(path string) *Session {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	if err := json.Unmarshal(data, s); err != nil {
		zap.L().Warn("Stored session unreadable, clearing it", zap.String("path", path), zap.Error(err))
		os.Remove(path)
		*s = Session{path: path}
	}

	s.path = path
	return s
}

func (s *Session) LoggedIn() bool {
	return s.Token != ""
}

func (s *Session) Save() error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear logs out and removes the backing file.
func (s *Session) Clear() {
	s.Token = ""
	s.User = SessionUser{}
	os.Remove(s.path)
}

type authResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
	Error string      `json:"error"`
}

// SignIn authenticates and persists the session on success.
func (c *Client) SignIn(ctx context.Context, s *Session, email, password string) error {
	return c.authenticate(ctx, s, pathSignin, map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignUp registers a new account and persists the session on success.
func (c *Client) SignUp(ctx context.Context, s *Session, username, email, password string) error {
	return c.authenticate(ctx, s, pathSignup, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, s *Session, path string, creds map[string]string) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed, %w", err)
	}
	defer resp.Body.Close()

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode auth response, %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if body.Error != "" {
			return fmt.Errorf("authentication failed: %s", body.Error)
		}
		return fmt.Errorf("authentication failed with status %d", resp.StatusCode)
	}

	if body.Token == "" {
		return fmt.Errorf("authentication succeeded but no token was issued")
	}

	s.Token = body.Token
	s.User = body.User

	if err := s.Save(); err != nil {
		zap.L().Warn("Failed to persist session", zap.Error(err))
	}

	return nil
}
