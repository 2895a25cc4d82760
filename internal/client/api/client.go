// Package api implements the HTTP client for the TaskMaster backend. It
// authenticates with a bearer access token stored in a local state directory
// so separate CLI invocations stay logged in.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sanjaympqwer/TASK-MASTER/internal/client/config"
	"github.com/sanjaympqwer/TASK-MASTER/internal/filex"
)

// ErrUnauthorized is returned when the server rejects the stored token or
// the supplied credentials.
var ErrUnauthorized = errors.New("unauthorized")

const stateDirName = ".taskmaster"

// User mirrors the account object returned by the server.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Task mirrors the task object returned by the server.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskPatch carries optional task fields for updates.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type authResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Client talks to the backend JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokenPath  string
}

// NewClient constructs a Client. The token file lives in a state directory
// under the current working directory.
func NewClient(cfg *config.Config) (*Client, error) {
	dir, err := filex.EnsureSubdDir(stateDirName)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.ServerBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		tokenPath:  filepath.Join(dir, "token"),
	}, nil
}

func (c *Client) saveToken(token string) error {
	return os.WriteFile(c.tokenPath, []byte(token), 0o600)
}

func (c *Client) loadToken() string {
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.loadToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Message != "" {
			return fmt.Errorf("server error: %s", er.Message)
		}
		return fmt.Errorf("server error: %s", resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Signup registers an account and stores the returned access token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signup",
		map[string]string{"name": name, "email": email, "password": password}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.saveToken(resp.AccessToken); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and stores the returned access token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.saveToken(resp.AccessToken); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout discards the stored token. The sealed cookie never reaches the CLI,
// so forgetting the token is all a logout takes.
func (c *Client) Logout() error {
	err := os.Remove(c.tokenPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Me fetches the authenticated account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListTasks returns the account's tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task. Status defaults server-side to "todo".
func (c *Client) CreateTask(ctx context.Context, title, description, status string) (*Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPost, "/api/tasks",
		map[string]string{"title": title, "description": description, "status": status}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task and reports whether anything was deleted.
func (c *Client) DeleteTask(ctx context.Context, id string) (bool, error) {
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// SuggestDescription asks the server for a generated task description. Pass
// the task's current description to have it refined instead of replaced.
func (c *Client) SuggestDescription(ctx context.Context, title, existingDescription string) (string, error) {
	var resp struct {
		Description string `json:"description"`
	}
	err := c.do(ctx, http.MethodPost, "/api/tasks/suggest-description",
		map[string]string{"title": title, "existingDescription": existingDescription}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Description, nil
}

// AvatarUploadTarget is the server's answer to an avatar upload request.
type AvatarUploadTarget struct {
	Key         string `json:"key"`
	UploadURL   string `json:"uploadUrl"`
	DownloadURL string `json:"downloadUrl"`
}

// RequestAvatarUpload asks the server for a presigned upload slot.
func (c *Client) RequestAvatarUpload(ctx context.Context) (*AvatarUploadTarget, error) {
	var target AvatarUploadTarget
	if err := c.do(ctx, http.MethodPost, "/api/me/avatar", nil, &target); err != nil {
		return nil, err
	}
	return &target, nil
}
