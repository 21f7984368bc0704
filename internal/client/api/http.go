package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nkorotkov/privateme/internal/common"
)

// Wire types of the three backend contracts plus auth.

type UploadNoteRequest struct {
	UserID        string `json:"userId"`
	NoteID        string `json:"noteId"`
	EncryptedData string `json:"encryptedData"`
}

type UploadNoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Key     string `json:"key"`
	ETag    string `json:"etag"`
}

type FetchNoteResponse struct {
	Success       bool   `json:"success"`
	EncryptedData string `json:"encryptedData"`
	NoteID        string `json:"noteId"`
	UserID        string `json:"userId"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client implements Gateway against the backend HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token attached to subsequent requests.
// An empty token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// remoteError extracts the message string from an error response body.
func remoteError(resp *http.Response, fallback string) error {
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
		return fmt.Errorf("%w: %s", common.ErrRemote, er.Error)
	}
	return fmt.Errorf("%w: %s (status %d)", common.ErrRemote, fallback, resp.StatusCode)
}

func (c *Client) Push(ctx context.Context, owner, noteID, payload string) error {
	body, err := json.Marshal(UploadNoteRequest{
		UserID:        owner,
		NoteID:        noteID,
		EncryptedData: payload,
	})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/notes/upload", bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remoteError(resp, "failed to upload note")
	}

	var ur UploadNoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return fmt.Errorf("%w: malformed upload response: %v", common.ErrRemote, err)
	}
	if !ur.Success {
		return fmt.Errorf("%w: %s", common.ErrRemote, ur.Message)
	}
	return nil
}

func (c *Client) Pull(ctx context.Context, owner, noteID string) (string, error) {
	q := url.Values{}
	q.Set("userId", owner)
	q.Set("noteId", noteID)

	req, err := c.newRequest(ctx, http.MethodGet, "/notes/fetch?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", common.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", remoteError(resp, "failed to fetch note")
	}

	var fr FetchNoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return "", fmt.Errorf("%w: malformed fetch response: %v", common.ErrRemote, err)
	}
	return fr.EncryptedData, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check failed (status %d)", common.ErrRemote, resp.StatusCode)
	}

	var hr HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return fmt.Errorf("%w: malformed health response: %v", common.ErrRemote, err)
	}
	return nil
}

// Register creates an account on the backend.
func (c *Client) Register(ctx context.Context, email, password string) error {
	_, err := c.auth(ctx, "/auth/register", email, password)
	return err
}

// Login authenticates and installs the returned token on the client.
// The backend-assigned user id is returned for use as the sync owner.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	ar, err := c.auth(ctx, "/auth/login", email, password)
	if err != nil {
		return "", err
	}
	c.token = ar.Token
	return ar.UserID, nil
}

func (c *Client) auth(ctx context.Context, path, email, password string) (*AuthResponse, error) {
	body, err := json.Marshal(AuthRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, common.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, remoteError(resp, "auth request failed")
	}

	var ar AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("%w: malformed auth response: %v", common.ErrRemote, err)
	}
	return &ar, nil
}
