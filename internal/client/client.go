// Package client is the HTTP client for the forum API shared by the web UI and the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/qa-forum/internal/models"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	return fmt.Sprintf("status %d: %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client calls the forum API. Token, when set, is sent as a bearer token.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
}

// New returns a client for baseURL. A nil httpClient gets a 15s timeout default.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

// WithToken returns a copy of c that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.Token = token
	return &cp
}

// ==========================
// Auth
// ==========================

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, username, password string) (Session, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", models.Registration{Username: username, Password: password}, &out)
	if err != nil {
		return Session{}, err
	}
	return sessionFrom(out), nil
}

// Login authenticates and returns a fresh session.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", models.Credentials{Username: username, Password: password}, &out)
	if err != nil {
		return Session{}, err
	}
	return sessionFrom(out), nil
}

// ==========================
// Categories & Questions
// ==========================

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out)
	return out, err
}

func (c *Client) QuestionsByCategory(ctx context.Context, categoryID int) ([]models.Question, error) {
	var out []models.Question
	err := c.do(ctx, http.MethodGet, "/api/questions/category/"+strconv.Itoa(categoryID), nil, &out)
	return out, err
}

func (c *Client) Question(ctx context.Context, id int) (models.QuestionDetail, error) {
	var out models.QuestionDetail
	err := c.do(ctx, http.MethodGet, "/api/questions/"+strconv.Itoa(id), nil, &out)
	return out, err
}

// AskQuestion posts a question. Requires a token.
func (c *Client) AskQuestion(ctx context.Context, q models.NewQuestion) (models.Question, error) {
	var out models.Question
	err := c.do(ctx, http.MethodPost, "/api/questions", q, &out)
	return out, err
}

// PostAnswer posts an answer. Requires a token.
func (c *Client) PostAnswer(ctx context.Context, a models.NewAnswer) (models.Answer, error) {
	var out models.Answer
	err := c.do(ctx, http.MethodPost, "/api/answers", a, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decode: %w", method, path, err)
		}
	}
	return nil
}

func decodeAPIError(status int, data []byte) *APIError {
	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Fields = payload.Fields
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(data))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
