package client

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

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// HTTPClient implements Client over the backend's JSON/HTTP contract.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient validates baseURL and builds a client whose requests are
// bounded by timeout (zero means no client-side limit).
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do performs one round-trip. It returns the status code; out is decoded
// only for 2xx responses. Transport failures map to ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%s: read response: %w: %w", op, ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || out == nil {
		return resp.StatusCode, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%s: decode response: %w: %w", op, ErrBackend, err)
	}
	return resp.StatusCode, nil
}

// mapStatus turns a non-2xx status into an error.
func (c *HTTPClient) mapStatus(op string, code int) error {
	switch {
	case code >= 200 && code <= 299:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	default:
		return &StatusError{Op: op, Code: code}
	}
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Login exchanges credentials for a token. Any non-2xx status, success=false
// or a missing token is reported as ErrUnauthorized.
func (c *HTTPClient) Login(ctx context.Context, userID string, password string) (*models.User, error) {
	const op = "login"

	var resp loginResponse
	code, err := c.do(ctx, op, http.MethodPost, "/login", loginRequest{UserID: userID, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if code < 200 || code > 299 {
		return nil, fmt.Errorf("%s: status %d: %w", op, code, ErrUnauthorized)
	}
	if !resp.Success || resp.Token == "" {
		return nil, fmt.Errorf("%s: invalid response from server: %w", op, ErrUnauthorized)
	}

	return &models.User{ID: userID, Token: resp.Token}, nil
}

type verifyResponse struct {
	Authenticated bool `json:"authenticated"`
}

// VerifyLogin asks the backend whether token is still valid for userID.
// A non-2xx status means "not authenticated", not an error.
func (c *HTTPClient) VerifyLogin(ctx context.Context, userID string, token string) (bool, error) {
	var resp verifyResponse
	code, err := c.do(ctx, "verify login", http.MethodGet,
		"/verify_login/"+url.PathEscape(userID)+"/"+url.PathEscape(token), nil, &resp)
	if err != nil {
		return false, err
	}
	if code < 200 || code > 299 {
		return false, nil
	}
	return resp.Authenticated, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error) {
	const op = "send message"

	var reply models.ChatReply
	code, err := c.do(ctx, op, http.MethodPost, "/chat", req, &reply)
	if err != nil {
		return nil, err
	}
	if err := c.mapStatus(op, code); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *HTTPClient) GetChats(ctx context.Context, userID string) ([]models.Chat, error) {
	const op = "get chats"

	var chats []models.Chat
	code, err := c.do(ctx, op, http.MethodGet, "/get_chats/"+url.PathEscape(userID), nil, &chats)
	if err != nil {
		return nil, err
	}
	if err := c.mapStatus(op, code); err != nil {
		return nil, err
	}
	if chats == nil {
		chats = []models.Chat{}
	}
	return chats, nil
}

func (c *HTTPClient) GetChat(ctx context.Context, chatID string) ([]models.Message, error) {
	const op = "get chat"

	var messages []models.Message
	code, err := c.do(ctx, op, http.MethodGet, "/get_chat/"+url.PathEscape(chatID), nil, &messages)
	if err != nil {
		return nil, err
	}
	if err := c.mapStatus(op, code); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

type createChatRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
}

func (c *HTTPClient) CreateChat(ctx context.Context, userID string, title string) (*models.Chat, error) {
	const op = "create chat"

	var chat models.Chat
	code, err := c.do(ctx, op, http.MethodPost, "/create_chat", createChatRequest{UserID: userID, Title: title}, &chat)
	if err != nil {
		return nil, err
	}
	if err := c.mapStatus(op, code); err != nil {
		return nil, err
	}
	if chat.ID == "" {
		return nil, fmt.Errorf("%s: response has no chat id: %w", op, ErrBackend)
	}
	return &chat, nil
}

func (c *HTTPClient) DeleteChat(ctx context.Context, chatID string) error {
	const op = "delete chat"

	code, err := c.do(ctx, op, http.MethodDelete, "/delete_chat/"+url.PathEscape(chatID), nil, nil)
	if err != nil {
		return err
	}
	return c.mapStatus(op, code)
}
