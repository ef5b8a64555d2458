package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
)

const (
	pathFolders    = "/api/pastas"
	pathFilesMove  = "/api/arquivos/mover"
	pathFilesCopy  = "/api/arquivos/copiar"
	pathFilesPurge = "/api/arquivos/excluir"
	pathFiles      = "/api/arquivos"
	pathHealth     = "/health"
)

type transferBody struct {
	IDs           []string `json:"ids"`
	DestinationID string   `json:"pasta_destino_id,omitempty"`
}

type nameBody struct {
	Name string `json:"nome"`
}

type errorBody struct {
	Error string `json:"erro"`
}

// HTTPClient implements Client over the backend JSON API.
type HTTPClient struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request; zero disables the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

func NewHTTPClient(baseURL, token string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: 15 * time.Second,
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// SetToken swaps the bearer token used for subsequent requests.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, pathHealth, nil, nil)
}

func (c *HTTPClient) ListFolders(ctx context.Context) ([]models.Folder, error) {
	var out []models.Folder
	if err := c.do(ctx, http.MethodGet, pathFolders, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	var out models.Folder
	if err := c.do(ctx, http.MethodPost, pathFolders, nameBody{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RenameFolder(ctx context.Context, id, name string) (*models.Folder, error) {
	var out models.Folder
	if err := c.do(ctx, http.MethodPatch, pathFolders+"/"+url.PathEscape(id), nameBody{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteFolder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathFolders+"/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) MoveFiles(ctx context.Context, fileIDs []string, destinationID string) (*models.TransferResult, error) {
	return c.transfer(ctx, pathFilesMove, transferBody{IDs: fileIDs, DestinationID: destinationID})
}

func (c *HTTPClient) CopyFiles(ctx context.Context, fileIDs []string, destinationID string) (*models.TransferResult, error) {
	return c.transfer(ctx, pathFilesCopy, transferBody{IDs: fileIDs, DestinationID: destinationID})
}

func (c *HTTPClient) DeleteFiles(ctx context.Context, fileIDs []string) (*models.TransferResult, error) {
	return c.transfer(ctx, pathFilesPurge, transferBody{IDs: fileIDs})
}

func (c *HTTPClient) RenameFile(ctx context.Context, id, name string) (*models.File, error) {
	var out models.File
	if err := c.do(ctx, http.MethodPatch, pathFiles+"/"+url.PathEscape(id), nameBody{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// transferReply is a transfer result that may instead be a plain error body.
type transferReply struct {
	models.TransferResult
	Error string `json:"erro"`
}

// transfer posts a bulk file operation. 207 and 409 still carry a result
// body describing which items failed, so they are decoded rather than
// reported as errors. A 409 without any item lists is a request-level
// conflict and comes back as *APIError.
func (c *HTTPClient) transfer(ctx context.Context, path string, body transferBody) (*models.TransferResult, error) {
	var reply transferReply
	status, err := c.doStatus(ctx, http.MethodPost, path, body, &reply, http.StatusMultiStatus, http.StatusConflict)
	if err != nil {
		return nil, err
	}
	out := reply.TransferResult
	if status == http.StatusConflict && out.Items == nil && out.Failed == nil {
		return nil, &APIError{Status: status, Message: reply.Error}
	}
	if out.Status == 0 {
		out.Status = status
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	_, err := c.doStatus(ctx, method, path, in, out)
	return err
}

// doStatus sends one request. Any 2xx, plus the statuses listed in accept,
// is decoded into out; everything else goes through mapStatus.
func (c *HTTPClient) doStatus(ctx context.Context, method, path string, in, out any, accept ...int) (int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, err
		}
		return 0, fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	for _, s := range accept {
		if resp.StatusCode == s {
			ok = true
		}
	}
	if !ok {
		return resp.StatusCode, mapStatus(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// mapStatus converts a non-success response into a sentinel or an *APIError.
func mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		return ErrUnavailable
	}

	var eb errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &eb); err != nil || eb.Error == "" {
		eb.Error = strings.TrimSpace(string(raw))
	}
	return &APIError{Status: resp.StatusCode, Message: eb.Error}
}
