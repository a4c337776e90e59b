package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/printshop/printshop-api/models"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every request unless WithHTTPClient or WithTimeout
// says otherwise.
const DefaultTimeout = 30 * time.Second

const maxErrorBody = 1 << 20

var (
	// ErrUnknownEndpoint indicates an alias missing from Endpoints.
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrInvalidResponse indicates a 2xx body that breaks the declared contract.
	ErrInvalidResponse = errors.New("invalid response")
)

// APIError is a 4xx/5xx answer from the backend. Body is set when the status
// is declared for the endpoint and the payload parsed as an ErrorResponse.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       *models.ErrorResponse
	Raw        []byte
}

func (e *APIError) Error() string {
	msg := http.StatusText(e.StatusCode)
	if e.Body != nil && e.Body.Error != "" {
		msg = e.Body.Error
	}
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// FileDownload is a binary response such as a CSV or PDF export.
type FileDownload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// File is an upload sent as the "file" part of a multipart form.
type File struct {
	Name    string
	Content io.Reader
}

// Client calls the REST contract declared in Endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through a copy of hc, so later options never
// change the caller's client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		copied := *hc
		c.httpClient = &copied
	}
}

// WithBearerToken sends token in the Authorization header.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout sets the timeout of the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New binds the endpoint table to baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request is one resolved call of an endpoint.
type request struct {
	alias  string
	path   map[string]string
	query  url.Values
	body   any
	fields map[string]string
	file   *File
}

// do sends req and decodes a 2xx JSON body into out (nil to discard).
func (c *Client) do(ctx context.Context, req request, out any) error {
	resp, endpoint, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, endpoint); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint.Alias, err)
	}
	return nil
}

// download sends req and returns the body as a file.
func (c *Client) download(ctx context.Context, req request) (*FileDownload, error) {
	resp, endpoint, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint.Alias, err)
	}

	file := &FileDownload{ContentType: resp.Header.Get("Content-Type"), Data: data}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		file.Filename = params["filename"]
	}
	return file, nil
}

func (c *Client) send(ctx context.Context, req request) (*http.Response, Endpoint, error) {
	endpoint, ok := Lookup(req.alias)
	if !ok {
		return nil, endpoint, fmt.Errorf("%w: %s", ErrUnknownEndpoint, req.alias)
	}

	path, err := interpolate(endpoint.Path, req.path)
	if err != nil {
		return nil, endpoint, err
	}
	target := c.baseURL + path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, endpoint, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, endpoint.Method, target, body)
	if err != nil {
		return nil, endpoint, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, endpoint, fmt.Errorf("%s %s failed: %w", endpoint.Method, path, err)
	}

	c.logger.Debug("API request",
		zap.String("alias", endpoint.Alias),
		zap.String("method", endpoint.Method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return resp, endpoint, nil
}

func encodeBody(req request) (io.Reader, string, error) {
	if req.file != nil || req.fields != nil {
		return encodeMultipart(req)
	}
	if req.body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(req.body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func encodeMultipart(req request) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for name, value := range req.fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if req.file != nil {
		part, err := writer.CreateFormFile("file", req.file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, req.file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}

// interpolate replaces :name segments with escaped values.
func interpolate(path string, values map[string]string) (string, error) {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		v, ok := values[seg[1:]]
		if !ok || v == "" {
			return "", fmt.Errorf("missing path parameter %q for %s", seg[1:], path)
		}
		segments[i] = url.PathEscape(v)
	}
	return strings.Join(segments, "/"), nil
}

func checkStatus(resp *http.Response, endpoint Endpoint) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{
		Method:     endpoint.Method,
		Path:       resp.Request.URL.Path,
		StatusCode: resp.StatusCode,
		Raw:        raw,
	}
	if endpoint.Declares(resp.StatusCode) {
		var body models.ErrorResponse
		if err := json.Unmarshal(raw, &body); err == nil && body.StatusCode != 0 {
			apiErr.Body = &body
		}
	}
	return apiErr
}
