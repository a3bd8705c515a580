package blob

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAPIBaseURL  = "https://api.github.com"
	defaultHTTPTimeout = 30 * time.Second
	httpTimeoutEnvKey  = "FLOORLOG_HTTP_TIMEOUT"
	writeTokenEnvKey   = "FLOORLOG_TOKEN"

	acceptHeader = "application/vnd.github+json"
)

// GitHubClient stores blobs as files in a GitHub repository via the contents
// API. The version token is the git blob SHA; every successful Put is a
// commit on the configured branch.
type GitHubClient struct {
	baseURL string
	owner   string
	repo    string
	branch  string
	token   string
	http    *http.Client
}

// NewGitHubClient creates a client for one repository branch. An empty
// baseURL selects the public GitHub API. The write token is read from the
// FLOORLOG_TOKEN environment variable.
func NewGitHubClient(baseURL, owner, repo, branch string) *GitHubClient {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return &GitHubClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		owner:   owner,
		repo:    repo,
		branch:  branch,
		token:   strings.TrimSpace(os.Getenv(writeTokenEnvKey)),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
	}
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Get fetches a file's bytes and blob SHA.
func (c *GitHubClient) Get(ctx context.Context, path string) ([]byte, string, error) {
	endpoint := c.contentsURL(path)
	if c.branch != "" {
		endpoint += "?ref=" + url.QueryEscape(c.branch)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", err
	}
	c.setHeaders(req, false)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", c.mapStatus(resp, path, "")
	}

	var body contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", fmt.Errorf("decode contents response: %w", err)
	}

	content, err := decodeContent(body)
	if err != nil {
		return nil, "", err
	}
	return content, body.SHA, nil
}

// Put writes a file, conditionally on expectedVersion, and returns the new
// blob SHA. Each successful call is a commit; callers should expect latency.
func (c *GitHubClient) Put(ctx context.Context, path string, content []byte, expectedVersion, message string) (string, error) {
	payload, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  c.branch,
		SHA:     expectedVersion,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	c.setHeaders(req, true)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", c.mapStatus(resp, path, expectedVersion)
	}

	var body putResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode commit response: %w", err)
	}
	return body.Content.SHA, nil
}

func (c *GitHubClient) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), escapeFilePath(path))
}

func (c *GitHubClient) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", acceptHeader)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// mapStatus translates an API error response into the blob error taxonomy.
func (c *GitHubClient) mapStatus(resp *http.Response, path, expectedVersion string) error {
	detail := apiMessage(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return &ConflictError{Path: path, ExpectedVersion: expectedVersion}
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, detail)
	default:
		return fmt.Errorf("unexpected api status %d: %s", resp.StatusCode, detail)
	}
}

func apiMessage(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return resp.Status
}

func decodeContent(body contentResponse) ([]byte, error) {
	switch body.Encoding {
	case "", "none":
		return []byte(body.Content), nil
	case "base64":
		// The API wraps base64 payloads with newlines.
		raw := strings.ReplaceAll(body.Content, "\n", "")
		content, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("decode base64 content: %w", err)
		}
		return content, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", body.Encoding)
	}
}

// escapeFilePath escapes each path segment but keeps the separators.
func escapeFilePath(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
