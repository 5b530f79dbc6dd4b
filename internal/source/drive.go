package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CSVMimeType is the listing filter for CSV files.
const CSVMimeType = "text/csv"

// DefaultDriveBaseURL is the public Drive v3 REST endpoint.
const DefaultDriveBaseURL = "https://www.googleapis.com/drive/v3"

// DriveConfig carries the knobs for a DriveClient.
type DriveConfig struct {
	BaseURL     string
	APIKey      string
	AccessToken string
	PageSize    int
	HTTPTimeout time.Duration
	RetryMax    int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RemoteFile is one entry of a Drive listing.
type RemoteFile struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type fileList struct {
	Files []RemoteFile `json:"files"`
}

// DriveClient lists and downloads CSV files from Google Drive.
type DriveClient struct {
	httpClient       *http.Client
	baseURL          string
	apiKey           string
	accessToken      string
	pageSize         int
	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
}

// NewDriveClient applies defaults for zero-valued settings.
func NewDriveClient(cfg DriveConfig) *DriveClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultDriveBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 4 * time.Second
	}
	return &DriveClient{
		httpClient:       &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:           cfg.APIKey,
		accessToken:      cfg.AccessToken,
		pageSize:         cfg.PageSize,
		retryMaxAttempts: cfg.RetryMax,
		retryBaseDelay:   cfg.BaseDelay,
		retryMaxDelay:    cfg.MaxDelay,
	}
}

// ListCSV returns up to PageSize CSV files visible to the credentials.
func (c *DriveClient) ListCSV(ctx context.Context) ([]RemoteFile, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("mimeType='%s'", CSVMimeType))
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	q.Set("fields", "files(id, name)")
	var out fileList
	err := c.get(ctx, "/files", q, func(resp *http.Response) error {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("decode file list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Files == nil {
		out.Files = []RemoteFile{}
	}
	return out.Files, nil
}

// Download returns the raw content of one file as text.
func (c *DriveClient) Download(ctx context.Context, fileID string) (string, error) {
	if strings.TrimSpace(fileID) == "" {
		return "", errors.New("file id cannot be empty")
	}
	q := url.Values{}
	q.Set("alt", "media")
	var text string
	err := c.get(ctx, "/files/"+url.PathEscape(fileID), q, func(resp *http.Response) error {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read file body: %w", err)
		}
		text = string(b)
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// get performs a GET with retry on 429/5xx and transient network errors.
// handle is called once with a 2xx response.
func (c *DriveClient) get(ctx context.Context, path string, q url.Values, handle func(*http.Response) error) error {
	if c.accessToken == "" && c.apiKey == "" {
		return ErrMissingCredentials
	}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	endpoint := c.baseURL + path + "?" + q.Encode()

	backoff := c.retryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= c.retryMaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		if c.accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.accessToken)
		}
		req.Header.Set("User-Agent", "drawstats-cli")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if isRetryableNetErr(err) && attempt < c.retryMaxAttempts {
				lastErr = err
				if serr := sleepCtx(ctx, backoff); serr != nil {
					return serr
				}
				backoff *= 2
				continue
			}
			return fmt.Errorf("http request: %w", err)
		}

		retry, wait, err := c.handleResponse(resp, handle)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || attempt >= c.retryMaxAttempts {
			break
		}
		if wait <= 0 {
			wait = withJitter(backoff)
			if c.retryMaxDelay > 0 && wait > c.retryMaxDelay {
				wait = c.retryMaxDelay
			}
			backoff *= 2
		}
		if serr := sleepCtx(ctx, wait); serr != nil {
			return serr
		}
	}
	return lastErr
}

// handleResponse consumes resp. It reports whether the failure is retryable
// and how long the server asked us to wait.
func (c *DriveClient) handleResponse(resp *http.Response, handle func(*http.Response) error) (retry bool, wait time.Duration, err error) {
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return false, 0, handle(resp)
	}
	apiErr := decodeAPIError(resp)
	if resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode <= 599) {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, perr := parseRetryAfterSeconds(ra); perr == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			}
		}
		return true, wait, classifyAPIError(apiErr, resp)
	}
	return false, 0, classifyAPIError(apiErr, resp)
}

func decodeAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	var raw map[string]any
	_ = json.Unmarshal(body, &raw)
	apiErr := &APIError{StatusCode: resp.StatusCode, Raw: raw, RequestID: extractRequestID(resp)}
	if v, ok := raw["error"].(map[string]any); ok {
		if msg, ok := v["message"].(string); ok {
			apiErr.Message = msg
		}
		if errs, ok := v["errors"].([]any); ok && len(errs) > 0 {
			if first, ok := errs[0].(map[string]any); ok {
				if reason, ok := first["reason"].(string); ok {
					apiErr.Reason = reason
				}
			}
		}
		if apiErr.Reason == "" {
			if status, ok := v["status"].(string); ok {
				apiErr.Reason = status
			}
		}
	} else if s := strings.TrimSpace(string(body)); s != "" && raw == nil {
		apiErr.Message = s
	}
	return apiErr
}

// classifyAPIError maps generic APIError to typed errors for better UX.
func classifyAPIError(apiErr *APIError, resp *http.Response) error {
	switch sc := apiErr.StatusCode; {
	case sc == http.StatusUnauthorized || sc == http.StatusForbidden:
		if sc == http.StatusForbidden && containsAnyFold(apiErr.Reason, "ratelimit", "userRateLimitExceeded") {
			return &RateLimitError{APIError: apiErr}
		}
		return &AuthError{APIError: apiErr}
	case sc == http.StatusTooManyRequests:
		var ra time.Duration
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := parseRetryAfterSeconds(v); err == nil && secs > 0 {
				ra = time.Duration(secs) * time.Second
			}
		}
		return &RateLimitError{APIError: apiErr, RetryAfter: ra}
	case sc == http.StatusNotFound:
		return &NotFoundError{APIError: apiErr}
	case sc >= 500 && sc <= 599:
		return &ServerError{APIError: apiErr}
	}
	return apiErr
}

func isRetryableNetErr(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	// EOF or connection reset
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// parseRetryAfterSeconds tries to interpret Retry-After header value as seconds or HTTP date.
func parseRetryAfterSeconds(v string) (int, error) {
	if s, err := strconv.Atoi(v); err == nil {
		return s, nil
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return int(d.Seconds()), nil
	}
	return 0, fmt.Errorf("invalid Retry-After: %q", v)
}

func containsAnyFold(s string, subs ...string) bool {
	ls := strings.ToLower(s)
	for _, sub := range subs {
		if sub != "" && strings.Contains(ls, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// extractRequestID pulls a best-effort request ID from common headers.
func extractRequestID(resp *http.Response) string {
	for _, k := range []string{"X-Request-Id", "X-Goog-Request-Id", "X-Guploader-Uploadid"} {
		if v := resp.Header.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// withJitter returns a backoff duration with +/- 20% jitter applied.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 500 * time.Millisecond
	}
	f := 0.8 + rand.Float64()*0.4
	out := time.Duration(float64(d) * f)
	if out <= 0 {
		return d
	}
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
