package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

type ipv4Server struct {
	URL string
	srv *http.Server
	ln  net.Listener
}

func newIPv4Server(t *testing.T, handler http.Handler) *ipv4Server {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) {
			t.Skipf("skipping test: cannot open local listener (%v)", err)
		}
		t.Fatalf("listen tcp4: %v", err)
	}
	srv := &http.Server{Handler: handler}
	s := &ipv4Server{
		URL: "http://" + ln.Addr().String(),
		srv: srv,
		ln:  ln,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(fmt.Sprintf("test server serve: %v", err))
		}
	}()
	return s
}

func (s *ipv4Server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
}

func testClient(baseURL string) *DriveClient {
	return NewDriveClient(DriveConfig{
		BaseURL:     baseURL,
		AccessToken: "test-token",
		HTTPTimeout: 2 * time.Second,
		RetryMax:    3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	})
}

func TestListCSVSendsFilter(t *testing.T) {
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/files" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("q") != "mimeType='text/csv'" || q.Get("pageSize") != "10" || q.Get("fields") != "files(id, name)" {
			http.Error(w, "bad query: "+r.URL.RawQuery, http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]string{{"id": "f1", "name": "history.csv"}, {"id": "f2", "name": "old.csv"}},
		})
	}))
	defer srv.Close()

	files, err := testClient(srv.URL).ListCSV(context.Background())
	if err != nil {
		t.Fatalf("ListCSV: %v", err)
	}
	if len(files) != 2 || files[0].ID != "f1" || files[1].Name != "old.csv" {
		t.Fatalf("unexpected files: %+v", files)
	}
}

func TestListCSVEmpty(t *testing.T) {
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	files, err := testClient(srv.URL).ListCSV(context.Background())
	if err != nil {
		t.Fatalf("ListCSV: %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", files)
	}
}

func TestDownloadRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/abc" || r.URL.Query().Get("alt") != "media" {
			http.NotFound(w, r)
			return
		}
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "backend busy"}})
			return
		}
		_, _ = w.Write([]byte("Game,M,D,Y,N1,N2,N3,N4,B\nG,1,1,2024,1,2,3,4,5\n"))
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).Download(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
	if text == "" || text[:4] != "Game" {
		t.Fatalf("unexpected body: %q", text)
	}
}

func TestDownloadClassifiesErrors(t *testing.T) {
	cases := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, func(err error) bool { var e *AuthError; return errors.As(err, &e) }},
		{http.StatusNotFound, func(err error) bool { var e *NotFoundError; return errors.As(err, &e) }},
		{http.StatusTooManyRequests, func(err error) bool { var e *RateLimitError; return errors.As(err, &e) }},
		{http.StatusBadGateway, func(err error) bool { var e *ServerError; return errors.As(err, &e) }},
		{http.StatusBadRequest, func(err error) bool { var e *APIError; return errors.As(err, &e) }},
	}
	for _, c := range cases {
		status := c.status
		srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{
				"message": "nope",
				"errors":  []map[string]any{{"reason": "testReason"}},
			}})
		}))
		_, err := testClient(srv.URL).Download(context.Background(), "abc")
		srv.Close()
		if err == nil || !c.check(err) {
			t.Fatalf("status %d: unexpected error %T %v", status, err, err)
		}
	}
}

func TestMissingCredentials(t *testing.T) {
	c := NewDriveClient(DriveConfig{BaseURL: "http://127.0.0.1:1"})
	if _, err := c.ListCSV(context.Background()); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	if _, err := testClient("http://127.0.0.1:1").Download(context.Background(), " "); err == nil {
		t.Fatalf("expected error for blank file id")
	}
}

func TestAPIKeyQueryParam(t *testing.T) {
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "k123" || r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"files":[]}`))
	}))
	defer srv.Close()

	c := NewDriveClient(DriveConfig{BaseURL: srv.URL, APIKey: "k123", RetryMax: 1})
	if _, err := c.ListCSV(context.Background()); err != nil {
		t.Fatalf("ListCSV with api key: %v", err)
	}
}

func TestParseRetryAfterSeconds(t *testing.T) {
	if s, err := parseRetryAfterSeconds("3"); err != nil || s != 3 {
		t.Fatalf("seconds form: %d %v", s, err)
	}
	if _, err := parseRetryAfterSeconds("soon"); err == nil {
		t.Fatalf("expected error for garbage")
	}
}
