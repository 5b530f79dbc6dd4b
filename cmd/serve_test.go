package cmd

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/drawstats-cli/internal/draws"
	"github.com/KaramelBytes/drawstats-cli/internal/server"
	"github.com/gin-gonic/gin"
)

func TestServeUntilDone_ServesAndShutsDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- serveUntilDone(ctx, ln, server.New(server.Config{Options: draws.DefaultOptions()}))
	}()

	base := "http://" + ln.Addr().String()
	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}

	resp, err = http.Post(base+"/stats", "text/csv", strings.NewReader(historyCSV))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"game_name":"LottoX"`) {
		t.Fatalf("stats status = %d body=%s", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveUntilDone returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestCLI_ServeStopsWithContext(t *testing.T) {
	isolate(t)
	t.Cleanup(func() {
		rootCmd.SetContext(context.Background())
		serveCmd.SetContext(context.Background())
	})
	resetFlags(rootCmd)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve: %v", err)
	}

	rootCmd.SetArgs([]string{"serve", "--addr", "not-an-address"})
	if err := rootCmd.ExecuteContext(ctx); err == nil || !strings.Contains(err.Error(), "listen") {
		t.Fatalf("expected listen error, got %v", err)
	}
}
