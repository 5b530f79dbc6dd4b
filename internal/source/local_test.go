package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadLocal(t *testing.T) {
	p := filepath.Join(t.TempDir(), "draws.csv")
	content := "Game,M,D,Y,N1,N2,N3,N4,B\nG,1,1,2024,1,2,3,4,5\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadLocal(p)
	if err != nil {
		t.Fatalf("ReadLocal: %v", err)
	}
	if got != content {
		t.Fatalf("got %q", got)
	}
}

func TestReadLocalMissing(t *testing.T) {
	_, err := ReadLocal(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil || !strings.Contains(err.Error(), "read file") {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}

func TestReadAll(t *testing.T) {
	got, err := ReadAll(strings.NewReader("a,b\n"))
	if err != nil || got != "a,b\n" {
		t.Fatalf("ReadAll = %q, %v", got, err)
	}
}
