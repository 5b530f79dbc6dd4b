// Package render turns a StatsReport into text, JSON, YAML or HTML.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/KaramelBytes/drawstats-cli/internal/draws"
)

// Renderer writes a report in one output format.
type Renderer interface {
	Render(w io.Writer, rep *draws.StatsReport) error
}

// ErrUnknownFormat indicates no renderer is registered for a format name.
var ErrUnknownFormat = errors.New("unknown output format")

var registry = map[string]Renderer{}

// Register adds a renderer under a format name.
func Register(name string, r Renderer) {
	registry[strings.ToLower(name)] = r
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Render writes rep to w in the named format.
func Render(w io.Writer, format string, rep *draws.StatsReport) error {
	r, ok := registry[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return fmt.Errorf("%w: %q (use one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
	return r.Render(w, rep)
}

// Bytes renders rep into memory.
func Bytes(format string, rep *draws.StatsReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, format, rep); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func init() {
	Register("text", textRenderer{})
	Register("json", jsonRenderer{})
	Register("yaml", yamlRenderer{})
	Register("html", htmlRenderer{})
}
