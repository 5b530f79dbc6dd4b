package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/KaramelBytes/drawstats-cli/internal/draws"
	"gopkg.in/yaml.v3"
)

type jsonRenderer struct{}

func (jsonRenderer) Render(w io.Writer, r *draws.StatsReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

type yamlRenderer struct{}

func (yamlRenderer) Render(w io.Writer, r *draws.StatsReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
