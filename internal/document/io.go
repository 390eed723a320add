package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// Format selects a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension. Anything that is
// not .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ToJSON encodes g as indented JSON.
func ToJSON(g *scene.Graph) ([]byte, error) {
	return json.MarshalIndent(Encode(g), "", "  ")
}

// FromJSON decodes and validates a JSON document.
func FromJSON(data []byte) (*scene.Graph, error) {
	var doc *Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	return Decode(doc)
}

// ToYAML encodes g as YAML.
func ToYAML(g *scene.Graph) ([]byte, error) {
	return yaml.Marshal(Encode(g))
}

// FromYAML decodes and validates a YAML document.
func FromYAML(data []byte) (*scene.Graph, error) {
	var doc *Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	return Decode(doc)
}

// Marshal encodes g in the given format.
func Marshal(g *scene.Graph, f Format) ([]byte, error) {
	if f == FormatYAML {
		return ToYAML(g)
	}
	return ToJSON(g)
}

// Unmarshal decodes data in the given format.
func Unmarshal(data []byte, f Format) (*scene.Graph, error) {
	if f == FormatYAML {
		return FromYAML(data)
	}
	return FromJSON(data)
}

// ReadFile loads a document, choosing the codec by extension.
func ReadFile(path string) (*scene.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Unmarshal(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}

// WriteFile saves g, choosing the codec by extension.
func WriteFile(path string, g *scene.Graph) error {
	data, err := Marshal(g, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
