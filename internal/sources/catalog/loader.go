package catalog

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// templateVar matches {{VAR}} placeholders left in exported catalogs.
var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads and parses the post catalog file
type Loader struct {
	filePath string
}

// NewLoader creates a new catalog loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the catalog file path
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the catalog file
func (l *Loader) Load() (*File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML. Unknown keys are rejected so typos surface.
func Parse(data []byte) (*File, error) {
	data = stripTemplateVariables(data)

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	return &file, nil
}

// stripTemplateVariables replaces {{...}} placeholders with empty strings
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
