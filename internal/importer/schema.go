package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a project import file. The same
// shape is accepted as JSON or YAML.
type ImportSchema struct {
	Project ProjectImport `json:"project" yaml:"project"`
	Tasks   []TaskImport  `json:"tasks" yaml:"tasks"`
}

// ProjectImport defines the project-level fields in the import file. Dates
// may be omitted when tasks are present; the project then spans its tasks.
type ProjectImport struct {
	ShortID   string  `json:"short_id" yaml:"short_id"`
	Name      string  `json:"name" yaml:"name"`
	Status    string  `json:"status,omitempty" yaml:"status,omitempty"`
	StartDate string  `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Location  string  `json:"location,omitempty" yaml:"location,omitempty"`
	Budget    float64 `json:"budget,omitempty" yaml:"budget,omitempty"`
}

// TaskImport defines a task in the import file. Ref only has to be unique
// within the file.
type TaskImport struct {
	Ref          string `json:"ref" yaml:"ref"`
	Name         string `json:"name" yaml:"name"`
	Status       string `json:"status,omitempty" yaml:"status,omitempty"`
	StartDate    string `json:"start_date" yaml:"start_date"`
	EndDate      string `json:"end_date" yaml:"end_date"`
	Progress     *int   `json:"progress,omitempty" yaml:"progress,omitempty"`
	CriticalPath bool   `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`
	Assignee     string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Format names an import file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from the file extension. Anything that
// is not .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadImportSchema reads and parses a project import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, FormatForPath(path))
}

// ParseImportSchema decodes an import document in the given format.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
