package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportFile is the top-level structure of a portfolio import document.
// JSON documents are accepted too, since YAML is a superset of JSON.
type ImportFile struct {
	Statuses []StatusImport  `yaml:"statuses"`
	Projects []ProjectImport `yaml:"projects"`
}

// StatusImport defines a project status. Statuses that already exist in the
// store (matched by name) are reused rather than created.
type StatusImport struct {
	Name  string `yaml:"name"`
	Phase string `yaml:"phase,omitempty"`
	Final bool   `yaml:"final,omitempty"`
	Order *int   `yaml:"order,omitempty"`
}

// ProjectImport defines a project and its tasks. Status refers to a status
// by name, either declared in the same file or already stored.
type ProjectImport struct {
	ShortID     string       `yaml:"short_id,omitempty"`
	Title       string       `yaml:"title"`
	Client      string       `yaml:"client,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Status      string       `yaml:"status,omitempty"`
	Priority    string       `yaml:"priority,omitempty"`
	Progress    *int         `yaml:"progress,omitempty"`
	StartDate   *string      `yaml:"start_date,omitempty"`
	Deadline    *string      `yaml:"deadline,omitempty"`
	Tasks       []TaskImport `yaml:"tasks,omitempty"`
}

// TaskImport defines a task nested under its project.
type TaskImport struct {
	Title    string  `yaml:"title"`
	Status   string  `yaml:"status,omitempty"`
	Assignee string  `yaml:"assignee,omitempty"`
	Deadline *string `yaml:"deadline,omitempty"`
}

// LoadImportFile reads and parses an import document from disk.
func LoadImportFile(path string) (*ImportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImport(data)
}

// ParseImport parses an import document. Unknown keys are rejected so that
// typos do not silently drop data.
func ParseImport(data []byte) (*ImportFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f ImportFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing import file: document is empty")
		}
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &f, nil
}
