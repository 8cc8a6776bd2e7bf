// Package taxfile reads taxonomy listing files: a name plus category
// paths written as "Root > Child > Leaf" strings.
package taxfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/internalerr"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/taxonomy"
)

// Taxonomy is one loaded taxonomy listing.
type Taxonomy struct {
	Name  string
	Paths []*taxonomy.Path
}

type file struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths"`
}

// Load reads a taxonomy listing from a YAML file.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a taxonomy listing. Blank path entries are rejected; a
// listing without any paths is invalid.
func Parse(data []byte) (*Taxonomy, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Paths) == 0 {
		return nil, fmt.Errorf("%w: taxonomy file lists no paths", internalerr.ErrInvalidInput)
	}

	tax := &Taxonomy{Name: f.Name, Paths: make([]*taxonomy.Path, 0, len(f.Paths))}
	for i, line := range f.Paths {
		p, err := ParsePath(line)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		tax.Paths = append(tax.Paths, p)
	}
	return tax, nil
}

// ParsePath parses one "Root > Child > Leaf" line into a path. Label
// whitespace is trimmed; empty labels are invalid.
func ParsePath(line string) (*taxonomy.Path, error) {
	parts := strings.Split(line, ">")
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		label := strings.TrimSpace(part)
		if label == "" {
			return nil, fmt.Errorf("%w: empty label in %q", internalerr.ErrInvalidInput, line)
		}
		labels = append(labels, label)
	}
	return taxonomy.NewPath(labels...), nil
}
