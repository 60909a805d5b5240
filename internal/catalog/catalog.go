// Package catalog holds the detailing services offered on the site.
// The list ships with the binary as YAML and is read-only at runtime.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"muciocar/internal/domain"
)

//go:embed services.yaml
var defaultYAML []byte

type Catalog struct {
	services []domain.Service
	byID     map[string]int
}

// Load parses a YAML list of services. Ids must be present and unique.
func Load(r io.Reader) (*Catalog, error) {
	var list []domain.Service
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&list); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := &Catalog{services: list, byID: make(map[string]int, len(list))}
	for i, s := range list {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", id)
		}
		c.byID[id] = i
	}
	return c, nil
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) All() []domain.Service {
	out := make([]domain.Service, len(c.services))
	copy(out, c.services)
	return out
}

func (c *Catalog) Get(id string) (domain.Service, bool) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.Service{}, false
	}
	return c.services[i], true
}
