// Package catalog exposes the human-readable descriptions behind the
// PopimarTag and PurposeTag closed enumerations, for the CLI's "catalog"
// subcommand and for documentation generation. Both enumerations are
// closed sets that only change with a schema revision, so the data files
// are embedded rather than read from disk at deploy time.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/popimar.yaml data/purpose.yaml
var dataFS embed.FS

// Entry is one tag's catalog record.
type Entry struct {
	Tag         string `yaml:"tag"`
	Description string `yaml:"description"`
}

type popimarFile struct {
	Categories []Entry `yaml:"categories"`
}

type purposeFile struct {
	Tags []Entry `yaml:"tags"`
}

// Catalog holds both enumerations plus a combined by-tag lookup index.
type Catalog struct {
	Popimar []Entry
	Purpose []Entry
	ByTag   map[string]Entry
}

// Load parses the embedded YAML data files into a Catalog. It never
// touches the filesystem, so it cannot fail at runtime from a missing
// deploy artifact — the only error path is a corrupt embedded file, which
// would be caught at build time by any test that calls Load.
func Load() (*Catalog, error) {
	cat := &Catalog{ByTag: map[string]Entry{}}

	popData, err := dataFS.ReadFile("data/popimar.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded popimar catalog: %w", err)
	}
	var pf popimarFile
	if err := yaml.Unmarshal(popData, &pf); err != nil {
		return nil, fmt.Errorf("parsing embedded popimar catalog: %w", err)
	}
	cat.Popimar = pf.Categories
	for _, e := range pf.Categories {
		cat.ByTag[e.Tag] = e
	}

	purData, err := dataFS.ReadFile("data/purpose.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded purpose catalog: %w", err)
	}
	var puf purposeFile
	if err := yaml.Unmarshal(purData, &puf); err != nil {
		return nil, fmt.Errorf("parsing embedded purpose catalog: %w", err)
	}
	cat.Purpose = puf.Tags
	for _, e := range puf.Tags {
		cat.ByTag[e.Tag] = e
	}

	return cat, nil
}

// Describe returns the description for a known tag and true, or "", false
// for an unrecognized tag.
func (c *Catalog) Describe(tag string) (string, bool) {
	e, ok := c.ByTag[tag]
	return e.Description, ok
}
