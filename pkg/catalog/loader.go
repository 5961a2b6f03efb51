// Package catalog provides access to the component reference data used
// by the suggestion and sweep engines. The default catalog is embedded
// in the binary and parsed lazily; tests and deployments with their own
// part libraries can construct a Catalog from slices or a YAML file.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/voltlab/powerbench/pkg/components"
)

//go:embed catalog.yaml
var catalogRawData []byte

// catalogFile is the top-level structure of the catalog YAML.
type catalogFile struct {
	MOSFETs    []components.MOSFET    `yaml:"mosfets"`
	Capacitors []components.Capacitor `yaml:"capacitors"`
	Inductors  []components.Inductor  `yaml:"inductors"`
}

// Catalog provides read-only access to the three component libraries.
// Entries keep their source order; the suggestion engine relies on that
// order for tie-breaking.
type Catalog struct {
	once sync.Once
	raw  []byte

	mosfets    []components.MOSFET
	capacitors []components.Capacitor
	inductors  []components.Inductor
	err        error
}

// NewCatalog creates a Catalog that parses the embedded YAML on first access.
func NewCatalog() *Catalog {
	return &Catalog{raw: catalogRawData}
}

// Load reads a catalog from a YAML file on disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}
	c := &Catalog{raw: data}
	if _, err := c.MOSFETs(); err != nil {
		return nil, err
	}
	return c, nil
}

// New builds a Catalog from in-memory slices. Used by tests to
// substitute synthetic part libraries.
func New(ms []components.MOSFET, cs []components.Capacitor, is []components.Inductor) *Catalog {
	c := &Catalog{}
	c.once.Do(func() {})
	c.mosfets = ms
	c.capacitors = cs
	c.inductors = is
	return c
}

// MOSFETs returns a copy of the MOSFET library in catalog order.
func (c *Catalog) MOSFETs() ([]components.MOSFET, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]components.MOSFET, len(c.mosfets))
	copy(cp, c.mosfets)
	return cp, nil
}

// Capacitors returns a copy of the capacitor library in catalog order.
func (c *Catalog) Capacitors() ([]components.Capacitor, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]components.Capacitor, len(c.capacitors))
	copy(cp, c.capacitors)
	return cp, nil
}

// Inductors returns a copy of the inductor library in catalog order.
func (c *Catalog) Inductors() ([]components.Inductor, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]components.Inductor, len(c.inductors))
	copy(cp, c.inductors)
	return cp, nil
}

// FindMOSFET returns the MOSFET with the given part number.
func (c *Catalog) FindMOSFET(partNumber string) (components.MOSFET, bool) {
	c.once.Do(c.load)
	for i := range c.mosfets {
		if c.mosfets[i].PartNumber == partNumber {
			return c.mosfets[i], true
		}
	}
	return components.MOSFET{}, false
}

// FindCapacitor returns the capacitor with the given part number.
func (c *Catalog) FindCapacitor(partNumber string) (components.Capacitor, bool) {
	c.once.Do(c.load)
	for i := range c.capacitors {
		if c.capacitors[i].PartNumber == partNumber {
			return c.capacitors[i], true
		}
	}
	return components.Capacitor{}, false
}

// FindInductor returns the inductor with the given part number.
func (c *Catalog) FindInductor(partNumber string) (components.Inductor, bool) {
	c.once.Do(c.load)
	for i := range c.inductors {
		if c.inductors[i].PartNumber == partNumber {
			return c.inductors[i], true
		}
	}
	return components.Inductor{}, false
}

// load parses the raw YAML catalog data.
func (c *Catalog) load() {
	var f catalogFile
	if err := yaml.Unmarshal(c.raw, &f); err != nil {
		c.err = fmt.Errorf("catalog: parse yaml: %w", err)
		return
	}
	c.mosfets = f.MOSFETs
	c.capacitors = f.Capacitors
	c.inductors = f.Inductors
}
