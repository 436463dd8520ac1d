package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// BoardMatch maps a device-tree model string fragment to a chip.
type BoardMatch struct {
	Model  string `yaml:"model"`
	ChipID string `yaml:"chip_id"`
}

// DeviceMatch maps an Android platform property triple to a chip.
type DeviceMatch struct {
	Manufacturer string `yaml:"manufacturer"`
	Model        string `yaml:"model"`
	Device       string `yaml:"device"`
	ChipID       string `yaml:"chip_id"`
}

// FragmentMatch maps a chip-family numeric fragment to a chip.
type FragmentMatch struct {
	Fragment string `yaml:"fragment"`
	ChipID   string `yaml:"chip_id"`
}

// Catalog is the static chip and firmware knowledge base. All match
// tables preserve declaration order, which is part of the lookup
// contract (first match wins).
type Catalog struct {
	Chips     []ChipProfile   `yaml:"chips"`
	Boards    []BoardMatch    `yaml:"boards"`
	Devices   []DeviceMatch   `yaml:"devices"`
	Fragments []FragmentMatch `yaml:"fragments"`

	byChipID map[string]*ChipProfile
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
	defaultCatalogErr  error
)

// Default returns the catalog embedded in the binary. The catalog is
// parsed once; subsequent calls return the same instance.
func Default() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = Parse(catalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// MustDefault returns the embedded catalog or panics. The embedded data
// is validated by tests, so a parse failure is a build defect.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes and validates catalog data.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c.byChipID = make(map[string]*ChipProfile, len(c.Chips))
	for i := range c.Chips {
		p := &c.Chips[i]
		if err := ValidateChipID(p.ChipID); err != nil {
			return nil, fmt.Errorf("catalog chip %d: %w", i, err)
		}
		if _, dup := c.byChipID[p.ChipID]; dup {
			return nil, fmt.Errorf("catalog chip %q declared twice", p.ChipID)
		}
		c.byChipID[p.ChipID] = p
	}

	for _, tbl := range []struct {
		kind string
		ids  []string
	}{
		{"board", boardChipIDs(c.Boards)},
		{"device", deviceChipIDs(c.Devices)},
		{"fragment", fragmentChipIDs(c.Fragments)},
	} {
		for _, id := range tbl.ids {
			if _, ok := c.byChipID[id]; !ok {
				return nil, fmt.Errorf("catalog %s table references unknown chip %q", tbl.kind, id)
			}
		}
	}

	return &c, nil
}

func boardChipIDs(bs []BoardMatch) []string {
	ids := make([]string, len(bs))
	for i, b := range bs {
		ids[i] = b.ChipID
	}
	return ids
}

func deviceChipIDs(ds []DeviceMatch) []string {
	ids := make([]string, len(ds))
	for i, d := range ds {
		ids[i] = d.ChipID
	}
	return ids
}

func fragmentChipIDs(fs []FragmentMatch) []string {
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.ChipID
	}
	return ids
}

// ByChipID looks up a profile by canonical chip id.
func (c *Catalog) ByChipID(chipID string) (*ChipProfile, bool) {
	p, ok := c.byChipID[chipID]
	return p, ok
}

// ByBoardModel matches a device-tree model string against the board
// table. Matching is by substring, in table order, so more specific
// entries must be declared first.
func (c *Catalog) ByBoardModel(model string) (*ChipProfile, bool) {
	for _, b := range c.Boards {
		if strings.Contains(model, b.Model) {
			return c.byChipID[b.ChipID], true
		}
	}
	return nil, false
}

// ByDeviceTriple matches an Android manufacturer/model/device triple
// against the device table. All three fields must match exactly
// (case-insensitive).
func (c *Catalog) ByDeviceTriple(manufacturer, model, device string) (*ChipProfile, bool) {
	for _, d := range c.Devices {
		if strings.EqualFold(d.Manufacturer, manufacturer) &&
			strings.EqualFold(d.Model, model) &&
			strings.EqualFold(d.Device, device) {
			return c.byChipID[d.ChipID], true
		}
	}
	return nil, false
}

// ByFragment scans text for chip-family numeric fragments and returns
// the profile for the first (longest) fragment found.
func (c *Catalog) ByFragment(text string) (*ChipProfile, bool) {
	for _, f := range c.fragmentsLongestFirst() {
		if strings.Contains(text, f.Fragment) {
			return c.byChipID[f.ChipID], true
		}
	}
	return nil, false
}

// FragmentsLongestFirst returns the fragment table ordered by fragment
// length descending, declaration order as tiebreak, so that "43455"
// cannot be shadowed by a shorter fragment it contains.
func (c *Catalog) fragmentsLongestFirst() []FragmentMatch {
	fs := make([]FragmentMatch, len(c.Fragments))
	copy(fs, c.Fragments)
	sort.SliceStable(fs, func(i, j int) bool {
		return len(fs[i].Fragment) > len(fs[j].Fragment)
	})
	return fs
}

// ChipIDs returns all catalog chip ids in declaration order.
func (c *Catalog) ChipIDs() []string {
	ids := make([]string, len(c.Chips))
	for i := range c.Chips {
		ids[i] = c.Chips[i].ChipID
	}
	return ids
}
