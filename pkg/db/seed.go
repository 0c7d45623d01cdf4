package db

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

//go:embed seed/catalog.yaml
var defaultCatalog []byte

// Catalog is the seed data for all four stores
type Catalog struct {
	Emergencies []model.Emergency `yaml:"emergencies"`
	NGOs        []model.NGO       `yaml:"ngos"`
	Volunteers  []model.Volunteer `yaml:"volunteers"`
	Resources   []model.Resource  `yaml:"resources"`
}

// LoadCatalog parses the embedded demo catalog
func LoadCatalog() (*Catalog, error) {
	return parseCatalog(defaultCatalog, "embedded catalog")
}

// LoadCatalogFile parses a catalog from a YAML file
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parseCatalog(data, path)
}

// catalogNGO is an NGO entry that may still carry the older form's single category
type catalogNGO struct {
	model.NGO `yaml:",inline"`
	Category  string `yaml:"category,omitempty"`
}

// catalogFile is the on-disk catalog layout
type catalogFile struct {
	Emergencies []model.Emergency `yaml:"emergencies"`
	NGOs        []catalogNGO      `yaml:"ngos"`
	Volunteers  []model.Volunteer `yaml:"volunteers"`
	Resources   []model.Resource  `yaml:"resources"`
}

func parseCatalog(data []byte, source string) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}

	c := &Catalog{
		Emergencies: f.Emergencies,
		Volunteers:  f.Volunteers,
		Resources:   f.Resources,
	}
	for _, n := range f.NGOs {
		c.NGOs = append(c.NGOs, n.canonical())
	}
	c.canonicalize()
	return c, nil
}

// canonical folds a legacy category into the specializations. A category with no
// specialization counterpart is kept as written so it shows up as unknown.
func (n catalogNGO) canonical() model.NGO {
	ngo := n.NGO
	if strings.TrimSpace(n.Category) == "" {
		return ngo
	}
	spec, ok := model.LegacyNGOCategory(n.Category)
	if !ok {
		spec = model.Specialization(strings.ToLower(strings.TrimSpace(n.Category)))
	}
	if !slices.Contains(ngo.Specializations, spec) {
		ngo.Specializations = append(ngo.Specializations, spec)
	}
	return ngo
}

// canonicalize maps legacy vocabulary found in hand-edited catalogs
func (c *Catalog) canonicalize() {
	for i := range c.Emergencies {
		e := &c.Emergencies[i]
		e.Category = model.ParseEmergencyCategory(string(e.Category))
	}
	for i := range c.Volunteers {
		v := &c.Volunteers[i]
		v.Availability = model.ParseAvailability(string(v.Availability))
		v.ExperienceLevel = model.ParseExperienceLevel(string(v.ExperienceLevel))
	}
}

// Stores groups the four record stores the application works with
type Stores struct {
	Emergencies *MemoryStore[model.Emergency, *model.Emergency]
	NGOs        *MemoryStore[model.NGO, *model.NGO]
	Volunteers  *MemoryStore[model.Volunteer, *model.Volunteer]
	Resources   *MemoryStore[model.Resource, *model.Resource]
}

// NewStores builds one store per record kind seeded from catalog.
// A nil catalog gives empty stores.
func NewStores(catalog *Catalog, opts ...Option) *Stores {
	if catalog == nil {
		catalog = &Catalog{}
	}
	with := func(kind model.Kind) []Option {
		return append([]Option{withKind(kind)}, opts...)
	}
	return &Stores{
		Emergencies: NewMemoryStore[model.Emergency, *model.Emergency](catalog.Emergencies, with(model.KindEmergency)...),
		NGOs:        NewMemoryStore[model.NGO, *model.NGO](catalog.NGOs, with(model.KindNGO)...),
		Volunteers:  NewMemoryStore[model.Volunteer, *model.Volunteer](catalog.Volunteers, with(model.KindVolunteer)...),
		Resources:   NewMemoryStore[model.Resource, *model.Resource](catalog.Resources, with(model.KindResource)...),
	}
}

// Reset restores every store to its seed data
func (s *Stores) Reset() {
	s.Emergencies.Reset()
	s.NGOs.Reset()
	s.Volunteers.Reset()
	s.Resources.Reset()
}
