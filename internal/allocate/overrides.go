package allocate

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// OverridesFile is the on-disk shape of the policy tables. Keys are ISO3
// codes; they are normalized to upper case on load.
type OverridesFile struct {
	Hubs     map[string]float64 `yaml:"hubs"`
	Offices  []string           `yaml:"offices"`
	NearZero []string           `yaml:"near_zero"`
}

// Overrides holds the static policy tables applied on top of indicator
// scores: financial-hub premiums, disclosed-office premiums, and
// sanctions-regime penalties. Built once at startup, never mutated.
type Overrides struct {
	hubs     map[string]float64
	offices  map[string]struct{}
	nearZero map[string]struct{}
}

// DefaultOverrides returns the compiled-in policy tables.
func DefaultOverrides() *Overrides {
	return NewOverrides(OverridesFile{
		Hubs: map[string]float64{
			"LUX": 1.8,
			"SGP": 1.6,
			"HKG": 1.6,
			"CHE": 1.5,
			"IRL": 1.4,
			"ARE": 1.4,
			"GBR": 1.3,
			"NLD": 1.2,
		},
		Offices: []string{
			"USA", "CAN", "BRA", "GBR", "DEU", "FRA", "CHE", "POL",
			"ARE", "ZAF", "JPN", "SGP", "HKG", "AUS", "IND", "CHN",
		},
		NearZero: []string{"IRN", "PRK", "CUB", "SYR", "RUS", "BLR"},
	})
}

// NewOverrides builds immutable lookup tables from a file shape.
func NewOverrides(f OverridesFile) *Overrides {
	ov := &Overrides{
		hubs:     make(map[string]float64, len(f.Hubs)),
		offices:  make(map[string]struct{}, len(f.Offices)),
		nearZero: make(map[string]struct{}, len(f.NearZero)),
	}
	for iso3, mult := range f.Hubs {
		ov.hubs[strings.ToUpper(iso3)] = mult
	}
	for _, iso3 := range f.Offices {
		ov.offices[strings.ToUpper(iso3)] = struct{}{}
	}
	for _, iso3 := range f.NearZero {
		ov.nearZero[strings.ToUpper(iso3)] = struct{}{}
	}
	return ov
}

// LoadOverrides reads policy tables from a YAML file, replacing the
// compiled-in defaults wholesale.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "allocate: read overrides %s", path)
	}

	var f OverridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "allocate: parse overrides %s", path)
	}

	return NewOverrides(f), nil
}

// HubMultiplier returns the hub premium for a country, 1.0 when absent.
func (o *Overrides) HubMultiplier(iso3 string) float64 {
	if m, ok := o.hubs[iso3]; ok {
		return m
	}
	return 1.0
}

// IsHub reports whether a country carries a hub premium.
func (o *Overrides) IsHub(iso3 string) bool {
	_, ok := o.hubs[iso3]
	return ok
}

// IsOffice reports whether a country is in the disclosed-office set.
func (o *Overrides) IsOffice(iso3 string) bool {
	_, ok := o.offices[iso3]
	return ok
}

// IsNearZero reports whether a country is in the sanctions near-zero set.
func (o *Overrides) IsNearZero(iso3 string) bool {
	_, ok := o.nearZero[iso3]
	return ok
}
