package openadas

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
)

// Transition identifies an atomic transition by its upper and lower
// principal quantum numbers.
type Transition struct {
	Upper int `json:"upper"`
	Lower int `json:"lower"`
}

func (t Transition) String() string {
	return fmt.Sprintf("%d->%d", t.Upper, t.Lower)
}

// ParseTransition parses the "upper->lower" form used by catalogue keys,
// e.g. "8->7".
func ParseTransition(s string) (Transition, error) {
	parts := strings.Split(s, "->")
	if len(parts) != 2 {
		return Transition{}, fmt.Errorf("openadas: transition %q is not of the form upper->lower", s)
	}
	u, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Transition{}, fmt.Errorf("openadas: transition %q: %w", s, err)
	}
	l, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Transition{}, fmt.Errorf("openadas: transition %q: %w", s, err)
	}
	t := Transition{Upper: u, Lower: l}
	if l < 1 || u <= l {
		return Transition{}, fmt.Errorf("openadas: transition %s: upper level must exceed lower level >= 1", t)
	}
	return t, nil
}

// NotFoundError reports a species/ionisation/transition combination with
// no catalogue entry.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("openadas: no %s entry for %s", e.Kind, e.Key)
}

// CXEntry points at one charge-exchange dataset of a donor metastable
// state.
type CXEntry struct {
	DonorMetastable int    `json:"metastable"`
	File            string `json:"file"`
}

// Catalogue maps species, ionisation stages and transitions onto dataset
// snapshots under the repository data directory. Ionisation stages appear
// as decimal string keys and transitions as "upper->lower" keys, so the
// document stays plain YAML.
//
// A catalogue is treated as immutable once loaded.
type Catalogue struct {
	// ion -> ionisation -> transition -> wavelength [nm]
	Wavelengths map[string]map[string]map[string]float64 `json:"wavelengths"`
	// beam ion -> plasma ion -> ionisation -> file
	BeamStopping map[string]map[string]map[string]string `json:"bms"`
	// beam ion -> metastable -> plasma ion -> ionisation -> file
	BeamPopulation map[string]map[string]map[string]map[string]string `json:"bmp"`
	// beam ion -> plasma ion -> ionisation -> transition -> file
	BeamEmission map[string]map[string]map[string]map[string]string `json:"bme"`
	// donor ion -> receiver ion -> ionisation -> datasets per metastable
	BeamCX map[string]map[string]map[string][]CXEntry `json:"cxs"`
	// ion -> ionisation -> transition -> file
	Excitation map[string]map[string]map[string]string `json:"excitation"`
	// ion -> ionisation -> transition -> file
	Recombination map[string]map[string]map[string]string `json:"recombination"`
}

// LoadCatalogue reads a catalogue document.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Catalogue{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%s: decoding catalogue: %w", path, err)
	}
	return c, nil
}

// Save writes the catalogue as YAML.
func (c *Catalogue) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("openadas: encoding catalogue: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Clone returns a deep copy. Repository accessors hand out clones, so
// callers may modify them without touching the repository's index.
func (c *Catalogue) Clone() *Catalogue {
	return &Catalogue{
		Wavelengths:    cloneWavelengths(c.Wavelengths),
		BeamStopping:   cloneFiles(c.BeamStopping),
		BeamPopulation: cloneNestedFiles(c.BeamPopulation),
		BeamEmission:   cloneNestedFiles(c.BeamEmission),
		BeamCX:         cloneCXEntries(c.BeamCX),
		Excitation:     cloneFiles(c.Excitation),
		Recombination:  cloneFiles(c.Recombination),
	}
}

func cloneWavelengths(m map[string]map[string]map[string]float64) map[string]map[string]map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]map[string]map[string]float64, len(m))
	for ion, byIonisation := range m {
		o1 := make(map[string]map[string]float64, len(byIonisation))
		for stage, byTransition := range byIonisation {
			o2 := make(map[string]float64, len(byTransition))
			for tr, w := range byTransition {
				o2[tr] = w
			}
			o1[stage] = o2
		}
		out[ion] = o1
	}
	return out
}

func cloneFiles(m map[string]map[string]map[string]string) map[string]map[string]map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]map[string]map[string]string, len(m))
	for k1, m1 := range m {
		o1 := make(map[string]map[string]string, len(m1))
		for k2, m2 := range m1 {
			o2 := make(map[string]string, len(m2))
			for k3, file := range m2 {
				o2[k3] = file
			}
			o1[k2] = o2
		}
		out[k1] = o1
	}
	return out
}

func cloneNestedFiles(m map[string]map[string]map[string]map[string]string) map[string]map[string]map[string]map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]map[string]map[string]map[string]string, len(m))
	for k, m1 := range m {
		out[k] = cloneFiles(m1)
	}
	return out
}

func cloneCXEntries(m map[string]map[string]map[string][]CXEntry) map[string]map[string]map[string][]CXEntry {
	if m == nil {
		return nil
	}
	out := make(map[string]map[string]map[string][]CXEntry, len(m))
	for donor, byReceiver := range m {
		o1 := make(map[string]map[string][]CXEntry, len(byReceiver))
		for receiver, byIonisation := range byReceiver {
			o2 := make(map[string][]CXEntry, len(byIonisation))
			for stage, entries := range byIonisation {
				o2[stage] = append([]CXEntry(nil), entries...)
			}
			o1[receiver] = o2
		}
		out[donor] = o1
	}
	return out
}

func (c *Catalogue) wavelength(ion string, ionisation int, t Transition) (float64, bool) {
	w, ok := c.Wavelengths[ion][strconv.Itoa(ionisation)][t.String()]
	return w, ok
}

// Stats counts catalogue leaves per rate kind.
type Stats struct {
	Wavelengths    int
	BeamStopping   int
	BeamPopulation int
	BeamEmission   int
	BeamCX         int
	Excitation     int
	Recombination  int
}

func (c *Catalogue) Stats() Stats {
	var s Stats
	for _, byIonisation := range c.Wavelengths {
		for _, byTransition := range byIonisation {
			s.Wavelengths += len(byTransition)
		}
	}
	for _, byPlasma := range c.BeamStopping {
		for _, byIonisation := range byPlasma {
			s.BeamStopping += len(byIonisation)
		}
	}
	for _, byMetastable := range c.BeamPopulation {
		for _, byPlasma := range byMetastable {
			for _, byIonisation := range byPlasma {
				s.BeamPopulation += len(byIonisation)
			}
		}
	}
	for _, byPlasma := range c.BeamEmission {
		for _, byIonisation := range byPlasma {
			for _, byTransition := range byIonisation {
				s.BeamEmission += len(byTransition)
			}
		}
	}
	for _, byReceiver := range c.BeamCX {
		for _, byIonisation := range byReceiver {
			for _, entries := range byIonisation {
				s.BeamCX += len(entries)
			}
		}
	}
	for _, byIonisation := range c.Excitation {
		for _, byTransition := range byIonisation {
			s.Excitation += len(byTransition)
		}
	}
	for _, byIonisation := range c.Recombination {
		for _, byTransition := range byIonisation {
			s.Recombination += len(byTransition)
		}
	}
	return s
}
