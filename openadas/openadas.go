// Package openadas locates rate datasets by species, ionisation stage and
// transition, and constructs the matching evaluators. Datasets and the
// catalogue that indexes them live as YAML snapshots under a data
// directory (by default ~/.goadas/openadas).
package openadas

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"

	"github.com/plasmadiag/goadas/adf"
	"github.com/plasmadiag/goadas/rates"
)

// isotopeElement maps hydrogen isotope symbols to their element. Dataset
// lookups are per element; the wavelength lookup tries the isotope first
// and falls back to the element.
var isotopeElement = map[string]string{
	"d": "h",
	"t": "h",
}

// dataLayout lists the dataset directories created under a fresh data
// path, one per rate family.
var dataLayout = []string{"bms", "bmp", "bme", "cxs", "pec"}

// CatalogueFile is the index document expected at the root of a data
// directory.
const CatalogueFile = "catalogue.yaml"

// Repository resolves catalogue entries to rate evaluators. It is
// immutable after construction; evaluator construction is the only I/O it
// performs.
type Repository struct {
	dataPath            string
	catalogue           *Catalogue
	permitExtrapolation bool

	// Log receives dataset load diagnostics at debug level. Evaluation
	// itself never logs.
	Log logrus.FieldLogger
}

// NewRepository wraps an in-memory catalogue. dataPath anchors the
// catalogue's relative file references. With permitExtrapolation set, the
// constructed evaluators accept queries outside their tabulated domains.
func NewRepository(dataPath string, cat *Catalogue, permitExtrapolation bool) *Repository {
	return &Repository{
		dataPath:            dataPath,
		catalogue:           cat,
		permitExtrapolation: permitExtrapolation,
		Log:                 logrus.StandardLogger(),
	}
}

// Open loads the catalogue from dataPath, creating the directory skeleton
// first if needed. An empty dataPath selects DefaultDataPath.
func Open(dataPath string, permitExtrapolation bool) (*Repository, error) {
	var err error
	if dataPath == "" {
		if dataPath, err = DefaultDataPath(); err != nil {
			return nil, err
		}
	}
	if err = EnsureLayout(dataPath); err != nil {
		return nil, err
	}
	cat, err := LoadCatalogue(filepath.Join(dataPath, CatalogueFile))
	if err != nil {
		return nil, err
	}
	return NewRepository(dataPath, cat, permitExtrapolation), nil
}

// DefaultDataPath returns ~/.goadas/openadas.
func DefaultDataPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".goadas", "openadas"), nil
}

// EnsureLayout creates the data directory skeleton and an empty catalogue
// if none exists yet.
func EnsureLayout(dataPath string) error {
	for _, sub := range dataLayout {
		if err := os.MkdirAll(filepath.Join(dataPath, sub), 0o755); err != nil {
			return err
		}
	}
	path := filepath.Join(dataPath, CatalogueFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return (&Catalogue{}).Save(path)
	}
	return nil
}

// DataPath returns the directory the catalogue's file references resolve
// against.
func (r *Repository) DataPath() string { return r.dataPath }

// Catalogue returns a deep copy of the repository's index. Mutating the
// copy does not affect the repository.
func (r *Repository) Catalogue() *Catalogue { return r.catalogue.Clone() }

// Wavelength returns the natural wavelength [nm] of an ion's transition.
// Isotopes fall back to their element when the isotope itself has no
// entry.
func (r *Repository) Wavelength(ion string, ionisation int, transition Transition) (float64, error) {
	sym := normalize(ion)
	if w, ok := r.catalogue.wavelength(sym, ionisation, transition); ok {
		return w, nil
	}
	if el, isIsotope := isotopeElement[sym]; isIsotope {
		if w, ok := r.catalogue.wavelength(el, ionisation, transition); ok {
			return w, nil
		}
	}
	return 0, &NotFoundError{
		Kind: "wavelength",
		Key:  fmt.Sprintf("(%s, %d, %s)", sym, ionisation, transition),
	}
}

// BeamStoppingRate builds the stopping evaluator for a beam ion moving
// through a plasma species of the given ionisation stage.
func (r *Repository) BeamStoppingRate(beamIon, plasmaIon string, ionisation int) (*rates.BeamStoppingRate, error) {
	var (
		beam   = element(beamIon)
		plasma = element(plasmaIon)
	)
	file, ok := r.catalogue.BeamStopping[beam][plasma][strconv.Itoa(ionisation)]
	if !ok {
		return nil, &NotFoundError{
			Kind: "beam stopping rate",
			Key:  fmt.Sprintf("(%s, %s, %d)", beam, plasma, ionisation),
		}
	}
	d, err := r.loadBeamRate("bms", file)
	if err != nil {
		return nil, err
	}
	return rates.NewBeamStoppingRate(d, r.permitExtrapolation)
}

// BeamPopulationRate builds the relative population evaluator for a beam
// metastable state.
func (r *Repository) BeamPopulationRate(beamIon string, metastable int, plasmaIon string, ionisation int) (*rates.BeamPopulationRate, error) {
	var (
		beam   = element(beamIon)
		plasma = element(plasmaIon)
	)
	file, ok := r.catalogue.BeamPopulation[beam][strconv.Itoa(metastable)][plasma][strconv.Itoa(ionisation)]
	if !ok {
		return nil, &NotFoundError{
			Kind: "beam population rate",
			Key:  fmt.Sprintf("(%s, %d, %s, %d)", beam, metastable, plasma, ionisation),
		}
	}
	d, err := r.loadBeamRate("bmp", file)
	if err != nil {
		return nil, err
	}
	return rates.NewBeamPopulationRate(d, r.permitExtrapolation)
}

// BeamEmissionRate builds the emission evaluator for a beam transition.
// The wavelength is that of the neutral beam atom.
func (r *Repository) BeamEmissionRate(beamIon, plasmaIon string, ionisation int, transition Transition) (*rates.BeamEmissionRate, error) {
	wavelength, err := r.Wavelength(beamIon, 0, transition)
	if err != nil {
		return nil, err
	}
	var (
		beam   = element(beamIon)
		plasma = element(plasmaIon)
	)
	file, ok := r.catalogue.BeamEmission[beam][plasma][strconv.Itoa(ionisation)][transition.String()]
	if !ok {
		return nil, &NotFoundError{
			Kind: "beam emission rate",
			Key:  fmt.Sprintf("(%s, %s, %d, %s)", beam, plasma, ionisation, transition),
		}
	}
	d, err := r.loadBeamRate("bme", file)
	if err != nil {
		return nil, err
	}
	return rates.NewBeamEmissionRate(d, wavelength, r.permitExtrapolation)
}

// BeamCXRate builds one effective charge-exchange evaluator per donor
// metastable state configured for the receiver's transition. The
// wavelength lookup uses the post-capture ionisation stage.
func (r *Repository) BeamCXRate(donorIon, receiverIon string, receiverIonisation int, transition Transition) ([]*rates.BeamCXRate, error) {
	wavelength, err := r.Wavelength(receiverIon, receiverIonisation-1, transition)
	if err != nil {
		return nil, err
	}
	var (
		donor    = element(donorIon)
		receiver = element(receiverIon)
	)
	entries, ok := r.catalogue.BeamCX[donor][receiver][strconv.Itoa(receiverIonisation)]
	if !ok || len(entries) == 0 {
		return nil, &NotFoundError{
			Kind: "beam cx rate",
			Key:  fmt.Sprintf("(%s, %s, %d, %s)", donor, receiver, receiverIonisation, transition),
		}
	}
	out := make([]*rates.BeamCXRate, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(r.dataPath, e.File)
		d, err := adf.LoadCXRate(path)
		if err != nil {
			return nil, err
		}
		r.Log.WithFields(logrus.Fields{
			"kind":       "cxs",
			"file":       path,
			"metastable": e.DonorMetastable,
		}).Debug(d.Describe())
		cx, err := rates.NewBeamCXRate(e.DonorMetastable, wavelength, d, r.permitExtrapolation)
		if err != nil {
			return nil, err
		}
		out = append(out, cx)
	}
	return out, nil
}

// ImpactExcitationRate builds the excitation emissivity evaluator for an
// ion's transition.
func (r *Repository) ImpactExcitationRate(ion string, ionisation int, transition Transition) (*rates.ImpactExcitationRate, error) {
	wavelength, file, err := r.pecEntry("impact excitation rate", r.catalogue.Excitation, ion, ionisation, transition)
	if err != nil {
		return nil, err
	}
	d, err := r.loadPEC(file)
	if err != nil {
		return nil, err
	}
	return rates.NewImpactExcitationRate(wavelength, d, r.permitExtrapolation)
}

// RecombinationRate builds the recombination emissivity evaluator for an
// ion's transition.
func (r *Repository) RecombinationRate(ion string, ionisation int, transition Transition) (*rates.RecombinationRate, error) {
	wavelength, file, err := r.pecEntry("recombination rate", r.catalogue.Recombination, ion, ionisation, transition)
	if err != nil {
		return nil, err
	}
	d, err := r.loadPEC(file)
	if err != nil {
		return nil, err
	}
	return rates.NewRecombinationRate(wavelength, d, r.permitExtrapolation)
}

func (r *Repository) pecEntry(kind string, table map[string]map[string]map[string]string, ion string, ionisation int, transition Transition) (float64, string, error) {
	wavelength, err := r.Wavelength(ion, ionisation, transition)
	if err != nil {
		return 0, "", err
	}
	sym := element(ion)
	file, ok := table[sym][strconv.Itoa(ionisation)][transition.String()]
	if !ok {
		return 0, "", &NotFoundError{
			Kind: kind,
			Key:  fmt.Sprintf("(%s, %d, %s)", sym, ionisation, transition),
		}
	}
	return wavelength, file, nil
}

func (r *Repository) loadBeamRate(kind, file string) (*adf.BeamRateData, error) {
	path := filepath.Join(r.dataPath, file)
	d, err := adf.LoadBeamRate(path)
	if err != nil {
		return nil, err
	}
	r.Log.WithFields(logrus.Fields{"kind": kind, "file": path}).Debug(d.Describe())
	return d, nil
}

func (r *Repository) loadPEC(file string) (*adf.PECData, error) {
	path := filepath.Join(r.dataPath, file)
	d, err := adf.LoadPEC(path)
	if err != nil {
		return nil, err
	}
	r.Log.WithFields(logrus.Fields{"kind": "pec", "file": path}).Debug(d.Describe())
	return d, nil
}

func normalize(ion string) string {
	return strings.ToLower(strings.TrimSpace(ion))
}

// element resolves an ion symbol to the element datasets are keyed by.
func element(ion string) string {
	sym := normalize(ion)
	if el, ok := isotopeElement[sym]; ok {
		return el
	}
	return sym
}
