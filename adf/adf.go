// Package adf defines the tabulated atomic datasets the rate evaluators
// are built from, mirroring the content of the ADAS ADF12/ADF15/ADF21/ADF22
// formats. Datasets are plain records decoded from YAML snapshots and
// validated once, up front; evaluator constructors reject anything that
// fails Validate.
//
// Axis and table values keep the units of the source data (densities in
// cm^-3, rate coefficients in cm^3/s or photons cm^3/s). Conversion to SI
// happens inside the evaluator constructors, never here.
package adf

import (
	"fmt"
	"math"
	"os"

	"github.com/ghodss/yaml"
)

// SchemaError reports a structurally invalid dataset field: a missing or
// empty table, a non-monotonic axis, a shape mismatch, a non-finite entry,
// or a zero reference value. It is raised at load/validate time only;
// evaluation never produces one.
type SchemaError struct {
	Key    string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("adf: %s: %s", e.Key, e.Reason)
}

func schemaErrf(key, format string, args ...interface{}) *SchemaError {
	return &SchemaError{Key: key, Reason: fmt.Sprintf(format, args...)}
}

// BeamRateData is the beam-type dataset shared by stopping, population and
// emission coefficients (ADF21/ADF22 content). SV spans the (EB, DT) grid
// at the reference temperature; SVT spans TT at the reference energy and
// density; SVRef normalises SVT into a dimensionless temperature
// correction.
type BeamRateData struct {
	EB    []float64   `json:"eb"`    // beam energy axis [eV/amu]
	DT    []float64   `json:"dt"`    // target density axis [cm^-3]
	TT    []float64   `json:"tt"`    // target temperature axis [eV]
	SV    [][]float64 `json:"sv"`    // coefficient on (EB, DT), kind-specific units
	SVT   []float64   `json:"svt"`   // coefficient on TT at the reference point
	SVRef float64     `json:"svref"` // reference coefficient, non-zero
}

// Validate checks axis monotonicity, table alignment, finiteness and the
// reference value.
func (d *BeamRateData) Validate() error {
	if err := checkAxis("EB", d.EB); err != nil {
		return err
	}
	if err := checkAxis("DT", d.DT); err != nil {
		return err
	}
	if err := checkAxis("TT", d.TT); err != nil {
		return err
	}
	if err := checkTable("SV", len(d.EB), len(d.DT), d.SV); err != nil {
		return err
	}
	if err := checkAligned("SVT", "TT", len(d.TT), d.SVT); err != nil {
		return err
	}
	return checkRef("SVREF", d.SVRef)
}

// Parse decodes a YAML snapshot into d and validates it.
func (d *BeamRateData) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, d); err != nil {
		return fmt.Errorf("adf: decoding beam rate data: %w", err)
	}
	return d.Validate()
}

// Describe summarises the table shape in one line, for load diagnostics.
func (d *BeamRateData) Describe() string {
	return fmt.Sprintf("beam rate table %dx%d (EB x DT), %d TT knots, SVREF=%g",
		len(d.EB), len(d.DT), len(d.TT), d.SVRef)
}

// CXRateData is the effective charge-exchange dataset (ADF12 content): a
// primary energy dependence plus one correction table per plasma
// parameter, each normalised by QefRef during evaluator construction.
type CXRateData struct {
	Ener  []float64 `json:"ener"`  // collision energy axis [eV/amu]
	Tiev  []float64 `json:"tiev"`  // ion temperature axis [eV]
	Densi []float64 `json:"densi"` // receiver ion density axis [cm^-3]
	Zeff  []float64 `json:"zeff"`  // effective charge axis [dimensionless]
	Bmag  []float64 `json:"bmag"`  // magnetic field axis [T]

	QefRef float64 `json:"qefref"` // reference effective rate [photons cm^3/s]

	QEner  []float64 `json:"qener"`  // rate vs Ener [photons cm^3/s]
	QTiev  []float64 `json:"qtiev"`  // rate vs Tiev [photons cm^3/s]
	QDensi []float64 `json:"qdensi"` // rate vs Densi [photons cm^3/s]
	QZeff  []float64 `json:"qzeff"`  // rate vs Zeff [photons cm^3/s]
	QBmag  []float64 `json:"qbmag"`  // rate vs Bmag [photons cm^3/s]
}

func (d *CXRateData) Validate() error {
	axes := []struct {
		key  string
		axis []float64
		qkey string
		q    []float64
	}{
		{"ENER", d.Ener, "QENER", d.QEner},
		{"TIEV", d.Tiev, "QTIEV", d.QTiev},
		{"DENSI", d.Densi, "QDENSI", d.QDensi},
		{"ZEFF", d.Zeff, "QZEFF", d.QZeff},
		{"BMAG", d.Bmag, "QBMAG", d.QBmag},
	}
	for _, a := range axes {
		if err := checkAxis(a.key, a.axis); err != nil {
			return err
		}
		if err := checkAligned(a.qkey, a.key, len(a.axis), a.q); err != nil {
			return err
		}
	}
	return checkRef("QEFREF", d.QefRef)
}

func (d *CXRateData) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, d); err != nil {
		return fmt.Errorf("adf: decoding cx rate data: %w", err)
	}
	return d.Validate()
}

// Describe summarises the table shapes in one line, for load diagnostics.
func (d *CXRateData) Describe() string {
	return fmt.Sprintf("cx rate tables %d/%d/%d/%d/%d (ENER/TIEV/DENSI/ZEFF/BMAG), QEFREF=%g",
		len(d.Ener), len(d.Tiev), len(d.Densi), len(d.Zeff), len(d.Bmag), d.QefRef)
}

// PECData is a photon emissivity coefficient dataset (ADF15 content) on an
// (electron density, electron temperature) grid.
type PECData struct {
	Ne  []float64   `json:"ne"`  // electron density axis [cm^-3]
	Te  []float64   `json:"te"`  // electron temperature axis [eV]
	PEC [][]float64 `json:"pec"` // emissivity on (Ne, Te) [photons cm^3/s]
}

func (d *PECData) Validate() error {
	if err := checkAxis("NE", d.Ne); err != nil {
		return err
	}
	if err := checkAxis("TE", d.Te); err != nil {
		return err
	}
	return checkTable("PEC", len(d.Ne), len(d.Te), d.PEC)
}

func (d *PECData) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, d); err != nil {
		return fmt.Errorf("adf: decoding pec data: %w", err)
	}
	return d.Validate()
}

// Describe summarises the table shape in one line, for load diagnostics.
func (d *PECData) Describe() string {
	return fmt.Sprintf("pec table %dx%d (NE x TE)", len(d.Ne), len(d.Te))
}

// LoadBeamRate reads and validates a beam-type YAML snapshot.
func LoadBeamRate(path string) (*BeamRateData, error) {
	d := &BeamRateData{}
	if err := load(path, d.Parse); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadCXRate reads and validates a charge-exchange YAML snapshot.
func LoadCXRate(path string) (*CXRateData, error) {
	d := &CXRateData{}
	if err := load(path, d.Parse); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadPEC reads and validates a photon emissivity YAML snapshot.
func LoadPEC(path string) (*PECData, error) {
	d := &PECData{}
	if err := load(path, d.Parse); err != nil {
		return nil, err
	}
	return d, nil
}

func load(path string, parse func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := parse(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Save validates d and writes it as a YAML snapshot.
func (d *BeamRateData) Save(path string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return save(path, d)
}

func (d *CXRateData) Save(path string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return save(path, d)
}

func (d *PECData) Save(path string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return save(path, d)
}

func save(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("adf: encoding %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkAxis(key string, x []float64) error {
	if len(x) == 0 {
		return schemaErrf(key, "axis is missing or empty")
	}
	for i, v := range x {
		if !finite(v) {
			return schemaErrf(key, "entry %d is %v", i, v)
		}
		if i > 0 && v <= x[i-1] {
			return schemaErrf(key, "not strictly increasing at entry %d (%g after %g)", i, v, x[i-1])
		}
	}
	return nil
}

func checkAligned(key, axisKey string, n int, v []float64) error {
	if len(v) != n {
		return schemaErrf(key, "has %d entries, axis %s has %d", len(v), axisKey, n)
	}
	for i, e := range v {
		if !finite(e) {
			return schemaErrf(key, "entry %d is %v", i, e)
		}
	}
	return nil
}

func checkTable(key string, rows, cols int, tab [][]float64) error {
	if len(tab) != rows {
		return schemaErrf(key, "has %d rows, expected %d", len(tab), rows)
	}
	for i, row := range tab {
		if len(row) != cols {
			return schemaErrf(key, "row %d has %d entries, expected %d", i, len(row), cols)
		}
		for j, e := range row {
			if !finite(e) {
				return schemaErrf(key, "entry [%d][%d] is %v", i, j, e)
			}
		}
	}
	return nil
}

func checkRef(key string, v float64) error {
	if v == 0 {
		return schemaErrf(key, "reference value is zero")
	}
	if !finite(v) {
		return schemaErrf(key, "reference value is %v", v)
	}
	return nil
}
