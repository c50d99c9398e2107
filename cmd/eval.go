/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/ctessum/unit"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plasmadiag/goadas/adf"
	"github.com/plasmadiag/goadas/openadas"
	"github.com/plasmadiag/goadas/rates"
	"github.com/plasmadiag/goadas/units"
)

// point is one plasma condition a rate gets evaluated at. Rate kinds pick
// the coordinates they need and ignore the rest.
type point struct {
	Energy      float64 // interaction energy [eV/amu]
	Density     float64 // species density [m^-3]
	Temperature float64 // temperature [eV]
	Zeff        float64 // plasma effective charge
	Bfield      float64 // magnetic field magnitude [T]
}

func (p *point) set(axis string, v float64) error {
	switch axis {
	case "energy":
		p.Energy = v
	case "density":
		p.Density = v
	case "temperature":
		p.Temperature = v
	case "zeff":
		p.Zeff = v
	case "bfield":
		p.Bfield = v
	default:
		return fmt.Errorf("unknown axis %q: want energy, density, temperature, zeff or bfield", axis)
	}
	return nil
}

// series is one rate curve: an evaluator over plasma points plus the
// dimension its values carry.
type series struct {
	Label string
	Eval  func(p point) (float64, error)
	Unit  func(v float64) *unit.Unit
}

// rateSpec identifies which rate to build, either from a dataset snapshot
// (File) or by a repository lookup.
type rateSpec struct {
	Kind       string
	File       string
	Wavelength float64
	Metastable int
	Beam       string
	Plasma     string
	Donor      string
	Receiver   string
	Ion        string
	Ionisation int
	Transition string
}

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval KIND",
	Short: "Evaluate a rate coefficient at one plasma point",
	Long: `
Evaluates one atomic rate coefficient at a single plasma point, either from a
dataset snapshot (--file) or from the local rate data repository.

Kinds: stopping, population, emission, cx, excitation, recombination

goadas eval stopping --beam d --plasma h --ionisation 1 -E 55 -n 5.5e24 -T 5.5
goadas eval cx --donor d --receiver c --ionisation 6 --transition "8->7" \
	-E 55 -T 2 -n 1e19 -z 1.2 -b 2.5`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		spec := specFromFlags(cmd, args)
		pt := pointFromFlags(cmd)
		ss, err := buildSeries(spec)
		if err != nil {
			fail(err)
		}
		fmt.Printf("E = %g eV/amu, n = %g m^-3, T = %g eV, Zeff = %g, B = %g T\n",
			pt.Energy, pt.Density, pt.Temperature, pt.Zeff, pt.Bfield)
		for _, s := range ss {
			v, err := s.Eval(pt)
			if err != nil {
				fail(err)
			}
			fmt.Printf("%s = %g\n", s.Label, s.Unit(v))
		}
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	rateFlags(evalCmd)
}

// rateFlags registers the flags shared by every command that builds a rate
// evaluator.
func rateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "dataset snapshot to evaluate instead of a repository lookup")
	cmd.Flags().Float64P("wavelength", "w", 0, "transition wavelength [nm], required with --file for emission, cx, excitation and recombination")
	cmd.Flags().IntP("metastable", "m", 1, "beam donor metastable state")
	cmd.Flags().String("beam", "d", "beam species")
	cmd.Flags().String("plasma", "h", "plasma species")
	cmd.Flags().String("donor", "d", "cx donor species")
	cmd.Flags().String("receiver", "c", "cx receiver species")
	cmd.Flags().String("ion", "c", "emitting ion species for excitation and recombination")
	cmd.Flags().IntP("ionisation", "i", 1, "ionisation stage")
	cmd.Flags().StringP("transition", "t", "", "transition, e.g. 8->7")
	cmd.Flags().Float64P("energy", "E", 0, "interaction energy [eV/amu]")
	cmd.Flags().Float64P("density", "n", 0, "species density [m^-3]")
	cmd.Flags().Float64P("temperature", "T", 0, "temperature [eV]")
	cmd.Flags().Float64P("zeff", "z", 1, "plasma effective charge")
	cmd.Flags().Float64P("bfield", "b", 2, "magnetic field magnitude [T]")
}

func specFromFlags(cmd *cobra.Command, args []string) (s rateSpec) {
	s.Kind = strings.ToLower(args[0])
	s.File, _ = cmd.Flags().GetString("file")
	s.Wavelength, _ = cmd.Flags().GetFloat64("wavelength")
	s.Metastable, _ = cmd.Flags().GetInt("metastable")
	s.Beam, _ = cmd.Flags().GetString("beam")
	s.Plasma, _ = cmd.Flags().GetString("plasma")
	s.Donor, _ = cmd.Flags().GetString("donor")
	s.Receiver, _ = cmd.Flags().GetString("receiver")
	s.Ion, _ = cmd.Flags().GetString("ion")
	s.Ionisation, _ = cmd.Flags().GetInt("ionisation")
	s.Transition, _ = cmd.Flags().GetString("transition")
	return
}

func pointFromFlags(cmd *cobra.Command) (p point) {
	p.Energy, _ = cmd.Flags().GetFloat64("energy")
	p.Density, _ = cmd.Flags().GetFloat64("density")
	p.Temperature, _ = cmd.Flags().GetFloat64("temperature")
	p.Zeff, _ = cmd.Flags().GetFloat64("zeff")
	p.Bfield, _ = cmd.Flags().GetFloat64("bfield")
	return
}

func buildSeries(s rateSpec) ([]series, error) {
	if s.File != "" {
		return fileSeries(s)
	}
	return repoSeries(s)
}

// fileSeries builds evaluators straight from a dataset snapshot, bypassing
// the catalogue.
func fileSeries(s rateSpec) ([]series, error) {
	extrapolate := viper.GetBool("extrapolate")
	switch s.Kind {
	case "stopping":
		d, err := adf.LoadBeamRate(s.File)
		if err != nil {
			return nil, err
		}
		rc, err := rates.NewBeamStoppingRate(d, extrapolate)
		if err != nil {
			return nil, err
		}
		return []series{stoppingSeries(rc)}, nil
	case "population":
		d, err := adf.LoadBeamRate(s.File)
		if err != nil {
			return nil, err
		}
		rc, err := rates.NewBeamPopulationRate(d, extrapolate)
		if err != nil {
			return nil, err
		}
		return []series{populationSeries(rc)}, nil
	case "emission":
		d, err := adf.LoadBeamRate(s.File)
		if err != nil {
			return nil, err
		}
		rc, err := rates.NewBeamEmissionRate(d, s.Wavelength, extrapolate)
		if err != nil {
			return nil, err
		}
		return []series{emissionSeries(rc)}, nil
	case "cx":
		d, err := adf.LoadCXRate(s.File)
		if err != nil {
			return nil, err
		}
		rc, err := rates.NewBeamCXRate(s.Metastable, s.Wavelength, d, extrapolate)
		if err != nil {
			return nil, err
		}
		return []series{cxSeries(rc)}, nil
	case "excitation":
		d, err := adf.LoadPEC(s.File)
		if err != nil {
			return nil, err
		}
		rc, err := rates.NewImpactExcitationRate(s.Wavelength, d, extrapolate)
		if err != nil {
			return nil, err
		}
		return []series{pecSeries("impact excitation rate", rc.Evaluate)}, nil
	case "recombination":
		d, err := adf.LoadPEC(s.File)
		if err != nil {
			return nil, err
		}
		rc, err := rates.NewRecombinationRate(s.Wavelength, d, extrapolate)
		if err != nil {
			return nil, err
		}
		return []series{pecSeries("recombination rate", rc.Evaluate)}, nil
	}
	return nil, unknownKind(s.Kind)
}

// repoSeries resolves the rate through the data repository's catalogue.
func repoSeries(s rateSpec) ([]series, error) {
	r, err := openadas.Open(viper.GetString("data"), viper.GetBool("extrapolate"))
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case "stopping":
		rc, err := r.BeamStoppingRate(s.Beam, s.Plasma, s.Ionisation)
		if err != nil {
			return nil, err
		}
		return []series{stoppingSeries(rc)}, nil
	case "population":
		rc, err := r.BeamPopulationRate(s.Beam, s.Metastable, s.Plasma, s.Ionisation)
		if err != nil {
			return nil, err
		}
		return []series{populationSeries(rc)}, nil
	case "emission":
		tr, err := openadas.ParseTransition(s.Transition)
		if err != nil {
			return nil, err
		}
		rc, err := r.BeamEmissionRate(s.Beam, s.Plasma, s.Ionisation, tr)
		if err != nil {
			return nil, err
		}
		return []series{emissionSeries(rc)}, nil
	case "cx":
		tr, err := openadas.ParseTransition(s.Transition)
		if err != nil {
			return nil, err
		}
		rcs, err := r.BeamCXRate(s.Donor, s.Receiver, s.Ionisation, tr)
		if err != nil {
			return nil, err
		}
		out := make([]series, len(rcs))
		for i, rc := range rcs {
			out[i] = cxSeries(rc)
		}
		return out, nil
	case "excitation":
		tr, err := openadas.ParseTransition(s.Transition)
		if err != nil {
			return nil, err
		}
		rc, err := r.ImpactExcitationRate(s.Ion, s.Ionisation, tr)
		if err != nil {
			return nil, err
		}
		return []series{pecSeries("impact excitation rate", rc.Evaluate)}, nil
	case "recombination":
		tr, err := openadas.ParseTransition(s.Transition)
		if err != nil {
			return nil, err
		}
		rc, err := r.RecombinationRate(s.Ion, s.Ionisation, tr)
		if err != nil {
			return nil, err
		}
		return []series{pecSeries("recombination rate", rc.Evaluate)}, nil
	}
	return nil, unknownKind(s.Kind)
}

func unknownKind(kind string) error {
	return fmt.Errorf("unknown rate kind %q: want stopping, population, emission, cx, excitation or recombination", kind)
}

func stoppingSeries(rc *rates.BeamStoppingRate) series {
	return series{
		Label: "beam stopping rate",
		Eval: func(p point) (float64, error) {
			return rc.Evaluate(p.Energy, p.Density, p.Temperature)
		},
		Unit: units.Stopping,
	}
}

func populationSeries(rc *rates.BeamPopulationRate) series {
	return series{
		Label: "beam population rate",
		Eval: func(p point) (float64, error) {
			return rc.Evaluate(p.Energy, p.Density, p.Temperature)
		},
		Unit: units.Population,
	}
}

func emissionSeries(rc *rates.BeamEmissionRate) series {
	return series{
		Label: fmt.Sprintf("beam emission rate (%g nm)", rc.Wavelength()),
		Eval: func(p point) (float64, error) {
			return rc.Evaluate(p.Energy, p.Density, p.Temperature)
		},
		Unit: units.EmissionPower,
	}
}

func cxSeries(rc *rates.BeamCXRate) series {
	return series{
		Label: fmt.Sprintf("beam cx rate (metastable %d, %g nm)", rc.DonorMetastable(), rc.Wavelength()),
		Eval: func(p point) (float64, error) {
			return rc.Evaluate(p.Energy, p.Temperature, p.Density, p.Zeff, p.Bfield)
		},
		Unit: units.EmissionPower,
	}
}

func pecSeries(label string, eval func(density, temperature float64) (float64, error)) series {
	return series{
		Label: label,
		Eval: func(p point) (float64, error) {
			return eval(p.Density, p.Temperature)
		},
		Unit: units.EmissionPower,
	}
}
