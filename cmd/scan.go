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
	"errors"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/plasmadiag/goadas/interp"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan KIND",
	Short: "Sweep a rate coefficient along one axis and chart it",
	Long: `
Sweeps one coordinate of a rate coefficient while holding the others fixed,
and charts the resulting curve. Points the tables cannot cover are skipped
and counted unless --extrapolate is set.

goadas scan stopping --beam d --plasma h -n 5.5e24 -T 5.5 \
	--axis energy --from 20 --to 90 --points 60`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		spec := specFromFlags(cmd, args)
		base := pointFromFlags(cmd)
		axis, _ := cmd.Flags().GetString("axis")
		from, _ := cmd.Flags().GetFloat64("from")
		to, _ := cmd.Flags().GetFloat64("to")
		n, _ := cmd.Flags().GetInt("points")
		prof, _ := cmd.Flags().GetString("profile")

		if err := base.set(axis, from); err != nil {
			fail(err)
		}
		if n < 2 {
			fail(fmt.Errorf("need at least 2 points, got %d", n))
		}
		ss, err := buildSeries(spec)
		if err != nil {
			fail(err)
		}

		switch prof {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			fail(fmt.Errorf("unknown profile mode %q: want cpu or mem", prof))
		}

		xs := make([]float64, n)
		floats.Span(xs, from, to)
		for _, s := range ss {
			values, skipped, err := sweep(s.Eval, base, axis, xs)
			if err != nil {
				fail(err)
			}
			if len(values) == 0 {
				fmt.Printf("%s: all %d points outside the tabulated domain\n", s.Label, n)
				continue
			}
			fmt.Println(asciigraph.Plot(values,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("%s over %s [%g, %g]", s.Label, axis, from, to))))
			fmt.Printf("min = %g, max = %g", s.Unit(floats.Min(values)), s.Unit(floats.Max(values)))
			if skipped > 0 {
				fmt.Printf(", %d points outside the tabulated domain", skipped)
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rateFlags(scanCmd)
	scanCmd.Flags().String("axis", "energy", "coordinate to sweep: energy, density, temperature, zeff or bfield")
	scanCmd.Flags().Float64("from", 0, "first value of the swept coordinate")
	scanCmd.Flags().Float64("to", 0, "last value of the swept coordinate")
	scanCmd.Flags().IntP("points", "N", 50, "number of points in the sweep")
	scanCmd.Flags().String("profile", "", "write a cpu or mem profile of the sweep")
}

// sweep evaluates one series along the axis. Points outside the tabulated
// domain are skipped and counted rather than aborting the sweep.
func sweep(eval func(point) (float64, error), base point, axis string, xs []float64) (values []float64, skipped int, err error) {
	for _, x := range xs {
		p := base
		if err = p.set(axis, x); err != nil {
			return nil, 0, err
		}
		v, err := eval(p)
		if err != nil {
			var de *interp.DomainError
			if errors.As(err, &de) {
				skipped++
				continue
			}
			return nil, 0, err
		}
		values = append(values, v)
	}
	return values, skipped, nil
}
