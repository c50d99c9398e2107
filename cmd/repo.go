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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plasmadiag/goadas/openadas"
)

// repoCmd represents the repo command
var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Inspect and initialise the local rate data directory",
}

var repoInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarise the catalogue of the data directory",
	Run: func(cmd *cobra.Command, args []string) {
		r, err := openadas.Open(viper.GetString("data"), viper.GetBool("extrapolate"))
		if err != nil {
			fail(err)
		}
		s := r.Catalogue().Stats()
		fmt.Printf("%s\t= data path\n", r.DataPath())
		fmt.Printf("%8d\t= wavelength entries\n", s.Wavelengths)
		fmt.Printf("%8d\t= beam stopping datasets\n", s.BeamStopping)
		fmt.Printf("%8d\t= beam population datasets\n", s.BeamPopulation)
		fmt.Printf("%8d\t= beam emission datasets\n", s.BeamEmission)
		fmt.Printf("%8d\t= beam cx datasets\n", s.BeamCX)
		fmt.Printf("%8d\t= impact excitation datasets\n", s.Excitation)
		fmt.Printf("%8d\t= recombination datasets\n", s.Recombination)
	},
}

var repoInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory skeleton and an empty catalogue",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			path = viper.GetString("data")
			err  error
		)
		if path == "" {
			if path, err = openadas.DefaultDataPath(); err != nil {
				fail(err)
			}
		}
		if err = openadas.EnsureLayout(path); err != nil {
			fail(err)
		}
		fmt.Println("initialised", path)
	},
}

func init() {
	rootCmd.AddCommand(repoCmd)
	repoCmd.AddCommand(repoInfoCmd, repoInitCmd)
}
