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
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goadas",
	Short: "Atomic rate coefficients for plasma spectroscopy",
	Long: `
Evaluates effective atomic rate coefficients (beam stopping, beam population,
beam emission, charge exchange and electron impact excitation/recombination)
from tabulated datasets, for active and passive plasma diagnostics.

goadas eval stopping --beam d --plasma h --ionisation 1 -E 55 -n 5.5e24 -T 5.5`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.goadas.yaml)")
	rootCmd.PersistentFlags().String("data", "", "rate data directory (default is $HOME/.goadas/openadas)")
	rootCmd.PersistentFlags().Bool("extrapolate", false, "permit evaluation outside the tabulated domains")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	viper.BindPFlag("extrapolate", rootCmd.PersistentFlags().Lookup("extrapolate"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".goadas" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".goadas")
	}

	viper.SetEnvPrefix("goadas")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
	logrus.SetLevel(logLevel(viper.GetBool("verbose")))
}

// logLevel maps the verbose flag onto the logging level: warnings only by
// default, everything with --verbose.
func logLevel(verbose bool) logrus.Level {
	if verbose {
		return logrus.DebugLevel
	}
	return logrus.WarnLevel
}

func fail(err error) {
	fmt.Printf("error: %s\n", err)
	os.Exit(1)
}
