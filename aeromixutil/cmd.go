/*
Copyright © 2021 the Aeromix authors.
This file is part of Aeromix.

Aeromix is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Aeromix is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Aeromix.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package aeromixutil holds the implementation of the aeromix command-line
// interface.
package aeromixutil

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spatialmodel/aeromix/chemdriver"
)

// Cfg holds the configuration read from the file named by the --config
// flag.
var Cfg *viper.Viper

var log logrus.FieldLogger = logrus.StandardLogger()

// Root is the main command.
var Root = &cobra.Command{
	Use:   "aeromix",
	Short: "A box model for aerosol microphysics and chemistry.",
	Long: `aeromix simulates the evolution of aerosol populations and trace
gases in batches of atmospheric columns. Configuration is specified in a
YAML file named by the --config flag.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		Cfg = viper.New()
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		if path == "" {
			return nil
		}
		Cfg.SetConfigFile(path)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("aeromix: reading configuration %s: %v", path, err)
		}
		// Command-line flags override values from the configuration file.
		return bindFlags(Cfg, cmd.Flags())
	},
}

func bindFlags(cfg *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if bindErr := cfg.BindPFlag(f.Name, f); bindErr != nil {
			err = bindErr
		}
	})
	return err
}

// chemCmd runs a batched gas-phase chemistry integration as configured.
var chemCmd = &cobra.Command{
	Use:   "chem",
	Short: "Run a batched chemistry time integration.",
	Long: `chem integrates the sulfur gas chemistry mechanism through the
configured time interval, writing one state record per batch element per
step to the configured output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := RunChem(Cfg)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"iterations": result.Iterations,
			"status":     result.Status.String(),
		}).Info("chemistry integration finished")
		if result.Status == chemdriver.StatusIterationLimit {
			return fmt.Errorf("aeromix: integration hit the iteration cap before reaching the end time")
		}
		return nil
	},
}

func init() {
	Root.PersistentFlags().String("config", "", "configuration file location")
	chemCmd.Flags().Float64("chemistry.oxidation_rate", 0,
		"first-order SO2 oxidation rate [1/s]; overrides the configuration file")
	Root.AddCommand(chemCmd)
}

// RunChem builds a solver for the sulfur chemistry mechanism from cfg and
// integrates it across the configured time interval.
func RunChem(cfg *viper.Viper) (chemdriver.RunResult, error) {
	params, driver, err := chemdriver.LoadConfig(cfg, log)
	if err != nil {
		return chemdriver.RunResult{}, err
	}

	sys := chemdriver.SulfurChemistry{
		OxidationRate: cfg.GetFloat64("chemistry.oxidation_rate"),
	}
	if sys.OxidationRate <= 0 {
		return chemdriver.RunResult{}, fmt.Errorf(
			"aeromix: chemistry.oxidation_rate must be positive; have %g", sys.OxidationRate)
	}
	kin := chemdriver.NewImplicitKinetics(sys)

	initial, err := InitialConditions(cfg, sys.SpeciesNames(), driver.NBatch)
	if err != nil {
		return chemdriver.RunResult{}, err
	}

	f, err := os.Create(params.OutputFile)
	if err != nil {
		return chemdriver.RunResult{}, fmt.Errorf("aeromix: creating output file: %v", err)
	}
	defer f.Close()

	solver, err := chemdriver.NewChemSolver(kin, sys.SpeciesNames(), params,
		driver, initial, f)
	if err != nil {
		return chemdriver.RunResult{}, err
	}
	return solver.TimeIntegrate()
}
