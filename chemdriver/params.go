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

package chemdriver

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// SolverParams holds the time-stepping and Newton-iteration controls for a
// run. It is immutable after loading.
type SolverParams struct {
	// TBegin and TEnd bound the simulated time interval [s].
	TBegin, TEnd float64

	// DtMin and DtMax bound the adaptive step size [s].
	DtMin, DtMax float64

	// NumTimeIterationsPerInterval is the number of internal sub-steps
	// each batched step attempts per outer iteration.
	NumTimeIterationsPerInterval int

	// MaxTimeIterations caps the outer stepping loop.
	MaxTimeIterations int

	// MaxNewtonIterations caps the inner implicit solve.
	MaxNewtonIterations int

	// AtolNewton and RtolNewton are the Newton convergence tolerances.
	AtolNewton, RtolNewton float64

	// AtolTime and TolTime are the absolute and relative local error
	// tolerances of the adaptive step-size control, applied per unknown.
	AtolTime, TolTime float64

	// JacobianInterval is the number of sub-steps that may reuse a
	// factored Jacobian before it is recomputed.
	JacobianInterval int

	// OutputFile is the path the per-step state records are written to.
	OutputFile string
}

// DriverConfig holds batch-execution parameters for a ChemSolver.
type DriverConfig struct {
	// NBatch is the number of independent batch elements.
	NBatch int

	// Verbose enables informational logging.
	Verbose bool

	// TeamSize is the number of workers stepping the batch; values < 1
	// let the solver choose.
	TeamSize int

	// VectorSize is an advisory per-worker blocking width; values < 1
	// let the solver choose.
	VectorSize int

	// PrintQoI prints a per-step state summary to the screen.
	PrintQoI bool
}

// DefaultSolverParams returns the solver parameters used when the
// configuration has no solver_parameters section.
func DefaultSolverParams() SolverParams {
	return SolverParams{
		TBegin:                       0,
		TEnd:                         1,
		DtMin:                        1e-8,
		DtMax:                        1e-1,
		NumTimeIterationsPerInterval: 10,
		MaxTimeIterations:            1e3,
		MaxNewtonIterations:          100,
		AtolNewton:                   1e-10,
		RtolNewton:                   1e-6,
		AtolTime:                     1e-12,
		TolTime:                      1e-4,
		JacobianInterval:             1,
		OutputFile:                   "chem.dat",
	}
}

// DefaultDriverConfig returns the batch-execution parameters used when the
// configuration has no driver section.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		NBatch:     1,
		Verbose:    false,
		TeamSize:   -1,
		VectorSize: -1,
		PrintQoI:   false,
	}
}

// solverParamKeys are the keys a solver_parameters section must define.
// A section that is present but incomplete is a configuration error.
var solverParamKeys = []string{
	"dtmin",
	"dtmax",
	"tbeg",
	"tend",
	"num_time_iterations_per_interval",
	"max_time_iterations",
	"max_newton_iterations",
	"atol_newton",
	"rtol_newton",
	"atol_time",
	"tol_time",
	"jacobian_interval",
	"outputfile",
}

var driverKeys = []string{
	"nbatch",
	"verbose",
	"team_size",
	"vector_size",
	"print_qoi",
}

// LoadConfig reads solver parameters and driver configuration from cfg.
// A configuration with no solver_parameters or driver section falls back to
// the package defaults for that section; a present section missing any of
// its required keys is an error naming the key.
func LoadConfig(cfg *viper.Viper, log logrus.FieldLogger) (SolverParams, DriverConfig, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	params := DefaultSolverParams()
	driver := DefaultDriverConfig()

	if cfg.IsSet("solver_parameters") {
		for _, key := range solverParamKeys {
			if !cfg.IsSet("solver_parameters." + key) {
				return params, driver, fmt.Errorf(
					"chemdriver: solver_parameters is missing required key %q", key)
			}
		}
		get := func(key string) float64 {
			return cast.ToFloat64(cfg.Get("solver_parameters." + key))
		}
		params.DtMin = get("dtmin")
		params.DtMax = get("dtmax")
		params.TBegin = get("tbeg")
		params.TEnd = get("tend")
		params.NumTimeIterationsPerInterval = int(get("num_time_iterations_per_interval"))
		params.MaxTimeIterations = int(get("max_time_iterations"))
		params.MaxNewtonIterations = int(get("max_newton_iterations"))
		params.AtolNewton = get("atol_newton")
		params.RtolNewton = get("rtol_newton")
		params.AtolTime = get("atol_time")
		params.TolTime = get("tol_time")
		params.JacobianInterval = int(get("jacobian_interval"))
		params.OutputFile = cast.ToString(cfg.Get("solver_parameters.outputfile"))
	} else {
		log.Info("chemdriver: no solver_parameters section found; using defaults")
	}

	if cfg.IsSet("driver") {
		for _, key := range driverKeys {
			if !cfg.IsSet("driver." + key) {
				return params, driver, fmt.Errorf(
					"chemdriver: driver is missing required key %q", key)
			}
		}
		driver.NBatch = cast.ToInt(cfg.Get("driver.nbatch"))
		driver.Verbose = cast.ToBool(cfg.Get("driver.verbose"))
		driver.TeamSize = cast.ToInt(cfg.Get("driver.team_size"))
		driver.VectorSize = cast.ToInt(cfg.Get("driver.vector_size"))
		driver.PrintQoI = cast.ToBool(cfg.Get("driver.print_qoi"))
	} else {
		log.Info("chemdriver: no driver section found; using defaults")
	}

	if err := params.validate(); err != nil {
		return params, driver, err
	}
	if driver.NBatch < 1 {
		return params, driver, fmt.Errorf("chemdriver: nbatch must be at least 1; have %d", driver.NBatch)
	}
	return params, driver, nil
}

func (p SolverParams) validate() error {
	if p.DtMin <= 0 || p.DtMax < p.DtMin {
		return fmt.Errorf("chemdriver: step bounds must satisfy 0 < dtmin <= dtmax; have [%g, %g]",
			p.DtMin, p.DtMax)
	}
	if p.TEnd < p.TBegin {
		return fmt.Errorf("chemdriver: tend %g is before tbeg %g", p.TEnd, p.TBegin)
	}
	if p.MaxTimeIterations < 1 || p.MaxNewtonIterations < 1 ||
		p.NumTimeIterationsPerInterval < 1 {
		return fmt.Errorf("chemdriver: iteration caps must be at least 1")
	}
	if p.JacobianInterval < 1 {
		return fmt.Errorf("chemdriver: jacobian_interval must be at least 1; have %d",
			p.JacobianInterval)
	}
	return nil
}
