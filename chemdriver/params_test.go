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
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func configFrom(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	cfg := viper.New()
	cfg.SetConfigType("yaml")
	if err := cfg.ReadConfig(bytes.NewBufferString(yaml)); err != nil {
		t.Fatal(err)
	}
	return cfg
}

const fullConfig = `
solver_parameters:
  dtmin: 1.0e-8
  dtmax: 1.0e-1
  tbeg: 0
  tend: 2
  num_time_iterations_per_interval: 10
  max_time_iterations: 500
  max_newton_iterations: 50
  atol_newton: 1.0e-10
  rtol_newton: 1.0e-6
  atol_time: 1.0e-12
  tol_time: 1.0e-4
  jacobian_interval: 2
  outputfile: out.dat
driver:
  nbatch: 4
  verbose: true
  team_size: 2
  vector_size: -1
  print_qoi: false
`

func TestLoadConfig(t *testing.T) {
	params, driver, err := LoadConfig(configFrom(t, fullConfig), nil)
	if err != nil {
		t.Fatal(err)
	}
	if params.TEnd != 2 {
		t.Errorf("tend: have %g, want 2", params.TEnd)
	}
	if params.MaxTimeIterations != 500 {
		t.Errorf("max_time_iterations: have %d, want 500", params.MaxTimeIterations)
	}
	if params.JacobianInterval != 2 {
		t.Errorf("jacobian_interval: have %d, want 2", params.JacobianInterval)
	}
	if params.OutputFile != "out.dat" {
		t.Errorf("outputfile: have %q, want out.dat", params.OutputFile)
	}
	if driver.NBatch != 4 || !driver.Verbose || driver.TeamSize != 2 {
		t.Errorf("unexpected driver configuration: %+v", driver)
	}
}

// Absent sections fall back to the documented defaults.
func TestLoadConfigDefaults(t *testing.T) {
	params, driver, err := LoadConfig(configFrom(t, "other_section:\n  a: 1\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultSolverParams()
	if params != want {
		t.Errorf("solver parameters: have %+v, want %+v", params, want)
	}
	if driver != DefaultDriverConfig() {
		t.Errorf("driver configuration: have %+v, want %+v", driver, DefaultDriverConfig())
	}
}

// A present section missing a required key must fail and name the key.
func TestLoadConfigMissingKey(t *testing.T) {
	incomplete := strings.Replace(fullConfig, "  tol_time: 1.0e-4\n", "", 1)
	_, _, err := LoadConfig(configFrom(t, incomplete), nil)
	if err == nil {
		t.Fatal("expected an error for a missing required key")
	}
	if !strings.Contains(err.Error(), "tol_time") {
		t.Errorf("error %q does not name the missing key", err)
	}

	incomplete = strings.Replace(fullConfig, "  nbatch: 4\n", "", 1)
	_, _, err = LoadConfig(configFrom(t, incomplete), nil)
	if err == nil {
		t.Fatal("expected an error for a missing driver key")
	}
	if !strings.Contains(err.Error(), "nbatch") {
		t.Errorf("error %q does not name the missing key", err)
	}
}

func TestSolverParamsValidation(t *testing.T) {
	bad := DefaultSolverParams()
	bad.DtMin = 0
	if err := bad.validate(); err == nil {
		t.Error("expected an error for dtmin = 0")
	}

	bad = DefaultSolverParams()
	bad.DtMax = bad.DtMin / 2
	if err := bad.validate(); err == nil {
		t.Error("expected an error for dtmax < dtmin")
	}

	bad = DefaultSolverParams()
	bad.TEnd = bad.TBegin - 1
	if err := bad.validate(); err == nil {
		t.Error("expected an error for tend before tbeg")
	}
}
