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
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/sparse"
)

const testTolerance = 1e-3

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance && math.Abs(a-b) > tolerance {
		return true
	}
	return false
}

// initialState builds an nbatch-element initial condition with the given
// per-element SO2 concentrations and no H2SO4.
func initialState(so2 []float64) *sparse.DenseArray {
	state := sparse.ZerosDense(len(so2), NumNonSpeciesFields+2)
	for i, c := range so2 {
		state.Set(1.2, i, stateDensity)
		state.Set(101325, i, statePressure)
		state.Set(288, i, stateTemperature)
		state.Set(c, i, NumNonSpeciesFields+igSO2)
	}
	return state
}

func testParams() SolverParams {
	p := DefaultSolverParams()
	p.DtMin = 1e-6
	p.DtMax = 1e-2
	return p
}

func newTestSolver(t *testing.T, params SolverParams, cfg DriverConfig,
	so2 []float64, out *bytes.Buffer) *ChemSolver {
	t.Helper()
	kin := NewImplicitKinetics(SulfurChemistry{OxidationRate: 1})
	s, err := NewChemSolver(kin, sulfurSpecies, params, cfg, initialState(so2), out)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// The integrated SO2 concentration must decay exponentially: a linear
// regression of log(c) against time recovers the oxidation rate constant.
func TestSulfurDecayRate(t *testing.T) {
	var out bytes.Buffer
	s := newTestSolver(t, testParams(), DefaultDriverConfig(), []float64{1.0}, &out)

	var times, logConc []float64
	result, err := s.TimeIntegrateBetween(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != StatusReachedTime {
		t.Fatalf("run status: have %v, want %v", result.Status, StatusReachedTime)
	}

	for _, line := range dataLines(out.String()) {
		fields := strings.Fields(line)
		time, _ := strconv.ParseFloat(fields[1], 64)
		// iter, t, dt, then the state vector.
		so2, _ := strconv.ParseFloat(fields[3+NumNonSpeciesFields+igSO2], 64)
		if so2 <= 0 || time == 0 {
			continue
		}
		times = append(times, time)
		logConc = append(logConc, math.Log(so2))
	}
	if len(times) < 3 {
		t.Fatalf("only %d usable output records", len(times))
	}
	slope, _, rsquared, _, _, _ := stats.LinearRegression(times, logConc)
	if different(slope, -1, 1e-2) {
		t.Errorf("decay rate: have %g, want -1", slope)
	}
	if rsquared < 0.999 {
		t.Errorf("decay is not exponential: r² = %g", rsquared)
	}

	// Mass moves from SO2 to H2SO4 in the molar mass ratio.
	finalSO2 := s.State().Get(0, NumNonSpeciesFields+igSO2)
	finalH2SO4 := s.State().Get(0, NumNonSpeciesFields+igH2SO4)
	if different(finalH2SO4, (1-finalSO2)*SO2ToH2SO4, testTolerance) {
		t.Errorf("sulfur not conserved: SO2 %g, H2SO4 %g", finalSO2, finalH2SO4)
	}
}

// Permuting the batch-element order permutes the results and changes
// nothing else: elements are independent.
func TestBatchPermutation(t *testing.T) {
	so2 := []float64{0.5, 1.0, 2.0, 4.0}
	permuted := []float64{4.0, 0.5, 2.0, 1.0}

	run := func(init []float64) *ChemSolver {
		var out bytes.Buffer
		s := newTestSolver(t, testParams(), DefaultDriverConfig(), init, &out)
		if _, err := s.TimeIntegrateBetween(0, 0.1); err != nil {
			t.Fatal(err)
		}
		return s
	}
	a := run(so2)
	b := run(permuted)

	find := func(s *ChemSolver, c0 float64, init []float64) (float64, float64, float64) {
		for i, c := range init {
			if c == c0 {
				return s.State().Get(i, NumNonSpeciesFields+igSO2),
					s.Times()[i], s.StepSizes()[i]
			}
		}
		t.Fatalf("initial concentration %g not found", c0)
		return 0, 0, 0
	}
	for _, c0 := range so2 {
		sa, ta, dta := find(a, c0, so2)
		sb, tb, dtb := find(b, c0, permuted)
		if sa != sb || ta != tb || dta != dtb {
			t.Errorf("element with c0=%g: (%g, %g, %g) != (%g, %g, %g)",
				c0, sa, ta, dta, sb, tb, dtb)
		}
	}
}

// Every step size written during a run must lie within [dtmin, dtmax].
func TestStepSizeBounds(t *testing.T) {
	params := testParams()
	var out bytes.Buffer
	s := newTestSolver(t, params, DefaultDriverConfig(), []float64{1.0, 3.0}, &out)
	if _, err := s.TimeIntegrateBetween(0, 0.5); err != nil {
		t.Fatal(err)
	}

	for _, line := range dataLines(out.String()) {
		fields := strings.Fields(line)
		dt, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			t.Fatal(err)
		}
		if dt < params.DtMin || dt > params.DtMax {
			t.Errorf("step size %g outside [%g, %g]", dt, params.DtMin, params.DtMax)
		}
	}
}

func TestTermination(t *testing.T) {
	// A generous iteration cap reaches the end time.
	params := testParams()
	var out bytes.Buffer
	s := newTestSolver(t, params, DefaultDriverConfig(), []float64{1.0}, &out)
	result, err := s.TimeIntegrateBetween(0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != StatusReachedTime {
		t.Errorf("status: have %v, want %v", result.Status, StatusReachedTime)
	}
	for i, time := range s.Times() {
		if time < 0.1*0.9999 {
			t.Errorf("element %d stopped at t=%g before the end time", i, time)
		}
	}

	// A tiny cap stops early and reports it.
	params.MaxTimeIterations = 2
	out.Reset()
	s = newTestSolver(t, params, DefaultDriverConfig(), []float64{1.0}, &out)
	result, err = s.TimeIntegrateBetween(0, 1e6)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != StatusIterationLimit {
		t.Errorf("status: have %v, want %v", result.Status, StatusIterationLimit)
	}
	if result.Iterations != 2 {
		t.Errorf("iterations: have %d, want 2", result.Iterations)
	}
}

// A single-batch run writes header + initial condition + one line per
// executed iteration, and the first data line carries the sentinel index -1.
func TestOutputLineCount(t *testing.T) {
	params := DefaultSolverParams()
	var out bytes.Buffer
	s := newTestSolver(t, params, DefaultDriverConfig(), []float64{1.0}, &out)
	result, err := s.TimeIntegrateBetween(0, 1)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if want := result.Iterations + 2; len(lines) != want {
		t.Errorf("output lines: have %d, want %d", len(lines), want)
	}
	firstData := strings.Fields(lines[1])
	if firstData[0] != "-1" {
		t.Errorf("first data line iteration index: have %s, want -1", firstData[0])
	}
	header := strings.Fields(lines[0])
	wantHeader := []string{"iter", "t", "dt", "Density[kg/m3]",
		"Pressure[Pascal]", "Temperature[K]", "SO2", "H2SO4"}
	for i, w := range wantHeader {
		if header[i] != w {
			t.Errorf("header field %d: have %q, want %q", i, header[i], w)
		}
	}
}

func TestSolverRejectsMismatchedShapes(t *testing.T) {
	kin := NewImplicitKinetics(SulfurChemistry{OxidationRate: 1})
	var out bytes.Buffer

	bad := sparse.ZerosDense(1, NumNonSpeciesFields+5)
	if _, err := NewChemSolver(kin, sulfurSpecies, testParams(),
		DefaultDriverConfig(), bad, &out); err == nil {
		t.Error("expected an error for a state vector the kernel cannot step")
	}

	cfg := DefaultDriverConfig()
	cfg.NBatch = 3
	if _, err := NewChemSolver(kin, sulfurSpecies, testParams(), cfg,
		initialState([]float64{1}), &out); err == nil {
		t.Error("expected an error for an nbatch/initial-condition mismatch")
	}
}

// dataLines returns the non-header lines of a run's output, skipping the
// initial-condition record.
func dataLines(output string) []string {
	var lines []string
	for i, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Fields(line)[0] == "-1" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
