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

// Package chemdriver advances batches of chemical state vectors through
// time with a stiff implicit integrator. Each batch element is one
// independent simulated column or case; elements are stepped concurrently
// and never observe each other's intermediate state.
package chemdriver

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RunStatus reports how a time integration ended.
type RunStatus int

const (
	// StatusReachedTime means every batch element's time reached the
	// target end time.
	StatusReachedTime RunStatus = iota
	// StatusIterationLimit means the outer iteration cap was reached
	// with at least one batch element short of the target end time.
	StatusIterationLimit
)

func (s RunStatus) String() string {
	switch s {
	case StatusReachedTime:
		return "reached end time"
	case StatusIterationLimit:
		return "iteration limit reached"
	default:
		return fmt.Sprintf("unknown status %d", int(s))
	}
}

// A RunResult summarizes a completed time integration.
type RunResult struct {
	Status RunStatus
	// Iterations is the number of outer iterations executed.
	Iterations int
}

// ChemSolver owns the batched state of a chemistry run and drives the
// stiff-ODE kernel across it. The compute-resident state matrix, time
// vector, and step-size vector are the source of truth during stepping; the
// host mirrors exist solely for I/O and are refreshed only at the fence
// after each batched step.
type ChemSolver struct {
	params SolverParams
	cfg    DriverConfig
	kin    Kinetics
	names  []string

	nbatch   int
	stateDim int

	// Compute-resident arrays, written only by the workers, each batch
	// element to its own index.
	state *sparse.DenseArray // nbatch x stateDim
	t, dt []float64
	tadv  []TimeAdvance
	fac   [][]float64 // per-element finite-difference scale carry

	// Host mirrors, refreshed by sync after each fence.
	stateHost *sparse.DenseArray
	tHost     []float64
	dtHost    []float64

	teams int
	work  [][]float64 // per-team scratch

	out    *StateWriter
	screen io.Writer

	Log logrus.FieldLogger
}

// NewChemSolver creates a solver stepping the given kernel. initial holds
// the initial condition, one row per batch element, each row laid out as
// density, pressure, temperature, then the kernel's species concentrations.
// Per-step records are written to out.
func NewChemSolver(kin Kinetics, speciesNames []string, params SolverParams,
	cfg DriverConfig, initial *sparse.DenseArray, out io.Writer) (*ChemSolver, error) {

	if err := params.validate(); err != nil {
		return nil, err
	}
	if len(initial.Shape) != 2 {
		return nil, fmt.Errorf("chemdriver: initial condition must be a 2-d array; have %d dimensions",
			len(initial.Shape))
	}
	nbatch, stateDim := initial.Shape[0], initial.Shape[1]
	if cfg.NBatch > 0 && cfg.NBatch != nbatch {
		return nil, fmt.Errorf("chemdriver: configuration names %d batch elements but the initial condition holds %d",
			cfg.NBatch, nbatch)
	}
	if want := NumNonSpeciesFields + kin.NumEquations(); stateDim != want {
		return nil, fmt.Errorf("chemdriver: state vectors have %d entries; kernel requires %d",
			stateDim, want)
	}
	if len(speciesNames) != kin.NumEquations() {
		return nil, fmt.Errorf("chemdriver: %d species names for %d equations",
			len(speciesNames), kin.NumEquations())
	}

	teams := cfg.TeamSize
	if teams < 1 {
		teams = runtime.GOMAXPROCS(0)
	}
	if teams > nbatch {
		teams = nbatch
	}

	s := &ChemSolver{
		params:    params,
		cfg:       cfg,
		kin:       kin,
		names:     speciesNames,
		nbatch:    nbatch,
		stateDim:  stateDim,
		state:     initial.Copy(),
		t:         make([]float64, nbatch),
		dt:        make([]float64, nbatch),
		tadv:      make([]TimeAdvance, nbatch),
		fac:       make([][]float64, nbatch),
		stateHost: initial.Copy(),
		tHost:     make([]float64, nbatch),
		dtHost:    make([]float64, nbatch),
		teams:     teams,
		work:      make([][]float64, teams),
		out:       NewStateWriter(out, speciesNames),
		screen:    os.Stdout,
		Log:       logrus.StandardLogger(),
	}
	for i := range s.fac {
		s.fac[i] = make([]float64, kin.NumEquations())
	}
	for team := range s.work {
		s.work[team] = make([]float64, kin.WorkSize())
	}
	return s, nil
}

// NBatch returns the number of batch elements.
func (s *ChemSolver) NBatch() int { return s.nbatch }

// Times returns the host mirror of the per-element times. It is valid only
// between steps.
func (s *ChemSolver) Times() []float64 { return s.tHost }

// StepSizes returns the host mirror of the per-element step sizes. It is
// valid only between steps.
func (s *ChemSolver) StepSizes() []float64 { return s.dtHost }

// State returns the host mirror of the state matrix. It is valid only
// between steps.
func (s *ChemSolver) State() *sparse.DenseArray { return s.stateHost }

// syncToHost refreshes the host mirrors from the compute-resident arrays.
// It must only be called after step has returned, when no worker is
// writing.
func (s *ChemSolver) syncToHost() {
	copy(s.tHost, s.t)
	copy(s.dtHost, s.dt)
	copy(s.stateHost.Elements, s.state.Elements)
}

// step runs one batched step of the kernel: every element advances
// independently, and step returns only when all workers have finished, so
// callers never observe a partially updated batch.
func (s *ChemSolver) step() error {
	var eg errgroup.Group
	for team := 0; team < s.teams; team++ {
		team := team
		eg.Go(func() error {
			work := s.work[team]
			tolNewton := Tolerance{Atol: s.params.AtolNewton, Rtol: s.params.RtolNewton}
			tolTime := Tolerance{Atol: s.params.AtolTime, Rtol: s.params.TolTime}
			for i := team; i < s.nbatch; i += s.teams {
				row := s.state.Elements[i*s.stateDim : (i+1)*s.stateDim]
				s.t[i], s.dt[i] = s.kin.StepElement(work, s.fac[i],
					tolNewton, tolTime, s.tadv[i], row, s.t[i], s.dt[i])
			}
			return nil
		})
	}
	return eg.Wait()
}

// TimeIntegrate advances the batch across the configured time interval.
func (s *ChemSolver) TimeIntegrate() (RunResult, error) {
	return s.TimeIntegrateBetween(s.params.TBegin, s.params.TEnd)
}

// TimeIntegrateBetween advances the batch from tBegin to tEnd, overriding
// the configured time bounds. It writes a header, the initial condition
// with iteration index -1, and one record per batch element per outer
// iteration, and reports whether every element reached the end time or the
// iteration cap cut the run short.
func (s *ChemSolver) TimeIntegrateBetween(tBegin, tEnd float64) (RunResult, error) {
	for i := 0; i < s.nbatch; i++ {
		s.t[i] = tBegin
		s.dt[i] = s.params.DtMin
		s.tadv[i] = TimeAdvance{
			TBegin:                       tBegin,
			TEnd:                         tEnd,
			Dt:                           s.params.DtMin,
			DtMin:                        s.params.DtMin,
			DtMax:                        s.params.DtMax,
			MaxNewtonIterations:          s.params.MaxNewtonIterations,
			NumTimeIterationsPerInterval: s.params.NumTimeIterationsPerInterval,
			JacobianInterval:             s.params.JacobianInterval,
		}
		for j := range s.fac[i] {
			s.fac[i][j] = 0
		}
	}
	s.syncToHost()

	if err := s.out.WriteHeader(); err != nil {
		return RunResult{}, err
	}
	if err := s.out.WriteState(-1, s.tHost, s.dtHost, s.stateHost); err != nil {
		return RunResult{}, err
	}

	iter := 0
	for ; iter < s.params.MaxTimeIterations && !s.allReached(tEnd); iter++ {
		if err := s.step(); err != nil {
			return RunResult{Iterations: iter}, err
		}
		s.syncToHost()

		if s.cfg.PrintQoI {
			printQoI(s.screen, s.tadv[0], s.tHost[0],
				s.stateHost.Elements[0:s.stateDim])
		}
		if err := s.out.WriteState(iter, s.tHost, s.dtHost, s.stateHost); err != nil {
			return RunResult{Iterations: iter}, err
		}

		// Carry this step's ending time and step size into the next
		// step's descriptors.
		for i := 0; i < s.nbatch; i++ {
			s.tadv[i].TBegin = s.t[i]
			s.tadv[i].Dt = s.dt[i]
		}
	}

	result := RunResult{Status: StatusIterationLimit, Iterations: iter}
	if s.allReached(tEnd) {
		result.Status = StatusReachedTime
	}
	if s.cfg.Verbose {
		s.Log.WithFields(logrus.Fields{
			"iterations": result.Iterations,
			"status":     result.Status.String(),
		}).Info("chemdriver: time integration finished")
	}
	return result, nil
}

// allReached reports whether every batch element's time has reached
// 99.99% of tEnd. The factor guards against floating-point overshoot at
// exact equality.
func (s *ChemSolver) allReached(tEnd float64) bool {
	for i := 0; i < s.nbatch; i++ {
		if s.t[i] < tEnd*0.9999 {
			return false
		}
	}
	return true
}
