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
	"math"

	"gonum.org/v1/gonum/mat"
)

// The state vector layout: density, pressure, and temperature precede the
// species concentrations.
const (
	stateDensity     = 0
	statePressure    = 1
	stateTemperature = 2
	// NumNonSpeciesFields is the number of state-vector entries ahead of
	// the species concentrations.
	NumNonSpeciesFields = 3
)

// A ReactionSystem supplies the chemistry integrated by ImplicitKinetics:
// the species it evolves and their net production rates.
type ReactionSystem interface {
	// SpeciesNames returns the species names in state-vector order.
	SpeciesNames() []string

	// Rates writes the net production rate of each species
	// [concentration/s] for the given concentrations, density [kg/m³],
	// pressure [Pa], and temperature [K]. rates has the same length
	// as conc. It must be safe to call concurrently.
	Rates(rates, conc []float64, density, pressure, temperature float64)
}

// A TimeAdvance is the per-batch-element stepping descriptor. The driver
// overwrites TBegin and Dt after every batched step with the step's ending
// time and step size, carrying the integrator state between iterations.
type TimeAdvance struct {
	TBegin, TEnd                 float64
	Dt, DtMin, DtMax             float64
	MaxNewtonIterations          int
	NumTimeIterationsPerInterval int
	JacobianInterval             int
}

// A Tolerance is a combined absolute and relative tolerance.
type Tolerance struct {
	Atol, Rtol float64
}

// Kinetics is the batched stiff-ODE kernel contract the driver steps
// against. Implementations must keep no per-element state of their own:
// everything an element needs between calls lives in the caller-owned fac
// and state slices, so that distinct elements can be stepped concurrently.
type Kinetics interface {
	// NumEquations returns the number of time-evolving unknowns per
	// batch element.
	NumEquations() int

	// WorkSize returns the per-element working-memory requirement, in
	// float64 values, of StepElement's work slice.
	WorkSize() int

	// StepElement advances one batch element from t by up to
	// tadv.NumTimeIterationsPerInterval internal sub-steps, or until
	// tadv.TEnd is reached, whichever comes first. state is the full
	// state vector for the element; work is scratch of at least
	// WorkSize() values; fac holds per-unknown finite-difference scale
	// factors carried between calls. It returns the element's new time
	// and step size.
	StepElement(work, fac []float64, tolNewton, tolTime Tolerance,
		tadv TimeAdvance, state []float64, t, dt float64) (tOut, dtOut float64)
}

// ImplicitKinetics integrates a ReactionSystem with the backward Euler
// method. Each sub-step solves the implicit update by Newton iteration with
// a finite-difference Jacobian, reusing the LU factorization across
// tadv.JacobianInterval sub-steps, and controls the step size with a local
// error estimate from the explicit-implicit defect.
type ImplicitKinetics struct {
	sys ReactionSystem
	n   int
}

// NewImplicitKinetics creates a kernel integrating the given system.
func NewImplicitKinetics(sys ReactionSystem) *ImplicitKinetics {
	return &ImplicitKinetics{sys: sys, n: len(sys.SpeciesNames())}
}

// NumEquations returns the number of species the system evolves.
func (ik *ImplicitKinetics) NumEquations() int { return ik.n }

// WorkSize returns the scratch requirement of StepElement: six length-n
// vectors plus an n by n Jacobian.
func (ik *ImplicitKinetics) WorkSize() int { return 6*ik.n + ik.n*ik.n }

// StepElement implements Kinetics.
func (ik *ImplicitKinetics) StepElement(work, fac []float64,
	tolNewton, tolTime Tolerance, tadv TimeAdvance, state []float64,
	t, dt float64) (float64, float64) {

	n := ik.n
	density := state[stateDensity]
	pressure := state[statePressure]
	temperature := state[stateTemperature]
	conc := state[NumNonSpeciesFields : NumNonSpeciesFields+n]

	y0 := work[0:n]
	y := work[n : 2*n]
	f := work[2*n : 3*n]
	resid := work[3*n : 4*n]
	f0 := work[4*n : 5*n]
	step := work[5*n : 6*n]
	jacData := work[6*n : 6*n+n*n]

	jac := mat.NewDense(n, n, jacData)
	var newtonMat mat.Dense
	var lu mat.LU
	stepsSinceJacobian := tadv.JacobianInterval // stale by construction

	rates := func(dst, c []float64) {
		ik.sys.Rates(dst, c, density, pressure, temperature)
	}

	for sub := 0; sub < tadv.NumTimeIterationsPerInterval && t < tadv.TEnd; sub++ {
		dt = math.Min(math.Max(dt, tadv.DtMin), tadv.DtMax)
		if remaining := tadv.TEnd - t; dt > remaining {
			dt = math.Max(remaining, tadv.DtMin)
		}
		copy(y0, conc)

		accepted := false
		for !accepted {
			if stepsSinceJacobian >= tadv.JacobianInterval {
				ik.numericalJacobian(jac, f, resid, fac, y0, rates)
				stepsSinceJacobian = 0
			}
			// Newton matrix I - dt*J, factored once per attempt.
			newtonMat.Scale(-dt, jac)
			for i := 0; i < n; i++ {
				newtonMat.Set(i, i, newtonMat.At(i, i)+1)
			}
			lu.Factorize(&newtonMat)

			copy(y, y0)
			converged := false
			for it := 0; it < tadv.MaxNewtonIterations; it++ {
				rates(f, y)
				for i := 0; i < n; i++ {
					resid[i] = y[i] - y0[i] - dt*f[i]
				}
				b := mat.NewVecDense(n, resid)
				δ := mat.NewVecDense(n, step)
				if err := lu.SolveVec(δ, false, b); err != nil {
					break
				}
				worst := 0.0
				for i := 0; i < n; i++ {
					y[i] -= step[i]
					w := math.Abs(step[i]) /
						(tolNewton.Atol + tolNewton.Rtol*math.Abs(y[i]))
					if w > worst {
						worst = w
					}
				}
				if worst <= 1 {
					converged = true
					break
				}
			}

			if !converged && dt > tadv.DtMin {
				// Absorb the failure into the step-size control.
				dt = math.Max(dt/2, tadv.DtMin)
				stepsSinceJacobian = tadv.JacobianInterval
				continue
			}

			// Local error estimate from the explicit-implicit defect,
			// which is O(dt²) for smooth solutions.
			rates(f0, y0)
			errNorm := 0.0
			for i := 0; i < n; i++ {
				defect := y[i] - y0[i] - dt*f0[i]
				w := math.Abs(defect) /
					(tolTime.Atol + tolTime.Rtol*math.Abs(y[i]))
				if w > errNorm {
					errNorm = w
				}
			}

			if errNorm > 1 && dt > tadv.DtMin {
				dt = math.Max(dt/2, tadv.DtMin)
				stepsSinceJacobian = tadv.JacobianInterval
				continue
			}

			copy(conc, y)
			t += dt
			stepsSinceJacobian++

			// Grow the next step when the error leaves room.
			grow := 2.0
			if errNorm > 0 {
				grow = math.Min(2, 0.9/math.Sqrt(errNorm))
			}
			if grow > 1 {
				dt = math.Min(dt*grow, tadv.DtMax)
			}
			accepted = true
		}
	}
	return t, dt
}

// numericalJacobian fills jac with a forward-difference approximation of the
// rate Jacobian at y. fac carries per-unknown perturbation scales between
// steps so that successive evaluations use consistent increments.
func (ik *ImplicitKinetics) numericalJacobian(jac *mat.Dense, f, fPert, fac,
	y []float64, rates func(dst, c []float64)) {
	const sqrtEps = 1.4901161193847656e-08
	n := ik.n
	rates(f, y)
	for j := 0; j < n; j++ {
		scale := math.Max(math.Abs(y[j]), fac[j])
		if scale == 0 {
			scale = 1
		}
		h := sqrtEps * scale
		saved := y[j]
		y[j] += h
		rates(fPert, y)
		y[j] = saved
		for i := 0; i < n; i++ {
			jac.Set(i, j, (fPert[i]-f[i])/h)
		}
		fac[j] = math.Abs(y[j])
	}
}
