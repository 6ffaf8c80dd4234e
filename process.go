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

package aeromix

// AerosolProcess is the contract satisfied by every prognostic aerosol
// process: a physical process that evolves tracer values by producing
// tendencies.
//
// ComputeTendencies must not mutate the atmosphere or prognostics, and must
// be safe to invoke concurrently on independent columns: implementations may
// not keep cross-column mutable state.
type AerosolProcess interface {
	// Name returns a human-readable name for the process implementation.
	Name() string

	// Type returns the process type this implementation provides. The
	// Model uses it to verify that registry resolution matched the
	// requested type.
	Type() ProcessType

	// Init performs one-time setup and validation against Model metadata.
	Init(m *Model) error

	// Validate reports whether the atmosphere and prognostic state
	// satisfy the process's preconditions. It is a consistency check with
	// no side effects; callers decide whether failure is fatal.
	Validate(atm *Atmosphere, progs *Prognostics) bool

	// ComputeTendencies reads the atmosphere, prognostics, and
	// diagnostics at time t and writes the process's contribution to the
	// state time derivative into tend. It does not integrate: folding
	// tendencies into prognostic state is the caller's responsibility.
	ComputeTendencies(t, dt float64, atm *Atmosphere, progs *Prognostics,
		diags *Diagnostics, tend *Tendencies)
}

// DiagnosticProcess is the contract satisfied by every diagnostic aerosol
// process: a process that computes derived quantities without changing
// prognostic state.
type DiagnosticProcess interface {
	// Name returns a human-readable name for the process implementation.
	Name() string

	// Type returns the process type this implementation provides.
	Type() ProcessType

	// Init performs one-time setup and validation against Model metadata.
	Init(m *Model) error

	// Prepare is called once when Diagnostics are created. A process that
	// needs a diagnostic variable the caller did not declare must add it
	// here, not at first Update.
	Prepare(diags *Diagnostics)

	// Update computes or overwrites the process's diagnostic fields from
	// the current prognostic state.
	Update(m *Model, t float64, atm *Atmosphere, progs *Prognostics,
		diags *Diagnostics)
}

// NullProcess is a no-op process. It satisfies both AerosolProcess and
// DiagnosticProcess and is what the registry resolves when the caller
// selects no implementation for a process type: tendencies are left exactly
// as given, diagnostics untouched.
type NullProcess struct {
	processType ProcessType
}

// NewNullProcess returns a no-op process reporting the given type.
func NewNullProcess(t ProcessType) *NullProcess {
	return &NullProcess{processType: t}
}

// Name returns the process name.
func (p *NullProcess) Name() string { return "null " + p.processType.String() }

// Type returns the process type this null process stands in for.
func (p *NullProcess) Type() ProcessType { return p.processType }

// Init does nothing.
func (p *NullProcess) Init(m *Model) error { return nil }

// Validate always succeeds.
func (p *NullProcess) Validate(atm *Atmosphere, progs *Prognostics) bool { return true }

// ComputeTendencies leaves tend unchanged.
func (p *NullProcess) ComputeTendencies(t, dt float64, atm *Atmosphere,
	progs *Prognostics, diags *Diagnostics, tend *Tendencies) {
}

// Prepare does nothing.
func (p *NullProcess) Prepare(diags *Diagnostics) {}

// Update does nothing.
func (p *NullProcess) Update(m *Model, t float64, atm *Atmosphere,
	progs *Prognostics, diags *Diagnostics) {
}
