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

import "fmt"

// Model binds a set of aerosol process implementations, resolved from the
// caller's Selections, to shared mode, species, and gas metadata. It creates
// correctly sized Prognostics and Diagnostics and dispatches process
// invocations to the implementation selected for each process type.
type Model struct {
	selections  Selections
	modes       []Mode
	aeroSpecies []Species
	gasSpecies  []GasSpecies

	// speciesForMode[m] holds the aerosol species indices belonging to
	// mode m, in the order given by the caller's association table.
	speciesForMode [][]int

	numLevels int

	progProcesses map[ProcessType]AerosolProcess
	diagProcesses map[ProcessType]DiagnosticProcess
}

// NewModel creates a Model from process selections, aerosol mode and species
// metadata, a mode-name to species-names association table, gas metadata, and
// the column height in vertical levels. Every enumerated process type is
// resolved and initialized eagerly; any resolution or initialization failure
// aborts construction. A mode or species name in the association table that
// does not appear in the corresponding metadata list is an error.
func NewModel(selections Selections, modes []Mode, aeroSpecies []Species,
	modeSpecies map[string][]string, gasSpecies []GasSpecies,
	numLevels int) (*Model, error) {

	if numLevels <= 0 {
		return nil, fmt.Errorf("aeromix: model must have at least one vertical level")
	}

	m := &Model{
		selections:     selections,
		modes:          modes,
		aeroSpecies:    aeroSpecies,
		gasSpecies:     gasSpecies,
		speciesForMode: make([][]int, len(modes)),
		numLevels:      numLevels,
		progProcesses:  make(map[ProcessType]AerosolProcess),
		diagProcesses:  make(map[ProcessType]DiagnosticProcess),
	}

	// Set up mode/species indexing. Species are resolved by species name;
	// unknown names fail here instead of silently mis-indexing.
	for modeName, speciesNames := range modeSpecies {
		modeIndex := -1
		for i, mode := range modes {
			if mode.Name == modeName {
				modeIndex = i
				break
			}
		}
		if modeIndex < 0 {
			return nil, fmt.Errorf("aeromix: association table names mode %q, "+
				"which is not in the mode list", modeName)
		}
		for _, speciesName := range speciesNames {
			speciesIndex := -1
			for i, s := range aeroSpecies {
				if s.Name == speciesName {
					speciesIndex = i
					break
				}
			}
			if speciesIndex < 0 {
				return nil, fmt.Errorf("aeromix: association table names species %q "+
					"in mode %q, which is not in the species list", speciesName, modeName)
			}
			m.speciesForMode[modeIndex] = append(m.speciesForMode[modeIndex], speciesIndex)
		}
	}

	for _, t := range PrognosticProcessTypes {
		p, err := SelectAerosolProcess(t, selections)
		if err != nil {
			return nil, err
		}
		if err := p.Init(m); err != nil {
			return nil, fmt.Errorf("aeromix: initializing %v process: %v", t, err)
		}
		m.progProcesses[t] = p
	}
	for _, t := range DiagnosticProcessTypes {
		p, err := SelectDiagnosticProcess(t, selections)
		if err != nil {
			return nil, err
		}
		if err := p.Init(m); err != nil {
			return nil, fmt.Errorf("aeromix: initializing %v process: %v", t, err)
		}
		m.diagProcesses[t] = p
	}
	return m, nil
}

// Selections returns the process selections the Model was built with.
func (m *Model) Selections() Selections { return m.selections }

// Modes returns the Model's aerosol mode list.
func (m *Model) Modes() []Mode { return m.modes }

// AerosolSpecies returns the Model's aerosol species list.
func (m *Model) AerosolSpecies() []Species { return m.aeroSpecies }

// GasSpecies returns the Model's gas species list.
func (m *Model) GasSpecies() []GasSpecies { return m.gasSpecies }

// NumLevels returns the number of vertical levels per column.
func (m *Model) NumLevels() int { return m.numLevels }

// AerosolSpeciesForMode returns the species belonging to the mode with the
// given index, in association-table order.
func (m *Model) AerosolSpeciesForMode(modeIndex int) []Species {
	indices := m.speciesForMode[modeIndex]
	species := make([]Species, len(indices))
	for i, si := range indices {
		species[i] = m.aeroSpecies[si]
	}
	return species
}

// ModeIndex returns the index of the mode with the given name, or -1 if no
// such mode exists.
func (m *Model) ModeIndex(name string) int {
	for i, mode := range m.modes {
		if mode.Name == name {
			return i
		}
	}
	return -1
}

// GasIndex returns the index of the gas species with the given name, or -1
// if no such gas exists.
func (m *Model) GasIndex(name string) int {
	for i, g := range m.gasSpecies {
		if g.Name == name {
			return i
		}
	}
	return -1
}

func (m *Model) numAeroSpecies() []int {
	n := make([]int, len(m.modes))
	for i, indices := range m.speciesForMode {
		n[i] = len(indices)
	}
	return n
}

// CreatePrognostics allocates a Prognostics sized from the Model's mode,
// species, and gas metadata. The caller owns the result.
func (m *Model) CreatePrognostics() *Prognostics {
	return newPrognostics(m.numAeroSpecies(), len(m.gasSpecies), m.numLevels)
}

// CreateTendencies allocates a Tendencies with the same layout as
// CreatePrognostics.
func (m *Model) CreateTendencies() *Tendencies {
	return newPrognostics(m.numAeroSpecies(), len(m.gasSpecies), m.numLevels)
}

// CreateDiagnostics allocates a Diagnostics sized from the Model's metadata
// and asks every selected diagnostic process to declare the variables it
// requires, so that every needed field exists before the first Update.
func (m *Model) CreateDiagnostics() *Diagnostics {
	diags := newDiagnostics(m.numAeroSpecies(), len(m.gasSpecies), m.numLevels)
	for _, t := range DiagnosticProcessTypes {
		m.diagProcesses[t].Prepare(diags)
	}
	return diags
}

// RunProcess dispatches a tendency computation to the prognostic process
// resolved for the given type, writing the result into tend without
// integrating it into progs. A missing, nil, or type-mismatched resolution
// indicates a registry bug and panics.
func (m *Model) RunProcess(t ProcessType, time, dt float64, atm *Atmosphere,
	progs *Prognostics, diags *Diagnostics, tend *Tendencies) {
	p, ok := m.progProcesses[t]
	if !ok {
		panic(fmt.Sprintf("aeromix: no process of type %v is available", t))
	}
	if p == nil {
		panic(fmt.Sprintf("aeromix: nil process resolved for type %v", t))
	}
	if p.Type() != t {
		panic(fmt.Sprintf("aeromix: process %q reports type %v; %v was requested",
			p.Name(), p.Type(), t))
	}
	p.ComputeTendencies(time, dt, atm, progs, diags, tend)
}

// UpdateState dispatches a diagnostic update to the process resolved for
// the given type, mutating diags in place. The same contract checks as
// RunProcess apply.
func (m *Model) UpdateState(t ProcessType, time float64, atm *Atmosphere,
	progs *Prognostics, diags *Diagnostics) {
	p, ok := m.diagProcesses[t]
	if !ok {
		panic(fmt.Sprintf("aeromix: no process of type %v is available", t))
	}
	if p == nil {
		panic(fmt.Sprintf("aeromix: nil process resolved for type %v", t))
	}
	if p.Type() != t {
		panic(fmt.Sprintf("aeromix: process %q reports type %v; %v was requested",
			p.Name(), p.Type(), t))
	}
	p.Update(m, time, atm, progs, diags)
}

// StepProcesses advances the aerosol state by one operator-split step of
// length dt: each prognostic process's tendencies are computed through
// RunProcess and folded into progs, in the enumerated application order,
// and then every diagnostic process is updated. tend is scratch space for
// the per-process tendencies and is zeroed before each use.
func (m *Model) StepProcesses(t, dt float64, atm *Atmosphere,
	progs *Prognostics, diags *Diagnostics, tend *Tendencies) {
	for _, pt := range PrognosticProcessTypes {
		for _, arr := range []*[]float64{
			&tend.InterstitialAerosols.Elements,
			&tend.CloudAerosols.Elements,
			&tend.Gases.Elements,
			&tend.InterstitialNumConcs.Elements,
			&tend.CloudborneNumConcs.Elements,
		} {
			for i := range *arr {
				(*arr)[i] = 0
			}
		}
		m.RunProcess(pt, t, dt, atm, progs, diags, tend)
		progs.ScaleAndAdd(dt, tend)
	}
	for _, pt := range DiagnosticProcessTypes {
		m.UpdateState(pt, t, atm, progs, diags)
	}
}
