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

import (
	"fmt"

	"github.com/ctessum/unit"
)

// molecular weight of dry air [kg/mol]
const mwDryAir = 28.9647e-3

var (
	massFluxDim = unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: -2,
		unit.TimeDim:   -1,
	}
	numberFluxDim = unit.Dimensions{
		unit.LengthDim: -2,
		unit.TimeDim:   -1,
	}
)

// An EmissionRecord is a prescribed surface source of either an aerosol
// species within a mode or a gas. Exactly one of Gas or the Mode and Species
// pair should be set.
type EmissionRecord struct {
	// Gas is the name of an emitted gas species.
	Gas string

	// Mode and Species name an emitted aerosol species.
	Mode, Species string

	// Flux is the emitted mass flux [kg m-2 s-1].
	Flux *unit.Unit

	// NumberFlux is the emitted particle number flux [# m-2 s-1].
	// It is ignored for gas emissions and may be nil.
	NumberFlux *unit.Unit
}

type emissionTarget struct {
	record   EmissionRecord
	gasIndex int     // >= 0 for gas emissions
	gasMW    float64 // molecular weight of the emitted gas [kg/mol]
	mode     int
	pop      int
}

// SurfaceEmissions injects prescribed mass and number fluxes into the lowest
// model level.
type SurfaceEmissions struct {
	records []EmissionRecord
	targets []emissionTarget
}

// NewSurfaceEmissions creates an emissions process from the given records,
// checking that each flux carries the expected dimensions.
func NewSurfaceEmissions(records []EmissionRecord) (*SurfaceEmissions, error) {
	for _, r := range records {
		if r.Flux == nil {
			return nil, fmt.Errorf("aeromix: emission record %+v is missing a flux", r)
		}
		if !r.Flux.Dimensions().Matches(massFluxDim) {
			return nil, fmt.Errorf("aeromix: emission flux has dimensions %v; want %v",
				r.Flux.Dimensions(), massFluxDim)
		}
		if r.NumberFlux != nil && !r.NumberFlux.Dimensions().Matches(numberFluxDim) {
			return nil, fmt.Errorf("aeromix: emission number flux has dimensions %v; want %v",
				r.NumberFlux.Dimensions(), numberFluxDim)
		}
	}
	return &SurfaceEmissions{records: records}, nil
}

// Name returns the process name.
func (p *SurfaceEmissions) Name() string { return "prescribed surface emissions" }

// Type returns EmissionsProcess.
func (p *SurfaceEmissions) Type() ProcessType { return EmissionsProcess }

// Init resolves the species each record emits into, returning an error for
// names the model does not define.
func (p *SurfaceEmissions) Init(m *Model) error {
	progs := m.CreatePrognostics()
	p.targets = p.targets[:0]
	for _, r := range p.records {
		if r.Gas != "" {
			gi := m.GasIndex(r.Gas)
			if gi < 0 {
				return fmt.Errorf("aeromix: emission record names unknown gas %q", r.Gas)
			}
			p.targets = append(p.targets, emissionTarget{
				record:   r,
				gasIndex: gi,
				gasMW:    m.GasSpecies()[gi].MolecularWeight,
			})
			continue
		}
		mi := m.ModeIndex(r.Mode)
		if mi < 0 {
			return fmt.Errorf("aeromix: emission record names unknown mode %q", r.Mode)
		}
		si := -1
		for i, s := range m.AerosolSpeciesForMode(mi) {
			if s.Name == r.Species {
				si = i
				break
			}
		}
		if si < 0 {
			return fmt.Errorf("aeromix: emission record names species %q not in mode %q",
				r.Species, r.Mode)
		}
		p.targets = append(p.targets, emissionTarget{
			record:   r,
			gasIndex: -1,
			mode:     mi,
			pop:      progs.PopulationIndex(mi, si),
		})
	}
	return nil
}

// Validate reports whether the inputs are physically consistent.
func (p *SurfaceEmissions) Validate(atm *Atmosphere, progs *Prognostics) bool {
	return atm.QuantitiesNonnegative()
}

// ComputeTendencies converts each surface flux to a mixing ratio tendency at
// the lowest model level. For a flux F through the bottom of a layer with
// hydrostatic pressure thickness Δp, the mass mixing ratio changes at the
// rate F*g/Δp.
func (p *SurfaceEmissions) ComputeTendencies(t, dt float64, atm *Atmosphere,
	progs *Prognostics, diags *Diagnostics, tend *Tendencies) {
	surf := surfaceLevel(atm)
	δp := atm.HydrostaticDP[surf]
	layerMass := δp / gravity // air mass per unit area [kg/m²]
	for _, tgt := range p.targets {
		massRate := tgt.record.Flux.Value() / layerMass // [kg/kg/s]
		if tgt.gasIndex >= 0 {
			// Gases are carried as mole fractions.
			tend.Gases.AddVal(massRate*mwDryAir/tgt.gasMW, tgt.gasIndex, surf)
			continue
		}
		tend.InterstitialAerosols.AddVal(massRate, tgt.pop, surf)
		if tgt.record.NumberFlux != nil {
			tend.InterstitialNumConcs.AddVal(
				tgt.record.NumberFlux.Value()/layerMass, tgt.mode, surf)
		}
	}
}

// surfaceLevel returns the index of the lowest model level.
func surfaceLevel(atm *Atmosphere) int {
	surf := 0
	for k := 1; k < atm.NumLevels(); k++ {
		if atm.Height[k] < atm.Height[surf] {
			surf = k
		}
	}
	return surf
}
