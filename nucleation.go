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
	"math"
)

// Physical constants used by the built-in parameterizations.
const (
	boltzmann     = 1.380649e-23 // [J/K]
	avogadro      = 6.02214076e23
	rDryAir       = 287.058 // gas constant of dry air [J/kg/K]
	gravity       = 9.80665 // [m/s²]
	densityH2O    = 1000.0  // liquid water density [kg/m³]
	mwH2O         = 18.016e-3
	mwH2SO4       = 98.079e-3
	rGasH2OVapor  = 461.52 // gas constant of water vapor [J/kg/K]
	triplePointT  = 273.16 // [K]
	nucleatedDiam = 1e-9   // diameter of freshly nucleated particles [m]
)

// Wang2008Nucleation implements the boundary-layer H2SO4 nucleation
// parameterizations of Wang & Penner, Aerosol indirect forcing in a global
// model with particle nucleation, Atmos. Chem. Phys. 9, 239-260 (2009),
// which assume that nucleated particles are 1 nm in diameter. It consumes
// gaseous H2SO4 and produces number and sulfate mass in the mode with the
// smallest minimum diameter, at levels below the planetary boundary layer
// height.
type Wang2008Nucleation struct {
	order int // 1 or 2; reaction order of the nucleation rate

	h2so4Index   int // gas index of H2SO4
	modeIndex    int // target mode for new particles
	so4Index     int // species index of sulfate within the species list
	so4Pop       int // population index of sulfate within the target mode
	particleMass float64
}

// NewWang2008Nucleation creates a nucleation process of the given reaction
// order; any value other than 2 means first order.
func NewWang2008Nucleation(order int) *Wang2008Nucleation {
	if order != 2 {
		order = 1
	}
	const particleVolume = math.Pi / 6 * nucleatedDiam * nucleatedDiam * nucleatedDiam
	return &Wang2008Nucleation{
		order:        order,
		particleMass: particleVolume * 1770, // ammonium sulfate density [kg/m³]
	}
}

// Name returns the process name.
func (p *Wang2008Nucleation) Name() string {
	return fmt.Sprintf("wang2008 order-%d boundary layer nucleation", p.order)
}

// Type returns NucleationProcess.
func (p *Wang2008Nucleation) Type() ProcessType { return NucleationProcess }

// Init resolves the H2SO4 gas, the target mode, and the sulfate species the
// process needs from the Model metadata.
func (p *Wang2008Nucleation) Init(m *Model) error {
	p.h2so4Index = m.GasIndex("H2SO4")
	if p.h2so4Index < 0 {
		return fmt.Errorf("nucleation requires gas species H2SO4; have %v",
			gasNames(m.GasSpecies()))
	}

	// New particles go into the mode with the smallest minimum diameter.
	p.modeIndex = 0
	for i, mode := range m.Modes() {
		if mode.MinDiameter < m.Modes()[p.modeIndex].MinDiameter {
			p.modeIndex = i
		}
	}

	p.so4Index = -1
	for i, s := range m.AerosolSpeciesForMode(p.modeIndex) {
		if s.Name == "SO4" {
			p.so4Index = i
			break
		}
	}
	if p.so4Index < 0 {
		return fmt.Errorf("nucleation requires species SO4 in mode %q",
			m.Modes()[p.modeIndex].Name)
	}
	progs := m.CreatePrognostics()
	p.so4Pop = progs.PopulationIndex(p.modeIndex, p.so4Index)
	return nil
}

// Validate reports whether the atmosphere and prognostics are physically
// consistent for this process: nonnegative column quantities and
// nonnegative H2SO4.
func (p *Wang2008Nucleation) Validate(atm *Atmosphere, progs *Prognostics) bool {
	if !atm.QuantitiesNonnegative() {
		return false
	}
	for k := 0; k < progs.NumLevels(); k++ {
		if progs.Gases.Get(p.h2so4Index, k) < 0 {
			return false
		}
	}
	return true
}

// ComputeTendencies produces number, sulfate mass, and H2SO4 gas tendencies
// at the levels within the planetary boundary layer.
func (p *Wang2008Nucleation) ComputeTendencies(t, dt float64, atm *Atmosphere,
	progs *Prognostics, diags *Diagnostics, tend *Tendencies) {
	for k := 0; k < atm.NumLevels(); k++ {
		if atm.Height[k] > atm.BoundaryLayerHeight {
			continue
		}
		T := atm.Temperature[k]
		pres := atm.Pressure[k]
		nAir := pres / (boltzmann * T)       // air number density [#/m³]
		ρAir := pres / (rDryAir * T)         // air mass density [kg/m³]
		q := progs.Gases.Get(p.h2so4Index, k) // H2SO4 mole fraction

		// H2SO4 number concentration in the molecules/cm³ the
		// parameterization expects.
		c := q * nAir * 1e-6

		// Nucleation rate [#/cm³/s]: Wang & Penner eqs 1 and 2,
		// adopted from the case studies in Shito et al (2006).
		var j float64
		if p.order == 2 {
			j = 1e-12 * c * c
		} else {
			j = 1e-6 * c
		}
		jm := j * 1e6 // [#/m³/s]

		tend.InterstitialNumConcs.AddVal(jm/ρAir, p.modeIndex, k)
		tend.InterstitialAerosols.AddVal(jm*p.particleMass/ρAir, p.so4Pop, k)
		// Gas consumed by the nucleated mass, as a mole-fraction rate.
		tend.Gases.AddVal(-jm*p.particleMass/(mwH2SO4*nAir/avogadro), p.h2so4Index, k)
	}
}

func gasNames(gases []GasSpecies) []string {
	names := make([]string, len(gases))
	for i, g := range gases {
		names[i] = g.Name
	}
	return names
}
