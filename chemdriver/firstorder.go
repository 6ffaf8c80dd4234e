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

// Molar masses [grams per mole] of the sulfur chemistry species.
const (
	mwS     = 32.0655
	mwSO2   = 64.0644
	mwH2SO4 = 98.0785

	// Chemical mass conversion [ratio]
	SO2ToH2SO4 = mwH2SO4 / mwSO2
)

// Indices of the species in the SulfurChemistry state vector.
const (
	igSO2 int = iota
	igH2SO4
)

// SulfurChemistry is a two-species gas-phase sulfur mechanism: SO2 oxidizes
// to H2SO4 with a fixed first-order rate constant. It is stiff against
// typical aerosol time scales when the rate constant is large, which makes
// it a useful system for exercising the implicit integrator.
type SulfurChemistry struct {
	// OxidationRate is the pseudo-first-order SO2 oxidation rate
	// constant [1/s].
	OxidationRate float64
}

var sulfurSpecies = []string{"SO2", "H2SO4"}

// SpeciesNames returns the species in state-vector order.
func (c SulfurChemistry) SpeciesNames() []string { return sulfurSpecies }

// Rates computes the net production rates. Concentrations are mass based,
// so the oxidized sulfur picks up the H2SO4/SO2 molar mass ratio.
func (c SulfurChemistry) Rates(rates, conc []float64, density, pressure, temperature float64) {
	loss := c.OxidationRate * conc[igSO2]
	rates[igSO2] = -loss
	rates[igH2SO4] = loss * SO2ToH2SO4
}
