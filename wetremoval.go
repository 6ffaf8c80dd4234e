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
	"strings"

	"github.com/ctessum/atmos/emep"
)

// EMEPWetRemoval implements in-cloud scavenging of cloud-borne aerosol mass
// and number, plus dissolved-gas washout, using the wet deposition
// parameterization from the EMEP model (Simpson et al., Atmos. Chem. Phys.
// 12, 7825-7865, 2012).
type EMEPWetRemoval struct {
	so2Gas []bool // whether each gas species scavenges at the SO2 rate
}

// NewEMEPWetRemoval creates a cloud-borne wet removal process.
func NewEMEPWetRemoval() *EMEPWetRemoval {
	return new(EMEPWetRemoval)
}

// Name returns the process name.
func (p *EMEPWetRemoval) Name() string { return "EMEP cloud-borne wet removal" }

// Type returns CloudBorneWetRemovalProcess.
func (p *EMEPWetRemoval) Type() ProcessType { return CloudBorneWetRemovalProcess }

// Init classifies the model gases by scavenging rate. Sulfur gases are
// removed at the EMEP SO2 rate; everything else at the other-gas rate.
func (p *EMEPWetRemoval) Init(m *Model) error {
	gases := m.GasSpecies()
	p.so2Gas = make([]bool, len(gases))
	for i, g := range gases {
		name := strings.ToUpper(g.Name)
		p.so2Gas[i] = name == "SO2" || name == "H2SO4"
	}
	return nil
}

// Validate reports whether the inputs are physically consistent.
func (p *EMEPWetRemoval) Validate(atm *Atmosphere, progs *Prognostics) bool {
	return atm.QuantitiesNonnegative()
}

// ComputeTendencies removes cloud-borne aerosol mass and number and
// dissolved gases at the first-order EMEP scavenging rates.
func (p *EMEPWetRemoval) ComputeTendencies(t, dt float64, atm *Atmosphere,
	progs *Prognostics, diags *Diagnostics, tend *Tendencies) {
	for k := 0; k < atm.NumLevels(); k++ {
		ρAir := atm.Pressure[k] / (rDryAir * atm.Temperature[k])
		Δz := atm.HydrostaticDP[k] / (ρAir * gravity)
		wdParticle, wdSO2, wdOtherGas := emep.WetDeposition(
			atm.CloudFraction[k], atm.LiquidMixingRatio[k], ρAir, Δz)

		for m := 0; m < progs.NumAerosolModes(); m++ {
			tend.CloudborneNumConcs.AddVal(
				-wdParticle*progs.CloudborneNumConcs.Get(m, k), m, k)
		}
		for pop := 0; pop < progs.NumAerosolPopulations(); pop++ {
			tend.CloudAerosols.AddVal(
				-wdParticle*progs.CloudAerosols.Get(pop, k), pop, k)
		}
		for g := 0; g < progs.NumGases(); g++ {
			rate := wdOtherGas
			if p.so2Gas[g] {
				rate = wdSO2
			}
			tend.Gases.AddVal(-rate*progs.Gases.Get(g, k), g, k)
		}
	}
}
