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

import "math"

// This file holds constructors for self-contained test fixtures. They are
// exported so that packages embedding the model can build standalone columns
// without input files.

// CreateTestAtmosphere returns an atmosphere whose per-level storage is
// drawn from pool, filled with a smooth mid-latitude profile. Level 0 is the
// model top and level NumLevels-1 is the surface.
func CreateTestAtmosphere(pool *ColumnPool, pblh float64) *Atmosphere {
	n := pool.NumLevels()
	const (
		δz     = 100.0  // layer thickness [m]
		p0     = 101325 // surface pressure [Pa]
		t0     = 288.15 // surface temperature [K]
		lapse  = 0.0065 // [K/m]
		scaleH = 7400.0 // pressure scale height [m]
	)

	temperature := pool.ColumnView()
	pressure := pool.ColumnView()
	vapor := pool.ColumnView()
	liquid := pool.ColumnView()
	cloudLiqNum := pool.ColumnView()
	ice := pool.ColumnView()
	cloudIceNum := pool.ColumnView()
	height := pool.ColumnView()
	dp := pool.ColumnView()
	cloudFrac := pool.ColumnView()
	updraft := pool.ColumnView()

	for k := 0; k < n; k++ {
		z := δz/2 + δz*float64(n-1-k) // layer midpoint height [m]
		height[k] = z
		temperature[k] = t0 - lapse*z
		pressure[k] = p0 * math.Exp(-z/scaleH)
		ρ := pressure[k] / (rDryAir * temperature[k])
		dp[k] = ρ * gravity * δz
		vapor[k] = 8e-3 * math.Exp(-z/2000)
		if z > 1500 && z < 2500 {
			liquid[k] = 2e-5
			cloudLiqNum[k] = 5e7
			cloudFrac[k] = 0.3
		}
		updraft[k] = 0.5
	}

	atm, err := NewAtmosphere(temperature, pressure, vapor, liquid,
		cloudLiqNum, ice, cloudIceNum, height, dp, cloudFrac, updraft, pblh)
	if err != nil {
		panic(err)
	}
	return atm
}

// TestSelections returns process selections that exercise every non-null
// built-in process.
func TestSelections() Selections {
	return Selections{
		CloudBorneWetRemoval: EMEPCloudBorneWetRemoval,
		Emissions:            PrescribedEmissions,
		Nucleation:           PBLNucleation,
		WaterUptake:          KohlerWaterUptake,
		NucleationOrder:      1,
	}
}

// CreateTestModel returns a two-mode, two-gas sulfate model for use in
// tests, with the given selections and number of vertical levels.
func CreateTestModel(selections Selections, numLevels int) (*Model, error) {
	modes := []Mode{
		{Name: "aitken", MinDiameter: 8.7e-9, MaxDiameter: 5.2e-8, GeomStdDev: 1.6},
		{Name: "accumulation", MinDiameter: 5.35e-8, MaxDiameter: 4.4e-7, GeomStdDev: 1.8},
	}
	species := []Species{
		{Name: "SO4", MolecularWeight: 96.06e-3, Density: 1770, Hygroscopicity: 0.507},
		{Name: "SOA", MolecularWeight: 150.0e-3, Density: 1000, Hygroscopicity: 0.14},
	}
	modeSpecies := map[string][]string{
		"aitken":       {"SO4", "SOA"},
		"accumulation": {"SO4", "SOA"},
	}
	gases := []GasSpecies{
		{Name: "H2SO4", MolecularWeight: 98.079e-3},
		{Name: "SO2", MolecularWeight: 64.07e-3},
	}
	return NewModel(selections, modes, species, modeSpecies, gases, numLevels)
}
