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

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// Prognostics holds the time-evolving aerosol and gas state for one column:
// per-mode, per-species mass mixing ratios, per-mode number concentrations,
// and per-gas mixing ratios. A Prognostics is created by
// Model.CreatePrognostics with a layout derived from the Model's mode,
// species, and gas metadata; after creation the caller owns its lifetime.
type Prognostics struct {
	// InterstitialAerosols and CloudAerosols are aerosol species mass
	// mixing ratios [kg/kg dry air], dimensioned [population, level],
	// where "population" enumerates every (mode, species) combination in
	// mode-major order.
	InterstitialAerosols *sparse.DenseArray
	CloudAerosols        *sparse.DenseArray

	// Gases are gas mixing ratios [kmol/kmol dry air],
	// dimensioned [gas, level].
	Gases *sparse.DenseArray

	// InterstitialNumConcs and CloudborneNumConcs are modal number
	// concentrations [#/kg dry air], dimensioned [mode, level].
	InterstitialNumConcs *sparse.DenseArray
	CloudborneNumConcs   *sparse.DenseArray

	numAeroSpecies []int // number of species in each mode
	numPopulations int
	numGases       int
	numLevels      int
}

// Tendencies are the time derivatives of prognostic state produced by a
// prognostic process. Their structure is identical to Prognostics by
// definition: the alias makes the equality a compile-time guarantee.
type Tendencies = Prognostics

func newPrognostics(numAeroSpecies []int, numGases, numLevels int) *Prognostics {
	populations := 0
	for _, n := range numAeroSpecies {
		populations += n
	}
	return &Prognostics{
		InterstitialAerosols: sparse.ZerosDense(populations, numLevels),
		CloudAerosols:        sparse.ZerosDense(populations, numLevels),
		Gases:                sparse.ZerosDense(numGases, numLevels),
		InterstitialNumConcs: sparse.ZerosDense(len(numAeroSpecies), numLevels),
		CloudborneNumConcs:   sparse.ZerosDense(len(numAeroSpecies), numLevels),
		numAeroSpecies:       append([]int{}, numAeroSpecies...),
		numPopulations:       populations,
		numGases:             numGases,
		numLevels:            numLevels,
	}
}

// NumAerosolModes returns the number of aerosol modes.
func (p *Prognostics) NumAerosolModes() int { return len(p.numAeroSpecies) }

// NumAerosolSpecies returns the number of aerosol species in the mode with
// the given index.
func (p *Prognostics) NumAerosolSpecies(mode int) int { return p.numAeroSpecies[mode] }

// NumAerosolPopulations returns the total number of (mode, species)
// combinations.
func (p *Prognostics) NumAerosolPopulations() int { return p.numPopulations }

// NumGases returns the number of gas species.
func (p *Prognostics) NumGases() int { return p.numGases }

// NumLevels returns the number of vertical levels.
func (p *Prognostics) NumLevels() int { return p.numLevels }

// PopulationIndex returns the index within the aerosol population arrays of
// the given species within the given mode.
func (p *Prognostics) PopulationIndex(mode, species int) int {
	i := 0
	for m := 0; m < mode; m++ {
		i += p.numAeroSpecies[m]
	}
	return i + species
}

// ScaleAndAdd folds tendencies into the prognostic state:
// p += scale * tend. It panics if tend was created with a different layout.
func (p *Prognostics) ScaleAndAdd(scale float64, tend *Tendencies) {
	pairs := []struct{ dst, src *sparse.DenseArray }{
		{p.InterstitialAerosols, tend.InterstitialAerosols},
		{p.CloudAerosols, tend.CloudAerosols},
		{p.Gases, tend.Gases},
		{p.InterstitialNumConcs, tend.InterstitialNumConcs},
		{p.CloudborneNumConcs, tend.CloudborneNumConcs},
	}
	for _, pair := range pairs {
		if len(pair.dst.Elements) != len(pair.src.Elements) {
			panic(fmt.Sprintf("aeromix: tendencies layout (%d elements) does not "+
				"match prognostics layout (%d elements)",
				len(pair.src.Elements), len(pair.dst.Elements)))
		}
		floats.AddScaled(pair.dst.Elements, scale, pair.src.Elements)
	}
}
