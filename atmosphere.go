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

// Atmosphere holds the state of a single vertical atmospheric column,
// inherited from a host model. The per-level slices may be owned by the
// Atmosphere or borrowed from host-model storage; either way all slices
// must share the same length. Atmosphere state is not changed by aerosol
// processes; the only field that may be updated after construction is
// BoundaryLayerHeight.
type Atmosphere struct {
	Temperature       []float64 // [K]
	Pressure          []float64 // [Pa]
	VaporMixingRatio  []float64 // water vapor mass mixing ratio [kg/kg dry air]
	LiquidMixingRatio []float64 // liquid water mass mixing ratio [kg/kg dry air]
	CloudLiquidNumber []float64 // cloud liquid number mixing ratio [#/kg dry air]
	IceMixingRatio    []float64 // ice water mass mixing ratio [kg/kg dry air]
	CloudIceNumber    []float64 // cloud ice number mixing ratio [#/kg dry air]
	Height            []float64 // level midpoint height [m]
	HydrostaticDP     []float64 // hydrostatic pressure thickness [Pa]
	CloudFraction     []float64 // [-]
	UpdraftVelocity   []float64 // updraft velocity for ice nucleation [m/s]

	// BoundaryLayerHeight is the column planetary boundary layer height [m].
	BoundaryLayerHeight float64

	numLevels int
}

// NewAtmosphere creates an Atmosphere from the given per-level state slices
// and planetary boundary layer height. It returns an error if the slices do
// not all share the same nonzero length or if pblh is negative.
func NewAtmosphere(temperature, pressure, vaporMixingRatio, liquidMixingRatio,
	cloudLiquidNumber, iceMixingRatio, cloudIceNumber, height, hydrostaticDP,
	cloudFraction, updraftVelocity []float64, pblh float64) (*Atmosphere, error) {

	n := len(temperature)
	if n == 0 {
		return nil, fmt.Errorf("aeromix: atmosphere must have at least one vertical level")
	}
	if pblh < 0 {
		return nil, fmt.Errorf("aeromix: negative planetary boundary layer height %g", pblh)
	}
	fields := map[string][]float64{
		"pressure":          pressure,
		"vaporMixingRatio":  vaporMixingRatio,
		"liquidMixingRatio": liquidMixingRatio,
		"cloudLiquidNumber": cloudLiquidNumber,
		"iceMixingRatio":    iceMixingRatio,
		"cloudIceNumber":    cloudIceNumber,
		"height":            height,
		"hydrostaticDP":     hydrostaticDP,
		"cloudFraction":     cloudFraction,
		"updraftVelocity":   updraftVelocity,
	}
	for name, f := range fields {
		if len(f) != n {
			return nil, fmt.Errorf("aeromix: atmosphere field %s has %d levels; want %d",
				name, len(f), n)
		}
	}
	return &Atmosphere{
		Temperature:         temperature,
		Pressure:            pressure,
		VaporMixingRatio:    vaporMixingRatio,
		LiquidMixingRatio:   liquidMixingRatio,
		CloudLiquidNumber:   cloudLiquidNumber,
		IceMixingRatio:      iceMixingRatio,
		CloudIceNumber:      cloudIceNumber,
		Height:              height,
		HydrostaticDP:       hydrostaticDP,
		CloudFraction:       cloudFraction,
		UpdraftVelocity:     updraftVelocity,
		BoundaryLayerHeight: pblh,
		numLevels:           n,
	}, nil
}

// NumLevels returns the number of vertical levels in the column.
func (a *Atmosphere) NumLevels() int { return a.numLevels }

// QuantitiesNonnegative reports whether all physical quantities in the
// column are nonnegative. It is a validity check, not an enforcement:
// callers decide whether a violation is fatal.
func (a *Atmosphere) QuantitiesNonnegative() bool {
	for k := 0; k < a.numLevels; k++ {
		if a.Temperature[k] < 0 || a.Pressure[k] < 0 ||
			a.VaporMixingRatio[k] < 0 || a.LiquidMixingRatio[k] < 0 ||
			a.IceMixingRatio[k] < 0 || a.CloudLiquidNumber[k] < 0 ||
			a.CloudIceNumber[k] < 0 {
			return false
		}
	}
	return true
}
