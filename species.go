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

// Mode represents a parametric aerosol size class (e.g. Aitken,
// accumulation) and its associated metadata. Modes are immutable once
// created and are owned by the Model's mode list.
type Mode struct {
	// Name is a unique name for the mode.
	Name string
	// MinDiameter and MaxDiameter bound the particle diameters that
	// belong to this mode [m].
	MinDiameter, MaxDiameter float64
	// GeomStdDev is the geometric standard deviation of the mode's
	// lognormal size distribution.
	GeomStdDev float64
}

// Species represents an aerosol species that participates in one or more
// microphysics parameterizations. Species are referenced by index, not by
// pointer, from mode-to-species associations.
type Species struct {
	// Name is a unique name for the species.
	Name string
	// MolecularWeight [kg/mol].
	MolecularWeight float64
	// Density of the dry species [kg/m³].
	Density float64
	// Hygroscopicity is the dimensionless hygroscopicity parameter used
	// by water uptake parameterizations.
	Hygroscopicity float64
}

// GasSpecies represents a gas that participates in one or more aerosol
// microphysics parameterizations.
type GasSpecies struct {
	// Name is a unique name for the gas.
	Name string
	// MolecularWeight [kg/mol].
	MolecularWeight float64
}
