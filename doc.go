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

// Package aeromix simulates aerosol microphysics and gas-phase chemistry
// within vertical atmospheric columns embedded in a host climate or
// earth-system model.
//
// A Model binds a set of pluggable aerosol process implementations to shared
// mode, species, and gas metadata, and dispatches time steps to the selected
// implementation for each process type. Prognostic processes produce
// tendencies that are folded back into the evolving state; diagnostic
// processes recompute derived quantities in place. Chemical concentrations
// are advanced through time by the batched implicit integrator in the
// chemdriver subpackage.
package aeromix
