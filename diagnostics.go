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
	"sort"

	"github.com/ctessum/sparse"
)

// Diagnostics holds derived per-column quantities recomputed from prognostic
// state by diagnostic processes. Beyond the fixed dimensions it is a named
// variable table: each diagnostic process declares the variables it needs
// during Model.CreateDiagnostics, before the first Update.
type Diagnostics struct {
	numAeroSpecies []int
	numGases       int
	numLevels      int

	vars map[string]*sparse.DenseArray
}

func newDiagnostics(numAeroSpecies []int, numGases, numLevels int) *Diagnostics {
	return &Diagnostics{
		numAeroSpecies: append([]int{}, numAeroSpecies...),
		numGases:       numGases,
		numLevels:      numLevels,
		vars:           make(map[string]*sparse.DenseArray),
	}
}

// NumAerosolModes returns the number of aerosol modes.
func (d *Diagnostics) NumAerosolModes() int { return len(d.numAeroSpecies) }

// NumGases returns the number of gas species.
func (d *Diagnostics) NumGases() int { return d.numGases }

// NumLevels returns the number of vertical levels.
func (d *Diagnostics) NumLevels() int { return d.numLevels }

// HasVar reports whether a diagnostic variable with the given name exists.
func (d *Diagnostics) HasVar(name string) bool {
	_, ok := d.vars[name]
	return ok
}

// Var returns the diagnostic variable with the given name, or an error
// naming the variable and listing the ones that exist.
func (d *Diagnostics) Var(name string) (*sparse.DenseArray, error) {
	v, ok := d.vars[name]
	if !ok {
		return nil, fmt.Errorf("aeromix: no diagnostic variable %q; have %v",
			name, d.VarNames())
	}
	return v, nil
}

// EnsureVar creates the diagnostic variable with the given name and shape if
// it does not already exist, returning it either way. A diagnostic process
// must declare its variables here, from Prepare, rather than at first Update.
// It returns an error if the variable exists with a different shape.
func (d *Diagnostics) EnsureVar(name string, shape ...int) (*sparse.DenseArray, error) {
	if v, ok := d.vars[name]; ok {
		if len(v.Shape) != len(shape) {
			return nil, fmt.Errorf("aeromix: diagnostic variable %q already exists "+
				"with shape %v; requested %v", name, v.Shape, shape)
		}
		for i, s := range shape {
			if v.Shape[i] != s {
				return nil, fmt.Errorf("aeromix: diagnostic variable %q already exists "+
					"with shape %v; requested %v", name, v.Shape, shape)
			}
		}
		return v, nil
	}
	v := sparse.ZerosDense(shape...)
	d.vars[name] = v
	return v, nil
}

// EnsureModalVar is shorthand for EnsureVar with a [mode, level] shape.
func (d *Diagnostics) EnsureModalVar(name string) (*sparse.DenseArray, error) {
	return d.EnsureVar(name, len(d.numAeroSpecies), d.numLevels)
}

// EnsureColumnVar is shorthand for EnsureVar with a [level] shape.
func (d *Diagnostics) EnsureColumnVar(name string) (*sparse.DenseArray, error) {
	return d.EnsureVar(name, d.numLevels)
}

// VarNames returns the names of all diagnostic variables in sorted order.
func (d *Diagnostics) VarNames() []string {
	names := make([]string, 0, len(d.vars))
	for name := range d.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
