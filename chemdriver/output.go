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

import (
	"fmt"
	"io"

	"github.com/ctessum/sparse"
)

// A StateWriter appends per-step state records to an output sink as
// tab-delimited text: one header line, then one line per batch element per
// step holding the iteration index, time, step size, density, pressure,
// temperature, and the species concentrations.
type StateWriter struct {
	w     io.Writer
	names []string
}

// NewStateWriter creates a writer for a run with the given species names.
func NewStateWriter(w io.Writer, speciesNames []string) *StateWriter {
	return &StateWriter{w: w, names: speciesNames}
}

// WriteHeader writes the column-name line, with units for the fixed fields.
func (sw *StateWriter) WriteHeader() error {
	if _, err := fmt.Fprintf(sw.w, "%s \t %s \t %s \t ", "iter", "t", "dt"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(sw.w, "%s \t %s \t %s \t", "Density[kg/m3]",
		"Pressure[Pascal]", "Temperature[K]"); err != nil {
		return err
	}
	for _, name := range sw.names {
		if _, err := fmt.Fprintf(sw.w, "%s \t", name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(sw.w)
	return err
}

// WriteState writes one line per batch element for the given iteration
// index. The initial condition is written with the sentinel index -1.
func (sw *StateWriter) WriteState(iter int, t, dt []float64, state *sparse.DenseArray) error {
	nbatch, dim := state.Shape[0], state.Shape[1]
	for i := 0; i < nbatch; i++ {
		if _, err := fmt.Fprintf(sw.w, "%d \t %15.10e \t  %15.10e \t ",
			iter, t[i], dt[i]); err != nil {
			return err
		}
		for k := 0; k < dim; k++ {
			if _, err := fmt.Fprintf(sw.w, "%15.10e \t", state.Get(i, k)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(sw.w); err != nil {
			return err
		}
	}
	return nil
}

// printQoI writes a one-line screen summary for one batch element: current
// time, time elapsed within the step, density, pressure, temperature, and
// the species concentrations.
func printQoI(w io.Writer, tadv TimeAdvance, t float64, state []float64) {
	fmt.Fprintf(w, "%e %e %e %e %e", t, t-tadv.TBegin,
		state[stateDensity], state[statePressure], state[stateTemperature])
	for k := NumNonSpeciesFields; k < len(state); k++ {
		fmt.Fprintf(w, " %e", state[k])
	}
	fmt.Fprintln(w)
}
