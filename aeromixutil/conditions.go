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

package aeromixutil

import (
	"fmt"

	"github.com/ctessum/sparse"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// InitialConditions builds the initial state matrix for a chemistry run
// from the initial_conditions configuration section: scalar density,
// pressure, and temperature shared by all batch elements, and one
// concentration per batch element per species. A species given a single
// value is broadcast across the batch; a species absent from the section
// starts at zero.
func InitialConditions(cfg *viper.Viper, speciesNames []string, nbatch int) (*sparse.DenseArray, error) {
	if !cfg.IsSet("initial_conditions") {
		return nil, fmt.Errorf("aeromix: configuration has no initial_conditions section")
	}
	for _, key := range []string{"density", "pressure", "temperature"} {
		if !cfg.IsSet("initial_conditions." + key) {
			return nil, fmt.Errorf("aeromix: initial_conditions is missing required key %q", key)
		}
	}

	state := sparse.ZerosDense(nbatch, chemStateDim(len(speciesNames)))
	density := cfg.GetFloat64("initial_conditions.density")
	pressure := cfg.GetFloat64("initial_conditions.pressure")
	temperature := cfg.GetFloat64("initial_conditions.temperature")
	for i := 0; i < nbatch; i++ {
		state.Set(density, i, 0)
		state.Set(pressure, i, 1)
		state.Set(temperature, i, 2)
	}

	for k, name := range speciesNames {
		key := "initial_conditions.species." + name
		if !cfg.IsSet(key) {
			continue
		}
		vals, err := toFloat64SliceE(cfg.Get(key))
		if err != nil {
			return nil, fmt.Errorf("aeromix: parsing %s: %v", key, err)
		}
		switch len(vals) {
		case nbatch:
		case 1:
			for len(vals) < nbatch {
				vals = append(vals, vals[0])
			}
		default:
			return nil, fmt.Errorf("aeromix: %s has %d values for %d batch elements",
				key, len(vals), nbatch)
		}
		for i, v := range vals {
			state.Set(v, i, 3+k)
		}
	}
	return state, nil
}

func chemStateDim(numSpecies int) int { return 3 + numSpecies }

// toFloat64SliceE converts a configuration value to a slice of floats,
// treating a scalar as a one-element slice.
func toFloat64SliceE(s interface{}) ([]float64, error) {
	if v, ok := s.([]interface{}); ok {
		o := make([]float64, len(v))
		for i, val := range v {
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return nil, err
			}
			o[i] = f
		}
		return o, nil
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return nil, err
	}
	return []float64{f}, nil
}
