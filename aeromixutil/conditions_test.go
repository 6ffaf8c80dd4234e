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
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func configFrom(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	cfg := viper.New()
	cfg.SetConfigType("yaml")
	if err := cfg.ReadConfig(bytes.NewBufferString(yaml)); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestInitialConditions(t *testing.T) {
	cfg := configFrom(t, `
initial_conditions:
  density: 1.2
  pressure: 101325
  temperature: 288.15
  species:
    SO2: [1.0e-6, 2.0e-6]
    H2SO4: 3.0e-9
`)
	state, err := InitialConditions(cfg, []string{"SO2", "H2SO4", "SOA"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if have, want := state.Shape[0], 2; have != want {
		t.Errorf("batch size: have %d, want %d", have, want)
	}
	if have, want := state.Shape[1], 6; have != want {
		t.Errorf("state dimension: have %d, want %d", have, want)
	}
	for i := 0; i < 2; i++ {
		if have, want := state.Get(i, 0), 1.2; have != want {
			t.Errorf("element %d density: have %g, want %g", i, have, want)
		}
		if have, want := state.Get(i, 2), 288.15; have != want {
			t.Errorf("element %d temperature: have %g, want %g", i, have, want)
		}
		// The scalar H2SO4 value broadcasts across the batch.
		if have, want := state.Get(i, 4), 3.0e-9; have != want {
			t.Errorf("element %d H2SO4: have %g, want %g", i, have, want)
		}
		// SOA is absent from the configuration and starts at zero.
		if have := state.Get(i, 5); have != 0 {
			t.Errorf("element %d SOA: have %g, want 0", i, have)
		}
	}
	if have, want := state.Get(0, 3), 1.0e-6; have != want {
		t.Errorf("element 0 SO2: have %g, want %g", have, want)
	}
	if have, want := state.Get(1, 3), 2.0e-6; have != want {
		t.Errorf("element 1 SO2: have %g, want %g", have, want)
	}
}

func TestInitialConditionsMissingSection(t *testing.T) {
	cfg := configFrom(t, `driver: {nbatch: 1}`)
	if _, err := InitialConditions(cfg, []string{"SO2"}, 1); err == nil {
		t.Fatal("expected an error for a missing initial_conditions section")
	}
}

func TestInitialConditionsMissingKey(t *testing.T) {
	cfg := configFrom(t, `
initial_conditions:
  density: 1.2
  pressure: 101325
`)
	_, err := InitialConditions(cfg, []string{"SO2"}, 1)
	if err == nil {
		t.Fatal("expected an error for a missing temperature key")
	}
	if !strings.Contains(err.Error(), "temperature") {
		t.Errorf("error %q does not name the missing key", err)
	}
}

func TestInitialConditionsBatchMismatch(t *testing.T) {
	cfg := configFrom(t, `
initial_conditions:
  density: 1.2
  pressure: 101325
  temperature: 288.15
  species:
    SO2: [1.0e-6, 2.0e-6, 3.0e-6]
`)
	if _, err := InitialConditions(cfg, []string{"SO2"}, 2); err == nil {
		t.Fatal("expected an error for a species list not matching the batch size")
	}
}
