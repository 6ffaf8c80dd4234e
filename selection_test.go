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

import "testing"

// Every enumerated process type must resolve to a non-nil implementation
// reporting the requested type, for both the zero-value and the fully
// populated selections.
func TestSelectionTotality(t *testing.T) {
	for _, sel := range []Selections{{}, TestSelections()} {
		for _, pt := range PrognosticProcessTypes {
			p, err := SelectAerosolProcess(pt, sel)
			if err != nil {
				t.Fatalf("%v: %v", pt, err)
			}
			if p == nil {
				t.Fatalf("%v: resolved to a nil process", pt)
			}
			if p.Type() != pt {
				t.Errorf("%v: process %q reports type %v", pt, p.Name(), p.Type())
			}
		}
		for _, pt := range DiagnosticProcessTypes {
			p, err := SelectDiagnosticProcess(pt, sel)
			if err != nil {
				t.Fatalf("%v: %v", pt, err)
			}
			if p == nil {
				t.Fatalf("%v: resolved to a nil process", pt)
			}
			if p.Type() != pt {
				t.Errorf("%v: process %q reports type %v", pt, p.Name(), p.Type())
			}
		}
	}
}

func TestSelectionUnknownModel(t *testing.T) {
	sel := Selections{Nucleation: NucleationModel(99)}
	if _, err := SelectAerosolProcess(NucleationProcess, sel); err == nil {
		t.Error("expected an error for an out-of-range nucleation model")
	}
	sel = Selections{WaterUptake: WaterUptakeModel(99)}
	if _, err := SelectDiagnosticProcess(WaterUptakeProcess, sel); err == nil {
		t.Error("expected an error for an out-of-range water uptake model")
	}
}

func TestProcessTypeStrings(t *testing.T) {
	cases := map[ProcessType]string{
		ActivationProcess:           "activation",
		CloudBorneWetRemovalProcess: "cloud-borne wet removal",
		NucleationProcess:           "nucleation",
		WaterUptakeProcess:          "water uptake",
	}
	for pt, want := range cases {
		if have := pt.String(); have != want {
			t.Errorf("ProcessType %d: have %q, want %q", pt, have, want)
		}
	}
}
