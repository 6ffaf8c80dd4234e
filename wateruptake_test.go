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

// The positive root of the Kohler polynomial is bracketed by
// [dryRadius, 25*dryRadius] for inputs within the theory's bounds.
func TestKohlerRootBracket(t *testing.T) {
	cases := []struct {
		s, b, rd float64 // relative humidity, hygroscopicity, dry radius [μm]
	}{
		{0.5, 0.507, 0.02},
		{0.8, 0.14, 0.1},
		{0.98, 1.3, 0.01},
		{0.05, 1e-6, 1.0},
		{0.9, 0.6, 10},
	}
	for _, c := range cases {
		poly := newKohlerPolynomial(c.s, c.b, c.rd, 273.16)
		if poly.at(poly.dryRadius) <= 0 {
			t.Errorf("s=%g b=%g rd=%g: K(rd) = %g, want > 0",
				c.s, c.b, c.rd, poly.at(poly.dryRadius))
		}
		if poly.at(25*poly.dryRadius) >= 0 {
			t.Errorf("s=%g b=%g rd=%g: K(25 rd) = %g, want < 0",
				c.s, c.b, c.rd, poly.at(25*poly.dryRadius))
		}
	}
}

// Bisection and Newton iteration must agree on the equilibrium wet radius.
func TestKohlerSolversAgree(t *testing.T) {
	cases := []struct {
		s, b, rd float64
	}{
		{0.5, 0.507, 0.02},
		{0.8, 0.14, 0.1},
		{0.9, 0.6, 0.05},
	}
	for _, c := range cases {
		poly := newKohlerPolynomial(c.s, c.b, c.rd, 273.16)
		bis := poly.rootBisection()
		newt := poly.rootNewton()
		if different(bis, newt, 1e-6) {
			t.Errorf("s=%g b=%g rd=%g: bisection %g and Newton %g disagree",
				c.s, c.b, c.rd, bis, newt)
		}
		if bis < poly.dryRadius {
			t.Errorf("s=%g b=%g rd=%g: wet radius %g below dry radius %g",
				c.s, c.b, c.rd, bis, poly.dryRadius)
		}
	}
}

// Higher humidity means a larger equilibrium droplet.
func TestKohlerMonotoneInHumidity(t *testing.T) {
	prev := 0.0
	for _, s := range []float64{0.3, 0.5, 0.7, 0.9, 0.97} {
		poly := newKohlerPolynomial(s, 0.507, 0.05, 273.16)
		rw := poly.rootBisection()
		if rw <= prev {
			t.Fatalf("s=%g: wet radius %g not larger than %g at lower humidity",
				s, rw, prev)
		}
		prev = rw
	}
}

func TestWaterUptakeDiagnostics(t *testing.T) {
	m, err := CreateTestModel(TestSelections(), 6)
	if err != nil {
		t.Fatal(err)
	}
	pool := NewColumnPool(6, 16)
	atm := CreateTestAtmosphere(pool, 1000)
	progs := m.CreatePrognostics()
	diags := m.CreateDiagnostics()

	// Put some particles in each mode.
	for mode := 0; mode < progs.NumAerosolModes(); mode++ {
		for k := 0; k < 6; k++ {
			progs.InterstitialNumConcs.Set(1e8, mode, k)
			progs.InterstitialAerosols.Set(1e-9, progs.PopulationIndex(mode, 0), k)
		}
	}

	m.UpdateState(WaterUptakeProcess, 0, atm, progs, diags)

	aeroWater, err := diags.Var(AeroWaterVar)
	if err != nil {
		t.Fatal(err)
	}
	totalWater, err := diags.Var(TotalAeroWaterVar)
	if err != nil {
		t.Fatal(err)
	}
	wetDiam, err := diags.Var(MeanWetDiameterVar)
	if err != nil {
		t.Fatal(err)
	}

	for k := 0; k < 6; k++ {
		var sum float64
		for mode := 0; mode < progs.NumAerosolModes(); mode++ {
			w := aeroWater.Get(mode, k)
			if w <= 0 {
				t.Errorf("mode %d level %d: aerosol water %g, want > 0", mode, k, w)
			}
			sum += w
			d := wetDiam.Get(mode, k)
			dryDiam := 2 * 1e-6 * kohlerDryRadMinμm // smallest permitted dry size
			if d <= dryDiam {
				t.Errorf("mode %d level %d: wet diameter %g not above dry size", mode, k, d)
			}
		}
		if different(sum, totalWater.Get(k), testTolerance) {
			t.Errorf("level %d: total water %g does not match mode sum %g",
				k, totalWater.Get(k), sum)
		}
	}
}
