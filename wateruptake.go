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

import "math"

// Diagnostic variables maintained by the water uptake process.
const (
	// AeroWaterVar is the per-mode aerosol water mixing ratio [kg/kg].
	AeroWaterVar = "aero_water"
	// TotalAeroWaterVar is the aerosol water mixing ratio summed over
	// modes [kg/kg].
	TotalAeroWaterVar = "total_aero_water"
	// MeanWetDiameterVar is the per-mode geometric mean wet particle
	// diameter [m].
	MeanWetDiameterVar = "mean_wet_diameter"
)

// Bounds within which Kohler theory applies. Relative humidity above the
// maximum means saturated air, where cloud processes take over; outside the
// radius and hygroscopicity bounds the quartic becomes too ill-conditioned
// to solve reliably.
const (
	kohlerRHMin        = 0.05
	kohlerRHMax        = 0.98
	kohlerHygroMin     = 1e-6
	kohlerHygroMax     = 1.3
	kohlerDryRadMinμm  = 1e-3
	kohlerDryRadMaxμm  = 30.0
	criticalTempWater  = 647.096 // critical temperature of water [K]
)

// kohlerPolynomial is the equilibrium condition for the wet radius of an
// aqueous aerosol particle,
//
//	K(rw) = (log(s)*rw - A)*rw³ + ((B - log(s))*rw + A)*rd³
//
// where rw is the wet radius and rd the dry radius, both in microns, s is
// relative humidity, A is the Kelvin effect coefficient in microns, and B is
// hygroscopicity. The equilibrium wet radius is the positive real root.
// The quartic is severely ill-conditioned, so radii are kept in microns to
// balance the coefficient magnitudes.
type kohlerPolynomial struct {
	logRH      float64
	hygro      float64
	dryRadius  float64 // [μm]
	dryRadius3 float64
	kelvinA    float64 // [μm]
}

// newKohlerPolynomial builds the polynomial for relative humidity s,
// hygroscopicity b, dry radius rd in microns, and temperature T in Kelvin,
// clamping each input to the bounds where Kohler theory is valid.
func newKohlerPolynomial(s, b, rd, T float64) kohlerPolynomial {
	s = math.Min(math.Max(s, kohlerRHMin), kohlerRHMax)
	b = math.Min(math.Max(b, kohlerHygroMin), kohlerHygroMax)
	rd = math.Min(math.Max(rd, kohlerDryRadMinμm), kohlerDryRadMaxμm)
	return kohlerPolynomial{
		logRH:      math.Log(s),
		hygro:      b,
		dryRadius:  rd,
		dryRadius3: rd * rd * rd,
		kelvinA:    kelvinCoefficient(T) * 1e6,
	}
}

func (p kohlerPolynomial) at(rw float64) float64 {
	return (p.logRH*rw-p.kelvinA)*rw*rw*rw +
		((p.hygro-p.logRH)*rw+p.kelvinA)*p.dryRadius3
}

func (p kohlerPolynomial) slopeAt(rw float64) float64 {
	return (4*p.logRH*rw-3*p.kelvinA)*rw*rw +
		(p.hygro-p.logRH)*p.dryRadius3
}

// rootBisection solves for the wet radius by bisection on
// [dryRadius, 25*dryRadius], which brackets the positive root since
// K(rd) > 0 and K(25*rd) < 0 for valid inputs.
func (p kohlerPolynomial) rootBisection() float64 {
	lo, hi := p.dryRadius, 25*p.dryRadius
	for i := 0; i < 100; i++ {
		mid := 0.5 * (lo + hi)
		if hi-lo < 1e-10*p.dryRadius {
			return mid
		}
		if p.at(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// rootNewton solves for the wet radius by Newton iteration started at the
// upper bracket, where the quartic is monotone decreasing toward the root.
func (p kohlerPolynomial) rootNewton() float64 {
	rw := 25 * p.dryRadius
	for i := 0; i < 50; i++ {
		slope := p.slopeAt(rw)
		if slope == 0 {
			break
		}
		next := rw - p.at(rw)/slope
		if next < p.dryRadius {
			next = p.dryRadius
		}
		if math.Abs(next-rw) < 1e-10*p.dryRadius {
			return next
		}
		rw = next
	}
	return rw
}

// surfaceTensionWaterAir is the surface tension of liquid water in air
// [N/m] as a function of temperature, from IAPWS R1-76(2014). Valid from
// supercooled liquid water at 248.16 K to the critical temperature.
func surfaceTensionWaterAir(T float64) float64 {
	const (
		b  = 0.2358
		b1 = -0.625
		μ  = 1.256
	)
	τ := 1 - T/criticalTempWater
	return b * math.Pow(τ, μ) * (1 + b1*τ)
}

// kelvinCoefficient is the coefficient of the Kelvin effect [m], equation
// (A1) of Ghan et al. (2011).
func kelvinCoefficient(T float64) float64 {
	return 2 * mwH2O * surfaceTensionWaterAir(T) /
		(rGasH2OVapor * T * densityH2O)
}

// KohlerUptake is a diagnostic process that computes the equilibrium water
// content of interstitial aerosol particles from Kohler theory. It maintains
// the aero_water, total_aero_water, and mean_wet_diameter diagnostic
// variables.
type KohlerUptake struct {
	useBisection bool

	// per-mode dry geometric mean radius [μm]
	dryRadius []float64
	// hygroscopicities of the species in each mode, indexed [mode][species]
	hygro [][]float64
}

// NewKohlerUptake creates a water uptake process. If useBisection is true
// the Kohler equation is solved by bisection, otherwise by Newton iteration.
func NewKohlerUptake(useBisection bool) *KohlerUptake {
	return &KohlerUptake{useBisection: useBisection}
}

// Name returns the process name.
func (p *KohlerUptake) Name() string { return "Kohler equilibrium water uptake" }

// Type returns WaterUptakeProcess.
func (p *KohlerUptake) Type() ProcessType { return WaterUptakeProcess }

// Init caches the dry geometric mean radius and the species
// hygroscopicities of each mode.
func (p *KohlerUptake) Init(m *Model) error {
	modes := m.Modes()
	p.dryRadius = make([]float64, len(modes))
	p.hygro = make([][]float64, len(modes))
	for i, mode := range modes {
		p.dryRadius[i] = math.Sqrt(mode.MinDiameter*mode.MaxDiameter) / 2 * 1e6
		species := m.AerosolSpeciesForMode(i)
		p.hygro[i] = make([]float64, len(species))
		for j, s := range species {
			p.hygro[i][j] = s.Hygroscopicity
		}
	}
	return nil
}

// Prepare registers the diagnostic variables this process maintains.
func (p *KohlerUptake) Prepare(diags *Diagnostics) {
	diags.EnsureModalVar(AeroWaterVar)
	diags.EnsureColumnVar(TotalAeroWaterVar)
	diags.EnsureModalVar(MeanWetDiameterVar)
}

// Update recomputes the water uptake diagnostics from the current state.
func (p *KohlerUptake) Update(m *Model, t float64, atm *Atmosphere,
	progs *Prognostics, diags *Diagnostics) {
	aeroWater, err := diags.Var(AeroWaterVar)
	if err != nil {
		panic(err)
	}
	totalWater, err := diags.Var(TotalAeroWaterVar)
	if err != nil {
		panic(err)
	}
	wetDiam, err := diags.Var(MeanWetDiameterVar)
	if err != nil {
		panic(err)
	}

	for k := 0; k < atm.NumLevels(); k++ {
		T := atm.Temperature[k]
		s := relativeHumidity(atm.VaporMixingRatio[k], T, atm.Pressure[k])
		total := 0.0
		for mode := 0; mode < progs.NumAerosolModes(); mode++ {
			b := p.modeHygroscopicity(progs, mode, k)
			poly := newKohlerPolynomial(s, b, p.dryRadius[mode], T)
			var rw float64
			if p.useBisection {
				rw = poly.rootBisection()
			} else {
				rw = poly.rootNewton()
			}
			rwm := rw * 1e-6          // [m]
			rdm := poly.dryRadius * 1e-6 // [m]

			n := progs.InterstitialNumConcs.Get(mode, k)
			water := densityH2O * 4 * math.Pi / 3 *
				(rwm*rwm*rwm - rdm*rdm*rdm) * n
			aeroWater.Set(water, mode, k)
			wetDiam.Set(2*rwm, mode, k)
			total += water
		}
		totalWater.Set(total, k)
	}
}

// modeHygroscopicity is the mass-weighted mean hygroscopicity of the species
// in a mode. Modes holding no mass fall back to the unweighted mean.
func (p *KohlerUptake) modeHygroscopicity(progs *Prognostics, mode, k int) float64 {
	var weighted, mass float64
	for j, h := range p.hygro[mode] {
		q := progs.InterstitialAerosols.Get(progs.PopulationIndex(mode, j), k)
		weighted += h * q
		mass += q
	}
	if mass <= 0 {
		var sum float64
		for _, h := range p.hygro[mode] {
			sum += h
		}
		return sum / float64(len(p.hygro[mode]))
	}
	return weighted / mass
}

// relativeHumidity converts a water vapor mass mixing ratio [kg/kg] to
// relative humidity using the Bolton (1980) saturation vapor pressure fit.
func relativeHumidity(qv, T, press float64) float64 {
	esat := 611.2 * math.Exp(17.67*(T-273.15)/(T-29.65)) // [Pa]
	ε := mwH2O / mwDryAir
	qsat := ε * esat / (press - esat)
	if qsat <= 0 {
		return kohlerRHMax
	}
	return qv / qsat
}
