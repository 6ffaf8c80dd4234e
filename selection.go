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

// ProcessType enumerates the aerosol process types a Model orchestrates.
type ProcessType int

// The prognostic process types, followed by the diagnostic ones.
const (
	ActivationProcess ProcessType = iota
	CloudBorneWetRemovalProcess
	CoagulationProcess
	CondensationProcess
	DryDepositionProcess
	EmissionsProcess
	NucleationProcess
	ResuspensionProcess

	WaterUptakeProcess
)

func (t ProcessType) String() string {
	switch t {
	case ActivationProcess:
		return "activation"
	case CloudBorneWetRemovalProcess:
		return "cloud-borne wet removal"
	case CoagulationProcess:
		return "coagulation"
	case CondensationProcess:
		return "condensation"
	case DryDepositionProcess:
		return "dry deposition"
	case EmissionsProcess:
		return "emissions"
	case NucleationProcess:
		return "nucleation"
	case ResuspensionProcess:
		return "resuspension"
	case WaterUptakeProcess:
		return "water uptake"
	default:
		return fmt.Sprintf("unknown process type %d", int(t))
	}
}

// PrognosticProcessTypes lists every prognostic process type a Model
// resolves at construction, in application order.
var PrognosticProcessTypes = []ProcessType{
	ActivationProcess,
	CloudBorneWetRemovalProcess,
	CoagulationProcess,
	CondensationProcess,
	DryDepositionProcess,
	EmissionsProcess,
	NucleationProcess,
	ResuspensionProcess,
}

// DiagnosticProcessTypes lists every diagnostic process type a Model
// resolves at construction.
var DiagnosticProcessTypes = []ProcessType{
	WaterUptakeProcess,
}

// Models for each process type. The zero value of each enum selects no
// implementation, which the registry resolves to the null process.
type (
	// ActivationModel selects an activation parameterization.
	ActivationModel int
	// CloudBorneWetRemovalModel selects a cloud-borne wet removal
	// parameterization.
	CloudBorneWetRemovalModel int
	// CoagulationModel selects a coagulation parameterization.
	CoagulationModel int
	// CondensationModel selects a condensation parameterization.
	CondensationModel int
	// DryDepositionModel selects a dry deposition parameterization.
	DryDepositionModel int
	// EmissionsModel selects an emissions parameterization.
	EmissionsModel int
	// NucleationModel selects a nucleation parameterization.
	NucleationModel int
	// ResuspensionModel selects a resuspension parameterization.
	ResuspensionModel int
	// WaterUptakeModel selects a water uptake parameterization.
	WaterUptakeModel int
)

// The available selections for each process type.
const (
	NoActivation ActivationModel = iota
)
const (
	NoCloudBorneWetRemoval CloudBorneWetRemovalModel = iota
	// EMEPCloudBorneWetRemoval scavenges cloud-borne aerosol using the
	// EMEP wet deposition parameterization.
	EMEPCloudBorneWetRemoval
)
const (
	NoCoagulation CoagulationModel = iota
)
const (
	NoCondensation CondensationModel = iota
)
const (
	NoDryDeposition DryDepositionModel = iota
)
const (
	NoEmissions EmissionsModel = iota
	// PrescribedEmissions injects caller-specified surface emission rates.
	PrescribedEmissions
)
const (
	NoNucleation NucleationModel = iota
	// PBLNucleation is Wang & Penner (2008) boundary-layer H2SO4
	// nucleation.
	PBLNucleation
)
const (
	NoResuspension ResuspensionModel = iota
)
const (
	NoWaterUptake WaterUptakeModel = iota
	// KohlerWaterUptake computes modal wet diameters and aerosol water by
	// solving the Kohler polynomial.
	KohlerWaterUptake
)

// Selections records which implementation the caller has chosen for each
// process type, along with any process-specific configuration. The zero
// value selects the null process for every type.
type Selections struct {
	Activation           ActivationModel
	CloudBorneWetRemoval CloudBorneWetRemovalModel
	Coagulation          CoagulationModel
	Condensation         CondensationModel
	DryDeposition        DryDepositionModel
	Emissions            EmissionsModel
	Nucleation           NucleationModel
	Resuspension         ResuspensionModel
	WaterUptake          WaterUptakeModel

	// NucleationOrder chooses between the first- and second-order
	// boundary-layer nucleation rates of Wang & Penner (2008).
	// Values other than 2 mean first-order.
	NucleationOrder int

	// EmissionRecords are the sources used by PrescribedEmissions.
	EmissionRecords []EmissionRecord

	// WaterUptakeBisection solves the Kohler polynomial by bisection
	// instead of Newton iteration.
	WaterUptakeBisection bool
}

// SelectAerosolProcess resolves the requested prognostic process type and
// the caller's selections to a concrete process instance. Exactly one
// implementation is returned per call; an unrecognized (type, selection)
// combination is a configuration error, reported here at setup time rather
// than deferred to simulation runtime.
func SelectAerosolProcess(t ProcessType, sel Selections) (AerosolProcess, error) {
	switch t {
	case ActivationProcess:
		if sel.Activation == NoActivation {
			return NewNullProcess(t), nil
		}
	case CloudBorneWetRemovalProcess:
		switch sel.CloudBorneWetRemoval {
		case NoCloudBorneWetRemoval:
			return NewNullProcess(t), nil
		case EMEPCloudBorneWetRemoval:
			return NewEMEPWetRemoval(), nil
		}
	case CoagulationProcess:
		if sel.Coagulation == NoCoagulation {
			return NewNullProcess(t), nil
		}
	case CondensationProcess:
		if sel.Condensation == NoCondensation {
			return NewNullProcess(t), nil
		}
	case DryDepositionProcess:
		if sel.DryDeposition == NoDryDeposition {
			return NewNullProcess(t), nil
		}
	case EmissionsProcess:
		switch sel.Emissions {
		case NoEmissions:
			return NewNullProcess(t), nil
		case PrescribedEmissions:
			return NewSurfaceEmissions(sel.EmissionRecords)
		}
	case NucleationProcess:
		switch sel.Nucleation {
		case NoNucleation:
			return NewNullProcess(t), nil
		case PBLNucleation:
			return NewWang2008Nucleation(sel.NucleationOrder), nil
		}
	case ResuspensionProcess:
		if sel.Resuspension == NoResuspension {
			return NewNullProcess(t), nil
		}
	}
	return nil, fmt.Errorf("aeromix: no %v process matches the given selections", t)
}

// SelectDiagnosticProcess is the diagnostic-process counterpart of
// SelectAerosolProcess.
func SelectDiagnosticProcess(t ProcessType, sel Selections) (DiagnosticProcess, error) {
	switch t {
	case WaterUptakeProcess:
		switch sel.WaterUptake {
		case NoWaterUptake:
			return NewNullProcess(t), nil
		case KohlerWaterUptake:
			return NewKohlerUptake(sel.WaterUptakeBisection), nil
		}
	}
	return nil, fmt.Errorf("aeromix: no %v process matches the given selections", t)
}
