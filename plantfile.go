// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// PlantFile is the YAML document describing a plant: the components to
// construct and the links wiring their outlets to downstream inlets.
type PlantFile struct {
	// Components lists the components to construct.
	Components []ComponentConfig `yaml:"components"`

	// Links lists the outlet-to-inlet connections.
	Links []LinkConfig `yaml:"links"`
}

// ComponentConfig describes one component in a [PlantFile].
//
// Kind selects the variant; the remaining fields seed the state
// recognized by that variant and are zero-valued when omitted.
// Position and Speed are declared as floats so that the runtime
// integer contract applies to plant files exactly as it does to
// operator commands.
type ComponentConfig struct {
	// Kind is one of "gate", "globe", "relief", "centrifugal", or
	// "positive_displacement".
	Kind string `yaml:"kind"`

	// Name identifies the component, unique within the plant.
	Name string `yaml:"name"`

	// Position is the initial valve percent open.
	Position float64 `yaml:"position,omitempty"`

	// FlowCoeff is the valve flow coefficient (Cv).
	FlowCoeff float64 `yaml:"flow_coeff,omitempty"`

	// InletFlow seeds the valve inlet flow, gpm.
	InletFlow float64 `yaml:"inlet_flow,omitempty"`

	// InletPressure seeds the valve inlet pressure, psi.
	InletPressure float64 `yaml:"inlet_pressure,omitempty"`

	// OpenSetpoint is the relief opening threshold, psi.
	OpenSetpoint float64 `yaml:"open_setpoint,omitempty"`

	// CloseSetpoint is the relief closing threshold, psi.
	CloseSetpoint float64 `yaml:"close_setpoint,omitempty"`

	// Speed is the initial pump speed, rpm.
	Speed float64 `yaml:"speed,omitempty"`

	// FlowRate is the initial pump flow rate, gpm.
	FlowRate float64 `yaml:"flow_rate,omitempty"`

	// HeadIn is the pump inlet head, feet.
	HeadIn float64 `yaml:"head_in,omitempty"`

	// OutletPressure is the initial pump outlet pressure, psi.
	OutletPressure float64 `yaml:"outlet_pressure,omitempty"`

	// ShaftPower is the initial pump shaft power, horsepower.
	ShaftPower float64 `yaml:"shaft_power,omitempty"`

	// Displacement is the positive-displacement volume, gal/rev.
	Displacement float64 `yaml:"displacement,omitempty"`
}

// LinkConfig describes one outlet-to-inlet connection in a [PlantFile].
type LinkConfig struct {
	// From names the upstream component.
	From string `yaml:"from"`

	// To names the downstream component.
	To string `yaml:"to"`
}

// LoadPlant reads a [PlantFile] document from r and builds the fully
// wired [*Network] it describes.
//
// The cfg argument contains the common configuration for hydro components.
//
// The logger argument is the [SLogger] passed to every constructed
// component and to the network itself.
//
// An unknown kind, a duplicate component name, or a link naming an
// unknown component fails with [ErrInvalidArgument]. A fractional
// position or speed fails with [ErrTypeMismatch]. YAML decoding errors
// are returned as produced by the decoder.
func LoadPlant(cfg *Config, r io.Reader, logger SLogger) (*Network, error) {
	var plant PlantFile
	if err := yaml.NewDecoder(r).Decode(&plant); err != nil {
		logger.Info("plantLoadDone", slog.Any("err", err),
			slog.String("errClass", cfg.ErrClassifier.Classify(err)))
		return nil, err
	}
	network := NewNetwork(cfg, logger)
	for _, cc := range plant.Components {
		node, err := buildComponent(cfg, cc, logger)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", cc.Name, err)
		}
		if err := network.Add(node); err != nil {
			return nil, err
		}
	}
	for _, link := range plant.Links {
		if err := network.Connect(link.From, link.To); err != nil {
			return nil, err
		}
	}
	logger.Info("plantLoadDone",
		slog.Int("components", len(plant.Components)),
		slog.Int("links", len(plant.Links)),
		slog.Any("err", nil),
		slog.String("errClass", ""))
	return network, nil
}

// buildComponent constructs the component described by cc.
func buildComponent(cfg *Config, cc ComponentConfig, logger SLogger) (Node, error) {
	switch cc.Kind {
	case "gate", "globe", "relief":
		position, err := integerValue(cc.Position)
		if err != nil {
			return nil, err
		}
		if position < 0 || position > 100 {
			return nil, fmt.Errorf("%w: position %d not in [0, 100]", ErrOutOfRange, position)
		}
		spec := ValveSpec{
			Name:          cc.Name,
			Position:      position,
			FlowCoeff:     cc.FlowCoeff,
			InletFlow:     cc.InletFlow,
			InletPressure: cc.InletPressure,
			OpenSetpoint:  cc.OpenSetpoint,
			CloseSetpoint: cc.CloseSetpoint,
		}
		switch cc.Kind {
		case "gate":
			return NewGateValve(cfg, spec, logger), nil
		case "globe":
			return NewGlobeValve(cfg, spec, logger), nil
		default:
			return NewReliefValve(cfg, spec, logger), nil
		}

	case "centrifugal", "positive_displacement":
		speed, err := integerValue(cc.Speed)
		if err != nil {
			return nil, err
		}
		if speed < 0 {
			return nil, fmt.Errorf("%w: speed must be 0 or greater, got %d", ErrOutOfRange, speed)
		}
		spec := PumpSpec{
			Name:           cc.Name,
			Speed:          speed,
			FlowRate:       cc.FlowRate,
			HeadIn:         cc.HeadIn,
			OutletPressure: cc.OutletPressure,
			ShaftPower:     cc.ShaftPower,
			Displacement:   cc.Displacement,
		}
		if cc.Kind == "centrifugal" {
			return NewCentrifugalPump(cfg, spec, logger), nil
		}
		return NewPositiveDisplacementPump(cfg, spec, logger), nil

	default:
		return nil, fmt.Errorf("%w: unknown component kind %q", ErrInvalidArgument, cc.Kind)
	}
}
