package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"honnef.co/go/bspline"
)

// profile holds the settings of a fit. Profiles can be stored in TOML files;
// flags override the values read from a file.
type profile struct {
	Degree           int                 `toml:"degree"`
	ControlPoints    int                 `toml:"control_points"`
	Parameterization bspline.ParamMethod `toml:"parameterization"`
	// Knots names the knot selector, "ktp" or "uniform".
	Knots         string  `toml:"knots"`
	Normalize     bool    `toml:"normalize"`
	ClosePeriodic bool    `toml:"close_periodic"`
	SampleRate    float64 `toml:"sample_rate"`
}

func defaultProfile() profile {
	return profile{
		Degree:           3,
		ControlPoints:    10,
		Parameterization: bspline.ParamCentripetal,
		Knots:            "ktp",
		SampleRate:       bspline.DefaultSampleRate,
	}
}

// loadProfile reads a TOML profile from path. Settings missing from the file
// keep their default values. Unknown settings are an error.
func loadProfile(path string) (profile, error) {
	p := defaultProfile()
	f, err := os.Open(path)
	if err != nil {
		return p, err
	}
	defer f.Close()
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return p, fmt.Errorf("%s: unknown settings:\n%s", path, serr.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return p, fmt.Errorf("%s:%d:%d: %s", path, row, col, derr.Error())
		}
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, p.validate()
}

func (p profile) validate() error {
	if _, err := p.selector(); err != nil {
		return err
	}
	if !(p.SampleRate > 0) {
		return fmt.Errorf("sample rate must be positive, is %g", p.SampleRate)
	}
	switch p.Parameterization {
	case bspline.ParamUniform, bspline.ParamChordal, bspline.ParamCentripetal:
	default:
		return fmt.Errorf("can't fit with parameterization %q", p.Parameterization)
	}
	return nil
}

func (p profile) selector() (bspline.KnotSelector, error) {
	switch strings.ToLower(p.Knots) {
	case "ktp", "":
		return bspline.KTP{}, nil
	case "uniform":
		return bspline.UniformSelector{}, nil
	default:
		return nil, fmt.Errorf("unknown knot selector %q", p.Knots)
	}
}

// paramValue adapts a ParamMethod for use as a flag.
type paramValue bspline.ParamMethod

var _ pflag.Value = (*paramValue)(nil)

func (v *paramValue) String() string { return bspline.ParamMethod(*v).String() }

func (v *paramValue) Set(s string) error {
	return (*bspline.ParamMethod)(v).UnmarshalText([]byte(s))
}

func (v *paramValue) Type() string { return "method" }
