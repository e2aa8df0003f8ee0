package main

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"honnef.co/go/bspline"
)

// definition is the YAML representation of a fitted curve.
//
//	degree: 3
//	knots: [0, 0, 0, 0, 0.5, 1, 1, 1, 1]
//	control_points:
//	  - [0, 0, 0]
//	  - ...
type definition struct {
	Degree int       `yaml:"degree"`
	Knots  []float64 `yaml:"knots,flow,omitempty"`
	// Parameterization and Periodic describe how the fitted points were
	// prepared. They are informational.
	Parameterization bspline.ParamMethod `yaml:"parameterization,omitempty"`
	Periodic         bool                `yaml:"periodic,omitempty"`
	ControlPoints    []yamlVec           `yaml:"control_points"`
}

// yamlVec is a point encoded as a flow sequence of its coordinates.
type yamlVec [3]float64

func (v yamlVec) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range v {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(c, 'g', -1, 64),
		})
	}
	return n, nil
}

func newDefinition(b *bspline.BSpline) definition {
	d := definition{
		Degree: b.Degree(),
		Knots:  b.Knots(),
	}
	for _, pt := range b.ControlPoints() {
		x, y, z := pt.Splat()
		d.ControlPoints = append(d.ControlPoints, yamlVec{x, y, z})
	}
	return d
}

// spline constructs the curve described by d. Definitions without knots use
// an open uniform knot vector.
func (d definition) spline() (*bspline.BSpline, error) {
	ctrl := make([]bspline.Vec3, len(d.ControlPoints))
	for i, c := range d.ControlPoints {
		ctrl[i] = bspline.Vec(c[0], c[1], c[2])
	}
	if len(d.Knots) == 0 {
		return bspline.NewUniformBSpline(d.Degree, ctrl)
	}
	return bspline.NewBSpline(d.Degree, ctrl, d.Knots)
}

func readDefinition(r io.Reader) (definition, error) {
	var d definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if err == io.EOF {
			return d, fmt.Errorf("empty curve definition")
		}
		return d, err
	}
	return d, nil
}

func writeDefinition(w io.Writer, d definition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
