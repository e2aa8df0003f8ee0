package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"honnef.co/go/bspline"
)

func (a *app) newFitCmd() *cobra.Command {
	var (
		profilePath string
		output      string
		param       = paramValue(bspline.ParamCentripetal)
		p           = defaultProfile()
	)
	cmd := &cobra.Command{
		Use:   "fit [points]",
		Short: "Fit a B-spline to a sequence of points",
		Long: `Fit reads points, optionally normalizes them and closes loops, assigns
parameters, and fits a B-spline whose first and last points coincide with the
first and last input point. The curve is written as a YAML definition.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultProfile()
			if profilePath != "" {
				var err error
				cfg, err = loadProfile(profilePath)
				if err != nil {
					return err
				}
				a.log.Debug("loaded profile", "path", profilePath)
			}
			flags := cmd.Flags()
			if flags.Changed("degree") {
				cfg.Degree = p.Degree
			}
			if flags.Changed("control-points") {
				cfg.ControlPoints = p.ControlPoints
			}
			if flags.Changed("param") {
				cfg.Parameterization = bspline.ParamMethod(param)
			}
			if flags.Changed("knots") {
				cfg.Knots = p.Knots
			}
			if flags.Changed("normalize") {
				cfg.Normalize = p.Normalize
			}
			if flags.Changed("close") {
				cfg.ClosePeriodic = p.ClosePeriodic
			}
			if err := cfg.validate(); err != nil {
				return err
			}

			in, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			pts, err := readPoints(in)
			in.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			a.log.Debug("read points", "file", name, "count", len(pts))

			b, pl, err := a.fit(pts, cfg)
			if err != nil {
				return err
			}

			d := newDefinition(b)
			d.Parameterization = pl.Method
			d.Periodic = pl.Periodic
			out, err := createOutput(cmd, output)
			if err != nil {
				return err
			}
			if err := writeDefinition(out, d); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&profilePath, "profile", "", "read fitting settings from a TOML `file`")
	flags.StringVarP(&output, "output", "o", "", "write the definition to `file` instead of standard output")
	flags.IntVarP(&p.Degree, "degree", "p", p.Degree, "degree of the curve")
	flags.IntVarP(&p.ControlPoints, "control-points", "n", p.ControlPoints, "number of control points")
	flags.Var(&param, "param", "parameterization: uniform, chordal, or centripetal")
	flags.StringVar(&p.Knots, "knots", p.Knots, "knot selector: ktp or uniform")
	flags.BoolVar(&p.Normalize, "normalize", false, "scale the points into [-1, 1]³ before fitting")
	flags.BoolVar(&p.ClosePeriodic, "close", false, "close polylines whose ends are near each other")
	return cmd
}

// fit prepares pts according to cfg and fits a curve to them.
func (a *app) fit(pts []bspline.Vec3, cfg profile) (*bspline.BSpline, *bspline.Polyline, error) {
	pl := bspline.NewPolyline(pts)
	if cfg.Normalize {
		pl.Normalize()
	}
	if cfg.ClosePeriodic && pl.ClosePeriodic(bspline.MaxGapPolicy) {
		a.log.Debug("closed polyline")
	}
	pl.Parameterize(cfg.Parameterization)

	numCtrl := cfg.ControlPoints
	if numCtrl > len(pl.Points) {
		a.log.Warn("fewer points than control points", "points", len(pl.Points), "control_points", numCtrl)
		numCtrl = len(pl.Points)
	}
	sel, err := cfg.selector()
	if err != nil {
		return nil, nil, err
	}
	f, err := bspline.NewFitter(pl.Points, cfg.Degree, numCtrl, sel)
	if err != nil {
		return nil, nil, err
	}
	b, err := f.Fit()
	if err != nil {
		return nil, nil, err
	}

	maxDist, rms, err := bspline.Deviation(b, pl.Points)
	if err != nil {
		return nil, nil, err
	}
	a.log.Info("fitted curve",
		"points", len(pl.Points),
		"degree", b.Degree(),
		"control_points", b.Len(),
		"parameterization", cfg.Parameterization,
		"max_deviation", maxDist,
		"rms_deviation", rms)
	return b, pl, nil
}

func (a *app) newEvalCmd() *cobra.Command {
	var (
		profilePath string
		rate        float64
	)
	cmd := &cobra.Command{
		Use:   "eval [definition.yaml]",
		Short: "Sample a B-spline",
		Long: `Eval reads a YAML curve definition and samples the curve at evenly spaced
parameters. Each output line holds x, y, z, the parameter, and the knot span.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if profilePath != "" && !cmd.Flags().Changed("rate") {
				cfg, err := loadProfile(profilePath)
				if err != nil {
					return err
				}
				rate = cfg.SampleRate
			}
			in, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			d, err := readDefinition(in)
			in.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			b, err := d.spline()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if !b.IsClamped() {
				lo, hi := b.Domain()
				a.log.Debug("unclamped knot vector", "file", name, "domain_start", lo, "domain_end", hi)
			}
			pts, err := b.Sample(rate)
			if err != nil {
				return err
			}
			a.log.Debug("sampled curve", "file", name, "samples", len(pts))
			return writeSamples(cmd.OutOrStdout(), pts)
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "read the sample rate from a TOML `file`")
	cmd.Flags().Float64Var(&rate, "rate", bspline.DefaultSampleRate, "parameter step between samples")
	return cmd
}

func newKnotsCmd() *cobra.Command {
	var degree, count int
	cmd := &cobra.Command{
		Use:   "knots",
		Short: "Print an open uniform knot vector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if degree < 1 || count <= degree {
				return fmt.Errorf("%d control points of degree %d: %w", count, degree, bspline.ErrInvalidArgument)
			}
			knots := bspline.UniformKnots(degree, count)
			s := make([]string, len(knots))
			for i, k := range knots {
				s[i] = strconv.FormatFloat(k, 'g', -1, 64)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(s, " "))
			return err
		},
	}
	cmd.Flags().IntVarP(&degree, "degree", "p", 3, "degree of the curve")
	cmd.Flags().IntVarP(&count, "count", "n", 4, "number of control points")
	return cmd
}
