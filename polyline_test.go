package bspline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func params(pts []ParamPoint) []float64 {
	out := make([]float64, len(pts))
	for i, pt := range pts {
		out[i] = pt.U
	}
	return out
}

func TestParameterize(t *testing.T) {
	line := []Vec3{Vec(0, 0, 0), Vec(1, 0, 0), Vec(3, 0, 0)}
	tests := []struct {
		pts    []Vec3
		method ParamMethod
		want   []float64
	}{
		{line, ParamUniform, []float64{0, 0.5, 1}},
		{line, ParamChordal, []float64{0, 1.0 / 3, 1}},
		{line, ParamCentripetal, []float64{0, 1 / (1 + math.Sqrt2), 1}},
		{line, ParamNone, []float64{0, 0, 0}},
		{[]Vec3{Vec(0, 0, 0), Vec(0, 0, 0), Vec(0, 0, 0), Vec(0, 0, 0)}, ParamChordal, []float64{0, 1.0 / 3, 2.0 / 3, 1}},
		{[]Vec3{Vec(2, 2, 2), Vec(2, 2, 2)}, ParamCentripetal, []float64{0, 1}},
		{[]Vec3{Vec(1, 2, 3)}, ParamChordal, []float64{0}},
		{nil, ParamUniform, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			pl := NewPolyline(tt.pts)
			pl.Parameterize(tt.method)
			diff(t, tt.want, params(pl.Points), approx)
			if pl.Method != tt.method {
				t.Errorf("got method %v, want %v", pl.Method, tt.method)
			}
			diff(t, tt.pts, pl.Vertices(), cmpopts.EquateEmpty())
		})
	}
}

func TestParameterizeInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	NewPolyline([]Vec3{{}, {}}).Parameterize(ParamMethod(42))
}

func TestParamMethodText(t *testing.T) {
	for _, m := range []ParamMethod{ParamNone, ParamUniform, ParamChordal, ParamCentripetal} {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got ParamMethod
		if err := got.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if got != m {
			t.Errorf("%v round-tripped to %v", m, got)
		}
	}

	var m ParamMethod
	if err := m.UnmarshalText([]byte("Centripetal")); err != nil {
		t.Fatal(err)
	}
	if m != ParamCentripetal {
		t.Errorf("got %v, want %v", m, ParamCentripetal)
	}
	wantErr(t, m.UnmarshalText([]byte("arc-length")), ErrInvalidArgument)

	_, err := ParamMethod(7).MarshalText()
	wantErr(t, err, ErrInvalidArgument)
	if s := ParamMethod(7).String(); s != "ParamMethod(7)" {
		t.Errorf("got %q", s)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want []Vec3
	}{
		{
			[]Vec3{Vec(0, 0, 0), Vec(4, 2, 0)},
			[]Vec3{Vec(-1, -0.5, 0), Vec(1, 0.5, 0)},
		},
		{
			[]Vec3{Vec(-10, 5, 1), Vec(10, 5, 3), Vec(0, -5, 2)},
			[]Vec3{Vec(-1, 0.5, -0.1), Vec(1, 0.5, 0.1), Vec(0, -0.5, 0)},
		},
		// Degenerate axes don't blow up the scale.
		{
			[]Vec3{Vec(3, 3, 3)},
			[]Vec3{Vec(0, 0, 0)},
		},
		{
			[]Vec3{Vec(0, 1, 1), Vec(0.2, 1, 1)},
			[]Vec3{Vec(-0.2, 0, 0), Vec(0.2, 0, 0)},
		},
	}
	for _, tt := range tests {
		pl := NewPolyline(tt.in)
		pl.Normalize()
		diff(t, tt.want, pl.Vertices(), vecComparer(1e-12))

		box := pl.BoundingBox()
		if !NewBoxFromPoints(Vec(-1, -1, -1), Vec(1, 1, 1)).Contains(box.Min) ||
			!NewBoxFromPoints(Vec(-1, -1, -1), Vec(1, 1, 1)).Contains(box.Max) {
			t.Errorf("normalized polyline %v outside of the unit cube", pl.Vertices())
		}
	}

	// Normalizing an empty polyline is a no-op.
	var pl Polyline
	pl.Normalize()
}

func TestMaxGapPolicy(t *testing.T) {
	tests := []struct {
		pts  []Vec3
		want bool
	}{
		{[]Vec3{Vec(0, 0, 0), Vec(1, 0, 0), Vec(1, 1, 0), Vec(0, 1, 0)}, true},
		{[]Vec3{Vec(0, 0, 0), Vec(1, 0, 0), Vec(2, 0, 0), Vec(3, 0, 0)}, false},
		{[]Vec3{Vec(0, 0, 0), Vec(1, 0, 0), Vec(0, 0, 0)}, true},
		{[]Vec3{Vec(0, 0, 0), Vec(0, 0, 0)}, false},
		{[]Vec3{Vec(0, 0, 0), Vec(1, 0, 0)}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := MaxGapPolicy(tt.pts); got != tt.want {
			t.Errorf("MaxGapPolicy(%v) = %t, want %t", tt.pts, got, tt.want)
		}
	}
}

func TestClosePeriodic(t *testing.T) {
	square := []Vec3{Vec(0, 0, 0), Vec(1, 0, 0), Vec(1, 1, 0), Vec(0, 1, 0)}
	pl := NewPolyline(square)
	if pl.ClosePeriodic(nil) {
		t.Error("closed polyline without a policy")
	}
	if !pl.ClosePeriodic(MaxGapPolicy) {
		t.Fatal("didn't close square")
	}
	if !pl.Periodic {
		t.Error("closed polyline isn't marked as periodic")
	}
	diff(t, append(square, square[0]), pl.Vertices())
	if pl.ClosePeriodic(MaxGapPolicy) {
		t.Error("closed polyline twice")
	}

	open := NewPolyline([]Vec3{Vec(0, 0, 0), Vec(1, 0, 0), Vec(2, 0, 0)})
	if open.ClosePeriodic(MaxGapPolicy) {
		t.Error("closed open polyline")
	}
	if open.Periodic || len(open.Points) != 3 {
		t.Error("open polyline was modified")
	}

	always := func([]Vec3) bool { return true }
	if !open.ClosePeriodic(always) {
		t.Error("custom policy wasn't applied")
	}
}

func TestPolylineEval(t *testing.T) {
	pl := NewPolyline([]Vec3{Vec(0, 0, 0), Vec(2, 0, 0), Vec(2, 2, 0)})
	pl.Parameterize(ParamChordal)
	tests := []struct {
		u    float64
		want Vec3
	}{
		{0, Vec(0, 0, 0)},
		{0.25, Vec(1, 0, 0)},
		{0.5, Vec(2, 0, 0)},
		{0.75, Vec(2, 1, 0)},
		{1, Vec(2, 2, 0)},
	}
	for _, tt := range tests {
		got, err := pl.Eval(tt.u)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, tt.want, got, vecComparer(1e-12))
	}
	for _, u := range []float64{-0.5, 1.5, math.NaN()} {
		_, err := pl.Eval(u)
		wantErr(t, err, ErrOutOfRange)
	}
	_, err := new(Polyline).Eval(0)
	wantErr(t, err, ErrOutOfRange)

	diff(t, Vec(0, 0, 0), pl.Start())
	diff(t, Vec(2, 2, 0), pl.End())
	diff(t, Vec3{}, new(Polyline).Start())
	diff(t, Box3{Min: Vec(0, 0, 0), Max: Vec(2, 2, 0)}, pl.BoundingBox())
}

func TestPolylineEvalRepeatedParams(t *testing.T) {
	pl := &Polyline{Points: []ParamPoint{
		{Pt: Vec(0, 0, 0), U: 0},
		{Pt: Vec(1, 0, 0), U: 0.5},
		{Pt: Vec(1, 0, 0), U: 0.5},
		{Pt: Vec(1, 1, 0), U: 1},
	}}
	got, err := pl.Eval(0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Vec(1, 0, 0), got)
}

func TestDeviation(t *testing.T) {
	b, err := NewUniformBSpline(3, testCtrl)
	if err != nil {
		t.Fatal(err)
	}
	pts, err := b.Sample(0.05)
	if err != nil {
		t.Fatal(err)
	}
	src := make([]ParamPoint, len(pts))
	for i, pt := range pts {
		src[i] = pt.ParamPoint
	}
	maxDist, rms, err := Deviation(b, src)
	if err != nil {
		t.Fatal(err)
	}
	if maxDist != 0 || rms != 0 {
		t.Errorf("got deviation %g (rms %g), want 0", maxDist, rms)
	}

	src[3].Pt = src[3].Pt.Add(Vec(0, 0, 2))
	maxDist, rms, err = Deviation(b, src)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 2.0, maxDist, approx)
	diff(t, 2/math.Sqrt(float64(len(src))), rms, approx)

	src[5].U = 2
	_, _, err = Deviation(b, src)
	wantErr(t, err, ErrOutOfRange)

	maxDist, rms, err = Deviation(b, nil)
	if maxDist != 0 || rms != 0 || err != nil {
		t.Errorf("got %g, %g, %v for no points", maxDist, rms, err)
	}
}
