package bspline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("got error %v, want %v", err, target)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-12)

func vecComparer(eps float64) cmp.Option {
	return cmp.Comparer(func(a, b Vec3) bool {
		return a.Distance(b) <= eps
	})
}
