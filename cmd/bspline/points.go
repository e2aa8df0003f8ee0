package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"honnef.co/go/bspline"
)

// readPoints parses one point per line, as three whitespace separated
// coordinates. A leading "v" token, as used by OBJ vertices, is skipped.
// Empty lines and comments starting with # are ignored.
func readPoints(r io.Reader) ([]bspline.Vec3, error) {
	var pts []bspline.Vec3
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if fields[0] == "v" {
			fields = fields[1:]
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 coordinates, have %d", line, len(fields))
		}
		var c [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			c[i] = v
		}
		pts = append(pts, bspline.Vec(c[0], c[1], c[2]))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pts, nil
}

// writeSamples writes one sample per line as x, y, z, the parameter, and the
// knot span.
func writeSamples(w io.Writer, pts []bspline.SplinePoint) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, pt := range pts {
		buf = buf[:0]
		x, y, z := pt.Pt.Splat()
		for _, v := range [...]float64{x, y, z, pt.U} {
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(pt.Span), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
