package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrMalformedVertex is returned for a wall vertex that is not a float triple.
var ErrMalformedVertex = errors.New("malformed wall vertex")

// ParseWalls reads the vertex groups of a house mesh and returns the bounding
// box of every group whose name contains "Wall" and whose lowest vertex is
// below maxBottom. Higher groups (ceiling pieces, soffits) are dropped.
func ParseWalls(r io.Reader, maxBottom float64) ([]r3.Box, error) {
	var walls []r3.Box
	var verts []r3.Vec
	collecting := false

	flush := func() {
		if len(verts) == 0 {
			return
		}
		if b := boundingBox(verts); b.Min.Y < maxBottom {
			walls = append(walls, b)
		}
		verts = verts[:0]
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if len(line) < 2 {
			continue
		}
		if line[0] == 'g' {
			flush()
			collecting = strings.Contains(line, "Wall")
			continue
		}
		if !collecting || line[0] != 'v' || line[1] != ' ' {
			continue
		}
		v, err := parseVertex(line[2:])
		if err != nil {
			return nil, fmt.Errorf("%w at line %d: %v", ErrMalformedVertex, lineNo, err)
		}
		verts = append(verts, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wall mesh: %w", err)
	}
	flush()
	return walls, nil
}

func parseVertex(s string) (r3.Vec, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return r3.Vec{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return r3.Vec{}, err
		}
		c[i] = v
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

func boundingBox(verts []r3.Vec) r3.Box {
	b := r3.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, v := range verts {
		b.Min.X, b.Max.X = math.Min(b.Min.X, v.X), math.Max(b.Max.X, v.X)
		b.Min.Y, b.Max.Y = math.Min(b.Min.Y, v.Y), math.Max(b.Max.Y, v.Y)
		b.Min.Z, b.Max.Z = math.Min(b.Min.Z, v.Z), math.Max(b.Max.Z, v.Z)
	}
	return b
}
