package voronoi

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// DEFAULT_QHULL_PROGRAM is the qhull front-end computing Voronoi diagrams.
const DEFAULT_QHULL_PROGRAM = "qvoronoi"

// DEFAULT_QHULL_OPTIONS asks for bounded and unbounded separating
// hyperplanes, the Voronoi vertices and the ridges of the region of point 0.
var DEFAULT_QHULL_OPTIONS = []string{"Fi", "Fo", "p", "Fv", "QG0"}

// Qhull runs an external qvoronoi program and parses its standard output.
type Qhull struct {
	Program string
	Options []string
}

var _ Backend = (*Qhull)(nil)

// CellOf implements the Backend interface.
func (q *Qhull) CellOf(points []mgl64.Vec3) (*Cell, error) {
	if err := checkPoints(points); err != nil {
		return nil, err
	}

	program := q.Program
	if program == "" {
		program = DEFAULT_QHULL_PROGRAM
	}
	options := q.Options
	if options == nil {
		options = DEFAULT_QHULL_OPTIONS
	}

	var input strings.Builder
	fmt.Fprintf(&input, "3\n%d\n", len(points))
	for _, p := range points {
		fmt.Fprintf(&input, "%s %s %s\n", formatFloat(p.X()), formatFloat(p.Y()), formatFloat(p.Z()))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(program, options...)
	cmd.Stdin = strings.NewReader(input.String())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		status := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			status = exitErr.ExitCode()
		}
		return nil, &BackendError{
			Program: program,
			Status:  status,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return ParseQhull(&stdout, points[0])
}

// FormatError reports malformed qvoronoi output.
type FormatError struct {
	Line int
	Msg  string
}

func (err *FormatError) Error() string {
	return fmt.Sprintf("voronoi: line %d: %s", err.Line, err.Msg)
}

type outputLine struct {
	no     int
	fields []string
}

type outputReader struct {
	lines []outputLine
	pos   int
	last  int
}

func newOutputReader(r io.Reader) (*outputReader, error) {
	out := &outputReader{}
	scanner := bufio.NewScanner(r)
	no := 0
	for scanner.Scan() {
		no++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		out.lines = append(out.lines, outputLine{no: no, fields: fields})
	}
	out.last = no
	return out, scanner.Err()
}

func (r *outputReader) next() (outputLine, error) {
	if r.pos >= len(r.lines) {
		return outputLine{}, &FormatError{Line: r.last, Msg: "unexpected end of output"}
	}
	l := r.lines[r.pos]
	r.pos++
	return l, nil
}

func (r *outputReader) count() (int, error) {
	l, err := r.next()
	if err != nil {
		return 0, err
	}
	if len(l.fields) != 1 {
		return 0, &FormatError{Line: l.no, Msg: fmt.Sprintf("expected a count, got %q", strings.Join(l.fields, " "))}
	}
	n, err := strconv.Atoi(l.fields[0])
	if err != nil || n < 0 {
		return 0, &FormatError{Line: l.no, Msg: fmt.Sprintf("invalid count %q", l.fields[0])}
	}
	return n, nil
}

type pair struct{ i, j int }

func makePair(i, j int) pair {
	if i > j {
		i, j = j, i
	}
	return pair{i, j}
}

func (r *outputReader) hyperplanes(planes map[pair]geometry.Plane) error {
	n, err := r.count()
	if err != nil {
		return err
	}
	for k := 0; k < n; k++ {
		l, err := r.next()
		if err != nil {
			return err
		}
		fields := l.fields
		// qhull prefixes each hyperplane with its number of fields
		if len(fields) == 7 {
			fields = fields[1:]
		}
		if len(fields) != 6 {
			return &FormatError{Line: l.no, Msg: fmt.Sprintf("expected 6 fields for a hyperplane, got %d", len(fields))}
		}
		i, errI := strconv.Atoi(fields[0])
		j, errJ := strconv.Atoi(fields[1])
		if errI != nil || errJ != nil {
			return &FormatError{Line: l.no, Msg: "invalid point index"}
		}
		var coef [4]float64
		for c := range coef {
			coef[c], err = strconv.ParseFloat(fields[2+c], 64)
			if err != nil {
				return &FormatError{Line: l.no, Msg: fmt.Sprintf("invalid coefficient %q", fields[2+c])}
			}
		}
		planes[makePair(i, j)] = geometry.NewPlane(coef[0], coef[1], coef[2], coef[3])
	}
	return nil
}

// ParseQhull reads the output of "qvoronoi Fi Fo p Fv" and returns the cell
// of point 0, located at site.
//
// Vertex index 0 in the ridge list stands for the vertex at infinity; any
// other index k refers to the k-th row of the vertex table.
func ParseQhull(r io.Reader, site mgl64.Vec3) (*Cell, error) {
	in, err := newOutputReader(r)
	if err != nil {
		return nil, err
	}

	bounded := make(map[pair]geometry.Plane)
	if err := in.hyperplanes(bounded); err != nil {
		return nil, err
	}
	unbounded := make(map[pair]geometry.Plane)
	if err := in.hyperplanes(unbounded); err != nil {
		return nil, err
	}

	dimension, err := in.count()
	if err != nil {
		return nil, err
	}
	if dimension != 3 {
		return nil, &FormatError{Line: in.lines[in.pos-1].no, Msg: fmt.Sprintf("dimension %d, expected 3", dimension)}
	}
	nVertices, err := in.count()
	if err != nil {
		return nil, err
	}
	var vertices []mgl64.Vec3
	for range nVertices {
		l, err := in.next()
		if err != nil {
			return nil, err
		}
		if len(l.fields) != 3 {
			return nil, &FormatError{Line: l.no, Msg: fmt.Sprintf("expected 3 coordinates, got %d", len(l.fields))}
		}
		var vertex mgl64.Vec3
		for c := 0; c < 3; c++ {
			vertex[c], err = strconv.ParseFloat(l.fields[c], 64)
			if err != nil {
				return nil, &FormatError{Line: l.no, Msg: fmt.Sprintf("invalid coordinate %q", l.fields[c])}
			}
		}
		vertices = append(vertices, vertex)
	}

	nRidges, err := in.count()
	if err != nil {
		return nil, err
	}
	cell := &Cell{Site: site}
	for k := 0; k < nRidges; k++ {
		l, err := in.next()
		if err != nil {
			return nil, err
		}
		ints := make([]int, len(l.fields))
		for f, s := range l.fields {
			ints[f], err = strconv.Atoi(s)
			if err != nil {
				return nil, &FormatError{Line: l.no, Msg: fmt.Sprintf("invalid index %q", s)}
			}
		}
		if len(ints) < 3 || ints[0] != len(ints)-1 {
			return nil, &FormatError{Line: l.no, Msg: "ridge length does not match its count"}
		}

		i, j := ints[1], ints[2]
		if i != 0 && j != 0 {
			continue
		}
		neighbor := i + j

		plane, isBounded := bounded[makePair(i, j)]
		if !isBounded {
			var ok bool
			plane, ok = unbounded[makePair(i, j)]
			if !ok {
				return nil, &FormatError{Line: l.no, Msg: fmt.Sprintf("no hyperplane for ridge %d-%d", i, j)}
			}
		}
		if plane.Evaluate(site) < 0 {
			plane = plane.Flip()
		}

		ridge := Ridge{Neighbor: neighbor, Plane: plane, Unbounded: !isBounded}
		indices := ints[3:]
		start := 0
		for n, idx := range indices {
			if idx == 0 {
				ridge.Unbounded = true
				start = n + 1
			}
		}
		for n := 0; n < len(indices); n++ {
			idx := indices[(start+n)%len(indices)]
			if idx == 0 {
				continue
			}
			if idx < 0 || idx > len(vertices) {
				return nil, &FormatError{Line: l.no, Msg: fmt.Sprintf("vertex index %d out of range", idx)}
			}
			ridge.Vertices = append(ridge.Vertices, vertices[idx-1])
		}
		cell.Ridges = append(cell.Ridges, ridge)
	}

	return cell, nil
}

// WriteTo writes the cell in the qvoronoi "Fi Fo p Fv" format, so that
// ParseQhull reads it back.
func (c *Cell) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	writePlanes := func(unbounded bool) {
		var ridges []Ridge
		for _, r := range c.Ridges {
			if r.Unbounded == unbounded {
				ridges = append(ridges, r)
			}
		}
		fmt.Fprintf(&b, "%d\n", len(ridges))
		for _, r := range ridges {
			fmt.Fprintf(&b, "7 0 %d %s %s %s %s\n", r.Neighbor,
				formatFloat(r.Plane.A), formatFloat(r.Plane.B), formatFloat(r.Plane.C), formatFloat(r.Plane.D))
		}
	}
	writePlanes(false)
	writePlanes(true)

	var table []mgl64.Vec3
	indices := make([][]int, len(c.Ridges))
	for k, r := range c.Ridges {
	next:
		for _, v := range r.Vertices {
			for idx, known := range table {
				if geometry.PointsEqual(known, v) {
					indices[k] = append(indices[k], idx+1)
					continue next
				}
			}
			table = append(table, v)
			indices[k] = append(indices[k], len(table))
		}
		if r.Unbounded {
			indices[k] = append(indices[k], 0)
		}
	}

	fmt.Fprintf(&b, "3\n%d\n", len(table))
	for _, v := range table {
		fmt.Fprintf(&b, "%s %s %s\n", formatFloat(v.X()), formatFloat(v.Y()), formatFloat(v.Z()))
	}

	fmt.Fprintf(&b, "%d\n", len(c.Ridges))
	for k, r := range c.Ridges {
		fmt.Fprintf(&b, "%d 0 %d", len(indices[k])+2, r.Neighbor)
		for _, idx := range indices[k] {
			fmt.Fprintf(&b, " %d", idx)
		}
		b.WriteByte('\n')
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
