package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/akmonengine/fuzzycolor"
	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/akmonengine/fuzzycolor/prototype"
	"github.com/go-gl/mathgl/mgl64"
)

const COLOR_SPACE = "LAB"

// Section keywords of a .fcs file, in the order they appear for each color.
const (
	SECTION_CORE    = "@core"
	SECTION_VORONOI = "@voronoi"
	SECTION_SUPPORT = "@support"
)

// WriteFCS serializes the geometry of every prototype, so that ReadFCS can
// restore the space without computing any Voronoi cell.
func WriteFCS(w io.Writer, fcs *fuzzycolor.FuzzyColorSpace) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "@name%s\n", fcs.Name)
	fmt.Fprintf(bw, "@colorSpace%s\n", COLOR_SPACE)
	fmt.Fprintf(bw, "@lambda%s\n", formatFloat(fcs.Lambda))
	fmt.Fprintf(bw, "@numberOfColors%d\n", fcs.Len())
	for _, p := range fcs.Prototypes {
		fmt.Fprintf(bw, "%s %s %s %s\n", p.Label, formatFloat(p.Positive.X()), formatFloat(p.Positive.Y()), formatFloat(p.Positive.Z()))
	}

	for i, p := range fcs.Prototypes {
		writeSection(bw, SECTION_CORE, fcs.Cores[i])
		writeSection(bw, SECTION_VORONOI, p.Volume)
		writeSection(bw, SECTION_SUPPORT, fcs.Supports[i])
	}
	return bw.Flush()
}

func writeSection(w *bufio.Writer, keyword string, volume *geometry.Volume) {
	fmt.Fprintln(w, keyword)
	for _, face := range volume.Faces {
		pl := face.Plane
		fmt.Fprintf(w, "%s %s %s %s %t\n", formatFloat(pl.A), formatFloat(pl.B), formatFloat(pl.C), formatFloat(pl.D), face.Infinity)
		fmt.Fprintf(w, "%d\n", len(face.Vertices))
		for _, v := range face.Vertices {
			fmt.Fprintf(w, "%s %s %s\n", formatFloat(v.X()), formatFloat(v.Y()), formatFloat(v.Z()))
		}
		fmt.Fprintln(w)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SaveFCS writes fcs to path. The content goes to a temporary file in the
// same directory first, so path is either fully written or left untouched.
func SaveFCS(path string, fcs *fuzzycolor.FuzzyColorSpace) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = WriteFCS(tmp, fcs); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// fcsReader hands out the lines of a .fcs file with their numbers and
// allows one line of lookahead.
type fcsReader struct {
	scanner *bufio.Scanner
	number  int
	peeked  *string
}

// next returns the next non-blank line, or io.EOF.
func (r *fcsReader) next() (string, error) {
	if r.peeked != nil {
		line := *r.peeked
		r.peeked = nil
		return line, nil
	}
	for r.scanner.Scan() {
		r.number++
		line := strings.TrimSpace(r.scanner.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *fcsReader) peek() (string, error) {
	line, err := r.next()
	if err != nil {
		return "", err
	}
	r.peeked = &line
	return line, nil
}

func (r *fcsReader) fail(kind Kind, format string, a ...any) error {
	return &ParseError{Line: r.number, Kind: kind, Err: fmt.Errorf(format, a...)}
}

// expect returns the next line, which must exist.
func (r *fcsReader) expect(what string) (string, error) {
	line, err := r.next()
	if errors.Is(err, io.EOF) {
		return "", r.fail(KindUnexpectedEOF, "want %s", what)
	}
	return line, err
}

func (r *fcsReader) keyword(prefix string) (string, error) {
	line, err := r.expect(prefix)
	if err != nil {
		return "", err
	}
	value, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return "", r.fail(KindSyntax, "want %s, got %q", prefix, line)
	}
	return strings.TrimSpace(value), nil
}

func (r *fcsReader) floats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &ParseError{Line: r.number, Kind: KindInvalidNumber, Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// ReadFCS restores a fuzzy color space written by WriteFCS.
// opts is applied to the restored space. The optional @lambda header line
// records the factor the cores and supports were scaled with and takes
// precedence over opts.Lambda.
func ReadFCS(r io.Reader, opts fuzzycolor.Options) (*fuzzycolor.FuzzyColorSpace, error) {
	fr := &fcsReader{scanner: bufio.NewScanner(r)}

	name, err := fr.keyword("@name")
	if err != nil {
		return nil, err
	}
	if _, err := fr.keyword("@colorSpace"); err != nil {
		return nil, err
	}
	if line, err := fr.peek(); err == nil && strings.HasPrefix(line, "@lambda") {
		value, _ := fr.keyword("@lambda")
		lambda, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, &ParseError{Line: fr.number, Kind: KindInvalidNumber, Err: err}
		}
		if lambda <= 0 || lambda >= 1 {
			return nil, fr.fail(KindOutOfRange, "scaling factor %g not in (0,1)", lambda)
		}
		opts.Lambda = lambda
	}
	count, err := fr.keyword("@numberOfColors")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		return nil, &ParseError{Line: fr.number, Kind: KindInvalidNumber, Err: err}
	}
	if n <= 0 {
		return nil, &ParseError{Line: fr.number, Kind: KindEmpty, Err: fmt.Errorf("%d colors", n)}
	}

	// n comes from the file: the slices grow with the lines actually read.
	var labels []string
	var points []mgl64.Vec3
	for range n {
		line, err := fr.expect("a color")
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fr.fail(KindSyntax, "want <label> <L> <A> <B>, got %q", line)
		}
		lab, err := fr.floats(fields[len(fields)-3:])
		if err != nil {
			return nil, err
		}
		labels = append(labels, strings.Join(fields[:len(fields)-3], " "))
		points = append(points, mgl64.Vec3{lab[0], lab[1], lab[2]})
	}

	colors := fuzzycolor.Palette(labels, points)
	prototypes := make([]*prototype.Prototype, len(colors))
	cores := make([]*geometry.Volume, len(colors))
	supports := make([]*geometry.Volume, len(colors))
	for i, c := range colors {
		var cell *geometry.Volume
		for _, s := range []struct {
			keyword string
			volume  **geometry.Volume
		}{
			{SECTION_CORE, &cores[i]},
			{SECTION_VORONOI, &cell},
			{SECTION_SUPPORT, &supports[i]},
		} {
			v, err := fr.section(s.keyword, c.Positive)
			if err != nil {
				return nil, err
			}
			*s.volume = v
		}

		p, err := prototype.FromVolume(c.Label, c.Positive, c.Negatives, cell)
		if err != nil {
			return nil, err
		}
		prototypes[i] = p
	}

	if line, err := fr.next(); err == nil {
		return nil, fr.fail(KindSyntax, "trailing content %q", line)
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}

	return fuzzycolor.Restore(name, prototypes, cores, supports, opts)
}

// section reads a keyword line and the face blocks following it, up to the
// next keyword or the end of the file.
func (r *fcsReader) section(keyword string, representative mgl64.Vec3) (*geometry.Volume, error) {
	line, err := r.expect(keyword)
	if err != nil {
		return nil, err
	}
	if line != keyword {
		return nil, r.fail(KindSyntax, "want %s, got %q", keyword, line)
	}

	volume := geometry.NewVolume(representative)
	for {
		line, err := r.peek()
		if errors.Is(err, io.EOF) || (err == nil && strings.HasPrefix(line, "@")) {
			return volume, nil
		}
		if err != nil {
			return nil, err
		}

		face, err := r.face()
		if err != nil {
			return nil, err
		}
		volume.AddFace(face)
	}
}

func (r *fcsReader) face() (*geometry.Face, error) {
	line, err := r.expect("a plane")
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return nil, r.fail(KindSyntax, "want A B C D infinity, got %q", line)
	}
	coefficients, err := r.floats(fields[:4])
	if err != nil {
		return nil, err
	}
	infinity, err := strconv.ParseBool(fields[4])
	if err != nil {
		return nil, r.fail(KindSyntax, "infinity flag %q", fields[4])
	}

	line, err = r.expect("a vertex count")
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(line)
	if err != nil {
		return nil, &ParseError{Line: r.number, Kind: KindInvalidNumber, Err: err}
	}
	if count < 0 {
		return nil, r.fail(KindOutOfRange, "%d vertices", count)
	}

	face := geometry.NewFace(geometry.NewPlane(coefficients[0], coefficients[1], coefficients[2], coefficients[3]))
	face.Infinity = infinity
	for range count {
		line, err := r.expect("a vertex")
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, r.fail(KindSyntax, "want x y z, got %q", line)
		}
		xyz, err := r.floats(fields)
		if err != nil {
			return nil, err
		}
		face.AddVertex(mgl64.Vec3{xyz[0], xyz[1], xyz[2]})
	}
	return face, nil
}

// LoadFCS reads the fuzzy color space stored in the file at path.
func LoadFCS(path string, opts fuzzycolor.Options) (*fuzzycolor.FuzzyColorSpace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fcs, err := ReadFCS(f, opts)
	if err != nil {
		return nil, withPath(err, path)
	}
	return fcs, nil
}
