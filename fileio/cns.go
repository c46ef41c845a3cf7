package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/akmonengine/fuzzycolor"
	"github.com/akmonengine/fuzzycolor/colorconv"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/text/unicode/norm"
)

// CNS_HEADER marks the start of a crisp palette; the color space type
// follows it on the same line.
const CNS_HEADER = "@crispColorSpaceType"

// Palette is the content of a .cns file.
type Palette struct {
	Type   int
	Colors []fuzzycolor.Color
}

// Labels returns the color labels, in file order.
func (p *Palette) Labels() []string {
	labels := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		labels[i] = c.Label
	}
	return labels
}

type cnsLine struct {
	number int
	text   string
}

// ReadCNS parses a crisp palette. After the header, lines holding a tab are
// RGB triples in 0..255 and lines without digits are labels. Repeated lines
// are dropped, and the n-th label goes with the n-th triple.
func ReadCNS(r io.Reader) (*Palette, error) {
	scanner := bufio.NewScanner(r)
	number := 0
	palette := &Palette{}

	found := false
	for !found && scanner.Scan() {
		number++
		text := scanner.Text()
		i := strings.Index(text, CNS_HEADER)
		if i < 0 {
			continue
		}
		digits := text[i+len(CNS_HEADER):]
		end := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' })
		if end >= 0 {
			digits = digits[:end]
		}
		t, err := strconv.Atoi(digits)
		if err != nil {
			return nil, &ParseError{Line: number, Kind: KindInvalidNumber, Err: err}
		}
		palette.Type = t
		found = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, &ParseError{Kind: KindMissingHeader, Err: errors.New(CNS_HEADER + " not found")}
	}

	seen := make(map[string]bool)
	var lines []cnsLine
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(norm.NFC.String(scanner.Text()))
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		lines = append(lines, cnsLine{number: number, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var labels []string
	var rgbs [][3]float64
	for _, line := range lines {
		switch {
		case strings.Contains(line.text, "\t"):
			rgb, err := parseRGB(line)
			if err != nil {
				return nil, err
			}
			rgbs = append(rgbs, rgb)
		case !strings.ContainsAny(line.text, "0123456789"):
			labels = append(labels, line.text)
		}
	}

	n := min(len(labels), len(rgbs))
	if n == 0 {
		return nil, &ParseError{Kind: KindEmpty, Err: fmt.Errorf("%d labels, %d RGB triples", len(labels), len(rgbs))}
	}
	points := make([]mgl64.Vec3, n)
	for i := range points {
		points[i] = colorconv.RGB255ToLAB(rgbs[i][0], rgbs[i][1], rgbs[i][2])
	}
	palette.Colors = fuzzycolor.Palette(labels[:n], points)
	for i := range palette.Colors {
		palette.Colors[i].RGB = rgbs[i]
	}
	return palette, nil
}

func parseRGB(line cnsLine) ([3]float64, error) {
	var rgb [3]float64
	fields := strings.Fields(line.text)
	if len(fields) != 3 {
		return rgb, &ParseError{Line: line.number, Kind: KindSyntax, Err: fmt.Errorf("want 3 RGB components, got %d", len(fields))}
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return rgb, &ParseError{Line: line.number, Kind: KindInvalidNumber, Err: err}
		}
		if v < 0 || v > 255 {
			return rgb, &ParseError{Line: line.number, Kind: KindOutOfRange, Err: fmt.Errorf("%v not in [0,255]", v)}
		}
		rgb[i] = v
	}
	return rgb, nil
}

// LoadCNS reads the crisp palette stored in the file at path.
func LoadCNS(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	palette, err := ReadCNS(f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return palette, nil
}
