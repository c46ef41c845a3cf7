package fileio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akmonengine/fuzzycolor"
)

// Load builds a fuzzy color space from the file at path, picking the reader
// from the extension: a .cns palette has its prototypes computed with opts,
// a .fcs file is restored as written. A space built from a palette is named
// after the file.
func Load(path string, opts fuzzycolor.BuildOptions) (*fuzzycolor.FuzzyColorSpace, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".cns":
		palette, err := LoadCNS(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return fuzzycolor.FromColors(name, palette.Colors, opts)
	case ".fcs":
		return LoadFCS(path, opts.Options)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
