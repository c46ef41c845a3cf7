// Command fcstool builds fuzzy color spaces and queries them.
//
//	fcstool build -in palette.cns -out space.fcs
//	fcstool query -fcs space.fcs 53.2 80.1 67.2
//	fcstool map -fcs space.fcs -in photo.png -out maps/
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/akmonengine/fuzzycolor"
	"github.com/akmonengine/fuzzycolor/colorconv"
	"github.com/akmonengine/fuzzycolor/fileio"
	"github.com/akmonengine/fuzzycolor/voronoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: fcstool build|query|map [flags]\n")
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("fcstool: ")

	if len(os.Args) < 2 {
		usage()
	}
	var err error
	switch os.Args[1] {
	case "build":
		err = build(os.Args[2:])
	case "query":
		err = query(os.Args[2:])
	case "map":
		err = membershipMap(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}

// buildFlags registers the options shared by the commands that may build
// a space. The returned function yields them once fs is parsed.
func buildFlags(fs *flag.FlagSet) func() fuzzycolor.BuildOptions {
	var opts fuzzycolor.BuildOptions
	fs.Float64Var(&opts.Lambda, "lambda", fuzzycolor.DEFAULT_LAMBDA, "core scaling factor in (0,1)")
	fs.IntVar(&opts.Workers, "workers", fuzzycolor.DEFAULT_WORKERS, "goroutines used to build prototypes and evaluate images")
	fs.BoolVar(&opts.NoFalseNegatives, "open", false, "do not bound the cells with the domain corners")
	qhull := fs.String("qhull", "", "compute cells with this qvoronoi executable instead of in process")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: fcstool %s [flags]\n", fs.Name())
		fs.PrintDefaults()
	}
	return func() fuzzycolor.BuildOptions {
		if *qhull != "" {
			opts.Backend = &voronoi.Qhull{Program: *qhull}
		}
		return opts
	}
}

func build(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	in := fs.String("in", "", "input palette (.cns)")
	out := fs.String("out", "", "output fuzzy color space (.fcs)")
	options := buildFlags(fs)
	fs.Parse(args)

	if *in == "" || *out == "" {
		fs.Usage()
		os.Exit(2)
	}

	fcs, err := fileio.Load(*in, options())
	if err != nil {
		return err
	}
	if err := fileio.SaveFCS(*out, fcs); err != nil {
		return err
	}
	log.Printf("%s: %d prototypes written to %s", fcs.Name, fcs.Len(), *out)
	return nil
}

func query(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	path := fs.String("fcs", "", "fuzzy color space (.fcs or .cns)")
	rgb := fs.Bool("rgb", false, "read the point as 0..255 sRGB instead of LAB")
	options := buildFlags(fs)
	fs.Parse(args)

	if *path == "" || fs.NArg() != 3 {
		fs.Usage()
		os.Exit(2)
	}
	var v [3]float64
	for i, arg := range fs.Args() {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("component %d: %w", i+1, err)
		}
		v[i] = f
	}
	lab := colorconv.NewLAB(v[0], v[1], v[2])
	if *rgb {
		lab = colorconv.RGB255ToLAB(v[0], v[1], v[2])
	}

	fcs, err := fileio.Load(*path, options())
	if err != nil {
		return err
	}

	fmt.Printf("LAB %.2f %.2f %.2f\n", lab.X(), lab.Y(), lab.Z())
	membership := fcs.Membership(lab)
	if len(membership) == 0 {
		fmt.Println("outside every support")
		return nil
	}
	for _, d := range membership {
		fmt.Printf("%-20s %.4f\n", d.Label, d.Value)
	}
	winner, _ := membership.Winner()
	for _, p := range fcs.Prototypes {
		if p.Label == winner.Label {
			fmt.Printf("winner %s (ΔE00 %.2f)\n", winner.Label, colorconv.DeltaE00(lab, p.Positive))
			break
		}
	}
	return nil
}

func membershipMap(args []string) error {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	path := fs.String("fcs", "", "fuzzy color space (.fcs or .cns)")
	in := fs.String("in", "", "input image (png, jpeg, bmp or tiff)")
	out := fs.String("out", ".", "output directory")
	format := fs.String("format", "png", "output image format: png, bmp or tiff")
	options := buildFlags(fs)
	fs.Parse(args)

	if *path == "" || *in == "" {
		fs.Usage()
		os.Exit(2)
	}
	switch *format {
	case "png", "bmp", "tiff":
	default:
		return fmt.Errorf("unknown image format %q", *format)
	}

	fcs, err := fileio.Load(*path, options())
	if err != nil {
		return err
	}
	img, err := decode(*in)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	for i, m := range fcs.MembershipMap(img) {
		name := filepath.Join(*out, sanitize(fcs.Prototypes[i].Label)+"."+*format)
		if err := encode(name, *format, m); err != nil {
			return err
		}
	}
	if err := encode(filepath.Join(*out, "recolored."+*format), *format, fcs.Recolor(img)); err != nil {
		return err
	}

	for _, d := range fcs.Proportions(img) {
		fmt.Printf("%-20s %6.2f%%\n", d.Label, 100*d.Value)
	}
	return nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func encode(path, format string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch format {
	case "png":
		return png.Encode(f, img)
	case "bmp":
		return bmp.Encode(f, img)
	case "tiff":
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
}

func sanitize(label string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == os.PathSeparator || r == ' ' {
			return '_'
		}
		return r
	}, label)
}
