package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DMarby/bmpfilter/internal/bitmap"
	"github.com/DMarby/bmpfilter/internal/filter"
	"github.com/DMarby/bmpfilter/internal/logger"

	"github.com/jamiealquiza/envy"
	"go.uber.org/zap"
)

// Exit codes
const (
	exitOK = iota
	exitUsage
	exitRead
	exitWrite
	exitFilter
)

// Comandline flags
var (
	grayscale = flag.Bool("g", false, "convert the image to grayscale")
	reflect   = flag.Bool("r", false, "mirror the image horizontally")
	blur      = flag.Bool("b", false, "apply a 3x3 box blur")
	edges     = flag.Bool("e", false, "detect edges with the sobel operator")
	workers   = flag.Int("workers", 1, "number of goroutines the rows of the image are split across")
	loglevel  = zap.LevelFlag("log-level", zap.WarnLevel, "log level (default \"warn\") (debug, info, warn, error, dpanic, panic, fatal)")
)

var errFilterFlags = errors.New("exactly one of -g, -r, -b or -e must be given")

func main() {
	// Parse environment variables
	envy.Parse("BMPFILTER")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-g|-r|-b|-e] infile outfile\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}

	// Parse commandline flags
	flag.Parse()

	// Initialize the logger
	log := logger.New(*loglevel)

	code := exitUsage
	kind, err := selectFilter(*grayscale, *reflect, *blur, *edges)
	switch {
	case err != nil:
		fmt.Fprintln(flag.CommandLine.Output(), err)
		flag.Usage()
	case flag.NArg() != 2:
		flag.Usage()
	default:
		code = run(log, filter.New(filter.Options{Workers: *workers}), kind, flag.Arg(0), flag.Arg(1))
	}

	log.Sync()
	os.Exit(code)
}

// selectFilter returns the filter of the single flag that is set
func selectFilter(g, r, b, e bool) (filter.Kind, error) {
	var selected []filter.Kind
	for kind, set := range map[filter.Kind]bool{
		filter.GrayscaleFilter: g,
		filter.MirrorFilter:    r,
		filter.BlurFilter:      b,
		filter.EdgesFilter:     e,
	} {
		if set {
			selected = append(selected, kind)
		}
	}

	if len(selected) != 1 {
		return 0, errFilterFlags
	}

	return selected[0], nil
}

// run filters infile into outfile and returns the exit code
func run(log *logger.Logger, filterer *filter.Filterer, kind filter.Kind, infile, outfile string) int {
	data, err := os.ReadFile(infile)
	if err != nil {
		log.Errorw("error reading input", "path", infile, "error", err)
		return exitRead
	}

	grid, inputFormat, err := bitmap.Decode(bytes.NewReader(data))
	if err != nil {
		log.Errorw("error decoding input", "path", infile, "error", err)
		return exitRead
	}

	outputFormat, err := bitmap.FormatFromExtension(filepath.Ext(outfile))
	if err != nil {
		log.Errorw("unsupported output format", "path", outfile, "error", err)
		return exitWrite
	}

	log.Infow("applying filter",
		"filter", kind,
		"width", grid.Width(),
		"height", grid.Height(),
		"input-format", inputFormat,
	)

	if err := filterer.Apply(grid, kind); err != nil {
		log.Errorw("error applying filter", "filter", kind, "error", err)
		return exitFilter
	}

	var buffer bytes.Buffer
	if err := bitmap.Encode(&buffer, grid, outputFormat); err != nil {
		log.Errorw("error encoding output", "path", outfile, "error", err)
		return exitWrite
	}

	if err := os.WriteFile(outfile, buffer.Bytes(), 0644); err != nil {
		log.Errorw("error writing output", "path", outfile, "error", err)
		return exitWrite
	}

	return exitOK
}
