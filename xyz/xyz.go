// Package xyz parses molecular geometries from XYZ text files.
//
// The standard XYZ layout is an atom count line, a comment line, then one
// atom per line as "symbol x y z". Parse skips a configurable number of
// header and trailer lines (default 2 and 0) and resolves element symbols
// through a geometry.PeriodicTable. Reader discovers files in a
// blobstore.BlobStore by glob pattern and reads them concurrently.
package xyz

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/molfeat/geometry"
)

// ErrMalformedLine indicates an atom line that does not parse as
// "symbol x y z".
type ErrMalformedLine struct {
	Line int
	Text string
}

func (e *ErrMalformedLine) Error() string {
	return fmt.Sprintf("malformed atom line %d: %q", e.Line, e.Text)
}

// Options configures parsing.
type Options struct {
	// SkipTop is the number of lines dropped from the top of the file.
	// The standard format carries the atom count and a comment there.
	SkipTop int

	// SkipBottom is the number of lines dropped from the bottom.
	SkipBottom int

	// Table resolves element symbols to nuclear charges.
	Table *geometry.PeriodicTable
}

// WithSkipLines sets the number of lines dropped from the top and bottom
// of each file.
func WithSkipLines(top, bottom int) func(*Options) {
	return func(o *Options) {
		o.SkipTop = top
		o.SkipBottom = bottom
	}
}

// WithPeriodicTable sets the symbol lookup table.
func WithPeriodicTable(t *geometry.PeriodicTable) func(*Options) {
	return func(o *Options) {
		o.Table = t
	}
}

func applyOptions(optFns []func(*Options)) Options {
	opts := Options{
		SkipTop:    2,
		SkipBottom: 0,
		Table:      geometry.DefaultPeriodicTable(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Parse reads a single molecule from r.
func Parse(r io.Reader, optFns ...func(*Options)) (*geometry.Molecule, error) {
	opts := applyOptions(optFns)

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if opts.SkipTop+opts.SkipBottom >= len(lines) {
		return nil, geometry.ErrEmptyMolecule
	}
	lines = lines[opts.SkipTop : len(lines)-opts.SkipBottom]

	var (
		charges []float64
		coords  []geometry.Point
	)

	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, &ErrMalformedLine{Line: opts.SkipTop + i + 1, Text: line}
		}

		z, err := opts.Table.Charge(fields[0])
		if err != nil {
			return nil, err
		}

		var p geometry.Point
		for k := 0; k < 3; k++ {
			p[k], err = strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, &ErrMalformedLine{Line: opts.SkipTop + i + 1, Text: line}
			}
		}

		charges = append(charges, z)
		coords = append(coords, p)
	}

	return geometry.NewMolecule(charges, coords)
}
