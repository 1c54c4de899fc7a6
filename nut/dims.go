package nut

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var tableFS embed.FS

// WasherFace is the optional chamfered bearing face on top of a nut.
// The zero value is a nut without washer face.
type WasherFace struct {
	dw    float64
	valid bool
}

// Washer returns a washer face of diameter dw.
func Washer(dw float64) WasherFace { return WasherFace{dw: dw, valid: true} }

// Diameter returns the washer face diameter and whether the nut has one.
func (w WasherFace) Diameter() (dw float64, ok bool) { return w.dw, w.valid }

func (w WasherFace) String() string {
	if !w.valid {
		return "none"
	}
	return strconv.FormatFloat(w.dw, 'g', -1, 64)
}

// Dimensions of a square nut in millimetres.
type Dimensions struct {
	S      float64    // width across flats
	M      float64    // height
	Di     float64    // bore diameter
	Washer WasherFace // washer face, DIN557 only
	P      float64    // thread pitch
}

// Validate checks the dimensions describe a buildable nut.
func (d Dimensions) Validate() error {
	switch {
	case d.S <= 0 || d.M <= 0 || d.Di <= 0 || d.P <= 0:
		return fmt.Errorf("non-positive nut dimension in %+v", d)
	case d.Di >= d.S:
		return fmt.Errorf("bore %g not smaller than width %g", d.Di, d.S)
	}
	if dw, ok := d.Washer.Diameter(); ok && (dw <= 0 || dw/2 >= d.S) {
		return fmt.Errorf("washer face diameter %g out of range", dw)
	}
	return nil
}

type table map[string]Dimensions

// arity is the number of values per table row for each standard.
var arity = map[Standard]int{DIN557: 5, DIN562: 4}

var tables = struct {
	once sync.Once
	m    map[Standard]table
	err  error
}{}

func loadTables() (map[Standard]table, error) {
	tables.once.Do(func() {
		tables.m = make(map[Standard]table)
		for _, std := range Standards {
			t, err := loadTable(std)
			if err != nil {
				tables.err = err
				return
			}
			tables.m[std] = t
		}
	})
	return tables.m, tables.err
}

func loadTable(std Standard) (table, error) {
	name := "data/" + strings.ToLower(std.String()) + ".yaml"
	b, err := tableFS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return parseTable(std, b)
}

func parseTable(std Standard, b []byte) (table, error) {
	n, ok := arity[std]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStandard, std)
	}
	var raw map[string][]float64
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%v table: %w", std, err)
	}
	t := make(table, len(raw))
	for size, row := range raw {
		if len(row) != n {
			return nil, fmt.Errorf("%v %s: want %d values, got %d", std, size, n, len(row))
		}
		d := Dimensions{S: row[0], M: row[1], Di: row[2], P: row[n-1]}
		if std == DIN557 {
			d.Washer = Washer(row[3])
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("%v %s: %w", std, size, err)
		}
		t[size] = d
	}
	return t, nil
}

// Lookup returns the table dimensions of a nut by standard and nominal size.
func Lookup(std Standard, size string) (Dimensions, error) {
	all, err := loadTables()
	if err != nil {
		return Dimensions{}, err
	}
	t, ok := all[std]
	if !ok {
		return Dimensions{}, fmt.Errorf("%w: %v", ErrUnknownStandard, std)
	}
	d, ok := t[normalizeSize(size)]
	if !ok {
		return Dimensions{}, fmt.Errorf("%w: %s %s", ErrUnknownSize, std, size)
	}
	return d, nil
}

// Sizes returns the nominal sizes available in a standard, smallest first.
func Sizes(std Standard) ([]string, error) {
	all, err := loadTables()
	if err != nil {
		return nil, err
	}
	t, ok := all[std]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStandard, std)
	}
	sizes := make([]string, 0, len(t))
	for size := range t {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool {
		di, _ := Diameter(sizes[i])
		dj, _ := Diameter(sizes[j])
		return di < dj
	})
	return sizes, nil
}

// Diameter returns the nominal thread diameter of a metric size such as
// "M6", "m1.6" or "6".
func Diameter(size string) (float64, error) {
	s := strings.TrimPrefix(normalizeSize(size), "M")
	dia, err := strconv.ParseFloat(s, 64)
	if err != nil || dia <= 0 {
		return 0, fmt.Errorf("bad nominal size %q", size)
	}
	return dia, nil
}

func normalizeSize(size string) string {
	s := strings.ToUpper(strings.TrimSpace(size))
	if s != "" && !strings.HasPrefix(s, "M") {
		s = "M" + s
	}
	return s
}
