package netcdf

import (
	"fmt"
	"strings"
	"sync"
)

// CF attribute names the reader interprets.
const (
	attrUnits        = "units"
	attrPositive     = "positive"
	attrStandardName = "standard_name"
	attrAxis         = "axis"
	attrCoordinates  = "coordinates"
	attrGridMapping  = "grid_mapping"
	attrBounds       = "bounds"
)

// valueSource supplies the raw values of one variable.
type valueSource interface {
	Values() (any, error)
}

// axis is one resolved coordinate variable. It implements
// domain.NativeAxis; values are read on first use and cached.
type axis struct {
	name     string
	dims     []string
	hint     string
	unit     string
	positive string
	stdName  string
	length   int
	source   valueSource

	once sync.Once
	vals []float64
	verr error
}

// newAxis resolves one coordinate variable into an axis.
func newAxis(v varInfo) *axis {
	return &axis{
		name:     v.name,
		dims:     v.dims,
		hint:     directionHint(v.attrs),
		unit:     v.attrs.str(attrUnits),
		positive: v.attrs.str(attrPositive),
		stdName:  v.attrs.str(attrStandardName),
		length:   v.length,
		source:   v.source,
	}
}

// Name implements domain.NativeAxis.
func (a *axis) Name() string { return a.name }

// DirectionHint implements domain.NativeAxis.
func (a *axis) DirectionHint() string { return a.hint }

// UnitString implements domain.NativeAxis.
func (a *axis) UnitString() string { return a.unit }

// Positive implements domain.NativeAxis.
func (a *axis) Positive() string { return a.positive }

// StandardName implements domain.NativeAxis.
func (a *axis) StandardName() string { return a.stdName }

// Len implements domain.NativeAxis.
func (a *axis) Len() int { return a.length }

// Values implements domain.NativeAxis. The first read pulls the values from
// the file; later reads return the cached slice.
func (a *axis) Values() ([]float64, error) {
	a.once.Do(func() {
		if a.source == nil {
			a.verr = fmt.Errorf("axis %s: no value source", a.name)
			return
		}
		raw, err := a.source.Values()
		if err != nil {
			a.verr = err
			return
		}
		a.vals, a.verr = coerceFloats(raw)
	})
	return a.vals, a.verr
}

// directionHint resolves the direction convention of a coordinate variable.
// A directional unit such as "degrees_east" wins, then the standard name,
// then the axis attribute.
func directionHint(attrs attributes) string {
	if dir := unitDirection(attrs.str(attrUnits)); dir != "" {
		return dir
	}
	switch strings.ToLower(attrs.str(attrStandardName)) {
	case "longitude":
		return "east"
	case "latitude":
		return "north"
	}
	switch strings.ToUpper(attrs.str(attrAxis)) {
	case "X":
		return "east"
	case "Y":
		return "north"
	case "Z":
		return "up"
	}
	return ""
}

// unitDirection extracts the direction encoded in a degree-family unit
// symbol ("degrees_east", "degree_N"). Other symbols return "".
func unitDirection(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.ReplaceAll(u, "_", "")
	u = strings.ReplaceAll(u, " ", "")
	rest, ok := strings.CutPrefix(u, "degrees")
	if !ok {
		rest, ok = strings.CutPrefix(u, "degree")
	}
	if !ok {
		return ""
	}
	switch rest {
	case "east", "e":
		return "east"
	case "west", "w":
		return "west"
	case "north", "n":
		return "north"
	case "south", "s":
		return "south"
	}
	return ""
}

// coerceFloats converts the value types the underlying library produces for
// numeric variables and attributes.
func coerceFloats(raw any) ([]float64, error) {
	switch v := raw.(type) {
	case []float64:
		return v, nil
	case []float32:
		return widen(v), nil
	case []int64:
		return widen(v), nil
	case []int32:
		return widen(v), nil
	case []int16:
		return widen(v), nil
	case []int8:
		return widen(v), nil
	case float64:
		return []float64{v}, nil
	case float32:
		return []float64{float64(v)}, nil
	case int64:
		return []float64{float64(v)}, nil
	case int32:
		return []float64{float64(v)}, nil
	case int16:
		return []float64{float64(v)}, nil
	case int8:
		return []float64{float64(v)}, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", raw)
}

func widen[T int8 | int16 | int32 | int64 | float32](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
