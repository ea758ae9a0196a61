package netcdf

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/proj"
)

// File is an open netCDF dataset. The underlying group handle stays open
// until Close so that axis values can be loaded lazily.
type File struct {
	nc        api.Group
	path      string
	format    string
	globals   attributes
	variables []string
	systems   []domain.NativeCoordSystem
}

// Location implements domain.NativeDataset.
func (f *File) Location() string { return f.path }

// FindAttribute implements domain.NativeDataset. Lookup is case-insensitive.
func (f *File) FindAttribute(name string) (any, bool) {
	return f.globals.get(name)
}

// CoordinateSystems implements the Dataset port.
func (f *File) CoordinateSystems() []domain.NativeCoordSystem { return f.systems }

// Variables implements the Dataset port.
func (f *File) Variables() []string { return f.variables }

// Format implements the Dataset port.
func (f *File) Format() string { return f.format }

// Close releases the file handle. Axes of this dataset must not be read
// afterwards.
func (f *File) Close() error {
	f.nc.Close()
	return nil
}

// attributes is an ordered snapshot of one attribute map.
type attributes struct {
	keys   []string
	values map[string]any
}

func newAttributes(am api.AttributeMap) attributes {
	a := attributes{values: make(map[string]any)}
	if am == nil {
		return a
	}
	a.keys = am.Keys()
	for _, k := range a.keys {
		if v, ok := am.Get(k); ok {
			a.values[k] = v
		}
	}
	return a
}

// get looks up an attribute, exact name first, then case-insensitively.
func (a attributes) get(name string) (any, bool) {
	if v, ok := a.values[name]; ok {
		return v, true
	}
	for _, k := range a.keys {
		if strings.EqualFold(k, name) {
			return a.values[k], true
		}
	}
	return nil, false
}

// str returns a string attribute, or "" when absent or not a string.
func (a attributes) str(name string) string {
	v, ok := a.get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// varInfo is the scanned shape of one variable.
type varInfo struct {
	name   string
	dims   []string
	attrs  attributes
	length int
	source valueSource
}

// scanGroup reads the shape of every variable in the root group.
func scanGroup(nc api.Group) ([]varInfo, error) {
	names := nc.ListVariables()
	vars := make([]varInfo, 0, len(names))
	for _, name := range names {
		vg, err := nc.GetVarGetter(name)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		vars = append(vars, varInfo{
			name:   name,
			dims:   vg.Dimensions(),
			attrs:  newAttributes(vg.Attributes()),
			length: int(vg.Len()),
			source: vg,
		})
	}
	return vars, nil
}

// assemble groups the scanned variables into coordinate systems. One system
// is built per distinct axis set used by a data variable. Data variables
// with the same axes share one system, and all systems share the axis
// objects themselves, so delegate identity carries across systems.
func assemble(vars []varInfo, log *slog.Logger) (systems []domain.NativeCoordSystem, dataVars []string) {
	byName := make(map[string]varInfo, len(vars))
	for _, v := range vars {
		byName[v.name] = v
	}
	coords := coordinateVariables(vars)
	helpers := helperVariables(vars)

	axes := make(map[string]*axis)
	axisFor := func(name string) *axis {
		if ax, ok := axes[name]; ok {
			return ax
		}
		v, ok := byName[name]
		if !ok {
			return nil
		}
		ax := newAxis(v)
		axes[name] = ax
		return ax
	}

	seen := make(map[string]bool)
	for _, v := range vars {
		if len(v.dims) == 0 || coords[v.name] || helpers[v.name] {
			continue
		}
		dataVars = append(dataVars, v.name)

		cs := systemFor(v, axisFor, byName, log)
		if cs == nil {
			log.Debug("variable has no coordinate system", "variable", v.name)
			continue
		}
		if seen[cs.name] {
			continue
		}
		seen[cs.name] = true
		systems = append(systems, cs)
	}
	return systems, dataVars
}

// coordinateVariables returns the names of every variable acting as a
// coordinate: classic coordinate variables (one-dimensional, dimensioned by
// themselves) plus everything listed in a coordinates attribute.
func coordinateVariables(vars []varInfo) map[string]bool {
	coords := make(map[string]bool)
	for _, v := range vars {
		if len(v.dims) == 1 && v.dims[0] == v.name {
			coords[v.name] = true
		}
		for _, name := range strings.Fields(v.attrs.str(attrCoordinates)) {
			coords[name] = true
		}
	}
	return coords
}

// helperVariables returns the names of variables referenced as grid mappings
// or cell bounds. They describe other variables and carry no data layout of
// their own.
func helperVariables(vars []varInfo) map[string]bool {
	helpers := make(map[string]bool)
	for _, v := range vars {
		if name := v.attrs.str(attrGridMapping); name != "" {
			helpers[name] = true
		}
		if name := v.attrs.str(attrBounds); name != "" {
			helpers[name] = true
		}
	}
	return helpers
}

// systemFor builds the coordinate system of one data variable: one axis per
// dimension with a matching coordinate variable, then the auxiliary
// coordinates the variable declares. Variables without a single resolvable
// axis have no coordinate system.
func systemFor(v varInfo, axisFor func(string) *axis, byName map[string]varInfo, log *slog.Logger) *coordSystem {
	var (
		axes    []domain.NativeAxis
		names   []string
		product = true
	)
	add := func(name string) {
		for _, n := range names {
			if n == name {
				return
			}
		}
		ax := axisFor(name)
		if ax == nil {
			return
		}
		names = append(names, name)
		axes = append(axes, ax)
		if len(ax.dims) != 1 {
			product = false
		}
	}

	for _, dim := range v.dims {
		add(dim)
	}
	for _, name := range strings.Fields(v.attrs.str(attrCoordinates)) {
		add(name)
	}
	if len(axes) == 0 {
		return nil
	}

	cs := &coordSystem{
		name:    strings.Join(names, " "),
		axes:    axes,
		product: product,
	}
	if name := v.attrs.str(attrGridMapping); name != "" {
		cs.proj = resolveGridMapping(name, byName, log)
	}
	return cs
}

// resolveGridMapping reads the named grid-mapping variable and builds the
// projection it declares. Failures leave the system without a projection;
// composition then reports the missing operation.
func resolveGridMapping(name string, byName map[string]varInfo, log *slog.Logger) domain.NativeProjection {
	gm, ok := byName[name]
	if !ok {
		log.Warn("grid mapping variable not found", "variable", name)
		return nil
	}
	p, err := proj.FromGridMapping(gridMappingParameters(gm.attrs))
	if err != nil {
		log.Warn("grid mapping not resolvable", "variable", name, "error", err)
		return nil
	}
	return p
}

// gridMappingParameters copies every attribute of a grid-mapping variable
// into projection parameters, preserving the attribute order.
func gridMappingParameters(attrs attributes) []domain.Parameter {
	params := make([]domain.Parameter, 0, len(attrs.keys))
	for _, key := range attrs.keys {
		p := domain.Parameter{Name: key}
		switch v := attrs.values[key].(type) {
		case string:
			p.Text = v
		default:
			if vals, err := coerceFloats(v); err == nil {
				p.Values = vals
			} else {
				p.Text = fmt.Sprint(v)
			}
		}
		params = append(params, p)
	}
	return params
}

// coordSystem implements domain.NativeCoordSystem.
type coordSystem struct {
	name    string
	axes    []domain.NativeAxis
	product bool
	proj    domain.NativeProjection
}

// Name implements domain.NativeCoordSystem.
func (c *coordSystem) Name() string { return c.name }

// Axes implements domain.NativeCoordSystem.
func (c *coordSystem) Axes() []domain.NativeAxis { return c.axes }

// IsProduct implements domain.NativeCoordSystem.
func (c *coordSystem) IsProduct() bool { return c.product }

// Projection implements domain.NativeCoordSystem.
func (c *coordSystem) Projection() domain.NativeProjection { return c.proj }
