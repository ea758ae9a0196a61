package domain

import (
	"fmt"
	"log/slog"
	"strings"
)

// Composer is the coordinate-system-to-CRS composition engine. It holds no
// mutable state and is safe for concurrent use on independent inputs.
type Composer struct {
	log *slog.Logger
}

// NewComposer creates a composition engine. Non-fatal warnings (axes dropped
// as unclassifiable) go to the given logger; nil falls back to the default.
func NewComposer(log *slog.Logger) *Composer {
	if log == nil {
		log = slog.Default()
	}
	return &Composer{log: log}
}

// Compose assembles a CRS from a native coordinate system. See
// ComposeDataset for the semantics.
func (c *Composer) Compose(cs NativeCoordSystem) (CRS, error) {
	return c.ComposeDataset(cs, nil)
}

// ComposeDataset assembles a CRS from a native coordinate system. The
// optional dataset handle adds location context to warnings only.
//
// Every axis is classified by physical meaning; Unknown axes are dropped
// with a warning. The recognized axes are partitioned into kind-families
// (geographic, projected, vertical, temporal) and one single CRS is built
// per family. A single family yields its single CRS directly; several
// families yield a compound CRS whose components follow the fixed order
// horizontal, vertical, temporal (the reverse of the file's declared order,
// as required by the easting-first authority convention). The CRS *name*,
// in contrast, keeps the file's declared axis order for readability.
//
// Every error is a permanent rejection of the coordinate system; no partial
// CRS is ever returned.
func (c *Composer) ComposeDataset(cs NativeCoordSystem, ds NativeDataset) (CRS, error) {
	if cs == nil {
		return nil, fmt.Errorf("coordinate system: %w", ErrInvalidInput)
	}
	if !cs.IsProduct() {
		return nil, &UnsupportedAxisTopologyError{CoordSystem: cs.Name()}
	}

	recognized, dropped, err := c.classifyAll(cs, ds)
	if err != nil {
		return nil, err
	}
	if len(recognized) == 0 {
		return nil, &NoRecognizedAxesError{CoordSystem: cs.Name(), Dropped: dropped}
	}

	groups := groupAxes(recognized)
	if len(groups.geographic) > 0 && len(groups.projected) > 0 {
		return nil, &AmbiguousHorizontalError{
			CoordSystem: cs.Name(),
			Geographic:  axisNames(groups.geographic),
			Projected:   axisNames(groups.projected),
		}
	}

	// Components in structural order: horizontal, vertical, temporal.
	var components []CRS
	if len(groups.geographic) > 0 {
		crs, err := buildGeographicCRS(cs, groups.geographic)
		if err != nil {
			return nil, err
		}
		components = append(components, crs)
	}
	if len(groups.projected) > 0 {
		crs, err := buildProjectedCRS(cs, groups.projected, cs.Projection())
		if err != nil {
			return nil, err
		}
		components = append(components, crs)
	}
	if len(groups.vertical) > 0 {
		components = append(components, buildVerticalCRS(cs, groups.vertical[0]))
	}
	if len(groups.temporal) > 0 {
		crs, err := buildTemporalCRS(cs, groups.temporal[0])
		if err != nil {
			return nil, err
		}
		components = append(components, crs)
	}

	if len(components) == 1 {
		return components[0], nil
	}
	return &CompoundCRS{
		name:       NewIdentifier(nativeOrderCode(recognized)),
		components: components,
		native:     cs,
	}, nil
}

// classifyAll wraps every classifiable axis in the file's declared order and
// returns the names of the dropped ones. A kind occurring twice makes the
// topology unsupported.
func (c *Composer) classifyAll(cs NativeCoordSystem, ds NativeDataset) ([]*Axis, []string, error) {
	var (
		recognized []*Axis
		dropped    []string
		counts     = make(map[AxisKind]int)
	)
	for _, native := range cs.Axes() {
		kind := Classify(native)
		if kind == KindUnknown {
			dropped = append(dropped, native.Name())
			attrs := []any{
				slog.String("axis", native.Name()),
				slog.String("unit", native.UnitString()),
				slog.String("coordsystem", cs.Name()),
			}
			if ds != nil {
				attrs = append(attrs, slog.String("dataset", ds.Location()))
			}
			c.log.Warn("dropping unclassified axis", attrs...)
			continue
		}
		ax, err := WrapAxis(native, kind)
		if err != nil {
			return nil, nil, err
		}
		counts[kind]++
		recognized = append(recognized, ax)
	}
	for _, kind := range []AxisKind{
		KindLongitude, KindLatitude, KindHeight, KindTime, KindProjectedX, KindProjectedY,
	} {
		if counts[kind] > 1 {
			return nil, nil, &UnsupportedAxisTopologyError{
				CoordSystem: cs.Name(),
				Reason:      fmt.Sprintf("%d %s axes", counts[kind], kind),
			}
		}
	}
	return recognized, dropped, nil
}

// axisGroups holds the recognized axes partitioned by kind-family, each in
// the file's declared order.
type axisGroups struct {
	geographic []*Axis
	projected  []*Axis
	vertical   []*Axis
	temporal   []*Axis
}

func groupAxes(axes []*Axis) axisGroups {
	var g axisGroups
	for _, ax := range axes {
		switch ax.Kind() {
		case KindLongitude, KindLatitude:
			g.geographic = append(g.geographic, ax)
		case KindProjectedX, KindProjectedY:
			g.projected = append(g.projected, ax)
		case KindHeight:
			g.vertical = append(g.vertical, ax)
		case KindTime:
			g.temporal = append(g.temporal, ax)
		}
	}
	return g
}

// nativeOrderCode joins axis names in the file's declared order. CRS names
// use this order even though the structural axis order is the authority one.
func nativeOrderCode(axes []*Axis) string {
	names := axisNames(axes)
	return strings.Join(names, " ")
}

func axisNames(axes []*Axis) []string {
	names := make([]string, len(axes))
	for i, ax := range axes {
		names[i] = ax.Name()
	}
	return names
}
