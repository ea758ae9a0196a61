package domain

// NativeAxis describes one coordinate axis the way the array-format reader
// resolved it: unit symbol, direction hint and standard name are already
// extracted from the file's conventions. Implementations must use pointer
// receivers so that delegate equality is object identity, and repeated
// Values reads must stay consistent for the lifetime of any CRS built from
// the axis.
type NativeAxis interface {
	// Name returns the axis short name, unique within its coordinate system.
	Name() string

	// DirectionHint returns the resolved physical direction: "east", "west",
	// "north", "south", "up", "down", a compass bearing in degrees, or "".
	DirectionHint() string

	// UnitString returns the declared unit symbol, possibly empty.
	UnitString() string

	// Positive returns the vertical sign convention ("up" or "down"), or "".
	Positive() string

	// StandardName returns the declared standard name, or "".
	StandardName() string

	// Len returns the number of coordinate values along the axis.
	Len() int

	// Values returns the ordered, monotonic coordinate values. The slice may
	// be backed by lazily-loaded storage; callers must not mutate it.
	Values() ([]float64, error)
}

// NativeCoordSystem is one coordinate system declared by a dataset.
type NativeCoordSystem interface {
	// Name identifies the coordinate system in diagnostics.
	Name() string

	// Axes returns the axes in the file's declared order, slowest-varying
	// dimension first.
	Axes() []NativeAxis

	// IsProduct reports whether the coordinate system is a simple cartesian
	// product of one-dimensional axes.
	IsProduct() bool

	// Projection returns the declared grid-mapping projection, or nil when
	// the horizontal system is not projected.
	Projection() NativeProjection
}

// NativeProjection is a map projection supplied by the projection library.
// The object model wraps it and delegates all mathematics to it.
type NativeProjection interface {
	// Name returns the projection name, used as both operation and method
	// name of the wrapping coordinate operation.
	Name() string

	// Parameters returns the projection parameters copied one-to-one from
	// the grid mapping that declared the projection.
	Parameters() []Parameter

	// Forward converts geographic coordinates in degrees to projected map
	// coordinates in kilometres.
	Forward(lat, lon float64) (x, y float64)

	// Inverse converts projected map coordinates in kilometres back to
	// geographic coordinates in degrees.
	Inverse(x, y float64) (lat, lon float64)

	// DefaultMapArea returns the projection's declared domain of validity,
	// or false when the projection does not declare one.
	DefaultMapArea() (GeographicBoundingBox, bool)
}

// NativeDataset is the open dataset handle the reader exposes. The
// composition engine uses it only for naming and log context; the metadata
// mapping reads its global attributes.
type NativeDataset interface {
	// Location returns the dataset path or URI.
	Location() string

	// FindAttribute looks up a global attribute by case-insensitive name.
	FindAttribute(name string) (any, bool)
}
