package domain

import (
	"math"
	"time"
)

// DatasetRecord represents a registered dataset.
type DatasetRecord struct {
	ID           string        // Unique identifier (derived from file name)
	Name         string        // Display name
	Location     string        // File path or URI
	Size         int64         // File size in bytes
	Format       string        // On-disk format ("cdf", "hdf5")
	Variables    []string      // Data variable names
	CRS          []CRSSummary  // Composed reference systems
	Metadata     *Metadata     // Discovery metadata
	Status       DatasetStatus // Lifecycle status
	Error        string        // Failure detail when Status is error
	Checksum     string        // Content fingerprint for change detection
	RegisteredAt time.Time     // Registration timestamp
	LastAccess   time.Time     // Last describe timestamp
}

// IsReady returns true if the dataset is composed and queryable.
func (d *DatasetRecord) IsReady() bool {
	return d.Status == DatasetReady
}

// CRSCount returns the number of composed reference systems.
func (d *DatasetRecord) CRSCount() int {
	return len(d.CRS)
}

// FindCRS returns a CRS summary by name.
func (d *DatasetRecord) FindCRS(name string) (*CRSSummary, bool) {
	for i := range d.CRS {
		if d.CRS[i].Name == name {
			return &d.CRS[i], true
		}
	}
	return nil, false
}

// DatasetStatus represents the lifecycle status of a dataset.
type DatasetStatus string

const (
	DatasetLoading DatasetStatus = "loading"
	DatasetReady   DatasetStatus = "ready"
	DatasetError   DatasetStatus = "error"
)

// CRSSummary is a flattened, transport-friendly description of one composed
// CRS. It carries values only, no references to the native dataset, so it
// outlives the dataset handle and can be persisted.
type CRSSummary struct {
	Name       string             // CRS name in the file's axis order
	Type       string             // geographic, projected, vertical, temporal, compound
	Components []string           // Component types for compound CRS
	Axes       []AxisSummary      // Axes in authority order
	Projection *ProjectionSummary // Set for projected CRS
}

// AxisSummary describes one axis of a composed CRS.
type AxisSummary struct {
	Name       string  // Axis name
	Kind       string  // Semantic kind
	Direction  string  // Direction of increasing values
	Unit       string  // Unit symbol
	Min        float64 // Lower bound, zero when unbounded
	Max        float64 // Upper bound, zero when unbounded
	Bounded    bool    // False when the axis declares no finite range
	Wraparound bool    // True for longitude
	Length     int     // Number of coordinate values
}

// ParameterSummary is one projection parameter together with the authority
// aliases of its name.
type ParameterSummary struct {
	Parameter
	OGC  string // OGC alias, empty for netCDF-only parameters
	EPSG string // EPSG alias, empty for netCDF-only parameters
}

// ProjectionSummary describes the coordinate operation of a projected CRS.
type ProjectionSummary struct {
	Method           string                 // Operation method name
	Parameters       []ParameterSummary     // Grid-mapping parameters
	DomainOfValidity *GeographicBoundingBox // Declared map area, if any
}

// Summarize flattens a composed CRS for transport and indexing.
func Summarize(crs CRS) CRSSummary {
	s := CRSSummary{
		Name: crs.Name().Code,
		Type: crsTypeName(crs),
	}
	switch c := crs.(type) {
	case *CompoundCRS:
		for _, comp := range c.Components() {
			s.Components = append(s.Components, crsTypeName(comp))
			if p, ok := comp.(*ProjectedCRS); ok {
				s.Projection = summarizeProjection(p.Conversion())
			}
		}
	case *ProjectedCRS:
		s.Projection = summarizeProjection(c.Conversion())
	}
	for _, ax := range crs.Axes() {
		s.Axes = append(s.Axes, summarizeAxis(ax))
	}
	return s
}

func summarizeAxis(ax *Axis) AxisSummary {
	s := AxisSummary{
		Name:       ax.Name(),
		Kind:       ax.Kind().String(),
		Direction:  ax.Direction().String(),
		Unit:       ax.Unit().Symbol,
		Wraparound: ax.RangeMeaning() == RangeWraparound,
		Length:     ax.Length(),
	}
	if !math.IsInf(ax.Minimum(), 0) && !math.IsInf(ax.Maximum(), 0) {
		s.Min, s.Max, s.Bounded = ax.Minimum(), ax.Maximum(), true
	}
	return s
}

func summarizeProjection(conv *Conversion) *ProjectionSummary {
	params := conv.Parameters()
	s := &ProjectionSummary{
		Method:     conv.MethodName(),
		Parameters: make([]ParameterSummary, len(params)),
	}
	for i, p := range params {
		s.Parameters[i] = ParameterSummary{Parameter: p}
		if alias, ok := AliasFor(p.Name); ok {
			s.Parameters[i].OGC = alias.OGC
			s.Parameters[i].EPSG = alias.EPSG
		}
	}
	if area, ok := conv.DomainOfValidity(); ok {
		s.DomainOfValidity = &area
	}
	return s
}

func crsTypeName(crs CRS) string {
	switch crs.(type) {
	case *GeographicCRS:
		return "geographic"
	case *ProjectedCRS:
		return "projected"
	case *VerticalCRS:
		return "vertical"
	case *TemporalCRS:
		return "temporal"
	case *CompoundCRS:
		return "compound"
	default:
		return "unknown"
	}
}
