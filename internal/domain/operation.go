package domain

import "fmt"

// Parameter is one named projection parameter, copied unchanged from the
// grid mapping that declared the projection.
type Parameter struct {
	Name   string
	Text   string    // Set for string-valued parameters
	Values []float64 // Set for numeric parameters, one entry for scalars
}

// IsNumeric returns true if the parameter carries numeric values.
func (p Parameter) IsNumeric() bool {
	return len(p.Values) > 0
}

// Scalar returns the first numeric value.
func (p Parameter) Scalar() float64 {
	if len(p.Values) > 0 {
		return p.Values[0]
	}
	return 0
}

// String returns "name=value" for logs.
func (p Parameter) String() string {
	if p.IsNumeric() {
		if len(p.Values) == 1 {
			return fmt.Sprintf("%s=%g", p.Name, p.Values[0])
		}
		return fmt.Sprintf("%s=%v", p.Name, p.Values)
	}
	return fmt.Sprintf("%s=%s", p.Name, p.Text)
}

// Conversion wraps a native projection as the coordinate operation of a
// projected CRS. All mathematics is delegated to the native projection; the
// wrapper only renames and exposes it. Derivatives are not supported,
// whatever the native projection can do.
type Conversion struct {
	proj NativeProjection
}

// WrapProjection adapts a native projection as a coordinate operation.
func WrapProjection(proj NativeProjection) (*Conversion, error) {
	if proj == nil {
		return nil, fmt.Errorf("projection: %w", ErrInvalidInput)
	}
	return &Conversion{proj: proj}, nil
}

// Delegate returns the native projection.
func (c *Conversion) Delegate() any { return c.proj }

// Name returns the operation identifier. Operation and method share the
// native projection name.
func (c *Conversion) Name() Identifier { return NewIdentifier(c.proj.Name()) }

// MethodName returns the operation method name.
func (c *Conversion) MethodName() string { return c.proj.Name() }

// Parameters returns a copy of the native projection parameters.
func (c *Conversion) Parameters() []Parameter {
	src := c.proj.Parameters()
	params := make([]Parameter, len(src))
	for i, p := range src {
		params[i] = Parameter{Name: p.Name, Text: p.Text}
		if len(p.Values) > 0 {
			params[i].Values = append([]float64(nil), p.Values...)
		}
	}
	return params
}

// Forward converts geographic coordinates in degrees to projected map
// coordinates in kilometres.
func (c *Conversion) Forward(lat, lon float64) (x, y float64) {
	return c.proj.Forward(lat, lon)
}

// Inverse converts projected map coordinates in kilometres back to
// geographic coordinates in degrees.
func (c *Conversion) Inverse(x, y float64) (lat, lon float64) {
	return c.proj.Inverse(x, y)
}

// DomainOfValidity returns the native projection's declared map area.
func (c *Conversion) DomainOfValidity() (GeographicBoundingBox, bool) {
	return c.proj.DefaultMapArea()
}

// DerivativeSupported reports whether the operation can compute derivatives.
func (c *Conversion) DerivativeSupported() bool { return false }
