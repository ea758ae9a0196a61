package domain

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func newTestComposer() *Composer {
	return NewComposer(slog.New(slog.DiscardHandler))
}

func TestComposeGeographic2D(t *testing.T) {
	cs := geographic2D()

	crs, err := newTestComposer().Compose(cs)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	geo, ok := crs.(*GeographicCRS)
	if !ok {
		t.Fatalf("Compose() = %T, want *GeographicCRS", crs)
	}
	if got := geo.Name().Code; got != "lat lon" {
		t.Errorf("Name().Code = %q, want %q", got, "lat lon")
	}
	if got := geo.Name().CodeSpace; got != "netCDF" {
		t.Errorf("Name().CodeSpace = %q, want %q", got, "netCDF")
	}

	axes := geo.Axes()
	if len(axes) != 2 {
		t.Fatalf("len(Axes()) = %d, want 2", len(axes))
	}
	// Structural order is authority order: longitude before latitude,
	// the reverse of the declared (lat, lon) order.
	wantAxes := []struct {
		name      string
		direction AxisDirection
	}{
		{"lon", DirectionEast},
		{"lat", DirectionNorth},
	}
	for i, want := range wantAxes {
		if axes[i].Name() != want.name {
			t.Errorf("axis %d name = %q, want %q", i, axes[i].Name(), want.name)
		}
		if axes[i].Direction() != want.direction {
			t.Errorf("axis %d direction = %v, want %v", i, axes[i].Direction(), want.direction)
		}
		if axes[i].Unit() != Degree {
			t.Errorf("axis %d unit = %v, want Degree", i, axes[i].Unit())
		}
	}
	if axes[0].RangeMeaning() != RangeWraparound {
		t.Error("longitude axis should have wraparound range meaning")
	}
	if axes[1].RangeMeaning() != RangeExact {
		t.Error("latitude axis should have exact range meaning")
	}
	if geo.Datum().Ellipsoid != Sphere {
		t.Errorf("Datum().Ellipsoid = %v, want Sphere", geo.Datum().Ellipsoid)
	}
}

func TestComposeCompound4D(t *testing.T) {
	cs := projected4D()

	crs, err := newTestComposer().Compose(cs)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	compound, ok := crs.(*CompoundCRS)
	if !ok {
		t.Fatalf("Compose() = %T, want *CompoundCRS", crs)
	}
	// The name keeps the declared axis order even though the structural
	// order is reversed.
	if got := compound.Name().Code; got != "time z0 y0 x0" {
		t.Errorf("Name().Code = %q, want %q", got, "time z0 y0 x0")
	}

	components := compound.Components()
	if len(components) != 3 {
		t.Fatalf("len(Components()) = %d, want 3", len(components))
	}
	projected, ok := components[0].(*ProjectedCRS)
	if !ok {
		t.Fatalf("component 0 = %T, want *ProjectedCRS", components[0])
	}
	vertical, ok := components[1].(*VerticalCRS)
	if !ok {
		t.Fatalf("component 1 = %T, want *VerticalCRS", components[1])
	}
	temporal, ok := components[2].(*TemporalCRS)
	if !ok {
		t.Fatalf("component 2 = %T, want *TemporalCRS", components[2])
	}

	axes := compound.Axes()
	if len(axes) != 4 {
		t.Fatalf("len(Axes()) = %d, want 4", len(axes))
	}
	wantAxes := []struct {
		name      string
		direction AxisDirection
		unit      Unit
	}{
		{"x0", DirectionEast, Kilometre},
		{"y0", DirectionNorth, Kilometre},
		{"z0", DirectionUp, HundredFeet},
		{"time", DirectionFuture, Second},
	}
	for i, want := range wantAxes {
		if axes[i].Name() != want.name {
			t.Errorf("axis %d name = %q, want %q", i, axes[i].Name(), want.name)
		}
		if axes[i].Direction() != want.direction {
			t.Errorf("axis %d direction = %v, want %v", i, axes[i].Direction(), want.direction)
		}
		if axes[i].Unit() != want.unit {
			t.Errorf("axis %d unit = %v, want %v", i, axes[i].Unit(), want.unit)
		}
	}

	if !temporal.Datum().Origin.Equal(time.Unix(0, 0).UTC()) {
		t.Errorf("temporal origin = %v, want Unix epoch", temporal.Datum().Origin)
	}
	if vertical.Datum().Name != "Geometric height" {
		t.Errorf("vertical datum = %q, want %q", vertical.Datum().Name, "Geometric height")
	}

	conv := projected.Conversion()
	if conv == nil {
		t.Fatal("projected component should carry a conversion")
	}
	if got := conv.MethodName(); got != "LambertConformalConic" {
		t.Errorf("MethodName() = %q, want %q", got, "LambertConformalConic")
	}
	params := conv.Parameters()
	if len(params) != 5 {
		t.Fatalf("len(Parameters()) = %d, want 5", len(params))
	}
	base := projected.BaseCRS()
	if base == nil {
		t.Fatal("projected component should carry a geographic base")
	}
	if base.Axes()[0] != GeodeticLongitude || base.Axes()[1] != GeodeticLatitude {
		t.Error("base CRS should use the predefined geodetic axes")
	}
}

func TestComposeSingleVertical(t *testing.T) {
	cs := &fakeCoordSystem{
		name: "z",
		axes: []NativeAxis{
			&fakeAxis{name: "z", unit: "m", positive: "up", values: []float64{0, 100}},
		},
		product: true,
	}

	crs, err := newTestComposer().Compose(cs)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if _, ok := crs.(*VerticalCRS); !ok {
		t.Fatalf("Compose() = %T, want *VerticalCRS (no compound for one group)", crs)
	}
}

func TestComposeGeographicWithTime(t *testing.T) {
	lat, lon := geographicAxes()
	cs := &fakeCoordSystem{
		name: "time lat lon",
		axes: []NativeAxis{
			&fakeAxis{name: "time", unit: "days since 2000-01-01", values: []float64{0, 1}},
			lat,
			lon,
		},
		product: true,
	}

	crs, err := newTestComposer().Compose(cs)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	compound, ok := crs.(*CompoundCRS)
	if !ok {
		t.Fatalf("Compose() = %T, want *CompoundCRS", crs)
	}
	if got := compound.Name().Code; got != "time lat lon" {
		t.Errorf("Name().Code = %q, want %q", got, "time lat lon")
	}
	components := compound.Components()
	if len(components) != 2 {
		t.Fatalf("len(Components()) = %d, want 2", len(components))
	}
	if _, ok := components[0].(*GeographicCRS); !ok {
		t.Errorf("component 0 = %T, want *GeographicCRS", components[0])
	}
	if _, ok := components[1].(*TemporalCRS); !ok {
		t.Errorf("component 1 = %T, want *TemporalCRS", components[1])
	}
}

func TestComposeDropsUnknownAxes(t *testing.T) {
	lat, lon := geographicAxes()
	cs := &fakeCoordSystem{
		name: "lat lon nv",
		axes: []NativeAxis{
			lat,
			lon,
			&fakeAxis{name: "nv", unit: "count", values: []float64{0, 1}},
		},
		product: true,
	}

	crs, err := newTestComposer().ComposeDataset(cs, &fakeDataset{location: "/data/grid.nc"})
	if err != nil {
		t.Fatalf("ComposeDataset() error = %v", err)
	}
	geo, ok := crs.(*GeographicCRS)
	if !ok {
		t.Fatalf("Compose() = %T, want *GeographicCRS", crs)
	}
	if got := geo.Name().Code; got != "lat lon" {
		t.Errorf("Name().Code = %q, want %q (dropped axis must not appear)", got, "lat lon")
	}
	if len(geo.Axes()) != 2 {
		t.Errorf("len(Axes()) = %d, want 2", len(geo.Axes()))
	}
}

func TestComposeErrors(t *testing.T) {
	lat, lon := geographicAxes()
	x0 := &fakeAxis{name: "x0", unit: "km", standard: "projection_x_coordinate", values: []float64{0, 1}}
	y0 := &fakeAxis{name: "y0", unit: "km", standard: "projection_y_coordinate", values: []float64{0, 1}}

	tests := []struct {
		name    string
		cs      *fakeCoordSystem
		wantErr any
	}{
		{
			name: "non-product topology",
			cs: &fakeCoordSystem{
				name: "swath",
				axes: []NativeAxis{lat, lon},
			},
			wantErr: new(*UnsupportedAxisTopologyError),
		},
		{
			name: "no recognized axes",
			cs: &fakeCoordSystem{
				name:    "bookkeeping",
				axes:    []NativeAxis{&fakeAxis{name: "nv", unit: "count"}},
				product: true,
			},
			wantErr: new(*NoRecognizedAxesError),
		},
		{
			name: "both horizontal families",
			cs: &fakeCoordSystem{
				name:    "mixed",
				axes:    []NativeAxis{lat, lon, y0, x0},
				product: true,
			},
			wantErr: new(*AmbiguousHorizontalError),
		},
		{
			name: "missing latitude",
			cs: &fakeCoordSystem{
				name:    "lon only",
				axes:    []NativeAxis{lon},
				product: true,
			},
			wantErr: new(*IncompleteAxesError),
		},
		{
			name: "projected without projection",
			cs: &fakeCoordSystem{
				name:    "y0 x0",
				axes:    []NativeAxis{y0, x0},
				product: true,
			},
			wantErr: new(*IncompleteAxesError),
		},
		{
			name: "unparsable epoch",
			cs: &fakeCoordSystem{
				name:    "time",
				axes:    []NativeAxis{&fakeAxis{name: "time", unit: "days since not-a-date"}},
				product: true,
			},
			wantErr: new(*UnparsableEpochError),
		},
		{
			name: "duplicate longitude axes",
			cs: &fakeCoordSystem{
				name:    "lon lon2 lat",
				axes:    []NativeAxis{lon, &fakeAxis{name: "lon2", hint: "east", unit: "degrees_east"}, lat},
				product: true,
			},
			wantErr: new(*UnsupportedAxisTopologyError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestComposer().Compose(tt.cs)
			if err == nil {
				t.Fatal("Compose() should fail")
			}
			if !errors.Is(err, ErrComposition) {
				t.Errorf("error %v should wrap ErrComposition", err)
			}
			if !errors.As(err, tt.wantErr) {
				t.Errorf("error = %T, want %T", err, tt.wantErr)
			}
		})
	}
}

func TestComposeIdempotent(t *testing.T) {
	cs := geographic2D()
	composer := newTestComposer()

	first, err := composer.Compose(cs)
	if err != nil {
		t.Fatalf("first Compose() error = %v", err)
	}
	second, err := composer.Compose(cs)
	if err != nil {
		t.Fatalf("second Compose() error = %v", err)
	}

	if !Same(first, second) {
		t.Error("two compositions of the same input should be equal under the delegate policy")
	}
	if Hash(first) != Hash(second) {
		t.Error("two compositions of the same input should hash equally")
	}
}

func TestComposeDelegateRoundTrip(t *testing.T) {
	cs := projected4D()

	crs, err := newTestComposer().Compose(cs)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if crs.Delegate() != NativeCoordSystem(cs) {
		t.Error("Delegate() should return the exact native coordinate system")
	}

	compound := crs.(*CompoundCRS)
	axes := compound.Axes()
	if axes[0].Delegate() != cs.axes[3] {
		t.Error("x axis Delegate() should return the exact native axis")
	}
	if axes[3].Delegate() != cs.axes[0] {
		t.Error("time axis Delegate() should return the exact native axis")
	}
}

func TestComposeNilCoordSystem(t *testing.T) {
	_, err := newTestComposer().Compose(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Compose(nil) error = %v, want ErrInvalidInput", err)
	}
}
