package domain

import (
	"errors"
	"math"
	"testing"
)

func TestWrapAxisGeographic(t *testing.T) {
	lat, lon := geographicAxes()

	wrapped, err := WrapAxis(lon, KindLongitude)
	if err != nil {
		t.Fatalf("WrapAxis(lon) error = %v", err)
	}
	if wrapped.Name() != "lon" {
		t.Errorf("Name() = %q, want %q", wrapped.Name(), "lon")
	}
	if wrapped.Abbreviation() != "lon" {
		t.Errorf("Abbreviation() = %q, want %q", wrapped.Abbreviation(), "lon")
	}
	if wrapped.Kind() != KindLongitude {
		t.Errorf("Kind() = %v, want %v", wrapped.Kind(), KindLongitude)
	}
	if wrapped.Direction() != DirectionEast {
		t.Errorf("Direction() = %v, want %v", wrapped.Direction(), DirectionEast)
	}
	if wrapped.Unit() != Degree {
		t.Errorf("Unit() = %+v, want %+v", wrapped.Unit(), Degree)
	}
	if wrapped.RangeMeaning() != RangeWraparound {
		t.Errorf("RangeMeaning() = %v, want wraparound", wrapped.RangeMeaning())
	}
	if wrapped.Minimum() != -180 || wrapped.Maximum() != 180 {
		t.Errorf("range = [%g, %g], want [-180, 180]", wrapped.Minimum(), wrapped.Maximum())
	}
	if wrapped.Length() != 5 {
		t.Errorf("Length() = %d, want 5", wrapped.Length())
	}

	wrapped, err = WrapAxis(lat, KindLatitude)
	if err != nil {
		t.Fatalf("WrapAxis(lat) error = %v", err)
	}
	if wrapped.Direction() != DirectionNorth {
		t.Errorf("Direction() = %v, want %v", wrapped.Direction(), DirectionNorth)
	}
	if wrapped.RangeMeaning() != RangeExact {
		t.Errorf("RangeMeaning() = %v, want exact", wrapped.RangeMeaning())
	}
}

func TestWrapAxisRangeFromValues(t *testing.T) {
	ax := &fakeAxis{
		name:   "lon",
		hint:   "east",
		unit:   "degrees_east",
		values: []float64{10, -5, 42.5, 0},
	}

	wrapped, err := WrapAxis(ax, KindLongitude)
	if err != nil {
		t.Fatalf("WrapAxis() error = %v", err)
	}
	if wrapped.Minimum() != -5 {
		t.Errorf("Minimum() = %g, want -5", wrapped.Minimum())
	}
	if wrapped.Maximum() != 42.5 {
		t.Errorf("Maximum() = %g, want 42.5", wrapped.Maximum())
	}
}

func TestWrapAxisFallbackRanges(t *testing.T) {
	unreadable := errors.New("variable not loaded")

	tests := []struct {
		name     string
		axis     *fakeAxis
		kind     AxisKind
		wantMin  float64
		wantMax  float64
		wantWrap bool
	}{
		{
			name:     "longitude falls back to full circle",
			axis:     &fakeAxis{name: "lon", unit: "degrees_east", valueErr: unreadable},
			kind:     KindLongitude,
			wantMin:  -180,
			wantMax:  180,
			wantWrap: true,
		},
		{
			name:    "latitude falls back to poles",
			axis:    &fakeAxis{name: "lat", unit: "degrees_north", valueErr: unreadable},
			kind:    KindLatitude,
			wantMin: -90,
			wantMax: 90,
		},
		{
			name:    "height is unbounded",
			axis:    &fakeAxis{name: "z", unit: "m", valueErr: unreadable},
			kind:    KindHeight,
			wantMin: math.Inf(-1),
			wantMax: math.Inf(1),
		},
		{
			name:    "empty values behave like unreadable ones",
			axis:    &fakeAxis{name: "time", unit: "hours"},
			kind:    KindTime,
			wantMin: math.Inf(-1),
			wantMax: math.Inf(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped, err := WrapAxis(tt.axis, tt.kind)
			if err != nil {
				t.Fatalf("WrapAxis() error = %v", err)
			}
			if wrapped.Minimum() != tt.wantMin {
				t.Errorf("Minimum() = %g, want %g", wrapped.Minimum(), tt.wantMin)
			}
			if wrapped.Maximum() != tt.wantMax {
				t.Errorf("Maximum() = %g, want %g", wrapped.Maximum(), tt.wantMax)
			}
			gotWrap := wrapped.RangeMeaning() == RangeWraparound
			if gotWrap != tt.wantWrap {
				t.Errorf("wraparound = %v, want %v", gotWrap, tt.wantWrap)
			}
		})
	}
}

func TestWrapAxisDirections(t *testing.T) {
	tests := []struct {
		name string
		axis *fakeAxis
		kind AxisKind
		want AxisDirection
	}{
		{"projected x east", &fakeAxis{name: "x0", unit: "km"}, KindProjectedX, DirectionEast},
		{"projected y north", &fakeAxis{name: "y0", unit: "km"}, KindProjectedY, DirectionNorth},
		{"time future", &fakeAxis{name: "time", unit: "hours"}, KindTime, DirectionFuture},
		{"height up by default", &fakeAxis{name: "z", unit: "m"}, KindHeight, DirectionUp},
		{"height down by positive", &fakeAxis{name: "depth", unit: "m", positive: "down"}, KindHeight, DirectionDown},
		{"height down by hint", &fakeAxis{name: "isobaric", unit: "hPa", hint: "down"}, KindHeight, DirectionDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped, err := WrapAxis(tt.axis, tt.kind)
			if err != nil {
				t.Fatalf("WrapAxis() error = %v", err)
			}
			if wrapped.Direction() != tt.want {
				t.Errorf("Direction() = %v, want %v", wrapped.Direction(), tt.want)
			}
		})
	}
}

func TestWrapAxisTimeUnitStripsSinceClause(t *testing.T) {
	ax := &fakeAxis{name: "time", unit: "seconds since 1970-01-01T00:00:00Z"}

	wrapped, err := WrapAxis(ax, KindTime)
	if err != nil {
		t.Fatalf("WrapAxis() error = %v", err)
	}
	if wrapped.Unit() != Second {
		t.Errorf("Unit() = %+v, want bare seconds", wrapped.Unit())
	}
}

func TestWrapAxisUnknownUnitKeepsSymbol(t *testing.T) {
	ax := &fakeAxis{name: "level", unit: "sigma_level", positive: "up"}

	wrapped, err := WrapAxis(ax, KindHeight)
	if err != nil {
		t.Fatalf("WrapAxis() error = %v", err)
	}
	unit := wrapped.Unit()
	if unit.Symbol != "sigma_level" {
		t.Errorf("Symbol = %q, want the declared spelling", unit.Symbol)
	}
	if unit.Kind != UnitDimensionless || unit.Scale != 1 {
		t.Errorf("unknown unit should be dimensionless with scale 1, got %+v", unit)
	}
}

func TestWrapAxisErrors(t *testing.T) {
	if _, err := WrapAxis(nil, KindLongitude); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("WrapAxis(nil) error = %v, want ErrInvalidInput", err)
	}

	ax := &fakeAxis{name: "mystery"}
	if _, err := WrapAxis(ax, KindUnknown); !errors.Is(err, ErrUnknownAxisKind) {
		t.Errorf("WrapAxis(unknown) error = %v, want ErrUnknownAxisKind", err)
	}
}

func TestAxisDelegate(t *testing.T) {
	ax := &fakeAxis{name: "lon", hint: "east", unit: "degrees_east"}

	wrapped, err := WrapAxis(ax, KindLongitude)
	if err != nil {
		t.Fatalf("WrapAxis() error = %v", err)
	}
	if wrapped.Delegate() != NativeAxis(ax) {
		t.Error("Delegate() should return the exact native axis")
	}
}

func TestAxisString(t *testing.T) {
	ax := &fakeAxis{name: "lat", hint: "north", unit: "degrees_north"}

	wrapped, err := WrapAxis(ax, KindLatitude)
	if err != nil {
		t.Fatalf("WrapAxis() error = %v", err)
	}
	if got := wrapped.String(); got != "lat (latitude, north)" {
		t.Errorf("String() = %q", got)
	}
}

func TestGeodeticSentinelAxes(t *testing.T) {
	if GeodeticLongitude.Name() != "λ" {
		t.Errorf("longitude name = %q, want λ", GeodeticLongitude.Name())
	}
	if GeodeticLongitude.Direction() != DirectionEast {
		t.Error("longitude sentinel should point east")
	}
	if GeodeticLongitude.RangeMeaning() != RangeWraparound {
		t.Error("longitude sentinel should wrap around")
	}
	if GeodeticLatitude.Name() != "φ" {
		t.Errorf("latitude name = %q, want φ", GeodeticLatitude.Name())
	}
	if GeodeticLatitude.Minimum() != -90 || GeodeticLatitude.Maximum() != 90 {
		t.Error("latitude sentinel should span the poles")
	}

	// Sentinel delegates are constants: wrapping twice yields the same identity.
	if !Same(GeodeticLongitude, GeodeticLongitude) {
		t.Error("sentinel should equal itself")
	}
	if Same(GeodeticLongitude, GeodeticLatitude) {
		t.Error("distinct sentinels should not be equal")
	}
}

func TestAxisDirectionString(t *testing.T) {
	tests := []struct {
		direction AxisDirection
		want      string
	}{
		{DirectionUnspecified, "unspecified"},
		{DirectionEast, "east"},
		{DirectionWest, "west"},
		{DirectionNorth, "north"},
		{DirectionSouth, "south"},
		{DirectionUp, "up"},
		{DirectionDown, "down"},
		{DirectionFuture, "future"},
		{DirectionPast, "past"},
	}

	for _, tt := range tests {
		if got := tt.direction.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRangeMeaningString(t *testing.T) {
	if RangeExact.String() != "exact" {
		t.Errorf("RangeExact.String() = %q", RangeExact.String())
	}
	if RangeWraparound.String() != "wraparound" {
		t.Errorf("RangeWraparound.String() = %q", RangeWraparound.String())
	}
}
