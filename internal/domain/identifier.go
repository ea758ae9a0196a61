package domain

// Well-known identifier code spaces.
const (
	CodeSpaceNetCDF = "netCDF"
	CodeSpaceOGC    = "OGC"
	CodeSpaceEPSG   = "EPSG"
)

// Identifier names an object within a code space.
type Identifier struct {
	CodeSpace string // Naming authority, e.g. "netCDF"
	Code      string // Name within the code space
}

// NewIdentifier creates an identifier in the netCDF code space.
func NewIdentifier(code string) Identifier {
	return Identifier{CodeSpace: CodeSpaceNetCDF, Code: code}
}

// String returns "codeSpace:code", or the bare code when no code space is set.
func (id Identifier) String() string {
	if id.CodeSpace == "" {
		return id.Code
	}
	return id.CodeSpace + ":" + id.Code
}

// IsZero returns true if the identifier is unset.
func (id Identifier) IsZero() bool {
	return id.CodeSpace == "" && id.Code == ""
}
