package domain

import "strings"

// ParameterAlias records the spellings of one projection parameter across
// naming authorities. The netCDF name is canonical; grid mappings always
// declare it, while OGC and EPSG software looks parameters up by alias.
type ParameterAlias struct {
	NetCDF string
	OGC    string
	EPSG   string
}

// Alias table of the grid-mapping parameters. Indexed parameters, whose
// names end in "]", exist only on the netCDF side and carry no alias.
var parameterAliases = []ParameterAlias{
	{NetCDF: "latitude_of_projection_origin", OGC: "latitude_of_origin", EPSG: "Latitude of natural origin"},
	{NetCDF: "longitude_of_projection_origin", OGC: "central_meridian", EPSG: "Longitude of natural origin"},
	{NetCDF: "longitude_of_central_meridian", OGC: "central_meridian", EPSG: "Longitude of natural origin"},
	{NetCDF: "straight_vertical_longitude_from_pole", OGC: "central_meridian", EPSG: "Longitude of origin"},
	{NetCDF: "standard_parallel", OGC: "standard_parallel_1", EPSG: "Latitude of 1st standard parallel"},
	{NetCDF: "scale_factor_at_central_meridian", OGC: "scale_factor", EPSG: "Scale factor at natural origin"},
	{NetCDF: "scale_factor_at_projection_origin", OGC: "scale_factor", EPSG: "Scale factor at natural origin"},
	{NetCDF: "false_easting", OGC: "false_easting", EPSG: "False easting"},
	{NetCDF: "false_northing", OGC: "false_northing", EPSG: "False northing"},
	{NetCDF: "semi_major_axis", OGC: "semi_major", EPSG: "Semi-major axis"},
	{NetCDF: "semi_minor_axis", OGC: "semi_minor", EPSG: "Semi-minor axis"},
}

// AliasFor returns the authority aliases of a netCDF parameter name.
func AliasFor(netcdfName string) (ParameterAlias, bool) {
	if strings.HasSuffix(netcdfName, "]") {
		return ParameterAlias{}, false
	}
	for _, alias := range parameterAliases {
		if alias.NetCDF == netcdfName {
			return alias, true
		}
	}
	return ParameterAlias{}, false
}
