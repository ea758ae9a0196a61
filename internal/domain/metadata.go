package domain

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
)

// Metadata is the discovery metadata of a dataset, extracted one-to-one
// from its ACDD global attributes.
type Metadata struct {
	Identifier            Identifier             // naming_authority and id
	Title                 string                 // title
	Abstract              string                 // summary
	Purpose               string                 // purpose
	TopicCategories       []string               // topic_category, normalized
	SpatialRepresentation string                 // cdm_data_type, lower case
	Contact               Party                  // creator and institution
	Credits               []string               // acknowledgment
	DateStamp             time.Time              // metadata_creation
	Created               time.Time              // date_created
	Extent                *GeographicBoundingBox // geospatial_lon/lat_min/max
	Supplemental          string                 // comment
}

// HasTopicCategory checks if a topic category is present.
func (m *Metadata) HasTopicCategory(category string) bool {
	for _, c := range m.TopicCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Party identifies a responsible person or organisation.
type Party struct {
	Individual   string // creator_name
	Organisation string // institution
	Email        string // creator_email
}

// IsZero returns true if no contact information is set.
func (p Party) IsZero() bool {
	return p.Individual == "" && p.Organisation == "" && p.Email == ""
}

// MetadataFrom maps the global attributes of a dataset to discovery
// metadata. Attribute names match case-insensitively; missing attributes
// leave their fields zero. The mapping is a plain extraction, nothing is
// validated or repaired.
func MetadataFrom(ds NativeDataset) *Metadata {
	m := &Metadata{
		Identifier: Identifier{
			CodeSpace: stringAttr(ds, "naming_authority"),
			Code:      stringAttr(ds, "id"),
		},
		Title:                 stringAttr(ds, "title"),
		Abstract:              stringAttr(ds, "summary"),
		Purpose:               stringAttr(ds, "purpose"),
		SpatialRepresentation: strings.ToLower(stringAttr(ds, "cdm_data_type")),
		Supplemental:          stringAttr(ds, "comment"),
		Contact: Party{
			Individual:   stringAttr(ds, "creator_name"),
			Organisation: stringAttr(ds, "institution"),
			Email:        stringAttr(ds, "creator_email"),
		},
		DateStamp: dateAttr(ds, "metadata_creation"),
		Created:   dateAttr(ds, "date_created"),
	}
	if m.Title == "" {
		m.Title = DatasetDisplayName(ds.Location())
	}
	if credit := firstStringAttr(ds, "acknowledgment", "acknowledgement"); credit != "" {
		m.Credits = append(m.Credits, credit)
	}
	for _, category := range strings.Split(stringAttr(ds, "topic_category"), ",") {
		if category = strings.TrimSpace(category); category != "" {
			m.TopicCategories = append(m.TopicCategories, normalizeTopicCategory(category))
		}
	}
	m.Extent = extentAttr(ds)
	return m
}

// DatasetDisplayName derives a human-readable name from a dataset location:
// the base name without its extension, underscores read as spaces.
func DatasetDisplayName(location string) string {
	base := path.Base(strings.ReplaceAll(location, "\\", "/"))
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return strings.ReplaceAll(base, "_", " ")
}

// normalizeTopicCategory folds an ISO topic category label to the enumerated
// spelling: upper case with underscores.
func normalizeTopicCategory(category string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(category), " ", "_"))
}

func extentAttr(ds NativeDataset) *GeographicBoundingBox {
	west, wok := floatAttr(ds, "geospatial_lon_min")
	east, eok := floatAttr(ds, "geospatial_lon_max")
	south, sok := floatAttr(ds, "geospatial_lat_min")
	north, nok := floatAttr(ds, "geospatial_lat_max")
	if !wok || !eok || !sok || !nok {
		return nil
	}
	return &GeographicBoundingBox{West: west, East: east, South: south, North: north}
}

func stringAttr(ds NativeDataset, name string) string {
	v, ok := ds.FindAttribute(name)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case []string:
		if len(s) > 0 {
			return strings.TrimSpace(s[0])
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func firstStringAttr(ds NativeDataset, names ...string) string {
	for _, name := range names {
		if s := stringAttr(ds, name); s != "" {
			return s
		}
	}
	return ""
}

func floatAttr(ds NativeDataset, name string) (float64, bool) {
	v, ok := ds.FindAttribute(name)
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case []float64:
		if len(n) == 1 {
			return n[0], true
		}
	case []float32:
		if len(n) == 1 {
			return float64(n[0]), true
		}
	}
	return 0, false
}

// Date layouts accepted for ACDD date attributes.
var attrDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func dateAttr(ds NativeDataset, name string) time.Time {
	s := stringAttr(ds, name)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range attrDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
