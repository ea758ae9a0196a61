package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/terrascope/gridcrs/internal/application"
	"github.com/terrascope/gridcrs/internal/domain"
)

// handleHealth returns detailed health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	details := s.health.GetHealthDetails(r.Context())

	status := http.StatusOK
	if !details.Healthy {
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, map[string]interface{}{
		"status":              boolToStatus(details.Healthy),
		"ready":               details.Ready,
		"datasets_registered": details.DatasetsRegistered,
		"datasets_ready":      details.DatasetsReady,
		"components":          details.Components,
	})
}

// handleLiveness returns liveness status.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsHealthy(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
}

// handleReadiness returns readiness status.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsReady(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
}

// handleListDatasets returns all registered datasets.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.catalog.ListDatasets(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to list datasets")
		return
	}

	response := make([]map[string]interface{}, len(datasets))
	for i := range datasets {
		response[i] = s.formatDataset(&datasets[i])
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"datasets": response,
		"count":    len(datasets),
	})
}

// handleGetDataset returns a specific dataset.
func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupDataset(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.formatDataset(rec))
}

// handleGetCRS returns the composed reference systems of a dataset.
func (s *Server) handleGetCRS(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupDataset(w, r)
	if !ok {
		return
	}

	crs := make([]map[string]interface{}, len(rec.CRS))
	for i := range rec.CRS {
		crs[i] = s.formatCRS(&rec.CRS[i])
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": rec.ID,
		"crs":        crs,
		"count":      len(crs),
	})
}

// handleGetMetadata returns the discovery metadata of a dataset.
func (s *Server) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupDataset(w, r)
	if !ok {
		return
	}

	if rec.Metadata == nil {
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"dataset_id": rec.ID,
			"metadata":   nil,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": rec.ID,
		"metadata":   s.formatMetadata(rec.Metadata),
	})
}

// handleSync handles the sync trigger endpoint.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if s.syncService == nil {
		s.writeError(w, http.StatusNotFound, "Sync service not available")
		return
	}

	result, err := s.syncService.TriggerSync(r.Context())
	if err != nil {
		if errors.Is(err, application.ErrRateLimited) {
			w.Header().Set("Retry-After", "30")
			s.writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Try again in 30 seconds.")
			return
		}
		s.logger.Error("sync failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Sync failed")
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleOpenAPI returns the OpenAPI specification.
func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	spec, err := apiSpecJSON()
	if err != nil {
		s.logger.Error("failed to get OpenAPI spec", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load OpenAPI specification")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(spec)
}

// lookupDataset resolves the datasetId path variable, writing the error
// response on failure.
func (s *Server) lookupDataset(w http.ResponseWriter, r *http.Request) (*domain.DatasetRecord, bool) {
	id := mux.Vars(r)["datasetId"]

	rec, err := s.catalog.GetDataset(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDatasetNotFound) {
			s.writeError(w, http.StatusNotFound, "Dataset not found")
			return nil, false
		}
		s.writeError(w, http.StatusInternalServerError, "Failed to get dataset")
		return nil, false
	}
	return rec, true
}

// formatDataset formats a dataset record for JSON output.
func (s *Server) formatDataset(rec *domain.DatasetRecord) map[string]interface{} {
	out := map[string]interface{}{
		"id":            rec.ID,
		"name":          rec.Name,
		"location":      rec.Location,
		"size":          rec.Size,
		"format":        rec.Format,
		"variables":     rec.Variables,
		"status":        rec.Status,
		"crs_count":     rec.CRSCount(),
		"checksum":      rec.Checksum,
		"registered_at": rec.RegisteredAt,
		"last_access":   rec.LastAccess,
	}
	if rec.Error != "" {
		out["error"] = rec.Error
	}
	return out
}

// formatCRS formats one composed reference system for JSON output.
func (s *Server) formatCRS(crs *domain.CRSSummary) map[string]interface{} {
	axes := make([]map[string]interface{}, len(crs.Axes))
	for i, ax := range crs.Axes {
		axes[i] = map[string]interface{}{
			"name":       ax.Name,
			"kind":       ax.Kind,
			"direction":  ax.Direction,
			"unit":       ax.Unit,
			"wraparound": ax.Wraparound,
			"length":     ax.Length,
		}
		if ax.Bounded {
			axes[i]["min"] = ax.Min
			axes[i]["max"] = ax.Max
		}
	}

	out := map[string]interface{}{
		"name": crs.Name,
		"type": crs.Type,
		"axes": axes,
	}
	if len(crs.Components) > 0 {
		out["components"] = crs.Components
	}
	if crs.Projection != nil {
		out["projection"] = s.formatProjection(crs.Projection)
	}
	return out
}

// formatProjection formats the coordinate operation of a projected CRS.
func (s *Server) formatProjection(proj *domain.ProjectionSummary) map[string]interface{} {
	params := make([]map[string]interface{}, len(proj.Parameters))
	for i, p := range proj.Parameters {
		entry := map[string]interface{}{
			"name": p.Name,
		}
		if p.IsNumeric() {
			if len(p.Values) == 1 {
				entry["value"] = p.Values[0]
			} else {
				entry["values"] = p.Values
			}
		} else {
			entry["value"] = p.Text
		}
		if p.OGC != "" {
			entry["ogc"] = p.OGC
		}
		if p.EPSG != "" {
			entry["epsg"] = p.EPSG
		}
		params[i] = entry
	}

	out := map[string]interface{}{
		"method":     proj.Method,
		"parameters": params,
	}
	if proj.DomainOfValidity != nil {
		out["domain_of_validity"] = map[string]interface{}{
			"west":  proj.DomainOfValidity.West,
			"east":  proj.DomainOfValidity.East,
			"south": proj.DomainOfValidity.South,
			"north": proj.DomainOfValidity.North,
		}
	}
	return out
}

// formatMetadata formats discovery metadata for JSON output.
func (s *Server) formatMetadata(m *domain.Metadata) map[string]interface{} {
	out := map[string]interface{}{
		"title": m.Title,
	}
	if m.Identifier.Code != "" {
		out["identifier"] = map[string]interface{}{
			"codespace": m.Identifier.CodeSpace,
			"code":      m.Identifier.Code,
		}
	}
	if m.Abstract != "" {
		out["abstract"] = m.Abstract
	}
	if m.Purpose != "" {
		out["purpose"] = m.Purpose
	}
	if len(m.TopicCategories) > 0 {
		out["topic_categories"] = m.TopicCategories
	}
	if m.SpatialRepresentation != "" {
		out["spatial_representation"] = m.SpatialRepresentation
	}
	if !m.Contact.IsZero() {
		out["contact"] = map[string]interface{}{
			"individual":   m.Contact.Individual,
			"organisation": m.Contact.Organisation,
			"email":        m.Contact.Email,
		}
	}
	if len(m.Credits) > 0 {
		out["credits"] = m.Credits
	}
	if !m.Created.IsZero() {
		out["created"] = m.Created
	}
	if !m.DateStamp.IsZero() {
		out["date_stamp"] = m.DateStamp
	}
	if m.Extent != nil {
		out["extent"] = map[string]interface{}{
			"west":  m.Extent.West,
			"east":  m.Extent.East,
			"south": m.Extent.South,
			"north": m.Extent.North,
		}
	}
	if m.Supplemental != "" {
		out["supplemental"] = m.Supplemental
	}
	return out
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func boolToStatus(b bool) string {
	if b {
		return "ok"
	}
	return "unhealthy"
}
