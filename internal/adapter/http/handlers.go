package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/savannawatch/climate-watch-api/internal/domain"
	"github.com/savannawatch/climate-watch-api/internal/report"
)

// maxUploadBytes caps the multipart form size, image part included.
const maxUploadBytes = 10 << 20

// handleSubmit accepts a multipart-form report submission. The response
// reflects the post-verification state when the inline verification pass
// succeeded.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid multipart form"})
		return
	}

	lat, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid latitude"})
		return
	}
	lon, err := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid longitude"})
		return
	}

	params := domain.SubmitParams{
		EventType:     r.FormValue("event_type"),
		Severity:      r.FormValue("severity"),
		Description:   r.FormValue("description"),
		Latitude:      lat,
		Longitude:     lon,
		LocationName:  r.FormValue("location_name"),
		ReporterPhone: r.FormValue("reporter_phone"),
		ReporterName:  r.FormValue("reporter_name"),
		EventDate:     r.FormValue("event_date"),
		ImageURL:      imageURLFromForm(r),
	}

	result, err := s.service.Submit(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"report_id": result.ReportID.String(),
		"message":   "Report submitted successfully",
	})
}

// imageURLFromForm records the uploaded image's filename under a synthetic
// uploads path. Blob storage is out of scope; only the reference is kept.
func imageURLFromForm(r *http.Request) string {
	_, header, err := r.FormFile("image")
	if err != nil {
		return ""
	}
	return fmt.Sprintf("/uploads/%s_%s", uuid.New(), header.Filename)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid report ID format"})
		return
	}

	rep, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid report ID format"})
		return
	}

	outcome, err := s.service.Verify(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := report.Filters{
		CountyID:  queryInt(q.Get("county_id"), 0),
		EventType: q.Get("event_type"),
		Status:    q.Get("status"),
		Limit:     queryInt(q.Get("limit"), 50),
		Offset:    queryInt(q.Get("offset"), 0),
	}

	reports, err := s.service.List(r.Context(), filters)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if reports == nil {
		reports = []domain.Report{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reports": reports,
		"total":   len(reports),
		"limit":   filters.Limit,
		"offset":  filters.Offset,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	stats, err := s.service.Summarize(r.Context(), queryInt(q.Get("county_id"), 0), queryInt(q.Get("days"), 30))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
