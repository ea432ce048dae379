package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/researchintel/research-gap-service/internal/domain"
)

// maxRequestBodySize limits request bodies to 1 MB.
const maxRequestBodySize = 1 << 20

// queryRequest is the JSON request body shared by the analyze and search
// endpoints.
type queryRequest struct {
	Query string `json:"query" validate:"required"`
}

// readQuery parses the request body into a queryRequest. A malformed body
// degrades to an empty request so the blank-query validation produces the
// client error instead of a parse error.
func (s *Server) readQuery(r *http.Request) (queryRequest, error) {
	defer r.Body.Close()

	var req queryRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err == nil {
		_ = json.Unmarshal(body, &req)
	}

	req.Query = strings.TrimSpace(req.Query)
	if err := s.validate.Struct(req); err != nil {
		return req, domain.NewValidationError("query", "must not be blank")
	}
	return req, nil
}

// writeRequestError maps a request error onto its JSON envelope.
func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}
	s.logger.Error().Err(err).Msg("unexpected request error")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// analyzeHandler handles POST /api/analyze.
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.readQuery(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	result := s.analyzer.GenerateComprehensiveAnalysis(r.Context(), req.Query)

	writeJSON(w, http.StatusOK, analyzeResponse{
		Success:   true,
		Query:     req.Query,
		Analysis:  result,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// searchHandler handles POST /api/search. It returns the raw aggregated
// papers plus a trend summary, without the gap analysis.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.readQuery(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	papers, err := s.searcher.Search(r.Context(), req.Query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", req.Query).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if papers == nil {
		papers = []domain.Paper{}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success:     true,
		Query:       req.Query,
		Papers:      papers,
		Trends:      s.trends.AnalyzeTrends(papers),
		TotalPapers: len(papers),
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}

// testHandler handles GET and POST /api/test. It echoes the request back for
// connectivity checks.
func (s *Server) testHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))

	var parsed any
	if len(body) > 0 {
		_ = json.Unmarshal(body, &parsed)
	}

	writeJSON(w, http.StatusOK, testResponse{
		Success:   true,
		Method:    r.Method,
		Data:      string(body),
		JSON:      parsed,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// healthHandler handles GET /api/health.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Service:   ServiceName,
		Version:   ServiceVersion,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// notFoundHandler answers every unmatched route with the JSON 404 envelope.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, notFoundResponse{
		Error:   "Endpoint not found",
		Success: false,
	})
}
