package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/researchintel/research-gap-service/internal/domain"
)

// Response envelopes for JSON serialization.

type analyzeResponse struct {
	Success   bool                  `json:"success"`
	Query     string                `json:"query"`
	Analysis  domain.AnalysisResult `json:"analysis"`
	Timestamp string                `json:"timestamp"`
}

type searchResponse struct {
	Success     bool                `json:"success"`
	Query       string              `json:"query"`
	Papers      []domain.Paper      `json:"papers"`
	Trends      domain.TrendSummary `json:"trends"`
	TotalPapers int                 `json:"total_papers"`
	Timestamp   string              `json:"timestamp"`
}

type testResponse struct {
	Success   bool   `json:"success"`
	Method    string `json:"method"`
	Data      string `json:"data"`
	JSON      any    `json:"json"`
	Timestamp string `json:"timestamp"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type notFoundResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes the JSON error envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{
		Success: false,
		Error:   message,
	})
}
