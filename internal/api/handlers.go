package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/mosaic/pkg/buildinfo"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// maxRequestBody caps the inline CSV payload at 16 MiB.
const maxRequestBody = 16 << 20

// renderResponse is the JSON envelope for multi-format render requests.
type renderResponse struct {
	TreeHash  string            `json:"tree_hash"`
	RowCount  int               `json:"row_count"`
	TileCount int               `json:"tile_count"`
	Cached    bool              `json:"cached"`
	Artifacts map[string][]byte `json:"artifacts"` // base64 via encoding/json
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}

// handleRender runs the full pipeline for a JSON options payload.
// Server-side requests must carry the CSV content inline; reading files
// from the server filesystem is not allowed.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return
	}
	if opts.Data == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "request must carry inline CSV data"))
		return
	}
	opts.Input = ""
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	// A single requested format is returned directly with its content type.
	if len(opts.Formats) == 1 {
		format := opts.Formats[0]
		w.Header().Set("Content-Type", contentType(format))
		w.WriteHeader(http.StatusOK)
		w.Write(result.Artifacts[format])
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		TreeHash:  result.TreeHash,
		RowCount:  result.Stats.RowCount,
		TileCount: result.Stats.GroupCount,
		Cached:    result.CacheInfo.RenderHit,
		Artifacts: result.Artifacts,
	})
}

// contentType maps an output format to its MIME type.
func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// statusFor maps a pipeline error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidBox, errors.ErrCodeInvalidPad,
		errors.ErrCodeInvalidPlace, errors.ErrCodeInvalidColumn, errors.ErrCodeInvalidArea,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle, errors.ErrCodeUnsupportedReflow:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeFontNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
