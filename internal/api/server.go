// Package api implements the retropix HTTP API.
//
// The API exposes the same pipeline as the CLI:
//
//	POST /v1/process   multipart image + form params → processed image bytes
//	GET  /v1/palettes  list built-in palettes
//	GET  /healthz      liveness check
//
// Every response carries an X-Request-ID header; errors are returned as
// JSON with the machine-readable code from pkg/errors.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/retropix/retropix/pkg/errors"
	"github.com/retropix/retropix/pkg/pipeline"
	"github.com/retropix/retropix/pkg/pixelart"
)

// maxUploadBytes bounds the multipart form size for /v1/process.
const maxUploadBytes = 32 << 20

// Server handles HTTP requests using a shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server around the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/process", s.handleProcess)
		r.Get("/palettes", s.handlePalettes)
	})

	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// paletteInfo describes one built-in palette in API responses.
type paletteInfo struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// palettesResponse is the body of GET /v1/palettes. Adaptive is a mode, not
// a color table, so it is listed separately.
type palettesResponse struct {
	Modes    []string      `json:"modes"`
	Palettes []paletteInfo `json:"palettes"`
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	resp := palettesResponse{
		Modes: []string{pixelart.PaletteAdaptive},
	}
	for _, name := range pixelart.PaletteNames() {
		colors, _ := pixelart.PaletteColors(name)
		hexes := make([]string, len(colors))
		for i, c := range colors {
			hexes[i] = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
		}
		resp.Palettes = append(resp.Palettes, paletteInfo{Name: name, Colors: hexes})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed multipart form"))
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "missing image field"))
		return
	}
	defer file.Close()

	input, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read upload"))
		return
	}

	opts, err := optionsFromForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.ExecuteBytes(r.Context(), input, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "MISS"
	if result.CacheInfo.ResultHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("Content-Type", contentType(opts.Format))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

// optionsFromForm extracts pipeline options from form values.
// Unset values fall back to pipeline defaults.
func optionsFromForm(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		Palette: r.FormValue("palette"),
		Format:  r.FormValue("format"),
	}

	intFields := []struct {
		name string
		dst  *int
	}{
		{"block_size", &opts.BlockSize},
		{"colors", &opts.PaletteSize},
		{"outline_thickness", &opts.OutlineThickness},
	}
	for _, f := range intFields {
		v := r.FormValue(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", f.name, v)
		}
		*f.dst = n
	}

	boolFields := []struct {
		name string
		dst  *bool
	}{
		{"no_blur", &opts.NoBlur},
		{"dither", &opts.Dither},
		{"edge_enhance", &opts.EdgeEnhance},
		{"outline", &opts.Outline},
		{"refresh", &opts.Refresh},
	}
	for _, f := range boolFields {
		v := r.FormValue(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", f.name, v)
		}
		*f.dst = b
	}

	if v := r.FormValue("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid seed: %q", v)
		}
		opts.Seed = n
	}

	return opts, nil
}

// contentType maps an output format to its MIME type.
func contentType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	default:
		return "image/png"
	}
}

// =============================================================================
// Responses
// =============================================================================

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps an error code to an HTTP status and writes the envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)

	s.logger.Error("request failed",
		"request_id", RequestIDFromContext(r.Context()),
		"code", code,
		"error", err)

	var body errorBody
	body.Error.Code = string(code)
	if body.Error.Code == "" {
		body.Error.Code = string(errors.ErrCodeInternal)
	}
	body.Error.Message = errors.UserMessage(err)
	body.RequestID = RequestIDFromContext(r.Context())
	writeJSON(w, status, body)
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPalette,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidConfig, errors.ErrCodeDecode:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
