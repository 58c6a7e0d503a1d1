package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/matzehuels/citemap/pkg/buildinfo"
	"github.com/matzehuels/citemap/pkg/citegraph"
	"github.com/matzehuels/citemap/pkg/errors"
	"github.com/matzehuels/citemap/pkg/graph"
	pkgio "github.com/matzehuels/citemap/pkg/io"
	"github.com/matzehuels/citemap/pkg/pipeline"
)

// graphRequest is the body accepted by the /v1 routes.
type graphRequest struct {
	Nodes     []pkgio.Node    `json:"nodes,omitempty"`
	Links     []pkgio.Link    `json:"links,omitempty"`
	Adjacency [][]int         `json:"adjacency,omitempty"`
	Options   json.RawMessage `json:"options,omitempty"`
	Render    json.RawMessage `json:"render,omitempty"`
	Layout    *graph.Layout   `json:"layout,omitempty"`
}

type statsResponse struct {
	Vertices   int     `json:"vertices"`
	Edges      int     `json:"edges"`
	Components int     `json:"components"`
	Fallbacks  int     `json:"fallbacks"`
	LabelMS    float64 `json:"label_ms"`
	LayoutMS   float64 `json:"layout_ms"`
}

type analyzeResponse struct {
	Layout   graph.Layout  `json:"layout"`
	Stats    statsResponse `json:"stats"`
	CacheHit bool          `json:"cache_hit"`
}

type subjectResponse struct {
	Subject string `json:"subject"`
	analyzeResponse
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatCoverage: "image/svg+xml",
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	d, opts, err := s.prepare(req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	res, err := s.runner.ComputeLayout(r.Context(), d, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toResponse(res))
}

func (s *Server) subjects(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	d, opts, err := s.prepare(req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	results, err := s.runner.AnalyzeSubjects(r.Context(), d, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	out := make([]subjectResponse, len(results))
	for i, res := range results {
		out[i] = subjectResponse{Subject: res.Subject, analyzeResponse: toResponse(res.Result)}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.respondError(w, err)
		return
	}

	req, err := decodeRequest(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var l graph.Layout
	opts := s.defaults
	if req.Layout != nil {
		if err := req.Layout.Validate(); err != nil {
			s.respondError(w, err)
			return
		}
		l = *req.Layout
	} else {
		d, o, err := s.prepare(req)
		if err != nil {
			s.respondError(w, err)
			return
		}
		opts = o
		res, err := s.runner.ComputeLayout(r.Context(), d, opts)
		if err != nil {
			s.respondError(w, err)
			return
		}
		l = res.Layout
	}
	if len(req.Render) > 0 {
		if err := json.Unmarshal(req.Render, &opts.Render); err != nil {
			s.respondError(w, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode render options"))
			return
		}
	}

	opts.Formats = []string{format}
	artifacts, err := s.runner.Render(r.Context(), l, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if l.RunID != "" {
		w.Header().Set("X-Run-ID", l.RunID)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func decodeRequest(r *http.Request) (graphRequest, error) {
	var req graphRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return req, err
		}
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return req, nil
}

// prepare builds the dataset and pipeline options a request describes.
func (s *Server) prepare(req graphRequest) (*pkgio.Dataset, pipeline.Options, error) {
	opts := s.defaults
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, &opts); err != nil {
			return nil, opts, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode options")
		}
	}
	opts.Formats = nil
	if err := opts.Validate(); err != nil {
		return nil, opts, err
	}
	if opts.Layout.MaxAttempts > s.opts.MaxAttempts {
		return nil, opts, errors.New(errors.ErrCodeInvalidOptions,
			"max attempts %d exceeds the server limit of %d", opts.Layout.MaxAttempts, s.opts.MaxAttempts)
	}

	if req.Adjacency != nil {
		if req.Nodes != nil || req.Links != nil {
			return nil, opts, errors.New(errors.ErrCodeInvalidInput, "send either adjacency or nodes and links, not both")
		}
		g, err := citegraph.FromAdjacency(req.Adjacency)
		if err != nil {
			return nil, opts, err
		}
		return pkgio.FromGraph(g), opts, nil
	}
	d, err := pkgio.NewDataset(req.Nodes, req.Links)
	return d, opts, err
}

func toResponse(res *pipeline.Result) analyzeResponse {
	return analyzeResponse{
		Layout: res.Layout,
		Stats: statsResponse{
			Vertices:   res.Stats.Vertices,
			Edges:      res.Stats.Edges,
			Components: res.Stats.Components,
			Fallbacks:  res.Stats.Fallbacks,
			LabelMS:    ms(res.Stats.LabelTime),
			LayoutMS:   ms(res.Stats.LayoutTime),
		},
		CacheHit: res.CacheHit,
	}
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError maps error codes to HTTP statuses.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(errors.GetCode(err))

	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		status, code = http.StatusRequestEntityTooLarge, string(errors.ErrCodeInvalidInput)
	case errors.IsInvalid(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeFileNotFound):
		status = http.StatusNotFound
	}
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	respondJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}
