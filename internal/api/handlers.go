package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apalumbo/stima/internal/document"
	"github.com/apalumbo/stima/internal/estimate"
	"github.com/apalumbo/stima/internal/phase"
	"github.com/apalumbo/stima/internal/render"
	"github.com/apalumbo/stima/internal/rewrite"
)

type estimateResponse struct {
	Phases    []phase.Phase      `json:"phases"`
	Aggregate estimate.Aggregate `json:"aggregate"`
	Summary   string             `json:"summary"`
	Document  string             `json:"document"`
}

// handleEstimate runs the full pipeline over an uploaded quote and
// returns the phases, the aggregate and the rendered summary, plus the
// document with the summary block applied.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	text, cfg, ok := s.runPipelineInput(w, r)
	if !ok {
		return
	}

	extractor := phase.NewExtractor(s.log)
	phases := extractor.Extract(text)
	if len(phases) == 0 {
		jsonError(w, "no phases found in document", http.StatusUnprocessableEntity)
		return
	}

	agg, err := estimate.Compute(phases, cfg)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary := render.Summary(phases, agg, cfg)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(estimateResponse{
		Phases:    phases,
		Aggregate: agg,
		Summary:   summary,
		Document:  rewrite.ApplyOrAppend(text, summary),
	})
}

// handlePreview returns the updated document rendered as HTML.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	text, cfg, ok := s.runPipelineInput(w, r)
	if !ok {
		return
	}

	extractor := phase.NewExtractor(s.log)
	phases := extractor.Extract(text)
	if len(phases) == 0 {
		jsonError(w, "no phases found in document", http.StatusUnprocessableEntity)
		return
	}

	agg, err := estimate.Compute(phases, cfg)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := rewrite.ApplyOrAppend(text, render.Summary(phases, agg, cfg))
	page, err := render.DocumentHTML([]byte(updated))
	if err != nil {
		jsonError(w, "render html: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// runPipelineInput reads the quote text (raw body or multipart file) and
// the per-request configuration overrides. On failure it writes the
// error response and returns ok=false.
func (s *Server) runPipelineInput(w http.ResponseWriter, r *http.Request) (string, estimate.Config, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	text, err := s.readDocument(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return "", estimate.Config{}, false
	}

	cfg, err := s.requestConfig(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return "", estimate.Config{}, false
	}

	return text, cfg, true
}

func (s *Server) readDocument(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			return "", fmt.Errorf("invalid multipart form: %w", err)
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("file is required: %w", err)
		}
		defer file.Close()

		filename := filepath.Base(header.Filename)
		if !document.IsSupportedExtension(filename) {
			return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
		}
		reader, err := document.ForFile(filename)
		if err != nil {
			return "", err
		}
		return reader.Read(file, filename)
	}

	// Raw body is treated as markdown.
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty document")
	}
	return string(data), nil
}

// requestConfig builds the estimate configuration from the server
// defaults plus query/form overrides. A single "rate" or "weekly"
// parameter switches that band to fixed mode.
func (s *Server) requestConfig(r *http.Request) (estimate.Config, error) {
	cfg := s.cfg.Estimate()
	q := r.Form
	if q == nil {
		q = r.URL.Query()
	}

	if v, err := floatParam(q.Get("min_rate")); err != nil {
		return cfg, err
	} else if v != 0 {
		cfg.Rate = estimate.Ranged(v, cfg.Rate.Max)
	}
	if v, err := floatParam(q.Get("max_rate")); err != nil {
		return cfg, err
	} else if v != 0 {
		cfg.Rate = estimate.Ranged(cfg.Rate.Min, v)
	}
	if v, err := floatParam(q.Get("rate")); err != nil {
		return cfg, err
	} else if v != 0 {
		cfg.Rate = estimate.Single(v)
	}

	if v, err := floatParam(q.Get("min_weekly")); err != nil {
		return cfg, err
	} else if v != 0 {
		cfg.WeeklyHours = estimate.Ranged(v, cfg.WeeklyHours.Max)
	}
	if v, err := floatParam(q.Get("max_weekly")); err != nil {
		return cfg, err
	} else if v != 0 {
		cfg.WeeklyHours = estimate.Ranged(cfg.WeeklyHours.Min, v)
	}
	if v, err := floatParam(q.Get("weekly")); err != nil {
		return cfg, err
	} else if v != 0 {
		cfg.WeeklyHours = estimate.Single(v)
	}

	if v := q.Get("down_payment"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid down_payment: %q", v)
		}
		cfg.DownPaymentPct = n
	}
	if v := q.Get("milestones"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid milestones: %q", v)
		}
		cfg.Milestones = n
	}
	if v := q.Get("feedback_weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid feedback_weeks: %q", v)
		}
		cfg.FeedbackWeeks = n
	}

	cfg.FinalQuote = q.Get("final") == "true"

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func floatParam(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %q", v)
	}
	return f, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
