package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cwbudde/algo-transpose/internal/analysis"
	"github.com/cwbudde/algo-transpose/internal/version"
	"github.com/cwbudde/algo-transpose/transpose"
	"github.com/cwbudde/algo-transpose/wavio"
)

// HealthMessage is the body of GET /.
const HealthMessage = "transpose api is active"

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

var (
	errBadRequest = errors.New("bad request")
	errTooLarge   = errors.New("payload too large")
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, HealthMessage)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

func (s *Server) handleTranspose(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("semitones")
	if raw == "" {
		s.writeError(w, fmt.Errorf("%w: missing semitones parameter", errBadRequest))
		return
	}
	semitones, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: semitones %q is not a number", errBadRequest, raw))
		return
	}
	if err := transpose.ValidateSemitones(semitones); err != nil {
		s.writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	cfg, err := s.cfg.Pipeline(semitones)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %w", transpose.ErrConfiguration, err))
		return
	}
	cfg.Logger = s.log

	body, err := readBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out, st, err := transpose.Bytes(r.Context(), body, cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.log.Debug("transposed",
		slog.Float64("semitones", semitones),
		slog.Int("frames_in", st.FramesIn),
		slog.Int("frames_out", st.FramesOut),
		slog.Int("clipped", st.Output.Clipped),
		slog.Duration("elapsed", st.Elapsed))

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.Header().Set("X-Transpose-Ratio", strconv.FormatFloat(st.Ratio, 'f', -1, 64))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var probes []float64
	for _, raw := range r.URL.Query()["probe"] {
		hz, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, fmt.Errorf("%w: probe %q is not a number", errBadRequest, raw))
			return
		}
		probes = append(probes, hz)
	}

	body, err := readBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rep, err := analysis.WAV(bytes.NewReader(body), probes...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", errTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: read body: %w", transpose.ErrIO, err)
	}
	return body, nil
}

// classify maps an error to a status code and a short kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, errBadRequest), errors.Is(err, analysis.ErrProbe):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, transpose.ErrFormat), errors.Is(err, wavio.ErrFormat):
		return http.StatusBadRequest, "format"
	case errors.Is(err, transpose.ErrConfiguration):
		return http.StatusUnprocessableEntity, "configuration"
	default:
		return http.StatusInternalServerError, "io"
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", slog.String("kind", kind), slog.String("error", err.Error()))
	} else {
		s.log.Debug("request rejected", slog.String("kind", kind), slog.String("error", err.Error()))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
