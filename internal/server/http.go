package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/observability/log"
	"github.com/zeusync/coulomb/internal/core/scene"
)

//go:embed static/index.html
var staticFiles embed.FS

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/controls", s.handleControls)
	mux.HandleFunc("/api/field", s.handleField)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return withAccessLog(s.logger, mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowRead(w, r) {
		return
	}
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, ControlsResponse{
		Preset:   s.preset.Name,
		Controls: s.preset.Controls[:],
		Render:   s.render,
	})
}

// handleField evaluates one state without a session. Missing parameters take
// the preset defaults and every value is snapped like a slider.
func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	state, err := s.stateFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	loop := interaction.New(s.preset, nil, s.logger)
	frame, err := loop.Apply(state)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	frame.Revision = 0

	body, err := json.Marshal(FieldResponse{Frame: frame, Scene: scene.Build(frame, s.render)})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) stateFromQuery(r *http.Request) (interaction.State, error) {
	state := s.preset.Defaults()
	q := r.URL.Query()
	for _, id := range interaction.ControlIDs {
		raw := q.Get(string(id))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return state, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, id, raw)
		}
		switch id {
		case interaction.ControlX:
			state.Position[0] = v
		case interaction.ControlY:
			state.Position[1] = v
		case interaction.ControlQ1:
			state.Charges[0] = v
		case interaction.ControlQ2:
			state.Charges[1] = v
		case interaction.ControlQ3:
			state.Charges[2] = v
		case interaction.ControlQ4:
			state.Charges[3] = v
		}
	}
	return state, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"preset":   s.preset.Name,
		"sessions": s.SessionCount(),
	})
}

func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// requestFields is shared by the access log and session logs.
func requestFields(r *http.Request) []log.Field {
	return []log.Field{
		log.String("method", r.Method),
		log.String("path", r.URL.Path),
		log.String("remote_addr", r.RemoteAddr),
	}
}
