package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/huangsam/racechart/core"
	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
)

// hoverRequest is the body of POST /api/hover. Missing cursor coordinates hover the point center.
type hoverRequest struct {
	Index          *int     `json:"index"`
	X              *float64 `json:"x"`
	Y              *float64 `json:"y"`
	ViewportWidth  float64  `json:"viewportWidth"`
	ViewportHeight float64  `json:"viewportHeight"`
}

// hoverResponse is the overlay shown for a hover.
type hoverResponse struct {
	schema.Overlay
	RequestID string `json:"request_id,omitempty"`
}

// leaveResponse reports the overlays left after a leave.
type leaveResponse struct {
	Remaining int `json:"remaining"`
}

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contract.LogWarn("Failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleChartSVG(w http.ResponseWriter, _ *http.Request) {
	svg, err := s.renderSVG()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.renders.Inc()
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handlePoints(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.chart.Result())
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	var req hoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid hover request: %v", err))
		return
	}
	if req.Index == nil {
		writeError(w, http.StatusBadRequest, "index is required")
		return
	}
	point, ok := s.chart.Point(*req.Index)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("point index %d out of range [0, %d)", *req.Index, s.chart.Len()))
		return
	}

	viewport := s.cfg.Viewport
	if req.ViewportWidth > 0 {
		viewport.Width = req.ViewportWidth
	}
	if req.ViewportHeight > 0 {
		viewport.Height = req.ViewportHeight
	}

	cursor := core.PageCursor(s.chart.Layout(), point, viewport)
	if req.X != nil {
		cursor.X = *req.X
	}
	if req.Y != nil {
		cursor.Y = *req.Y
	}

	overlay := s.tracker.HoverIn(point.Record, cursor, viewport)
	s.metrics.hovers.Inc()

	writeJSON(w, http.StatusOK, hoverResponse{
		Overlay:   overlay,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func (s *Server) handleLeave(w http.ResponseWriter, _ *http.Request) {
	remaining := s.tracker.OnLeave()
	s.metrics.leaves.Inc()
	writeJSON(w, http.StatusOK, leaveResponse{Remaining: remaining})
}
