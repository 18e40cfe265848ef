package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MJE43/roulette-neighbors/internal/lookup"
	"github.com/MJE43/roulette-neighbors/internal/table"
	"github.com/MJE43/roulette-neighbors/internal/wheel"
)

const maxRequestBody = 64 << 10

// handleNeighbors resolves a free-form input string.
// POST /api/v1/neighbors {"input": "3 3, 8 1, 12", "default_neighbors": 1}
func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	var req NeighborsRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON")
		return
	}

	def := s.cfg.Neighbors.Default
	if req.DefaultNeighbors != nil {
		def = *req.DefaultNeighbors
	}
	if !s.cfg.Neighbors.Allowed(def) {
		s.errorHandler.HandleValidationError(w, r, "default_neighbors",
			fmt.Sprintf("default_neighbors must be between %d and %d", s.cfg.Neighbors.MinDefault, s.cfg.Neighbors.MaxDefault))
		return
	}

	res, err := lookup.RunLimited(req.Input, def, s.cfg.Neighbors.MaxRadius)
	if err != nil {
		s.errorHandler.HandleLookupError(w, r, req.Input, err)
		return
	}

	s.logger.Debug("neighbors_resolved",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("pairs", len(res.Pairs)),
		zap.Int("highlighted", len(res.Highlight)),
	)

	s.writeJSON(w, http.StatusOK, NeighborsResponse{
		Pairs:     res.Pairs,
		Requested: res.Requested,
		Neighbors: res.Neighbors,
		Highlight: res.Highlight,
		Coverage:  res.Coverage,
		Colors:    res.Colors,
		Tables:    res.Tables(),
		Version:   Version,
		Echo: NeighborsEcho{
			Input:            req.Input,
			DefaultNeighbors: def,
		},
	})
}

// handleExportXLSX returns both tables as a workbook.
// GET /api/v1/neighbors/export.xlsx?input=&default=
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	def, ok := s.defaultFromQuery(r)
	if !ok {
		s.errorHandler.HandleValidationError(w, r, "default",
			fmt.Sprintf("default must be an integer between %d and %d", s.cfg.Neighbors.MinDefault, s.cfg.Neighbors.MaxDefault))
		return
	}

	res, err := lookup.RunLimited(input, def, s.cfg.Neighbors.MaxRadius)
	if err != nil {
		s.errorHandler.HandleLookupError(w, r, input, err)
		return
	}

	var buf bytes.Buffer
	if err := table.WriteXLSX(&buf, res.Tables()...); err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("neighbors_%d.xlsx", time.Now().UTC().Unix())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("X-Roulette-Version", Version)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("export write failed", zap.Error(err))
	}
}

// handleWheel lists the pockets in wheel order.
func (s *Server) handleWheel(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, WheelResponse{
		Pockets: wheel.Pockets(),
		Version: Version,
	})
}

// handleLayout describes the racetrack grid.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	cells := make([][]*int, table.Rows)
	for i, row := range table.Build("", nil).Cells {
		cells[i] = make([]*int, table.Cols)
		for j, cell := range row {
			if cell.Blank {
				continue
			}
			n := cell.Number
			cells[i][j] = &n
		}
	}

	s.writeJSON(w, http.StatusOK, LayoutResponse{
		Rows:    table.Rows,
		Cols:    table.Cols,
		Cells:   cells,
		Version: Version,
	})
}

// handleVersion reports build information.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GetVersionInfo())
}

// defaultFromQuery reads the "default" query parameter, falling back to the
// configured default when it is absent.
func (s *Server) defaultFromQuery(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("default")
	if raw == "" {
		return s.cfg.Neighbors.Default, true
	}
	d, err := strconv.Atoi(raw)
	if err != nil || !s.cfg.Neighbors.Allowed(d) {
		return 0, false
	}
	return d, true
}
