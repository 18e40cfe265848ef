package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"github.com/MJE43/roulette-neighbors/internal/lookup"
	"github.com/MJE43/roulette-neighbors/internal/table"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	Input   string
	Default int
	Choices []int
	Error   string
	Result  *lookup.Result
	Tables  []table.Grid
	Version string
}

// handleIndex renders the form and, when input is present, both tables.
// Lookup errors are shown on the page verbatim rather than as an error status.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Input:   r.URL.Query().Get("input"),
		Default: s.cfg.Neighbors.Default,
		Choices: s.cfg.Neighbors.Choices,
		Version: Version,
	}

	def, ok := s.defaultFromQuery(r)
	if ok && r.URL.Query().Get("default") != "" && !slices.Contains(page.Choices, def) {
		ok = false
	}
	switch {
	case !ok:
		page.Error = "default number of neighbors is not one of the offered choices"
	case page.Input != "":
		page.Default = def
		res, err := lookup.RunLimited(page.Input, def, s.cfg.Neighbors.MaxRadius)
		if err != nil {
			page.Error = err.Error()
			s.logger.Debug("lookup_rejected", zap.String("type", Classify(err)), zap.Error(err))
			break
		}
		page.Result = res
		page.Tables = res.Tables()
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Roulette-Version", Version)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
