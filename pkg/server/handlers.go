package server

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dashchart/pkg/buildinfo"
	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/errors"
	"github.com/matzehuels/dashchart/pkg/httputil"
	"github.com/matzehuels/dashchart/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, s.logger, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.cfg.Runner.LoadStats(r.Context(), s.cfg.Source, s.cfg.SourceName)
	if err != nil {
		httputil.WriteError(w, r, s.logger, err)
		return
	}
	httputil.WriteJSON(w, s.logger, http.StatusOK, snapshot)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	chartName := chi.URLParam(r, "chart")
	format := chi.URLParam(r, "format")

	opts := s.cfg.Defaults
	width, err := floatParam(r, "width", errors.ErrCodeInvalidWidth)
	if err != nil {
		httputil.WriteError(w, r, s.logger, err)
		return
	}
	scale, err := floatParam(r, "scale", errors.ErrCodeInvalidInput)
	if err != nil {
		httputil.WriteError(w, r, s.logger, err)
		return
	}
	if width != 0 {
		opts.Width = width
	}
	if scale != 0 {
		opts.Scale = scale
	}
	opts.Refresh = r.URL.Query().Has("refresh")
	opts.Logger = s.logger

	// Validate before touching the source so bad URLs fail fast.
	if err := pipeline.ValidateChart(chartName); err != nil {
		httputil.WriteError(w, r, s.logger, err)
		return
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		httputil.WriteError(w, r, s.logger, err)
		return
	}

	snapshot, err := s.cfg.Runner.LoadStats(r.Context(), s.cfg.Source, s.cfg.SourceName)
	if err != nil {
		httputil.WriteError(w, r, s.logger, err)
		return
	}
	data, hit, err := s.cfg.Runner.RenderOne(r.Context(), snapshot, chartName, format, opts)
	if err != nil {
		httputil.WriteError(w, r, s.logger, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	if httputil.NotModified(w, r, httputil.ETag(data)) {
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("write chart", "err", err)
	}
}

// floatParam parses an optional positive query parameter. Missing means 0.
func floatParam(r *http.Request, name string, code errors.Code) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, errors.New(code, "invalid %s %q", name, raw)
	}
	return v, nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Rule statistics</title>
<style>
  body { margin: 0; padding: 24px; background: #0f1115; color: #e6e6e6;
         font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; }
  .cards { display: flex; flex-wrap: wrap; gap: 24px; }
  .card { background: #171a21; border-radius: 8px; padding: 16px; width: {{.Width}}px; }
  h2 { margin: 0 0 12px; font-size: 14px; font-weight: 600; color: #9aa0a6; }
  footer { margin-top: 24px; font-size: 12px; color: #5f6368; }
  table { margin-top: 12px; border-collapse: collapse; font-size: 12px; }
  td { padding: 2px 8px; }
  td.n { text-align: right; font-family: monospace; }
  .badge { padding: 1px 6px; border-radius: 4px; color: #0a0c10; font-weight: 600; text-transform: uppercase; }
  .badge.red { background: #f56565; }
  .badge.amber { background: #f5a623; }
  .badge.blue { background: #5b9cf5; }
  .badge.green { background: #64d9a5; }
  .badge.muted { background: #8b90a5; }
</style>
</head>
<body>
<div class="cards">
  <div class="card"><h2>Rules by category</h2><img src="/charts/category.svg?width={{.Width}}" alt="Rules by category"></div>
  <div class="card"><h2>Rules by severity</h2><img src="/charts/severity.svg?width={{.Width}}" alt="Rules by severity">
  {{- if .Severities}}
  <table>
  {{- range .Severities}}
    <tr><td><span class="badge {{.Badge}}">{{.Name}}</span></td><td class="n">{{.Count}}</td></tr>
  {{- end}}
  </table>
  {{- end}}
  </div>
</div>
<footer>dashchart {{.Version}}</footer>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	width, err := floatParam(r, "width", errors.ErrCodeInvalidWidth)
	if err == nil && width != 0 {
		err = errors.ValidateWidth(width)
	}
	if err != nil {
		httputil.WriteError(w, r, s.logger, err)
		return
	}
	if width == 0 {
		width = pipeline.DefaultWidth
		if s.cfg.Defaults.Width != 0 {
			width = s.cfg.Defaults.Width
		}
	}

	// The page still embeds the charts when the snapshot cannot be loaded;
	// only the severity listing is left out.
	var rows []severityRow
	if snapshot, err := s.cfg.Runner.LoadStats(r.Context(), s.cfg.Source, s.cfg.SourceName); err != nil {
		s.logger.Warn("index without severity listing", "err", err)
	} else {
		rows = severityRows(snapshot.Severities)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct {
		Width      float64
		Version    string
		Severities []severityRow
	}{width, buildinfo.Version, rows}); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

type severityRow struct {
	Name  string
	Badge string
	Count int
}

// severityRows lists every canonical severity, zeros included.
func severityRows(counts chart.SeverityCounts) []severityRow {
	rows := make([]severityRow, 0, len(chart.Severities))
	for _, sev := range chart.Severities {
		rows = append(rows, severityRow{
			Name:  string(sev),
			Badge: chart.BadgeForSeverity(string(sev)),
			Count: counts[sev],
		})
	}
	return rows
}
