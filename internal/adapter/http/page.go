package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/couchcryptid/flood-risk-dashboard/internal/pipeline"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(
	template.New("dashboard.html").Funcs(template.FuncMap{
		"score": formatScore,
	}).ParseFS(templateFS, "templates/dashboard.html"),
)

// pageData is everything the dashboard template renders.
type pageData struct {
	State       pipeline.State
	Result      *pipeline.Result
	Error       string
	Missing     []string
	MaxUploadMB string
}

type pageRenderer struct {
	maxUploadMB string
}

func newPageRenderer(maxUpload int64) *pageRenderer {
	return &pageRenderer{maxUploadMB: megabytes(maxUpload)}
}

// render executes into a buffer first so a template failure can still
// produce a clean 500.
func (p *pageRenderer) render(w http.ResponseWriter, status int, data pageData) error {
	data.MaxUploadMB = p.maxUploadMB
	if data.State == "" {
		data.State = pipeline.StateAwaitingUpload
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func formatScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func megabytes(n int64) string {
	return strconv.FormatFloat(float64(n)/(1<<20), 'f', -1, 64)
}
