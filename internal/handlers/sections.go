package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/rag"
	"bharatlaw-ai/internal/service"
	"bharatlaw-ai/internal/storage"
)

// SectionsHandler serves section lookup, similarity search and the explorer.
type SectionsHandler struct {
	sectionService service.SectionService
	markdown       goldmark.Markdown
}

// NewSectionsHandler creates a new SectionsHandler.
func NewSectionsHandler(sectionService service.SectionService) *SectionsHandler {
	return &SectionsHandler{
		sectionService: sectionService,
		// Raw HTML in statute text is dropped; goldmark only passes it through with html.WithUnsafe.
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// MatchesResponse wraps vector search results.
type MatchesResponse struct {
	Query   string      `json:"query"`
	Matches []rag.Match `json:"matches"`
}

// SectionsResponse wraps explorer results.
type SectionsResponse struct {
	Sections []storage.SectionRecord `json:"sections"`
}

// Lookup handles GET /api/sections/lookup?q=Section 302.
func (h *SectionsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")

	matches, err := h.sectionService.Lookup(ctx, q)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to look up section")
		return
	}
	if matches == nil {
		matches = []rag.Match{}
	}
	writeJSON(ctx, w, http.StatusOK, MatchesResponse{Query: q, Matches: matches})
}

// Similar handles GET /api/sections/similar?q=...&k=3.
func (h *SectionsHandler) Similar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")

	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid k", "k", raw)
			writeError(w, http.StatusBadRequest, "Validation error: k: must be an integer")
			return
		}
		k = n
	}

	matches, err := h.sectionService.Similar(ctx, q, k)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to search sections")
		return
	}
	if matches == nil {
		matches = []rag.Match{}
	}
	writeJSON(ctx, w, http.StatusOK, MatchesResponse{Query: q, Matches: matches})
}

// Explore handles GET /api/sections?act=&section=.
func (h *SectionsHandler) Explore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.sectionService.Explore(ctx, r.URL.Query().Get("act"), r.URL.Query().Get("section"))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to explore sections")
		return
	}
	writeJSON(ctx, w, http.StatusOK, SectionsResponse{Sections: records})
}

// Acts handles GET /api/sections/acts.
func (h *SectionsHandler) Acts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	acts, err := h.sectionService.Acts(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list acts")
		return
	}
	if acts == nil {
		acts = []storage.ActSummary{}
	}
	writeJSON(ctx, w, http.StatusOK, acts)
}

var viewTemplate = template.Must(template.New("section").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{range .Sections}}<article>
{{.}}
</article>
{{end}}</body>
</html>
`))

type viewPage struct {
	Title    string
	Sections []template.HTML
}

// View handles GET /sections/view?act=&section= and renders the explorer result as HTML.
func (h *SectionsHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	act := r.URL.Query().Get("act")
	section := r.URL.Query().Get("section")

	records, err := h.sectionService.Explore(ctx, act, section)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to explore sections")
		return
	}

	page := viewPage{Title: viewTitle(act, section)}
	for _, rec := range records {
		html, err := h.render(rec)
		if err != nil {
			logger.ErrorContext(ctx, "failed to render section", "act", rec.Act, "section", rec.SectionNo, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to render section")
			return
		}
		page.Sections = append(page.Sections, html)
	}

	var buf bytes.Buffer
	if err := viewTemplate.Execute(&buf, page); err != nil {
		logger.ErrorContext(ctx, "failed to execute template", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render section")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// render converts one section to HTML through a small markdown document.
func (h *SectionsHandler) render(rec storage.SectionRecord) (template.HTML, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "## %s\n\n", markdownLine(rec.Act))
	heading := rec.SectionNo
	if rec.Heading != "" {
		heading += " " + rec.Heading
	}
	fmt.Fprintf(&md, "### %s\n\n", markdownLine(heading))
	if rec.Part != "" {
		fmt.Fprintf(&md, "*%s*\n\n", markdownLine(rec.Part))
	}
	for _, para := range strings.Split(rec.Text, "\n") {
		if para = strings.TrimSpace(para); para != "" {
			md.WriteString(para)
			md.WriteString("\n\n")
		}
	}

	var out bytes.Buffer
	if err := h.markdown.Convert([]byte(md.String()), &out); err != nil {
		return "", err
	}
	// goldmark escapes text and omits raw HTML in its default mode.
	return template.HTML(out.String()), nil
}

func viewTitle(act, section string) string {
	parts := make([]string, 0, 2)
	if act != "" && act != service.AllActs {
		parts = append(parts, act)
	}
	if section != "" {
		parts = append(parts, "Section "+section)
	}
	if len(parts) == 0 {
		return "Sections"
	}
	return strings.Join(parts, " ")
}

// markdownLine keeps header and emphasis text on one line and neutralises emphasis markers.
func markdownLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.NewReplacer("*", `\*`, "_", `\_`, "#", `\#`).Replace(s)
}
