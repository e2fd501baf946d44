package docserver

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hivemem/hivemem/logging"
	"github.com/hivemem/hivemem/manifest"
)

// Config locates the documents the server renders. All directories are
// treated as constrained bases: requests may never read outside them.
type Config struct {
	ManifestPath string
	DocsDir      string
	ExamplesDir  string
	ConfigsDir   string
}

// ConfigFromEnv builds a Config from the environment, falling back to the
// conventional repository layout.
func ConfigFromEnv() Config {
	cfg := Config{
		ManifestPath: "agent_manifest.json",
		DocsDir:      "docs",
		ExamplesDir:  "examples",
		ConfigsDir:   "configs/agents",
	}
	if v := os.Getenv("AGENT_MANIFEST_PATH"); v != "" {
		cfg.ManifestPath = v
	}
	if v := os.Getenv("AGENT_DOCS_DIR"); v != "" {
		cfg.DocsDir = v
	}
	if v := os.Getenv("AGENT_EXAMPLES_DIR"); v != "" {
		cfg.ExamplesDir = v
	}
	if v := os.Getenv("AGENT_CONFIGS_DIR"); v != "" {
		cfg.ConfigsDir = v
	}
	return cfg
}

// Server renders the agent manifest and browses documentation and example
// files read-only. It never writes and calls into the core only via the
// manifest document.
type Server struct {
	cfg    Config
	logger logging.Logger
}

// New constructs a Server. A nil logger is substituted with NoOpLogger.
func New(cfg Config, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Server{cfg: cfg, logger: logger}
}

// Handler returns the route mux for the documentation UI.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleManifest)
	mux.HandleFunc("/pages", s.handlePages)
	mux.HandleFunc("/page", s.handlePage)
	mux.HandleFunc("/examples", s.handleExamples)
	mux.HandleFunc("/raw", s.handleRaw)
	return mux
}

var manifestTmpl = template.Must(template.New("manifest").Funcs(template.FuncMap{
	"requiredParam": func(name string, required []string) bool {
		for _, r := range required {
			if r == name {
				return true
			}
		}
		return false
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Agent: {{.AgentName}}</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 32px; }
    .tool { border: 1px solid #ddd; border-radius: 6px; margin: 16px 0; padding: 12px 16px; }
    .tool-header { font-weight: 600; }
    .param { margin-left: 16px; }
    .required { color: #c00; font-weight: 700; margin-left: 4px; }
  </style>
</head>
<body>
  <h1>Agent: {{.AgentName}}</h1>
  <p>{{.Description}}</p>
  <p><em>Version: {{.Version}}</em></p>
  <hr />
  <nav>
    <a href="/">Manifest</a> |
    <a href="/pages">Docs Pages</a> |
    <a href="/examples">Examples</a>
  </nav>
  <hr />
  <h2>Available Tools</h2>
  {{range .Tools}}
  <div class="tool">
    <div class="tool-header">{{.Name}}</div>
    <p><strong>Description:</strong> {{.Description}}</p>
    <h4>Parameters:</h4>
    {{if .Parameters}}
      {{$required := .Required}}
      {{range $name, $param := .Parameters}}
      <div class="param">
        <strong>{{$name}}{{if requiredParam $name $required}}<span class="required">*</span>{{end}}</strong>
        <em>({{$param.Type}})</em>
        <div>{{$param.Description}}</div>
      </div>
      {{end}}
    {{else}}<p>None</p>{{end}}
    <h4>Returns:</h4>
    {{with .Returns}}
      {{if .Properties}}
        {{$required := .Required}}
        {{range $name, $param := .Properties}}
        <div class="param">
          <strong>{{$name}}{{if requiredParam $name $required}}<span class="required">*</span>{{end}}</strong>
          <em>({{$param.Type}})</em>
          <div>{{$param.Description}}</div>
        </div>
        {{end}}
      {{else}}<div class="param">{{if .Type}}{{.Type}}{{else}}string{{end}}</div>{{end}}
    {{else}}<div class="param">string</div>{{end}}
  </div>
  {{end}}
</body>
</html>
`))

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	m, err := manifest.Load(s.cfg.ManifestPath)
	if err != nil {
		s.logger.Warn("Manifest unavailable", "path", s.cfg.ManifestPath, "error", err)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "<h1>Error</h1><p>Agent manifest not found. Please generate one first.</p>")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := manifestTmpl.Execute(w, m); err != nil {
		s.logger.Error("Manifest render failed", "error", err)
	}
}

func (s *Server) handlePages(w http.ResponseWriter, _ *http.Request) {
	entries, _ := filepath.Glob(filepath.Join(s.cfg.DocsDir, "*.md"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<h1>Project Docs</h1><p>Markdown files under docs/</p><ul>")
	for _, entry := range entries {
		name := filepath.Base(entry)
		fmt.Fprintf(w, `<li><a href="/page?name=%s">%s</a></li>`, template.URLQueryEscaper(name), template.HTMLEscapeString(name))
	}
	fmt.Fprint(w, "</ul>")
	if len(entries) == 0 {
		fmt.Fprint(w, "<p>No Markdown files found in docs/</p>")
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	path := filepath.Join(s.cfg.DocsDir, name)
	if !safeUnder(s.cfg.DocsDir, path) {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	text, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>%s</h1><pre>%s</pre>", template.HTMLEscapeString(name), template.HTMLEscapeString(string(text)))
}

func (s *Server) handleExamples(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<h1>Examples</h1><h2>Example Programs</h2><ul>")
	s.listTree(w, s.cfg.ExamplesDir, "examples", ".go")
	fmt.Fprint(w, "</ul><h2>Agent Configs</h2><ul>")
	s.listTree(w, s.cfg.ConfigsDir, "configs/agents", ".yaml")
	fmt.Fprint(w, "</ul>")
}

func (s *Server) listTree(w http.ResponseWriter, dir, base, ext string) {
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(path, ext) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		fmt.Fprintf(w, `<li><a href="/raw?base=%s&path=%s">%s</a></li>`,
			template.URLQueryEscaper(base), template.URLQueryEscaper(rel), template.HTMLEscapeString(rel))
		return nil
	})
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	rel := r.URL.Query().Get("path")

	baseDir, ok := s.baseDir(base)
	if !ok {
		http.Error(w, "Invalid base", http.StatusBadRequest)
		return
	}

	path := filepath.Join(baseDir, rel)
	if !safeUnder(baseDir, path) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(data)
}

// baseDir maps the public base labels to the configured directories. Only
// these labels are servable.
func (s *Server) baseDir(base string) (string, bool) {
	switch base {
	case "examples":
		return s.cfg.ExamplesDir, true
	case "configs/agents", "agent_configs":
		return s.cfg.ConfigsDir, true
	case "docs":
		return s.cfg.DocsDir, true
	default:
		return "", false
	}
}

// safeUnder reports whether path stays inside base after cleaning. It blocks
// the usual ../ escapes for request-supplied names.
func safeUnder(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
