// Package view renders the server-side HTML templates. Pages are
// wrapped in templates/layout.html and share a small func map.
package view

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/santiagosossaa1/facturas/internal/auth"
	"github.com/santiagosossaa1/facturas/internal/flash"
	"github.com/santiagosossaa1/facturas/internal/i18n"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	once.Do(func() {})
	baseDir = filepath.Clean(path)
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
}

// Funcs returns the shared template func map.
func Funcs(r *http.Request) template.FuncMap {
	lang := i18n.FromContext(r.Context())
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"year": func() int { return time.Now().Year() },
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
		"fecha": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Render executes a page template inside the layout. Flash messages,
// the current user and a few defaults are injected into the data map.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["User"]; !exists {
		if u, ok := auth.UserFromContext(r.Context()); ok {
			data["User"] = u
		}
	}
	_, loggedIn := auth.UserIDFromContext(r.Context())
	data["IsLoggedIn"] = loggedIn
	data["Flashes"] = flash.Pop(w, r)

	t, err := load(name, r)
	if err != nil {
		return err
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

func load(name string, r *http.Request) (*template.Template, error) {
	// The func map bakes the request language in, so cache per language.
	key := i18n.FromContext(r.Context()) + ":" + name
	dev := os.Getenv("DEV") == "1"
	if !dev {
		tplCache.RLock()
		t, ok := tplCache.m[key]
		tplCache.RUnlock()
		if ok && t != nil {
			return t, nil
		}
	}
	layout := filepath.Join(baseDir, "layout.html")
	page := filepath.Join(baseDir, name)
	t, err := template.New("layout.html").Funcs(Funcs(r)).ParseFiles(layout, page)
	if err != nil {
		return nil, err
	}
	if !dev {
		tplCache.Lock()
		tplCache.m[key] = t
		tplCache.Unlock()
	}
	return t, nil
}
