// Package site exports the portal as a directory of static HTML that can
// be hosted without the server.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/i18n"
	"github.com/ziadkadry99/nexus-docs/internal/navigation"
	"github.com/ziadkadry99/nexus-docs/internal/preferences"
	"github.com/ziadkadry99/nexus-docs/internal/progress"
	"github.com/ziadkadry99/nexus-docs/internal/render"
	"github.com/ziadkadry99/nexus-docs/internal/search"
)

// SearchIndexFile is the static search index the pages load.
const SearchIndexFile = "search-index.json"

// Options configures an Exporter.
type Options struct {
	Lang    i18n.Lang
	Version string
	Theme   preferences.Theme
	// Reporter receives one update per written page. Nil discards them.
	Reporter progress.Reporter
	Logger   *zap.Logger
}

// Exporter renders every topic and route to static files.
type Exporter struct {
	reg      *content.Registry
	index    *search.Index
	renderer *render.Renderer
	pages    *render.Pages
	opts     Options
}

// Result summarises an export.
type Result struct {
	Pages  int
	Topics int
	Dir    string
}

// NewExporter creates an Exporter for the registry.
func NewExporter(reg *content.Registry, idx *search.Index, cat *i18n.Catalog, opts Options) (*Exporter, error) {
	pages, err := render.NewPages(cat)
	if err != nil {
		return nil, fmt.Errorf("loading page templates: %w", err)
	}
	if opts.Lang == "" {
		opts.Lang = i18n.DefaultLang
	}
	if opts.Version == "" {
		opts.Version = preferences.Versions[0].Label
	}
	if opts.Theme == "" {
		opts.Theme = preferences.ThemeLight
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Exporter{
		reg:      reg,
		index:    idx,
		renderer: render.NewRenderer(reg),
		pages:    pages,
		opts:     opts,
	}, nil
}

// staticRoutes are the routes exported under page/. The profile page
// needs a session and is left out.
func staticRoutes() []navigation.Route {
	var out []navigation.Route
	for _, r := range navigation.Routes() {
		switch navigation.PageFor(r).Kind {
		case navigation.KindPlaceholder, navigation.KindStatic, navigation.KindLegal:
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return out
}

// Export writes the site into dir:
//
//	index.html
//	docs/index.html and docs/<id>.html for every topic
//	page/<route>.html
//	assets/ and search-index.json
func (e *Exporter) Export(ctx context.Context, dir string) (Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, err
	}

	for name, body := range render.Assets() {
		if err := writeFile(dir, name, []byte(body)); err != nil {
			return Result{}, fmt.Errorf("writing %s: %w", name, err)
		}
	}
	if err := e.index.WriteFile(filepath.Join(dir, SearchIndexFile)); err != nil {
		return Result{}, fmt.Errorf("writing search index: %w", err)
	}

	entries := e.reg.Entries()
	routes := staticRoutes()
	total := len(entries) + len(routes) + 2

	rep := e.opts.Reporter
	rep.Start(total)
	defer rep.Finish()

	res := Result{Dir: dir}
	write := func(name string, draw func(io.Writer) error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := draw(&buf); err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		if err := writeFile(dir, name, buf.Bytes()); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		res.Pages++
		rep.Update(res.Pages, name)
		return nil
	}

	root := e.shell("")
	nested := e.shell("../")

	if err := write("index.html", func(w io.Writer) error {
		return e.pages.Home(w, root, e.index.Suggested(4))
	}); err != nil {
		return res, err
	}

	if err := write("docs/index.html", func(w io.Writer) error {
		return e.drawTopic(w, nested, e.reg.DefaultID())
	}); err != nil {
		return res, err
	}

	for _, entry := range entries {
		id := entry.Node.ID
		if err := write(path.Join("docs", id+".html"), func(w io.Writer) error {
			return e.drawTopic(w, nested, id)
		}); err != nil {
			return res, err
		}
		res.Topics++
	}

	for _, r := range routes {
		page := navigation.PageFor(r)
		if err := write(path.Join("page", string(r)+".html"), func(w io.Writer) error {
			return e.pages.Page(w, nested, page, nil)
		}); err != nil {
			return res, err
		}
	}

	e.opts.Logger.Info("static export complete",
		zap.String("dir", dir),
		zap.Int("pages", res.Pages),
		zap.Int("topics", res.Topics),
	)
	return res, nil
}

// drawTopic renders a topic page with its ancestors expanded in the
// sidebar. A parent topic is expanded as well so its children show.
func (e *Exporter) drawTopic(w io.Writer, sh render.Shell, id string) error {
	topic, err := e.renderer.Topic(id, sh.Links)
	if err != nil {
		return err
	}
	state := navigation.NewState(e.reg.DefaultID()).Navigate(navigation.RouteDocs, id)
	exp := navigation.NewExpansion()
	exp.Reveal(e.reg, id)
	if topic.Node.HasChildren() {
		exp.Toggle(e.reg, id)
	}
	return e.pages.Docs(w, sh, topic, navigation.Sidebar(e.reg, state, exp), false)
}

func (e *Exporter) shell(base string) render.Shell {
	return render.Shell{
		Lang:    e.opts.Lang,
		Theme:   e.opts.Theme,
		Version: e.opts.Version,
		Links:   render.Links{Base: base, Ext: ".html"},
		Static:  true,
	}
}

func writeFile(dir, name string, data []byte) error {
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}
