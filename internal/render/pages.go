package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ziadkadry99/nexus-docs/internal/favorites"
	"github.com/ziadkadry99/nexus-docs/internal/i18n"
	"github.com/ziadkadry99/nexus-docs/internal/navigation"
	"github.com/ziadkadry99/nexus-docs/internal/preferences"
	"github.com/ziadkadry99/nexus-docs/internal/search"
	"github.com/ziadkadry99/nexus-docs/internal/session"
)

// Asset paths, relative to Links.Base.
const (
	StylesheetPath = "assets/style.css"
	ScriptPath     = "assets/portal.js"
)

// Assets returns the static files every page references, keyed by path.
func Assets() map[string]string {
	return map[string]string{
		StylesheetPath: cssContent,
		ScriptPath:     jsContent,
	}
}

// Shell is the state shared by every page: reader preferences, the
// signed-in profile and favorites.
type Shell struct {
	Lang      i18n.Lang
	Theme     preferences.Theme
	Version   string
	Profile   *session.Profile
	Favorites []favorites.Item
	Links     Links
	// Static drops everything that needs the server.
	Static bool
}

// SidebarRow is a sidebar item with its URL.
type SidebarRow struct {
	navigation.SidebarItem
	URL      string
	Children []SidebarRow
}

// SidebarSection is a category of sidebar rows.
type SidebarSection struct {
	Category string
	Icon     string
	Items    []SidebarRow
}

// view is what the page templates execute against.
type view struct {
	Shell
	Langs       []i18n.Lang
	Versions    []preferences.Version
	Page        navigation.Page
	Title       string
	Description string
	PageID      string

	Suggested []search.Entry

	Topic    *Topic
	Sidebar  []SidebarSection
	Favorite bool

	APIKeys []session.APIKey
}

// Pages draws full HTML pages.
type Pages struct {
	tmpl *template.Template
}

// NewPages parses the page templates. Labels come from cat.
func NewPages(cat *i18n.Catalog) (*Pages, error) {
	funcs := template.FuncMap{
		"t": cat.T,
	}
	tmpl, err := template.New("pages").Funcs(funcs).Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return &Pages{tmpl: tmpl}, nil
}

func (p *Pages) newView(sh Shell, page navigation.Page) view {
	v := view{
		Shell:       sh,
		Langs:       i18n.Langs,
		Versions:    preferences.Versions,
		Page:        page,
		Title:       page.Title,
		Description: page.Description,
		PageID:      string(page.Route),
	}
	if v.Lang == "" {
		v.Lang = i18n.DefaultLang
	}
	if v.Theme == "" {
		v.Theme = preferences.ThemeLight
	}
	return v
}

// Home draws the landing page.
func (p *Pages) Home(w io.Writer, sh Shell, suggested []search.Entry) error {
	v := p.newView(sh, navigation.PageFor(navigation.RouteHome))
	v.Suggested = suggested
	return p.execute(w, "home", v)
}

// Docs draws a topic with its sidebar and table of contents.
func (p *Pages) Docs(w io.Writer, sh Shell, t *Topic, sidebar []navigation.SidebarSection, favorite bool) error {
	v := p.newView(sh, navigation.PageFor(navigation.RouteDocs))
	v.Topic = t
	v.Title = t.Node.Label
	v.Description = t.Description()
	v.PageID = t.Node.ID
	v.Favorite = favorite
	v.Sidebar = sidebarRows(sidebar, sh.Links)
	return p.execute(w, "docs", v)
}

// Page draws any route that is not home or docs. keys is only used by the
// profile page.
func (p *Pages) Page(w io.Writer, sh Shell, page navigation.Page, keys []session.APIKey) error {
	v := p.newView(sh, page)
	v.APIKeys = keys

	name := string(page.Kind)
	switch page.Kind {
	case navigation.KindPlaceholder, navigation.KindStatic, navigation.KindLegal, navigation.KindProfile:
	default:
		return fmt.Errorf("no page template for %s route %q", page.Kind, page.Route)
	}
	return p.execute(w, name, v)
}

func (p *Pages) execute(w io.Writer, name string, v view) error {
	if err := p.tmpl.ExecuteTemplate(w, name, v); err != nil {
		return fmt.Errorf("rendering %s page: %w", name, err)
	}
	return nil
}

func sidebarRows(sections []navigation.SidebarSection, links Links) []SidebarSection {
	out := make([]SidebarSection, 0, len(sections))
	for _, s := range sections {
		out = append(out, SidebarSection{Category: s.Category, Icon: s.Icon, Items: rows(s.Items, links)})
	}
	return out
}

func rows(items []navigation.SidebarItem, links Links) []SidebarRow {
	if len(items) == 0 {
		return nil
	}
	out := make([]SidebarRow, 0, len(items))
	for _, it := range items {
		out = append(out, SidebarRow{
			SidebarItem: it,
			URL:         links.Topic(it.ID),
			Children:    rows(it.Children, links),
		})
	}
	return out
}
