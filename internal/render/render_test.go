package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/favorites"
	"github.com/ziadkadry99/nexus-docs/internal/i18n"
	"github.com/ziadkadry99/nexus-docs/internal/navigation"
	"github.com/ziadkadry99/nexus-docs/internal/preferences"
	"github.com/ziadkadry99/nexus-docs/internal/search"
	"github.com/ziadkadry99/nexus-docs/internal/session"
)

func setup(t *testing.T) (*content.Registry, *Renderer, *Pages) {
	t.Helper()
	reg, err := content.Default()
	if err != nil {
		t.Fatalf("loading registry: %v", err)
	}
	cat, err := i18n.Default()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	pages, err := NewPages(cat)
	if err != nil {
		t.Fatal(err)
	}
	return reg, NewRenderer(reg), pages
}

func TestLinks(t *testing.T) {
	static := Links{Base: "../", Ext: ".html"}
	tests := []struct {
		got, want string
	}{
		{ServerLinks.Topic("sso"), "/docs/sso"},
		{ServerLinks.Page(navigation.RouteHome), "/"},
		{ServerLinks.Page(navigation.RouteDocs), "/docs"},
		{ServerLinks.Page(navigation.RouteContact), "/page/contact"},
		{static.Topic("sso"), "../docs/sso.html"},
		{static.Page(navigation.RouteHome), "../index.html"},
		{static.Page(navigation.RouteDocs), "../docs/index.html"},
		{static.Page(navigation.RouteTerms), "../page/terms.html"},
		{static.Asset(StylesheetPath), "../assets/style.css"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestTopicHeadingsAndLinks(t *testing.T) {
	_, r, _ := setup(t)

	topic, err := r.Topic("intro", ServerLinks)
	if err != nil {
		t.Fatal(err)
	}
	if !topic.Found || topic.Node.ID != "intro" {
		t.Fatalf("unexpected resolution %+v", topic.Resolution)
	}

	var ids []string
	for _, h := range topic.Headings {
		ids = append(ids, h.ID)
	}
	if got := strings.Join(ids, ","); got != "why-nexus,installation,next-steps" {
		t.Errorf("heading ids = %s", got)
	}

	html := string(topic.HTML)
	for _, want := range []string{`id="why-nexus"`, `id="next-steps"`, `href="/docs/authentication"`, `href="/docs/architecture"`} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %s", want)
		}
	}
	if strings.Contains(html, `href="#authentication"`) {
		t.Error("topic link was not rewritten")
	}
}

func TestTopicUnknownFallsBack(t *testing.T) {
	reg, r, _ := setup(t)

	topic, err := r.Topic("does-not-exist", Links{Base: "", Ext: ".html"})
	if err != nil {
		t.Fatal(err)
	}
	if topic.Found || topic.Node.ID != reg.DefaultID() {
		t.Errorf("expected the default topic, got %+v", topic.Resolution)
	}
}

func TestTopicGeneratedBody(t *testing.T) {
	_, r, _ := setup(t)

	topic, err := r.Topic("sso", ServerLinks)
	if err != nil {
		t.Fatal(err)
	}
	if len(topic.Headings) != 1 || topic.Headings[0].ID != "overview" {
		t.Errorf("headings = %+v", topic.Headings)
	}
}

func TestDocsPage(t *testing.T) {
	reg, r, pages := setup(t)

	topic, err := r.Topic("enc-keys", ServerLinks)
	if err != nil {
		t.Fatal(err)
	}
	exp := navigation.NewExpansion()
	exp.Reveal(reg, "enc-keys")
	state := navigation.NewState(reg.DefaultID()).Navigate(navigation.RouteDocs, "enc-keys")
	sidebar := navigation.Sidebar(reg, state, exp)

	var buf bytes.Buffer
	sh := Shell{Lang: i18n.Spanish, Theme: preferences.ThemeDark, Version: "v2.3", Links: ServerLinks}
	if err := pages.Docs(&buf, sh, topic, sidebar, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`<html lang="es" data-theme="dark">`,
		`data-topic="enc-keys"`,
		`href="/docs/enc-keys" aria-current="page"`,
		`data-expand="encryption" aria-expanded="true"`,
		`id="favorite-toggle" class="icon-button on"`,
		`<option value="v2.3" selected>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %s", want)
		}
	}
	if !strings.Contains(out, `id="chat-launcher"`) {
		t.Error("server pages should carry the chat widget")
	}
	if !strings.Contains(Assets()[ScriptPath], `rootMargin: '-80px 0px -80% 0px'`) {
		t.Error("scroll spy band changed")
	}
}

func TestStaticPagesDropServerFeatures(t *testing.T) {
	reg, r, pages := setup(t)
	links := Links{Base: "../", Ext: ".html"}

	topic, err := r.Topic("quickstart", links)
	if err != nil {
		t.Fatal(err)
	}
	state := navigation.NewState(reg.DefaultID()).Navigate(navigation.RouteDocs, "quickstart")
	sidebar := navigation.Sidebar(reg, state, navigation.NewExpansion())

	var buf bytes.Buffer
	if err := pages.Docs(&buf, Shell{Links: links, Static: true}, topic, sidebar, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, absent := range []string{`id="chat-launcher"`, `id="favorite-toggle"`, `id="auth-modal"`} {
		if strings.Contains(out, absent) {
			t.Errorf("static page should not contain %s", absent)
		}
	}
	if !strings.Contains(out, `href="../docs/quickstart.html"`) {
		t.Error("static sidebar links should be relative")
	}
}

func TestHomeAndRoutePages(t *testing.T) {
	reg, _, pages := setup(t)
	idx := search.Build(reg)

	var home bytes.Buffer
	sh := Shell{
		Links:     ServerLinks,
		Favorites: []favorites.Item{{ID: "sso", Title: "SSO Configuration", Path: "docs"}},
	}
	if err := pages.Home(&home, sh, idx.Suggested(4)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(home.String(), `class="card"`) || !strings.Contains(home.String(), `href="/docs/sso"`) {
		t.Error("home page is missing suggestions or favorites")
	}

	tests := []struct {
		route navigation.Route
		want  string
	}{
		{navigation.RouteAPI, "We are currently compiling"},
		{navigation.RouteContact, `id="contact-form"`},
		{navigation.RoutePrivacy, `data-tab="privacy"`},
		{navigation.RouteLegal, `data-tab="terms"`},
		{navigation.RouteProfile, "No session found."},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := pages.Page(&buf, Shell{Links: ServerLinks}, navigation.PageFor(tt.route), nil); err != nil {
			t.Fatalf("%s: %v", tt.route, err)
		}
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("%s page missing %q", tt.route, tt.want)
		}
	}

	if err := pages.Page(&bytes.Buffer{}, Shell{}, navigation.PageFor(navigation.RouteDocs), nil); err == nil {
		t.Error("docs is not a plain page")
	}
}

func TestProfilePage(t *testing.T) {
	_, _, pages := setup(t)
	used := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	keys := []session.APIKey{
		{ID: "k1", Name: "ci", Prefix: "nxs_k1", CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), LastUsed: &used},
		{ID: "k2", Name: "local", Prefix: "nxs_k2", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	sh := Shell{Links: ServerLinks, Profile: &session.Profile{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "Admin"}}

	var buf bytes.Buffer
	if err := pages.Page(&buf, sh, navigation.PageFor(navigation.RouteProfile), keys); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`value="Ada"`, "2026-03-04 10:30", "Never", `data-revoke="k2"`, `id="logout-button"`} {
		if !strings.Contains(out, want) {
			t.Errorf("profile page missing %q", want)
		}
	}
}
