package render

// pageTemplates holds every portal page. Each page template pulls in the
// shared header and footer.
const pageTemplates = `
{{define "header"}}<!DOCTYPE html>
<html lang="{{.Lang}}" data-theme="{{.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{t .Lang "meta.title"}}</title>
  <meta name="description" content="{{.Description}}">
  <link rel="stylesheet" href="{{.Links.Asset "assets/style.css"}}">
</head>
<body data-static="{{.Static}}" data-search-index="{{.Links.Asset "search-index.json"}}" data-docs-base="{{.Links.TopicBase}}" data-ext="{{.Links.Ext}}" data-signed-in="{{if .Profile}}true{{else}}false{{end}}">
  <header class="navbar">
    <a class="brand" href="{{.Links.Page "home"}}"><span class="brand-mark">E</span> EATGF</a>
    <nav class="nav-links">
      <a href="{{.Links.Page "docs"}}"{{if eq .Page.Kind "docs"}} class="active"{{end}}>{{t .Lang "nav.docs"}}</a>
      <a href="{{.Links.Page "api"}}">{{t .Lang "nav.api"}}</a>
      <a href="{{.Links.Page "community"}}">{{t .Lang "nav.community"}}</a>
      <a href="{{.Links.Page "changelog"}}">{{t .Lang "nav.changelog"}}</a>
    </nav>
    <div class="search">
      <input type="search" id="search-input" placeholder="{{t .Lang "common.search"}}" autocomplete="off">
      <kbd>{{t .Lang "common.cmdK"}}</kbd>
      <ul class="search-results" id="search-results" hidden></ul>
    </div>
    <div class="nav-actions">
      <select id="version-select" aria-label="{{t .Lang "common.selectVersion"}}"{{if .Static}} disabled{{end}}>
        {{range .Versions}}<option value="{{.Label}}"{{if eq .Label $.Version}} selected{{end}}>{{.Label}} ({{.Tag}})</option>{{end}}
      </select>
      <select id="lang-select" aria-label="Language"{{if .Static}} disabled{{end}}>
        {{range .Langs}}<option value="{{.}}"{{if eq . $.Lang}} selected{{end}}>{{.}}</option>{{end}}
      </select>
      <button id="theme-toggle" class="icon-button" aria-label="Toggle theme">{{if eq .Theme "dark"}}&#9728;{{else}}&#9790;{{end}}</button>
      {{if not .Static}}
        {{if .Profile}}
          <a class="avatar-link" href="{{.Links.Page "profile"}}" title="{{t .Lang "common.profile"}}"><img class="avatar" src="{{.Profile.Avatar}}" alt="{{.Profile.Name}}"></a>
          <button id="logout-button" class="link-button">{{t .Lang "common.logout"}}</button>
        {{else}}
          <button class="link-button" data-open-auth="login">{{t .Lang "common.login"}}</button>
          <button class="primary-button" data-open-auth="signup">{{t .Lang "common.signup"}}</button>
        {{end}}
      {{end}}
    </div>
  </header>
{{end}}

{{define "footer"}}
  <footer class="footer">
    <div class="footer-columns">
      <div>
        <h4>{{t .Lang "footer.product"}}</h4>
        <a href="{{.Links.Page "features"}}">Features</a>
        <a href="{{.Links.Page "enterprise"}}">Enterprise</a>
        <a href="{{.Links.Page "security"}}">Security</a>
        <a href="{{.Links.Page "billing"}}">Billing</a>
        <a href="{{.Links.Page "integrations"}}">Integrations</a>
      </div>
      <div>
        <h4>{{t .Lang "footer.company"}}</h4>
        <a href="{{.Links.Page "about"}}">About Us</a>
        <a href="{{.Links.Page "careers"}}">Careers</a>
        <a href="{{.Links.Page "contact"}}">Contact</a>
        <a href="{{.Links.Page "help"}}">Help Center</a>
      </div>
      <div>
        <h4>{{t .Lang "footer.legal"}}</h4>
        <a href="{{.Links.Page "privacy"}}">Privacy Policy</a>
        <a href="{{.Links.Page "terms"}}">Terms of Service</a>
        <a href="{{.Links.Page "legal"}}">Legal</a>
      </div>
    </div>
    <p class="copyright">&copy; EATGF. {{t .Lang "footer.rights"}}</p>
  </footer>
  {{if not .Static}}{{template "auth-modal" .}}{{template "feedback-modal" .}}{{template "chat-widget" .}}{{end}}
  <script src="{{.Links.Asset "assets/portal.js"}}"></script>
</body>
</html>
{{end}}

{{define "auth-modal"}}
  <div class="modal" id="auth-modal" hidden>
    <form class="modal-card" id="auth-form">
      <h3 id="auth-title" data-login="{{t .Lang "auth.welcomeBack"}}" data-signup="{{t .Lang "auth.createAccount"}}">{{t .Lang "auth.welcomeBack"}}</h3>
      <label class="signup-only">{{t .Lang "auth.name"}}<input name="name" autocomplete="name"></label>
      <label>{{t .Lang "auth.email"}}<input name="email" type="email" autocomplete="email"></label>
      <label>{{t .Lang "auth.password"}}<input name="password" type="password" autocomplete="current-password"></label>
      <p class="form-error" id="auth-error" hidden></p>
      <button type="submit" class="primary-button" id="auth-submit">{{t .Lang "common.login"}}</button>
      <p class="divider">{{t .Lang "auth.continueWith"}}</p>
      <div class="social">
        <button type="button" data-social="github">GitHub</button>
        <button type="button" data-social="google">Google</button>
      </div>
      <button type="button" class="link-button" data-close-modal>&times;</button>
    </form>
  </div>
{{end}}

{{define "feedback-modal"}}
  <div class="modal" id="feedback-modal" hidden>
    <form class="modal-card" id="feedback-form">
      <h3>{{t .Lang "feedback.title"}}</h3>
      <textarea name="message" rows="4" required></textarea>
      <input type="hidden" name="page" value="{{.PageID}}">
      <p class="form-error" id="feedback-error" hidden></p>
      <p class="form-success" id="feedback-thanks" hidden>{{t .Lang "feedback.thanks"}}</p>
      <button type="submit" class="primary-button">{{t .Lang "feedback.submit"}}</button>
      <button type="button" class="link-button" data-close-modal>&times;</button>
    </form>
  </div>
{{end}}

{{define "chat-widget"}}
  <button class="chat-launcher" id="chat-launcher" aria-label="{{t .Lang "common.askAI"}}">{{t .Lang "common.askAI"}}</button>
  <section class="chat-panel" id="chat-panel" hidden>
    <header>
      <strong>EATGF AI</strong>
      <button class="link-button" id="chat-reset" title="Reset">&#8635;</button>
      <button class="link-button" id="chat-close">&times;</button>
    </header>
    <div class="chat-log" id="chat-log"></div>
    <div class="chat-prompts" id="chat-prompts"></div>
    <form id="chat-form">
      <input id="chat-input" autocomplete="off" placeholder="{{t .Lang "common.askAI"}}...">
    </form>
  </section>
{{end}}

{{define "home"}}{{template "header" .}}
  <main class="home">
    <section class="hero">
      <h1>{{t .Lang "meta.title"}}</h1>
      <p>{{t .Lang "meta.description"}}</p>
      <a class="primary-button" href="{{.Links.Page "docs"}}">{{t .Lang "nav.docs"}}</a>
      <a class="secondary-button" href="{{.Links.Page "api"}}">{{t .Lang "nav.api"}}</a>
    </section>
    <section class="cards">
      {{range .Suggested}}
      <a class="card" href="{{$.Links.Topic .ID}}">
        <span class="card-category">{{.Category}}</span>
        <strong>{{.Title}}</strong>
      </a>
      {{end}}
    </section>
    {{if .Favorites}}
    <section class="home-favorites">
      <h2>{{t .Lang "common.favorites"}}</h2>
      <ul>{{range .Favorites}}<li><a href="{{$.Links.Topic .ID}}">{{.Title}}</a> <span class="muted">{{.Description}}</span></li>{{end}}</ul>
    </section>
    {{end}}
  </main>
{{template "footer" .}}{{end}}

{{define "sidebar-item"}}
  <li class="depth-{{.Depth}}{{if .Active}} active{{end}}{{if .Expanded}} expanded{{end}}">
    {{if .HasChildren}}
      <button class="sidebar-parent" data-expand="{{.ID}}" aria-expanded="{{.Expanded}}">{{.Label}}</button>
      <ul>{{range .Children}}{{template "sidebar-item" .}}{{end}}</ul>
    {{else}}
      <a href="{{.URL}}"{{if .Active}} aria-current="page"{{end}}>{{.Label}}</a>
    {{end}}
  </li>
{{end}}

{{define "docs"}}{{template "header" .}}
  <div class="docs-layout">
    <aside class="sidebar">
      {{range .Sidebar}}
      <div class="sidebar-section">
        <h5><span class="icon icon-{{.Icon}}"></span>{{.Category}}</h5>
        <ul>{{range .Items}}{{template "sidebar-item" .}}{{end}}</ul>
      </div>
      {{end}}
      {{if .Favorites}}
      <div class="sidebar-section sidebar-favorites">
        <h5>{{t .Lang "common.favorites"}}</h5>
        <ul>{{range .Favorites}}<li><a href="{{$.Links.Topic .ID}}">{{.Title}}</a></li>{{end}}</ul>
      </div>
      {{end}}
    </aside>
    <article class="doc" id="doc" data-topic="{{.Topic.Node.ID}}">
      <nav class="breadcrumbs">
        {{range $i, $c := .Topic.Trail}}{{if $i}} / {{end}}{{if and $c.ID (ne $c.ID $.Topic.Node.ID)}}<a href="{{$.Links.Topic $c.ID}}">{{$c.Label}}</a>{{else}}<span>{{$c.Label}}</span>{{end}}{{end}}
      </nav>
      <div class="doc-title">
        <h1>{{.Topic.Node.Label}}</h1>
        {{if not .Static}}
        <button id="favorite-toggle" class="icon-button{{if .Favorite}} on{{end}}" aria-pressed="{{.Favorite}}"
          data-id="{{.Topic.Node.ID}}" data-title="{{.Topic.Node.Label}}" data-description="{{.Topic.Description}}" title="{{t .Lang "common.favorites"}}">&#9733;</button>
        <button id="summarize" class="secondary-button" data-id="{{.Topic.Node.ID}}">{{t .Lang "common.summarize"}}</button>
        {{end}}
      </div>
      <div class="summary" id="summary" hidden></div>
      <div class="doc-body">{{.Topic.HTML}}</div>
      {{if not .Static}}<button class="link-button" id="open-feedback">{{t .Lang "feedback.title"}}</button>{{end}}
    </article>
    <aside class="toc">
      {{if .Topic.Headings}}
      <h5>{{t .Lang "common.onThisPage"}}</h5>
      <ul id="toc">
        {{range .Topic.Headings}}<li class="level-{{.Level}}"><a href="#{{.ID}}" data-heading="{{.ID}}">{{.Text}}</a></li>{{end}}
      </ul>
      {{end}}
    </aside>
  </div>
{{template "footer" .}}{{end}}

{{define "placeholder"}}{{template "header" .}}
  <main class="placeholder">
    <h1>{{.Page.Title}}</h1>
    <p>{{.Page.Description}}</p>
    <a class="secondary-button" href="{{.Links.Page "home"}}">Back to Home</a>
  </main>
{{template "footer" .}}{{end}}

{{define "static"}}{{template "header" .}}
  <main class="static">
    <h1>{{.Page.Title}}</h1>
    {{if and (eq .Page.Route "contact") (not .Static)}}
    <form id="contact-form" class="contact-form">
      <div class="row">
        <label>First Name<input name="first_name" placeholder="Jane"></label>
        <label>Last Name<input name="last_name" placeholder="Doe"></label>
      </div>
      <label>Work Email<input name="email" type="email" placeholder="jane@company.com"></label>
      <label>Message<textarea name="message" rows="4" placeholder="How can we help you?"></textarea></label>
      <p class="form-error" id="contact-error" hidden></p>
      <p class="form-success" id="contact-thanks" hidden>Thanks, we will be in touch.</p>
      <button type="submit" class="primary-button">Send Message</button>
    </form>
    {{end}}
  </main>
{{template "footer" .}}{{end}}

{{define "legal"}}{{template "header" .}}
  <main class="legal" data-tab="{{.Page.LegalTab}}">
    <div class="tabs">
      <a href="{{.Links.Page "terms"}}"{{if eq .Page.LegalTab "terms"}} class="active"{{end}}>Terms of Service</a>
      <a href="{{.Links.Page "privacy"}}"{{if eq .Page.LegalTab "privacy"}} class="active"{{end}}>Privacy Policy</a>
    </div>
    <h1>{{if eq .Page.LegalTab "privacy"}}Privacy Policy{{else}}Terms of Service{{end}}</h1>
  </main>
{{template "footer" .}}{{end}}

{{define "profile"}}{{template "header" .}}
  <main class="profile">
    {{if .Profile}}
    <section class="profile-card">
      <img class="avatar large" src="{{.Profile.Avatar}}" alt="{{.Profile.Name}}">
      <form id="profile-form">
        <label>{{t .Lang "auth.name"}}<input name="name" value="{{.Profile.Name}}"></label>
        <label>{{t .Lang "auth.email"}}<input name="email" type="email" value="{{.Profile.Email}}"></label>
        <p class="muted">{{.Profile.Role}}{{if .Profile.CreatedAt}} &middot; {{.Profile.CreatedAt}}{{end}}</p>
        <p class="form-error" id="profile-error" hidden></p>
        <button type="submit" class="primary-button">{{t .Lang "common.settings"}}</button>
      </form>
    </section>
    <section class="api-keys">
      <h2>API Keys</h2>
      <form id="key-form" class="inline-form">
        <input name="name" placeholder="Key name">
        <button type="submit" class="primary-button">Create key</button>
      </form>
      <p class="secret" id="key-secret" hidden></p>
      <table>
        <thead><tr><th>Name</th><th>Key</th><th>Created</th><th>Last used</th><th></th></tr></thead>
        <tbody id="key-rows">
          {{range .APIKeys}}<tr><td>{{.Name}}</td><td><code>{{.Prefix}}</code></td><td>{{.CreatedAt.Format "2006-01-02"}}</td><td>{{if .LastUsed}}{{.LastUsed.Format "2006-01-02 15:04"}}{{else}}Never{{end}}</td><td><button class="link-button" data-revoke="{{.ID}}">Revoke</button></td></tr>{{end}}
        </tbody>
      </table>
    </section>
    {{else}}
    <section class="placeholder">
      <h1>{{t .Lang "common.profile"}}</h1>
      <p>No session found.</p>
      <button class="primary-button" data-open-auth="login">{{t .Lang "common.login"}}</button>
    </section>
    {{end}}
  </main>
{{template "footer" .}}{{end}}
`

// cssContent styles the portal.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-surface: #f7f8fa;
  --text: #1a1d23;
  --text-muted: #5f6b7a;
  --border: #e3e6ea;
  --primary: #4361ee;
  --success: #10b981;
  --danger: #dc2626;
  --navbar-height: 64px;
}
[data-theme="dark"] {
  --bg: #0f1117;
  --bg-surface: #171a21;
  --text: #e6e8eb;
  --text-muted: #9aa4b2;
  --border: #2a2f3a;
}
* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: var(--bg); color: var(--text); }
a { color: var(--primary); text-decoration: none; }
.muted { color: var(--text-muted); }
.navbar { position: sticky; top: 0; z-index: 50; height: var(--navbar-height); display: flex; align-items: center; gap: 1.5rem; padding: 0 1.5rem; background: var(--bg); border-bottom: 1px solid var(--border); }
.brand { font-weight: 700; color: var(--text); display: flex; align-items: center; gap: .5rem; }
.brand-mark { background: var(--primary); color: #fff; border-radius: 6px; padding: 2px 8px; }
.nav-links { display: flex; gap: 1rem; }
.nav-links a { color: var(--text-muted); }
.nav-links a.active { color: var(--text); font-weight: 600; }
.search { position: relative; flex: 1; max-width: 420px; }
.search input { width: 100%; padding: .5rem .75rem; border: 1px solid var(--border); border-radius: 8px; background: var(--bg-surface); color: var(--text); }
.search kbd { position: absolute; right: .5rem; top: .45rem; font-size: .75rem; color: var(--text-muted); }
.search-results { position: absolute; top: 110%; left: 0; right: 0; list-style: none; margin: 0; padding: .25rem; background: var(--bg); border: 1px solid var(--border); border-radius: 8px; max-height: 360px; overflow-y: auto; }
.search-results li a { display: block; padding: .5rem; border-radius: 6px; color: var(--text); }
.search-results li a:hover, .search-results li a.selected { background: var(--bg-surface); }
.search-results small { display: block; color: var(--text-muted); }
.nav-actions { display: flex; align-items: center; gap: .5rem; margin-left: auto; }
select, input, textarea { font: inherit; }
.icon-button, .link-button { background: none; border: none; cursor: pointer; color: var(--text-muted); font-size: 1rem; }
.icon-button.on { color: #f5b301; }
.primary-button, .secondary-button { display: inline-block; padding: .5rem 1rem; border-radius: 6px; cursor: pointer; font-weight: 500; }
.primary-button { background: var(--primary); color: #fff; border: none; }
.secondary-button { background: transparent; color: var(--text); border: 1px solid var(--border); }
.avatar { width: 32px; height: 32px; border-radius: 50%; }
.avatar.large { width: 96px; height: 96px; }
.docs-layout { display: grid; grid-template-columns: 260px minmax(0, 1fr) 220px; gap: 2rem; padding: 0 1.5rem; }
.sidebar, .toc { position: sticky; top: var(--navbar-height); align-self: start; max-height: calc(100vh - var(--navbar-height)); overflow-y: auto; padding: 1.5rem 0; }
.sidebar h5, .toc h5 { text-transform: uppercase; font-size: .75rem; letter-spacing: .05em; color: var(--text-muted); margin: 1rem 0 .5rem; }
.sidebar ul, .toc ul { list-style: none; margin: 0; padding: 0; }
.sidebar li ul { display: none; padding-left: .75rem; }
.sidebar li.expanded > ul { display: block; }
.sidebar a, .sidebar-parent { display: block; width: 100%; text-align: left; padding: .3rem .5rem; border-radius: 6px; color: var(--text-muted); background: none; border: none; cursor: pointer; font: inherit; }
.sidebar li.active > a { background: var(--bg-surface); color: var(--primary); font-weight: 600; }
.toc li.level-3 { padding-left: .75rem; }
.toc a { display: block; padding: .2rem 0; color: var(--text-muted); border-left: 2px solid transparent; padding-left: .5rem; }
.toc a.active { color: var(--primary); border-left-color: var(--primary); }
.doc { padding: 2rem 0 4rem; min-width: 0; }
.breadcrumbs { font-size: .85rem; color: var(--text-muted); }
.doc-title { display: flex; align-items: center; gap: .75rem; }
.doc-body h2, .doc-body h3 { scroll-margin-top: calc(var(--navbar-height) + 16px); }
.doc-body pre { padding: 1rem; border-radius: 8px; overflow-x: auto; border: 1px solid var(--border); }
.doc-body blockquote { margin: 1rem 0; padding: .75rem 1rem; border-left: 4px solid var(--primary); background: var(--bg-surface); }
.summary { margin: 1rem 0; padding: 1rem; border: 1px solid var(--border); border-radius: 8px; background: var(--bg-surface); white-space: pre-wrap; }
.home .hero { text-align: center; padding: 5rem 1.5rem 3rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; padding: 0 1.5rem 3rem; max-width: 1100px; margin: 0 auto; }
.card { border: 1px solid var(--border); border-radius: 10px; padding: 1rem; color: var(--text); }
.card-category { display: block; font-size: .75rem; color: var(--text-muted); }
.home-favorites, .placeholder, .static, .legal, .profile { max-width: 900px; margin: 0 auto; padding: 3rem 1.5rem; }
.tabs { display: flex; gap: 1rem; border-bottom: 1px solid var(--border); }
.tabs a { padding: .5rem 0; color: var(--text-muted); }
.tabs a.active { color: var(--primary); border-bottom: 2px solid var(--primary); }
.contact-form label, .modal-card label, #profile-form label { display: block; margin-bottom: .75rem; }
.contact-form input, .contact-form textarea, .modal-card input, .modal-card textarea, #profile-form input { display: block; width: 100%; padding: .5rem; margin-top: .25rem; border: 1px solid var(--border); border-radius: 6px; background: var(--bg-surface); color: var(--text); }
.contact-form .row { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; }
.form-error { color: var(--danger); }
.form-success { color: var(--success); }
.secret { font-family: monospace; padding: .75rem; background: var(--bg-surface); border: 1px dashed var(--primary); border-radius: 6px; word-break: break-all; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: .5rem; border-bottom: 1px solid var(--border); }
.modal { position: fixed; inset: 0; z-index: 120; background: rgba(0,0,0,.6); display: flex; align-items: center; justify-content: center; }
.modal[hidden] { display: none; }
.modal-card { position: relative; width: 100%; max-width: 420px; background: var(--bg); border: 1px solid var(--border); border-radius: 12px; padding: 1.5rem; }
.modal-card [data-close-modal] { position: absolute; top: .75rem; right: .75rem; }
.modal-card:not(.signup) .signup-only { display: none; }
.social { display: flex; gap: .5rem; }
.social button { flex: 1; padding: .5rem; border: 1px solid var(--border); border-radius: 6px; background: var(--bg-surface); color: var(--text); cursor: pointer; }
.chat-launcher { position: fixed; right: 1.5rem; bottom: 1.5rem; z-index: 90; padding: .75rem 1.25rem; border-radius: 999px; border: none; background: var(--primary); color: #fff; cursor: pointer; }
.chat-panel { position: fixed; right: 1.5rem; bottom: 5rem; z-index: 100; width: 380px; height: 520px; display: flex; flex-direction: column; background: var(--bg); border: 1px solid var(--border); border-radius: 12px; overflow: hidden; }
.chat-panel[hidden] { display: none; }
.chat-panel header { display: flex; align-items: center; gap: .5rem; padding: .75rem 1rem; border-bottom: 1px solid var(--border); }
.chat-panel header strong { flex: 1; }
.chat-log { flex: 1; overflow-y: auto; padding: 1rem; }
.chat-message { margin-bottom: .75rem; padding: .5rem .75rem; border-radius: 10px; max-width: 90%; }
.chat-message.user { margin-left: auto; background: var(--primary); color: #fff; }
.chat-message.assistant { background: var(--bg-surface); }
.chat-message pre { overflow-x: auto; padding: .5rem; border-radius: 6px; }
.chat-prompts { display: flex; flex-wrap: wrap; gap: .25rem; padding: 0 1rem; }
.chat-prompts button { font-size: .8rem; border: 1px solid var(--border); border-radius: 999px; background: none; color: var(--text); padding: .25rem .6rem; cursor: pointer; }
#chat-form { padding: .75rem; border-top: 1px solid var(--border); }
#chat-input { width: 100%; padding: .5rem; border: 1px solid var(--border); border-radius: 6px; background: var(--bg-surface); color: var(--text); }
.footer { border-top: 1px solid var(--border); padding: 2rem 1.5rem; color: var(--text-muted); }
.footer-columns { display: flex; gap: 4rem; }
.footer-columns a { display: block; color: var(--text-muted); margin: .25rem 0; }
@media (max-width: 1100px) { .docs-layout { grid-template-columns: 240px minmax(0, 1fr); } .toc { display: none; } }
@media (max-width: 760px) { .docs-layout { grid-template-columns: 1fr; } .sidebar { display: none; } .nav-links { display: none; } }
`

// jsContent drives the interactive parts of the portal. In a static
// export (data-static="true") it only runs search, theme and scroll spy.
const jsContent = `(function() {
  var body = document.body;
  var isStatic = body.dataset.static === 'true';

  function api(method, url, data) {
    var opts = { method: method, headers: {} };
    if (data !== undefined) {
      opts.headers['Content-Type'] = 'application/json';
      opts.body = JSON.stringify(data);
    }
    return fetch(url, opts).then(function(r) {
      return r.json().catch(function() { return {}; }).then(function(j) {
        if (!r.ok) { var e = new Error(j.error || r.statusText); e.body = j; throw e; }
        return j;
      });
    });
  }

  function show(el, text) { if (!el) return; if (text !== undefined) el.textContent = text; el.hidden = false; }
  function hide(el) { if (el) el.hidden = true; }
  function formData(form) {
    var out = {};
    new FormData(form).forEach(function(v, k) { out[k] = v; });
    return out;
  }

  // ---- Theme, language, version ----
  var themeToggle = document.getElementById('theme-toggle');
  if (themeToggle) themeToggle.addEventListener('click', function() {
    var next = document.documentElement.dataset.theme === 'dark' ? 'light' : 'dark';
    document.documentElement.dataset.theme = next;
    themeToggle.innerHTML = next === 'dark' ? '&#9728;' : '&#9790;';
    if (isStatic) { try { localStorage.setItem('nexus_theme', next); } catch (e) {} return; }
    api('PUT', '/api/preferences', { theme: next });
  });
  if (isStatic) {
    try { var saved = localStorage.getItem('nexus_theme'); if (saved) document.documentElement.dataset.theme = saved; } catch (e) {}
  }
  ['lang-select', 'version-select'].forEach(function(id) {
    var el = document.getElementById(id);
    if (!el || isStatic) return;
    el.addEventListener('change', function() {
      var patch = id === 'lang-select' ? { language: el.value } : { version: el.value };
      api('PUT', '/api/preferences', patch).then(function() { location.reload(); });
    });
  });

  // ---- Search ----
  var searchInput = document.getElementById('search-input');
  var searchResults = document.getElementById('search-results');
  var staticIndex = null;
  var selected = -1;

  function staticSearch(q) {
    var load = staticIndex ? Promise.resolve(staticIndex) :
      fetch(body.dataset.searchIndex).then(function(r) { return r.json(); }).then(function(j) { staticIndex = j; return j; });
    return load.then(function(entries) {
      q = q.toLowerCase();
      return entries.filter(function(e) {
        return !q || e.title.toLowerCase().indexOf(q) !== -1 || e.category.toLowerCase().indexOf(q) !== -1;
      });
    });
  }

  function renderResults(entries) {
    searchResults.innerHTML = '';
    selected = -1;
    if (!entries.length) {
      var li = document.createElement('li');
      li.className = 'muted';
      li.textContent = 'No results found';
      searchResults.appendChild(li);
    }
    entries.forEach(function(e) {
      var li = document.createElement('li');
      var a = document.createElement('a');
      a.href = body.dataset.docsBase + e.id + body.dataset.ext;
      a.textContent = e.title;
      var small = document.createElement('small');
      small.textContent = e.category;
      a.appendChild(small);
      li.appendChild(a);
      searchResults.appendChild(li);
    });
    searchResults.hidden = false;
  }

  if (searchInput) {
    searchInput.addEventListener('input', function() {
      var q = searchInput.value.trim();
      var p = isStatic ? staticSearch(q) : api('GET', '/api/search?q=' + encodeURIComponent(q)).then(function(j) { return j.results; });
      p.then(renderResults);
    });
    searchInput.addEventListener('focus', function() { searchInput.dispatchEvent(new Event('input')); });
    searchInput.addEventListener('keydown', function(ev) {
      var links = searchResults.querySelectorAll('a');
      if (ev.key === 'ArrowDown' || ev.key === 'ArrowUp') {
        ev.preventDefault();
        if (!links.length) return;
        selected = (selected + (ev.key === 'ArrowDown' ? 1 : links.length - 1)) % links.length;
        links.forEach(function(l, i) { l.classList.toggle('selected', i === selected); });
      } else if (ev.key === 'Enter' && selected >= 0 && links[selected]) {
        location.href = links[selected].href;
      } else if (ev.key === 'Escape') {
        searchResults.hidden = true;
        searchInput.blur();
      }
    });
    document.addEventListener('click', function(ev) {
      if (!ev.target.closest('.search')) searchResults.hidden = true;
    });
    document.addEventListener('keydown', function(ev) {
      if ((ev.ctrlKey || ev.metaKey) && ev.key.toLowerCase() === 'k') {
        ev.preventDefault();
        searchInput.focus();
      }
    });
  }

  // ---- Sidebar ----
  document.querySelectorAll('[data-expand]').forEach(function(btn) {
    btn.addEventListener('click', function() {
      var li = btn.parentElement;
      var open = li.classList.toggle('expanded');
      btn.setAttribute('aria-expanded', open);
      if (!isStatic) api('POST', '/api/navigation/expand/' + encodeURIComponent(btn.dataset.expand));
    });
  });

  // ---- Scroll spy ----
  // The active band starts 80px below the top (the navbar) and ends 80%
  // of the way down. Among headings that just entered, the last wins.
  var toc = document.getElementById('toc');
  if (toc && 'IntersectionObserver' in window) {
    var tocLinks = {};
    toc.querySelectorAll('a[data-heading]').forEach(function(a) { tocLinks[a.dataset.heading] = a; });
    var setActive = function(id) {
      Object.keys(tocLinks).forEach(function(k) { tocLinks[k].classList.toggle('active', k === id); });
    };
    var observer = new IntersectionObserver(function(entries) {
      var last = null;
      entries.forEach(function(e) { if (e.isIntersecting) last = e.target.id; });
      if (last) setActive(last);
    }, { rootMargin: '-80px 0px -80% 0px' });
    Object.keys(tocLinks).forEach(function(id) {
      var h = document.getElementById(id);
      if (h) observer.observe(h);
    });
    toc.addEventListener('click', function(ev) {
      var a = ev.target.closest('a[data-heading]');
      if (!a) return;
      ev.preventDefault();
      var h = document.getElementById(a.dataset.heading);
      if (!h) return;
      window.scrollTo({ top: h.getBoundingClientRect().top + window.pageYOffset - 80, behavior: 'smooth' });
      history.pushState(null, '', '#' + a.dataset.heading);
      setActive(a.dataset.heading);
    });
  }

  if (isStatic) return;

  // ---- Favorites ----
  var fav = document.getElementById('favorite-toggle');
  if (fav) fav.addEventListener('click', function() {
    api('POST', '/api/favorites', { id: fav.dataset.id, title: fav.dataset.title, path: 'docs', description: fav.dataset.description })
      .then(function(j) {
        fav.classList.toggle('on', j.added);
        fav.setAttribute('aria-pressed', j.added);
      });
  });

  // ---- Summary ----
  var summarize = document.getElementById('summarize');
  var summary = document.getElementById('summary');
  if (summarize) summarize.addEventListener('click', function() {
    summarize.disabled = true;
    show(summary, '...');
    api('GET', '/api/topics/' + encodeURIComponent(summarize.dataset.id) + '/summary')
      .then(function(j) { show(summary, j.summary); })
      .catch(function(e) { show(summary, e.message); })
      .then(function() { summarize.disabled = false; });
  });

  // ---- Modals ----
  function openModal(id) { show(document.getElementById(id)); }
  document.querySelectorAll('[data-close-modal]').forEach(function(b) {
    b.addEventListener('click', function() { hide(b.closest('.modal')); });
  });
  document.querySelectorAll('.modal').forEach(function(m) {
    m.addEventListener('click', function(ev) { if (ev.target === m) hide(m); });
  });

  // ---- Auth ----
  var authForm = document.getElementById('auth-form');
  var authMode = 'login';
  document.querySelectorAll('[data-open-auth]').forEach(function(b) {
    b.addEventListener('click', function() {
      authMode = b.dataset.openAuth;
      var title = document.getElementById('auth-title');
      title.textContent = title.dataset[authMode];
      authForm.classList.toggle('signup', authMode === 'signup');
      document.getElementById('auth-submit').textContent = b.textContent;
      hide(document.getElementById('auth-error'));
      openModal('auth-modal');
    });
  });
  function authDone(p) {
    p.then(function(j) {
      if (j.redirect_url) { location.href = j.redirect_url; return; }
      location.reload();
    }).catch(function(e) { show(document.getElementById('auth-error'), e.message); });
  }
  if (authForm) {
    authForm.addEventListener('submit', function(ev) {
      ev.preventDefault();
      authDone(api('POST', '/api/session/' + authMode, formData(authForm)));
    });
    authForm.querySelectorAll('[data-social]').forEach(function(b) {
      b.addEventListener('click', function() { authDone(api('POST', '/api/session/social/' + b.dataset.social)); });
    });
  }
  var logout = document.getElementById('logout-button');
  if (logout) logout.addEventListener('click', function() {
    api('POST', '/api/session/logout').then(function() { location.href = '/'; });
  });

  // ---- Profile and API keys ----
  var profileForm = document.getElementById('profile-form');
  if (profileForm) profileForm.addEventListener('submit', function(ev) {
    ev.preventDefault();
    api('PATCH', '/api/session/profile', formData(profileForm))
      .then(function() { location.reload(); })
      .catch(function(e) { show(document.getElementById('profile-error'), e.message); });
  });
  var keyForm = document.getElementById('key-form');
  if (keyForm) keyForm.addEventListener('submit', function(ev) {
    ev.preventDefault();
    api('POST', '/api/keys', formData(keyForm)).then(function(j) {
      show(document.getElementById('key-secret'), j.secret);
    }).catch(function(e) { show(document.getElementById('key-secret'), e.message); });
  });
  document.querySelectorAll('[data-revoke]').forEach(function(b) {
    b.addEventListener('click', function() {
      api('DELETE', '/api/keys/' + encodeURIComponent(b.dataset.revoke)).then(function() { b.closest('tr').remove(); });
    });
  });

  // ---- Feedback and contact ----
  var openFeedback = document.getElementById('open-feedback');
  if (openFeedback) openFeedback.addEventListener('click', function() { openModal('feedback-modal'); });
  function wireForm(formId, url, errorId, thanksId) {
    var form = document.getElementById(formId);
    if (!form) return;
    form.addEventListener('submit', function(ev) {
      ev.preventDefault();
      hide(document.getElementById(errorId));
      api('POST', url, formData(form)).then(function() {
        form.reset();
        show(document.getElementById(thanksId));
      }).catch(function(e) { show(document.getElementById(errorId), e.message); });
    });
  }
  wireForm('feedback-form', '/api/feedback', 'feedback-error', 'feedback-thanks');
  wireForm('contact-form', '/api/contact', 'contact-error', 'contact-thanks');

  // ---- Chat ----
  var launcher = document.getElementById('chat-launcher');
  var panel = document.getElementById('chat-panel');
  if (!launcher || !panel) return;
  var log = document.getElementById('chat-log');
  var prompts = document.getElementById('chat-prompts');
  var input = document.getElementById('chat-input');
  var ws = null;
  var sessionID = sessionStorage.getItem('nexus_chat_session') || '';
  var pending = false;

  function addMessage(role, html, text) {
    var div = document.createElement('div');
    div.className = 'chat-message ' + role;
    if (html) div.innerHTML = html; else div.textContent = text;
    log.appendChild(div);
    log.scrollTop = log.scrollHeight;
  }

  function connect() {
    if (ws && ws.readyState <= 1) return ws;
    ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws/chat');
    ws.onmessage = function(ev) {
      var msg = JSON.parse(ev.data);
      pending = false;
      input.disabled = false;
      if (msg.session_id) {
        sessionID = msg.session_id;
        sessionStorage.setItem('nexus_chat_session', sessionID);
      }
      addMessage(msg.type === 'error' ? 'assistant error' : 'assistant', msg.html, msg.content);
    };
    return ws;
  }

  function send(type, content) {
    var sock = connect();
    var payload = JSON.stringify({ type: type, session_id: sessionID, content: content || '' });
    if (sock.readyState === 1) sock.send(payload);
    else sock.addEventListener('open', function() { sock.send(payload); }, { once: true });
  }

  function resetLog(welcomeHTML) {
    log.innerHTML = '';
    addMessage('assistant', welcomeHTML);
  }

  launcher.addEventListener('click', function() {
    panel.hidden = !panel.hidden;
    if (panel.hidden || log.childElementCount) return;
    api('GET', '/api/chat/prompts').then(function(j) {
      prompts.innerHTML = '';
      j.prompts.forEach(function(p) {
        var b = document.createElement('button');
        b.textContent = p;
        b.addEventListener('click', function() { input.value = p; document.getElementById('chat-form').requestSubmit(); });
        prompts.appendChild(b);
      });
      if (!sessionID) { resetLog(j.welcome_html); return; }
      api('GET', '/api/chat/sessions/' + encodeURIComponent(sessionID)).then(function(turns) {
        log.innerHTML = '';
        turns.forEach(function(t) { addMessage(t.role, t.html); });
      }).catch(function() {
        sessionID = '';
        resetLog(j.welcome_html);
      });
    });
  });
  document.getElementById('chat-close').addEventListener('click', function() { panel.hidden = true; });
  document.getElementById('chat-reset').addEventListener('click', function() {
    log.innerHTML = '';
    send('reset');
  });
  document.getElementById('chat-form').addEventListener('submit', function(ev) {
    ev.preventDefault();
    var text = input.value.trim();
    if (!text || pending) return;
    pending = true;
    input.value = '';
    input.disabled = true;
    prompts.innerHTML = '';
    addMessage('user', null, text);
    send('message', text);
  });
})();
`
