// Package navigation holds the page routing model and the sidebar's
// expand/collapse state.
package navigation

// Route is a top-level page.
type Route string

const (
	RouteHome         Route = "home"
	RouteDocs         Route = "docs"
	RouteAPI          Route = "api"
	RouteChangelog    Route = "changelog"
	RouteCommunity    Route = "community"
	RouteSecurity     Route = "security"
	RouteArchitecture Route = "architecture"
	RouteDataModel    Route = "datamodel"
	RouteIntegrations Route = "integrations"
	RouteBilling      Route = "billing"
	RouteFeatures     Route = "features"
	RouteEnterprise   Route = "enterprise"
	RouteHelp         Route = "help"
	RouteAbout        Route = "about"
	RouteCareers      Route = "careers"
	RouteLegal        Route = "legal"
	RouteContact      Route = "contact"
	RoutePrivacy      Route = "privacy"
	RouteTerms        Route = "terms"
	RouteProfile      Route = "profile"
)

// PageKind says how a route is rendered.
type PageKind string

const (
	KindHome        PageKind = "home"
	KindDocs        PageKind = "docs"
	KindPlaceholder PageKind = "placeholder"
	KindStatic      PageKind = "static"
	KindLegal       PageKind = "legal"
	KindProfile     PageKind = "profile"
)

// Page describes a route.
type Page struct {
	Route       Route    `json:"route"`
	Kind        PageKind `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	// LegalTab is the tab a legal page opens on.
	LegalTab string `json:"legal_tab,omitempty"`
}

var pages = map[Route]Page{
	RouteHome: {Kind: KindHome, Title: "EATGF"},
	RouteDocs: {Kind: KindDocs, Title: "Documentation"},

	RouteAPI:          {Kind: KindPlaceholder, Title: "API Reference", Description: "We are currently compiling the comprehensive REST and GraphQL API documentation."},
	RouteChangelog:    {Kind: KindPlaceholder, Title: "Product Changelog", Description: "The timeline of our latest features and security patches is being updated."},
	RouteCommunity:    {Kind: KindPlaceholder, Title: "Community Forum", Description: "The developer hub for discussions and support is launching soon."},
	RouteSecurity:     {Kind: KindPlaceholder, Title: "Security & Compliance", Description: "Detailed SOC2, HIPAA, and GDPR compliance reports are being prepared."},
	RouteArchitecture: {Kind: KindPlaceholder, Title: "System Architecture", Description: "Deep dive technical diagrams and whitepapers are coming soon."},
	RouteDataModel:    {Kind: KindPlaceholder, Title: "Data Models", Description: "Schema definitions and ERD diagrams for the core platform."},
	RouteIntegrations: {Kind: KindPlaceholder, Title: "Integrations", Description: "Documentation for connecting Slack, Jira, and GitHub is in progress."},
	RouteBilling:      {Kind: KindPlaceholder, Title: "Billing & Plans", Description: "Manage your enterprise subscription and usage quotas."},
	RouteFeatures:     {Kind: KindPlaceholder, Title: "Platform Features", Description: "A complete breakdown of our enterprise capabilities is on the way."},
	RouteEnterprise:   {Kind: KindPlaceholder, Title: "Enterprise Solutions", Description: "Learn about our dedicated support, SLA, and private cloud options."},
	RouteHelp:         {Kind: KindPlaceholder, Title: "Help Center", Description: "Browse tutorials, FAQs, and troubleshooting guides."},

	RouteAbout:   {Kind: KindStatic, Title: "About Us"},
	RouteCareers: {Kind: KindStatic, Title: "Careers"},
	RouteContact: {Kind: KindStatic, Title: "Contact"},

	RouteLegal:   {Kind: KindLegal, Title: "Legal", LegalTab: "terms"},
	RoutePrivacy: {Kind: KindLegal, Title: "Privacy Policy", LegalTab: "privacy"},
	RouteTerms:   {Kind: KindLegal, Title: "Terms of Service", LegalTab: "terms"},

	RouteProfile: {Kind: KindProfile, Title: "Profile"},
}

// ParseRoute returns the route named s, or RouteHome for anything unknown.
func ParseRoute(s string) Route {
	r := Route(s)
	if _, ok := pages[r]; ok {
		return r
	}
	return RouteHome
}

// PageFor returns the description of a route. Unknown routes describe home.
func PageFor(r Route) Page {
	p, ok := pages[r]
	if !ok {
		r = RouteHome
		p = pages[RouteHome]
	}
	p.Route = r
	return p
}

// Routes returns every known route.
func Routes() []Route {
	out := make([]Route, 0, len(pages))
	for r := range pages {
		out = append(out, r)
	}
	return out
}
