package headings

// TrackerOptions define the activation band. The band starts HeaderOffset
// pixels below the top of the viewport and ends BottomFraction of the
// viewport height above its bottom edge.
type TrackerOptions struct {
	HeaderOffset   float64
	BottomFraction float64
}

// DefaultTrackerOptions match the fixed 80px header and the -80% bottom margin.
var DefaultTrackerOptions = TrackerOptions{HeaderOffset: 80, BottomFraction: 0.8}

// Viewport is the visible window over the document, in pixels.
type Viewport struct {
	ScrollY float64
	Height  float64
}

// Jump is the scroll target for a heading link.
type Jump struct {
	ScrollY  float64 `json:"scroll_y"`
	Fragment string  `json:"fragment"`
}

// Tracker reports which heading is active. It is not safe for concurrent use.
type Tracker struct {
	opts   TrackerOptions
	order  []string
	inBand map[string]bool
	active string
}

// NewTracker starts tracking the given headings with no active heading.
func NewTracker(hs []Heading, opts TrackerOptions) *Tracker {
	t := &Tracker{opts: opts}
	t.Reset(hs)
	return t
}

// Reset discards all state and starts over with a new heading list. Call
// it whenever the displayed topic changes.
func (t *Tracker) Reset(hs []Heading) {
	t.order = make([]string, len(hs))
	for i, h := range hs {
		t.order[i] = h.ID
	}
	t.inBand = make(map[string]bool, len(hs))
	t.active = ""
}

// Active returns the current active heading id, or "".
func (t *Tracker) Active() string { return t.active }

// Band returns the document-space activation band for a viewport.
func (t *Tracker) Band(vp Viewport) (top, bottom float64) {
	top = vp.ScrollY + t.opts.HeaderOffset
	bottom = vp.ScrollY + vp.Height - vp.Height*t.opts.BottomFraction
	return top, bottom
}

// Observe updates the tracker for a viewport. positions maps heading ids
// to their document offsets; headings without a position are treated as
// out of view. Among headings that entered the band since the previous
// observation, the last one in document order becomes active. When none
// entered, the active heading is unchanged.
func (t *Tracker) Observe(vp Viewport, positions map[string]float64) string {
	top, bottom := t.Band(vp)
	for _, id := range t.order {
		y, ok := positions[id]
		now := ok && y >= top && y <= bottom
		if now && !t.inBand[id] {
			t.active = id
		}
		t.inBand[id] = now
	}
	return t.active
}

// JumpTo returns the scroll target for id: its position less the header
// offset, clamped at zero, and the URL fragment to push.
func (t *Tracker) JumpTo(id string, positions map[string]float64) (Jump, bool) {
	y, ok := positions[id]
	if !ok {
		return Jump{}, false
	}
	target := y - t.opts.HeaderOffset
	if target < 0 {
		target = 0
	}
	return Jump{ScrollY: target, Fragment: "#" + id}, true
}
