package headings

import "testing"

func sampleHeadings() []Heading {
	return []Heading{
		{ID: "overview", Text: "Overview", Level: 2},
		{ID: "install", Text: "Install", Level: 2},
		{ID: "next-steps", Text: "Next Steps", Level: 2},
	}
}

// With a 1000px viewport the band is [scrollY+80, scrollY+200].
func TestTrackerBand(t *testing.T) {
	tr := NewTracker(sampleHeadings(), DefaultTrackerOptions)
	top, bottom := tr.Band(Viewport{ScrollY: 100, Height: 1000})
	if top != 180 || bottom != 300 {
		t.Errorf("Band = [%v, %v], want [180, 300]", top, bottom)
	}
}

func TestTrackerActivatesEnteringHeading(t *testing.T) {
	tr := NewTracker(sampleHeadings(), DefaultTrackerOptions)
	pos := map[string]float64{"overview": 150, "install": 900, "next-steps": 1600}

	if got := tr.Observe(Viewport{ScrollY: 0, Height: 1000}, pos); got != "overview" {
		t.Errorf("active = %q, want overview", got)
	}

	// Nothing in band: keep the previous heading.
	if got := tr.Observe(Viewport{ScrollY: 300, Height: 1000}, pos); got != "overview" {
		t.Errorf("active = %q, want overview to stay", got)
	}

	if got := tr.Observe(Viewport{ScrollY: 750, Height: 1000}, pos); got != "install" {
		t.Errorf("active = %q, want install", got)
	}
}

func TestTrackerLastEnteredWins(t *testing.T) {
	tr := NewTracker(sampleHeadings(), DefaultTrackerOptions)
	pos := map[string]float64{"overview": 100, "install": 150, "next-steps": 2000}

	if got := tr.Observe(Viewport{ScrollY: 0, Height: 1000}, pos); got != "install" {
		t.Errorf("active = %q, want install", got)
	}
}

func TestTrackerStayingInBandDoesNotReactivate(t *testing.T) {
	tr := NewTracker(sampleHeadings(), DefaultTrackerOptions)
	vp := Viewport{ScrollY: 0, Height: 1000}
	pos := map[string]float64{"overview": 150, "install": 260, "next-steps": 2000}

	if got := tr.Observe(vp, pos); got != "overview" {
		t.Fatalf("active = %q, want overview", got)
	}

	pos["install"] = 190
	if got := tr.Observe(vp, pos); got != "install" {
		t.Fatalf("active = %q, want install", got)
	}

	// overview never left the band, so it does not take over again.
	if got := tr.Observe(vp, pos); got != "install" {
		t.Errorf("active = %q, want install", got)
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker(sampleHeadings(), DefaultTrackerOptions)
	tr.Observe(Viewport{ScrollY: 0, Height: 1000}, map[string]float64{"overview": 100})
	if tr.Active() != "overview" {
		t.Fatalf("expected overview active")
	}

	tr.Reset([]Heading{{ID: "limits", Text: "Limits", Level: 2}})
	if tr.Active() != "" {
		t.Errorf("Reset should clear the active heading, got %q", tr.Active())
	}
	// overview is no longer tracked.
	if got := tr.Observe(Viewport{ScrollY: 0, Height: 1000}, map[string]float64{"overview": 100}); got != "" {
		t.Errorf("untracked heading activated: %q", got)
	}
}

func TestTrackerJumpTo(t *testing.T) {
	tr := NewTracker(sampleHeadings(), DefaultTrackerOptions)
	pos := map[string]float64{"install": 900, "overview": 30}

	j, ok := tr.JumpTo("install", pos)
	if !ok {
		t.Fatal("expected jump target")
	}
	if j.ScrollY != 820 || j.Fragment != "#install" {
		t.Errorf("JumpTo = %+v", j)
	}

	j, _ = tr.JumpTo("overview", pos)
	if j.ScrollY != 0 {
		t.Errorf("jump should clamp at 0, got %v", j.ScrollY)
	}

	if _, ok := tr.JumpTo("missing", pos); ok {
		t.Error("missing heading should not produce a jump")
	}
}
