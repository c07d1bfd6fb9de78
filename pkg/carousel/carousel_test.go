package carousel

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-cardkit/pkg/box"
	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/schedule"
)

func newParseContext() *card.ParseContext {
	reg := card.NewDefaultRegistry()
	reg.MustRegister(TypeCarousel, func() card.Element { return NewCarousel() })
	reg.MustRegister(TypePage, func() card.Element { return NewPage() })
	return card.NewParseContext(reg, card.WithParseLogger(log.New(io.Discard)))
}

func newRenderContext(scheduler schedule.Scheduler) *card.RenderContext {
	seq := 0
	return card.NewRenderContext(
		card.WithRenderLogger(log.New(io.Discard)),
		card.WithScheduler(scheduler),
		card.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("carousel-%d", seq)
		}),
	)
}

func pagesNamed(names ...string) []any {
	pages := make([]any, 0, len(names))
	for _, name := range names {
		pages = append(pages, map[string]any{
			"type":  TypePage,
			"id":    name,
			"items": []any{map[string]any{"type": "TextBlock", "text": name}},
		})
	}
	return pages
}

func parseCarousel(t *testing.T, src map[string]any) (*Carousel, *card.ParseContext) {
	t.Helper()
	ctx := newParseContext()
	src["type"] = TypeCarousel
	element := ctx.ParseElement(src)
	c, ok := element.(*Carousel)
	if !ok {
		t.Fatalf("expected *Carousel, got %T", element)
	}
	return c, ctx
}

func visiblePages(t *testing.T, root *box.Box) []int {
	t.Helper()
	var visible []int
	for idx, wrapper := range root.FindAll(ClassPageWrapper) {
		if wrapper.Style("display") == "block" {
			visible = append(visible, idx)
		}
	}
	return visible
}

func activeIndicators(root *box.Box) []int {
	var active []int
	for idx, indicator := range root.FindAll(ClassIndicator) {
		if indicator.HasClass("active") {
			active = append(active, idx)
		}
	}
	return active
}

func TestCarouselParseCapturesPages(t *testing.T) {
	c, ctx := parseCarousel(t, map[string]any{
		"pages": append(pagesNamed("A", "B"), map[string]any{"type": "TextBlock", "text": "stray"}),
		"timer": 5000,
		"loop":  true,
	})

	if len(c.Pages) != 2 || c.ItemCount() != 2 {
		t.Fatalf("expected 2 pages in both views, got %d pages and %d items", len(c.Pages), c.ItemCount())
	}
	if c.Pages[0].Base().Parent() != c {
		t.Fatalf("expected page parent to be the carousel")
	}
	diags := ctx.Diagnostics()
	if len(diags) != 1 || diags[0].Path != "/pages/2" {
		t.Fatalf("expected a warning for the stray item, got %v", diags)
	}
	if c.Timer != 5000 || !c.Loop {
		t.Fatalf("unexpected scalars: timer=%d loop=%v", c.Timer, c.Loop)
	}
}

func TestCarouselLoopExample(t *testing.T) {
	c, _ := parseCarousel(t, map[string]any{
		"pages":       pagesNamed("A", "B", "C"),
		"loop":        true,
		"initialPage": 2,
	})
	root := c.Render(newRenderContext(schedule.NewManual()))
	nav := c.Navigator()

	if diff := cmp.Diff([]int{2}, visiblePages(t, root)); diff != "" {
		t.Fatalf("initial visible page mismatch (-want +got):\n%s", diff)
	}
	nav.Next()
	if nav.Current() != 0 {
		t.Fatalf("expected next to wrap to page A, got %d", nav.Current())
	}
	nav.Prev()
	nav.Prev()
	if nav.Current() != 1 {
		t.Fatalf("expected two prevs from A to land on B, got %d", nav.Current())
	}
	if diff := cmp.Diff([]int{1}, visiblePages(t, root)); diff != "" {
		t.Fatalf("visible page mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, activeIndicators(root)); diff != "" {
		t.Fatalf("active indicator mismatch (-want +got):\n%s", diff)
	}
	if c.CurrentPage() != 1 {
		t.Fatalf("expected carousel to track the current page, got %d", c.CurrentPage())
	}
}

func TestNavigatorBoundsWithoutLoop(t *testing.T) {
	nav := NewNavigator(3, 0)
	nav.Prev()
	if nav.Current() != 0 {
		t.Fatalf("prev at first page should be a no-op, got %d", nav.Current())
	}
	nav.GoTo(2)
	nav.Next()
	if nav.Current() != 2 {
		t.Fatalf("next at last page should be a no-op, got %d", nav.Current())
	}
	for _, target := range []int{-1, 3, 99} {
		nav.GoTo(target)
		if nav.Current() != 2 {
			t.Fatalf("GoTo(%d) should be ignored, got %d", target, nav.Current())
		}
	}
}

func TestGoToOutOfRangeLeavesVisiblePage(t *testing.T) {
	c, _ := parseCarousel(t, map[string]any{"pages": pagesNamed("A", "B")})
	root := c.Render(newRenderContext(schedule.NewManual()))

	c.Navigator().GoTo(5)
	if diff := cmp.Diff([]int{0}, visiblePages(t, root)); diff != "" {
		t.Fatalf("visible page changed (-want +got):\n%s", diff)
	}
}

func TestAutoAdvanceTicks(t *testing.T) {
	cases := []struct {
		name    string
		loop    bool
		initial int
		ticks   int
		want    int
	}{
		{name: "loop wraps", loop: true, initial: 1, ticks: 5, want: (1 + 5) % 3},
		{name: "no loop clamps", loop: false, initial: 0, ticks: 7, want: 2},
		{name: "loop from start", loop: true, initial: 0, ticks: 3, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock := schedule.NewManual()
			c, _ := parseCarousel(t, map[string]any{
				"pages":       pagesNamed("A", "B", "C"),
				"timer":       1000,
				"loop":        tc.loop,
				"initialPage": tc.initial,
			})
			c.Render(newRenderContext(clock))

			clock.Advance(time.Duration(tc.ticks) * time.Second)
			if got := c.Navigator().Current(); got != tc.want {
				t.Fatalf("after %d ticks expected page %d, got %d", tc.ticks, tc.want, got)
			}
			if clock.Pending() != 1 {
				t.Fatalf("expected exactly one outstanding task, got %d", clock.Pending())
			}
		})
	}
}

func TestManualNavigationResetsClock(t *testing.T) {
	clock := schedule.NewManual()
	c, _ := parseCarousel(t, map[string]any{
		"pages": pagesNamed("A", "B", "C"),
		"timer": 1000,
		"loop":  true,
	})
	c.Render(newRenderContext(clock))
	nav := c.Navigator()

	clock.Advance(600 * time.Millisecond)
	nav.GoTo(1)
	clock.Advance(600 * time.Millisecond)
	if nav.Current() != 1 {
		t.Fatalf("tick should have been rescheduled, got page %d", nav.Current())
	}
	clock.Advance(400 * time.Millisecond)
	if nav.Current() != 2 {
		t.Fatalf("expected a tick a full interval after navigation, got page %d", nav.Current())
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected a single outstanding task, got %d", clock.Pending())
	}
}

func TestNoTimerForSinglePageOrZeroInterval(t *testing.T) {
	clock := schedule.NewManual()
	single, _ := parseCarousel(t, map[string]any{"pages": pagesNamed("A"), "timer": 1000})
	root := single.Render(newRenderContext(clock))
	if single.Navigator().TimerActive() || clock.Pending() != 0 {
		t.Fatalf("single page carousel must not schedule a timer")
	}
	if root.Find(ClassNav) != nil {
		t.Fatalf("single page carousel must not render navigation")
	}

	idle, _ := parseCarousel(t, map[string]any{"pages": pagesNamed("A", "B")})
	idle.Render(newRenderContext(clock))
	if idle.Navigator().TimerActive() || clock.Pending() != 0 {
		t.Fatalf("carousel without timer must not schedule a task")
	}
}

func TestControlEnablement(t *testing.T) {
	c, _ := parseCarousel(t, map[string]any{"pages": pagesNamed("A", "B", "C")})
	root := c.Render(newRenderContext(schedule.NewManual()))
	prev := root.Find(ClassPrev)
	next := root.Find(ClassNext)

	if !prev.Disabled() || prev.Style("opacity") != "0.3" {
		t.Fatalf("prev should start disabled: %q", prev.StyleString())
	}
	if next.Disabled() || next.Style("opacity") != "1" {
		t.Fatalf("next should start enabled: %q", next.StyleString())
	}
	if prev.Click() {
		t.Fatalf("disabled prev button should ignore clicks")
	}

	next.Click()
	next.Click()
	if c.Navigator().Current() != 2 {
		t.Fatalf("expected clicks to advance to the last page, got %d", c.Navigator().Current())
	}
	if !next.Disabled() || prev.Disabled() {
		t.Fatalf("expected next disabled and prev enabled at the last page")
	}

	root.FindAll(ClassIndicator)[0].Click()
	if c.Navigator().Current() != 0 {
		t.Fatalf("expected indicator click to jump to page 0, got %d", c.Navigator().Current())
	}
}

func TestLoopKeepsControlsEnabled(t *testing.T) {
	c, _ := parseCarousel(t, map[string]any{"pages": pagesNamed("A", "B"), "loop": true})
	root := c.Render(newRenderContext(schedule.NewManual()))
	for _, class := range []string{ClassPrev, ClassNext} {
		if root.Find(class).Disabled() {
			t.Fatalf("%s should be enabled when looping", class)
		}
	}
}

func TestDisposeStopsTimer(t *testing.T) {
	clock := schedule.NewManual()
	c, _ := parseCarousel(t, map[string]any{
		"pages": pagesNamed("A", "B"),
		"timer": 1000,
		"loop":  true,
	})
	root := c.Render(newRenderContext(clock))
	if clock.Pending() != 1 {
		t.Fatalf("expected a scheduled task, got %d", clock.Pending())
	}

	root.Dispose()
	if clock.Pending() != 0 {
		t.Fatalf("dispose must cancel the timer, %d tasks left", clock.Pending())
	}
	if fired := clock.Advance(5 * time.Second); fired != 0 {
		t.Fatalf("expected no ticks after dispose, got %d", fired)
	}
	c.Navigator().StopAutoAdvance()
	c.Navigator().Next()
	if c.Navigator().Current() != 0 {
		t.Fatalf("closed navigator should ignore navigation")
	}
}

func TestRenderWithZeroValueContext(t *testing.T) {
	c, _ := parseCarousel(t, map[string]any{
		"pages": pagesNamed("A", "B"),
		"timer": 1000,
	})
	root := c.Render(&card.RenderContext{})
	defer root.Dispose()

	id, _ := root.Attr("data-carousel-id")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid carousel id, got %q: %v", id, err)
	}
	if got, _ := root.FindAll(ClassPageWrapper)[1].Attr("id"); got != id+"-page-2" {
		t.Fatalf("unexpected page id %q", got)
	}
	if c.Navigator().TimerActive() {
		t.Fatalf("no scheduler means no auto-advance")
	}
	root.Find(ClassNext).Dispatch(box.EventClick)
	if diff := cmp.Diff([]int{1}, visiblePages(t, root)); diff != "" {
		t.Fatalf("visible pages mismatch (-want +got):\n%s", diff)
	}
}

func TestRerenderStopsPreviousNavigator(t *testing.T) {
	clock := schedule.NewManual()
	c, _ := parseCarousel(t, map[string]any{
		"pages": pagesNamed("A", "B"),
		"timer": 1000,
	})
	c.Render(newRenderContext(clock))
	first := c.Navigator()
	c.Render(newRenderContext(clock))

	if first.TimerActive() {
		t.Fatalf("previous navigator should be stopped")
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected one task after re-render, got %d", clock.Pending())
	}
}

func TestOutOfRangeInitialPage(t *testing.T) {
	c, ctx := parseCarousel(t, map[string]any{
		"pages":       pagesNamed("A", "B"),
		"initialPage": 4,
	})
	c.Validate(ctx)
	diags := ctx.Diagnostics()
	if len(diags) != 1 || diags[0].Path != "/initialPage" {
		t.Fatalf("expected initialPage warning, got %v", diags)
	}

	root := c.Render(newRenderContext(schedule.NewManual()))
	if got := visiblePages(t, root); len(got) != 0 {
		t.Fatalf("expected no visible page, got %v", got)
	}
	c.Navigator().GoTo(1)
	if diff := cmp.Diff([]int{1}, visiblePages(t, root)); diff != "" {
		t.Fatalf("visible page mismatch (-want +got):\n%s", diff)
	}
}

func TestPageBackgroundAndSelectAction(t *testing.T) {
	c, _ := parseCarousel(t, map[string]any{
		"pages": []any{
			map[string]any{
				"type":            TypePage,
				"backgroundImage": "https://example.com/a.png",
				"selectAction":    map[string]any{"type": "Action.OpenUrl", "title": "Open", "url": "https://example.com"},
			},
			map[string]any{
				"type":            TypePage,
				"backgroundImage": map[string]any{"url": "https://example.com/b.png", "fillMode": "RepeatHorizontally", "horizontalAlignment": "Right"},
			},
			map[string]any{"type": TypePage, "backgroundImage": 42},
		},
	})

	var invoked []string
	ctx := newRenderContext(schedule.NewManual())
	ctx.OnAction = func(action card.Action) { invoked = append(invoked, action.TypeName()) }
	root := c.Render(ctx)
	pages := root.FindAll(ClassPage)
	if len(pages) != 3 {
		t.Fatalf("expected 3 rendered pages, got %d", len(pages))
	}

	want := "background-image: url(https://example.com/a.png); background-size: cover; background-position: center"
	if got := pages[0].StyleString(); got != want {
		t.Fatalf("unexpected string background:\n got %q\nwant %q", got, want)
	}
	want = "background-image: url(https://example.com/b.png); background-size: auto; background-repeat: repeat-x; background-position: right"
	if got := pages[1].StyleString(); got != want {
		t.Fatalf("unexpected structured background:\n got %q\nwant %q", got, want)
	}
	if pages[2].StyleString() != "" {
		t.Fatalf("non string, non object background should be ignored")
	}

	if !pages[0].HasClass("ac-selectable") || !pages[0].Click() {
		t.Fatalf("expected selectable page to handle clicks")
	}
	if diff := cmp.Diff([]string{"Action.OpenUrl"}, invoked); diff != "" {
		t.Fatalf("invoked actions mismatch (-want +got):\n%s", diff)
	}
	if pages[0].Find(card.ClassContainer) == nil {
		t.Fatalf("expected base container content inside the page")
	}
}

func TestCarouselHTML(t *testing.T) {
	c, _ := parseCarousel(t, map[string]any{"pages": pagesNamed("A", "B"), "heightInPixels": 200})
	root := c.Render(newRenderContext(schedule.NewManual()))

	if got := root.Style("height"); got != "200px" {
		t.Fatalf("unexpected height %q", got)
	}
	prev := root.Find(ClassPrev)
	if label, _ := prev.Attr("aria-label"); label != "Previous page" || prev.Text() != "‹" {
		t.Fatalf("unexpected prev button: %q %q", label, prev.Text())
	}
	indicator := root.FindAll(ClassIndicator)[1]
	if label, _ := indicator.Attr("aria-label"); label != "Go to page 2" {
		t.Fatalf("unexpected indicator label %q", label)
	}
	if controls, _ := indicator.Attr("aria-controls"); controls != "carousel-1-page-2" {
		t.Fatalf("unexpected aria-controls %q", controls)
	}
	if _, err := root.HTML(); err != nil {
		t.Fatalf("html: %v", err)
	}
}

func TestCarouselRoundTrip(t *testing.T) {
	doc := map[string]any{
		"type": TypeCarousel,
		"pages": []any{
			map[string]any{
				"type":            TypePage,
				"backgroundImage": map[string]any{"url": "https://example.com/a.png", "fillMode": "Repeat"},
				"selectAction":    map[string]any{"type": "Action.Submit", "title": "Pick"},
				"items":           []any{map[string]any{"type": "TextBlock", "text": "A"}},
			},
			map[string]any{
				"type":            TypePage,
				"backgroundImage": "https://example.com/b.png",
			},
		},
		"timer":          3000,
		"initialPage":    1,
		"loop":           true,
		"heightInPixels": 320,
	}

	c, ctx := parseCarousel(t, doc)
	if len(ctx.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics())
	}
	got := c.Serialize()
	if _, ok := got["items"]; ok {
		t.Fatalf("carousel must serialise pages, not items")
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCarouselSerializeOmitsDefaults(t *testing.T) {
	c, _ := parseCarousel(t, map[string]any{"pages": []any{}})
	if diff := cmp.Diff(map[string]any{"type": TypeCarousel}, c.Serialize()); diff != "" {
		t.Fatalf("serialize mismatch (-want +got):\n%s", diff)
	}
}
