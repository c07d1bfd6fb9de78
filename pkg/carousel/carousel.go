package carousel

import (
	"strconv"
	"sync"
	"time"

	"github.com/goliatone/go-cardkit/pkg/box"
	"github.com/goliatone/go-cardkit/pkg/card"
)

// TypeCarousel is the registered type name of the carousel.
const TypeCarousel = "Carousel"

// PagesKey is the JSON key holding carousel pages.
const PagesKey = "pages"

// Class names of the rendered carousel.
const (
	ClassContainer   = "ac-carousel-container"
	ClassPages       = "ac-carousel-pages"
	ClassPageWrapper = "ac-carousel-page-wrapper"
	ClassNav         = "ac-carousel-nav"
	ClassNavButton   = "ac-carousel-nav-button"
	ClassPrev        = "ac-carousel-prev"
	ClassNext        = "ac-carousel-next"
	ClassIndicators  = "ac-carousel-indicators"
	ClassIndicator   = "ac-carousel-indicator"
)

// Carousel shows one page at a time with prev/next buttons, page indicators
// and optional timed auto-advance.
type Carousel struct {
	*card.Container

	Pages          []*Page
	Timer          int
	InitialPage    int
	Loop           bool
	HeightInPixels int

	mu        sync.Mutex
	current   int
	navigator *Navigator
}

var _ card.Element = (*Carousel)(nil)

// NewCarousel returns an empty carousel.
func NewCarousel() *Carousel {
	c := &Carousel{Container: card.NewTypedContainer(TypeCarousel)}
	c.Container.Bind(c)
	c.Container.SetItemsKey(PagesKey)
	return c
}

// Parse reads pages through the base item parsing and captures them back as
// typed pages, then reads the carousel scalars. initialPage is stored as the
// current index without clamping.
func (c *Carousel) Parse(src map[string]any, ctx *card.ParseContext) {
	c.Container.Parse(src, ctx)
	c.capturePages(ctx)

	if timer, ok := card.IntValue(src["timer"]); ok {
		c.Timer = timer
	}
	if initial, ok := card.IntValue(src["initialPage"]); ok {
		c.InitialPage = initial
		c.setCurrent(initial)
	}
	if loop, ok := card.BoolValue(src["loop"]); ok {
		c.Loop = loop
	}
	if height, ok := card.IntValue(src["heightInPixels"]); ok {
		c.HeightInPixels = height
	}
}

func (c *Carousel) capturePages(ctx *card.ParseContext) {
	pages := make([]*Page, 0, c.ItemCount())
	for idx, item := range c.Items() {
		page, ok := item.(*Page)
		if !ok {
			leave := ctx.EnterIndex(PagesKey, idx)
			ctx.Warn("carousel pages must be %s, got %s", TypePage, item.TypeName())
			leave()
			continue
		}
		pages = append(pages, page)
	}
	c.SetPages(pages)
}

// SetPages replaces the pages and the underlying item list.
func (c *Carousel) SetPages(pages []*Page) {
	c.Pages = append([]*Page(nil), pages...)
	items := make([]card.Element, len(c.Pages))
	for idx, page := range c.Pages {
		items[idx] = page
	}
	c.Container.SetItems(items)
}

// CurrentPage returns the index of the visible page.
func (c *Carousel) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Carousel) setCurrent(index int) {
	c.mu.Lock()
	c.current = index
	c.mu.Unlock()
}

// Navigator returns the navigator of the most recent render, or nil.
func (c *Carousel) Navigator() *Navigator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigator
}

// Render builds the carousel box. Every page is rendered and all but the
// current one hidden. Rendering again stops the previous navigator, and
// disposing the returned box stops auto-advance.
func (c *Carousel) Render(ctx *card.RenderContext) *box.Box {
	if ctx == nil {
		ctx = card.NewRenderContext()
	}
	c.mu.Lock()
	previous := c.navigator
	c.navigator = nil
	current := c.current
	c.mu.Unlock()
	if previous != nil {
		previous.Close()
	}

	id := ctx.ID()
	container := box.New("div", ClassContainer)
	container.SetAttr("data-carousel-id", id)
	if c.HeightInPixels > 0 {
		container.SetStyle("height", strconv.Itoa(c.HeightInPixels)+"px")
	}
	if c.Timer > 0 {
		container.SetAttr("data-timer", strconv.Itoa(c.Timer))
	}
	if c.Loop {
		container.SetAttr("data-loop", "true")
	}
	container.SetAttr("data-initial-page", strconv.Itoa(current))

	pages := box.New("div", ClassPages)
	controls := Controls{Wrappers: make([]*box.Box, 0, len(c.Pages))}
	for idx, page := range c.Pages {
		wrapper := box.New("div", ClassPageWrapper)
		wrapper.SetAttr("id", pageID(id, idx))
		if rendered := page.Render(ctx); rendered != nil {
			wrapper.Append(rendered)
		}
		pages.Append(wrapper)
		controls.Wrappers = append(controls.Wrappers, wrapper)
	}
	container.Append(pages)

	if len(c.Pages) > 1 {
		nav := box.New("div", ClassNav)
		controls.Prev = navButton(ClassPrev, "‹", "Previous page")
		indicators := box.New("div", ClassIndicators)
		for idx := range c.Pages {
			indicator := box.New("button", ClassIndicator)
			indicator.SetAttr("type", "button")
			indicator.SetAttr("aria-label", "Go to page "+strconv.Itoa(idx+1))
			indicator.SetAttr("aria-controls", pageID(id, idx))
			indicators.Append(indicator)
			controls.Indicators = append(controls.Indicators, indicator)
		}
		controls.Next = navButton(ClassNext, "›", "Next page")
		nav.Append(controls.Prev, indicators, controls.Next)
		container.Append(nav)
	}

	navigator := NewNavigator(len(c.Pages), current,
		WithLoop(c.Loop),
		WithAutoAdvance(time.Duration(c.Timer)*time.Millisecond, ctx.Scheduler),
		WithControls(controls),
		WithPageChange(c.setCurrent),
		WithNavigatorLogger(ctx.Logger),
	)
	if controls.Prev != nil {
		controls.Prev.On(box.EventClick, func(*box.Box) { navigator.Prev() })
		controls.Next.On(box.EventClick, func(*box.Box) { navigator.Next() })
	}
	for idx, indicator := range controls.Indicators {
		indicator.On(box.EventClick, func(*box.Box) { navigator.GoTo(idx) })
	}
	container.OnDispose(navigator.Close)
	navigator.Start()

	c.mu.Lock()
	c.navigator = navigator
	c.mu.Unlock()
	return c.Decorate(container)
}

func navButton(class, label, aria string) *box.Box {
	button := box.New("button", ClassNavButton, class)
	button.SetAttr("type", "button")
	button.SetAttr("aria-label", aria)
	button.SetText(label)
	return button
}

func pageID(carouselID string, index int) string {
	return carouselID + "-page-" + strconv.Itoa(index+1)
}

// Validate validates every page and warns about settings that leave the
// carousel inert.
func (c *Carousel) Validate(ctx *card.ParseContext) {
	c.Container.Validate(ctx)
	if len(c.Pages) == 0 {
		ctx.Warn("Carousel has no pages")
	}
	if c.Timer < 0 {
		leave := ctx.Enter("timer")
		ctx.Warn("timer must not be negative, got %d", c.Timer)
		leave()
	}
	if len(c.Pages) > 0 && (c.InitialPage < 0 || c.InitialPage >= len(c.Pages)) {
		leave := ctx.Enter("initialPage")
		ctx.Warn("initialPage %d is outside 0..%d; no page will be visible", c.InitialPage, len(c.Pages)-1)
		leave()
	}
}

// Serialize emits pages under "pages" and only non-default scalars.
func (c *Carousel) Serialize() map[string]any {
	out := c.Container.Serialize()
	if c.Timer != 0 {
		out["timer"] = c.Timer
	}
	if c.InitialPage != 0 {
		out["initialPage"] = c.InitialPage
	}
	if c.Loop {
		out["loop"] = true
	}
	if c.HeightInPixels != 0 {
		out["heightInPixels"] = c.HeightInPixels
	}
	return out
}
