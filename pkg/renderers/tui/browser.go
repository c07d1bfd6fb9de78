package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-cardkit/pkg/box"
	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/carousel"
	"github.com/goliatone/go-cardkit/pkg/schedule"
)

// Browser walks the carousels of a rendered card in the terminal. Every menu
// entry clicks the same boxes a pointer would, so navigation runs through
// the carousel navigator exactly as it does for any other host.
type Browser struct {
	driver      PromptDriver
	theme       Theme
	logger      *log.Logger
	clock       *schedule.Manual
	confirmQuit bool
}

// New constructs a browser. Without WithPromptDriver it talks to the real
// terminal through survey.
func New(options ...Option) *Browser {
	b := &Browser{logger: log.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.driver == nil {
		b.driver = NewSurveyDriver(nil)
	}
	if b.clock == nil {
		b.clock = schedule.NewManual()
	}
	return b
}

// Run renders doc and runs the interactive session until the user quits.
// The rendered tree is disposed before Run returns.
func (b *Browser) Run(ctx context.Context, doc *card.Card) (*State, error) {
	if doc == nil {
		return nil, fmt.Errorf("tui: card is nil")
	}
	state := newState()
	next := 0
	rctx := card.NewRenderContext(
		card.WithRenderLogger(b.logger),
		card.WithScheduler(b.clock),
		card.WithIDGenerator(func() string {
			next++
			return "browse-" + strconv.Itoa(next)
		}),
		card.WithActionHandler(state.activate),
	)
	root := doc.Render(rctx)
	defer root.Dispose()

	carousels := root.FindAll(carousel.ClassContainer)
	if len(carousels) == 0 {
		for _, line := range textLines(root) {
			if err := b.info(ctx, line); err != nil {
				return state, err
			}
		}
		return state, ErrNoCarousel
	}

	target := carousels[0]
	if len(carousels) > 1 {
		options := make([]string, 0, len(carousels))
		for idx, c := range carousels {
			options = append(options, fmt.Sprintf("Carousel %d (%d pages)", idx+1, len(newView(c).wrappers)))
		}
		idx, err := b.driver.Select(ctx, SelectConfig{Message: b.prompt("Choose a carousel"), Options: options})
		if err != nil {
			return state, err
		}
		if idx < 0 || idx >= len(carousels) {
			return state, fmt.Errorf("tui: invalid carousel selection %d", idx)
		}
		target = carousels[idx]
	}

	return state, b.browse(ctx, root, newView(target), state)
}

type menuEntry struct {
	label string
	run   func(ctx context.Context) (quit bool, err error)
}

func (b *Browser) browse(ctx context.Context, root *box.Box, view *view, state *State) error {
	state.visit(view.current())
	for {
		if err := b.showPage(ctx, view); err != nil {
			return err
		}

		entries := b.menu(root, view)
		labels := make([]string, 0, len(entries))
		for _, entry := range entries {
			labels = append(labels, entry.label)
		}
		idx, err := b.driver.Select(ctx, SelectConfig{
			Message: b.prompt("Navigate"),
			Options: labels,
			Help:    "auto-advance only runs when you pick the wait entry",
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(entries) {
			if err := b.info(ctx, b.theme.ErrorPrefix+"unknown selection"); err != nil {
				return err
			}
			continue
		}
		quit, err := entries[idx].run(ctx)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if state.visit(view.current()) {
			b.logger.Debug("carousel page changed", "page", view.current())
		}
	}
}

func (b *Browser) menu(root *box.Box, view *view) []menuEntry {
	var entries []menuEntry
	click := func(target *box.Box) func(context.Context) (bool, error) {
		return func(context.Context) (bool, error) {
			target.Click()
			return false, nil
		}
	}

	if view.next != nil && !view.next.Disabled() {
		entries = append(entries, menuEntry{label: "Next page", run: click(view.next)})
	}
	if view.prev != nil && !view.prev.Disabled() {
		entries = append(entries, menuEntry{label: "Previous page", run: click(view.prev)})
	}
	if len(view.indicators) > 1 {
		entries = append(entries, menuEntry{label: "Go to page...", run: func(ctx context.Context) (bool, error) {
			current := view.current()
			options := make([]string, 0, len(view.indicators))
			hints := make([]string, len(view.indicators))
			for idx := range view.indicators {
				options = append(options, pageLabel(view, idx))
				if idx == current {
					hints[idx] = "current"
				}
			}
			idx, err := b.driver.Select(ctx, SelectConfig{
				Message:  b.prompt("Go to page"),
				Options:  options,
				Hints:    hints,
				Current:  current,
				PageSize: len(options),
			})
			if err != nil {
				return false, err
			}
			if idx >= 0 && idx < len(view.indicators) {
				view.indicators[idx].Click()
			}
			return false, nil
		}})
	}
	if view.interval > 0 && b.clock.Pending() > 0 {
		entries = append(entries, menuEntry{
			label: fmt.Sprintf("Wait %s (auto-advance)", view.interval),
			run: func(context.Context) (bool, error) {
				b.clock.Advance(view.interval)
				return false, nil
			},
		})
	}
	if page := view.page(); page != nil && page.HasClass("ac-selectable") {
		label, _ := page.Attr("aria-label")
		entries = append(entries, menuEntry{label: strings.TrimSpace("Activate page " + label), run: click(page)})
	}
	for _, button := range root.FindAll("ac-action") {
		entries = append(entries, menuEntry{label: "Action: " + button.Text(), run: click(button)})
	}
	entries = append(entries, menuEntry{label: "Quit", run: func(ctx context.Context) (bool, error) {
		if !b.confirmQuit {
			return true, nil
		}
		return b.driver.Confirm(ctx, ConfirmConfig{Message: b.prompt("Leave the carousel?"), Default: true})
	}})
	return entries
}

func (b *Browser) showPage(ctx context.Context, view *view) error {
	current := view.current()
	if current < 0 {
		return b.info(ctx, b.theme.InfoPrefix+fmt.Sprintf("No page shown (%d pages)", len(view.wrappers)))
	}
	if err := b.info(ctx, b.theme.InfoPrefix+fmt.Sprintf("Page %d/%d", current+1, len(view.wrappers))); err != nil {
		return err
	}
	for _, line := range textLines(view.wrappers[current]) {
		if err := b.info(ctx, "  "+line); err != nil {
			return err
		}
	}
	return nil
}

// pageLabelWidth bounds the page text shown in the go-to menu.
const pageLabelWidth = 40

// pageLabel names page idx by its number and first line of text.
func pageLabel(view *view, idx int) string {
	label := "Page " + strconv.Itoa(idx+1)
	if idx >= len(view.wrappers) {
		return label
	}
	// Hidden wrappers are skipped by textLines, so read the page inside.
	var lines []string
	for _, page := range view.wrappers[idx].Children() {
		lines = append(lines, textLines(page)...)
	}
	if len(lines) == 0 {
		return label
	}
	text := []rune(lines[0])
	if len(text) > pageLabelWidth {
		text = append(text[:pageLabelWidth-1], '…')
	}
	return label + ": " + string(text)
}

func (b *Browser) info(ctx context.Context, msg string) error {
	return b.driver.Info(ctx, msg)
}

func (b *Browser) prompt(msg string) string {
	return b.theme.PromptPrefix + msg
}

// view indexes the boxes of one rendered carousel.
type view struct {
	wrappers   []*box.Box
	indicators []*box.Box
	prev       *box.Box
	next       *box.Box
	interval   time.Duration
}

func newView(container *box.Box) *view {
	v := &view{}
	if pages := directChild(container, carousel.ClassPages); pages != nil {
		v.wrappers = pages.Children()
	}
	if nav := directChild(container, carousel.ClassNav); nav != nil {
		v.prev = nav.Find(carousel.ClassPrev)
		v.next = nav.Find(carousel.ClassNext)
		if indicators := nav.Find(carousel.ClassIndicators); indicators != nil {
			v.indicators = indicators.Children()
		}
	}
	if raw, ok := container.Attr("data-timer"); ok {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			v.interval = time.Duration(ms) * time.Millisecond
		}
	}
	return v
}

func (v *view) current() int {
	for idx, wrapper := range v.wrappers {
		if wrapper.Style("display") == "block" {
			return idx
		}
	}
	return -1
}

func (v *view) page() *box.Box {
	current := v.current()
	if current < 0 {
		return nil
	}
	return directChild(v.wrappers[current], carousel.ClassPage)
}

func directChild(parent *box.Box, class string) *box.Box {
	for _, child := range parent.Children() {
		if child.HasClass(class) {
			return child
		}
	}
	return nil
}

// textLines flattens the visible text of a subtree, depth first. Images are
// shown by alt text.
func textLines(root *box.Box) []string {
	var lines []string
	var walk func(b *box.Box)
	walk = func(b *box.Box) {
		if b.Style("display") == "none" {
			return
		}
		if b.Tag() == "img" {
			alt, _ := b.Attr("alt")
			if alt == "" {
				alt, _ = b.Attr("src")
			}
			lines = append(lines, "[image: "+alt+"]")
		}
		if b.Tag() != "button" {
			if text := strings.TrimSpace(b.Text()); text != "" {
				lines = append(lines, text)
			}
		}
		for _, child := range b.Children() {
			walk(child)
		}
	}
	walk(root)
	return lines
}
