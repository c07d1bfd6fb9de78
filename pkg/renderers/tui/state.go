package tui

import (
	"slices"

	"github.com/goliatone/go-cardkit/pkg/card"
)

// State records what happened during a browse session: the page shown
// after every transition (starting with the initial page) and the actions
// activated.
type State struct {
	visits    []int
	activated []card.Action
}

func newState() *State {
	return &State{}
}

// Visits returns the visited page indexes in order. -1 marks a carousel
// showing no page (initial page out of range).
func (s *State) Visits() []int {
	if s == nil {
		return nil
	}
	return slices.Clone(s.visits)
}

// Current returns the last visited page index, or -1.
func (s *State) Current() int {
	if s == nil || len(s.visits) == 0 {
		return -1
	}
	return s.visits[len(s.visits)-1]
}

// Activated returns the actions activated during the session.
func (s *State) Activated() []card.Action {
	if s == nil {
		return nil
	}
	return slices.Clone(s.activated)
}

func (s *State) visit(index int) bool {
	if len(s.visits) > 0 && s.visits[len(s.visits)-1] == index {
		return false
	}
	s.visits = append(s.visits, index)
	return true
}

func (s *State) activate(action card.Action) {
	s.activated = append(s.activated, action)
}
