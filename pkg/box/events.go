package box

// On subscribes handler to event on this box.
func (b *Box) On(event string, handler Handler) *Box {
	if handler == nil || event == "" {
		return b
	}
	if b.handlers == nil {
		b.handlers = make(map[string][]Handler)
	}
	b.handlers[event] = append(b.handlers[event], handler)
	return b
}

// Dispatch runs the handlers subscribed to event and reports whether any ran.
// Disposed boxes ignore events and disabled boxes ignore clicks.
func (b *Box) Dispatch(event string) bool {
	if b == nil || b.disposed {
		return false
	}
	if event == EventClick && b.Disabled() {
		return false
	}
	handlers := append([]Handler(nil), b.handlers[event]...)
	for _, handler := range handlers {
		handler(b)
	}
	return len(handlers) > 0
}

// Click is shorthand for Dispatch(EventClick).
func (b *Box) Click() bool {
	return b.Dispatch(EventClick)
}

// OnDispose registers a release hook that runs when the box (or any
// ancestor) is disposed.
func (b *Box) OnDispose(fn func()) *Box {
	if fn == nil {
		return b
	}
	if b.disposed {
		fn()
		return b
	}
	b.disposers = append(b.disposers, fn)
	return b
}

// Dispose discards the subtree: children first, then this box's hooks. Safe
// to call more than once.
func (b *Box) Dispose() {
	if b == nil || b.disposed {
		return
	}
	for _, child := range b.children {
		child.Dispose()
	}
	b.disposed = true
	hooks := b.disposers
	b.disposers = nil
	b.handlers = nil
	for _, fn := range hooks {
		fn()
	}
}

// Disposed reports whether Dispose has run.
func (b *Box) Disposed() bool {
	return b != nil && b.disposed
}
