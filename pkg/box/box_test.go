package box

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoxStyleKeepsInsertionOrder(t *testing.T) {
	b := New("div")
	b.SetStyle("display", "flex").SetStyle("gap", "12px").SetStyle("display", "grid")

	if got := b.StyleString(); got != "display: grid; gap: 12px" {
		t.Fatalf("unexpected style string: %q", got)
	}

	b.SetStyle("display", "")
	if got := b.Style("display"); got != "" {
		t.Fatalf("expected display removed, got %q", got)
	}
}

func TestBoxClassesDeduplicate(t *testing.T) {
	b := New("", "a", "b a")
	b.AddClass("c").RemoveClass("b")

	if diff := cmp.Diff([]string{"a", "c"}, b.Classes()); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}
	if b.Tag() != "div" {
		t.Fatalf("expected default tag div, got %q", b.Tag())
	}
}

func TestBoxFindDepthFirst(t *testing.T) {
	root := New("div", "root")
	first := New("div", "inner")
	nested := New("span", "target")
	second := New("div", "target")
	first.Append(nested)
	root.Append(first, second)

	if got := root.Find("target"); got != nested {
		t.Fatalf("expected nested target first")
	}
	if got := len(root.FindAll("target")); got != 2 {
		t.Fatalf("expected 2 targets, got %d", got)
	}
	if nested.Parent() != first {
		t.Fatalf("parent link not set")
	}
}

func TestBoxAppendReparents(t *testing.T) {
	a := New("div")
	b := New("div")
	child := New("span")
	a.Append(child)
	b.Append(child)

	if a.Len() != 0 || b.Len() != 1 || child.Parent() != b {
		t.Fatalf("child not moved: a=%d b=%d", a.Len(), b.Len())
	}
}

func TestBoxDispatchSkipsDisabledClick(t *testing.T) {
	b := New("button")
	calls := 0
	b.On(EventClick, func(*Box) { calls++ })

	if !b.Click() || calls != 1 {
		t.Fatalf("expected handler to run once, got %d", calls)
	}

	b.SetDisabled(true)
	if b.Click() || calls != 1 {
		t.Fatalf("disabled box should ignore clicks, calls=%d", calls)
	}

	b.SetDisabled(false)
	if !b.Click() || calls != 2 {
		t.Fatalf("re-enabled box should handle clicks, calls=%d", calls)
	}
}

func TestBoxDisposeRunsHooksOnce(t *testing.T) {
	root := New("div")
	child := New("div")
	root.Append(child)

	var order []string
	root.OnDispose(func() { order = append(order, "root") })
	child.OnDispose(func() { order = append(order, "child") })

	root.Dispose()
	root.Dispose()

	if diff := cmp.Diff([]string{"child", "root"}, order); diff != "" {
		t.Fatalf("dispose order mismatch (-want +got):\n%s", diff)
	}
	if child.Click() {
		t.Fatalf("disposed box should ignore events")
	}
}

func TestBoxHTML(t *testing.T) {
	root := New("div", "card")
	root.SetStyle("display", "flex")
	button := New("button", "nav")
	button.SetAttr("aria-label", "Next page").SetText("›")
	button.SetDisabled(true)
	root.Append(button, New("p").SetText("a < b"))

	got, err := root.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	want := `<div class="card" style="display: flex"><button class="nav" aria-label="Next page" disabled="">›</button><p>a &lt; b</p></div>`
	if got != want {
		t.Fatalf("html mismatch:\nwant %s\ngot  %s", want, got)
	}
}
