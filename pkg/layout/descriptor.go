package layout

import (
	"github.com/charmbracelet/log"

	"github.com/goliatone/go-cardkit/pkg/box"
	"github.com/goliatone/go-cardkit/pkg/card"
)

// Layout type tags.
const (
	TypeFlow     = "Layout.Flow"
	TypeAreaGrid = "Layout.AreaGrid"
	TypeStack    = "Layout.Stack"
)

// Owner is the container whose rendered children a descriptor arranges.
// Item i corresponds to child box i of the arranged box.
type Owner interface {
	ItemCount() int
	ItemAt(index int) card.Element
}

// Descriptor is one parsed arrangement strategy. The type tag is fixed by the
// constructor.
type Descriptor interface {
	Type() string
	TargetWidth() string
	Parse(raw map[string]any)
	Apply(target *box.Box, owner Owner)
	Serialize() map[string]any
}

// Reporter receives parse warnings. *card.ParseContext satisfies it.
type Reporter interface {
	Warn(format string, args ...any)
}

type logReporter struct {
	logger *log.Logger
}

func (r logReporter) Warn(format string, args ...any) {
	r.logger.Warnf(format, args...)
}

// LogReporter adapts a charm logger into a Reporter.
func LogReporter(logger *log.Logger) Reporter {
	if logger == nil {
		logger = log.Default()
	}
	return logReporter{logger: logger}
}

var constructors = map[string]func() Descriptor{
	TypeFlow:     func() Descriptor { return NewFlow() },
	TypeAreaGrid: func() Descriptor { return NewAreaGrid() },
	TypeStack:    func() Descriptor { return NewStack() },
}

// New builds and parses the descriptor named by raw["type"]. Missing or
// unknown types report false and a warning.
func New(raw map[string]any, reporter Reporter) (Descriptor, bool) {
	if reporter == nil {
		reporter = LogReporter(nil)
	}
	typeName, _ := card.StringValue(raw["type"])
	if typeName == "" {
		reporter.Warn("layout is missing a type")
		return nil, false
	}
	construct, ok := constructors[typeName]
	if !ok {
		reporter.Warn("unknown layout type %q", typeName)
		return nil, false
	}
	descriptor := construct()
	descriptor.Parse(raw)
	return descriptor, true
}

// targetWidth is embedded by every variant.
type targetWidth struct {
	target string
}

func (t *targetWidth) TargetWidth() string {
	return t.target
}

func (t *targetWidth) parseTarget(raw map[string]any) {
	if value, ok := card.StringValue(raw["targetWidth"]); ok {
		t.target = value
	}
}

func (t *targetWidth) serializeTarget(out map[string]any) {
	if t.target != "" {
		out["targetWidth"] = t.target
	}
}

func stringField(raw map[string]any, key string, dst *string) {
	if value, ok := card.StringValue(raw[key]); ok {
		*dst = value
	}
}

// sizes remembers the source value of each parsed size field, so a bare
// number that resolves to "Npx" serialises back as the number.
type sizes map[string]any

func (s *sizes) parse(raw map[string]any, key string, dst *string) {
	value, ok := card.SizeValue(raw[key])
	if !ok {
		return
	}
	*dst = value
	if *s == nil {
		*s = sizes{}
	}
	(*s)[key] = raw[key]
}

func (s sizes) put(out map[string]any, key, value string) {
	if value == "" {
		return
	}
	if src, ok := s[key]; ok {
		if parsed, _ := card.SizeValue(src); parsed == value {
			out[key] = src
			return
		}
	}
	out[key] = value
}

func putIfNot(out map[string]any, key, value, def string) {
	if value != def {
		out[key] = value
	}
}
