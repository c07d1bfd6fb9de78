package validation

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/extensions"
)

//go:embed schemas/cards.json
var schemaFS embed.FS

// DocumentSchema names the component schema documents are checked against.
const DocumentSchema = "AdaptiveCard"

// Issue is a single validation finding with its location in the document.
type Issue struct {
	Severity card.Severity `json:"severity"`
	Path     string        `json:"path,omitempty"`
	Field    string        `json:"field,omitempty"`
	Message  string        `json:"message"`
	Source   string        `json:"source"`
}

// Issue sources.
const (
	SourceSchema  = "schema"
	SourceElement = "element"
)

// Result captures validation outcomes. Valid is false when any issue has
// error severity; warnings never invalidate a document.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
	// Card is the parsed document, available even when invalid.
	Card *card.Card `json:"-"`
}

// Diagnostics converts the issues back to card diagnostics.
func (r Result) Diagnostics() []card.Diagnostic {
	out := make([]card.Diagnostic, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, card.Diagnostic{Severity: issue.Severity, Path: issue.Path, Message: issue.Message})
	}
	return out
}

// Option configures the validator.
type Option func(*Validator)

// WithRegistry sets the element registry used for the parse and element
// validation pass. Defaults to the host types plus the extensions.
func WithRegistry(reg *card.Registry) Option {
	return func(v *Validator) {
		if reg != nil {
			v.registry = reg
		}
	}
}

// WithLogger sets the logger handed to the parse context.
func WithLogger(logger *log.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithSchemaDocument replaces the embedded OpenAPI document. It must define
// components.schemas.AdaptiveCard.
func WithSchemaDocument(raw []byte) Option {
	return func(v *Validator) {
		if len(raw) > 0 {
			v.schemaDoc = raw
		}
	}
}

// Validator checks documents structurally against an OpenAPI component
// schema, then parses them and runs element validation.
type Validator struct {
	registry  *card.Registry
	logger    *log.Logger
	schemaDoc []byte
	schema    *openapi3.Schema
}

// New loads and validates the component schemas.
func New(ctx context.Context, options ...Option) (*Validator, error) {
	v := &Validator{logger: log.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	if v.registry == nil {
		v.registry = extensions.NewRegistry(extensions.WithLogger(v.logger))
	}
	if v.schemaDoc == nil {
		raw, err := schemaFS.ReadFile("schemas/cards.json")
		if err != nil {
			return nil, fmt.Errorf("validation: read embedded schema: %w", err)
		}
		v.schemaDoc = raw
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(v.schemaDoc)
	if err != nil {
		return nil, fmt.Errorf("validation: load schema document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("validation: validate schema document: %w", err)
	}
	ref := spec.Components.Schemas[DocumentSchema]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("validation: schema %q not found", DocumentSchema)
	}
	v.schema = ref.Value
	return v, nil
}

// ValidateBytes decodes data (JSON or YAML) and validates it. Only
// undecodable input is an error.
func (v *Validator) ValidateBytes(ctx context.Context, data []byte) (Result, error) {
	doc, err := card.Decode(data)
	if err != nil {
		return Result{}, err
	}
	return v.Validate(ctx, doc)
}

// Validate runs the schema pass and the element pass over a decoded
// document. Schema issues come first, followed by parse and element
// diagnostics in document order.
func (v *Validator) Validate(ctx context.Context, doc map[string]any) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	result := Result{Valid: true}

	normalized, err := normalize(doc)
	if err != nil {
		return Result{}, fmt.Errorf("validation: normalize document: %w", err)
	}
	if err := v.schema.VisitJSON(normalized, openapi3.MultiErrors()); err != nil {
		result.Issues = append(result.Issues, schemaIssues(err)...)
	}

	pctx := card.NewParseContext(v.registry, card.WithParseLogger(v.logger))
	result.Card = card.ParseMap(doc, pctx)
	result.Card.Validate(pctx)
	for _, d := range pctx.Diagnostics() {
		result.Issues = append(result.Issues, Issue{
			Severity: d.Severity,
			Path:     d.Path,
			Field:    fieldPathFromPointer(d.Path),
			Message:  d.Message,
			Source:   SourceElement,
		})
	}

	for _, issue := range result.Issues {
		if issue.Severity == card.SeverityError {
			result.Valid = false
			break
		}
	}
	return result, nil
}

// normalize round-trips through JSON so YAML scalars and nested maps reach
// the schema visitor in their JSON shapes.
func normalize(doc map[string]any) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func schemaIssues(err error) []Issue {
	if err == nil {
		return nil
	}
	if multi, ok := err.(openapi3.MultiError); ok {
		var out []Issue
		for _, inner := range multi {
			out = append(out, schemaIssues(inner)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		path := pointerFromSegments(schemaErr.JSONPointer())
		return []Issue{{
			Severity: card.SeverityError,
			Path:     path,
			Field:    fieldPathFromPointer(path),
			Message:  strings.TrimSpace(schemaErr.Reason),
			Source:   SourceSchema,
		}}
	}
	return []Issue{{
		Severity: card.SeverityError,
		Message:  strings.TrimSpace(err.Error()),
		Source:   SourceSchema,
	}}
}

func pointerFromSegments(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		b.WriteString("/")
		b.WriteString(segment)
	}
	return b.String()
}

// fieldPathFromPointer turns "/body/0/timer" into "body.0.timer".
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	for idx, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[idx] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}
