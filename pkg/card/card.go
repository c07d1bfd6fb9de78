package card

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardkit/pkg/box"
)

// TypeAdaptiveCard is the root document type.
const TypeAdaptiveCard = "AdaptiveCard"

// rootKeys are forwarded from the card root to its body container.
var rootKeys = []string{"layouts", "verticalContentAlignment", "minHeight", "style"}

// Card is a parsed root document: a body container plus card-level actions.
type Card struct {
	Version      string
	Schema       string
	FallbackText string
	Body         Element
	Actions      []Action
}

type itemsKeySetter interface {
	SetItemsKey(key string)
}

// Decode reads a JSON document, falling back to YAML. The root must be an
// object.
func Decode(data []byte) (map[string]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("card: document is empty")
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	var yamlDoc map[string]any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return nil, fmt.Errorf("card: decode document: invalid JSON or YAML: %w", err)
	}
	if yamlDoc == nil {
		return nil, fmt.Errorf("card: decode document: root is not an object")
	}
	return yamlDoc, nil
}

// Parse decodes and parses a document. Only undecodable input is an error;
// everything else degrades to diagnostics on ctx.
func Parse(data []byte, ctx *ParseContext) (*Card, error) {
	src, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return ParseMap(src, ctx), nil
}

// ParseMap parses an already decoded document.
func ParseMap(src map[string]any, ctx *ParseContext) *Card {
	if ctx == nil {
		ctx = NewParseContext(nil)
	}
	c := &Card{}
	if typeName, _ := StringValue(src["type"]); typeName != TypeAdaptiveCard {
		ctx.Warn("root type is %q, expected %q", typeName, TypeAdaptiveCard)
	}
	if version, ok := StringValue(src["version"]); ok {
		c.Version = version
	}
	if schema, ok := StringValue(src["$schema"]); ok {
		c.Schema = schema
	}
	if fallback, ok := src["fallbackText"].(string); ok {
		c.FallbackText = fallback
	}

	body, ok := ctx.Elements.Create(TypeContainer)
	if !ok {
		body = NewContainer()
	}
	if setter, ok := body.(itemsKeySetter); ok {
		setter.SetItemsKey("body")
	}
	bodySrc := map[string]any{"type": TypeContainer, "body": src["body"]}
	for _, key := range rootKeys {
		if value, ok := src[key]; ok {
			bodySrc[key] = value
		}
	}
	body.Parse(bodySrc, ctx)
	c.Body = body

	if raw, ok := SliceValue(src["actions"]); ok {
		for idx, entry := range raw {
			leave := ctx.EnterIndex("actions", idx)
			if action := ctx.CreateAction(entry); action != nil {
				c.Actions = append(c.Actions, action)
			}
			leave()
		}
	}
	return c
}

// Validate runs the validation pass over the body.
func (c *Card) Validate(ctx *ParseContext) {
	if c == nil || c.Body == nil {
		return
	}
	c.Body.Validate(ctx)
}

// Render produces the card box tree. Disposing the returned box releases
// every live resource (timers) held by rendered elements.
func (c *Card) Render(ctx *RenderContext) *box.Box {
	if ctx == nil {
		ctx = NewRenderContext()
	}
	root := box.New("div", "ac-adaptive-card")
	if c.Version != "" {
		root.SetAttr("data-version", c.Version)
	}
	if c.Body != nil {
		root.Append(c.Body.Render(ctx))
	}
	if len(c.Actions) > 0 {
		actions := box.New("div", "ac-actions")
		for _, action := range c.Actions {
			button := box.New("button", "ac-action")
			button.SetAttr("type", "button")
			button.SetAttr("data-action-type", action.TypeName())
			button.SetText(PlainText(action.Title()))
			button.On(box.EventClick, func(*box.Box) { ctx.Invoke(action) })
			actions.Append(button)
		}
		root.Append(actions)
	}
	return root
}

// Serialize is the structural inverse of ParseMap.
func (c *Card) Serialize() map[string]any {
	out := map[string]any{"type": TypeAdaptiveCard}
	if c.Version != "" {
		out["version"] = c.Version
	}
	if c.Schema != "" {
		out["$schema"] = c.Schema
	}
	if c.FallbackText != "" {
		out["fallbackText"] = c.FallbackText
	}
	if c.Body != nil {
		body := c.Body.Serialize()
		if items, ok := body["body"]; ok {
			out["body"] = items
		}
		for _, key := range rootKeys {
			if value, ok := body[key]; ok {
				out[key] = value
			}
		}
	}
	if len(c.Actions) > 0 {
		actions := make([]any, 0, len(c.Actions))
		for _, action := range c.Actions {
			actions = append(actions, action.Serialize())
		}
		out["actions"] = actions
	}
	return out
}

// MarshalJSON serialises the card.
func (c *Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Serialize())
}
