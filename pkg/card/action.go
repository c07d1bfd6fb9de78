package card

// Action type names understood by the host.
const (
	TypeOpenURL          = "Action.OpenUrl"
	TypeSubmit           = "Action.Submit"
	TypeExecute          = "Action.Execute"
	TypeToggleVisibility = "Action.ToggleVisibility"
)

// Action is the contract shared by every action type.
type Action interface {
	TypeName() string
	Title() string
	Parse(src map[string]any, ctx *ParseContext)
	Serialize() map[string]any
}

// BaseAction holds the fields common to all actions.
type BaseAction struct {
	typeName string

	ID      string
	Label   string
	IconURL string
	Style   string
}

func (a *BaseAction) TypeName() string { return a.typeName }
func (a *BaseAction) Title() string    { return a.Label }

func (a *BaseAction) parseBase(src map[string]any) {
	if id, ok := StringValue(src["id"]); ok {
		a.ID = id
	}
	if title, ok := src["title"].(string); ok {
		a.Label = title
	}
	if icon, ok := StringValue(src["iconUrl"]); ok {
		a.IconURL = icon
	}
	if style, ok := StringValue(src["style"]); ok {
		a.Style = style
	}
}

func (a *BaseAction) serializeBase() map[string]any {
	out := map[string]any{"type": a.typeName}
	if a.ID != "" {
		out["id"] = a.ID
	}
	if a.Label != "" {
		out["title"] = a.Label
	}
	if a.IconURL != "" {
		out["iconUrl"] = a.IconURL
	}
	if a.Style != "" {
		out["style"] = a.Style
	}
	return out
}

// OpenURLAction navigates to a URL.
type OpenURLAction struct {
	BaseAction
	URL string
}

func (a *OpenURLAction) Parse(src map[string]any, ctx *ParseContext) {
	a.parseBase(src)
	if url, ok := StringValue(src["url"]); ok {
		a.URL = url
	} else if ctx != nil {
		ctx.Warn("Action.OpenUrl requires url")
	}
}

func (a *OpenURLAction) Serialize() map[string]any {
	out := a.serializeBase()
	if a.URL != "" {
		out["url"] = a.URL
	}
	return out
}

// SubmitAction gathers inputs and submits them with optional extra data.
type SubmitAction struct {
	BaseAction
	Data any
}

func (a *SubmitAction) Parse(src map[string]any, _ *ParseContext) {
	a.parseBase(src)
	if data, ok := src["data"]; ok {
		a.Data = data
	}
}

func (a *SubmitAction) Serialize() map[string]any {
	out := a.serializeBase()
	if a.Data != nil {
		out["data"] = a.Data
	}
	return out
}

// ExecuteAction invokes a named verb on the host.
type ExecuteAction struct {
	BaseAction
	Verb string
	Data any
}

func (a *ExecuteAction) Parse(src map[string]any, _ *ParseContext) {
	a.parseBase(src)
	if verb, ok := StringValue(src["verb"]); ok {
		a.Verb = verb
	}
	if data, ok := src["data"]; ok {
		a.Data = data
	}
}

func (a *ExecuteAction) Serialize() map[string]any {
	out := a.serializeBase()
	if a.Verb != "" {
		out["verb"] = a.Verb
	}
	if a.Data != nil {
		out["data"] = a.Data
	}
	return out
}

// ToggleVisibilityAction flips the visibility of target elements.
type ToggleVisibilityAction struct {
	BaseAction
	TargetElements []any
}

func (a *ToggleVisibilityAction) Parse(src map[string]any, _ *ParseContext) {
	a.parseBase(src)
	if targets, ok := SliceValue(src["targetElements"]); ok {
		a.TargetElements = targets
	}
}

func (a *ToggleVisibilityAction) Serialize() map[string]any {
	out := a.serializeBase()
	if len(a.TargetElements) > 0 {
		out["targetElements"] = a.TargetElements
	}
	return out
}

// NewDefaultActionRegistry returns the host action set.
func NewDefaultActionRegistry() *ActionRegistry {
	reg := NewActionRegistry()
	reg.MustRegister(TypeOpenURL, func() Action {
		return &OpenURLAction{BaseAction: BaseAction{typeName: TypeOpenURL}}
	})
	reg.MustRegister(TypeSubmit, func() Action {
		return &SubmitAction{BaseAction: BaseAction{typeName: TypeSubmit}}
	})
	reg.MustRegister(TypeExecute, func() Action {
		return &ExecuteAction{BaseAction: BaseAction{typeName: TypeExecute}}
	})
	reg.MustRegister(TypeToggleVisibility, func() Action {
		return &ToggleVisibilityAction{BaseAction: BaseAction{typeName: TypeToggleVisibility}}
	})
	return reg
}

// NewDefaultRegistry returns the host element set: the plain Container plus
// the leaf elements.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(TypeContainer, func() Element { return NewContainer() })
	reg.MustRegister(TypeTextBlock, func() Element { return NewTextBlock() })
	reg.MustRegister(TypeImage, func() Element { return NewImage() })
	return reg
}
