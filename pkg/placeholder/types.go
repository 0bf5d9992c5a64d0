package placeholder

// Type is the semantic type of a placeholder. The set is closed.
type Type string

const (
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeURL   Type = "url"
	TypePhone Type = "phone"
	TypeEmail Type = "email"
	TypeCTA   Type = "cta"
	TypeList  Type = "list"
)

// Types returns all semantic placeholder types.
func Types() []Type {
	return []Type{TypeText, TypeImage, TypeURL, TypePhone, TypeEmail, TypeCTA, TypeList}
}

// IsValid returns true if t is one of the known semantic types.
func (t Type) IsValid() bool {
	switch t {
	case TypeText, TypeImage, TypeURL, TypePhone, TypeEmail, TypeCTA, TypeList:
		return true
	}
	return false
}

// ScannedFields is the fixed set of text-bearing setting names the scanner
// tests on every node. The list is not configurable.
var ScannedFields = []string{
	"title",
	"text",
	"editor",
	"content",
	"caption",
	"description",
	"button_text",
}

// Occurrence is one raw token occurrence found by the scanner.
// A field containing two tokens yields two occurrences; a repeated token
// yields two occurrences with the same key.
type Occurrence struct {
	// Key is the placeholder key, without the surrounding braces.
	Key string

	// Field is the settings field name the token was found in.
	Field string

	// WidgetType is the node's widget type, empty for container elements.
	WidgetType string

	// ElementType is the node's structural element type.
	ElementType string

	// FieldText is the full original text of the field.
	FieldText string

	// SectionKey is the traversal-derived section grouping key,
	// "section_{depth}_{siblingIndex}". Two different branches at the same
	// depth and index share a key; that collision is part of the contract.
	SectionKey string

	// Depth is the node's depth in the tree, starting at 0.
	Depth int

	// SiblingIndex is the node's index among its siblings.
	SiblingIndex int
}

// Kind returns the widget type if set, otherwise the element type.
func (o Occurrence) Kind() string {
	if o.WidgetType != "" {
		return o.WidgetType
	}
	return o.ElementType
}

// Mapping is the classified metadata record for a placeholder key.
type Mapping struct {
	// Key is the placeholder key.
	Key string `json:"key"`

	// Type is the inferred semantic type.
	Type Type `json:"type"`

	// Context describes where and how the placeholder is used,
	// for content authors and generation pipelines.
	Context string `json:"context"`

	// Required marks placeholders callers are expected to resolve
	// before using the template. Never enforced by the engine.
	Required bool `json:"required"`

	// Fallback is a suggested default value. Advisory only: substitution
	// never applies it automatically.
	Fallback string `json:"fallback"`

	// Validation is an optional regular expression a supplied value
	// should satisfy. Checking is the caller's responsibility.
	Validation string `json:"validation,omitempty"`
}

// Section is a traversal-position-derived grouping of placeholder keys.
type Section struct {
	// Priority orders sections for content generation. It is the sibling
	// index of the node the section key was first derived from.
	Priority int `json:"priority"`

	// Placeholders lists the keys found in this section, in document
	// order. A key may repeat here even though the flat registry list
	// never repeats one.
	Placeholders []string `json:"placeholders"`
}

// TemplatePlaceholders is the deduplicated extraction result for a template.
type TemplatePlaceholders struct {
	// TemplateID identifies the scanned template.
	TemplateID string `json:"template_id"`

	// Placeholders holds one Mapping per unique key, in first-seen order.
	Placeholders []Mapping `json:"placeholders"`

	// Sections groups placeholder keys by section key.
	Sections map[string]*Section `json:"sections"`
}

// Get returns the mapping for the given key, or nil if not present.
func (tp *TemplatePlaceholders) Get(key string) *Mapping {
	for i := range tp.Placeholders {
		if tp.Placeholders[i].Key == key {
			return &tp.Placeholders[i]
		}
	}
	return nil
}

// Has returns true if the registry contains a mapping for the given key.
func (tp *TemplatePlaceholders) Has(key string) bool {
	return tp.Get(key) != nil
}

// Keys returns all placeholder keys in first-seen order.
func (tp *TemplatePlaceholders) Keys() []string {
	keys := make([]string, len(tp.Placeholders))
	for i, m := range tp.Placeholders {
		keys[i] = m.Key
	}
	return keys
}

// RequiredKeys returns the keys of all required placeholders, in order.
func (tp *TemplatePlaceholders) RequiredKeys() []string {
	var keys []string
	for _, m := range tp.Placeholders {
		if m.Required {
			keys = append(keys, m.Key)
		}
	}
	return keys
}

// Count returns the number of unique placeholders.
func (tp *TemplatePlaceholders) Count() int {
	return len(tp.Placeholders)
}
