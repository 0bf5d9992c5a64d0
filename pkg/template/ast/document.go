package ast

// Document represents the root of a page-builder template tree.
// It is conceptually just the ordered list of top-level nodes, tagged
// with the identifier of the template it was exported from.
type Document struct {
	// TemplateID identifies the template in the page builder's storage.
	TemplateID string `json:"template_id"`

	// Title is the template's display name from the export, if present.
	Title string `json:"title,omitempty"`

	// Content is the ordered list of top-level nodes.
	Content []*Node `json:"content"`
}

// Node represents one element of the template tree.
// Settings values may be of any type; only string values are of interest
// to the placeholder engine. Elements may be empty for leaf nodes.
type Node struct {
	// ID is the page builder's element identifier.
	ID string `json:"id"`

	// ElementType is the structural kind of the element
	// (e.g. "section", "column", "widget").
	ElementType string `json:"elType"`

	// WidgetType is the widget kind for widget elements
	// (e.g. "heading", "text-editor", "button"). Empty for containers.
	WidgetType string `json:"widgetType,omitempty"`

	// Settings holds the element's configured values keyed by field name.
	Settings map[string]any `json:"settings,omitempty"`

	// Elements is the ordered list of child nodes.
	Elements []*Node `json:"elements,omitempty"`
}

// Kind returns the widget type if set, otherwise the element type.
// This is the node's effective kind for classification purposes.
func (n *Node) Kind() string {
	if n.WidgetType != "" {
		return n.WidgetType
	}
	return n.ElementType
}

// StringSetting returns the string value of the named setting.
// It returns ok=false when the setting is absent or not a string,
// which callers treat as "nothing to scan", never as an error.
func (n *Node) StringSetting(name string) (string, bool) {
	if n.Settings == nil {
		return "", false
	}
	v, ok := n.Settings[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// HasChildren returns true if the node has at least one child element.
func (n *Node) HasChildren() bool {
	return len(n.Elements) > 0
}

// NodeCount returns the total number of nodes in the document.
func (d *Document) NodeCount() int {
	count := 0
	for _, node := range d.Content {
		count += node.nodeCount()
	}
	return count
}

func (n *Node) nodeCount() int {
	count := 1
	for _, child := range n.Elements {
		count += child.nodeCount()
	}
	return count
}
