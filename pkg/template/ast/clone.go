package ast

// Clone returns a structural deep copy of the document.
// The copy shares no mutable state with the original: nodes, settings maps,
// and nested setting values (maps, slices) are all duplicated.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		TemplateID: d.TemplateID,
		Title:      d.Title,
	}
	if d.Content != nil {
		out.Content = make([]*Node, len(d.Content))
		for i, node := range d.Content {
			out.Content[i] = node.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		ID:          n.ID,
		ElementType: n.ElementType,
		WidgetType:  n.WidgetType,
	}
	if n.Settings != nil {
		out.Settings = make(map[string]any, len(n.Settings))
		for k, v := range n.Settings {
			out.Settings[k] = cloneValue(v)
		}
	}
	if n.Elements != nil {
		out.Elements = make([]*Node, len(n.Elements))
		for i, child := range n.Elements {
			out.Elements[i] = child.Clone()
		}
	}
	return out
}

// cloneValue deep-copies a settings value. Page-builder exports decode to
// JSON-shaped values (strings, numbers, booleans, maps, slices), so those
// are the shapes handled here; other types are copied by assignment.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
