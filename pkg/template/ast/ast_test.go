package ast

import "testing"

func sampleDocument() *Document {
	return &Document{
		TemplateID: "landing-01",
		Content: []*Node{
			{
				ID:          "a1",
				ElementType: "section",
				Settings:    map[string]any{"background": "dark"},
				Elements: []*Node{
					{
						ID:          "b1",
						ElementType: "widget",
						WidgetType:  "heading",
						Settings: map[string]any{
							"title": "{{BUSINESS_NAME}}",
							"size":  float64(3),
							"style": map[string]any{"color": "#fff", "weights": []any{"bold"}},
						},
					},
				},
			},
			{
				ID:          "a2",
				ElementType: "section",
			},
		},
	}
}

func TestNode_Kind(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"widget type wins", &Node{ElementType: "widget", WidgetType: "heading"}, "heading"},
		{"element type fallback", &Node{ElementType: "section"}, "section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNode_StringSetting(t *testing.T) {
	node := sampleDocument().Content[0].Elements[0]

	got, ok := node.StringSetting("title")
	if !ok {
		t.Fatal("StringSetting(title) ok = false, want true")
	}
	if got != "{{BUSINESS_NAME}}" {
		t.Errorf("StringSetting(title) = %q, want %q", got, "{{BUSINESS_NAME}}")
	}

	// Non-string values report absent
	if _, ok := node.StringSetting("size"); ok {
		t.Error("StringSetting(size) ok = true for non-string value, want false")
	}

	// Missing field reports absent
	if _, ok := node.StringSetting("caption"); ok {
		t.Error("StringSetting(caption) ok = true for missing field, want false")
	}

	// Node without settings reports absent
	bare := &Node{ElementType: "section"}
	if _, ok := bare.StringSetting("title"); ok {
		t.Error("StringSetting on settings-less node ok = true, want false")
	}
}

func TestDocument_NodeCount(t *testing.T) {
	doc := sampleDocument()
	if got := doc.NodeCount(); got != 3 {
		t.Errorf("NodeCount() = %d, want 3", got)
	}
}

func TestDocument_Clone_DeepCopy(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()

	if clone == doc {
		t.Fatal("Clone() returned the same instance")
	}
	if clone.TemplateID != doc.TemplateID {
		t.Errorf("TemplateID = %q, want %q", clone.TemplateID, doc.TemplateID)
	}
	if len(clone.Content) != len(doc.Content) {
		t.Fatalf("len(Content) = %d, want %d", len(clone.Content), len(doc.Content))
	}

	// Mutating the clone must not leak into the original
	heading := clone.Content[0].Elements[0]
	heading.Settings["title"] = "changed"
	style := heading.Settings["style"].(map[string]any)
	style["color"] = "#000"

	origHeading := doc.Content[0].Elements[0]
	if got, _ := origHeading.StringSetting("title"); got != "{{BUSINESS_NAME}}" {
		t.Errorf("original title = %q after clone mutation, want %q", got, "{{BUSINESS_NAME}}")
	}
	origStyle := origHeading.Settings["style"].(map[string]any)
	if origStyle["color"] != "#fff" {
		t.Errorf("original nested style mutated: color = %v, want #fff", origStyle["color"])
	}
}

func TestDocument_Clone_Nil(t *testing.T) {
	var doc *Document
	if doc.Clone() != nil {
		t.Error("Clone() of nil document should be nil")
	}
}
