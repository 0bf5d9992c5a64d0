package substitute

import (
	"reflect"
	"testing"

	"pagecraft-hq/callisto/pkg/template/ast"
)

func buildDoc() *ast.Document {
	return &ast.Document{
		TemplateID: "landing-01",
		Content: []*ast.Node{
			{
				ID:          "s1",
				ElementType: "section",
				Elements: []*ast.Node{
					{
						ID:          "w1",
						ElementType: "widget",
						WidgetType:  "heading",
						Settings: map[string]any{
							"title":      "{{BUSINESS_NAME}} - {{SPECIALTY}}",
							"custom_css": "{{BUSINESS_NAME}}", // not a scanned field
							"size":       float64(2),
						},
					},
					{
						ID:          "w2",
						ElementType: "widget",
						WidgetType:  "button",
						Settings:    map[string]any{"button_text": "{{PRIMARY_CTA}}"},
					},
				},
			},
		},
	}
}

func TestApply_FullResolution(t *testing.T) {
	doc := buildDoc()
	out := Apply(doc, map[string]string{
		"BUSINESS_NAME": "Acme",
		"SPECIALTY":     "Ortodontia",
		"PRIMARY_CTA":   "Agende agora",
	})

	heading := out.Content[0].Elements[0]
	if title, _ := heading.StringSetting("title"); title != "Acme - Ortodontia" {
		t.Errorf("title = %q, want %q", title, "Acme - Ortodontia")
	}
	button := out.Content[0].Elements[1]
	if txt, _ := button.StringSetting("button_text"); txt != "Agende agora" {
		t.Errorf("button_text = %q, want %q", txt, "Agende agora")
	}

	if keys := UnresolvedKeys(out); keys != nil {
		t.Errorf("UnresolvedKeys() = %v, want nil after full resolution", keys)
	}
}

func TestApply_PartialResolution(t *testing.T) {
	// Scenario: only BUSINESS_NAME supplied; the unresolved token stays
	// verbatim, and no fallback sneaks in.
	doc := buildDoc()
	out := Apply(doc, map[string]string{"BUSINESS_NAME": "Acme"})

	heading := out.Content[0].Elements[0]
	if title, _ := heading.StringSetting("title"); title != "Acme - {{SPECIALTY}}" {
		t.Errorf("title = %q, want %q", title, "Acme - {{SPECIALTY}}")
	}

	got := UnresolvedKeys(out)
	want := []string{"SPECIALTY", "PRIMARY_CTA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnresolvedKeys() = %v, want %v", got, want)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	doc := buildDoc()
	out := Apply(doc, map[string]string{"BUSINESS_NAME": "Acme"})

	if out == doc {
		t.Fatal("Apply() returned the input document")
	}

	heading := doc.Content[0].Elements[0]
	if title, _ := heading.StringSetting("title"); title != "{{BUSINESS_NAME}} - {{SPECIALTY}}" {
		t.Errorf("input title mutated: %q", title)
	}
}

func TestApply_EmptyValues(t *testing.T) {
	doc := buildDoc()
	out := Apply(doc, nil)

	if !reflect.DeepEqual(out, doc) {
		t.Error("Apply() with empty values should be structurally identical to the input")
	}
	if out == doc {
		t.Error("Apply() with empty values must still return a distinct copy")
	}
}

func TestApply_NonScannedFieldsUntouched(t *testing.T) {
	doc := buildDoc()
	out := Apply(doc, map[string]string{"BUSINESS_NAME": "Acme"})

	heading := out.Content[0].Elements[0]
	if css, _ := heading.StringSetting("custom_css"); css != "{{BUSINESS_NAME}}" {
		t.Errorf("custom_css = %q, want untouched token text", css)
	}
	if size := heading.Settings["size"]; size != float64(2) {
		t.Errorf("size = %v, want 2", size)
	}
}

func TestApply_RepeatedTokens(t *testing.T) {
	doc := &ast.Document{
		Content: []*ast.Node{
			{
				ElementType: "widget",
				WidgetType:  "text-editor",
				Settings:    map[string]any{"editor": "{{NAME}} and {{NAME}} and {{OTHER}}"},
			},
		},
	}

	out := Apply(doc, map[string]string{"NAME": "Acme"})
	editor, _ := out.Content[0].StringSetting("editor")
	if editor != "Acme and Acme and {{OTHER}}" {
		t.Errorf("editor = %q, want %q", editor, "Acme and Acme and {{OTHER}}")
	}
}

func TestApply_NilDocument(t *testing.T) {
	if Apply(nil, map[string]string{"A": "b"}) != nil {
		t.Error("Apply(nil) should return nil")
	}
}
