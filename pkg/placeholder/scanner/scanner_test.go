package scanner

import (
	"reflect"
	"testing"

	"pagecraft-hq/callisto/pkg/template/ast"
)

func TestScanner_Scan_DocumentOrder(t *testing.T) {
	doc := &ast.Document{
		TemplateID: "t1",
		Content: []*ast.Node{
			{
				ID:          "s1",
				ElementType: "section",
				Settings:    map[string]any{"title": "{{HERO_TITLE}}"},
				Elements: []*ast.Node{
					{
						ID:          "w1",
						ElementType: "widget",
						WidgetType:  "heading",
						Settings:    map[string]any{"title": "{{BUSINESS_NAME}} - {{SPECIALTY}}"},
					},
					{
						ID:          "w2",
						ElementType: "widget",
						WidgetType:  "button",
						Settings:    map[string]any{"button_text": "{{PRIMARY_CTA}}"},
					},
				},
			},
			{
				ID:          "s2",
				ElementType: "section",
				Settings:    map[string]any{"description": "{{ABOUT_TEXT}}"},
			},
		},
	}

	occs := New().Scan(doc)

	var keys []string
	for _, o := range occs {
		keys = append(keys, o.Key)
	}
	want := []string{"HERO_TITLE", "BUSINESS_NAME", "SPECIALTY", "PRIMARY_CTA", "ABOUT_TEXT"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("scan order = %v, want %v", keys, want)
	}
}

func TestScanner_Scan_SectionKeys(t *testing.T) {
	doc := &ast.Document{
		Content: []*ast.Node{
			{
				ElementType: "section",
				Settings:    map[string]any{"title": "{{A}}"},
				Elements: []*ast.Node{
					{
						ElementType: "widget",
						WidgetType:  "heading",
						Settings:    map[string]any{"title": "{{B}}"},
					},
				},
			},
			{
				ElementType: "section",
				Elements: []*ast.Node{
					{
						ElementType: "widget",
						WidgetType:  "heading",
						Settings:    map[string]any{"title": "{{C}}"},
					},
				},
			},
		},
	}

	occs := New().Scan(doc)
	if len(occs) != 3 {
		t.Fatalf("len(occurrences) = %d, want 3", len(occs))
	}

	if occs[0].SectionKey != "section_0_0" {
		t.Errorf("A section = %q, want section_0_0", occs[0].SectionKey)
	}
	if occs[1].SectionKey != "section_1_0" {
		t.Errorf("B section = %q, want section_1_0", occs[1].SectionKey)
	}
	// C sits in a different branch but at the same depth and sibling index
	// as B, so the section keys collide. That is intended behavior.
	if occs[2].SectionKey != "section_1_0" {
		t.Errorf("C section = %q, want section_1_0 (colliding key)", occs[2].SectionKey)
	}
}

func TestScanner_Scan_MultipleTokensPerField(t *testing.T) {
	doc := &ast.Document{
		Content: []*ast.Node{
			{
				ElementType: "widget",
				WidgetType:  "text-editor",
				Settings:    map[string]any{"editor": "{{NAME}} {{NAME}} {{CITY}}"},
			},
		},
	}

	occs := New().Scan(doc)
	if len(occs) != 3 {
		t.Fatalf("len(occurrences) = %d, want 3 (repeats kept)", len(occs))
	}
	if occs[0].Key != "NAME" || occs[1].Key != "NAME" || occs[2].Key != "CITY" {
		t.Errorf("keys = %v %v %v, want NAME NAME CITY", occs[0].Key, occs[1].Key, occs[2].Key)
	}
	if occs[0].FieldText != "{{NAME}} {{NAME}} {{CITY}}" {
		t.Errorf("FieldText = %q, want the full original text", occs[0].FieldText)
	}
}

func TestScanner_Scan_SkipsNonStringAndUnknownFields(t *testing.T) {
	doc := &ast.Document{
		Content: []*ast.Node{
			{
				ElementType: "widget",
				WidgetType:  "heading",
				Settings: map[string]any{
					"title":      float64(42),               // non-string scanned field
					"custom_css": "{{NOT_A_SCANNED_FIELD}}", // not in the field list
					"text":       "{{REAL}}",
				},
			},
		},
	}

	occs := New().Scan(doc)
	if len(occs) != 1 {
		t.Fatalf("len(occurrences) = %d, want 1", len(occs))
	}
	if occs[0].Key != "REAL" {
		t.Errorf("Key = %q, want REAL", occs[0].Key)
	}
}

func TestScanner_Scan_EmptyAndNilCases(t *testing.T) {
	if got := New().Scan(nil); len(got) != 0 {
		t.Errorf("Scan(nil) = %d occurrences, want 0", len(got))
	}

	doc := &ast.Document{
		Content: []*ast.Node{
			{ElementType: "section"}, // no settings, no children
		},
	}
	if got := New().Scan(doc); len(got) != 0 {
		t.Errorf("Scan(bare node) = %d occurrences, want 0", len(got))
	}
}

func TestScanner_Scan_OccurrenceMetadata(t *testing.T) {
	doc := &ast.Document{
		Content: []*ast.Node{
			{
				ElementType: "section",
				Elements: []*ast.Node{
					{ElementType: "column"},
					{
						ElementType: "widget",
						WidgetType:  "button",
						Settings:    map[string]any{"button_text": "{{CTA}}"},
					},
				},
			},
		},
	}

	occs := New().Scan(doc)
	if len(occs) != 1 {
		t.Fatalf("len(occurrences) = %d, want 1", len(occs))
	}

	o := occs[0]
	if o.Field != "button_text" {
		t.Errorf("Field = %q, want button_text", o.Field)
	}
	if o.WidgetType != "button" {
		t.Errorf("WidgetType = %q, want button", o.WidgetType)
	}
	if o.Depth != 1 || o.SiblingIndex != 1 {
		t.Errorf("position = (%d,%d), want (1,1)", o.Depth, o.SiblingIndex)
	}
	if o.Kind() != "button" {
		t.Errorf("Kind() = %q, want button", o.Kind())
	}
}
