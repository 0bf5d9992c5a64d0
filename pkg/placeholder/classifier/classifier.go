// Package classifier maps raw placeholder occurrences to typed mappings.
//
// Classification is a pure function of (key, field, widgetType/elementType):
// identical inputs always produce an identical Mapping, and classification
// never fails. Type inference tests key substrings in a fixed priority
// order; widget-type rules then override the context, and for button
// widgets the type itself.
package classifier

import (
	"strings"

	"pagecraft-hq/callisto/pkg/placeholder"
)

// Validation patterns per semantic type.
const (
	phonePattern = `^\(\d{2}\)\s*\d{4,5}-?\d{4}$`
	emailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	urlPattern   = `^https?://.+`
)

// typeRule is one key-substring inference rule.
type typeRule struct {
	substrings []string
	typ        placeholder.Type
	validation string
}

// typeRules is tested in priority order; the first match wins.
var typeRules = []typeRule{
	{[]string{"PHONE", "TELEFONE"}, placeholder.TypePhone, phonePattern},
	{[]string{"EMAIL"}, placeholder.TypeEmail, emailPattern},
	{[]string{"CTA", "BUTTON", "BOTAO"}, placeholder.TypeCTA, ""},
	{[]string{"URL", "LINK"}, placeholder.TypeURL, urlPattern},
	{[]string{"IMAGE", "IMAGEM"}, placeholder.TypeImage, ""},
	{[]string{"LIST", "LISTA"}, placeholder.TypeList, ""},
}

// criticalKeySubstrings marks keys whose placeholders are always required.
var criticalKeySubstrings = []string{"BUSINESS_NAME", "MAIN_HEADLINE", "PRIMARY_CTA"}

// typeFallbacks holds the per-type default fallback values.
// The image type has no dedicated entry and falls through to the generic
// default below.
var typeFallbacks = map[placeholder.Type]string{
	placeholder.TypeText:  "Conteúdo personalizado",
	placeholder.TypePhone: "(11) 99999-9999",
	placeholder.TypeEmail: "contato@empresa.com.br",
	placeholder.TypeCTA:   "Entre em Contato",
	placeholder.TypeURL:   "https://exemplo.com.br",
	placeholder.TypeList:  "Item 1, Item 2, Item 3",
}

// genericFallback is used when a type has no dedicated fallback.
const genericFallback = "Conteúdo"

// Classifier classifies placeholder occurrences. It is stateless and safe
// for concurrent use.
type Classifier struct{}

// New creates a new Classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify produces the Mapping for one raw occurrence. It never fails:
// any key that matches no rule classifies as plain text.
func (c *Classifier) Classify(occ placeholder.Occurrence) placeholder.Mapping {
	typ, validation := inferType(occ.Key)
	context := occ.Kind() + " " + occ.Field

	// Widget-type rules run after the substring rules. For button widgets
	// the type is force-set to cta regardless of the substring result.
	switch occ.WidgetType {
	case "heading":
		context = "main section title"
	case "text-editor":
		context = "long-form text content"
	case "button":
		context = "action button label"
		typ = placeholder.TypeCTA
		validation = ""
	}

	return placeholder.Mapping{
		Key:        occ.Key,
		Type:       typ,
		Context:    context,
		Required:   isRequired(occ),
		Fallback:   resolveFallback(occ.Key, typ),
		Validation: validation,
	}
}

// inferType tests the key against the substring rules in priority order.
func inferType(key string) (placeholder.Type, string) {
	for _, rule := range typeRules {
		for _, sub := range rule.substrings {
			if strings.Contains(key, sub) {
				return rule.typ, rule.validation
			}
		}
	}
	return placeholder.TypeText, ""
}

// isRequired reports whether the occurrence's placeholder is required.
// Besides the critical key substrings, a button_text field on a heading
// widget also marks the key required. That combination looks mismatched
// but is kept as-is; see the registry tests documenting the quirk.
func isRequired(occ placeholder.Occurrence) bool {
	for _, sub := range criticalKeySubstrings {
		if strings.Contains(occ.Key, sub) {
			return true
		}
	}
	return occ.Field == "button_text" && occ.WidgetType == "heading"
}

// resolveFallback picks the suggested default value for a key.
// Key-specific rules win over the per-type defaults.
func resolveFallback(key string, typ placeholder.Type) string {
	switch {
	case strings.Contains(key, "BUSINESS_NAME"):
		return "Sua Empresa"
	case strings.Contains(key, "SPECIALTY"), strings.Contains(key, "ESPECIALIDADE"):
		return "Especialista"
	case strings.Contains(key, "SERVICE"):
		return "Nossos Serviços"
	}
	if fb, ok := typeFallbacks[typ]; ok {
		return fb
	}
	return genericFallback
}
