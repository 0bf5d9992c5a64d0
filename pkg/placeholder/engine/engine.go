// Package engine ties the placeholder pipeline together behind one facade.
//
// Extract runs scan, classify and registry assembly over a parsed document
// and caches the result keyed by a content hash, so repeated extraction of
// the same template body is free. Substitute applies a value map to a deep
// copy of the document. Neither operation errors in normal operation; a
// document that yields no placeholders is a valid, empty result.
package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"pagecraft-hq/callisto/pkg/placeholder"
	"pagecraft-hq/callisto/pkg/placeholder/classifier"
	"pagecraft-hq/callisto/pkg/placeholder/registry"
	"pagecraft-hq/callisto/pkg/placeholder/scanner"
	"pagecraft-hq/callisto/pkg/placeholder/substitute"
	"pagecraft-hq/callisto/pkg/template/ast"
)

// DefaultCacheSize bounds the extraction cache.
const DefaultCacheSize = 256

// Observer receives pipeline outcomes for metrics and logging.
// Implementations must be safe for concurrent use.
type Observer interface {
	ExtractionCompleted(templateID string, placeholders int, duration time.Duration, cacheHit bool)
	SubstitutionCompleted(templateID string, unresolved int, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ExtractionCompleted(string, int, time.Duration, bool) {}
func (nopObserver) SubstitutionCompleted(string, int, time.Duration)     {}

// Engine is the placeholder pipeline facade.
type Engine struct {
	scanner    *scanner.Scanner
	classifier *classifier.Classifier
	cache      *lru.Cache[string, *placeholder.TemplatePlaceholders]
	observer   Observer
}

// New creates an engine with the default cache size and a no-op observer.
func New() *Engine {
	cache, _ := lru.New[string, *placeholder.TemplatePlaceholders](DefaultCacheSize)
	return &Engine{
		scanner:    scanner.New(),
		classifier: classifier.New(),
		cache:      cache,
		observer:   nopObserver{},
	}
}

// WithCacheSize resizes the extraction cache. A size of zero or less
// disables caching.
func (e *Engine) WithCacheSize(size int) *Engine {
	if size <= 0 {
		e.cache = nil
		return e
	}
	cache, _ := lru.New[string, *placeholder.TemplatePlaceholders](size)
	e.cache = cache
	return e
}

// WithObserver installs an observer for pipeline outcomes.
func (e *Engine) WithObserver(obs Observer) *Engine {
	if obs != nil {
		e.observer = obs
	}
	return e
}

// Extract scans the document and returns its placeholder registry.
// Results are cached by content hash; a nil document yields an empty
// registry.
func (e *Engine) Extract(doc *ast.Document) *placeholder.TemplatePlaceholders {
	start := time.Now()

	if doc == nil {
		return &placeholder.TemplatePlaceholders{
			Placeholders: []placeholder.Mapping{},
			Sections:     map[string]*placeholder.Section{},
		}
	}

	key := contentHash(doc)
	if e.cache != nil && key != "" {
		if cached, ok := e.cache.Get(key); ok {
			e.observer.ExtractionCompleted(doc.TemplateID, cached.Count(), time.Since(start), true)
			return cached
		}
	}

	occurrences := e.scanner.Scan(doc)
	mappings := make([]placeholder.Mapping, len(occurrences))
	for i, occ := range occurrences {
		mappings[i] = e.classifier.Classify(occ)
	}
	result := registry.Build(doc.TemplateID, occurrences, mappings)

	if e.cache != nil && key != "" {
		e.cache.Add(key, result)
	}
	e.observer.ExtractionCompleted(doc.TemplateID, result.Count(), time.Since(start), false)
	return result
}

// Substitute applies the value map to a deep copy of the document.
// Tokens without a supplied value stay literal; the input is never
// mutated.
func (e *Engine) Substitute(doc *ast.Document, values map[string]string) *ast.Document {
	start := time.Now()

	out := substitute.Apply(doc, values)
	if out == nil {
		return nil
	}

	unresolved := substitute.UnresolvedKeys(out)
	e.observer.SubstitutionCompleted(out.TemplateID, len(unresolved), time.Since(start))
	return out
}

// Unresolved reports the token keys still present in a document's scanned
// fields after substitution.
func (e *Engine) Unresolved(doc *ast.Document) []string {
	return substitute.UnresolvedKeys(doc)
}

// contentHash derives the cache key from the document's JSON form.
// Settings maps marshal with sorted keys, so equal documents hash equal.
func contentHash(doc *ast.Document) string {
	data, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
