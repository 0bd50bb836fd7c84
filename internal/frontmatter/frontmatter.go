// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter reads metadata out of a built Dom and writes it as the
// YAML block that precedes the rendered Markdown.
package frontmatter

import (
	"bytes"
	"fmt"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/html2md/internal/dom"
)

// Extractor reads one front-matter value from a document.
type Extractor interface {
	// Key is the stable front-matter key (e.g. "title").
	Key() string
	// Extract returns the value for Key, or false when the document has none.
	Extract(baseURL string, d *dom.Dom) (string, bool)
}

// Field is one extracted key/value pair.
type Field struct {
	Key   string
	Value string
}

var (
	mu         sync.RWMutex
	extractors = []Extractor{TitleExtractor{}, SourceExtractor{}}
)

// Register adds an extractor, replacing any registered under the same key.
func Register(e Extractor) {
	mu.Lock()
	defer mu.Unlock()
	for i, existing := range extractors {
		if existing.Key() == e.Key() {
			extractors[i] = e
			return
		}
	}
	extractors = append(extractors, e)
}

// Lookup returns the extractor registered for key.
func Lookup(key string) (Extractor, bool) {
	mu.RLock()
	defer mu.RUnlock()
	for _, e := range extractors {
		if e.Key() == key {
			return e, true
		}
	}
	return nil, false
}

// Keys returns the registered keys in registration order.
func Keys() []string {
	mu.RLock()
	defer mu.RUnlock()
	keys := make([]string, len(extractors))
	for i, e := range extractors {
		keys[i] = e.Key()
	}
	return keys
}

// Extract runs the extractors for keys in the order given. Unknown keys are
// dropped, repeated keys keep their first occurrence, and extractors that
// yield nothing or an empty value are omitted.
func Extract(baseURL string, d *dom.Dom, keys []string) []Field {
	seen := make(map[string]bool, len(keys))
	var fields []Field
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		e, ok := Lookup(k)
		if !ok {
			continue
		}
		v, ok := e.Extract(baseURL, d)
		if !ok || v == "" {
			continue
		}
		fields = append(fields, Field{Key: k, Value: v})
	}
	return fields
}

// Block renders fields as a "---" delimited YAML block followed by a blank
// line. No fields renders as "".
func Block(fields []Field) (string, error) {
	if len(fields) == 0 {
		return "", nil
	}
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
		)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return "", fmt.Errorf("encoding front-matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding front-matter: %w", err)
	}
	buf.WriteString("---\n\n")
	return buf.String(), nil
}
