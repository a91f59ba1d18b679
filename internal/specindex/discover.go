package specindex

import "gopkg.in/yaml.v3"

// IsOpenAPIDocument reports whether raw decodes as a YAML (or JSON, which is
// valid YAML) mapping with a top-level "openapi" key. Unlike Parse, this
// does a real decode so block style, flow style, and aliases are all
// recognized — Parse's line-oriented scanner is deliberately not that.
func IsOpenAPIDocument(raw []byte) bool {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return false
	}
	_, ok := doc["openapi"]
	return ok
}
