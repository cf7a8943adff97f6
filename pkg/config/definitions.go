// Config-file shapes for endpoint definitions. Bodies are arbitrary
// YAML/JSON values here and become raw JSON on conversion.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/mockforge/mockforge/pkg/definition"
)

// ResourceConfig declares a resource and how many records to seed
// for it at startup.
type ResourceConfig struct {
	Name   string             `yaml:"name" json:"name"`
	Fields []definition.Field `yaml:"fields" json:"fields"`
	// Seed is the record count generated at startup; 0 seeds nothing.
	Seed int `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// APIConfig declares a custom API endpoint.
type APIConfig struct {
	Method      string                  `yaml:"method" json:"method"`
	Path        string                  `yaml:"path" json:"path"`
	Status      int                     `yaml:"status,omitempty" json:"status,omitempty"`
	Body        any                     `yaml:"body,omitempty" json:"body,omitempty"`
	WebhookURL  string                  `yaml:"webhookUrl,omitempty" json:"webhookUrl,omitempty"`
	QueryParams []definition.QueryParam `yaml:"queryParams,omitempty" json:"queryParams,omitempty"`
	Conditional *ConditionalConfig      `yaml:"conditional,omitempty" json:"conditional,omitempty"`
}

// ConditionalConfig declares a conditional response rule.
type ConditionalConfig struct {
	Condition       definition.Condition `yaml:"condition" json:"condition"`
	ResponseIfTrue  any                  `yaml:"responseIfTrue,omitempty" json:"responseIfTrue,omitempty"`
	ResponseIfFalse any                  `yaml:"responseIfFalse,omitempty" json:"responseIfFalse,omitempty"`
	StatusIfTrue    int                  `yaml:"statusCodeIfTrue,omitempty" json:"statusCodeIfTrue,omitempty"`
	StatusIfFalse   int                  `yaml:"statusCodeIfFalse,omitempty" json:"statusCodeIfFalse,omitempty"`
}

// ToDefinition converts the config shape into a registrable resource.
func (c ResourceConfig) ToDefinition() *definition.Resource {
	return &definition.Resource{Name: c.Name, Fields: c.Fields}
}

// ToDefinition converts the config shape into a registrable custom
// API. A missing status defaults to 200.
func (c APIConfig) ToDefinition() (*definition.CustomAPI, error) {
	api := &definition.CustomAPI{
		Method:      c.Method,
		Path:        c.Path,
		StatusCode:  c.Status,
		WebhookURL:  c.WebhookURL,
		QueryParams: c.QueryParams,
	}
	if api.StatusCode == 0 {
		api.StatusCode = 200
	}

	body, err := rawJSON(c.Body)
	if err != nil {
		return nil, fmt.Errorf("api %s %s: encode body: %w", c.Method, c.Path, err)
	}
	api.Body = body

	if c.Conditional != nil {
		rule := &definition.ConditionalRule{
			Condition:     c.Conditional.Condition,
			StatusIfTrue:  c.Conditional.StatusIfTrue,
			StatusIfFalse: c.Conditional.StatusIfFalse,
		}
		if rule.ResponseIfTrue, err = rawJSON(c.Conditional.ResponseIfTrue); err != nil {
			return nil, fmt.Errorf("api %s %s: encode responseIfTrue: %w", c.Method, c.Path, err)
		}
		if rule.ResponseIfFalse, err = rawJSON(c.Conditional.ResponseIfFalse); err != nil {
			return nil, fmt.Errorf("api %s %s: encode responseIfFalse: %w", c.Method, c.Path, err)
		}
		api.Conditional = rule
	}

	return api, nil
}

// rawJSON encodes a decoded YAML/JSON value back to raw JSON; nil in,
// nil out.
func rawJSON(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(normalize(v))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// normalize rewrites YAML's map[any]any keys into strings so the
// value round-trips through encoding/json.
func normalize(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
