// Package definition holds the user-declared endpoint definitions served
// by the mockforge engine: custom APIs with canned responses and
// resources backed by virtual record collections.
package definition

import (
	"bytes"
	"encoding/json"
	"time"
)

// HTTP methods a custom API may declare.
const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodPatch   = "PATCH"
	MethodOptions = "OPTIONS"
	MethodHead    = "HEAD"
)

// Methods lists every allowed custom API method.
var Methods = []string{
	MethodGet, MethodPost, MethodPut, MethodDelete,
	MethodPatch, MethodOptions, MethodHead,
}

// CustomAPI is a user-declared fixed endpoint: method + path template +
// canned response, optionally with a webhook and a conditional rule.
type CustomAPI struct {
	// ID is a unique identifier (UUID assigned at registration if empty).
	ID string `json:"id" yaml:"id"`

	// Method is the HTTP method this endpoint answers.
	Method string `json:"method" yaml:"method"`

	// Path is a literal or parameterized template, e.g. /users/:id.
	// Colon-prefixed segments bind exactly one path segment.
	Path string `json:"path" yaml:"path"`

	// StatusCode is the response status when no conditional override applies.
	StatusCode int `json:"statusCode" yaml:"statusCode"`

	// Body is the stored response body as raw JSON. A JSON null means
	// "emit an empty body"; absent means the same.
	Body json.RawMessage `json:"body,omitempty" yaml:"body,omitempty"`

	// WebhookURL, when set, receives a fire-and-forget POST on every hit.
	WebhookURL string `json:"webhookUrl,omitempty" yaml:"webhookUrl,omitempty"`

	// QueryParams documents the query parameters this endpoint expects.
	// Informational only; undeclared parameters are never rejected.
	QueryParams []QueryParam `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`

	// Conditional selects between two response templates at request time.
	Conditional *ConditionalRule `json:"conditional,omitempty" yaml:"conditional,omitempty"`

	// CreatedAt is when the definition was registered.
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// QueryParam documents a declared query parameter on a custom API.
type QueryParam struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Example     string `json:"example,omitempty" yaml:"example,omitempty"`
}

// HasBody reports whether the API declares a non-null response body.
func (a *CustomAPI) HasBody() bool {
	return len(a.Body) > 0 && !bytes.Equal(bytes.TrimSpace(a.Body), []byte("null"))
}

// Signature returns the "METHOD path" form used in diagnostics.
func (a *CustomAPI) Signature() string {
	return a.Method + " " + a.Path
}

// Field types a resource schema may declare.
const (
	FieldString   = "string"
	FieldNumber   = "number"
	FieldBoolean  = "boolean"
	FieldDate     = "date"
	FieldEmail    = "email"
	FieldUUID     = "uuid"
	FieldImage    = "image"
	FieldRelation = "relation"
)

// FieldTypes lists every allowed resource field type.
var FieldTypes = []string{
	FieldString, FieldNumber, FieldBoolean, FieldDate,
	FieldEmail, FieldUUID, FieldImage, FieldRelation,
}

// Resource is a user-declared virtual collection served as a dynamic
// CRUD endpoint. Name doubles as the public collection segment and the
// record store key.
type Resource struct {
	// ID is a unique identifier (UUID assigned at registration if empty).
	ID string `json:"id" yaml:"id"`

	// Name is the collection segment, e.g. "users" serves /users.
	Name string `json:"name" yaml:"name"`

	// Fields is the ordered record schema used for generation.
	Fields []Field `json:"fields" yaml:"fields"`

	// CreatedAt is when the definition was registered.
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Field is a single entry in a resource schema.
type Field struct {
	// Name is the record key.
	Name string `json:"name" yaml:"name"`

	// Type is one of the FieldTypes constants.
	Type string `json:"type" yaml:"type"`

	// Hint steers generation, e.g. "fullName" or "price" for strings
	// and numbers, or the related resource name for relations.
	Hint string `json:"hint,omitempty" yaml:"hint,omitempty"`

	// Required marks the field as always populated by generation.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
}

// Condition types understood by the conditional evaluator.
const (
	ConditionHeader       = "header"
	ConditionQuery        = "query"
	ConditionBody         = "body"
	ConditionDependentAPI = "dependentApi"
	ConditionExpression   = "expression"
)

// ConditionTypes lists every allowed condition type.
var ConditionTypes = []string{
	ConditionHeader, ConditionQuery, ConditionBody,
	ConditionDependentAPI, ConditionExpression,
}

// Operators understood by the conditional evaluator.
const (
	OpEquals      = "equals"
	OpNotEquals   = "notEquals"
	OpContains    = "contains"
	OpGreaterThan = "greaterThan"
	OpLessThan    = "lessThan"
	OpExists      = "exists"
)

// Operators lists every allowed condition operator.
var Operators = []string{
	OpEquals, OpNotEquals, OpContains, OpGreaterThan, OpLessThan, OpExists,
}

// Condition locates a request-time value and compares it against Value.
type Condition struct {
	// Type selects where the value comes from.
	Type string `json:"type" yaml:"type"`

	// Key names the header, query parameter, or body field. Ignored for
	// dependentApi and expression conditions.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Operator is one of the Operators constants. exists ignores Value.
	Operator string `json:"operator" yaml:"operator"`

	// Value is the comparison operand.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// DependentAPIID names another custom API whose response feeds the
	// comparison (dependentApi conditions only).
	DependentAPIID string `json:"dependentApiId,omitempty" yaml:"dependentApiId,omitempty"`

	// DependentAPIPath is a dot path into the dependent API's JSON
	// response, e.g. "data.user.role".
	DependentAPIPath string `json:"dependentApiPath,omitempty" yaml:"dependentApiPath,omitempty"`

	// Expression is a boolean expr-lang program over {headers, query,
	// body} (expression conditions only).
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// ConditionalRule selects between two response templates.
type ConditionalRule struct {
	Condition Condition `json:"condition" yaml:"condition"`

	// ResponseIfTrue / ResponseIfFalse are raw JSON bodies. An absent
	// branch falls back to the API's base body.
	ResponseIfTrue  json.RawMessage `json:"responseIfTrue,omitempty" yaml:"responseIfTrue,omitempty"`
	ResponseIfFalse json.RawMessage `json:"responseIfFalse,omitempty" yaml:"responseIfFalse,omitempty"`

	// StatusIfTrue / StatusIfFalse override the API status per branch.
	// Zero means "use the API's base status".
	StatusIfTrue  int `json:"statusCodeIfTrue,omitempty" yaml:"statusCodeIfTrue,omitempty"`
	StatusIfFalse int `json:"statusCodeIfFalse,omitempty" yaml:"statusCodeIfFalse,omitempty"`
}
