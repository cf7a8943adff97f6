// Package conditional evaluates conditional response rules: locate a
// request-time value, compare it, and pick one of two response
// templates.
package conditional

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/ohler55/ojg/jp"

	"github.com/mockforge/mockforge/pkg/definition"
	"github.com/mockforge/mockforge/pkg/logging"
)

// Caller synchronously dispatches another custom API and returns its
// decoded JSON response. Implementations carry their own cycle and
// depth protection; any error means the condition evaluates false.
type Caller interface {
	CallCustomAPI(id string) (any, error)
}

// RequestContext exposes the parts of a request a condition can see.
type RequestContext struct {
	Headers http.Header
	Query   url.Values
	// Body is the parsed JSON request body; nil when absent or invalid.
	Body map[string]any
	// Caller resolves dependentApi conditions; may be nil.
	Caller Caller
}

// Outcome is the selected response template and status code.
type Outcome struct {
	Body   json.RawMessage
	Status int
}

// Evaluator applies conditional rules. Zero value is not usable; use
// New.
type Evaluator struct {
	log *slog.Logger
}

// New creates an Evaluator. A nil logger falls back to a no-op.
func New(log *slog.Logger) *Evaluator {
	if log == nil {
		log = logging.Nop()
	}
	return &Evaluator{log: log}
}

// Evaluate decides the branch for a rule. A branch without its own
// template falls back to the API's base body; a zero status override
// falls back to the API's base status. Lookup failures of any kind
// select the false branch, never an error.
func (e *Evaluator) Evaluate(api *definition.CustomAPI, rule *definition.ConditionalRule, req *RequestContext) Outcome {
	truthy := e.condition(rule.Condition, req)

	out := Outcome{Body: api.Body, Status: api.StatusCode}
	if truthy {
		if len(rule.ResponseIfTrue) > 0 {
			out.Body = rule.ResponseIfTrue
		}
		if rule.StatusIfTrue > 0 {
			out.Status = rule.StatusIfTrue
		}
	} else {
		if len(rule.ResponseIfFalse) > 0 {
			out.Body = rule.ResponseIfFalse
		}
		if rule.StatusIfFalse > 0 {
			out.Status = rule.StatusIfFalse
		}
	}
	return out
}

// condition resolves the condition's subject value and applies the
// operator.
func (e *Evaluator) condition(c definition.Condition, req *RequestContext) bool {
	switch c.Type {
	case definition.ConditionHeader:
		vals := req.Headers.Values(c.Key)
		if len(vals) == 0 {
			return applyOperator(c.Operator, nil, false, c.Value)
		}
		return applyOperator(c.Operator, vals[0], true, c.Value)

	case definition.ConditionQuery:
		if !req.Query.Has(c.Key) {
			return applyOperator(c.Operator, nil, false, c.Value)
		}
		return applyOperator(c.Operator, req.Query.Get(c.Key), true, c.Value)

	case definition.ConditionBody:
		v, ok := req.Body[c.Key]
		return applyOperator(c.Operator, v, ok, c.Value)

	case definition.ConditionDependentAPI:
		v, ok := e.dependentValue(c, req)
		return applyOperator(c.Operator, v, ok, c.Value)

	case definition.ConditionExpression:
		return e.expression(c.Expression, req)

	default:
		return false
	}
}

// dependentValue invokes the referenced custom API and extracts the
// value at the dot path. Any failure reads as "value absent".
func (e *Evaluator) dependentValue(c definition.Condition, req *RequestContext) (any, bool) {
	if req.Caller == nil || c.DependentAPIID == "" {
		return nil, false
	}

	resp, err := req.Caller.CallCustomAPI(c.DependentAPIID)
	if err != nil {
		e.log.Debug("dependent api call failed", "api_id", c.DependentAPIID, "error", err)
		return nil, false
	}
	if c.DependentAPIPath == "" {
		return resp, resp != nil
	}

	path := c.DependentAPIPath
	if !strings.HasPrefix(path, "$") {
		path = "$." + path
	}
	x, err := jp.ParseString(path)
	if err != nil {
		e.log.Debug("invalid dependent api path", "path", c.DependentAPIPath, "error", err)
		return nil, false
	}
	results := x.Get(resp)
	if len(results) == 0 || results[0] == nil {
		return nil, false
	}
	return results[0], true
}

// expression compiles and runs an expr program over the request.
// Compile or runtime failure, or a non-boolean result, is false.
func (e *Evaluator) expression(src string, req *RequestContext) bool {
	env := map[string]any{
		"headers": flatten(req.Headers),
		"query":   flatten(req.Query),
		"body":    req.Body,
	}

	prog, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		e.log.Debug("condition expression rejected", "expression", src, "error", err)
		return false
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		e.log.Debug("condition expression failed", "expression", src, "error", err)
		return false
	}
	b, _ := out.(bool)
	return b
}

// flatten lowercases keys and keeps first values, the shape expression
// programs index into.
func flatten(m map[string][]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, vals := range m {
		if len(vals) > 0 {
			out[strings.ToLower(k)] = vals[0]
		}
	}
	return out
}

// applyOperator compares the located value against the rule operand.
// exists checks presence/non-null only; the remaining operators
// coerce both sides to numbers when possible and otherwise compare
// string forms.
func applyOperator(op string, value any, present bool, operand string) bool {
	if op == definition.OpExists {
		return present && value != nil
	}
	if !present || value == nil {
		// Absent values are loosely unequal to everything.
		return op == definition.OpNotEquals
	}

	got := stringify(value)
	gotNum, gotIsNum := toNumber(value)
	wantFloat, errParse := strconv.ParseFloat(operand, 64)
	numeric := gotIsNum && errParse == nil

	switch op {
	case definition.OpEquals:
		if numeric {
			return gotNum == wantFloat
		}
		return got == operand
	case definition.OpNotEquals:
		if numeric {
			return gotNum != wantFloat
		}
		return got != operand
	case definition.OpContains:
		return strings.Contains(got, operand)
	case definition.OpGreaterThan:
		if numeric {
			return gotNum > wantFloat
		}
		return got > operand
	case definition.OpLessThan:
		if numeric {
			return gotNum < wantFloat
		}
		return got < operand
	default:
		return false
	}
}

// toNumber converts a JSON value to float64 when possible, including
// numeric strings.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// stringify renders a value for string comparison.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
