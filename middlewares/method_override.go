package middlewares

import (
	"net/http"
	"strings"

	"github.com/adness/starburst/internal"
)

// Method override sources.
const (
	MethodOverrideField  = "_method"
	MethodOverrideHeader = "X-HTTP-Method-Override"
)

var overridableMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// MethodOverride rewrites the request method from the _method body field.
// The X-HTTP-Method-Override header, when present, takes precedence over the
// field. The field is always removed from the body. Unknown methods are
// ignored. Context.OriginalMethod keeps the method the client sent.
func MethodOverride() internal.Step {
	return internal.Step{
		Name: StepMethodOverride,
		Run: func(c *internal.Context) (internal.Signal, error) {
			m := takeOverrideField(c)
			if h := c.Header(MethodOverrideHeader); h != "" {
				m = h
			}
			m = strings.ToUpper(strings.TrimSpace(m))
			if overridableMethods[m] {
				c.SetMethod(m)
			}
			return internal.Continue, nil
		},
	}
}

func takeOverrideField(c *internal.Context) string {
	if c.Form.Has(MethodOverrideField) {
		m := c.Form.Get(MethodOverrideField)
		c.Form.Del(MethodOverrideField)
		return m
	}
	if v, ok := c.Body[MethodOverrideField]; ok {
		delete(c.Body, MethodOverrideField)
		m, _ := v.(string)
		return m
	}
	return ""
}
