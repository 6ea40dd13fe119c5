package middlewares

import (
	"errors"
	"strings"

	"github.com/adness/starburst/internal"
)

// Diagnostic describes a failure as shown by the development error page.
type Diagnostic struct {
	Message   string   `json:"message"`
	Method    string   `json:"method"`
	Path      string   `json:"path"`
	RequestID string   `json:"request_id,omitempty"`
	Step      string   `json:"step,omitempty"`
	Stack     string   `json:"stack,omitempty"`
	Chain     []string `json:"chain"`
	Status    int      `json:"status"`
}

// Diagnose collects what the error page shows about err.
func Diagnose(c *internal.Context, err error) Diagnostic {
	d := Diagnostic{
		Status:    internal.StatusCode(err),
		Message:   err.Error(),
		Method:    c.OriginalMethod,
		Path:      c.Path(),
		RequestID: c.RequestID,
		Chain:     errorChain(err),
	}
	if httpErr := internal.AsHTTPError(err); httpErr != nil && httpErr.Message != "" {
		d.Message = httpErr.Message
	}

	var stepErr *internal.StepError
	if errors.As(err, &stepErr) {
		d.Step = stepErr.Step
	}
	var pe *internal.PanicError
	if errors.As(err, &pe) {
		d.Stack = string(pe.Stack)
	}
	return d
}

// ErrorHandler is the development diagnostic renderer. It answers every
// failure with a page describing it; JSON clients get the same data as JSON.
// Production pipelines leave it out.
func ErrorHandler() internal.ErrorStep {
	return internal.ErrorStep{
		Name: StepErrorHandler,
		Run: func(c *internal.Context, err error) (internal.Signal, error) {
			if c.Written() {
				return internal.Respond, nil
			}

			d := Diagnose(c, err)
			c.SetHeader("Cache-Control", "no-store")
			if prefersJSON(c.Header("Accept")) {
				return internal.Respond, c.JSON(d.Status, d)
			}
			return internal.Respond, c.Render(d.Status, DiagnosticPage(d))
		},
	}
}

// errorChain lists err and everything it wraps, depth first.
func errorChain(err error) []string {
	var chain []string
	var walk func(error)
	walk = func(e error) {
		for e != nil {
			chain = append(chain, e.Error())
			if multi, ok := e.(interface{ Unwrap() []error }); ok {
				for _, inner := range multi.Unwrap() {
					walk(inner)
				}
				return
			}
			e = errors.Unwrap(e)
		}
	}
	walk(err)
	return chain
}

// prefersJSON reports whether accept ranks JSON above HTML.
func prefersJSON(accept string) bool {
	jsonAt, htmlAt := -1, -1
	for i, part := range strings.Split(accept, ",") {
		mt, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		switch strings.ToLower(mt) {
		case "application/json":
			if jsonAt < 0 {
				jsonAt = i
			}
		case "text/html":
			if htmlAt < 0 {
				htmlAt = i
			}
		}
	}
	return jsonAt >= 0 && (htmlAt < 0 || jsonAt < htmlAt)
}
