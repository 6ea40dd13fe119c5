package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
)

// Signal tells the pipeline driver what to do after a step.
type Signal uint8

const (
	// Continue runs the next step.
	Continue Signal = iota
	// Respond stops the pipeline; the step wrote the response.
	Respond
	// Fail stops the pipeline and hands the error to the error steps.
	Fail
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Respond:
		return "respond"
	case Fail:
		return "fail"
	}
	return fmt.Sprintf("signal(%d)", s)
}

var errStepFailed = errors.New("pipeline: step failed")

// Step is one unit of per-request processing.
// A non-nil error is a failure whatever the signal.
type Step struct {
	Run  func(c *Context) (Signal, error)
	Name string
}

// ErrorStep receives the failure of an earlier step.
// Respond ends the request; Continue passes the error on; an error
// replaces the one passed on.
type ErrorStep struct {
	Run  func(c *Context, err error) (Signal, error)
	Name string
}

// Pipeline runs a fixed list of steps for every request.
// It is immutable after NewPipeline returns.
type Pipeline struct {
	logger     *slog.Logger
	steps      []Step
	errorSteps []ErrorStep
}

// NewPipeline creates a pipeline. Step names must be unique.
func NewPipeline(logger *slog.Logger, steps []Step, errorSteps ...ErrorStep) *Pipeline {
	seen := make(map[string]bool, len(steps)+len(errorSteps))
	check := func(name string, run bool) {
		if name == "" || !run {
			panic("pipeline: step needs a name and a Run func")
		}
		if seen[name] {
			panic("pipeline: duplicate step " + name)
		}
		seen[name] = true
	}
	for _, s := range steps {
		check(s.Name, s.Run != nil)
	}
	for _, s := range errorSteps {
		check(s.Name, s.Run != nil)
	}

	return &Pipeline{
		logger:     logger,
		steps:      slices.Clone(steps),
		errorSteps: slices.Clone(errorSteps),
	}
}

// Names lists the step names in execution order, error steps last.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.steps)+len(p.errorSteps))
	for _, s := range p.steps {
		names = append(names, s.Name)
	}
	for _, s := range p.errorSteps {
		names = append(names, s.Name)
	}
	return names
}

// Serve runs the pipeline for c and makes sure a response is written.
func (p *Pipeline) Serve(c *Context) {
	defer c.runFinish()

	err := p.run(c)
	if err == nil {
		if !c.Written() {
			_ = c.String(http.StatusNotFound, fmt.Sprintf("Cannot %s %s", c.Method(), c.Path()))
		}
		return
	}

	err = p.recoverFailure(c, err)
	if err == nil {
		return
	}
	p.opaque(c, err)
}

func (p *Pipeline) run(c *Context) error {
	for _, s := range p.steps {
		sig, err := callStep(c, s)
		switch {
		case err != nil:
			return &StepError{Step: s.Name, Err: err}
		case sig == Fail:
			return &StepError{Step: s.Name, Err: errStepFailed}
		case sig == Respond, c.Written():
			return nil
		}
	}
	return nil
}

// recoverFailure offers err to the error steps and returns what is left
// unhandled.
func (p *Pipeline) recoverFailure(c *Context, err error) error {
	for _, s := range p.errorSteps {
		sig, stepErr := callErrorStep(c, s, err)
		if stepErr != nil {
			err = &StepError{Step: s.Name, Err: stepErr}
			continue
		}
		if sig == Respond || c.Written() {
			p.log(c, err, s.Name)
			return nil
		}
	}
	return err
}

// opaque answers with the status text only.
func (p *Pipeline) opaque(c *Context, err error) {
	p.log(c, err, "")
	if c.Written() {
		return
	}
	code := StatusCode(err)
	_ = c.String(code, http.StatusText(code))
}

func (p *Pipeline) log(c *Context, err error, handledBy string) {
	attrs := []any{
		slog.String("method", c.OriginalMethod),
		slog.String("path", c.Path()),
		slog.Int("status", StatusCode(err)),
		slog.String("error", err.Error()),
	}
	if handledBy != "" {
		attrs = append(attrs, slog.String("handled_by", handledBy))
	}

	var pe *PanicError
	if errors.As(err, &pe) {
		attrs = append(attrs, slog.String("stack", string(pe.Stack)))
	}

	level := slog.LevelError
	if StatusCode(err) < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	p.logger.Log(c.Context(), level, "request failed", attrs...)
}

func callStep(c *Context, s Step) (sig Signal, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig, err = Fail, &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return s.Run(c)
}

func callErrorStep(c *Context, s ErrorStep, failure error) (sig Signal, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig, err = Fail, &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return s.Run(c, failure)
}
