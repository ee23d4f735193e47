package conductor

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrMissingArgument  = errors.New("missing argument")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ParamKind describes how a flag value is validated
type ParamKind int

const (
	KindString ParamKind = iota
	KindPositiveInt
	KindChoice
)

// BodyMode describes where an operation takes its JSON body from
type BodyMode int

const (
	// BodyNone sends no caller body. POST and PUT still send "{}".
	BodyNone BodyMode = iota
	// BodyRequired takes the body from the last positional argument
	BodyRequired
	// BodyOptional takes the body from --body and falls back to "{}"
	BodyOptional
)

const emptyBody = "{}"

var booleanChoices = []string{"true", "false"}

// Arg is a positional argument substituted into the path template
type Arg struct {
	Name  string
	Usage string
}

// Flag is an optional argument sent as a query parameter.
// A flag with a Default is always sent; one without is sent only when set.
type Flag struct {
	Name    string
	Key     string // query key, Name when empty
	Usage   string
	Kind    ParamKind
	Default string
	Choices []string
}

// QueryKey returns the query parameter key the flag is sent as
func (f Flag) QueryKey() string {
	if f.Key != "" {
		return f.Key
	}
	return f.Name
}

// Validate checks a caller-supplied value against the flag kind
func (f Flag) Validate(value string) error {
	switch f.Kind {
	case KindPositiveInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s is not a valid positive integer value for --%s", ErrInvalidParameter, value, f.Name)
		}
	case KindChoice:
		if !slices.Contains(f.Choices, value) {
			return fmt.Errorf("%w: invalid choice '%s' for --%s (choose from %s)",
				ErrInvalidParameter, value, f.Name, strings.Join(f.Choices, ", "))
		}
	}
	return nil
}

// Operation maps one command onto one HTTP request shape
type Operation struct {
	Name   string
	Short  string
	Group  string
	Method string
	Path   string // template, {name} segments are filled from Args

	Args  []Arg
	Flags []Flag

	Body      BodyMode
	BodyName  string // positional name for BodyRequired
	BodyUsage string

	// ReturnsID marks operations whose body is a workflow instance id
	ReturnsID bool
}

// Params carries caller values for one operation invocation
type Params struct {
	Args  map[string]string
	Flags map[string]string // only the flags the caller set
	Body  *string
}

// Request is a method plus a path with its query string, relative to Config.BaseURL
type Request struct {
	Method string
	Path   string
	Body   *string
}

// Request builds the HTTP request shape for the given parameters
func (op *Operation) Request(p Params) (Request, error) {
	path := op.Path
	for _, arg := range op.Args {
		val, ok := p.Args[arg.Name]
		if !ok {
			return Request{}, fmt.Errorf("%w: %s requires <%s>", ErrMissingArgument, op.Name, arg.Name)
		}
		path = strings.ReplaceAll(path, "{"+arg.Name+"}", val)
	}

	for name := range p.Flags {
		if op.flag(name) == nil {
			return Request{}, fmt.Errorf("%w: %s has no flag --%s", ErrInvalidParameter, op.Name, name)
		}
	}

	var q query
	for _, f := range op.Flags {
		if val, ok := p.Flags[f.Name]; ok {
			if err := f.Validate(val); err != nil {
				return Request{}, err
			}
			q.add(f.QueryKey(), val)
		} else if f.Default != "" {
			q.add(f.QueryKey(), f.Default)
		}
	}
	path += q.encode()

	req := Request{Method: op.Method, Path: path}
	switch op.Body {
	case BodyRequired:
		if p.Body == nil {
			return Request{}, fmt.Errorf("%w: %s requires <%s>", ErrMissingArgument, op.Name, op.BodyName)
		}
		req.Body = p.Body
	case BodyOptional:
		body := emptyBody
		if p.Body != nil {
			body = *p.Body
		}
		req.Body = &body
	}

	return req, nil
}

func (op *Operation) flag(name string) *Flag {
	for i := range op.Flags {
		if op.Flags[i].Name == name {
			return &op.Flags[i]
		}
	}
	return nil
}

// Use returns the cobra-style usage line, e.g. "getWorkflow <workflowId>"
func (op *Operation) Use() string {
	parts := []string{op.Name}
	for _, arg := range op.Args {
		parts = append(parts, "<"+arg.Name+">")
	}
	if op.Body == BodyRequired {
		parts = append(parts, "<"+op.BodyName+">")
	}
	return strings.Join(parts, " ")
}

// Positional returns the number of positional arguments the command takes
func (op *Operation) Positional() int {
	n := len(op.Args)
	if op.Body == BodyRequired {
		n++
	}
	return n
}
