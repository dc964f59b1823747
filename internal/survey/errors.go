package survey

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrReachLengthCustomRequired blocks an insert whose reach length is
	// "other" but carries no custom length.
	ErrReachLengthCustomRequired = errors.New("reach length is other but no custom length was given")

	ErrNotFound = errors.New("survey not found")
)

// ValidationErrors collects everything wrong with a submission. Fields is
// keyed by form field name; Form holds errors that belong to no single
// field.
type ValidationErrors struct {
	Fields map[string][]string
	Form   []string
}

func (e *ValidationErrors) AddField(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationErrors) AddForm(msg string) {
	e.Form = append(e.Form, msg)
}

func (e *ValidationErrors) HasField(field string) bool {
	return e != nil && len(e.Fields[field]) > 0
}

func (e *ValidationErrors) Empty() bool {
	return e == nil || (len(e.Fields) == 0 && len(e.Form) == 0)
}

func (e *ValidationErrors) clone() *ValidationErrors {
	out := &ValidationErrors{}
	if e == nil {
		return out
	}
	for f, msgs := range e.Fields {
		for _, m := range msgs {
			out.AddField(f, m)
		}
	}
	out.Form = append(out.Form, e.Form...)
	return out
}

func (e *ValidationErrors) Error() string {
	var parts []string
	parts = append(parts, e.Form...)

	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], " ")))
	}
	return "invalid survey: " + strings.Join(parts, "; ")
}
