package main

import (
	"fmt"
	"strings"
)

// Registry maps pycodestyle warning codes to human-readable
// descriptions. Iteration order is insertion order.
type Registry struct {
	keys  []string
	descs map[string]string
}

func NewRegistry() *Registry {
	return &Registry{descs: map[string]string{}}
}

// defaultRegistry returns the codes suppressed by default. These are
// mostly continuation-line indentation rules that fight common editor
// defaults.
func defaultRegistry() *Registry {
	r := NewRegistry()
	r.Add("E121", "indentation is not a multiple of four")
	r.Add("E122", "missing indentation or outdented")
	r.Add("E123", "closing bracket does not match indentation of opening brackets line")
	r.Add("E124", "closing bracket does not match visual indentation")
	r.Add("E125", "continuation line does not distinguish itself from next logical line")
	r.Add("E126", "over-indented for hanging indent")
	r.Add("E127", "over-indented for visual indent")
	r.Add("E128", "continuation line under-indented for visual indent")
	r.Add("E302", "expected 2 blank lines")
	r.Add("E501", "line too long")
	r.Add("W391", "blank line at end of file")
	return r
}

// Add appends a code, or updates its description if already present.
func (r *Registry) Add(code, desc string) {
	if _, ok := r.descs[code]; !ok {
		r.keys = append(r.keys, code)
	}
	r.descs[code] = desc
}

// Remove returns a new registry without the given codes. The receiver
// is left untouched. Any unknown code fails the whole removal.
func (r *Registry) Remove(codes []string) (*Registry, error) {
	drop := map[string]bool{}
	for _, code := range codes {
		if _, ok := r.descs[code]; !ok {
			return nil, fmt.Errorf("unknown warning code %q", code)
		}
		drop[code] = true
	}
	out := NewRegistry()
	for _, key := range r.keys {
		if !drop[key] {
			out.Add(key, r.descs[key])
		}
	}
	return out, nil
}

func (r *Registry) Keys() []string {
	return append([]string{}, r.keys...)
}

func (r *Registry) Description(code string) (string, bool) {
	desc, ok := r.descs[code]
	return desc, ok
}

// Joined renders the keys as a pycodestyle --ignore argument value.
func (r *Registry) Joined() string {
	return strings.Join(r.keys, ",")
}

func (r *Registry) Len() int {
	return len(r.keys)
}

// splitCodes splits a comma-separated list of warning codes, trimming
// surrounding whitespace and dropping empty entries.
func splitCodes(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
