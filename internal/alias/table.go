// Package alias records which class table each stylesheet binding refers to.
package alias

import (
	"github.com/tdewolff/parse/v2/js"
	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/literal"
	"go.trai.ch/zerr"
)

// Table maps declaring variables to the class table of the literal they were
// bound to. Keys are bindings, not names, so a shadowing variable never
// resolves to an outer literal.
type Table struct {
	entries map[*js.Var]map[string]string
}

// New returns an empty table.
func New() *Table {
	return &Table{entries: make(map[*js.Var]map[string]string)}
}

// Set binds v to classes. A later Set for the same binding wins.
func (t *Table) Set(v *js.Var, classes map[string]string) {
	t.entries[literal.Binding(v)] = classes
}

// Get returns the class table bound to v.
func (t *Table) Get(v *js.Var) (map[string]string, bool) {
	classes, ok := t.entries[literal.Binding(v)]
	return classes, ok
}

// Resolve returns the scoped name of class in the table bound to v.
func (t *Table) Resolve(v *js.Var, class string) (string, error) {
	classes, ok := t.Get(v)
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownClassName, "resolve "+string(v.Name())), "class", class)
	}
	scoped, ok := classes[class]
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownClassName, "resolve "+string(v.Name())), "class", class)
	}
	return scoped, nil
}

// Len returns the number of bound variables.
func (t *Table) Len() int {
	return len(t.entries)
}
