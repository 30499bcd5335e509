// Package ident interns identifier strings into stable integer IDs.
//
// Cotton source identifiers (variable names, field names, method names)
// are compared and hashed constantly during evaluation — by the scope
// stack on every lookup, by the object model on every method-table probe.
// Interning them once into a dense uint64 ID turns those comparisons into
// integer equality and lets every other component (scope frames, method
// tables, record payloads) key on ID rather than string.
package ident

import "fmt"

// ID is a stable identifier for an interned name. IDs are assigned in
// allocation order starting at 1; 0 is reserved as the zero-value "no
// name" sentinel so a zero ID is never mistaken for a valid intern.
type ID uint64

// Table interns strings into IDs for the lifetime of a single Runtime.
// A Table is not safe for concurrent use; the evaluator that owns it runs
// on a single goroutine, matching the single-threaded execution model.
type Table struct {
	byName map[string]ID
	names  []string // names[id-1] == the name registered for id
}

// NewTable creates an empty name table.
func NewTable() *Table {
	return &Table{
		byName: make(map[string]ID, 64),
		names:  make([]string, 0, 64),
	}
}

// Intern returns the stable ID for name, allocating a new one the first
// time name is seen. Intern is total and idempotent: the same string
// always yields the same ID for the lifetime of the table.
func (t *Table) Intern(name string) ID {
	if id, ok := t.byName[name]; ok {
		return id
	}
	t.names = append(t.names, name)
	id := ID(len(t.names))
	t.byName[name] = id
	return id
}

// NameOf reverse-looks-up the string registered for id. It panics if id
// was never returned by Intern on this table — that is a programmer
// error (a corrupted or foreign ID), never a condition user scripts can
// trigger.
func (t *Table) NameOf(id ID) string {
	if id == 0 || int(id) > len(t.names) {
		panic(fmt.Sprintf("ident: invalid id %d", id))
	}
	return t.names[id-1]
}

// Lookup reports whether name has already been interned, without
// allocating a new ID.
func (t *Table) Lookup(name string) (ID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Len returns the number of distinct names interned so far.
func (t *Table) Len() int {
	return len(t.names)
}
