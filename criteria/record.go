// SPDX-License-Identifier: MIT
package criteria

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	// Field is a named string value held by a [Record].
	Field struct {
		Name  string
		Value string
	}

	// Record defines an immutable, ordered set of fields.
	//
	// Records are compared by identity: two records holding identical fields are distinct.
	Record struct {
		fields []Field
	}
)

const (
	defRecordKind = "Record"

	describeFieldFmt = "%s : %s"
)

// NewRecord instantiates a [Record], copying its fields.
//
// A repeated field name overrides the earlier value, keeping the earlier position.
func NewRecord(fields ...Field) *Record {
	r := &Record{fields: make([]Field, 0, len(fields))}

	index := make(map[string]int, len(fields))
	for _, field := range fields {
		if pos, ok := index[field.Name]; ok {
			r.fields[pos].Value = field.Value
			continue
		}

		index[field.Name] = len(r.fields)
		r.fields = append(r.fields, field)
	}

	return r
}

// Get retrieves a field's value.
func (r *Record) Get(name string) (value string, ok bool) {
	if r == nil {
		return
	}

	for _, field := range r.fields {
		if field.Name == name {
			return field.Value, true
		}
	}

	return
}

// Fields lists a copy of the [Record]'s fields.
func (r *Record) Fields() []Field { return append([]Field{}, r.fields...) }

// Names lists the [Record]'s field names in order.
func (r *Record) Names() (names []string) {
	names = make([]string, len(r.fields))
	for index := range r.fields {
		names[index] = r.fields[index].Name
	}

	return
}

// Describe renders the [Record] prefixed by a kind, e.g.
// `Person : [ Name : Robert, Gender : Male, Marital Status : Single ]`.
func (r *Record) Describe(kind string) string {
	described := make([]string, len(r.fields))
	for index, field := range r.fields {
		described[index] = fmt.Sprintf(describeFieldFmt, Label(field.Name), field.Value)
	}

	return fmt.Sprintf("%s : [ %s ]", kind, strings.Join(described, ", "))
}

// String is the fmt.Stringer implementation for [Record].
func (r *Record) String() string { return r.Describe(defRecordKind) }

// Label converts a field name into a display label: `maritalStatus` & `marital_status` yield
// `Marital Status`.
func Label(name string) string {
	var words strings.Builder

	prev := rune(0)
	for _, r := range name {
		switch {
		case r == '_' || r == '-':
			r = ' '
		case unicode.IsUpper(r) && prev != 0 && prev != ' ' && !unicode.IsUpper(prev):
			words.WriteRune(' ')
		}

		words.WriteRune(r)
		prev = r
	}

	// A Caser is stateful, it is not shared between goroutines.
	return cases.Title(language.English).String(words.String())
}
