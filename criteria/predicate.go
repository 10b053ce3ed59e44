// SPDX-License-Identifier: MIT
package criteria

import (
	"encoding/json"
	"fmt"
	"strings"
)

type (
	// Kind tags the variant held by a [Predicate].
	Kind int

	// Predicate defines a closed expression over records: a field test or an And/Or of two
	// predicates.
	//
	// Predicates hold no reference to the records they filter & can be evaluated any number of
	// times.
	Predicate struct {
		kind Kind

		// field & value are set for KindFieldEquals.
		field string
		value string

		// left & right are set for KindAnd & KindOr.
		left  *Predicate
		right *Predicate
	}
)

// Predicate variants.
const (
	_ Kind = iota // The zero Predicate matches nothing.
	KindFieldEquals
	KindAnd
	KindOr
)

var kindNames = map[Kind]string{
	KindFieldEquals: opEquals,
	KindAnd:         opAnd,
	KindOr:          opOr,
}

// String is the fmt.Stringer implementation for Kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "invalid"
}

// FieldEquals instantiates a leaf [Predicate] matching records whose field equals value,
// ignoring case.
func FieldEquals(field, value string) *Predicate {
	return &Predicate{kind: KindFieldEquals, field: field, value: value}
}

// And instantiates a [Predicate] narrowing left's matches with right.
func And(left, right *Predicate) *Predicate {
	return &Predicate{kind: KindAnd, left: left, right: right}
}

// Or instantiates a [Predicate] matching left's matches followed by right's new matches.
func Or(left, right *Predicate) *Predicate {
	return &Predicate{kind: KindOr, left: left, right: right}
}

// Kind obtains the [Predicate]'s variant.
func (p *Predicate) Kind() Kind { return p.kind }

// Field obtains the tested field & value of a KindFieldEquals [Predicate].
func (p *Predicate) Field() (field, value string) { return p.field, p.value }

// Operands obtains the left & right operands of a KindAnd or KindOr [Predicate].
func (p *Predicate) Operands() (left, right *Predicate) { return p.left, p.right }

// Evaluate filters records with the [Predicate]; see [Evaluate].
func (p *Predicate) Evaluate(records []*Record) []*Record { return Evaluate(p, records) }

// Evaluate returns the records satisfying a [Predicate].
//
//   - FieldEquals keeps the records, in order, whose field upper-cased equals the upper-cased
//     value; a record lacking the field does not match.
//   - And evaluates right against left's output.
//   - Or evaluates both operands against records, returning left's output followed by right's
//     output absent from it; membership is by record identity.
//
// records is never modified; the result is a new, non-nil slice. A nil Predicate matches every
// record.
func Evaluate(p *Predicate, records []*Record) (matches []*Record) {
	if p == nil {
		return append(make([]*Record, 0, len(records)), records...)
	}

	switch p.kind {
	case KindFieldEquals:
		matches = make([]*Record, 0)
		target := strings.ToUpper(p.value)
		for _, r := range records {
			if value, ok := r.Get(p.field); ok && strings.ToUpper(value) == target {
				matches = append(matches, r)
			}
		}
	case KindAnd:
		// Sequential narrowing.
		matches = Evaluate(p.right, Evaluate(p.left, records))
	case KindOr:
		matches = Evaluate(p.left, records)

		seen := make(map[*Record]struct{}, len(matches))
		for _, r := range matches {
			seen[r] = struct{}{}
		}

		for _, r := range Evaluate(p.right, records) {
			if _, ok := seen[r]; ok {
				continue
			}

			seen[r] = struct{}{}
			matches = append(matches, r)
		}
	default:
		matches = make([]*Record, 0)
	}

	return
}

// String renders the [Predicate] in the syntax read by [Parse].
//
// Only well-formed trees round-trip: a nil operand renders empty & an unknown kind renders as
// "invalid", both rejected by [Parse].
func (p *Predicate) String() string {
	if p == nil {
		return ""
	}

	switch p.kind {
	case KindFieldEquals:
		return fmt.Sprintf("%s(%s,%s)", opEquals, quoteValue(p.field), quoteValue(p.value))
	case KindAnd, KindOr:
		return fmt.Sprintf("%s(%s,%s)", p.kind, p.left, p.right)
	default:
		return p.kind.String()
	}
}

// quoteValue leaves bare words as is, quoting anything else as a JSON string.
func quoteValue(value string) string {
	if isBare(value) {
		return value
	}

	// Marshalling a string does not fail.
	quoted, _ := json.Marshal(value)

	return string(quoted)
}
