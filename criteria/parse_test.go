// SPDX-License-Identifier: MIT
package criteria

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	named := WithNamed(map[string]*Predicate{
		"Male":   male,
		"Female": female,
		"Single": single,
	})

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{name: "named", input: "male", want: []string{"Robert", "John", "Mike", "Bobby"}},
		{name: "equals", input: `eq(gender, "female")`, want: []string{"Laura", "Diana"}},
		{name: "and", input: "and(single,male)", want: []string{"Robert", "Mike", "Bobby"}},
		{name: "or", input: "OR(Single, Female)", want: []string{"Robert", "Diana", "Mike", "Bobby", "Laura"}},
		{name: "n-ary", input: "and(male, single, eq(name,mike))", want: []string{"Mike"}},
		{name: "nested", input: "or(and(female,single),eq(name,john))", want: []string{"Diana", "John"}},
		{name: "empty", input: "   ", wantErr: ErrEmptyExpression},
		{name: "unknown name", input: "and(single,married)", wantErr: ErrUnknownPredicate},
		{name: "unknown operator", input: "xor(single,male)", wantErr: ErrUnknownPredicate},
		{name: "single operand", input: "and(single)", wantErr: ErrArity},
		{name: "eq operands", input: "eq(a,b,c)", wantErr: ErrArity},
		{name: "missing end marker", input: "and(single,male", wantErr: ErrSyntax},
		{name: "trailing input", input: "male)", wantErr: ErrSyntax},
		{name: "unknown tokens", input: "male & single", wantErr: ErrSyntax},
		{name: "unterminated quote", input: `eq(dept,"Sales)`, wantErr: ErrSyntax},
		{name: "nested eq operand", input: "eq(and(a,b),c)", wantErr: ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(context.Background(), tt.input, named, WithLogger(logrus.New()))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.want, names(got.Evaluate(persons())))
		})
	}
}

func TestParse_roundTrip(t *testing.T) {
	predicates := []*Predicate{
		male,
		And(single, male),
		Or(single, And(FieldEquals("dept", "Head Sales"), FieldEquals("note", `say "hi", (now)`))),
	}

	for _, want := range predicates {
		t.Run(want.String(), func(t *testing.T) {
			got, err := Parse(context.Background(), want.String(), WithDebug(true))
			require.NoError(t, err)

			assert.Equal(t, want, got)
		})
	}
}

func TestParse_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, "and(single,male)")
	assert.Error(t, err)
}
