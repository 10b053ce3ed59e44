// SPDX-License-Identifier: MIT
package criteria

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/patterns/lexer"
)

// Expression grammar:
//
//	expr  := name | op "(" args ")"
//	op    := "eq" | "and" | "or"
//	args  := value "," value        (eq)
//	       | expr "," expr {"," expr} (and, or; folded left)
//	value := bare word | JSON quoted string
//
// A name refers to a predicate registered with WithNamed.

type (
	// ParseConfig defines configuration options for [Parse].
	ParseConfig struct {
		Logger logrus.FieldLogger
		Debug  bool

		named map[string]*Predicate
	}

	// ParseOption defines the Parse functional option type.
	ParseOption func(*ParseConfig)

	parser struct {
		cfg *ParseConfig
		l   *lexer.Lexer

		peeked *lexer.Item
	}
)

const (
	opEquals = "eq"
	opAnd    = "and"
	opOr     = "or"

	minOperands = 2
)

// Parsing errors.
var (
	ErrSyntax           = errors.New("invalid expression syntax")
	ErrEmptyExpression  = errors.New("empty expression")
	ErrUnknownPredicate = errors.New("unknown predicate")
	ErrArity            = errors.New("invalid number of operands")
)

// WithNamed registers predicates referable by name (case-insensitive) in an expression.
func WithNamed(named map[string]*Predicate) ParseOption {
	return func(c *ParseConfig) {
		for name, p := range named {
			c.named[strings.ToLower(name)] = p
		}
	}
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) ParseOption {
	return func(c *ParseConfig) { c.Logger = logger }
}

// WithDebug configures the debug option.
func WithDebug(debug bool) ParseOption { return func(c *ParseConfig) { c.Debug = debug } }

// Parse reads an expression into a [Predicate].
func Parse(ctx context.Context, input string, options ...ParseOption) (pred *Predicate, err error) {
	cfg := &ParseConfig{
		Logger: logrus.New(),
		named:  make(map[string]*Predicate),
	}
	for _, opt := range options {
		opt(cfg)
	}

	defer func() {
		if err != nil {
			err = fmt.Errorf("parse (%s): %w", input, err)
		}
	}()

	parseCtx, parseCancel := context.WithCancel(ctx)

	l := lexer.New(
		lexer.WithSource(strings.NewReader(input)),
		lexer.WithLogger(cfg.Logger),
		lexer.WithDebug(cfg.Debug),
	)
	go l.Lex(parseCtx)

	defer func() {
		// Stop & drain the lexer.
		parseCancel()
		for {
			if _, proceed := l.Item(); !proceed {
				break
			}
		}
	}()

	p := &parser{cfg: cfg, l: l}
	if item := p.peek(); item.ID == lexer.ItemEOF {
		err = ErrEmptyExpression
		return
	}

	if pred, err = p.parseExpr(); err != nil {
		return
	}

	if item := p.next(); item.ID != lexer.ItemEOF {
		err = p.unexpected(item)
		return
	}

	if cfg.Debug {
		cfg.Logger.Debugf("parsed: %s", pred)
	}

	return
}

// next obtains the next lexed item, a closed lexer yields an ItemEOF.
func (p *parser) next() (item lexer.Item) {
	if p.peeked != nil {
		item, p.peeked = *p.peeked, nil
		return
	}

	item, proceed := p.l.Item()
	if !proceed {
		item = lexer.Item{ID: lexer.ItemEOF}
	}

	return
}

func (p *parser) peek() lexer.Item {
	if p.peeked == nil {
		item := p.next()
		p.peeked = &item
	}

	return *p.peeked
}

func (p *parser) unexpected(item lexer.Item) error {
	if item.ID == lexer.ItemError {
		return fmt.Errorf("%w: %v", ErrSyntax, item.Err)
	}

	return fmt.Errorf("%w: unexpected %s %q at %d", ErrSyntax, item.ID, item.Val, item.Pos)
}

func (p *parser) expect(id lexer.ItemID) (item lexer.Item, err error) {
	if item = p.next(); item.ID != id {
		err = p.unexpected(item)
	}

	return
}

func (p *parser) parseExpr() (pred *Predicate, err error) {
	item, err := p.expect(lexer.ItemValue)
	if err != nil {
		return
	}
	name := strings.ToLower(string(item.Val))

	if p.peek().ID != lexer.ItemOpenMarker {
		var ok bool
		if pred, ok = p.cfg.named[name]; !ok {
			err = fmt.Errorf("%w: %s", ErrUnknownPredicate, item.Val)
		}

		return
	}
	p.next()

	switch name {
	case opEquals:
		return p.parseEquals()
	case opAnd:
		return p.parseCombinator(And)
	case opOr:
		return p.parseCombinator(Or)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownPredicate, item.Val)
	}

	return
}

func (p *parser) parseEquals() (pred *Predicate, err error) {
	field, err := p.parseValue()
	if err != nil {
		return
	}

	if _, err = p.expect(lexer.ItemSplitter); err != nil {
		return
	}

	value, err := p.parseValue()
	if err != nil {
		return
	}

	if item := p.next(); item.ID != lexer.ItemEndMarker {
		if item.ID == lexer.ItemSplitter {
			err = fmt.Errorf("%w: %s takes %d operands", ErrArity, opEquals, minOperands)
			return
		}

		err = p.unexpected(item)
		return
	}

	return FieldEquals(field, value), nil
}

// parseCombinator reads two or more operands, combining them from the left.
func (p *parser) parseCombinator(combine func(left, right *Predicate) *Predicate) (pred *Predicate, err error) {
	var operands []*Predicate

	for {
		var operand *Predicate
		if operand, err = p.parseExpr(); err != nil {
			return
		}
		operands = append(operands, operand)

		item := p.next()
		if item.ID == lexer.ItemSplitter {
			continue
		}
		if item.ID != lexer.ItemEndMarker {
			err = p.unexpected(item)
			return
		}

		break
	}

	if len(operands) < minOperands {
		err = fmt.Errorf("%w: got %d, want at least %d", ErrArity, len(operands), minOperands)
		return
	}

	pred = operands[0]
	for _, operand := range operands[1:] {
		pred = combine(pred, operand)
	}

	return
}

func (p *parser) parseValue() (value string, err error) {
	item := p.next()

	switch item.ID {
	case lexer.ItemValue:
		value = string(item.Val)
	case lexer.ItemQuoted:
		if err = json.Unmarshal(item.Val, &value); err != nil {
			err = fmt.Errorf("%w: %v", ErrSyntax, err)
		}
	default:
		err = p.unexpected(item)
	}

	return
}

// isBare reports whether value lexes as a single bare word.
func isBare(value string) bool {
	if value == "" {
		return false
	}

	for _, r := range value {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.') {
			return false
		}
	}

	return true
}
