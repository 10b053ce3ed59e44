// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go
// REF: https://www.youtube.com/watch?v=HxaD_trXwRE

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func(context.Context) NextOperation

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer defines a type to capture identifiers, quoted values & markers from a source.
	Lexer struct {
		debug      bool
		openMarker rune
		endMarker  rune
		splitter   rune
		logger     logrus.FieldLogger

		// c is a channel for communicating lexed Items.
		c chan Item

		// source is the input source.
		source io.RuneReader

		// buffer is a slice of runes being lexed.
		buffer []rune
		//  bufferIndex is the current buffer position.
		//
		// When this value exceeds the length of buffer, the buffer is populated from the source.
		bufferIndex int

		// pos is the byte offset of buffer[0] in the source.
		pos int

		openCounter int
		endCounter  int
	}

	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

const (
	// DefaultOpenMarker is the rune opening a list of arguments.
	DefaultOpenMarker = '('

	// DefaultEndMarker is the rune closing a list of arguments.
	DefaultEndMarker = ')'

	// DefaultSplitter is the rune separating arguments.
	DefaultSplitter = ','

	quote     = '"'
	escape    = '\\'
	emptyRune = rune(0)

	errContextLimit = 32
	defBufferSize   = 10
)

// Lexing errors.
var (
	ErrInvalidPeekLength   = errors.New("invalid peek length")
	ErrInvalidBackupAmount = errors.New("invalid backup amount")
	ErrUnknownTokens       = errors.New("unknown tokens")
	ErrUnterminatedQuote   = errors.New("unterminated quoted value")
)

// Improves on performance compared to ORs.
//
// Reduces function cost improving probalility of inlining.
var (
	whitespace = [256]bool{
		' ':  true,
		'\t': true,
		'\r': true,
		'\n': true,
	}

	alphaSymbols = [256]bool{
		'_': true,
		'-': true,
		'.': true,
	}
)

// New creates a new scanner for the configured source.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		openMarker: DefaultOpenMarker,
		endMarker:  DefaultEndMarker,
		splitter:   DefaultSplitter,
		logger:     logrus.New(),

		c: make(chan Item, defBufferSize),

		buffer: make([]rune, 0, defBufferSize),
		source: strings.NewReader(""),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithOpenMarker configures the openMarker option.
func WithOpenMarker(r rune) Option { return func(l *Lexer) { l.openMarker = r } }

// WithEndMarker configures the endMarker option.
func WithEndMarker(r rune) Option { return func(l *Lexer) { l.endMarker = r } }

// WithSplitter configures the splitter option.
func WithSplitter(r rune) Option { return func(l *Lexer) { l.splitter = r } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.source = source } }

// OpenMarker obtains the configured open marker.
func (l *Lexer) OpenMarker() rune { return l.openMarker }

// EndMarker obtains the configured end marker.
func (l *Lexer) EndMarker() rune { return l.endMarker }

// Splitter obtains the configured splitter.
func (l *Lexer) Splitter() rune { return l.splitter }

// OpenCounter obtains the number of lexed open markers.
func (l *Lexer) OpenCounter() int { return l.openCounter }

// EndCounter obtains the number of lexed end markers.
func (l *Lexer) EndCounter() int { return l.endCounter }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Lex lexes the input by executing state functions.
//
// The Item channel is closed on return; canceling ctx stops the lexer.
func (l *Lexer) Lex(ctx context.Context) {
	defer close(l.c)

	for stateFunction := l.LexWhitespace; stateFunction != nil; {
		select {
		case <-ctx.Done():
			l.EmitError(ctx, ctx.Err())
			return
		default:
			stateFunction = stateFunction(ctx)
		}
	}
}

// LexWhitespace discards whitespace & dispatches on the following rune.
func (l *Lexer) LexWhitespace(ctx context.Context) NextOperation {
	// Ignore white spaces, discard instead of emit; io.EOF is handled by Next.
	_ = l.AcceptWhile(isWhitespace)
	l.Discard()

	next := l.Next()
	switch {
	case next == emptyRune:
		l.EmitEOF(ctx)
		return nil
	case next == l.openMarker:
		l.openCounter++
		l.Emit(ctx, ItemOpenMarker)
	case next == l.endMarker:
		l.endCounter++
		l.Emit(ctx, ItemEndMarker)
	case next == l.splitter:
		l.Emit(ctx, ItemSplitter)
	case next == quote:
		return l.LexQuoted
	case isValue(next):
		return l.LexValue
	default:
		if err := l.Backup(); err != nil {
			l.EmitError(ctx, err)
			return nil
		}

		nextRunes, _ := l.PeekN(errContextLimit)
		l.EmitError(ctx, fmt.Errorf("%w at %d: %s", ErrUnknownTokens, l.pos, string(nextRunes)))

		return nil
	}

	return l.LexWhitespace
}

// LexValue captures a bare word.
func (l *Lexer) LexValue(ctx context.Context) NextOperation {
	// A value may terminate the source.
	_ = l.AcceptWhile(isValue)
	l.Emit(ctx, ItemValue)

	return l.LexWhitespace
}

// LexQuoted captures a quoted value, the opening quote having been consumed.
//
// Escaped runes are kept as is, decoding is left to the consumer.
func (l *Lexer) LexQuoted(ctx context.Context) NextOperation {
	for {
		switch l.Next() {
		case emptyRune:
			l.EmitError(ctx, fmt.Errorf("%w at %d", ErrUnterminatedQuote, l.pos))
			return nil
		case escape:
			if l.Next() == emptyRune {
				l.EmitError(ctx, fmt.Errorf("%w at %d", ErrUnterminatedQuote, l.pos))
				return nil
			}
		case quote:
			l.Emit(ctx, ItemQuoted)
			return l.LexWhitespace
		}
	}
}

// Next return the Next rune in the input.
func (l *Lexer) Next() (r rune) {
	if l.bufferIndex >= len(l.buffer) {
		// Request data from the source.
		if l.Source(0) < 1 {
			r = emptyRune
			return
		}
	}

	r = l.buffer[l.bufferIndex]
	l.bufferIndex++

	return
}

// Peek return the next rune, without updating the index.
func (l *Lexer) Peek() (r rune, err error) {
	list, err := l.PeekN(1)
	if err != nil {
		return
	}
	r = list[0]

	return
}

// PeekN return the next N runes, without updating the index.
//
// This operation will return a shorter slice if the the end of the source is reached.
func (l *Lexer) PeekN(n int) (list []rune, err error) {
	if n < 1 {
		err = fmt.Errorf("%w: %d", ErrInvalidPeekLength, n)
		return
	}

	if missing := l.bufferIndex + n - len(l.buffer); missing > 0 {
		// Request data from the source.
		l.Source(missing)
	}

	limit := min(l.bufferIndex+n, len(l.buffer))
	if limit <= l.bufferIndex {
		err = io.EOF
		return
	}
	list = l.buffer[l.bufferIndex:limit]

	return
}

// Backup step back one rune.
func (l *Lexer) Backup() error { return l.BackupN(1) }

// BackupN step back N runes.
func (l *Lexer) BackupN(n int) (err error) {
	if l.bufferIndex < n {
		err = fmt.Errorf("%w: amount %d index: %d", ErrInvalidBackupAmount, n, l.bufferIndex)
		return
	}
	l.bufferIndex -= n

	return
}

// Discard the buffer content before the current buffer index.
func (l *Lexer) Discard() {
	for _, r := range l.buffer[:l.bufferIndex] {
		l.pos += utf8.RuneLen(r)
	}

	l.buffer = l.buffer[l.bufferIndex:]
	l.bufferIndex = 0
}

// Source runes from the source reader.
func (l *Lexer) Source(amount int) (sourced int) {
	if amount < defBufferSize {
		amount = defBufferSize
	}

	buffer := make([]rune, amount)
	for ; sourced < amount; sourced++ {
		// NOTE: Function cost reduced by swapping the error check's condition.
		if r, _, err := l.source.ReadRune(); err == nil {
			buffer[sourced] = r
			continue
		}

		// Error can only be io.EOF
		break
	}

	l.buffer = append(l.buffer, buffer[:sourced]...)

	return
}

// AcceptWhile consumes runes while condition is true.
//
// io.EOF is returned when the source is exhausted.
func (l *Lexer) AcceptWhile(fn ValidationFunction) (err error) {
	for {
		r := l.Next()
		if r == emptyRune {
			// End of input.
			return io.EOF
		}

		// End of current token type.
		if !fn(r) {
			// An error at this point should never occur; unless the Lexer is modified externally.
			return l.Backup()
		}
	}
}

// Emit sends an Item over the communication channel.
func (l *Lexer) Emit(ctx context.Context, t ItemID) {
	item := Item{
		ID:  t,
		Val: []byte(string(l.buffer[:l.bufferIndex])),
		Pos: l.pos,
	}

	if l.debug {
		// Debug operation makes this operation un-inlinable.
		l.logger.Debugf("lexer emit %s: %s", t, item.Val)
	}

	l.send(ctx, item)
	l.Discard()
}

// EmitEOF sends an ItemEOF Item over the communication channel.
func (l *Lexer) EmitEOF(ctx context.Context) { l.send(ctx, Item{ID: ItemEOF, Pos: l.pos}) }

// EmitError sends an error over the Lexer's channel.
//
// This terminates the scan process with an error or an ItemEOF for io.EOF.
func (l *Lexer) EmitError(ctx context.Context, err error) {
	if errors.Is(err, io.EOF) {
		l.EmitEOF(ctx)
		return
	}

	l.send(ctx, Item{ID: ItemError, Err: err, Pos: l.pos})
}

// send an Item unless the consumer has gone away.
func (l *Lexer) send(ctx context.Context, item Item) {
	select {
	case l.c <- item:
	case <-ctx.Done():
	}
}

// Item return a lexed Item from the input.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.c
	return
}

// isWhitespace return true for whitespace, newline & carrier return.
func isWhitespace(r rune) bool { return r < 256 && whitespace[r] }

// isAlpha return true for an alphabetic sequence.
func isAlpha(r rune) bool { return (r < 256 && alphaSymbols[r]) || unicode.IsLetter(r) }

// isNumeric return true for a real number.
func isNumeric(r rune) bool { return unicode.IsDigit(r) }

// isValue return true for an alphanumeric sequence.
func isValue(r rune) bool { return isAlpha(r) || isNumeric(r) }
