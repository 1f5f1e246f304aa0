// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// deadliner is implemented by net.Conn and tls.Conn.
type deadliner interface {
	SetDeadline(t time.Time) error
}

// Conn speaks the RouterOS API sentence protocol over a byte stream.
//
// A Conn is not safe for concurrent use; one conversation runs at a time.
type Conn struct {
	rw     io.ReadWriter
	r      *bufio.Reader
	logger Logger
}

// NewConn wraps rw. A nil logger disables logging.
func NewConn(rw io.ReadWriter, logger Logger) *Conn {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &Conn{rw: rw, r: bufio.NewReader(rw), logger: logger}
}

// bind applies the context deadline to the transport and arranges for
// cancellation to unblock pending I/O. The returned func undoes both and
// waits for a cancellation that is already in flight, so no stale deadline
// outlives the conversation.
func (c *Conn) bind(ctx context.Context) func() {
	d, ok := c.rw.(deadliner)
	if !ok {
		return func() {}
	}
	if deadline, has := ctx.Deadline(); has {
		_ = d.SetDeadline(deadline)
	}
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = d.SetDeadline(time.Unix(1, 0))
		close(fired)
	})
	return func() {
		if !stop() {
			<-fired
		}
		_ = d.SetDeadline(time.Time{})
	}
}

// ctxErr prefers the context error over the I/O error it caused. The
// transport deadline can fire before the context timer does.
func ctxErr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
			return context.DeadlineExceeded
		}
	}
	return err
}

// WriteSentence writes words followed by the terminator in one write.
func (c *Conn) WriteSentence(ctx context.Context, words ...Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf []byte
	for _, w := range words {
		payload := EncodeWord(w)
		buf = AppendLength(buf, uint32(len(payload)))
		buf = append(buf, payload...)
		c.logger.Debug(ctx, "api send", "word", redactWord(w))
	}
	buf = AppendLength(buf, 0)
	if _, err := c.rw.Write(buf); err != nil {
		return &TransportError{Op: "write", Err: ctxErr(ctx, err)}
	}
	return nil
}

// readRaw reads one length-prefixed payload.
func (c *Conn) readRaw() ([]byte, error) {
	n, err := ReadLength(c.r)
	if err != nil {
		if errors.Is(err, ErrUnsupportedLength) {
			return nil, err
		}
		return nil, &TransportError{Op: "read", Err: err}
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}
	return buf, nil
}

// ReadWord reads and parses one word. A nil Word is a sentence terminator.
func (c *Conn) ReadWord(ctx context.Context) (Word, error) {
	raw, err := c.readRaw()
	if err != nil {
		return nil, ctxErr(ctx, err)
	}
	w, err := ParseWord(raw)
	if err != nil {
		return nil, err
	}
	if w != nil {
		c.logger.Debug(ctx, "api recv", "word", w.String())
	}
	return w, nil
}

// readFatal consumes the rest of a !fatal sentence. The reason follows as
// a bare word without a prefix, so it is read raw.
func (c *Conn) readFatal(ctx context.Context) error {
	var reason []string
	for {
		raw, err := c.readRaw()
		if err != nil {
			return ctxErr(ctx, err)
		}
		if raw == nil {
			break
		}
		if w, err := ParseWord(raw); err == nil {
			if a, ok := w.(Attribute); ok && a.Key == "message" {
				reason = append(reason, a.Value)
				continue
			}
		}
		reason = append(reason, string(raw))
	}
	return &TrapError{Message: strings.Join(reason, " "), Fatal: true}
}

// Talk sends sentence and passes every reply word to onWord until the
// conversation ends.
//
// A "!re", "!trap" or "!empty" reply opens a sentence whose terminator does
// not end the conversation; the terminator of any other reply sentence does. Errors
// returned by onWord are collected and returned together once the
// conversation is complete, so callers always see every row.
func (c *Conn) Talk(ctx context.Context, sentence []Word, onWord func(Word) error) error {
	release := c.bind(ctx)
	defer release()

	if err := c.WriteSentence(ctx, sentence...); err != nil {
		return err
	}

	var errs error
	inData := false
	for {
		w, err := c.ReadWord(ctx)
		if err != nil {
			return multierr.Append(errs, err)
		}
		switch w := w.(type) {
		case nil:
			if !inData {
				return errs
			}
			inData = false
		case Reply:
			switch w.Type {
			case ReplyData, ReplyTrap, ReplyEmpty:
				inData = true
			case ReplyFatal:
				errs = multierr.Append(errs, onWord(w))
				return multierr.Append(errs, c.readFatal(ctx))
			}
			errs = multierr.Append(errs, onWord(w))
		default:
			errs = multierr.Append(errs, onWord(w))
		}
	}
}

// TalkAll sends sentence and returns all reply words.
func (c *Conn) TalkAll(ctx context.Context, sentence ...Word) ([]Word, error) {
	var words []Word
	err := c.Talk(ctx, sentence, func(w Word) error {
		words = append(words, w)
		return nil
	})
	return words, err
}

// Login authenticates with the plain-text method used by RouterOS 6.43 and later.
func (c *Conn) Login(ctx context.Context, username, password string) error {
	words, err := c.TalkAll(ctx,
		Command{Path: "login"},
		Attribute{Key: "name", Value: username},
		Attribute{Key: "password", Value: password},
	)
	if err != nil {
		return err
	}
	if len(words) > 0 {
		if r, ok := words[0].(Reply); ok && r.Type == ReplyDone {
			return nil
		}
	}
	if trap := trapFromWords(words); trap != nil {
		return errors.Join(ErrLoginFailed, trap)
	}
	return ErrLoginFailed
}

// trapFromWords returns the first !trap in a reply as a *TrapError, or nil.
func trapFromWords(words []Word) error {
	var trap *TrapError
	for _, w := range words {
		switch w := w.(type) {
		case Reply:
			if trap != nil {
				return trap
			}
			if w.Type == ReplyTrap || w.Type == ReplyFatal {
				trap = &TrapError{Fatal: w.Type == ReplyFatal}
			}
		case Attribute:
			if trap == nil {
				continue
			}
			switch w.Key {
			case "message":
				trap.Message = w.Value
			case "category":
				trap.Category = w.Value
			}
		}
	}
	if trap != nil {
		return trap
	}
	return nil
}

func redactWord(w Word) string {
	if a, ok := w.(Attribute); ok && a.Key == "password" {
		return "=password=***"
	}
	if w == nil {
		return ""
	}
	return w.String()
}
