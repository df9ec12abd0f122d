package ui

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

// Key identifies one decoded keypress.
type Key int

const (
	KeyRune Key = iota
	KeyQuit
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
	KeyBackspace
)

// KeyEvent is one keypress off the terminal. Rune is set for KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// EnterRawMode puts the terminal into raw mode and returns the restore
// function. On a non-terminal stdin (pipes, tests) it is a no-op.
func EnterRawMode() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = term.Restore(fd, state) }, nil
}

// ReadKeys decodes keypresses from r onto the returned channel. The
// reader goroutine exits when r reaches EOF or ctx is cancelled; the
// channel is closed on exit. Arrow keys arrive as ESC [ A..D in raw
// mode; a bare ESC with nothing behind it is delivered as KeyEscape.
func ReadKeys(ctx context.Context, r io.Reader) <-chan KeyEvent {
	out := make(chan KeyEvent, 8)
	go func() {
		defer close(out)
		buf := make([]byte, 64)
		var pending []byte
		for {
			n, err := r.Read(buf)
			if n > 0 {
				pending = append(pending, buf[:n]...)
				var evs []KeyEvent
				evs, pending = decode(pending)
				for _, ev := range evs {
					select {
					case out <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
			if err != nil {
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
	return out
}

// decode consumes complete key sequences from b and returns the rest.
// Only an unfinished escape sequence at the tail is kept pending.
func decode(b []byte) (evs []KeyEvent, rest []byte) {
	for len(b) > 0 {
		c := b[0]
		switch {
		case c == 0x1b:
			if len(b) == 1 {
				// Could be a bare ESC or the start of a sequence;
				// wait for the next read to tell.
				return evs, b
			}
			if b[1] == '[' {
				if len(b) < 3 {
					return evs, b
				}
				switch b[2] {
				case 'A':
					evs = append(evs, KeyEvent{Key: KeyUp})
				case 'B':
					evs = append(evs, KeyEvent{Key: KeyDown})
				case 'C':
					evs = append(evs, KeyEvent{Key: KeyRight})
				case 'D':
					evs = append(evs, KeyEvent{Key: KeyLeft})
				}
				b = b[3:]
				continue
			}
			evs = append(evs, KeyEvent{Key: KeyEscape})
			b = b[1:]
		case c == '\r' || c == '\n':
			evs = append(evs, KeyEvent{Key: KeyEnter})
			b = b[1:]
		case c == 0x7f || c == 0x08:
			evs = append(evs, KeyEvent{Key: KeyBackspace})
			b = b[1:]
		case c == 0x03: // ctrl-c in raw mode
			evs = append(evs, KeyEvent{Key: KeyQuit})
			b = b[1:]
		case c >= 0x20 && c < 0x7f:
			evs = append(evs, KeyEvent{Key: KeyRune, Rune: rune(c)})
			b = b[1:]
		default:
			b = b[1:]
		}
	}
	return evs, nil
}
