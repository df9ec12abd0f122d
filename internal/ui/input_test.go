package ui

import (
	"context"
	"io"
	"testing"
	"time"
)

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []KeyEvent
	}{
		{"plain rune", "q", []KeyEvent{{Key: KeyRune, Rune: 'q'}}},
		{"enter cr", "\r", []KeyEvent{{Key: KeyEnter}}},
		{"enter lf", "\n", []KeyEvent{{Key: KeyEnter}}},
		{"backspace", "\x7f", []KeyEvent{{Key: KeyBackspace}}},
		{"ctrl-c", "\x03", []KeyEvent{{Key: KeyQuit}}},
		{"arrow up", "\x1b[A", []KeyEvent{{Key: KeyUp}}},
		{"arrow down", "\x1b[B", []KeyEvent{{Key: KeyDown}}},
		{"arrow right", "\x1b[C", []KeyEvent{{Key: KeyRight}}},
		{"arrow left", "\x1b[D", []KeyEvent{{Key: KeyLeft}}},
		{"mixed", "h\x1b[Cs", []KeyEvent{
			{Key: KeyRune, Rune: 'h'},
			{Key: KeyRight},
			{Key: KeyRune, Rune: 's'},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evs, rest := decode([]byte(tt.input))
			if rest != nil {
				t.Fatalf("unexpected pending bytes: %q", rest)
			}
			if len(evs) != len(tt.want) {
				t.Fatalf("got %d events, want %d: %+v", len(evs), len(tt.want), evs)
			}
			for i := range evs {
				if evs[i] != tt.want[i] {
					t.Errorf("event %d: got %+v, want %+v", i, evs[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodePartialEscape(t *testing.T) {
	evs, rest := decode([]byte("\x1b["))
	if len(evs) != 0 {
		t.Fatalf("partial sequence produced events: %+v", evs)
	}
	if string(rest) != "\x1b[" {
		t.Fatalf("partial sequence should stay pending, got %q", rest)
	}

	evs, rest = decode(append(rest, 'A'))
	if len(evs) != 1 || evs[0].Key != KeyUp {
		t.Fatalf("completed sequence should decode to up arrow: %+v", evs)
	}
	if rest != nil {
		t.Fatalf("leftover bytes: %q", rest)
	}
}

func TestReadKeysClosesOnEOF(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, w := io.Pipe()
	ch := ReadKeys(ctx, r)

	go func() {
		w.Write([]byte("g"))
		w.Close()
	}()

	select {
	case ev := <-ch:
		if ev.Key != KeyRune || ev.Rune != 'g' {
			t.Fatalf("got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event before timeout")
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel after EOF")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after EOF")
	}
}
