package listener

import (
	"io"
	"log/slog"
	"testing"
)

type countingPurger struct{ calls int }

func (p *countingPurger) Purge() int {
	p.calls++
	return 0
}

func TestHandle(t *testing.T) {
	p := &countingPurger{}
	l := New(p, slog.New(slog.NewTextHandler(io.Discard, nil)))

	steps := []struct {
		payload   string
		want      bool
		wantCalls int
		latest    int64
	}{
		{"3", true, 1, 3},
		{"3", false, 1, 3},   // duplicate
		{"2", false, 1, 3},   // out of order
		{"bad", false, 1, 3}, // unparseable
		{"7", true, 2, 7},
	}
	for _, s := range steps {
		if got := l.Handle(s.payload); got != s.want {
			t.Errorf("Handle(%q) got %v want %v", s.payload, got, s.want)
		}
		if p.calls != s.wantCalls {
			t.Errorf("after %q purges got %d want %d", s.payload, p.calls, s.wantCalls)
		}
		if l.Latest() != s.latest {
			t.Errorf("after %q latest got %d want %d", s.payload, l.Latest(), s.latest)
		}
	}
}
