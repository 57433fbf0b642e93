package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/suPer8Hu/gopherchat/internal/api"
	"github.com/suPer8Hu/gopherchat/internal/chat"
	"github.com/suPer8Hu/gopherchat/internal/nav"
)

func TestFormatAvatarAndTime(t *testing.T) {
	v := NewTerminalView(&bytes.Buffer{}).WithLocation(time.UTC)
	at := api.At(time.UnixMilli(1715078173965))
	me := "tom"

	got := v.Format(chat.Entry{Message: api.Message{Content: "hi", CreatedAt: at, From: &me}, Status: chat.StatusSent})
	if got != "[2024-05-07 10:36:13] me: hi" {
		t.Fatalf("unexpected line %q", got)
	}

	got = v.Format(chat.Entry{Message: api.Message{Content: "hello", CreatedAt: at}, Status: chat.StatusSent})
	if got != "[2024-05-07 10:36:13] bot: hello" {
		t.Fatalf("unexpected bot line %q", got)
	}

	got = v.Format(chat.Entry{Message: api.Message{Content: "x", From: &me}, Status: chat.StatusFailed})
	if got != "[-] me: x (failed to send)" {
		t.Fatalf("unexpected failed line %q", got)
	}
}

func TestViewUpdatePrintsOnlyFailures(t *testing.T) {
	var buf bytes.Buffer
	v := NewTerminalView(&buf).WithLocation(time.UTC)
	me := "tom"
	e := chat.Entry{Message: api.Message{Content: "hi", From: &me}, Status: chat.StatusSent}

	v.Update(e)
	if buf.Len() != 0 {
		t.Fatalf("sent update should print nothing, got %q", buf.String())
	}
	e.Status = chat.StatusFailed
	v.Update(e)
	if !strings.Contains(buf.String(), "failed to send") {
		t.Fatalf("expected failure line, got %q", buf.String())
	}
}

func TestNavigatorPrintsAlerts(t *testing.T) {
	var buf bytes.Buffer
	n := NewNavigator(&buf)
	n.Alert("welcome")
	n.Redirect(nav.PageLogin)

	if buf.String() != "! welcome\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if p, ok := n.Next(); !ok || p != nav.PageLogin {
		t.Fatalf("expected login redirect, got %q", p)
	}
}

func TestPrompterLines(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  tom \nsecret\nlast"), &out)

	if s, err := p.Line("id: "); err != nil || s != "tom" {
		t.Fatalf("line: %q %v", s, err)
	}
	if s, err := p.Password("pwd: "); err != nil || s != "secret" {
		t.Fatalf("password: %q %v", s, err)
	}
	if s, err := p.Line(""); err != nil || s != "last" {
		t.Fatalf("unterminated line: %q %v", s, err)
	}
	if _, err := p.Line(""); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if out.String() != "id: pwd: " {
		t.Fatalf("unexpected prompts %q", out.String())
	}
}

func TestPasswordDrainsBufferedInputFirst(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("tom\nsecret\n"), &out)
	p.tty = true
	p.readPassword = func(int) ([]byte, error) { return []byte("from-terminal"), nil }

	if s, _ := p.Line("id: "); s != "tom" {
		t.Fatalf("line: %q", s)
	}
	if s, err := p.Password("pwd: "); err != nil || s != "secret" {
		t.Fatalf("buffered password should come first, got %q %v", s, err)
	}
	if s, err := p.Password("pwd: "); err != nil || s != "from-terminal" {
		t.Fatalf("empty buffer should read the terminal, got %q %v", s, err)
	}
}
