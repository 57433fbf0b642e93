package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/suPer8Hu/gopherchat/internal/api"
	"github.com/suPer8Hu/gopherchat/internal/chat"
)

const TimeLayout = "2006-01-02 15:04:05"

const (
	AvatarMe  = "me"
	AvatarBot = "bot"
)

// TerminalView prints the conversation line by line. A terminal can't edit
// earlier output, so Update reprints the entry only when its status says
// something the user needs to see.
type TerminalView struct {
	mu  sync.Mutex
	out io.Writer
	loc *time.Location
}

func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out, loc: time.Local}
}

// WithLocation changes the zone used to print createdAt.
func (v *TerminalView) WithLocation(loc *time.Location) *TerminalView {
	v.loc = loc
	return v
}

func (v *TerminalView) ShowUser(u api.User) {
	v.printf("logged in as %s (%s)\n", u.Nickname, u.LoginID)
}

func (v *TerminalView) Append(e chat.Entry) {
	v.printf("%s\n", v.Format(e))
}

func (v *TerminalView) Update(e chat.Entry) {
	if e.Status == chat.StatusFailed {
		v.printf("%s\n", v.Format(e))
	}
}

func (v *TerminalView) ClearInput() {}

func (v *TerminalView) ScrollBottom() {}

// Format renders one entry as "[2024-05-07 18:36:13] me: hello".
func (v *TerminalView) Format(e chat.Entry) string {
	avatar := AvatarBot
	if e.Mine() {
		avatar = AvatarMe
	}

	ts := "-"
	if !e.Message.CreatedAt.IsZero() {
		ts = e.Message.CreatedAt.In(v.loc).Format(TimeLayout)
	}

	line := fmt.Sprintf("[%s] %s: %s", ts, avatar, e.Message.Content)
	switch e.Status {
	case chat.StatusPending:
		line += " ..."
	case chat.StatusFailed:
		line += " (failed to send)"
	}
	return line
}

func (v *TerminalView) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}
