package ui

import (
	"fmt"
	"io"

	"github.com/suPer8Hu/gopherchat/internal/nav"
)

// Navigator prints alerts and records redirects; the page loop reads the
// next page from it after each page returns.
type Navigator struct {
	nav.Recorder
	out io.Writer
}

func NewNavigator(out io.Writer) *Navigator {
	return &Navigator{out: out}
}

func (n *Navigator) Alert(msg string) {
	fmt.Fprintf(n.out, "! %s\n", msg)
	n.Recorder.Alert(msg)
}
