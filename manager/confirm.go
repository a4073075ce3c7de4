package manager

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrDeclined is returned by Remove when the confirmer said no. No request
// is sent in that case.
var ErrDeclined = errors.New("action declined")

// Confirmer gates destructive actions behind a yes/no answer. It never
// performs the action itself; it only answers the question. One confirmer
// instance serves every destructive action on a page, re-parameterized per
// pending action.
type Confirmer interface {
	Confirm(title, description string) bool
}

// ConfirmFunc adapts a plain function to the Confirmer interface.
type ConfirmFunc func(title, description string) bool

func (f ConfirmFunc) Confirm(title, description string) bool {
	return f(title, description)
}

// AlwaysConfirm approves everything, for --yes flags and scripted use.
var AlwaysConfirm = ConfirmFunc(func(string, string) bool { return true })

// TerminalConfirmer asks on the terminal and accepts only an explicit
// "y"/"yes". Anything else, including a read error, declines.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (t TerminalConfirmer) Confirm(title, description string) bool {
	fmt.Fprintf(t.Out, "%s\n%s\n", title, description)
	fmt.Fprint(t.Out, "Type y to confirm: ")

	reader := bufio.NewReader(t.In)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
