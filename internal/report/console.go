// Package report renders run output on the terminal: colored phase banners
// and summaries, a simple progress counter, the y/n confirmation prompt, and
// the two-part failure message (short summary in red, detail in yellow,
// terminal bell). The syncer only sees the Sink and Gate interfaces, so all
// terminal side effects live here.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Console writes colored run output to w.
type Console struct {
	w io.Writer

	phase   *color.Color
	notice  *color.Color
	success *color.Color
}

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:       w,
		phase:   color.New(color.FgMagenta),
		notice:  color.New(color.FgYellow),
		success: color.New(color.FgGreen),
	}
}

func (c *Console) Phase(msg string)   { c.phase.Fprintln(c.w, msg) }
func (c *Console) Notice(msg string)  { c.notice.Fprintln(c.w, msg) }
func (c *Console) Success(msg string) { c.success.Fprintln(c.w, msg) }
func (c *Console) Item(msg string)    { fmt.Fprintln(c.w, msg) }

// Progress prints one line per applied record.
func (c *Console) Progress(current, total int, label string) {
	fmt.Fprintf(c.w, " [%d/%d] %s\n", current, total, label)
}

// Bell rings the terminal bell.
func (c *Console) Bell() {
	fmt.Fprint(c.w, "\a")
}

// Explainer is an error that splits into a short summary and a detail line.
// Loader and compiler errors implement it; anything else prints as a single
// line.
type Explainer interface {
	Summary() string
	Detail() string
}

// Fail prints err as a red summary plus a yellow detail line and rings the
// bell. It does not exit; the caller owns the process exit code.
func (c *Console) Fail(err error) {
	red := color.New(color.FgRed)
	if ex, ok := err.(Explainer); ok {
		red.Fprintln(c.w, ex.Summary())
		c.notice.Fprintln(c.w, ex.Detail())
	} else {
		red.Fprintln(c.w, err.Error())
	}
	c.Bell()
}
