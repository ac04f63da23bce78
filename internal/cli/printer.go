package cli

// This file holds the terminal output helpers shared by all commands.
// Everything goes through pterm so colours and table layout stay consistent.

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Printer writes formatted CLI output.
type Printer struct {
	// Quiet suppresses sections, steps and info lines. Tables and
	// Printf output are always written.
	Quiet bool
	// Writer receives the output; nil means os.Stdout.
	Writer io.Writer
}

// DefaultPrinter writes to stdout.
var DefaultPrinter = &Printer{}

// ConfigureColor disables colours when f is not a terminal.
func ConfigureColor(f *os.File) {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		pterm.DisableColor()
		pterm.DisableStyling()
		return
	}
	pterm.EnableColor()
	pterm.EnableStyling()
}

func (p *Printer) writer() io.Writer {
	if p == nil || p.Writer == nil {
		return os.Stdout
	}
	return p.Writer
}

func (p *Printer) quiet() bool {
	return p != nil && p.Quiet
}

// Printf writes formatted text.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.writer(), format, args...)
}

// Println writes its operands followed by a newline.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.writer(), args...)
}

// Section writes a section header.
func (p *Printer) Section(title string) {
	if p.quiet() {
		return
	}
	fmt.Fprint(p.writer(), pterm.DefaultSection.Sprintln(title))
}

// Step writes a progress line.
func (p *Printer) Step(msg string) {
	if p.quiet() {
		return
	}
	fmt.Fprintln(p.writer(), pterm.Cyan("→ ")+msg)
}

// Info writes an informational line.
func (p *Printer) Info(msg string) {
	if p.quiet() {
		return
	}
	fmt.Fprint(p.writer(), pterm.Info.Sprintln(msg))
}

// Success writes a success line.
func (p *Printer) Success(msg string) {
	fmt.Fprint(p.writer(), pterm.Success.Sprintln(msg))
}

// Warn writes a warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprint(p.writer(), pterm.Warning.Sprintln(msg))
}

// Error writes an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprint(p.writer(), pterm.Error.Sprintln(msg))
}

// Table renders rows with the first row as header.
func (p *Printer) Table(data [][]string) {
	p.renderTable(pterm.DefaultTable.WithHasHeader().WithData(data))
}

// TableBoxed renders rows with a box around the table.
func (p *Printer) TableBoxed(data [][]string) {
	p.renderTable(pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data))
}

func (p *Printer) renderTable(t *pterm.TablePrinter) {
	if len(t.Data) == 0 {
		return
	}
	out, err := t.Srender()
	if err != nil {
		return
	}
	fmt.Fprintln(p.writer(), out)
}

// SpinnerStart shows a spinner and returns a function that stops it with
// a success or failure message. Without a terminal it prints plain lines,
// and in quiet mode it does nothing.
func (p *Printer) SpinnerStart(msg string) func(ok bool, final string) {
	if p.quiet() {
		return func(bool, string) {}
	}
	plain := func(ok bool, final string) {
		if ok {
			p.Success(final)
		} else {
			p.Error(final)
		}
	}
	f, isFile := p.writer().(*os.File)
	if !isFile || !term.IsTerminal(int(f.Fd())) {
		p.Step(msg)
		return plain
	}
	spinner, err := pterm.DefaultSpinner.WithWriter(f).WithRemoveWhenDone(false).Start(msg)
	if err != nil {
		p.Step(msg)
		return plain
	}
	return func(ok bool, final string) {
		if ok {
			spinner.Success(final)
		} else {
			spinner.Fail(final)
		}
	}
}

// Table renders rows on the default printer.
func Table(data [][]string) { DefaultPrinter.Table(data) }

// TableBoxed renders a boxed table on the default printer.
func TableBoxed(data [][]string) { DefaultPrinter.TableBoxed(data) }

// Success writes a success line on the default printer.
func Success(msg string) { DefaultPrinter.Success(msg) }

// Warn writes a warning line on the default printer.
func Warn(msg string) { DefaultPrinter.Warn(msg) }

// Error writes an error line on the default printer.
func Error(msg string) { DefaultPrinter.Error(msg) }

func Green(s string) string  { return pterm.Green(s) }
func Yellow(s string) string { return pterm.Yellow(s) }
func Red(s string) string    { return pterm.Red(s) }
func Cyan(s string) string   { return pterm.Cyan(s) }
