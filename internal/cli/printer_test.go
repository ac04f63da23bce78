package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func newTestPrinter() (*Printer, *bytes.Buffer) {
	pterm.DisableColor()
	var buf bytes.Buffer
	return &Printer{Writer: &buf}, &buf
}

func TestPrintTable(t *testing.T) {
	p, buf := newTestPrinter()
	data := [][]string{
		{"Domain", "Code"},
		{"auth", "AUTH_MISSING"},
		{"pagination", "PAGE_MISSING"},
	}

	p.Table(data)

	out := buf.String()
	assert.Contains(t, out, "AUTH_MISSING")
	assert.Contains(t, out, "pagination")
	assert.Less(t, strings.Index(out, "auth"), strings.Index(out, "pagination"))
}

func TestPrintTableBoxed(t *testing.T) {
	p, buf := newTestPrinter()
	p.TableBoxed([][]string{{"Domain", "Entries"}, {"auth", "5"}})

	assert.Contains(t, buf.String(), "Entries")
}

func TestPrintTableEmpty(t *testing.T) {
	p, buf := newTestPrinter()
	p.Table([][]string{})
	p.TableBoxed(nil)

	assert.Empty(t, buf.String())
}

func TestPrinterColors(t *testing.T) {
	for name, fn := range map[string]func(string) string{
		"green": Green, "yellow": Yellow, "red": Red, "cyan": Cyan,
	} {
		assert.Contains(t, fn("test"), "test", name)
	}
}

func TestPrinterQuietMode(t *testing.T) {
	p, buf := newTestPrinter()
	p.Quiet = true

	p.Section("test")
	p.Step("test")
	p.Info("test")
	stop := p.SpinnerStart("working")
	stop(true, "done")

	assert.Empty(t, buf.String())

	p.Printf("value=%d\n", 1)
	assert.Equal(t, "value=1\n", buf.String())
}

func TestPrinterMessages(t *testing.T) {
	p, buf := newTestPrinter()

	p.Step("collecting")
	p.Success("built")
	p.Warn("careful")
	p.Error("failed")

	out := buf.String()
	for _, want := range []string{"collecting", "built", "careful", "failed"} {
		assert.Contains(t, out, want)
	}
}

func TestPrinterSpinnerWithoutTerminal(t *testing.T) {
	p, buf := newTestPrinter()

	stop := p.SpinnerStart("publishing")
	stop(true, "published")
	stop = p.SpinnerStart("retrying")
	stop(false, "gave up")

	out := buf.String()
	for _, want := range []string{"publishing", "published", "retrying", "gave up"} {
		assert.Contains(t, out, want)
	}
}
