// Package console renders gallerysort's terminal output: styled messages,
// tables and the copy progress bar.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"gallerysort/internal/sorter"
)

const (
	defaultWidth = 80
	maxBarWidth  = 60
)

// Console writes user-facing output. On a terminal the progress bar is
// redrawn in place; otherwise only the final counter is printed.
type Console struct {
	out         io.Writer
	interactive bool
	width       int
	styles      styles
	bar         progress.Model

	total   int
	current int
}

// New creates a Console writing to out, detecting whether out is a terminal.
func New(out io.Writer) *Console {
	interactive := false
	width := defaultWidth
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		interactive = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return NewWithOptions(out, interactive, width)
}

// NewWithOptions creates a Console with explicit terminal settings.
func NewWithOptions(out io.Writer, interactive bool, width int) *Console {
	if width <= 0 {
		width = defaultWidth
	}
	barWidth := min(width-20, maxBarWidth)
	if barWidth < 10 {
		barWidth = 10
	}

	return &Console{
		out:         out,
		interactive: interactive,
		width:       width,
		styles:      newStyles(lipgloss.NewRenderer(out)),
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
	}
}

// Title prints a section title underlined to its own width.
func (c *Console) Title(msg string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.title.Render(msg))
	fmt.Fprintln(c.out, c.styles.title.Render(strings.Repeat("=", lipgloss.Width(msg))))
	fmt.Fprintln(c.out)
}

// Comment prints a secondary message.
func (c *Console) Comment(msg string) {
	fmt.Fprintln(c.out, c.styles.comment.Render("// "+msg))
}

// Text prints a plain line.
func (c *Console) Text(msg string) {
	fmt.Fprintln(c.out, msg)
}

// Success prints a success block.
func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.success.Render("[OK] "+msg))
	fmt.Fprintln(c.out)
}

// Warning prints a warning line.
func (c *Console) Warning(msg string) {
	fmt.Fprintln(c.out, c.styles.warn.Render("[WARNING] "+msg))
}

// Error prints an error block.
func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.errorS.Render("[ERROR] "+msg))
	fmt.Fprintln(c.out)
}

// Table prints rows under headers.
func (c *Console) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.dim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.styles.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(c.out, t.String())
}

// Phase announces a pipeline phase.
func (c *Console) Phase(msg string) {
	c.Comment(msg)
}

// Start begins a progress bar that will advance total times.
func (c *Console) Start(total int) {
	c.total = total
	c.current = 0
	if c.interactive {
		c.render()
	}
}

// Advance moves the progress bar forward by one.
func (c *Console) Advance() {
	if c.current < c.total {
		c.current++
	}
	if c.interactive {
		c.render()
	}
}

// Finish completes the progress bar.
func (c *Console) Finish() {
	if c.interactive {
		c.render()
		fmt.Fprintln(c.out)
		return
	}
	fmt.Fprintln(c.out, c.counter())
}

func (c *Console) render() {
	fmt.Fprintf(c.out, "\r%s %s", c.bar.ViewAs(c.percent()), c.counter())
}

func (c *Console) counter() string {
	width := len(fmt.Sprint(c.total))
	return fmt.Sprintf("%*d/%d", width, c.current, c.total)
}

func (c *Console) percent() float64 {
	if c.total == 0 {
		return 1
	}
	return float64(c.current) / float64(c.total)
}

// Compile-time check that Console implements sorter.Progress interface
var _ sorter.Progress = (*Console)(nil)
