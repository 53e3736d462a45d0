// Package ui renders recycle-bin snapshots and operation messages.
package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/babarot/xcom/internal/config"
	"github.com/babarot/xcom/internal/recyclebin"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/olekukonko/tablewriter"
)

const (
	dateFormat = "2006/01/02 15:04:05.000000"

	layoutTable = "table"
)

// Printer writes everything the front-ends show to the user
type Printer struct {
	out     io.Writer
	cfg     config.UI
	verbose bool
	styles  styles
	now     func() time.Time
}

// NewPrinter colours its output only when out is a terminal
func NewPrinter(out io.Writer, cfg config.Config) *Printer {
	r := lipgloss.NewRenderer(out)
	if !isTerminal(out) {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		out:     out,
		cfg:     cfg.UI,
		verbose: cfg.Core.RecycleBin.Verbose,
		styles:  newStyles(r, cfg.UI.Style),
		now:     time.Now,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Items shows a snapshot with 1-based indices
func (p *Printer) Items(items []recyclebin.Item) {
	if len(items) == 0 {
		p.Empty()
		return
	}
	fmt.Fprintln(p.out, p.styles.header.Render("Recycle Bin Contents:"))

	if p.cfg.Layout == layoutTable {
		p.table(items)
		return
	}
	for i, item := range items {
		p.line(i, item)
	}
}

// Matches shows search hits with their index in the full snapshot
func (p *Printer) Matches(items []recyclebin.Item, indices []int) {
	if len(indices) == 0 {
		fmt.Fprintln(p.out, p.styles.name.Render("No items found matching your search."))
		return
	}
	for _, i := range indices {
		p.line(i, items[i])
	}
}

func (p *Printer) line(i int, item recyclebin.Item) {
	s := fmt.Sprintf("%s. [%s] %s - %s",
		p.styles.index.Render(strconv.Itoa(i+1)),
		p.styles.date.Render(p.date(item)),
		p.styles.name.Render(item.Name),
		p.styles.path.Render(p.path(item)),
	)
	if p.verbose {
		s += " " + p.styles.meta.Render(p.meta(item))
	}
	fmt.Fprintln(p.out, s)
}

func (p *Printer) table(items []recyclebin.Item) {
	t := tablewriter.NewWriter(p.out)
	header := []string{"#", "Deleted At", "Name", "Original Path"}
	if p.verbose {
		header = append(header, "Size")
	}
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetBorder(false)
	t.SetHeaderLine(true)
	t.SetColumnSeparator("")
	t.SetAlignment(tablewriter.ALIGN_LEFT)

	for i, item := range items {
		row := []string{strconv.Itoa(i + 1), p.date(item), item.Name, p.path(item)}
		if p.verbose {
			row = append(row, p.size(item))
		}
		t.Append(row)
	}
	t.Render()
}

func (p *Printer) date(item recyclebin.Item) string {
	if item.DeletedAt.IsZero() {
		return "-"
	}
	return item.DeletedAt.Local().Format(dateFormat)
}

func (p *Printer) path(item recyclebin.Item) string {
	path := item.OriginalPath
	if path == "" {
		path = "-"
	}
	if p.cfg.MaxPathWidth > 0 {
		path = ansi.Truncate(path, p.cfg.MaxPathWidth, "…")
	}
	return path
}

func (p *Printer) size(item recyclebin.Item) string {
	if item.Size <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(item.Size))
}

func (p *Printer) meta(item recyclebin.Item) string {
	if item.DeletedAt.IsZero() {
		return "(" + p.size(item) + ")"
	}
	return "(" + p.size(item) + ", " + humanize.RelTime(item.DeletedAt, p.now(), "ago", "from now") + ")"
}

func (p *Printer) Empty() {
	fmt.Fprintf(p.out, "♻️  %s %s\n",
		p.styles.notice.Render("Recycle Bin"),
		p.styles.empty.Render("is empty"))
}

func (p *Printer) Cleared() {
	fmt.Fprintln(p.out, p.styles.notice.Render("Recycle Bin cleared."))
}

func (p *Printer) ClearFailed(err error) {
	fmt.Fprintf(p.out, "%s %s\n",
		p.styles.failed.Render("Failed to clear Recycle Bin:"),
		p.styles.detail.Render(err.Error()))
}

func (p *Printer) Restored(item recyclebin.Item) {
	fmt.Fprintf(p.out, "%s %s\n", p.styles.restored.Render("Restored:"), p.styles.detail.Render(item.Name))
}

func (p *Printer) Purged(item recyclebin.Item) {
	fmt.Fprintf(p.out, "%s %s\n", p.styles.deleted.Render("Deleted:"), p.styles.name.Render(item.Name))
}

// Failed reports one item that could not be restored ("restore") or
// deleted ("delete")
func (p *Printer) Failed(action string, item recyclebin.Item, err error) {
	fmt.Fprintf(p.out, "%s %s: %s\n",
		p.styles.failed.Render("Failed to "+action),
		p.styles.name.Render(item.Name),
		p.styles.detail.Render(err.Error()))
}

func (p *Printer) InvalidSelection() {
	fmt.Fprintln(p.out, p.styles.notice.Render("Invalid selection."))
}

// Error reports an error that does not end the session
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.out, "%s %s\n", p.styles.failed.Render("Error:"), err.Error())
}

func (p *Printer) Aborted(op string) {
	fmt.Fprintln(p.out, p.styles.notice.Render(op+" aborted by user."))
}

// Prompt asks for the next interactive command
func (p *Printer) Prompt() {
	parts := []struct {
		text  string
		color string
	}{
		{"please select number", "#00FFFF"},
		{"[n]r = to restore number", "#AA55FF"},
		{"[n1-nX]r to restore number n1 to nX", "#FFAA00"},
		{"n1,n2,n3..r = to restore number n1,n2,n3,...", "#5500FF"},
		{"[n]d = to delete number", "#AA557F"},
		{"[n1-nX]d to delete number n1 to nX", "#FF55FF"},
		{"n1,n2,n3..d = to delete number n1,n2,n3,...", "#FF5500"},
		{"[c] = clean/clear recycle bin", "#FFFF55"},
		{"[q]uit/e[x]it = exit/quit", "#FF5555"},
		{"or just type any to search/filter what you want", "#00FFFF"},
	}
	for i, part := range parts {
		if i > 0 {
			fmt.Fprint(p.out, ", ")
		}
		fmt.Fprint(p.out, p.styles.index.UnsetForeground().Foreground(lipgloss.Color(part.color)).Render(part.text))
	}
	fmt.Fprint(p.out, ": ")
}
