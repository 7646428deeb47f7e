package command

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/keshon/svcs/internal/repo/meta"
)

// shortLen is the fingerprint length shown by log --oneline.
const shortLen = 12

type LogCommand struct {
	oneline bool
}

func (c *LogCommand) Name() string      { return "log" }
func (c *LogCommand) Aliases() []string { return nil }
func (c *LogCommand) Usage() string     { return "log [--oneline]" }
func (c *LogCommand) Brief() string     { return "Show commit logs." }
func (c *LogCommand) Help() string {
	return `Show the commit history, newest first.

Options:
      --oneline   Show each commit as a table row (short id, author, subject).`
}
func (c *LogCommand) Args() cobra.PositionalArgs { return cobra.NoArgs }
func (c *LogCommand) Flags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.oneline, "oneline", false, "show each commit on one line")
}

func (c *LogCommand) Run(ctx *Context) error {
	r, err := ctx.Env.OpenRepo()
	if err != nil {
		return err
	}

	entries, err := r.Meta.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(ctx.Out, "No commits yet.")
		return nil
	}

	if c.oneline {
		fmt.Fprintln(ctx.Out, renderOneline(entries))
		return nil
	}

	header := color.New(color.FgYellow)
	for _, e := range entries {
		header.Fprintf(ctx.Out, "commit %s\n", e.Fingerprint)
		fmt.Fprintf(ctx.Out, "Author: %s\n%s\n\n", e.Author, e.Message)
	}
	return nil
}

func renderOneline(entries []meta.LogEntry) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"Commit", "Author", "Message"})
	for _, e := range entries {
		id := e.Fingerprint
		if len(id) > shortLen {
			id = id[:shortLen]
		}
		subject, _, _ := strings.Cut(e.Message, "\n")
		tbl.AppendRow(table.Row{id, e.Author, subject})
	}
	return tbl.Render()
}
