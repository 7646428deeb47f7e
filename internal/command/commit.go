package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/keshon/svcs/internal/repo"
)

type CommitCommand struct {
	message string
}

func (c *CommitCommand) Name() string      { return "commit" }
func (c *CommitCommand) Aliases() []string { return []string{"ci"} }
func (c *CommitCommand) Usage() string     { return `commit "<message>"` }
func (c *CommitCommand) Brief() string     { return "Save changes." }
func (c *CommitCommand) Help() string {
	return `Snapshot every tracked file under a message.

Usage:
  svcs commit "<message>"
  svcs commit -m "<message>"
  svcs commit -- "<message>"   - for a message starting with "-"

Nothing is recorded when the tracked content matches the latest commit.`
}
func (c *CommitCommand) Args() cobra.PositionalArgs { return cobra.ArbitraryArgs }
func (c *CommitCommand) Flags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.message, "message", "m", "", "commit message")
}

func (c *CommitCommand) Run(ctx *Context) error {
	message := c.message
	if message == "" {
		message = strings.Join(ctx.Args, " ")
	}

	r, err := ctx.Env.OpenRepo()
	if err != nil {
		return err
	}

	res, err := r.Commit(message)
	if err != nil {
		return err
	}
	switch res.Status {
	case repo.EmptyMessage:
		fmt.Fprintln(ctx.Out, "Message was not passed.")
	case repo.NothingToCommit:
		fmt.Fprintln(ctx.Out, "Nothing to commit.")
	default:
		fmt.Fprintln(ctx.Out, "Changes are committed.")
	}
	return nil
}
