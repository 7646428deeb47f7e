package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/keshon/svcs/internal/repo"
)

type CheckoutCommand struct{}

func (c *CheckoutCommand) Name() string      { return "checkout" }
func (c *CheckoutCommand) Aliases() []string { return []string{"co"} }
func (c *CheckoutCommand) Usage() string     { return "checkout <commit-id>" }
func (c *CheckoutCommand) Brief() string     { return "Restore a file." }
func (c *CheckoutCommand) Help() string {
	return `Overwrite the tracked files with their content at a commit.

The id may be abbreviated to any unique prefix of at least 4 characters.
Files that were never tracked are left alone.`
}
func (c *CheckoutCommand) Args() cobra.PositionalArgs { return cobra.MaximumNArgs(1) }
func (c *CheckoutCommand) Flags(fs *pflag.FlagSet)    {}

func (c *CheckoutCommand) Run(ctx *Context) error {
	id := ""
	if len(ctx.Args) > 0 {
		id = ctx.Args[0]
	}

	r, err := ctx.Env.OpenRepo()
	if err != nil {
		return err
	}

	res, err := r.Checkout(id)
	if err != nil {
		return err
	}
	switch res.Status {
	case repo.MissingID:
		fmt.Fprintln(ctx.Out, "Commit id was not passed.")
	case repo.NotFound:
		fmt.Fprintln(ctx.Out, "Commit does not exist.")
	default:
		fmt.Fprintf(ctx.Out, "Switched to commit %s.\n", res.Fingerprint)
	}
	return nil
}
