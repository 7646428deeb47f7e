package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/keshon/svcs/internal/repo/store/index"
)

type AddCommand struct{}

func (c *AddCommand) Name() string      { return "add" }
func (c *AddCommand) Aliases() []string { return nil }
func (c *AddCommand) Usage() string     { return "add [path...]" }
func (c *AddCommand) Brief() string     { return "Add a file to the index." }
func (c *AddCommand) Help() string {
	return `Track files or list the tracked ones.

Usage:
  svcs add             - list tracked files
  svcs add <path>...   - start tracking the given files`
}
func (c *AddCommand) Args() cobra.PositionalArgs { return cobra.ArbitraryArgs }
func (c *AddCommand) Flags(fs *pflag.FlagSet)    {}

func (c *AddCommand) Run(ctx *Context) error {
	r, err := ctx.Env.OpenRepo()
	if err != nil {
		return err
	}

	if len(ctx.Args) == 0 {
		paths, err := r.Tracked()
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Fprintln(ctx.Out, "Add a file to the index.")
			return nil
		}
		fmt.Fprintln(ctx.Out, "Tracked files:")
		for _, p := range paths {
			fmt.Fprintln(ctx.Out, p)
		}
		return nil
	}

	for _, arg := range ctx.Args {
		res, err := r.Track(arg)
		if err != nil {
			return err
		}
		switch res.Status {
		case index.NotFound:
			fmt.Fprintf(ctx.Out, "Can't find '%s'.\n", arg)
		default:
			fmt.Fprintf(ctx.Out, "The file '%s' is tracked.\n", arg)
		}
	}
	return nil
}
