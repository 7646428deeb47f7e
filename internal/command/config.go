package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type ConfigCommand struct{}

func (c *ConfigCommand) Name() string      { return "config" }
func (c *ConfigCommand) Aliases() []string { return nil }
func (c *ConfigCommand) Usage() string     { return "config [name]" }
func (c *ConfigCommand) Brief() string     { return "Get and set a username." }
func (c *ConfigCommand) Help() string {
	return `Get and set the username recorded as the author of new commits.

Usage:
  svcs config          - print the current username
  svcs config <name>   - set the username`
}
func (c *ConfigCommand) Args() cobra.PositionalArgs { return cobra.MaximumNArgs(1) }
func (c *ConfigCommand) Flags(fs *pflag.FlagSet)    {}

func (c *ConfigCommand) Run(ctx *Context) error {
	r, err := ctx.Env.OpenRepo()
	if err != nil {
		return err
	}

	if len(ctx.Args) > 0 {
		if err := r.SetUsername(ctx.Args[0]); err != nil {
			return err
		}
	}

	name, err := r.Username()
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(ctx.Out, "Please, tell me who you are.")
		return nil
	}
	fmt.Fprintf(ctx.Out, "The username is %s.\n", name)
	return nil
}
