package command

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type VerifyCommand struct{}

func (c *VerifyCommand) Name() string      { return "verify" }
func (c *VerifyCommand) Aliases() []string { return nil }
func (c *VerifyCommand) Usage() string     { return "verify" }
func (c *VerifyCommand) Brief() string     { return "Check stored snapshots against their ids." }
func (c *VerifyCommand) Help() string {
	return `Recompute the fingerprint of every stored snapshot and report the ones
whose content no longer matches. Exits non-zero when any snapshot is corrupt.`
}
func (c *VerifyCommand) Args() cobra.PositionalArgs { return cobra.NoArgs }
func (c *VerifyCommand) Flags(fs *pflag.FlagSet)    {}

func (c *VerifyCommand) Run(ctx *Context) error {
	r, err := ctx.Env.OpenRepo()
	if err != nil {
		return err
	}

	results, err := r.Verify()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(ctx.Out, "No commits yet.")
		return nil
	}

	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	corrupt := 0
	for _, res := range results {
		status := ok("ok")
		if !res.OK {
			status = bad("corrupt")
			corrupt++
		}
		fmt.Fprintf(ctx.Out, "%s %s (%d files, %s)\n", res.Fingerprint, status, res.Files, humanize.Bytes(res.Bytes))
	}

	if corrupt > 0 {
		return fmt.Errorf("%d of %d snapshots failed verification", corrupt, len(results))
	}
	return nil
}
