package command

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the svcs command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) (*cobra.Command, error) {
	env := &Env{WorkDir: ".", Stderr: stderr}
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "svcs",
		Short: "svcs is a minimal content-addressed version tracker",
		Long: `svcs tracks a chosen set of files and records full snapshots of them
under a local storage directory (vcs/ by default).`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return env.load(flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "'%s' is not a SVCS command.\n", args[0])
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "settings file (default .svcs.yaml in the current or home directory)")
	pf.StringVar(&flags.repoDir, "repo-dir", "", "storage directory (overrides repo_dir)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	for _, op := range Operations() {
		cmd, err := New(op)
		if err != nil {
			return nil, err
		}
		root.AddCommand(toCobra(cmd, env))
	}
	return root, nil
}

func toCobra(cmd Command, env *Env) *cobra.Command {
	c := &cobra.Command{
		Use:     cmd.Usage(),
		Aliases: cmd.Aliases(),
		Short:   cmd.Brief(),
		Long:    cmd.Help(),
		Args:    cmd.Args(),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Run(&Context{Args: args, Out: c.OutOrStdout(), Env: env})
		},
	}
	cmd.Flags(c.Flags())
	return c
}
