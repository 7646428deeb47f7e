// Package command implements the svcs command line on top of cobra.
package command

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Command represents a cli command
type Command interface {
	Name() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Args() cobra.PositionalArgs
	Flags(fs *pflag.FlagSet)
	Run(ctx *Context) error
}

// Context represents a cli context
type Context struct {
	Args []string
	Out  io.Writer
	Env  *Env
}
