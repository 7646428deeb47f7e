package command

import (
	"github.com/keshon/svcs/internal/lock"
)

// Middleware is a function that wraps a command
type Middleware func(Command) Command

// WrappedCommand represents a command wrapped with a middleware
type WrappedCommand struct {
	Command
	Wrap func(ctx *Context) error
}

// Run executes the wrapped command
func (w *WrappedCommand) Run(ctx *Context) error {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// ApplyMiddlewares wraps a command with any number of middlewares.
// The last middleware runs first.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// WithDebugArgs logs the command name and its arguments at debug level.
func WithDebugArgs() Middleware {
	return func(cmd Command) Command {
		return &WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *Context) error {
				ctx.Env.Logger.Debug("running command", "command", cmd.Name(), "args", ctx.Args)
				return cmd.Run(ctx)
			},
		}
	}
}

// WithRepoLock holds the repository lock while a mutating command runs.
// mutates decides per invocation, so read-only forms such as a bare
// "config" skip the lock.
func WithRepoLock(mutates func(args []string) bool) Middleware {
	return func(cmd Command) Command {
		return &WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *Context) error {
				if !ctx.Env.Settings.Lock || !mutates(ctx.Args) {
					return cmd.Run(ctx)
				}
				l := lock.New(ctx.Env.RepoConfig().LockFile())
				ctx.Env.Logger.Debug("acquiring repository lock", "path", l.Path())
				return l.With(func() error { return cmd.Run(ctx) })
			},
		}
	}
}

func withArgs(args []string) bool { return len(args) > 0 }
func always([]string) bool        { return true }
