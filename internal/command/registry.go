package command

import "fmt"

// Operation is the closed set of svcs subcommands.
type Operation int

const (
	OpConfig Operation = iota
	OpAdd
	OpLog
	OpCommit
	OpCheckout
	OpVerify
)

// Operations lists every operation in help order.
func Operations() []Operation {
	return []Operation{OpConfig, OpAdd, OpLog, OpCommit, OpCheckout, OpVerify}
}

func (op Operation) String() string {
	switch op {
	case OpConfig:
		return "config"
	case OpAdd:
		return "add"
	case OpLog:
		return "log"
	case OpCommit:
		return "commit"
	case OpCheckout:
		return "checkout"
	case OpVerify:
		return "verify"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// New builds the command for op with its middlewares applied.
func New(op Operation) (Command, error) {
	switch op {
	case OpConfig:
		return ApplyMiddlewares(&ConfigCommand{}, WithRepoLock(withArgs), WithDebugArgs()), nil
	case OpAdd:
		return ApplyMiddlewares(&AddCommand{}, WithRepoLock(withArgs), WithDebugArgs()), nil
	case OpLog:
		return ApplyMiddlewares(&LogCommand{}, WithDebugArgs()), nil
	case OpCommit:
		return ApplyMiddlewares(&CommitCommand{}, WithRepoLock(always), WithDebugArgs()), nil
	case OpCheckout:
		return ApplyMiddlewares(&CheckoutCommand{}, WithRepoLock(always), WithDebugArgs()), nil
	case OpVerify:
		return ApplyMiddlewares(&VerifyCommand{}, WithDebugArgs()), nil
	default:
		return nil, fmt.Errorf("unknown operation %v", op)
	}
}
