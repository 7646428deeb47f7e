package repo

// Status is the outcome of a commit or checkout that did not fail.
type Status int

const (
	Committed Status = iota
	NothingToCommit
	EmptyMessage
	Switched
	NotFound
	MissingID
)

func (s Status) String() string {
	switch s {
	case Committed:
		return "committed"
	case NothingToCommit:
		return "nothing to commit"
	case EmptyMessage:
		return "empty message"
	case Switched:
		return "switched"
	case NotFound:
		return "not found"
	case MissingID:
		return "missing id"
	default:
		return "unknown"
	}
}
