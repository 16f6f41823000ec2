package fs

// ChangeKind is the type of a vault mutation.
type ChangeKind int

const (
	ChangeCreate ChangeKind = iota
	ChangeRename
	ChangeModify
	ChangeDelete
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreate:
		return "create"
	case ChangeRename:
		return "rename"
	case ChangeModify:
		return "modify"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ChangeEvent describes one mutation of the vault. PreviousPath is only
// set for renames.
type ChangeEvent struct {
	Kind         ChangeKind
	Entry        Entry
	PreviousPath string
}
