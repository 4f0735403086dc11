package command

// Name identifies one of the fixed router commands.
type Name string

const (
	Add    Name = "add"
	Remove Name = "remove"
	List   Name = "list"
)

var names = []Name{Add, Remove, List}

// All returns the recognized command names in registration order.
func All() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}

// Parse matches s against the closed set of command names using exact,
// case-sensitive equality.
func Parse(s string) (Name, bool) {
	switch n := Name(s); n {
	case Add, Remove, List:
		return n, true
	}
	return "", false
}

// Message returns the single line the handler for n prints.
func (n Name) Message() string {
	switch n {
	case Add:
		return "adding the node"
	case Remove:
		return "removing the node"
	case List:
		return "listing out nodes"
	}
	return ""
}

// Short returns the one-line help text for n.
func (n Name) Short() string {
	switch n {
	case Add:
		return "Add a node"
	case Remove:
		return "Remove a node"
	case List:
		return "List nodes"
	}
	return ""
}

func (n Name) String() string { return string(n) }
