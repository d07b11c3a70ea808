package dialect

import "fmt"

// Operation identifies an abstract filesystem operation that a dialect maps
// to a concrete command.
type Operation int

const (
	OpUnknown Operation = iota
	OpInfo
	OpListDir
	OpMkdir
	OpMakeDirs
	OpTouch
	OpRemoveTree
	OpRemove
	OpCopy
)

var operationNames = map[Operation]string{
	OpUnknown:    "unknown",
	OpInfo:       "info",
	OpListDir:    "listdir",
	OpMkdir:      "mkdir",
	OpMakeDirs:   "makedirs",
	OpTouch:      "touch",
	OpRemoveTree: "rmtree",
	OpRemove:     "remove",
	OpCopy:       "copy",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Operations returns every operation a complete dialect must implement.
func Operations() []Operation {
	return []Operation{OpInfo, OpListDir, OpMkdir, OpMakeDirs, OpTouch, OpRemoveTree, OpRemove, OpCopy}
}

// Mutating reports whether the operation changes the filesystem.
func (o Operation) Mutating() bool {
	switch o {
	case OpMkdir, OpMakeDirs, OpTouch, OpRemoveTree, OpRemove, OpCopy:
		return true
	default:
		return false
	}
}
