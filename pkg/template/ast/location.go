package ast

import "fmt"

// Location represents a node's position within a template source.
// It identifies the source file and the tree path to the node
// (e.g. "content[0].elements[2]").
type Location struct {
	File string // Source file path
	Path string // Tree path to the node
}

// String returns a human-readable location string.
func (l Location) String() string {
	if l.Path == "" {
		return l.File
	}
	return fmt.Sprintf("%s: %s", l.File, l.Path)
}

// IsValid returns true if the location has at least a file set.
func (l Location) IsValid() bool {
	return l.File != "" || l.Path != ""
}
