package models

// Department represents a node in the self-referencing organizational tree.
// Root departments have no parent.
type Department struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	ParentID *int64      `json:"parentId,omitempty"`
	Parent   *Department `json:"parent,omitempty"`
}
