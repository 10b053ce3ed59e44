// SPDX-License-Identifier: MIT
package hierarchy

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type (
	// Weight is the numeric type set accepted as a [Node]'s weight (e.g. a salary).
	Weight interface {
		constraints.Integer | constraints.Float
	}

	// Node defines an n-array tree of employees.
	//
	// A Node exclusively owns its children; there is no reference to the upper Node.
	// Synchronization is unnecessary, the type is designed for single write multiple read.
	Node[W Weight] struct {
		// cfg contains a pointer to a [Config] shared by the tree's nodes.
		cfg *Config

		name     string
		category string

		// weight is carried for display & aggregation only.
		weight W

		// children holds references to nodes at a lower level, in insertion order.
		children List[W]
	}

	// Option defines the Node functional option type.
	Option[W Weight] func(*Node[W])
)

const describeFmt = "Employee :[ Name : %s, dept : %s, salary :%v ]"

// New instantiates a [Node].
func New[W Weight](name, category string, weight W, options ...Option[W]) *Node[W] {
	h := &Node[W]{
		cfg:      defConfig,
		name:     name,
		category: category,
		weight:   weight,
	}

	for _, opt := range options {
		opt(h)
	}

	return h
}

// WithConfig configures the [Node] [Config].
func WithConfig[W Weight](cfg *Config) Option[W] {
	return func(h *Node[W]) { h.cfg = cfg }
}

// Config retrieves the [Node]'s Config.
func (h *Node[W]) Config() *Config { return h.cfg }

// Name retrieves the [Node]'s identifier; it is not guaranteed to be unique.
func (h *Node[W]) Name() string { return h.name }

// Category retrieves the [Node]'s grouping label.
func (h *Node[W]) Category() string { return h.category }

// Weight retrieves the [Node]'s weight.
func (h *Node[W]) Weight() W { return h.weight }

// Add appends children to a [Node], in argument order.
//
// Duplicate names are permitted & preserved.
func (h *Node[W]) Add(children ...*Node[W]) {
	for _, child := range children {
		if child == nil {
			continue
		}

		if h.debug() {
			h.cfg.Logger.Debugf("add (%s) to (%s)", child.name, h.name)
		}
		h.children = append(h.children, child)
	}
}

// Remove detaches the first immediate child named as the argument.
//
// The remaining children keep their order; an absent name is a no-op reported by ok.
func (h *Node[W]) Remove(child *Node[W]) (ok bool) {
	if child == nil {
		return
	}

	_, err := h.PopChild(child.name)

	return err == nil
}

// PopChild removes the first immediate child with some name, returning it's reference.
func (h *Node[W]) PopChild(name string) (child *Node[W], err error) {
	index := slices.IndexFunc(h.children, func(c *Node[W]) bool { return c.name == name })
	if index < 0 {
		err = fmt.Errorf("child (%s) of (%s): %w", name, h.name, ErrNotFound)
		return
	}

	child = h.children[index]
	h.children = slices.Delete(h.children, index, index+1)

	if h.debug() {
		h.cfg.Logger.Debugf("removed (%s) from (%s)", name, h.name)
	}

	return
}

// Children lists a snapshot of the immediate children for a [Node].
//
// Mutating the returned List does not affect the Node.
func (h *Node[W]) Children() List[W] { return slices.Clone(h.children) }

// String describes the [Node] without its children.
func (h *Node[W]) String() string { return fmt.Sprintf(describeFmt, h.name, h.category, h.weight) }

func (h *Node[W]) debug() bool { return h.cfg != nil && h.cfg.Debug }
