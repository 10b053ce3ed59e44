// SPDX-License-Identifier: MIT
package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// REF: https://www.geeksforgeeks.org/generic-tree-level-order-traversal
//
// REF: https://www.geeksforgeeks.org/iterative-preorder-traversal-of-a-n-ary-tree

type (
	// Config defines configuration options for the [BuildSource] & [Node]'s operations.
	Config struct {
		// Logger for [Node] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// List is a type wrapper for []*Node.
	List[W Weight] []*Node[W]

	// LevelList groups nodes by their distance from the walked Node.
	LevelList[W Weight] []List[W]

	// TraverseComm defines a channel to communicate info between [Node] operations & it's callers.
	TraverseComm[W Weight] struct {
		node  *Node[W]
		err   error
		depth int
	}
)

const (
	traverseBufferSize = 10

	renderIndent = "  "
)

// Errors encountered when handling a Node.
var (
	ErrNotFound = errors.New("not found")

	ErrNoLeaves = errors.New("lacks leaves; tree is cyclic")
)

var defConfig = DefConfig()

// DefConfig obtains the package's [Node] default options.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// Node obtains the walked node.
func (t TraverseComm[W]) Node() *Node[W] { return t.node }

// Depth obtains the walked node's distance from the walk's origin.
func (t TraverseComm[W]) Depth() int { return t.depth }

// Err obtains the error terminating a walk.
func (t TraverseComm[W]) Err() error { return t.err }

// Walk performs depth-first pre-order traversal on a [Node], pushing its values to its channel
// argument: a node is visited before its children, children left to right.
//
// The channel is closed once the walk ends; a context.Context is used to terminate the walk, the
// context's error being the last message sent.
//
// NOTE: A node added as its own descendant results in an endless walk.
func (h *Node[W]) Walk(ctx context.Context, traverseChan chan TraverseComm[W]) {
	defer close(traverseChan)

	// Default operation is to walk.
	if h == nil {
		return
	}

	stack := []TraverseComm[W]{{node: h}}

	// Use a var for top to ensure the outer scope stack is modified.
	var top TraverseComm[W]
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			// Received context cancellation.
			traverseChan <- TraverseComm[W]{err: ctx.Err()}
			return
		default:
		}

		// Pop from stack.
		top, stack = stack[len(stack)-1], stack[:len(stack)-1]
		traverseChan <- top

		// Push children in reverse, the leftmost child is visited first.
		for index := len(top.node.children) - 1; index >= 0; index-- {
			stack = append(stack, TraverseComm[W]{node: top.node.children[index], depth: top.depth + 1})
		}
	}
}

// walk runs Walk in a goroutine calling fn for every node, stopping on fn's error.
func (h *Node[W]) walk(ctx context.Context, fn func(TraverseComm[W]) error) (err error) {
	walkCtx, walkCancel := context.WithCancel(ctx)
	defer walkCancel()

	traverseChan := make(chan TraverseComm[W], traverseBufferSize)
	go h.Walk(walkCtx, traverseChan)

	for resl := range traverseChan {
		// Drain the channel after an error.
		if err != nil {
			continue
		}

		if err = resl.err; err != nil {
			continue
		}

		if err = fn(resl); err != nil {
			walkCancel()
		}
	}

	return
}

// All lists the [Node] & its descendants in depth-first pre-order.
func (h *Node[W]) All(ctx context.Context) (nodes List[W], err error) {
	nodes = make(List[W], 0)

	err = h.walk(ctx, func(resl TraverseComm[W]) error {
		nodes = append(nodes, resl.node)
		return nil
	})

	if h.debug() {
		h.cfg.Logger.Debugf("walked: %+v", nodes.Names())
	}

	return
}

// errStopWalk terminates a walk early without surfacing as an error.
var errStopWalk = errors.New("stop walk")

// Locate searches for a name & returns the first matching [Node] in depth-first pre-order.
func (h *Node[W]) Locate(ctx context.Context, name string) (node *Node[W], err error) {
	if h == nil {
		err = fmt.Errorf("(%s) %w", name, ErrNotFound)
		return
	}

	if h.name == name {
		return h, nil
	}

	err = h.walk(ctx, func(resl TraverseComm[W]) error {
		if resl.node.name != name {
			return nil
		}
		node = resl.node

		return errStopWalk
	})
	if errors.Is(err, errStopWalk) {
		return node, nil
	}
	if err == nil {
		err = fmt.Errorf("(%s) %w", name, ErrNotFound)
	}

	return
}

// Leaves returns an array of terminal [Node](s) in depth-first pre-order.
func (h *Node[W]) Leaves(ctx context.Context) (termNodes List[W], err error) {
	termNodes = make(List[W], 0)

	if err = h.walk(ctx, func(resl TraverseComm[W]) error {
		if len(resl.node.children) < 1 {
			termNodes = append(termNodes, resl.node)
		}
		return nil
	}); err != nil {
		return
	}

	if len(termNodes) < 1 {
		err = ErrNoLeaves
	}

	return
}

// ByLevel lists a [Node] & its descendants grouped by level, performing breadth-first traversal.
//
// The receiver makes up the first level.
func (h *Node[W]) ByLevel(ctx context.Context) (levels LevelList[W], err error) {
	levels = make(LevelList[W], 0)
	if h == nil {
		return
	}

	// Level order traversal.
	queue := List[W]{h}
	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		// The queue holds exactly one level at this point.
		peers := queue
		queue = make(List[W], 0)
		for _, front := range peers {
			queue = append(queue, front.children...)
		}

		levels = append(levels, peers)
	}

	if h.debug() {
		h.cfg.Logger.Debugf("levels: %+v", levels.Names())
	}

	return
}

// Size counts the [Node] & its descendants.
func (h *Node[W]) Size(ctx context.Context) (size int, err error) {
	err = h.walk(ctx, func(TraverseComm[W]) error {
		size++
		return nil
	})

	return
}

// TotalWeight sums the weight of the [Node] & its descendants.
func (h *Node[W]) TotalWeight(ctx context.Context) (total W, err error) {
	err = h.walk(ctx, func(resl TraverseComm[W]) error {
		total += resl.node.weight
		return nil
	})

	return
}

// Depth obtains the number of levels in the [Node]; a leaf has a depth of 1.
func (h *Node[W]) Depth(ctx context.Context) (depth int, err error) {
	err = h.walk(ctx, func(resl TraverseComm[W]) error {
		if resl.depth >= depth {
			depth = resl.depth + 1
		}
		return nil
	})

	return
}

// Render writes the described [Node] & its descendants to w in depth-first pre-order, one line per
// node indented by level.
func (h *Node[W]) Render(ctx context.Context, w io.Writer) (err error) {
	return h.walk(ctx, func(resl TraverseComm[W]) (err error) {
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat(renderIndent, resl.depth), resl.node)
		return
	})
}

// Names returns an array of names for a [List].
func (l List[W]) Names() (names []string) {
	names = make([]string, len(l))
	for index := range l {
		names[index] = l[index].name
	}

	return
}

// Names returns an array-of array of names for a [LevelList].
func (l LevelList[W]) Names() (names [][]string) {
	names = make([][]string, len(l))
	for index := range l {
		names[index] = l[index].Names()
	}

	return
}
