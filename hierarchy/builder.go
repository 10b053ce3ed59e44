// SPDX-License-Identifier: MIT
package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

type (
	// Builder defines an interface for entities that can be read into a [Node].
	Builder[W Weight] interface {
		// Name obtains the name stored by the Builder.
		Name() string
		// Category obtains the grouping label stored by the Builder.
		Category() string
		// Weight obtains the weight stored by the Builder.
		Weight() W
		// Parent obtains the parent's name stored by the Builder, empty for the root node.
		Parent() string
	}

	// BuildSource is a wrapper type for []Builder used to generate the [Node].
	BuildSource[W Weight] struct {
		debug  bool
		logger logrus.FieldLogger

		list []Builder[W]
	}

	// DefaultBuilder is a sample Builder interface implementation.
	DefaultBuilder[W Weight] struct {
		name     string
		category string
		weight   W
		parent   string
	}

	// BuildOption defines the BuildSource functional option type.
	BuildOption[W Weight] func(*BuildSource[W])
)

// Hierarchy building errors.
var (
	ErrBuildHierarchy = errors.New("failed to build hierarchy")

	ErrMissingRootNode   = errors.New("missing root node")
	ErrMultipleRootNodes = errors.New("hierarchy has multiple root nodes")

	ErrEmptyHierarchySrc   = errors.New("empty hierarchy source")
	ErrInvalidHierarchySrc = errors.New("invalid hierarchy source")

	ErrLocateParents = errors.New("unable to locate parents(s)")

	ErrPanicked = errors.New("recovery from panic")
)

// NewDefaultBuilder instantiates a DefaultBuilder.
func NewDefaultBuilder[W Weight](name, category string, weight W, parent string) *DefaultBuilder[W] {
	return &DefaultBuilder[W]{name: name, category: category, weight: weight, parent: parent}
}

// Name obtains the name stored by the DefaultBuilder.
func (d *DefaultBuilder[W]) Name() string { return d.name }

// Category obtains the grouping label stored by the DefaultBuilder.
func (d *DefaultBuilder[W]) Category() string { return d.category }

// Weight obtains the weight stored by the DefaultBuilder.
func (d *DefaultBuilder[W]) Weight() W { return d.weight }

// Parent obtains the parent stored by the DefaultBuilder
func (d *DefaultBuilder[W]) Parent() string { return d.parent }

// NewBuildSource instantiates a BuildSource.
func NewBuildSource[W Weight](options ...BuildOption[W]) *BuildSource[W] {
	b := &BuildSource[W]{
		list:   []Builder[W]{},
		logger: defConfig.Logger,
	}

	for _, opt := range options {
		opt(b)
	}

	return b
}

// WithBuilders configures the underlying list.
//
// The list is copied, Build consumes the BuildSource's copy.
func WithBuilders[W Weight](list []Builder[W]) BuildOption[W] {
	return func(b *BuildSource[W]) { b.list = append([]Builder[W]{}, list...) }
}

// WithBuildLogger configures the logger option.
func WithBuildLogger[W Weight](logger logrus.FieldLogger) BuildOption[W] {
	return func(b *BuildSource[W]) { b.logger = logger }
}

// WithDebug configures the debug option
func WithDebug[W Weight](debug bool) BuildOption[W] {
	return func(b *BuildSource[W]) { b.debug = debug }
}

// Len retrieves the length of the BuildSource.
func (b *BuildSource[W]) Len() int { return len(b.list) }

// Cut a value at some index from the BuildSource.
func (b *BuildSource[W]) Cut(index int) {
	if index == 0 {
		b.list = b.list[1:]
		return
	}

	upper := index + 1
	// Cut upto (excluding) `index`, cut from (including) `index+1`.
	b.list = append(b.list[:index], b.list[upper:]...)
}

// Build generates a [Node] from the BuildSource.
//
// Children are added to their parent in source order once the parent is part of the hierarchy;
// a parent name resolves to the first node in depth-first pre-order bearing it.
func (b *BuildSource[W]) Build(ctx context.Context) (h *Node[W], err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrBuildHierarchy, err)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil {
			// Skip expensive operation if not debug.
			if b.debug {
				b.logger.Debugf("current hierarchy: %s \nsource remnants: %s", spew.Sdump(h), spew.Sdump(b.list))
			}

			err = fmt.Errorf("%w: %w", ErrInvalidHierarchySrc, err)
		}
	}()

	if b.Len() < 1 {
		err = ErrEmptyHierarchySrc
		return
	}

	cfg := &Config{Logger: b.logger, Debug: b.debug}
	cache := make(map[string]struct{})

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		rootIndex := 0
		for index := range b.list {
			if b.list[index].Parent() != "" {
				continue
			}

			// Disallow additional root node(s).
			if h != nil {
				err = ErrMultipleRootNodes
				return
			}
			h = newFromBuilder(b.list[index], cfg)
			cache[h.name] = struct{}{}

			rootIndex = index
		}
		if h == nil {
			err = ErrMissingRootNode
			return
		}

		// Remove the root node from the build source.
		if b.debug {
			b.logger.Debugf("source: %+v\n", b.list)
		}
		b.Cut(rootIndex)

		for {
			lenSrc := b.Len()
			if lenSrc < 1 {
				return
			}

			added := 0
			for index := 0; index < b.Len(); {
				node := b.list[index]
				parentName := node.Parent()

				// Parent not in hierarchy, yet.
				if _, ok := cache[parentName]; !ok {
					index++
					continue
				}

				var parent *Node[W]
				if parent, err = h.Locate(ctx, parentName); err != nil {
					return
				}

				child := newFromBuilder(node, cfg)
				parent.Add(child)
				cache[child.name] = struct{}{}

				// Remove added node from the build source.
				b.Cut(index)
				added++
			}

			if added < 1 {
				err = fmt.Errorf("%w for: %s", ErrLocateParents, spew.Sprint(b.list))
				return
			}
		}
	}
}

func newFromBuilder[W Weight](b Builder[W], cfg *Config) *Node[W] {
	return New(b.Name(), b.Category(), b.Weight(), WithConfig[W](cfg))
}
