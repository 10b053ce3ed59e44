// SPDX-License-Identifier: MIT
package hierarchy

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestBuildSource_Build(t *testing.T) {
	type args struct {
		ctx context.Context
	}

	logger := logrus.New()

	tests := []struct {
		name       string
		list       []Builder[int]
		args       args
		wantLevels [][]string
		wantErr    error
	}{
		{
			name: "valid",
			list: []Builder[int]{
				NewDefaultBuilder("John", "CEO", 30000, ""),
				NewDefaultBuilder("Robert", "Head Sales", 20000, "John"),
				NewDefaultBuilder("Richard", "Sales", 10000, "Robert"),
			},
			args:       args{context.Background()},
			wantLevels: [][]string{{"John"}, {"Robert"}, {"Richard"}},
		},
		{
			name: "valid (unordered source)",
			list: []Builder[int]{
				NewDefaultBuilder("Laura", "Marketing", 10000, "Michel"),
				NewDefaultBuilder("Richard", "Sales", 10000, "Robert"),
				NewDefaultBuilder("Michel", "Head Marketing", 20000, "John"),
				NewDefaultBuilder("Robert", "Head Sales", 20000, "John"),
				NewDefaultBuilder("John", "CEO", 30000, ""),
				NewDefaultBuilder("Bob", "Marketing", 10000, "Michel"),
			},
			args:       args{context.Background()},
			wantLevels: [][]string{{"John"}, {"Michel", "Robert"}, {"Bob", "Laura", "Richard"}},
		},
		{
			name:    "empty source",
			list:    []Builder[int]{},
			args:    args{context.Background()},
			wantErr: ErrEmptyHierarchySrc,
		},
		{
			name:    "missing root node",
			list:    []Builder[int]{NewDefaultBuilder("Rob", "Sales", 10000, "Robert")},
			args:    args{context.Background()},
			wantErr: ErrMissingRootNode,
		},
		{
			name: "multiple root nodes",
			list: []Builder[int]{
				NewDefaultBuilder("John", "CEO", 30000, ""),
				NewDefaultBuilder("Jane", "CEO", 30000, ""),
			},
			args:    args{context.Background()},
			wantErr: ErrMultipleRootNodes,
		},
		{
			name: "orphaned node",
			list: []Builder[int]{
				NewDefaultBuilder("John", "CEO", 30000, ""),
				NewDefaultBuilder("Rob", "Sales", 10000, "Robert"),
			},
			args:    args{context.Background()},
			wantErr: ErrLocateParents,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuildSource(
				WithBuilders(tt.list),
				WithBuildLogger[int](logger),
				WithDebug[int](true),
			)

			gotH, err := b.Build(tt.args.ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BuildSource.Build() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				for _, wrapper := range []error{ErrBuildHierarchy, ErrInvalidHierarchySrc} {
					if !errors.Is(err, wrapper) {
						t.Errorf("BuildSource.Build() error = %v, want wrapped %v", err, wrapper)
					}
				}
				return
			}

			gotLevels, err := gotH.ByLevel(tt.args.ctx)
			if err != nil {
				t.Errorf("BuildSource.Build()->Node.ByLevel() error = %v", err)
				return
			}
			if !reflect.DeepEqual(gotLevels.Names(), tt.wantLevels) {
				t.Errorf("BuildSource.Build() = %v, want %v", gotLevels.Names(), tt.wantLevels)
			}
		})
	}
}

func TestBuildSource_Cut(t *testing.T) {
	list := []Builder[int]{
		NewDefaultBuilder("A", "", 0, ""),
		NewDefaultBuilder("B", "", 0, "A"),
		NewDefaultBuilder("C", "", 0, "A"),
	}

	b := NewBuildSource(WithBuilders(list))
	b.Cut(1)
	b.Cut(0)

	if b.Len() != 1 || b.list[0].Name() != "C" {
		t.Errorf("BuildSource.Cut() = %+v, want [C]", b.list)
	}
	// The configured list is copied.
	if len(list) != 3 || list[1].Name() != "B" {
		t.Errorf("BuildSource.Cut() modified the source list: %+v", list)
	}
}
