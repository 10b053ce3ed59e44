// SPDX-License-Identifier: MIT
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/patterns/hierarchy"
	"gitlab.com/fisherprime/patterns/internal/config"
	"gitlab.com/fisherprime/patterns/internal/sample"
)

// ErrInvalidRemoval is returned for a malformed --remove value.
var ErrInvalidRemoval = errors.New("invalid removal, want parent/child")

const removalSplitter = "/"

var rootStyle = lipgloss.NewStyle().Bold(true)

type orgChartOpts struct {
	flat    bool
	summary bool
	remove  []string
}

func newOrgChartCommand(a *app) *cobra.Command {
	opts := new(orgChartOpts)

	orgChartCmd := &cobra.Command{
		Use:   "orgchart",
		Short: "Print the sample organisation's employees",
		Long: `orgchart builds the sample organisation, a tree of employees, and prints every
employee depth-first: a manager precedes their subordinates.`,
		Example: `  patterns orgchart
  patterns orgchart --flat --remove Robert/Rob --summary --style plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return a.runOrgChart(cmd, opts) },
	}

	flags := orgChartCmd.Flags()
	flags.BoolVar(&opts.flat, "flat", false, "build the organisation from flat manager records")
	flags.BoolVar(&opts.summary, "summary", false, "print headcount, salaries & depth")
	flags.StringSliceVar(&opts.remove, "remove", nil, "remove a subordinate, as manager/subordinate")

	return orgChartCmd
}

func (a *app) runOrgChart(cmd *cobra.Command, opts *orgChartOpts) (err error) {
	ctx := cmd.Context()
	hCfg := &hierarchy.Config{Logger: a.logger, Debug: a.cfg.Debug}

	var root *hierarchy.Node[int]
	if opts.flat {
		source := hierarchy.NewBuildSource(
			hierarchy.WithBuilders(sample.EmployeeSource()),
			hierarchy.WithBuildLogger[int](a.logger),
			hierarchy.WithDebug[int](a.cfg.Debug),
		)
		if root, err = source.Build(ctx); err != nil {
			return
		}
	} else {
		root = sample.Employees(hierarchy.WithConfig[int](hCfg))
	}

	for _, removal := range opts.remove {
		if err = removeEmployee(cmd, root, removal); err != nil {
			return
		}
	}

	out := cmd.OutOrStdout()
	if a.cfg.Style == config.StylePlain {
		err = root.Render(ctx, out)
	} else {
		_, err = fmt.Fprintln(out, orgTree(root))
	}
	if err != nil || !opts.summary {
		return
	}

	return summarize(cmd, out, root)
}

// removeEmployee detaches the subordinate of a manager given as manager/subordinate.
func removeEmployee(cmd *cobra.Command, root *hierarchy.Node[int], removal string) (err error) {
	managerName, subordinateName, ok := strings.Cut(removal, removalSplitter)
	if !ok || managerName == "" || subordinateName == "" {
		return fmt.Errorf("%w: %s", ErrInvalidRemoval, removal)
	}

	manager, err := root.Locate(cmd.Context(), managerName)
	if err != nil {
		return
	}

	if !manager.Remove(hierarchy.New(subordinateName, "", 0)) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s has no subordinate %s\n", managerName, subordinateName)
	}

	return
}

// orgTree renders a Node & its descendants as a lipgloss tree.
func orgTree(node *hierarchy.Node[int]) *tree.Tree {
	t := tree.Root(node.String()).RootStyle(rootStyle)

	for _, child := range node.Children() {
		if len(child.Children()) < 1 {
			t.Child(child.String())
			continue
		}

		t.Child(orgTree(child))
	}

	return t
}

func summarize(cmd *cobra.Command, out io.Writer, root *hierarchy.Node[int]) (err error) {
	ctx := cmd.Context()

	size, err := root.Size(ctx)
	if err != nil {
		return
	}
	total, err := root.TotalWeight(ctx)
	if err != nil {
		return
	}
	depth, err := root.Depth(ctx)
	if err != nil {
		return
	}
	leaves, err := root.Leaves(ctx)
	if err != nil {
		return
	}

	_, err = fmt.Fprintf(out, "\nEmployees: %d\nSalaries: %d\nLevels: %d\nWithout subordinates: %s\n",
		size, total, depth, strings.Join(leaves.Names(), ", "))

	return
}
