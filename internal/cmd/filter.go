// SPDX-License-Identifier: MIT
package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/patterns/criteria"
	"gitlab.com/fisherprime/patterns/internal/config"
	"gitlab.com/fisherprime/patterns/internal/sample"
)

const recordKind = "Person"

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// filterResult holds the outcome of a filter.
type filterResult struct {
	filter  sample.Filter
	records []*criteria.Record
	err     error
}

func newFilterCommand(a *app) *cobra.Command {
	filterCmd := &cobra.Command{
		Use:   "filter [expression...]",
		Short: "Filter the sample people with criteria expressions",
		Long: `filter evaluates criteria expressions against the sample people.

An expression is a named criterion (male, female, single, married), eq(field,value)
or and/or over two or more expressions. Without arguments the demonstration filters
are evaluated.`,
		Example: `  patterns filter
  patterns filter 'and(single,male)' 'or(eq(name,"Laura"),married)'`,
		RunE: func(cmd *cobra.Command, args []string) error { return a.runFilter(cmd, args) },
	}

	flags := filterCmd.Flags()
	flags.Int("workers", 0, "filters evaluated concurrently (default from configuration)")
	_ = a.v.BindPFlag(config.KeyWorkers, flags.Lookup("workers"))

	return filterCmd
}

func (a *app) runFilter(cmd *cobra.Command, args []string) (err error) {
	filters := sample.Filters()
	if len(args) > 0 {
		filters = make([]sample.Filter, len(args))
		for index, arg := range args {
			filters[index] = sample.Filter{Title: arg, Expression: arg}
		}
	}

	results, err := a.evaluate(cmd.Context(), filters, sample.Persons())
	if err != nil {
		return
	}

	out := cmd.OutOrStdout()
	for index, result := range results {
		if result.err != nil {
			return result.err
		}

		if index > 0 {
			fmt.Fprintln(out)
		}
		if err = a.printRecords(out, result); err != nil {
			return
		}
	}

	return
}

// evaluate parses & evaluates filters on a worker pool, predicates being safe for concurrent
// evaluation.
func (a *app) evaluate(ctx context.Context, filters []sample.Filter, records []*criteria.Record) (results []filterResult, err error) {
	pool, err := ants.NewPool(a.cfg.Workers)
	if err != nil {
		return
	}
	defer pool.Release()

	named := criteria.WithNamed(sample.Named())
	results = make([]filterResult, len(filters))

	wg := new(sync.WaitGroup)
	for index := range filters {
		index := index
		wg.Add(1)
		if err = pool.Submit(func() {
			defer wg.Done()

			result := filterResult{filter: filters[index]}
			var predicate *criteria.Predicate
			if predicate, result.err = criteria.Parse(ctx, result.filter.Expression, named,
				criteria.WithLogger(a.logger), criteria.WithDebug(a.cfg.Debug)); result.err == nil {
				result.records = predicate.Evaluate(records)
			}

			a.logger.WithField("filter", result.filter.Expression).Debugf("matched %d records", len(result.records))
			results[index] = result
		}); err != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()

	return
}

func (a *app) printRecords(out io.Writer, result filterResult) (err error) {
	if _, err = fmt.Fprintf(out, "%s: \n", result.filter.Title); err != nil {
		return
	}

	if a.cfg.Style == config.StylePlain {
		for _, r := range result.records {
			if _, err = fmt.Fprintln(out, r.Describe(recordKind)); err != nil {
				return
			}
		}

		return
	}

	if len(result.records) < 1 {
		_, err = fmt.Fprintln(out, "(no records)")
		return
	}

	fieldNames := result.records[0].Names()
	headers := make([]string, len(fieldNames))
	for index, name := range fieldNames {
		headers[index] = criteria.Label(name)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range result.records {
		row := make([]string, len(fieldNames))
		for index, name := range fieldNames {
			row[index], _ = r.Get(name)
		}
		t.Row(row...)
	}

	_, err = fmt.Fprintln(out, t)

	return
}
