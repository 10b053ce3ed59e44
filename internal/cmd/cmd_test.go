// SPDX-License-Identifier: MIT
package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	rootCmd := NewRootCommand()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	err = rootCmd.ExecuteContext(context.Background())

	return outBuf.String(), errBuf.String(), err
}

func TestOrgChart_plain(t *testing.T) {
	for _, flat := range []string{"--flat=false", "--flat=true"} {
		t.Run(flat, func(t *testing.T) {
			stdout, _, err := execute(t, "orgchart", "--style", "plain", flat)
			require.NoError(t, err)

			want := strings.Join([]string{
				"Employee :[ Name : John, dept : CEO, salary :30000 ]",
				"  Employee :[ Name : Robert, dept : Head Sales, salary :20000 ]",
				"    Employee :[ Name : Richard, dept : Sales, salary :10000 ]",
				"    Employee :[ Name : Rob, dept : Sales, salary :10000 ]",
				"  Employee :[ Name : Michel, dept : Head Marketing, salary :20000 ]",
				"    Employee :[ Name : Laura, dept : Marketing, salary :10000 ]",
				"    Employee :[ Name : Bob, dept : Marketing, salary :10000 ]",
			}, "\n") + "\n"
			assert.Equal(t, want, stdout)
		})
	}
}

func TestOrgChart_removeAndSummary(t *testing.T) {
	stdout, stderr, err := execute(t, "orgchart", "--style", "plain",
		"--remove", "Robert/Rob", "--remove", "Michel/Nobody", "--summary")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "Name : Rob,")
	assert.Contains(t, stdout, "Employees: 6\n")
	assert.Contains(t, stdout, "Salaries: 100000\n")
	assert.Contains(t, stdout, "Levels: 3\n")
	assert.Contains(t, stdout, "Without subordinates: Richard, Laura, Bob\n")
	assert.Contains(t, stderr, "Michel has no subordinate Nobody")
}

func TestOrgChart_errors(t *testing.T) {
	_, _, err := execute(t, "orgchart", "--remove", "Robert")
	assert.ErrorIs(t, err, ErrInvalidRemoval)

	_, _, err = execute(t, "orgchart", "--remove", "Nobody/Rob")
	assert.Error(t, err)

	_, _, err = execute(t, "orgchart", "--style", "fancy")
	assert.Error(t, err)
}

func TestOrgChart_tree(t *testing.T) {
	stdout, _, err := execute(t, "orgchart")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "Name : John")
	assert.Contains(t, lines[1], "Name : Robert")
	assert.Contains(t, lines[6], "Name : Bob")
}

func TestFilter_plain(t *testing.T) {
	stdout, _, err := execute(t, "filter", "--style", "plain", "--workers", "2")
	require.NoError(t, err)

	want := `Males: 
Person : [ Name : Robert, Gender : Male, Marital Status : Single ]
Person : [ Name : John, Gender : Male, Marital Status : Married ]
Person : [ Name : Mike, Gender : Male, Marital Status : Single ]
Person : [ Name : Bobby, Gender : Male, Marital Status : Single ]

Females: 
Person : [ Name : Laura, Gender : Female, Marital Status : Married ]
Person : [ Name : Diana, Gender : Female, Marital Status : Single ]

Single Males: 
Person : [ Name : Robert, Gender : Male, Marital Status : Single ]
Person : [ Name : Mike, Gender : Male, Marital Status : Single ]
Person : [ Name : Bobby, Gender : Male, Marital Status : Single ]

Single Or Females: 
Person : [ Name : Robert, Gender : Male, Marital Status : Single ]
Person : [ Name : Diana, Gender : Female, Marital Status : Single ]
Person : [ Name : Mike, Gender : Male, Marital Status : Single ]
Person : [ Name : Bobby, Gender : Male, Marital Status : Single ]
Person : [ Name : Laura, Gender : Female, Marital Status : Married ]
`
	assert.Equal(t, want, stdout)
}

func TestFilter_expressions(t *testing.T) {
	stdout, _, err := execute(t, "filter", `or(eq(name,"Laura"),married)`, "and(male,female)")
	require.NoError(t, err)

	assert.Contains(t, stdout, `or(eq(name,"Laura"),married): `)
	assert.Contains(t, stdout, "Laura")
	assert.Contains(t, stdout, "John")
	assert.Contains(t, stdout, "Marital Status")
	assert.Contains(t, stdout, "and(male,female): \n(no records)\n")
}

func TestFilter_invalidExpression(t *testing.T) {
	_, _, err := execute(t, "filter", "and(single")
	assert.Error(t, err)

	_, _, err = execute(t, "filter", "--workers", "0")
	assert.Error(t, err)
}
