// SPDX-License-Identifier: MIT

// Package sample holds the demonstration data sets.
package sample

import (
	"gitlab.com/fisherprime/patterns/criteria"
	"gitlab.com/fisherprime/patterns/hierarchy"
)

// Record field names.
const (
	FieldName          = "name"
	FieldGender        = "gender"
	FieldMaritalStatus = "maritalStatus"
)

// Employees builds the sample organisation, attaching each subordinate explicitly.
func Employees(options ...hierarchy.Option[int]) *hierarchy.Node[int] {
	ceo := hierarchy.New("John", "CEO", 30000, options...)

	headSales := hierarchy.New("Robert", "Head Sales", 20000, options...)
	headMarketing := hierarchy.New("Michel", "Head Marketing", 20000, options...)

	clerk1 := hierarchy.New("Laura", "Marketing", 10000, options...)
	clerk2 := hierarchy.New("Bob", "Marketing", 10000, options...)

	salesExecutive1 := hierarchy.New("Richard", "Sales", 10000, options...)
	salesExecutive2 := hierarchy.New("Rob", "Sales", 10000, options...)

	ceo.Add(headSales, headMarketing)
	headSales.Add(salesExecutive1, salesExecutive2)
	headMarketing.Add(clerk1, clerk2)

	return ceo
}

// EmployeeSource lists the sample organisation as flat records naming their manager.
func EmployeeSource() []hierarchy.Builder[int] {
	return []hierarchy.Builder[int]{
		hierarchy.NewDefaultBuilder("Laura", "Marketing", 10000, "Michel"),
		hierarchy.NewDefaultBuilder("Bob", "Marketing", 10000, "Michel"),
		hierarchy.NewDefaultBuilder("Richard", "Sales", 10000, "Robert"),
		hierarchy.NewDefaultBuilder("Rob", "Sales", 10000, "Robert"),
		hierarchy.NewDefaultBuilder("Robert", "Head Sales", 20000, "John"),
		hierarchy.NewDefaultBuilder("Michel", "Head Marketing", 20000, "John"),
		hierarchy.NewDefaultBuilder("John", "CEO", 30000, ""),
	}
}

// Persons lists the sample people to filter.
func Persons() []*criteria.Record {
	return []*criteria.Record{
		person("Robert", "Male", "Single"),
		person("John", "Male", "Married"),
		person("Laura", "Female", "Married"),
		person("Diana", "Female", "Single"),
		person("Mike", "Male", "Single"),
		person("Bobby", "Male", "Single"),
	}
}

// Named lists the predicates referable by name in filter expressions.
func Named() map[string]*criteria.Predicate {
	return map[string]*criteria.Predicate{
		"male":    criteria.FieldEquals(FieldGender, "male"),
		"female":  criteria.FieldEquals(FieldGender, "female"),
		"single":  criteria.FieldEquals(FieldMaritalStatus, "single"),
		"married": criteria.FieldEquals(FieldMaritalStatus, "married"),
	}
}

// Filter is a titled filter expression.
type Filter struct {
	Title      string
	Expression string
}

// Filters lists the demonstration filters.
func Filters() []Filter {
	return []Filter{
		{Title: "Males", Expression: "male"},
		{Title: "Females", Expression: "female"},
		{Title: "Single Males", Expression: "and(single,male)"},
		{Title: "Single Or Females", Expression: "or(single,female)"},
	}
}

func person(name, gender, maritalStatus string) *criteria.Record {
	return criteria.NewRecord(
		criteria.Field{Name: FieldName, Value: name},
		criteria.Field{Name: FieldGender, Value: gender},
		criteria.Field{Name: FieldMaritalStatus, Value: maritalStatus},
	)
}
