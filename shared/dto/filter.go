package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotIn     = "not_in"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
	FilterPlainQuery        = "plan"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one predicate rendered with named sqlx arguments. ArgName defaults to Field and must be
// unique inside a query unless two filters intentionally share a value.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, argName := f.column(), f.argName()

	if op, ok := comparisons[f.Operator]; ok {
		args[argName] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, argName), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[argName] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s) ", column, argName), args
	case FilterOperatorIn, FilterOperatorNotIn:
		return f.membership(column, argName, args)
	case FilterPlainQuery:
		query, _ := f.Value.(string)

		return fmt.Sprintf("(%s)", query), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

// membership expands a slice into one named argument per element.
// An empty set matches nothing for IN and everything for NOT IN.
func (f *Filter) membership(column, argName string, args map[string]any) (string, map[string]any) {
	keyword := "IN"
	if f.Operator == FilterOperatorNotIn {
		keyword = "NOT IN"
	}

	val := reflect.ValueOf(f.Value)
	if val.Kind() != reflect.Array && val.Kind() != reflect.Slice {
		return fmt.Sprintf("%s %s (%v) ", column, keyword, f.Value), args
	}

	if val.Len() == 0 {
		if f.Operator == FilterOperatorNotIn {
			return "TRUE", args
		}

		return "FALSE", args
	}

	named := make([]string, val.Len())

	for idx := range val.Len() {
		name := fmt.Sprintf("%s_%d", argName, idx)
		args[name] = val.Index(idx).Interface()
		named[idx] = ":" + name
	}

	return fmt.Sprintf("%s %s (%s) ", column, keyword, strings.Join(named, ", ")), args
}

// FilterGroup joins Filters (Filter or FilterGroup values) with Operator. Not negates the whole group.
type FilterGroup struct {
	Filters  []any
	Operator string
	Not      bool
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)
		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	clause := fmt.Sprintf("(%s)", strings.Join(whereClause, " "+operator+" "))
	if f.Not {
		clause = "NOT " + clause
	}

	return clause, args
}
