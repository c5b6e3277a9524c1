package repository

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Joiner is implemented by models whose columns span more than one table. The returned
// JOIN clause is appended to every read.
type Joiner interface {
	GetJoinQuery() string
}

// column is one selectable field. Fields tagged `table:"x"` come from a joined table and
// may rename the source column with `column:"y"`, which is then aliased to the db tag.
type column struct {
	name  string
	table string
	alias string
}

func (c column) String() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

func (c column) key() string {
	if c.alias != "" {
		return c.alias
	}

	return c.name
}

// schema is the column layout of a model, derived once from its struct tags.
type schema struct {
	columns []column
	insert  []string
	join    string
}

func newSchema(table string, model any) schema {
	columns, insert := scanColumns(table, reflect.TypeOf(model))

	s := schema{columns: columns, insert: insert}
	if joiner, ok := model.(Joiner); ok {
		s.join = joiner.GetJoinQuery()
	}

	return s
}

func scanColumns(table string, typ reflect.Type) (columns []column, insert []string) {
	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsert := scanColumns(table, field.Type)
			columns = append(columns, nested...)
			insert = append(insert, nestedInsert...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		source := field.Tag.Get("table")
		if source == "" || source == table {
			columns = append(columns, column{name: dbTag, table: table})
			insert = append(insert, dbTag)

			continue
		}

		if name := field.Tag.Get("column"); name != "" {
			columns = append(columns, column{name: name, table: source, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: source})
		}
	}

	return columns, insert
}

// selectList renders the requested columns, or all of them when none are named.
func (s schema) selectList(only ...string) string {
	parts := make([]string, 0, len(s.columns))

	for _, col := range s.columns {
		if len(only) > 0 && !slices.Contains(only, col.key()) {
			continue
		}

		parts = append(parts, col.String())
	}

	return strings.Join(parts, ", ")
}

func (s schema) insertQuery(table string) string {
	placeholders := make([]string, len(s.insert))
	for i, col := range s.insert {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(s.insert, ", "), strings.Join(placeholders, ", "))
}
