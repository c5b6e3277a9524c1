package dto

import (
	"net/http"
	"strconv"
	"strings"

	"fixmycondo/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// SortColumns maps a public sort_by value to the qualified column it orders by.
type SortColumns map[string]string

func NewSortColumns(table string, fields ...string) SortColumns {
	columns := make(SortColumns, len(fields))
	for _, field := range fields {
		columns[field] = table + "." + field
	}

	return columns
}

type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir" enums:"ASC,DESC"`
}

// FromRequest reads pagination and ordering from the query string. Page and limit fall back to
// their defaults and limit is capped. sort_by is only honoured when sortable knows it, so SortBy
// always holds a trusted column name.
func (q *QueryParams) FromRequest(r *http.Request, sortable SortColumns) {
	values := r.URL.Query()

	q.Page = positive(values.Get(constant.RequestParamPage), constant.DefaultValuePage)
	q.Limit = min(positive(values.Get(constant.RequestParamLimit), constant.DefaultValueLimit), constant.MaxValueLimit)

	column, ok := sortable[strings.ToLower(values.Get(constant.RequestParamSortBy))]
	if !ok {
		return
	}

	q.SortBy = column
	q.SortDir = SortDirDesc

	if strings.EqualFold(values.Get(constant.RequestParamSortDir), SortDirAsc) {
		q.SortDir = SortDirAsc
	}
}

// OrDefault fills the ordering when the request did not pick one.
func (q QueryParams) OrDefault(column, dir string) QueryParams {
	if q.SortBy == "" {
		q.SortBy = column
		q.SortDir = dir
	}

	return q
}

func positive(raw string, fallback int) int {
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return fallback
	}

	return val
}
