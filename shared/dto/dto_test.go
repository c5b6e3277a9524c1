package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fixmycondo/shared/constant"
	"fixmycondo/shared/dto"
	"fixmycondo/shared/model"
)

func TestFilter_GetWhereClause(t *testing.T) {
	deadline := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality qualified by table",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "submitted", Table: "complaints"},
			wantWhere: "complaints.status = :status",
			wantArgs:  map[string]any{"status": "submitted"},
		},
		{
			name:      "custom argument name",
			filter:    dto.Filter{ArgName: "overdue_at", Field: "sla_deadline", Operator: dto.FilterOperatorLess, Value: deadline},
			wantWhere: "sla_deadline < :overdue_at",
			wantArgs:  map[string]any{"overdue_at": deadline},
		},
		{
			name:      "greater or equal",
			filter:    dto.Filter{Field: "end_time", Operator: dto.FilterOperatorGreaterEq, Value: 3},
			wantWhere: "end_time >= :end_time",
			wantArgs:  map[string]any{"end_time": 3},
		},
		{
			name:      "case insensitive like",
			filter:    dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "Lift"},
			wantWhere: "LOWER(title) LIKE LOWER(:title) ",
			wantArgs:  map[string]any{"title": "%Lift%"},
		},
		{
			name:      "in expands one argument per element",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}},
			wantWhere: "status IN (:status_0, :status_1) ",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:      "not in",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorNotIn, Value: []string{"closed"}},
			wantWhere: "status NOT IN (:status_0) ",
			wantArgs:  map[string]any{"status_0": "closed"},
		},
		{
			name:      "empty in matches nothing",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{}},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "empty not in matches everything",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorNotIn, Value: []string{}},
			wantWhere: "TRUE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "breach_notified_at", Operator: dto.FilterIsNull, Table: "complaints"},
			wantWhere: "complaints.breach_notified_at IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "status", Operator: "between", Value: 1},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	status := dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending"}
	owner := dto.Filter{Field: "user_id", Operator: dto.FilterOperatorEq, Value: "u-1"}

	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  int
	}{
		{
			name:      "defaults to and",
			group:     dto.FilterGroup{Filters: []any{status, owner}},
			wantWhere: "(status = :status AND user_id = :user_id)",
			wantArgs:  2,
		},
		{
			name:      "or",
			group:     dto.FilterGroup{Filters: []any{status, owner}, Operator: dto.FilterGroupOperatorOr},
			wantWhere: "(status = :status OR user_id = :user_id)",
			wantArgs:  2,
		},
		{
			name: "nested and negated",
			group: dto.FilterGroup{Filters: []any{
				owner,
				dto.FilterGroup{Filters: []any{status}, Not: true},
			}},
			wantWhere: "(user_id = :user_id AND NOT (status = :status))",
			wantArgs:  2,
		},
		{
			name:      "empty clauses and foreign values are skipped",
			group:     dto.FilterGroup{Filters: []any{dto.FilterGroup{}, "raw", owner}},
			wantWhere: "(user_id = :user_id)",
			wantArgs:  1,
		},
		{
			name:      "nothing to filter",
			group:     dto.FilterGroup{Not: true},
			wantWhere: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	sortable := dto.NewSortColumns("complaints", "created_at", "sla_deadline")

	tests := []struct {
		name  string
		query string
		want  dto.QueryParams
	}{
		{
			name:  "defaults",
			query: "",
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "known column with direction",
			query: "page=2&limit=20&sort_by=sla_deadline&sort_dir=asc",
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "complaints.sla_deadline", SortDir: dto.SortDirAsc},
		},
		{
			name:  "direction defaults to descending",
			query: "sort_by=CREATED_AT&sort_dir=sideways",
			want: dto.QueryParams{
				Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit,
				SortBy: "complaints.created_at", SortDir: dto.SortDirDesc,
			},
		},
		{
			name:  "unknown column is ignored",
			query: "sort_by=id%3BDROP%20TABLE%20complaints&sort_dir=ASC",
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "invalid paging falls back",
			query: "page=-1&limit=abc",
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "limit is capped",
			query: "limit=5000",
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/complaints?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, sortable)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_OrDefault(t *testing.T) {
	chosen := dto.QueryParams{SortBy: "facility_bookings.start_time", SortDir: dto.SortDirAsc}

	assert.Equal(t, chosen, chosen.OrDefault("facility_bookings.booking_date", dto.SortDirDesc))

	filled := dto.QueryParams{Page: 1}.OrDefault("facility_bookings.booking_date", dto.SortDirDesc)
	assert.Equal(t, "facility_bookings.booking_date", filled.SortBy)
	assert.Equal(t, dto.SortDirDesc, filled.SortDir)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total, limit int
		want         dto.Pagination
	}{
		{total: 0, limit: 10, want: dto.Pagination{}},
		{total: 10, limit: 10, want: dto.Pagination{TotalPage: 1, TotalData: 10}},
		{total: 11, limit: 10, want: dto.Pagination{TotalPage: 2, TotalData: 11}},
		{total: 7, limit: 0, want: dto.Pagination{TotalData: 7}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dto.NewPagination(tt.total, tt.limit))
	}
}

func TestMetadata_FromModel(t *testing.T) {
	at := time.Date(2025, 1, 2, 8, 30, 0, 0, time.UTC)

	var meta dto.Metadata
	meta.FromModel(model.NewMetadata("admin-1", at))

	assert.Equal(t, meta.CreatedAt, meta.ModifiedAt)
	assert.NotEmpty(t, meta.CreatedAt)
	assert.Equal(t, "admin-1", meta.CreatedBy)
	assert.Equal(t, "admin-1", meta.ModifiedBy)
}
