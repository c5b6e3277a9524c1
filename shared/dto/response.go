package dto

import (
	"fixmycondo/shared/constant"
	"fixmycondo/shared/model"
	"fixmycondo/shared/timezone"
)

type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	m.CreatedAt = timezone.Format(meta.CreatedAt, constant.DateFormat)
	m.ModifiedAt = timezone.Format(meta.ModifiedAt, constant.DateFormat)
	m.CreatedBy = meta.CreatedBy
	m.ModifiedBy = meta.ModifiedBy
}

// Pagination is embedded by every list response.
type Pagination struct {
	TotalPage int `json:"total_page"`
	TotalData int `json:"total_data"`
}

func NewPagination(totalData, limit int) Pagination {
	if totalData <= 0 || limit <= 0 {
		return Pagination{TotalData: max(totalData, 0)}
	}

	return Pagination{
		TotalPage: (totalData + limit - 1) / limit,
		TotalData: totalData,
	}
}
