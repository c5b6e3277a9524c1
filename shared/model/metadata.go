package model

import "time"

// Metadata holds the audit columns every table carries.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

func NewMetadata(by string, at time.Time) Metadata {
	return Metadata{CreatedAt: at, ModifiedAt: at, CreatedBy: by, ModifiedBy: by}
}
