package dto

import (
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/model"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"
)

// Metadata is the audit trail shown on console records. The modified pair is
// left out until the row has been touched after creation.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(src model.Metadata) {
	m.CreatedAt = timezone.Format(src.CreatedAt, constant.DateFormat)
	m.CreatedBy = src.CreatedBy

	if !src.ModifiedAt.After(src.CreatedAt) {
		return
	}

	m.ModifiedAt = timezone.Format(src.ModifiedAt, constant.DateFormat)
	m.ModifiedBy = src.ModifiedBy
}
