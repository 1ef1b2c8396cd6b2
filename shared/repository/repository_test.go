package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
)

func TestRepository_OrderBy(t *testing.T) {
	repo := &Repository[struct{}]{table: "seating_units", primaryColumn: "id"}

	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{
			name:   "equal sort values fall back to the primary key",
			params: dto.QueryParams{SortBy: "seating_units.created_at", SortDir: dto.SortDirAsc},
			want:   "ORDER BY seating_units.created_at ASC, seating_units.id ASC",
		},
		{
			name:   "descending tiebreak follows the sort direction",
			params: dto.QueryParams{SortBy: "seating_units.capacity", SortDir: dto.SortDirDesc},
			want:   "ORDER BY seating_units.capacity DESC, seating_units.id DESC",
		},
		{
			name:   "sorting by the primary key needs no tiebreak",
			params: dto.QueryParams{SortBy: "seating_units.id", SortDir: dto.SortDirAsc},
			want:   "ORDER BY seating_units.id ASC",
		},
		{
			name:   "no direction means no ordering",
			params: dto.QueryParams{SortBy: "seating_units.created_at"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.orderBy(tt.params))
		})
	}
}
