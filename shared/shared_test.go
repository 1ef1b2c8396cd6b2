package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/cache/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))
	require.NotNil(t, shared.ConvertStringToBool("true"))
	assert.True(t, *shared.ConvertStringToBool("true"))
}

func TestConvertStringToInt(t *testing.T) {
	size, err := shared.ConvertStringToInt("6")
	require.NoError(t, err)
	assert.Equal(t, 6, size)

	_, err = shared.ConvertStringToInt("six")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(5, 0))
	assert.Equal(t, 1, shared.CalculateTotalPage(1, 10))
	assert.Equal(t, 3, shared.CalculateTotalPage(21, 10))
	assert.Equal(t, 2, shared.CalculateTotalPage(20, 10))
}

func TestTransformFields(t *testing.T) {
	type seatingPatch struct {
		Name        string `db:"name"`
		MaxCapacity int    `db:"max_capacity"`
		Quantity    *int   `db:"quantity"`
		Note        string
	}

	zero := 0
	fields := shared.TransformFields(seatingPatch{Name: "Booth", Quantity: &zero, Note: "ignored"}, "owner@bistro.test")

	assert.Equal(t, "Booth", fields["name"])
	assert.Equal(t, &zero, fields["quantity"])
	assert.NotContains(t, fields, "max_capacity")
	assert.NotContains(t, fields, "Note")
	assert.Equal(t, "owner@bistro.test", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])

	fromPointer := shared.TransformFields(&seatingPatch{MaxCapacity: 6}, "staff@bistro.test")
	assert.Equal(t, 6, fromPointer["max_capacity"])
	assert.NotContains(t, fromPointer, "name")
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("r-1", "id", "reservations")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(reservations.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "r-1"}, args)
}

func TestFilterByStore(t *testing.T) {
	filter := shared.FilterByStore("s-1", "store_id", "seating_units",
		dto.Filter{Field: "id", Value: "u-1", Operator: dto.FilterOperatorEq, Table: "seating_units"},
	)

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(seating_units.store_id = :store_id AND seating_units.id = :id)", where)
	assert.Equal(t, map[string]any{"store_id": "s-1", "id": "u-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "seating", shared.BuildCacheKey("seating"))
	assert.Equal(t, "seating:get:s-1:u-1", shared.BuildCacheKey("seating", "get", "s-1", "u-1"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByStore("s-1", "store_id", "")

	first := shared.BuildCacheKeyWithQuery("reservation:list", params, filter)
	again := shared.BuildCacheKeyWithQuery("reservation:list", params, filter)
	other := shared.BuildCacheKeyWithQuery("reservation:list", params, shared.FilterByStore("s-2", "store_id", ""))

	assert.True(t, strings.HasPrefix(first, "reservation:list:"))
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "reservation:s-1*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "reservation:s-1")

	redisCache.EXPECT().Clear(gomock.Any(), "seating:s-1*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "seating:s-1")
}
