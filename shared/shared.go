package shared

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/dto"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"

	"github.com/rs/zerolog/log"
)

// ConvertStringToBool parses an optional query flag. Absent or malformed values yield nil.
func ConvertStringToBool(value string) *bool {
	if value == constant.Empty {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Debug().Err(err).Str("value", value).Msg("ignoring malformed bool")

		return nil
	}

	return &parsed
}

func ConvertStringToInt(value string) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to convert string to int: %w", err)
	}

	return parsed, nil
}

// CalculateTotalPage never reports fewer than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields turns a patch struct into column updates. Only db-tagged,
// non-zero fields are kept, so pointers distinguish "set to zero" from "absent".
func TransformFields(patch any, modifiedBy string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(patch))
	typ := val.Type()

	fields := make(map[string]any, typ.NumField()+2)

	for i := range typ.NumField() {
		column := typ.Field(i).Tag.Get("db")
		if column == constant.Empty || column == "-" || val.Field(i).IsZero() {
			continue
		}

		fields[column] = val.Field(i).Interface()
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = modifiedBy

	return fields
}

func equals(field, table string, value any) dto.Filter {
	return dto.Filter{
		Field:    field,
		Value:    value,
		Operator: dto.FilterOperatorEq,
		Table:    table,
	}
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{equals(fieldID, table, id)},
	}
}

// FilterByStore scopes a query to one store; extra filters are ANDed in.
func FilterByStore(storeID, fieldStoreID, table string, filters ...any) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  append([]any{equals(fieldStoreID, table, storeID)}, filters...),
	}
}
