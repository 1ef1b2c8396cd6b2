package postgres

import (
	"errors"

	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"

	"github.com/lib/pq"
)

// Code returns the SQLSTATE carried by err, or "" when err is not a driver error.
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// IsSeatingConflict reports a lost race for a seating instance: the
// reservations exclusion constraint or a unique index rejected the write.
func IsSeatingConflict(err error) bool {
	switch Code(err) {
	case constant.PqErrorCodeExclusion, constant.PqErrorCodeUniqueViolation:
		return true
	default:
		return false
	}
}

func IsUniqueViolation(err error) bool {
	return Code(err) == constant.PqErrorCodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return Code(err) == constant.PqErrorCodeFkViolation
}
