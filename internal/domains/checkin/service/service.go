package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ymjo140/rendezvous-merchant-sub000/infras/jwt"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/assignment"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/checkin/model/dto"
	reservationDto "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/model/dto"
	reservationService "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/service"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/constant"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/failure"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"

	"github.com/rs/zerolog/log"
)

// CheckIn issues the codes guests show at the door and redeems them.
type CheckIn interface {
	Issue(ctx context.Context, reservationID string) (dto.CodeResponse, error)
	Redeem(ctx context.Context, req dto.RedeemRequest) (reservationDto.ReservationResponse, error)
}

type serviceImpl struct {
	reservation reservationService.Reservation
	jwt         jwt.JWT
	otel        otel.Otel
}

func New(reservation reservationService.Reservation, jwt jwt.JWT, otel otel.Otel) CheckIn {
	return &serviceImpl{
		reservation: reservation,
		jwt:         jwt,
		otel:        otel,
	}
}

func redeemable(status string) bool {
	switch assignment.Status(status) {
	case assignment.StatusPending, assignment.StatusConfirmed:
		return true
	default:
		return false
	}
}

func (s *serviceImpl) Issue(ctx context.Context, reservationID string) (res dto.CodeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Issue")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.reservation.GetFresh(ctx, reservationID)
	if err != nil {
		return res, err
	}

	if !redeemable(reservation.Status) {
		return res, failure.BadRequestFromString(fmt.Sprintf("a %s reservation cannot be checked in", reservation.Status)) // nolint:wrapcheck
	}

	date, err := timezone.ParseDate(reservation.Date)
	if err != nil {
		return res, fmt.Errorf("failed to read reservation date: %w", err)
	}

	expiresAt, err := timezone.Combine(date, reservation.EndTime)
	if err != nil {
		return res, fmt.Errorf("failed to read reservation end: %w", err)
	}

	if !expiresAt.After(timezone.Now()) {
		return res, failure.BadRequestFromString("reservation has already ended") // nolint:wrapcheck
	}

	code, err := s.jwt.GenerateCheckInToken(reservation.ID, shared.StoreID(ctx), expiresAt)
	if err != nil {
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to issue check-in code")

		return res, fmt.Errorf("failed to issue check-in code: %w", err)
	}

	return dto.CodeResponse{
		ReservationID: reservation.ID,
		Code:          code,
		ExpiresAt:     expiresAt,
	}, nil
}

func (s *serviceImpl) Redeem(ctx context.Context, req dto.RedeemRequest) (res reservationDto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Redeem")
	defer scope.End()
	defer scope.TraceIfError(&err)

	claims, err := s.jwt.ValidateToken(req.Code, jwt.CheckInToken)
	if err != nil {
		log.Warn().Err(err).Msg("rejected check-in code")

		if errors.Is(err, jwt.ErrExpiredToken) {
			return res, failure.BadRequestFromString("check-in code has expired") // nolint:wrapcheck
		}

		return res, failure.BadRequestFromString("invalid check-in code") // nolint:wrapcheck
	}

	if claims.StoreID != shared.StoreID(ctx) {
		return res, failure.ResourceRestrictedError
	}

	return s.reservation.CheckIn(ctx, claims.ReservationID)
}
