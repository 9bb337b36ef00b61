package handler

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"

	"github.com/rl1809/grocery-stock/internal/core/domain"
	"github.com/rl1809/grocery-stock/internal/core/service"
)

type errorMapping struct {
	target error
	status int
	code   codes.Code
}

// Checked in order, first match wins.
var errorMappings = []errorMapping{
	{service.ErrDuplicateRequest, http.StatusConflict, codes.AlreadyExists},
	{domain.ErrResourceLocked, http.StatusLocked, codes.Aborted},
	{domain.ErrResourceNotFound, http.StatusServiceUnavailable, codes.Unavailable},
	{domain.ErrResourceRead, http.StatusServiceUnavailable, codes.Unavailable},
	{domain.ErrResourceWrite, http.StatusInternalServerError, codes.Internal},
	{domain.ErrInsufficientStock, http.StatusGone, codes.FailedPrecondition},
	{domain.ErrProductNotFound, http.StatusNotFound, codes.NotFound},
	{domain.ErrStockColumnMissing, http.StatusUnprocessableEntity, codes.FailedPrecondition},
	{domain.ErrInvalidQuantity, http.StatusBadRequest, codes.InvalidArgument},
	{domain.ErrInvalidRequest, http.StatusBadRequest, codes.InvalidArgument},
	{service.ErrLedgerDisabled, http.StatusNotImplemented, codes.Unimplemented},
}

// classify maps a service error to transport status codes and a user-facing
// message. known is false for unexpected failures, whose details stay in the log.
func classify(err error) (status int, code codes.Code, message string, known bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, err.Error(), true
		}
	}
	return http.StatusInternalServerError, codes.Internal, "internal error", false
}
