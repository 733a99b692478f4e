// Package httperr maps service-layer errors onto HTTP statuses.
package httperr

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/finance-server/internal/apperrors"
)

// FromService translates err into a huma status error: 400 for validation,
// 404 for missing records, 401 for callers that do not own the record, and
// 500 with the fallback message for anything else. Store failures stay
// opaque to the client.
func FromService(err error, fallback string) error {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return huma.NewError(http.StatusBadRequest, err.Error())
	case apperrors.KindNotFound:
		return huma.NewError(http.StatusNotFound, err.Error())
	case apperrors.KindUnauthorized:
		return huma.NewError(http.StatusUnauthorized, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, fallback, err)
	}
}

// MissingOwner is the error for requests that reached a handler without an
// authenticated owner on the context.
func MissingOwner() error {
	return huma.NewError(http.StatusUnauthorized, "missing authenticated user")
}
