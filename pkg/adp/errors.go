package adp

import (
	"net/http"

	"github.com/abraxas-iag/gateway/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("ADP")

var (
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "missing or malformed request parameters")
	CodeBadSignature       = ErrRegistry.Register("BAD_SIGNATURE", errx.TypeAuthorization, http.StatusBadRequest, "delegation jws signature invalid")
	CodeBadClaims          = ErrRegistry.Register("BAD_CLAIMS", errx.TypeValidation, http.StatusBadRequest, "delegation claims malformed or expired")
	CodeUnsupportedAlg     = ErrRegistry.Register("UNSUPPORTED_ALG", errx.TypeValidation, http.StatusBadRequest, "unsupported signing algorithm")
	CodeBadConstraints     = ErrRegistry.Register("BAD_CONSTRAINTS", errx.TypeValidation, http.StatusBadRequest, "delegation constraints malformed")
	CodeStoreUnavailable   = ErrRegistry.Register("STORE_UNAVAILABLE", errx.TypeInternal, http.StatusInternalServerError, "delegation store unavailable")
)

func ErrInvalidRequest(detail string) *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest).WithDetail("detail", detail)
}

func ErrBadSignature(detail string) *errx.Error {
	return ErrRegistry.New(CodeBadSignature).WithDetail("detail", detail)
}

func ErrBadClaims(detail string) *errx.Error {
	return ErrRegistry.New(CodeBadClaims).WithDetail("detail", detail)
}

func ErrUnsupportedAlg(alg string) *errx.Error {
	return ErrRegistry.New(CodeUnsupportedAlg).WithDetail("alg", alg)
}

func ErrBadConstraints(detail string) *errx.Error {
	return ErrRegistry.New(CodeBadConstraints).WithDetail("detail", detail)
}

func ErrStoreUnavailable(detail string) *errx.Error {
	return ErrRegistry.New(CodeStoreUnavailable).WithDetail("detail", detail)
}
