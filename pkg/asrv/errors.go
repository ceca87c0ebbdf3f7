// Package asrv implements the minimal conformant OAuth Authorization
// Server the gateway exercises: authorization code + PKCE, resource
// indicator audience binding, dynamic client registration, and
// introspection.
package asrv

import (
	"net/http"

	"github.com/abraxas-iag/gateway/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AS")

var (
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "missing or malformed request parameters")
	CodeInvalidClient  = ErrRegistry.Register("INVALID_CLIENT", errx.TypeValidation, http.StatusBadRequest, "unknown client_id or redirect_uri")
	CodeInvalidGrant   = ErrRegistry.Register("INVALID_GRANT", errx.TypeValidation, http.StatusBadRequest, "authorization code unknown, expired, or already redeemed")
	CodeBadPKCE        = ErrRegistry.Register("BAD_PKCE", errx.TypeValidation, http.StatusBadRequest, "code_verifier does not match code_challenge")
	CodeStoreError     = ErrRegistry.Register("STORE_ERROR", errx.TypeInternal, http.StatusInternalServerError, "authorization code or client store unavailable")
)

func ErrInvalidRequest(detail string) *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest).WithDetail("detail", detail)
}

func ErrInvalidClient(detail string) *errx.Error {
	return ErrRegistry.New(CodeInvalidClient).WithDetail("detail", detail)
}

func ErrInvalidGrant(detail string) *errx.Error {
	return ErrRegistry.New(CodeInvalidGrant).WithDetail("detail", detail)
}

func ErrBadPKCE() *errx.Error {
	return ErrRegistry.New(CodeBadPKCE)
}

func ErrStoreError(detail string) *errx.Error {
	return ErrRegistry.New(CodeStoreError).WithDetail("detail", detail)
}
