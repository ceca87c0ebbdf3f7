package gwcore

import (
	"net/http"

	"github.com/abraxas-iag/gateway/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("GW")

var (
	CodeStartFailed           = ErrRegistry.Register("START_FAILED", errx.TypeExternal, http.StatusBadGateway, "discovery failed against upstream RS and fallback metadata")
	CodeDeniedByPolicy        = ErrRegistry.Register("DENIED_BY_POLICY", errx.TypeAuthorization, http.StatusForbidden, "denied by policy")
	CodeLoginRequired         = ErrRegistry.Register("LOGIN_REQUIRED", errx.TypeAuthorization, http.StatusUnauthorized, "no ready session for required scope")
	CodeObligationViolation   = ErrRegistry.Register("OBLIGATION_VIOLATION", errx.TypeBusiness, http.StatusForbidden, "request breaches a session obligation")
	CodeTTLExpired            = ErrRegistry.Register("SESSION_OBLIGATION_TTL_EXPIRED", errx.TypeAuthorization, http.StatusUnauthorized, "obligation ttl exceeded, re-authentication required")
	CodeInvalidRequest        = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "missing or malformed request parameters")
	CodeBadSignature          = ErrRegistry.Register("BAD_SIGNATURE", errx.TypeAuthorization, http.StatusBadRequest, "state signature verification failed")
	CodeBadPayload            = ErrRegistry.Register("BAD_PAYLOAD", errx.TypeValidation, http.StatusBadRequest, "state payload malformed")
	CodeMalformedState        = ErrRegistry.Register("MALFORMED_STATE", errx.TypeValidation, http.StatusBadRequest, "state envelope malformed")
	CodeSessionNotFound       = ErrRegistry.Register("SESSION_NOT_FOUND", errx.TypeNotFound, http.StatusBadRequest, "session referenced by state is unknown")
	CodeSessionUsed           = ErrRegistry.Register("SESSION_USED", errx.TypeConflict, http.StatusBadRequest, "session already exchanged a code")
	CodeSessionMismatch       = ErrRegistry.Register("SESSION_MISMATCH", errx.TypeValidation, http.StatusBadRequest, "state audience/scope does not match session")
	CodeTokenExchangeFailed   = ErrRegistry.Register("TOKEN_EXCHANGE_FAILED", errx.TypeExternal, http.StatusBadGateway, "authorization server rejected the code exchange")
	CodeBadGateway            = ErrRegistry.Register("BAD_GATEWAY", errx.TypeExternal, http.StatusBadGateway, "upstream resource server unreachable or failed")
	CodeExplicitRequired      = ErrRegistry.Register("EXPLICIT_REQUIRED", errx.TypeAuthorization, http.StatusForbidden, "explicit consent required")
)

func ErrStartFailed(detail string) *errx.Error {
	return ErrRegistry.New(CodeStartFailed).WithDetail("detail", detail)
}

func ErrDeniedByPolicy() *errx.Error {
	return ErrRegistry.New(CodeDeniedByPolicy)
}

func ErrLoginRequired() *errx.Error {
	return ErrRegistry.New(CodeLoginRequired)
}

func ErrObligationViolation(detail string) *errx.Error {
	return ErrRegistry.New(CodeObligationViolation).WithDetail("detail", detail)
}

func ErrTTLExpired() *errx.Error {
	return ErrRegistry.New(CodeTTLExpired)
}

func ErrInvalidRequest(detail string) *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest).WithDetail("detail", detail)
}

func ErrBadSignature() *errx.Error {
	return ErrRegistry.New(CodeBadSignature)
}

func ErrBadPayload() *errx.Error {
	return ErrRegistry.New(CodeBadPayload)
}

func ErrMalformedState() *errx.Error {
	return ErrRegistry.New(CodeMalformedState)
}

func ErrSessionNotFound() *errx.Error {
	return ErrRegistry.New(CodeSessionNotFound)
}

func ErrSessionUsed() *errx.Error {
	return ErrRegistry.New(CodeSessionUsed)
}

func ErrSessionMismatch() *errx.Error {
	return ErrRegistry.New(CodeSessionMismatch)
}

func ErrTokenExchangeFailed(detail string) *errx.Error {
	return ErrRegistry.New(CodeTokenExchangeFailed).WithDetail("detail", detail)
}

func ErrBadGateway(detail string) *errx.Error {
	return ErrRegistry.New(CodeBadGateway).WithDetail("detail", detail)
}

func ErrExplicitRequired() *errx.Error {
	return ErrRegistry.New(CodeExplicitRequired)
}
