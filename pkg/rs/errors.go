// Package rs holds the Resource Server's protected-resource domain types
// and the bearer-token verification contract the gateway's proxied calls
// must satisfy.
package rs

import (
	"net/http"

	"github.com/abraxas-iag/gateway/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RS")

var (
	CodeMissingToken        = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "no bearer token presented")
	CodeInvalidToken        = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "token is malformed, expired, or not active")
	CodeBadAudience         = ErrRegistry.Register("BAD_AUDIENCE", errx.TypeAuthorization, http.StatusUnauthorized, "token audience does not match this resource")
	CodeInsufficientScope   = ErrRegistry.Register("INSUFFICIENT_SCOPE", errx.TypeAuthorization, http.StatusForbidden, "token lacks the scope required for this tool")
	CodeIntrospectionFailed = ErrRegistry.Register("INTROSPECTION_FAILED", errx.TypeInternal, http.StatusUnauthorized, "authorization server introspection did not succeed")
)

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrInvalidToken(detail string) *errx.Error {
	return ErrRegistry.New(CodeInvalidToken).WithDetail("detail", detail)
}

func ErrBadAudience(got, want string) *errx.Error {
	return ErrRegistry.New(CodeBadAudience).WithDetail("aud", got).WithDetail("expected", want)
}

func ErrInsufficientScope(required string) *errx.Error {
	return ErrRegistry.New(CodeInsufficientScope).WithDetail("required_scope", required)
}

func ErrIntrospectionFailed(detail string) *errx.Error {
	return ErrRegistry.New(CodeIntrospectionFailed).WithDetail("detail", detail)
}
