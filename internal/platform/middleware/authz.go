// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the SyncBridge API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, the Admin Gate, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/syncbridge/internal/platform/apperr"
	"github.com/taibuivan/syncbridge/internal/platform/constants"
	"github.com/taibuivan/syncbridge/internal/platform/ctxutil"
	"github.com/taibuivan/syncbridge/internal/platform/respond"
)

// CredentialVerifier validates the shared admin credential.
//
// Defining it here decouples the middleware from the admin package so tests
// can inject a stub.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password, clientIP string) error
}

// RequireAdmin guards a route group behind the shared admin credential.
//
// # Flow
//  1. Read HTTP Basic credentials. Missing credentials fail with 401.
//  2. Re-validate them through [CredentialVerifier] on every request.
//     Nothing from a previous request is trusted.
//  3. Mark the request context with the admin username for downstream logging.
//
// Failures always carry the same message so a caller cannot tell whether the
// username or the password was wrong.
func RequireAdmin(verifier CredentialVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			username, password, ok := request.BasicAuth()

			// ── 1. Credential Presence ────────────────────────────────────────
			if !ok {
				Challenge(writer)
				respond.Error(writer, request, ErrAdminCredentials)
				return
			}

			// ── 2. Credential Verification ────────────────────────────────────
			if err := verifier.Verify(request.Context(), username, password, RealIP(request)); err != nil {
				if apperr.HasCode(err, apperr.CodeUnauthorized) {
					Challenge(writer)
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			if recorder, ok := writer.(adminRecorder); ok {
				recorder.recordAdmin(username)
			}
			ctx := ctxutil.WithAdmin(request.Context(), username)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// ErrAdminCredentials is the single client-facing admin gate failure.
var ErrAdminCredentials = apperr.Unauthorized("Invalid admin credentials")

// Challenge sets the Basic WWW-Authenticate header for the admin realm.
func Challenge(writer http.ResponseWriter) {
	writer.Header().Set(constants.HeaderAuthenticate, fmt.Sprintf(`Basic realm=%q, charset="UTF-8"`, constants.AdminRealm))
}
