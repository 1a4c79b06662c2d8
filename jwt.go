/*
 *    Copyright 2025 The Pika Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package pika

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const valueJWTClaims = "pika.jwt_claims"

// WithJWTClaims returns a copy of the request carrying verified JWT claims.
func WithJWTClaims(r *Request, claims jwt.MapClaims) *Request {
	return r.WithValue(valueJWTClaims, claims)
}

// JWTClaims retrieves JWT claims from the request if present.
func JWTClaims(r *Request) (jwt.MapClaims, bool) {
	mc, ok := r.Value(valueJWTClaims).(jwt.MapClaims)
	return mc, ok
}

// JWTConfig configures the JWTAuth middleware.
// Provide at least a Keyfunc to resolve the verification key.
// Optional fields can enforce issuer/audience and clock skew.
// If Optional is true, requests without an Authorization header pass through
// unmodified. Only Bearer tokens are considered.
// Failures short-circuit dispatch with a 401 response carrying a
// WWW-Authenticate header.
type JWTConfig struct {
	Keyfunc  jwt.Keyfunc
	Issuer   string
	Audience string
	Skew     time.Duration
	Optional bool
}

// JWTAuth creates a middleware that validates Bearer JWTs from the
// Authorization header attached by the HTTP bridge and injects the verified
// claims as a request value.
func JWTAuth(cfg JWTConfig) Middleware {
	if cfg.Skew == 0 {
		cfg.Skew = 30 * time.Second
	}
	return func(next Handler) Handler {
		return func(c *Context) (*Response, error) {
			authz := HeaderValue(c.Request(), "Authorization")
			if authz == "" {
				if cfg.Optional {
					return next(c)
				}
				return unauthorized("missing Authorization header"), nil
			}
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return unauthorized("invalid Authorization scheme"), nil
			}
			tokStr := parts[1]

			opts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"HS256", "HS384", "HS512", "RS256", "RS384", "RS512", "ES256", "EdDSA"}),
				jwt.WithLeeway(cfg.Skew),
			}
			if cfg.Issuer != "" {
				opts = append(opts, jwt.WithIssuer(cfg.Issuer))
			}
			if cfg.Audience != "" {
				opts = append(opts, jwt.WithAudience(cfg.Audience))
			}
			parser := jwt.NewParser(opts...)

			tok, err := parser.ParseWithClaims(tokStr, jwt.MapClaims{}, cfg.Keyfunc)
			if err != nil {
				return unauthorized(fmt.Sprintf("token parse/verify failed: %v", err)), nil
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok || !tok.Valid {
				return unauthorized("invalid token claims"), nil
			}

			c.req = WithJWTClaims(c.req, claims)
			return next(c)
		}
	}
}

func unauthorized(desc string) *Response {
	resp := &Response{
		Status: http.StatusUnauthorized,
		Fault:  NewHTTPError(http.StatusUnauthorized, desc),
	}
	resp.SetHeader("WWW-Authenticate", "Bearer error=\"invalid_token\", error_description=\""+escapeAuthParam(desc)+"\"")
	return resp
}

// escapeAuthParam per RFC 6750 to safely include in WWW-Authenticate param
func escapeAuthParam(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
