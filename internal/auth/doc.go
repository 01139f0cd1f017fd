// Package auth provides the session authentication gate for vigor-site.
//
// # Credentials
//
// Admin users authenticate with email and password; on success the server
// issues a signed HS256 JWT embedding id, email, name and role, valid for
// a configured window (7 days by default). The token travels as an
// HttpOnly cookie for browsers or an Authorization: Bearer header for API
// clients. The server keeps no session state: logout is client-side cookie
// deletion, and a token stays valid until its natural expiry.
//
// # Verification Tiers
//
// Two verification levels exist, modeled as distinct result types:
//
//   - Verify returns *Identity after checking structure, signature, expiry
//     and required claims. Only an Identity authorizes anything.
//   - Inspect returns *ProvisionalIdentity after checking structure and
//     expiry only — no signature check. It is a cheap pass used by public
//     pages for rendering decisions (e.g. showing the admin link) and is
//     deliberately unusable where an *Identity is demanded.
//
// # Middleware
//
// RequirePage gates browser routes under /admin (redirect to login on
// failure, clearing any stale cookie). RequireAPI gates JSON routes (401).
// RequireRole adds an allow-list check on the decoded role and fails
// closed. OptionalIdentity decorates public requests with a provisional
// identity when a plausible token is present.
package auth
