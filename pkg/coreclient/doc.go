/*
Package coreclient is the HTTP client for the remote session core - the
service of record for session state, signing keys, and revocation.

The client covers exactly the surface the SDK consumes:

  - key publication (FetchKeys), which also feeds the keycache
  - session existence / revocation checks (VerifySession)
  - revocation (RevokeSession, RevokeSessions)
  - write-through claim updates (UpdateSessionData)
  - response-token re-minting for deferred claim updates (RegenerateToken)
  - session record lookup (GetSession)

Every request carries an X-Request-ID ULID for log correlation and an
optional static API key. Non-2xx responses parse into a typed *CoreError.
All calls take a context; the HTTP client's timeout bounds each request on
top of whatever deadline the context carries.
*/
package coreclient
