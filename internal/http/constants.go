package httpx

// SessionCookieName is the cookie carrying the opaque session identifier.
// The upstream bearer token never reaches the browser.
const SessionCookieName = "session_id"

// maxJSONBodyBytes caps non-upload request bodies.
const maxJSONBodyBytes = 1 << 20
