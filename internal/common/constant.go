package common

// SessionCookieName is the cookie that carries the sealed session payload.
const SessionCookieName = "taskmaster-session"

// AuthorizationHeaderName carries the bearer access token for API clients
// that do not speak cookies.
const AuthorizationHeaderName = "Authorization"
