package domain

// Session is the ephemeral server-side record of an authenticated staff
// member. It lives in Redis only and is never written to the database.
type Session struct {
	ID        string `json:"-"`
	AccountID int64  `json:"id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
}

// AuthOutcome is the tagged result of a login or logout attempt. Failed
// authentication is an expected, user-facing case, so it is a returned value
// rather than an error.
type AuthOutcome string

const (
	AuthSuccess        AuthOutcome = "success"
	AuthNoneError      AuthOutcome = "none_error"      // empty username/password, or logout while anonymous
	AuthDuplicateError AuthOutcome = "duplicate_error" // login while already authenticated
	AuthBannedError    AuthOutcome = "banned_error"    // credentials valid but account disabled
	AuthError          AuthOutcome = "auth_error"      // unknown user or wrong password
)

// Message returns the user-facing text for an outcome in a login context.
func (o AuthOutcome) Message() string {
	switch o {
	case AuthSuccess:
		return "login success"
	case AuthNoneError:
		return "username or password is empty"
	case AuthDuplicateError:
		return "user is already logged in"
	case AuthBannedError:
		return "user is banned"
	case AuthError:
		return "username or password is wrong"
	}
	return string(o)
}
