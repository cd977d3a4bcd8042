package apperr

// Error is an application error carrying the HTTP status it maps to and a
// stable machine-readable code clients can branch on.
type Error struct {
	Status  int
	Code    string
	Message string
}

// New builds an application error.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}
