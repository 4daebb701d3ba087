package status

// HTTPError is a client error, which is answered with an error page instead of dropping
// the connection. Short is used both as the reason phrase and as the page heading, Long
// is followed by the Cause on the page.
type HTTPError struct {
	Code  Code
	Short string
	Long  string
	Cause string
}

func NewError(code Code, short, long string) HTTPError {
	return HTTPError{
		Code:  code,
		Short: short,
		Long:  long,
	}
}

func (h HTTPError) Error() string {
	if len(h.Cause) == 0 {
		return StringCode(h.Code) + " " + h.Short
	}

	return StringCode(h.Code) + " " + h.Short + ": " + h.Cause
}

// WithCause returns a copy of the error mentioning what caused it.
func (h HTTPError) WithCause(cause string) HTTPError {
	h.Cause = cause
	return h
}

var (
	ErrMethodNotImplemented = NewError(NotImplemented, "Not Implemented", "Olive does not implement this method")
	ErrNotFound             = NewError(NotFound, "Not found", "Olive couldn't find this file")
	ErrForbiddenRead        = NewError(Forbidden, "Forbidden", "Olive couldn't read the file")
	ErrForbiddenExec        = NewError(Forbidden, "Forbidden", "Olive couldn't run the CGI program")
)
