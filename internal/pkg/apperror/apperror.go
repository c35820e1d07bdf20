package apperror

// AppError is a business error that carries the HTTP status it maps to and a stable code
// that clients can switch on without parsing the message.
type AppError struct {
	Status  int    // HTTP Status Code (e.g., 400, 404)
	Code    string // Machine readable code (e.g., "slot_conflict")
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code, so that a wrapped
// copy produced by Wrap still matches its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// New creates a new AppError with a status code, a machine code and a message.
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap returns a copy of sentinel that carries err as its cause.
func Wrap(sentinel *AppError, err error) *AppError {
	return &AppError{
		Status:  sentinel.Status,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     err,
	}
}

// WithMessage returns a copy of sentinel with a more specific message.
// The copy still matches sentinel under errors.Is.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Status:  sentinel.Status,
		Code:    sentinel.Code,
		Message: message,
	}
}
