package usecase

// Error codes surfaced to callers. Domain errors are the caller's fault,
// technical errors are ours.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeReference  = "REFERENCE_ERROR"
	CodeGeneration = "GENERATION_ERROR"
	CodeTransport  = "TRANSPORT_ERROR"
	CodeDatabase   = "DATABASE_ERROR"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ErrCode extracts the error code regardless of category, "" when the
// error is neither a DomainError nor a TechnicalError.
func ErrCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	if te, ok := err.(*TechnicalError); ok {
		return te.Code
	}
	return ""
}
