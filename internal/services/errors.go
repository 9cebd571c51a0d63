package services

// ValidationError reports malformed or incomplete input. The caller should
// correct the request and resubmit.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// AuthError reports a credential or session failure.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
