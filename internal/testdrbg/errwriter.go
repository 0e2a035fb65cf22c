package testdrbg

// ErrWriter implements io.Writer and always returns the error in Err.
type ErrWriter struct {
	Err error
}

func (e *ErrWriter) Write(_ []byte) (n int, err error) {
	return 0, e.Err
}
