package errors

// Chain returns the full error chain as a slice of error messages.
func Chain(err error) []string {
	if err == nil {
		return nil
	}

	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		err = Unwrap(err)
	}
	return chain
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
