package util

import "fmt"

const pkgName = "xhr"

// NewError is similar to [errors.New],
// but the message of the resulting error is prefixed with "xhr: ".
func NewError(text string) error {
	return &configError{
		pkgName: pkgName,
		msg:     text,
	}
}

// Errorf is similar to [fmt.Errorf],
// but the message of the resulting error is prefixed with "xhr: ".
func Errorf(format string, a ...any) error {
	return &configError{
		pkgName: pkgName,
		msg:     fmt.Sprintf(format, a...),
	}
}

type configError struct {
	pkgName string
	msg     string
}

func (e *configError) Error() string {
	return fmt.Sprintf("%s: %s", e.pkgName, e.msg)
}
