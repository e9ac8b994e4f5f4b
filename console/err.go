package console

import (
	"github.com/bitgrain/bitgrain/translate"
)

var f = translate.From

// ErrScript indicates the location of a script error.
type ErrScript struct {
	LineNo int
	Err    error
}

func (err *ErrScript) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
