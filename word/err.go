package word

import (
	"errors"

	"github.com/bitgrain/bitgrain/translate"
)

var f = translate.From

var (
	ErrWidthZero = errors.New(f("width must be at least 1"))
)

type ErrNumber string

func (err ErrNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrNumber) Is(target error) (ok bool) {
	_, ok = target.(ErrNumber)
	return
}
