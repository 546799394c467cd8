package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the API boundary can translate it to a
// transport status without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidState
	KindInvalidCriteria
	KindInvalidAnswer
	KindInvalidQuestion
	KindDuplicateContent
	KindInsufficientQuestions
	KindPermissionDenied
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func InvalidState(format string, args ...interface{}) *Error {
	return newf(KindInvalidState, format, args...)
}

func InvalidCriteria(format string, args ...interface{}) *Error {
	return newf(KindInvalidCriteria, format, args...)
}

func InvalidAnswer(format string, args ...interface{}) *Error {
	return newf(KindInvalidAnswer, format, args...)
}

func InvalidQuestion(format string, args ...interface{}) *Error {
	return newf(KindInvalidQuestion, format, args...)
}

func DuplicateContent(format string, args ...interface{}) *Error {
	return newf(KindDuplicateContent, format, args...)
}

func InsufficientQuestions(format string, args ...interface{}) *Error {
	return newf(KindInsufficientQuestions, format, args...)
}

func PermissionDenied(format string, args ...interface{}) *Error {
	return newf(KindPermissionDenied, format, args...)
}

// KindOf returns the Kind carried by err, or KindUnknown for errors that
// did not originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool { return KindOf(err) == kind }
