package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure class the registries can produce.
// Callers branch with errors.Is; the web layer maps them to status codes.
var (
	ErrNotFound             = errors.New("not found")
	ErrParse                = errors.New("parse error")
	ErrDuplicateName        = errors.New("duplicate name")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnknownSourceProfile = errors.New("unknown source profile")
	ErrWrite                = errors.New("write error")
	ErrSourceFileMissing    = errors.New("source file missing")
	ErrCannotRemoveActive   = errors.New("cannot remove active profile")
)

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func ParseErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrParse)...)
}

func DuplicateNamef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrDuplicateName)...)
}

func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

func UnknownSourceProfilef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnknownSourceProfile)...)
}

func WriteErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrWrite)...)
}

func SourceFileMissingf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrSourceFileMissing)...)
}
