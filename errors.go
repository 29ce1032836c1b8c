/*
 * errors.go, part of goHKL.
 *
 *
 * Copyright 2024 The goHKL authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package hkl

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *Error returned by this package wraps exactly one of these,
// so callers can tell them apart with errors.Is.
var (
	ErrHeaderNotFound    = errors.New("reflection table header not found")
	ErrSourceUnavailable = errors.New("unable to open source")
	ErrWrongExtension    = errors.New("file must have .hkl extension")
	ErrMalformedLine     = errors.New("malformed reflection line")
	ErrReadFailure       = errors.New("error reading source")
	ErrEmptySet          = errors.New("no reflections given")
)

// Error is the error type for all the functions in this package.
// The Decorate method allows to add the names of the calling functions
// without changing the type of the error.
type Error struct {
	kind     error
	message  string
	filename string //the input file that has problems, or empty string if none.
	line     int    //1-based, 0 if the error is not tied to a line.
	deco     []string
	cause    error
}

func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString("hkl")
	if err.filename != "" {
		fmt.Fprintf(&b, " file %s", err.filename)
	}
	if err.line > 0 {
		fmt.Fprintf(&b, " line %d", err.line)
	}
	b.WriteString(": ")
	b.WriteString(err.kind.Error())
	if err.message != "" {
		b.WriteString(": ")
		b.WriteString(err.message)
	}
	if err.cause != nil {
		b.WriteString(": ")
		b.WriteString(err.cause.Error())
	}
	return b.String()
}

// Decorate adds deco to the list of callers the error has passed through, and
// returns the list. An empty string just returns the current list.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error, or an empty string.
func (err *Error) FileName() string { return err.filename }

// Line returns the 1-based line number associated to the error, or 0.
func (err *Error) Line() int { return err.line }

// Is reports whether target is the kind of this error.
func (err *Error) Is(target error) bool { return target == err.kind }

// Unwrap returns the underlying error, if any (i.e. the one from the os or io packages).
func (err *Error) Unwrap() error { return err.cause }

func newError(kind error, caller, message string) *Error {
	return &Error{kind: kind, message: message, deco: []string{caller}}
}

// errDecorate decorates err with caller if it is an *Error, and sets the file name
// if it is not set already. Other errors are returned unchanged.
func errDecorate(err error, caller, filename string) error {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return err
	}
	e.Decorate(caller)
	if e.filename == "" {
		e.filename = filename
	}
	return err
}
