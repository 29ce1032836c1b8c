/*
 * read.go, part of goHKL.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Header is the line that starts the reflection table. It must be matched exactly.
const Header = "# H   K   L     Mult    dspc                   |Fc|^2"

// Info contains information on how the lines of a source were processed.
type Info struct {
	HeaderLine int   //line number of the header, 0 if it was not found.
	Lines      int   //total lines read
	Blank      int   //empty lines after the header
	Comments   int   //lines starting with '#' after the header
	Dropped    []int //line numbers of the data lines that could not be decoded
}

// Read reads the reflection table from r. Lines after the header that can't be
// decoded are silently dropped. If the header is never found, it returns nil
// and an error wrapping ErrHeaderNotFound. A header followed by no data is not an
// error, and returns an empty, non-nil set. r is not closed.
func Read(r io.Reader) (Reflections, error) {
	refl, _, err := ReadInfo(r, false)
	return refl, errDecorate(err, "Read", "")
}

// ReadInfo reads the reflection table from r, like Read, and also returns
// information on the lines processed. If strict is true, the first data line that
// can't be decoded aborts the reading with an error wrapping ErrMalformedLine, and
// no reflections are returned. The Info is returned even on failure.
func ReadInfo(r io.Reader, strict bool) (Reflections, *Info, error) {
	info := new(Info)
	in := bufio.NewReader(r)
	var line string
	var err error
	//Looking for the header
	for {
		line, err = readLine(in)
		if err == io.EOF {
			return nil, info, newError(ErrHeaderNotFound, "ReadInfo", "")
		} else if err != nil {
			return nil, info, readFailure(err, info.Lines+1)
		}
		info.Lines++
		if line == Header {
			info.HeaderLine = info.Lines
			break
		}
	}
	refl := make(Reflections, 0)
	for {
		line, err = readLine(in)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, info, readFailure(err, info.Lines+1)
		}
		info.Lines++
		if line == "" {
			info.Blank++
			continue
		}
		if line[0] == '#' {
			info.Comments++
			continue
		}
		rf, err := parseLine(line)
		if err != nil {
			if strict {
				e := newError(ErrMalformedLine, "ReadInfo", fmt.Sprintf("%q: %v", line, err))
				e.line = info.Lines
				return nil, info, e
			}
			info.Dropped = append(info.Dropped, info.Lines)
			continue
		}
		refl = append(refl, rf)
	}
	return refl, info, nil
}

// readLine returns the next line without its terminator ("\n" or "\r\n").
// A last line with no terminator is returned with a nil error, the following
// call returns io.EOF.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func readFailure(err error, line int) *Error {
	e := newError(ErrReadFailure, "ReadInfo", "")
	e.cause = err
	e.line = line
	return e
}

// parseLine decodes a data line of the reflection table. The line must have exactly six
// fields: h, k, l and multiplicity as integers (the multiplicity can't be negative),
// and d-spacing and |Fc|^2 as floating point numbers.
func parseLine(line string) (Reflection, error) {
	var r Reflection
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return r, fmt.Errorf("%d fields, 6 expected", len(fields))
	}
	ints := []*int{&r.H, &r.K, &r.L}
	for i, v := range ints {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return r, err
		}
		*v = n
	}
	mult, err := strconv.ParseUint(fields[3], 10, 31)
	if err != nil {
		return r, err
	}
	r.Mult = int(mult)
	if r.D, err = parseReal(fields[4]); err != nil {
		return r, err
	}
	if r.Fc2, err = parseReal(fields[5]); err != nil {
		return r, err
	}
	return r, nil
}

// parseReal parses a finite decimal or exponential number. The hexadecimal
// floats, infinities and NaNs that strconv.ParseFloat also takes are rejected.
func parseReal(s string) (float64, error) {
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, fmt.Errorf("hexadecimal number %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return f, nil
}

// IsHeaderNotFound returns true if err means that a source had no reflection table header.
func IsHeaderNotFound(err error) bool {
	return errors.Is(err, ErrHeaderNotFound)
}
