/*
 * files.go, part of goHKL.
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
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Extension is the suffix an HKL file name must have, before any compression suffix.
const Extension = ".hkl"

// compression suffixes accepted after Extension.
const (
	gzipSuffix = ".gz"
	zstdSuffix = ".zst"
)

// HasExtension returns true if name ends in ".hkl", ".hkl.gz" or ".hkl.zst".
// The check is case-sensitive.
func HasExtension(name string) bool {
	name = strings.TrimSuffix(name, gzipSuffix)
	name = strings.TrimSuffix(name, zstdSuffix)
	return strings.HasSuffix(name, Extension)
}

// FileRead reads the reflection table of the file name. See Read.
func FileRead(name string) (Reflections, error) {
	refl, _, err := FileReadInfo(name, false)
	return refl, errDecorate(err, "FileRead", name)
}

// FileReadInfo reads the reflection table of the file name, like ReadInfo.
// Files ending in ".gz" or ".zst" are decompressed on the fly.
// The file is always closed before returning.
func FileReadInfo(name string, strict bool) (Reflections, *Info, error) {
	if !HasExtension(name) {
		e := newError(ErrWrongExtension, "FileReadInfo", "")
		e.filename = name
		return nil, nil, e
	}
	hklfile, err := os.Open(name)
	if err != nil {
		e := newError(ErrSourceUnavailable, "FileReadInfo", "")
		e.filename = name
		e.cause = err
		return nil, nil, e
	}
	defer hklfile.Close()
	in, err := decompressor(name, bufio.NewReader(hklfile))
	if err != nil {
		e := newError(ErrReadFailure, "FileReadInfo", "can't start decompression")
		e.filename = name
		e.cause = err
		return nil, nil, e
	}
	defer in.Close()
	refl, info, err := ReadInfo(in, strict)
	return refl, info, errDecorate(err, "FileReadInfo", name)
}

// zstdCloser makes a *zstd.Decoder fulfill io.ReadCloser, as its Close method
// doesn't return an error.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// decompressor returns a reader for r according to the suffix of name.
// Uncompressed files get a no-op closer.
func decompressor(name string, r io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, gzipSuffix):
		return gzip.NewReader(r)
	case strings.HasSuffix(name, zstdSuffix):
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdCloser{d}, nil
	default:
		return io.NopCloser(r), nil
	}
}
