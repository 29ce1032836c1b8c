/*
 * files_test.go, part of goHKL.
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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasExtension(Te *testing.T) {
	for _, n := range []string{"a.hkl", "dir/EntryWithCollCode176.hkl", "a.hkl.gz", "a.hkl.zst", ".hkl"} {
		assert.True(Te, HasExtension(n), n)
	}
	for _, n := range []string{"a.HKL", "a.hk", "a.gz", "a.hkl.bz2", "hkl", "a.hkl.gz.zst", ""} {
		assert.False(Te, HasExtension(n), n)
	}
}

func TestFileReadErrors(Te *testing.T) {
	_, err := FileRead("test/sample.txt")
	assert.True(Te, errors.Is(err, ErrWrongExtension))

	_, err = FileRead("test/does-not-exist.hkl")
	assert.True(Te, errors.Is(err, ErrSourceUnavailable))
	assert.True(Te, errors.Is(err, os.ErrNotExist))
	var e *Error
	require.True(Te, errors.As(err, &e))
	assert.Equal(Te, "test/does-not-exist.hkl", e.FileName())

	refl, err := FileRead("test/noheader.hkl")
	assert.Nil(Te, refl)
	assert.True(Te, errors.Is(err, ErrHeaderNotFound))
	require.True(Te, errors.As(err, &e))
	assert.Equal(Te, "test/noheader.hkl", e.FileName())
	assert.Equal(Te, []string{"ReadInfo", "FileReadInfo", "FileRead"}, e.Decorate(""))
}

// compressCopy writes the contents of src to a new file dst in a temporary directory,
// compressed with the writer returned by newWriter.
func compressCopy(Te *testing.T, src, dst string, newWriter func(io.Writer) (io.WriteCloser, error)) string {
	Te.Helper()
	in, err := os.Open(src)
	require.NoError(Te, err)
	defer in.Close()
	name := filepath.Join(Te.TempDir(), dst)
	out, err := os.Create(name)
	require.NoError(Te, err)
	defer out.Close()
	w, err := newWriter(out)
	require.NoError(Te, err)
	_, err = io.Copy(w, in)
	require.NoError(Te, err)
	require.NoError(Te, w.Close())
	return name
}

func TestFileReadCompressed(Te *testing.T) {
	plain, err := FileRead("test/sample.hkl")
	require.NoError(Te, err)
	gz := compressCopy(Te, "test/sample.hkl", "sample.hkl.gz", func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	})
	zs := compressCopy(Te, "test/sample.hkl", "sample.hkl.zst", func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w)
	})
	for _, name := range []string{gz, zs} {
		refl, err := FileRead(name)
		require.NoError(Te, err, name)
		assert.Equal(Te, plain, refl, name)
	}
}

func TestFileReadBadCompressed(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "bad.hkl.gz")
	require.NoError(Te, os.WriteFile(name, []byte(Header+"\n"), 0o644))
	_, err := FileRead(name)
	assert.True(Te, errors.Is(err, ErrReadFailure), "%v", err)
}
