/*
 * write.go, part of goHKL.
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
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// PrintTable writes a human-readable report of refl to w: the number of reflections
// followed by one line per reflection.
func PrintTable(w io.Writer, refl Reflections) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "Found %d reflections:\n", len(refl))
	for _, v := range refl {
		fmt.Fprintf(out, "H: %d K: %d L: %d Mult: %d d-spacing: %s |Fc|^2: %s\n", v.H, v.K, v.L, v.Mult, g6(v.D), g6(v.Fc2))
	}
	return out.Flush()
}

// g6 formats f with 6 significant digits, without trailing zeros.
func g6(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// Write writes refl to w as an HKL reflection table: the header line followed by one
// fixed-width line per reflection. The output can be read back with Read.
func Write(w io.Writer, refl Reflections) error {
	out := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(out, Header); err != nil {
		return err
	}
	for _, v := range refl {
		_, err := fmt.Fprintf(out, "%4d %4d %4d %5d %13.5f %19s\n", v.H, v.K, v.L, v.Mult, v.D, fortranE(v.Fc2, 8))
		if err != nil {
			return err
		}
	}
	return out.Flush()
}

// fortranE formats f in the 0.dddE+xx style used by HKL files, with digits
// significant digits.
func fortranE(f float64, digits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'E', -1, 64)
	}
	if f == 0 {
		return "0." + strings.Repeat("0", digits) + "E+00"
	}
	s := strconv.FormatFloat(f, 'E', digits-1, 64) //i.e. -6.9358575E-01
	sign := ""
	if s[0] == '-' {
		sign = "-"
		s = s[1:]
	}
	mant, exps, _ := strings.Cut(s, "E")
	exp, _ := strconv.Atoi(exps)
	exp++
	esign := '+'
	if exp < 0 {
		esign = '-'
		exp = -exp
	}
	return fmt.Sprintf("%s0.%s%sE%c%02d", sign, mant[:1], mant[2:], esign, exp)
}
