/*
 * doc.go, part of goHKL.
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
 */

/*
Package hkl reads the reflection tables of crystallographic HKL files.

An HKL file starts with a free-form preamble (title, cell, space group, atoms, constants)
which is ignored. The reflection table starts right after the column header line

	# H   K   L     Mult    dspc                   |Fc|^2

which has to be matched exactly, spaces included. Every following line that is
not empty and does not start with '#' should contain six fields: the Miller indices
h, k and l, the multiplicity, the d-spacing (in A) and the squared structure
factor |Fc|^2, for instance:

	   0    0    2     1      11.43050      0.69358575E+00

Lines that can't be decoded are dropped, unless the strict mode of ReadInfo is used.

	**goHKL capabilities**

	Reads reflection tables from any io.Reader, or from plain, gzip or zstd
	compressed files.

	Writes reflection tables back in HKL layout, and prints them in a
	human-readable report.

	Summary statistics, relative intensities and resolution shells of a set
	of reflections, and export of the Miller indices as a gonum matrix.
*/
package hkl
