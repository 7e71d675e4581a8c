// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package ascii implements a growable character grid for drawing text
// diagrams, such as tree layouts.
package ascii

import (
	"fmt"
	"slices"
	"strings"
)

// Board is a grid of runes that grows as text is written past its edges.
// The zero value is an empty board ready to use.
type Board struct {
	buf   []rune
	width int
}

// Make returns a new Board sized for width columns and height rows. The
// board still grows if content is written outside these bounds.
func Make(width, height int) Board {
	return Board{buf: make([]rune, 0, width*height), width: width}
}

// At returns a cursor positioned at row r, column c.
func (b *Board) At(r, c int) Cursor {
	return Cursor{b: b, r: r, c: c, crCol: c}
}

// Reset clears the board, keeping its allocated storage.
func (b *Board) Reset(width int) {
	b.buf = b.buf[:0]
	b.width = width
}

// Rows returns the number of rows written so far.
func (b *Board) Rows() int {
	if b.width == 0 {
		return 0
	}
	return len(b.buf) / b.width
}

// String returns the contents of the board with trailing spaces removed from
// every row.
func (b *Board) String() string {
	return b.Render("")
}

// Render returns the contents of the board with every row prefixed by
// indent.
func (b *Board) Render(indent string) string {
	var sb strings.Builder
	for r := 0; r < b.Rows(); r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(indent)
		sb.WriteString(strings.TrimRight(string(b.row(r)), " "))
	}
	return sb.String()
}

func (b *Board) set(r, c int, ch rune) {
	if c >= b.width {
		b.growWidth(c + 1)
	}
	b.row(r)[c] = ch
}

// row returns row r, growing the board downwards if needed.
func (b *Board) row(r int) []rune {
	if need := (r + 1) * b.width; need > len(b.buf) {
		n := need - len(b.buf)
		b.buf = slices.Grow(b.buf, n)
		for i := 0; i < n; i++ {
			b.buf = append(b.buf, ' ')
		}
	}
	return b.buf[r*b.width : (r+1)*b.width]
}

func (b *Board) growWidth(w int) {
	rows := b.Rows()
	buf := make([]rune, w*rows)
	for i := range buf {
		buf[i] = ' '
	}
	for r := 0; r < rows; r++ {
		copy(buf[r*w:], b.buf[r*b.width:(r+1)*b.width])
	}
	b.buf = buf
	b.width = w
}

// Cursor is a position on a Board. Cursors are values; writing through one
// returns a new cursor positioned after the written text.
type Cursor struct {
	b    *Board
	r, c int
	// crCol is the column newlines return to.
	crCol int
}

// Row returns the row of the cursor.
func (c Cursor) Row() int { return c.r }

// Column returns the column of the cursor.
func (c Cursor) Column() int { return c.c }

// WriteString writes s at the cursor. A newline in s moves to the next row,
// back to the column the cursor was created at.
func (c Cursor) WriteString(s string) Cursor {
	for _, ch := range s {
		if ch == '\n' {
			c.r++
			c.c = c.crCol
			continue
		}
		c.b.set(c.r, c.c, ch)
		c.c++
	}
	return c
}

// Printf writes the formatted string at the cursor.
func (c Cursor) Printf(format string, args ...interface{}) Cursor {
	return c.WriteString(fmt.Sprintf(format, args...))
}

// Repeat writes n copies of ch at the cursor.
func (c Cursor) Repeat(n int, ch rune) Cursor {
	for i := 0; i < n; i++ {
		c.b.set(c.r, c.c, ch)
		c.c++
	}
	return c
}
