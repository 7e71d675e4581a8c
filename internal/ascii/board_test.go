// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package ascii

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestBoardDatadriven(t *testing.T) {
	var board Board
	datadriven.RunTest(t, "testdata/board", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "make":
			var w, h int
			td.ScanArgs(t, "w", &w)
			td.ScanArgs(t, "h", &h)
			board = Make(w, h)
			return board.String()
		case "write":
			for _, line := range crstrings.Lines(td.Input) {
				fields := strings.SplitN(line, " ", 3)
				if len(fields) != 3 {
					td.Fatalf(t, "expected <row> <col> <text>, got %q", line)
				}
				r, err := strconv.Atoi(fields[0])
				require.NoError(t, err)
				c, err := strconv.Atoi(fields[1])
				require.NoError(t, err)
				board.At(r, c).WriteString(fields[2])
			}
			return board.String()
		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

func TestBoard(t *testing.T) {
	board := Make(10, 2)
	board.At(0, 0).Printf("Hello\nworld!")
	require.Equal(t, "Hello\nworld!", board.String())

	board.Reset(10)
	cur := board.At(1, 5).Printf("a\nb\nc")
	require.Equal(t, 3, cur.Row())
	require.Equal(t, 6, cur.Column())
	require.Equal(t, "\n     a\n     b\n     c", board.String())
	require.Equal(t, "> \n>      a\n>      b\n>      c", board.Render("> "))
}

func TestBoardGrowsWidth(t *testing.T) {
	var board Board
	board.At(0, 0).WriteString("ab")
	board.At(1, 4).Repeat(3, '-')
	require.Equal(t, 2, board.Rows())
	require.Equal(t, "ab\n    ---", board.String())
}
