package mmarket

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// Matrix holds the coordinate entries of a Matrix Market file.
type Matrix struct {
	Rows int
	Cols int

	// Entries is the stored entry count from the size line.
	Entries int

	// RowIndex and ColIndex are 1-based, as in the file.
	RowIndex []int
	ColIndex []int

	// Values is empty for pattern files.
	Values []float64
}

// Parse reads a coordinate-format Matrix Market body from r.
func Parse(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			text := strings.TrimSpace(sc.Text())
			if text == "" || strings.HasPrefix(text, "%") {
				continue
			}
			return text, true
		}
		return "", false
	}

	sizeLine, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("mmarket: read: %w", err)
		}
		return nil, fmt.Errorf("mmarket: missing size line")
	}

	fields := strings.Fields(sizeLine)
	if len(fields) != 3 {
		return nil, fmt.Errorf("mmarket: line %d: size line has %d fields, want 3", line, len(fields))
	}
	rows, err := parseIndex(fields[0])
	if err != nil {
		return nil, fmt.Errorf("mmarket: line %d: rows: %w", line, err)
	}
	cols, err := parseIndex(fields[1])
	if err != nil {
		return nil, fmt.Errorf("mmarket: line %d: columns: %w", line, err)
	}
	entries, err := strconv.Atoi(fields[2])
	if err != nil || entries < 0 {
		return nil, fmt.Errorf("mmarket: line %d: invalid entry count %q", line, fields[2])
	}

	m := &Matrix{
		Rows:     rows,
		Cols:     cols,
		Entries:  entries,
		RowIndex: make([]int, 0, entries),
		ColIndex: make([]int, 0, entries),
	}

	for {
		text, ok := next()
		if !ok {
			break
		}

		fields := strings.Fields(text)
		if len(fields) != 2 && len(fields) != 3 {
			return nil, fmt.Errorf("mmarket: line %d: entry has %d fields", line, len(fields))
		}

		row, err := parseIndex(fields[0])
		if err != nil {
			return nil, fmt.Errorf("mmarket: line %d: row index: %w", line, err)
		}
		col, err := parseIndex(fields[1])
		if err != nil {
			return nil, fmt.Errorf("mmarket: line %d: column index: %w", line, err)
		}
		if row > m.Rows || col > m.Cols {
			return nil, fmt.Errorf("mmarket: line %d: entry (%d,%d) outside %dx%d", line, row, col, m.Rows, m.Cols)
		}

		m.RowIndex = append(m.RowIndex, row)
		m.ColIndex = append(m.ColIndex, col)

		if len(fields) == 3 {
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("mmarket: line %d: invalid value %q", line, fields[2])
			}
			m.Values = append(m.Values, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mmarket: read: %w", err)
	}

	if got := len(m.RowIndex); got != m.Entries {
		return nil, fmt.Errorf("mmarket: size line declares %d entries, found %d", m.Entries, got)
	}
	if len(m.Values) != 0 && len(m.Values) != m.Entries {
		return nil, fmt.Errorf("mmarket: %d of %d entries carry values", len(m.Values), m.Entries)
	}

	return m, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("index %d is not 1-based", n)
	}
	return n, nil
}

// Pattern renders the sparsity pattern as a grayscale raster: one dark
// pixel per stored entry on a white background. The longer matrix side is
// scaled to maxDim pixels with the aspect ratio preserved; small matrices
// are not scaled up.
func (m *Matrix) Pattern(maxDim int) *image.Gray {
	if maxDim < 1 {
		maxDim = 1
	}

	longest := m.Rows
	if m.Cols > longest {
		longest = m.Cols
	}

	scale := 1.0
	if longest > maxDim {
		scale = float64(maxDim) / float64(longest)
	}

	width := scaled(m.Cols, scale)
	height := scaled(m.Rows, scale)

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	for i := range m.RowIndex {
		x := scaledIndex(m.ColIndex[i], scale, width)
		y := scaledIndex(m.RowIndex[i], scale, height)
		img.SetGray(x, y, color.Gray{Y: 0})
	}

	return img
}

func scaled(n int, scale float64) int {
	d := int(float64(n) * scale)
	if d < 1 {
		d = 1
	}
	return d
}

func scaledIndex(idx int, scale float64, limit int) int {
	p := int(float64(idx-1) * scale)
	if p >= limit {
		p = limit - 1
	}
	return p
}
