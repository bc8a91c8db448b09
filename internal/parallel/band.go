package parallel

// Band is a half-open range of rows [Start, End).
type Band struct {
	Start, End int
}

// Len returns the number of rows in the band.
func (b Band) Len() int {
	return b.End - b.Start
}

// Bands splits [0, rows) into at most n contiguous, non-empty bands whose
// sizes differ by at most one row. It returns nil when rows <= 0.
func Bands(rows, n int) []Band {
	if rows <= 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	if n > rows {
		n = rows
	}

	bands := make([]Band, 0, n)
	size, extra := rows/n, rows%n
	start := 0
	for i := range n {
		end := start + size
		if i < extra {
			end++
		}
		bands = append(bands, Band{Start: start, End: end})
		start = end
	}
	return bands
}
