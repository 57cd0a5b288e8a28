package dailyrotate

import "io"

// countingWriter tracks the number of bytes written to the file it wraps
// since the file was opened.
type countingWriter struct {
	w     io.WriteCloser
	count int64
}

func newCountingWriter(w io.WriteCloser, seed int64) *countingWriter {
	return &countingWriter{w: w, count: seed}
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.count += int64(n)
	return n, err
}

// Count returns the bytes written so far, including the seed.
func (c *countingWriter) Count() int64 {
	return c.count
}

func (c *countingWriter) Close() error {
	return c.w.Close()
}
