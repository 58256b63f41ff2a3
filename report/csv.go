package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/notargets/stencilbench/bench"
)

// Header is the stable structured-output contract: column order and units
// (GB/s, GB = 1e9 bytes) do not change.
var Header = []string{"backend", "GPU", "precision", "L", "blk_x", "blk_y", "blk_z", "BW_GBs"}

// CSVWriter streams benchmark rows. The header is written once, before the
// first data row.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteIterations emits one row per timed iteration of res.
func (c *CSVWriter) WriteIterations(rec Record, res bench.Result) error {
	if err := c.header(); err != nil {
		return err
	}
	for i := range res.ElapsedNS {
		if err := c.w.Write(c.row(rec, res.GBs(i))); err != nil {
			return err
		}
	}
	c.w.Flush()
	return c.w.Error()
}

// WriteSummary emits one aggregated row for res.
func (c *CSVWriter) WriteSummary(rec Record, res bench.Result) error {
	if err := c.header(); err != nil {
		return err
	}
	if err := c.w.Write(c.row(rec, res.MeanGBs())); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

func (c *CSVWriter) header() error {
	if c.wroteHeader {
		return nil
	}
	c.wroteHeader = true
	return c.w.Write(Header)
}

func (c *CSVWriter) row(rec Record, gbs float64) []string {
	return []string{
		rec.Backend,
		rec.Device,
		rec.Precision.String(),
		strconv.Itoa(rec.L),
		strconv.Itoa(rec.Config.BlockX),
		strconv.Itoa(rec.Config.BlockY),
		strconv.Itoa(rec.Config.BlockZ),
		strconv.FormatFloat(gbs, 'f', 4, 64),
	}
}
