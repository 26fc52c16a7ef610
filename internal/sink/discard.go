package sink

import (
	"sync/atomic"

	"turmites/internal/core"
)

func init() {
	core.RegisterSink("discard", func(map[string]string) (core.Sink, error) {
		return &Discard{}, nil
	})
}

// Discard drops every pattern and only counts what it was given.
type Discard struct {
	files atomic.Int64
	bytes atomic.Int64
}

// Write records the size of data.
func (d *Discard) Write(_ string, data []byte) error {
	d.files.Add(1)
	d.bytes.Add(int64(len(data)))
	return nil
}

// Files returns the number of writes seen.
func (d *Discard) Files() int64 { return d.files.Load() }

// Bytes returns the total number of bytes seen.
func (d *Discard) Bytes() int64 { return d.bytes.Load() }
