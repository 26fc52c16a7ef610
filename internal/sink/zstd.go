package sink

import (
	"sync"

	"github.com/klauspost/compress/zstd"
	errgo "gopkg.in/errgo.v1"

	"turmites/internal/core"
)

// ZstdExt is appended to the names of compressed patterns.
const ZstdExt = ".zst"

func init() {
	core.RegisterSink("zstd", func(cfg map[string]string) (core.Sink, error) {
		dir, err := NewDir(cfg["dir"])
		if err != nil {
			return nil, errgo.Mask(err)
		}
		return NewZstd(dir, cfg["level"])
	})
}

// Zstd compresses every pattern before handing it to the next sink.
// Bitmaps of settled patterns are mostly runs of state zero and shrink
// by one or two orders of magnitude.
type Zstd struct {
	next  core.Sink
	level zstd.EncoderLevel
	pool  sync.Pool
}

type zstdScratch struct {
	enc *zstd.Encoder
	buf []byte
}

// NewZstd returns a sink compressing at the named level ("fastest",
// "default", "better" or "best"; empty means default) into next.
func NewZstd(next core.Sink, level string) (*Zstd, error) {
	lvl := zstd.SpeedDefault
	if level != "" {
		ok, l := zstd.EncoderLevelFromString(level)
		if !ok {
			return nil, errgo.Newf("unknown zstd level %q", level)
		}
		lvl = l
	}
	z := &Zstd{next: next, level: lvl}
	z.pool.New = func() any {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(z.level),
		)
		if err != nil {
			// Only reachable with invalid options, which are fixed above.
			panic(err)
		}
		return &zstdScratch{enc: enc}
	}
	return z, nil
}

// Write compresses data and writes it as name with ZstdExt appended.
func (z *Zstd) Write(name string, data []byte) error {
	s := z.pool.Get().(*zstdScratch)
	defer z.pool.Put(s)
	s.buf = s.enc.EncodeAll(data, s.buf[:0])
	if err := z.next.Write(name+ZstdExt, s.buf); err != nil {
		return errgo.Mask(err, errgo.Any)
	}
	return nil
}
