package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sink is the durable destination for encoded patterns. Implementations must
// be safe for concurrent use by several workers and must not retain data
// after Write returns: workers reuse their encode buffers.
type Sink interface {
	Write(name string, data []byte) error
}

// SinkFactory constructs a Sink using an optional configuration map.
type SinkFactory func(cfg map[string]string) (Sink, error)

var sinks = map[string]SinkFactory{}

// RegisterSink adds a sink factory under the provided name.
func RegisterSink(name string, f SinkFactory) {
	if name == "" || f == nil {
		return
	}
	sinks[name] = f
}

// Sinks exposes the registry of available sink factories.
func Sinks() map[string]SinkFactory {
	return sinks
}
