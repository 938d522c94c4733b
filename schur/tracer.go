package schur

import (
	"os"

	"github.com/rs/zerolog"
)

// tracer wraps a zerolog.Logger and emits one structured event per outer
// iteration of the QR drivers, gated by Options.Debug (spec.md S9: "Rewrite
// as a structured event log ... do not retain the printf vocabulary"). When
// debug is false the logger is zerolog.Nop(), so the hot loop pays no
// formatting cost beyond the driver's own nil check on the trace callback.
type tracer struct {
	log zerolog.Logger
}

func newTracer(debug bool) tracer {
	if !debug {
		return tracer{log: zerolog.Nop()}
	}
	return tracer{log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()}
}

// hook adapts the tracer into the schurlapack driver's trace callback shape.
func (t tracer) hook() func(kind string, istart, iend, iter int) {
	return func(kind string, istart, iend, iter int) {
		t.log.Debug().Str("event", kind).Int("istart", istart).Int("iend", iend).Int("iter", iter).Msg("")
	}
}

func (t tracer) stage(name string) {
	t.log.Debug().Str("event", name).Msg("")
}
