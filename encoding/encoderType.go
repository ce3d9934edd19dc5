package encoding

import (
	"io"
)

// Encoder writes content in one mimetype. engine is the engine running the encode, so
// encoders can reach engine settings such as the JSON handle or BSON registry.
type Encoder interface {
	Encode(engine ContentEngine, writer io.Writer, content interface{}) error
}

// Decoder reads one mimetype into contentReceiver. A decoder must return an error, not
// leave contentReceiver untouched, when the payload is not in its format; sniffing
// relies on it.
type Decoder interface {
	Decode(engine ContentEngine, reader io.Reader, contentReceiver interface{}) error
}
