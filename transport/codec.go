package transport

import gs "github.com/digital-logic-and-computer-design/digitaljs"

// Codec is the wire format a host transport speaks: decode incoming
// command envelopes, encode outgoing update batches. JSONCodec and
// CBORCodec both satisfy it.
type Codec interface {
	DecodeCommand(data []byte) (Command, error)
	EncodeUpdate(msg gs.UpdateMessage) ([]byte, error)
}

var (
	_ Codec = JSONCodec{}
	_ Codec = CBORCodec{}
)
