package server

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec replaces connect's protojson codec so plain Go structs can be
// used as request and response messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// Codec is the codec both the server and connect-go clients must use.
func Codec() connect.Codec { return jsonCodec{} }
