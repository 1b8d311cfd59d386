package packet

import (
	"encoding/json"
	"fmt"
)

// Reader wraps one inbound message. The envelope type is decoded up front;
// the body is decoded on demand by the handler.
type Reader struct {
	data []byte
	typ  string
	err  error
}

func NewReader(data []byte) *Reader {
	r := &Reader{data: data}
	var b Base
	if err := json.Unmarshal(data, &b); err != nil {
		r.err = fmt.Errorf("decode envelope: %w", err)
		return r
	}
	r.typ = b.Type
	return r
}

// Type returns the message type, or "" when the envelope was malformed.
func (r *Reader) Type() string { return r.typ }

// Err returns the envelope decode error, if any.
func (r *Reader) Err() error { return r.err }

// Decode unmarshals the whole message into v.
func (r *Reader) Decode(v any) error {
	if r.err != nil {
		return r.err
	}
	if err := json.Unmarshal(r.data, v); err != nil {
		return fmt.Errorf("decode %s: %w", r.typ, err)
	}
	return nil
}

// Len returns the raw message size.
func (r *Reader) Len() int { return len(r.data) }
