package protocol

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const frameHeaderBytes = 4

// ErrFrameTooLarge is returned when a peer announces a frame above the decoder limit.
var ErrFrameTooLarge = errors.New("frame exceeds size limit")

// Encoder writes envelopes with a length-prefixed JSON frame.
type Encoder struct {
	writer io.Writer
}

// Decoder reads envelopes with a length-prefixed JSON frame.
type Decoder struct {
	reader   *bufio.Reader
	maxBytes int
}

// NewEncoder creates a new encoder for the given writer.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

// NewDecoder creates a new decoder for the given reader. A non-positive
// maxFrameBytes disables the size check.
func NewDecoder(r io.Reader, maxFrameBytes int) *Decoder {
	return &Decoder{reader: bufio.NewReader(r), maxBytes: maxFrameBytes}
}

// Encode writes the envelope to the underlying writer.
func (e *Encoder) Encode(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	frame := make([]byte, frameHeaderBytes+len(data))
	binary.BigEndian.PutUint32(frame, uint32(len(data)))
	copy(frame[frameHeaderBytes:], data)

	_, err = e.writer.Write(frame)
	return err
}

// Decode reads the next envelope from the stream.
func (d *Decoder) Decode(ctx context.Context) (Envelope, error) {
	var env Envelope

	header := make([]byte, frameHeaderBytes)
	if err := d.readFull(ctx, header); err != nil {
		return env, err
	}

	length := binary.BigEndian.Uint32(header)
	if length == 0 {
		return env, errors.New("frame length zero")
	}
	if d.maxBytes > 0 && int64(length) > int64(d.maxBytes) {
		return env, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, length, d.maxBytes)
	}

	payload := make([]byte, length)
	if err := d.readFull(ctx, payload); err != nil {
		return env, err
	}

	if err := json.Unmarshal(payload, &env); err != nil {
		return env, err
	}

	return env, nil
}

func (d *Decoder) readFull(ctx context.Context, buf []byte) error {
	read := 0
	for read < len(buf) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := d.reader.Read(buf[read:])
		read += n
		if err != nil {
			if read == len(buf) {
				return nil
			}
			if errors.Is(err, io.EOF) && read > 0 {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}
