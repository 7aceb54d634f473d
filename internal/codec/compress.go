package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the compression applied to a framed value. Tags are
// written into every stored value, so the numeric values are part of the file format.
type CompressionTag uint8

const (
	CompressionNone CompressionTag = 0
	CompressionLZ4  CompressionTag = 1
	CompressionZstd CompressionTag = 2
)

// String returns the human-readable name of a compression tag.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// ParseCompressionTag parses a compression tag from its string representation.
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

// UnmarshalFlag implements flags.Unmarshaler.
func (tag *CompressionTag) UnmarshalFlag(value string) error {
	parsed, err := ParseCompressionTag(value)
	if err != nil {
		return err
	}
	*tag = parsed
	return nil
}

// MarshalFlag implements flags.Marshaler.
func (tag CompressionTag) MarshalFlag() (string, error) {
	return tag.String(), nil
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder

	errIncompressible = errors.New("data is incompressible")
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// Encode marshals v and wraps it in a frame compressed with tag. A payload that
// does not shrink under the requested algorithm is stored uncompressed.
func Encode(v any, tag CompressionTag) ([]byte, error) {
	payload, err := Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	return Frame(payload, tag)
}

// Decode unwraps a frame produced by Encode and unmarshals its payload into v.
func Decode(data []byte, v any) error {
	payload, err := Unframe(data)
	if err != nil {
		return err
	}
	if err := Unmarshal(payload, v); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}
	return nil
}

// Frame lays out [tag][uvarint raw length][payload].
func Frame(raw []byte, tag CompressionTag) ([]byte, error) {
	body, err := compress(raw, tag)
	if errors.Is(err, errIncompressible) {
		tag, body, err = CompressionNone, raw, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]byte, 1, 1+binary.MaxVarintLen64+len(body))
	out[0] = byte(tag)
	out = binary.AppendUvarint(out, uint64(len(raw)))
	return append(out, body...), nil
}

// Unframe reverses Frame, verifying the recorded raw length.
func Unframe(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty frame")
	}
	tag := CompressionTag(data[0])
	rawLen, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, fmt.Errorf("frame length header corrupt (tag %s)", tag)
	}
	if rawLen > uint64(maxFrameSize) {
		return nil, fmt.Errorf("frame length %d exceeds limit %d", rawLen, maxFrameSize)
	}
	return decompress(data[1+n:], tag, int(rawLen))
}

// maxFrameSize bounds allocations driven by a corrupt length header.
const maxFrameSize = 1 << 30

func compress(data []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		destination := make([]byte, lz4.CompressBlockBound(len(data)))
		written, err := lz4.CompressBlock(data, destination, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return destination[:written], nil
	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return nil, errIncompressible
		}
		return compressed, nil
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", uint8(tag))
	}
}

func decompress(body []byte, tag CompressionTag, rawLen int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(body) != rawLen {
			return nil, fmt.Errorf("uncompressed frame: size %d does not match expected %d", len(body), rawLen)
		}
		return body, nil
	case CompressionLZ4:
		destination := make([]byte, rawLen)
		read, err := lz4.UncompressBlock(body, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != rawLen {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, rawLen)
		}
		return destination, nil
	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(body, make([]byte, 0, rawLen))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != rawLen {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), rawLen)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", uint8(tag))
	}
}
