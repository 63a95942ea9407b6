package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// WAV is a decoded PCM s16le RIFF file.
type WAV struct {
	Channels   int
	SampleRate int
	// Data holds the interleaved little-endian samples.
	Data []byte
}

// Duration is the playback length in seconds.
func (w WAV) Duration() float64 {
	frame := w.Channels * 2
	if frame == 0 || w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Data)/frame) / float64(w.SampleRate)
}

// ParseWAV reads a RIFF/WAVE stream. Only 16-bit PCM is accepted.
func ParseWAV(r io.Reader) (WAV, error) {
	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return WAV{}, fmt.Errorf("read riff header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return WAV{}, errors.New("not a RIFF/WAVE file")
	}

	var (
		out     WAV
		haveFmt bool
	)
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return WAV{}, errors.New("wav has no data chunk")
			}
			return WAV{}, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			if size < 16 {
				return WAV{}, fmt.Errorf("fmt chunk too short: %d bytes", size)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return WAV{}, fmt.Errorf("read fmt chunk: %w", err)
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			if format != formatPCM && format != formatExtensible {
				return WAV{}, fmt.Errorf("unsupported wav format %d", format)
			}
			out.Channels = int(binary.LittleEndian.Uint16(body[2:4]))
			out.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			if bits := binary.LittleEndian.Uint16(body[14:16]); bits != 16 {
				return WAV{}, fmt.Errorf("unsupported bit depth %d", bits)
			}
			if out.Channels < 1 || out.Channels > 2 {
				return WAV{}, fmt.Errorf("unsupported channel count %d", out.Channels)
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return WAV{}, errors.New("wav data chunk precedes fmt chunk")
			}
			src := io.LimitReader(r, size)
			// Streaming encoders leave the length at 0 or 0xFFFFFFFF.
			if size == 0 || size == 0xFFFFFFFF {
				src = r
			}
			data, err := io.ReadAll(src)
			if err != nil {
				return WAV{}, fmt.Errorf("read data chunk: %w", err)
			}
			out.Data = data[:len(data)-len(data)%(out.Channels*2)]
			return out, nil
		default:
			if _, err := io.CopyN(io.Discard, r, size+size%2); err != nil {
				return WAV{}, fmt.Errorf("skip %q chunk: %w", id, err)
			}
		}
		if size%2 == 1 && id == "fmt " {
			if _, err := io.CopyN(io.Discard, r, 1); err != nil {
				return WAV{}, fmt.Errorf("skip pad byte: %w", err)
			}
		}
	}
}
