package ulanding

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	frameHeader = 0xFE
	frameLen    = 6
	payloadLen  = frameLen - 1
)

var errBadChecksum = errors.New("ulanding: frame checksum mismatch")

// Frame is one distance report from the radar.
//
// Wire layout: 0xFE, version, distance low byte, distance high byte, SNR,
// checksum, where checksum is the low byte of the sum of bytes 1 through 4.
type Frame struct {
	Version    uint8
	DistanceCm uint16
	SNR        uint8
}

// Bytes encodes the frame as the radar sends it.
func (f Frame) Bytes() []byte {
	b := []byte{frameHeader, f.Version, byte(f.DistanceCm), byte(f.DistanceCm >> 8), f.SNR, 0}
	b[5] = checksum(b[1:5])
	return b
}

// ParseFrame decodes a complete frame including its header.
func ParseFrame(b []byte) (Frame, error) {
	if len(b) != frameLen {
		return Frame{}, errors.Errorf("ulanding: frame should be %d bytes got %d", frameLen, len(b))
	}
	if b[0] != frameHeader {
		return Frame{}, errors.Errorf("ulanding: bad frame header 0x%02X", b[0])
	}
	return parsePayload(b[1:])
}

func parsePayload(p []byte) (Frame, error) {
	if checksum(p[:4]) != p[4] {
		return Frame{}, errBadChecksum
	}
	return Frame{
		Version:    p[0],
		DistanceCm: uint16(p[1]) | uint16(p[2])<<8,
		SNR:        p[3],
	}, nil
}

func checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}

// decoder pulls frames out of a byte stream, resynchronizing on the header.
type decoder struct {
	r *bufio.Reader
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{r: bufio.NewReaderSize(r, 64)}
}

// next returns the next frame. errBadChecksum is returned for a corrupt frame;
// the stream stays usable and the bytes after the bogus header are rescanned.
func (d *decoder) next() (Frame, error) {
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			return Frame{}, err
		}
		if c != frameHeader {
			continue
		}
		p, err := d.r.Peek(payloadLen)
		if err != nil {
			return Frame{}, err
		}
		f, err := parsePayload(p)
		if err != nil {
			return Frame{}, err
		}
		if _, err := d.r.Discard(payloadLen); err != nil {
			return Frame{}, err
		}
		return f, nil
	}
}
