package input

import (
	"bufio"
	"io"
)

// Stream delivers input bytes via a channel. The channel is closed when the
// reader fails or reaches EOF.
type Stream struct {
	ch chan byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine cannot be interrupted; it exits when r does.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// drain appends every byte already queued to buf without blocking. ok is
// false once the stream is closed.
func (s *Stream) drain(buf []byte) (out []byte, ok bool) {
	for {
		select {
		case b, open := <-s.ch:
			if !open {
				return buf, false
			}
			buf = append(buf, b)
		default:
			return buf, true
		}
	}
}
