package block

import (
	"github.com/sirupsen/logrus"
)

// Stream reassembles data blocks from arbitrarily sized chunks, such as reads
// from a socket or file.
type Stream struct {
	logger *logrus.Logger
	buffer []byte
}

// NewStream creates a new reassembler
func NewStream(logger *logrus.Logger) *Stream {
	return &Stream{
		logger: logger,
		buffer: make([]byte, 0, 4096),
	}
}

// Feed appends a chunk and returns every block it completes. A header declaring
// a length shorter than itself leaves no way to find the next block, so the
// buffered bytes are dropped.
func (s *Stream) Feed(data []byte) [][]byte {
	s.buffer = append(s.buffer, data...)

	var blocks [][]byte
	for len(s.buffer) >= HeaderLen {
		h, err := ParseHeader(s.buffer)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"buffer_size": len(s.buffer),
			}).WithError(err).Debug("Invalid block header, clearing buffer")
			s.buffer = s.buffer[:0]
			break
		}

		if len(s.buffer) < h.Length {
			break
		}

		block := make([]byte, h.Length)
		copy(block, s.buffer[:h.Length])
		blocks = append(blocks, block)

		s.logger.WithFields(logrus.Fields{
			"category":    h.Category,
			"length":      h.Length,
			"buffer_size": len(s.buffer),
		}).Debug("Reassembled data block")

		s.buffer = s.buffer[h.Length:]
	}

	return blocks
}

// Pending returns the number of buffered bytes not yet part of a complete block
func (s *Stream) Pending() int {
	return len(s.buffer)
}

// Reset drops any buffered bytes
func (s *Stream) Reset() {
	s.buffer = s.buffer[:0]
}
