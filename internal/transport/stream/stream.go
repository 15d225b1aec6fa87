// Package stream decodes live events from a line-oriented text stream.
// Each line carries one event as "timestamp pitch" (milliseconds and MIDI
// note number); a semicolon separator is accepted as well. Lines that do
// not parse, including column headers, are skipped with a warning.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// ErrBadLine is returned for a line that does not encode an event.
var ErrBadLine = errors.New("malformed event line")

// ParseEvent decodes one "timestamp pitch" line.
func ParseEvent(line string) (contracts.Event, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ';'
	})
	if len(fields) != 2 {
		return contracts.Event{}, fmt.Errorf("%w: want 2 fields, got %d", ErrBadLine, len(fields))
	}
	time, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return contracts.Event{}, fmt.Errorf("%w: timestamp %q", ErrBadLine, fields[0])
	}
	pitch, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil || pitch > 127 {
		return contracts.Event{}, fmt.Errorf("%w: pitch %q", ErrBadLine, fields[1])
	}
	return contracts.Event{Time: time, Pitch: uint8(pitch)}, nil
}

// Decode reads event lines from rd into the channel until EOF, a read
// error, or a signal on done. Unparseable lines are logged and skipped.
func Decode(rd io.Reader, events chan<- contracts.Event, done <-chan struct{}, log contracts.Logger) {
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		event, err := ParseEvent(line)
		if err != nil {
			log.Warn("skipping line", zap.String("line", line), zap.Error(err))
			continue
		}
		select {
		case events <- event:
		case <-done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn("event stream closed", zap.Error(err))
	}
}

// Source is an EventSource reading from an arbitrary io.Reader, typically
// standard input.
type Source struct {
	logger   contracts.Logger
	rd       io.Reader
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a stream source over rd.
func New(rd io.Reader, options *contracts.ClientOptions) *Source {
	return &Source{
		logger: options.Logger,
		rd:     rd,
		done:   make(chan struct{}),
	}
}

// StartCapture begins decoding events into the channel.
func (s *Source) StartCapture(events chan contracts.Event) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		Decode(s.rd, events, s.done, s.logger)
	}()
}

// Stop halts decoding. If the underlying reader is closeable it is closed,
// which also unblocks a pending read.
func (s *Source) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		if closer, ok := s.rd.(io.Closer); ok {
			_ = closer.Close()
		}
	})
	s.wg.Wait()
	return nil
}
