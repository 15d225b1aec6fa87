// Package netsock accepts live events over a TCP or Unix domain socket
// using the same line encoding as the stream transport. Connections are
// served one at a time; interleaving events from concurrent performers
// would break the timestamp ordering the aligner requires.
package netsock

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/leandrodaf/scorefollow/internal/transport/stream"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// ErrMissingAddress is returned when no listen address is configured.
var ErrMissingAddress = errors.New("socket transport requires an address")

// Source is an EventSource listening on a TCP or Unix socket.
type Source struct {
	logger   contracts.Logger
	listener net.Listener
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu   sync.Mutex
	conn net.Conn
}

// New opens a listener on the given network ("tcp" or "unix") and address.
func New(network string, options *contracts.ClientOptions) (*Source, error) {
	if options.Address == "" {
		return nil, ErrMissingAddress
	}
	listener, err := net.Listen(network, options.Address)
	if err != nil {
		return nil, fmt.Errorf("listening on %s %s: %w", network, options.Address, err)
	}
	options.Logger.Info("listening for live events",
		zap.String("network", network),
		zap.String("address", listener.Addr().String()))
	return &Source{
		logger:   options.Logger,
		listener: listener,
		done:     make(chan struct{}),
	}, nil
}

// Addr returns the bound listener address.
func (s *Source) Addr() net.Addr {
	return s.listener.Addr()
}

// StartCapture accepts connections and decodes their event lines into the
// channel until Stop is called.
func (s *Source) StartCapture(events chan contracts.Event) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.done:
				default:
					s.logger.Warn("accept failed", zap.Error(err))
				}
				return
			}
			s.logger.Info("performer connected", zap.String("remote", conn.RemoteAddr().String()))
			s.mu.Lock()
			s.conn = conn
			s.mu.Unlock()

			stream.Decode(conn, events, s.done, s.logger)
			_ = conn.Close()

			s.mu.Lock()
			s.conn = nil
			s.mu.Unlock()

			select {
			case <-s.done:
				return
			default:
			}
		}
	}()
}

// Stop closes the listener and any active connection.
func (s *Source) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)
		err = s.listener.Close()
		s.mu.Lock()
		if s.conn != nil {
			_ = s.conn.Close()
		}
		s.mu.Unlock()
	})
	s.wg.Wait()
	return err
}
