// Package ws receives live events over a websocket connection. Each text
// message carries one or more event lines in the stream transport's
// "timestamp pitch" encoding.
package ws

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/leandrodaf/scorefollow/internal/transport/stream"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// ErrMissingURL is returned when no websocket URL is configured.
var ErrMissingURL = errors.New("websocket transport requires a URL")

// Source is an EventSource reading from a websocket endpoint.
type Source struct {
	logger   contracts.Logger
	conn     *websocket.Conn
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New dials the websocket endpoint given in the options' address.
func New(options *contracts.ClientOptions) (*Source, error) {
	if options.Address == "" {
		return nil, ErrMissingURL
	}
	conn, _, err := websocket.DefaultDialer.Dial(options.Address, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", options.Address, err)
	}
	options.Logger.Info("websocket connected", zap.String("url", options.Address))
	return &Source{
		logger: options.Logger,
		conn:   conn,
		done:   make(chan struct{}),
	}, nil
}

// StartCapture reads messages and decodes their event lines into the
// channel until the connection closes or Stop is called.
func (s *Source) StartCapture(events chan contracts.Event) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			messageType, payload, err := s.conn.ReadMessage()
			if err != nil {
				select {
				case <-s.done:
				default:
					s.logger.Warn("websocket closed", zap.Error(err))
				}
				return
			}
			if messageType != websocket.TextMessage {
				continue
			}
			stream.Decode(bytes.NewReader(payload), events, s.done, s.logger)
			select {
			case <-s.done:
				return
			default:
			}
		}
	}()
}

// Stop closes the connection, unblocking a pending read.
func (s *Source) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	s.wg.Wait()
	return err
}
