// Package wspush pushes frames to a single browser tab over one websocket,
// dropping updates that arrive faster than the publish rate, and --
// unlike the teacher's read-only variant -- decodes each inbound message
// into whatever request type the caller is expecting (brush events,
// process/cancel control requests).
package wspush

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// Maximum message size accepted from a peer.
	maxMessageSize = 8192

	// The rate at which frames are pushed to the client, so as not to
	// overburden it or the network.
	pubResolution  = time.Millisecond * 100
	pingResolution = time.Millisecond * 200
	// Encompasses the number of pings to tolerate losing before concluding
	// the peer is gone.
	pongWait = pingResolution * 4
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  maxMessageSize,
	WriteBufferSize: maxMessageSize,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client publishes frames of type Out to a single browser tab, and decodes
// each inbound text message as an In (brush events, control requests) onto
// a caller-supplied channel.
type Client[Out, In any] struct {
	updates <-chan Out
	inbound chan<- In
	ws      *websock
	rootCtx context.Context
}

// New upgrades the request to a websocket and returns a client wired to
// push items from updates and forward any decoded inbound messages onto
// inbound (nil is fine if the caller doesn't care, e.g. a viewer-only tab
// in transform mode).
func New[Out, In any](
	updates <-chan Out,
	inbound chan<- In,
	w http.ResponseWriter,
	r *http.Request,
) (*Client[Out, In], error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, err
	}

	return &Client[Out, In]{
		updates: updates,
		inbound: inbound,
		ws:      newWebSocket(ws),
		rootCtx: r.Context(),
	}, nil
}

// Sync runs the client's read, ping/pong liveness, and publish loops until
// one of them errors or the request context is cancelled.
func (cli *Client[Out, In]) Sync() error {
	group, groupCtx := errgroup.WithContext(cli.rootCtx)

	group.Go(func() error {
		return cli.readMessages(groupCtx)
	})
	group.Go(func() error {
		return cli.pingPong(groupCtx)
	})
	group.Go(func() error {
		return cli.publish(groupCtx)
	})

	return group.Wait()
}

// ErrPongDeadlineExceeded signals the peer stopped responding to pings.
var ErrPongDeadlineExceeded error = errors.New("client disconnect, pong deadline exceeded")

func (cli *Client[Out, In]) pingPong(ctx context.Context) error {
	pong := make(chan struct{})
	defer close(pong)
	cli.ws.Conn().SetPongHandler(func(_ string) error {
		pong <- struct{}{}
		return nil
	})

	pinger := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			if time.Since(lastPong) > pongWait {
				return ErrPongDeadlineExceeded
			}
			if err := cli.ping(ctx); err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func (cli *Client[Out, In]) ping(ctx context.Context) error {
	return cli.ws.Write(ctx, func(ws *websocket.Conn) (err error) {
		if err = ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
			if isError(err) {
				err = fmt.Errorf("ping failed: %T %v", err, err)
			}
		}
		return
	})
}

// readMessages decodes each inbound text message as an In and forwards it
// to inbound. A decode failure is logged-by-discard, not fatal: a
// malformed single message shouldn't tear down the session. Errors
// returned by the underlying websocket read are permanent and do trigger
// full teardown, matching the teacher's read pump.
func (cli *Client[Out, In]) readMessages(ctx context.Context) error {
	for {
		var raw []byte
		err := cli.ws.Read(ctx, func(ws *websocket.Conn) (readErr error) {
			_, raw, readErr = ws.ReadMessage()
			return
		})
		if err != nil {
			return err
		}
		if raw == nil {
			continue
		}

		var msg In
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if cli.inbound != nil {
			select {
			case cli.inbound <- msg:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (cli *Client[Out, In]) publish(ctx context.Context) error {
	// Zero time, so the first update is always published.
	var lastSync time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-cli.updates:
			if !ok {
				return nil
			}
			if time.Since(lastSync) < pubResolution {
				break
			}
			lastSync = time.Now()

			err := cli.ws.Write(ctx, func(ws *websocket.Conn) (writeErr error) {
				if writeErr = ws.SetWriteDeadline(time.Now().Add(writeWait)); writeErr != nil {
					return fmt.Errorf("failed to set deadline: %w", writeErr)
				}
				if writeErr = ws.WriteJSON(update); writeErr != nil {
					if isError(writeErr) {
						writeErr = fmt.Errorf("publish failed: %T %v", writeErr, writeErr)
					}
				}
				return
			})
			if err != nil {
				return err
			}
		}
	}
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}

const (
	readDeadline     = time.Second
	writeDeadline    = time.Second
	closeGracePeriod = 10 * time.Second
)

// ErrSockCongestion indicates too many waiters on the socket for a given op.
var ErrSockCongestion = errors.New("sock op failed due to congestion")

// websock serializes reads and writes: gorilla/websocket permits at most
// one concurrent reader and one concurrent writer.
type websock struct {
	readSem  chan struct{}
	writeSem chan struct{}
	ws       *websocket.Conn
}

func newWebSocket(ws *websocket.Conn) *websock {
	return &websock{
		readSem:  make(chan struct{}, 1),
		writeSem: make(chan struct{}, 1),
		ws:       ws,
	}
}

func (sock *websock) Conn() *websocket.Conn {
	return sock.ws
}

// Close tears down the connection. Callers must ensure no read/write is
// in flight.
func (sock *websock) Close() {
	sock.readSem <- struct{}{}
	sock.writeSem <- struct{}{}

	_ = sock.ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = sock.ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGracePeriod)
	sock.ws.Close()
}

func (sock *websock) Read(ctx context.Context, readFn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case sock.readSem <- struct{}{}:
		defer func() { <-sock.readSem }()
		return readFn(sock.ws)
	case <-time.After(readDeadline):
		return ErrSockCongestion
	}
}

func (sock *websock) Write(ctx context.Context, writeFn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case sock.writeSem <- struct{}{}:
		defer func() { <-sock.writeSem }()
		return writeFn(sock.ws)
	case <-time.After(readDeadline):
		return ErrSockCongestion
	}
}
