package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/messages"
	servernetwork "github.com/cbodonnell/torchlight/pkg/network"
	"github.com/cbodonnell/torchlight/pkg/queue"
)

// loginResult carries the outcome of a login request
type loginResult struct {
	clientID uint32
	err      error
}

// TCPClient carries the reliable channel to the server.
type TCPClient struct {
	serverAddr      string
	messageQueue    queue.Queue
	loginResultChan chan<- loginResult
	conn            net.Conn
	closeOnce       sync.Once
	closed          chan struct{}
}

// NewTCPClient creates a new TCP client.
func NewTCPClient(serverAddr string, messageQueue queue.Queue, loginResultChan chan<- loginResult) *TCPClient {
	return &TCPClient{
		serverAddr:      serverAddr,
		messageQueue:    messageQueue,
		loginResultChan: loginResultChan,
		closed:          make(chan struct{}),
	}
}

func (c *TCPClient) Dial(ctx context.Context) error {
	log.Info("Connecting to TCP server at %s", c.serverAddr)
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", c.serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %v", err)
	}
	c.conn = conn
	return nil
}

// HandleMessages reads frames until the connection is closed.
func (c *TCPClient) HandleMessages(ctx context.Context) error {
	defer c.Close()
	for {
		msg, err := servernetwork.ReadMessageFromTCP(c.conn)
		if err != nil {
			select {
			case <-c.closed:
				log.Info("TCP connection closed by client")
				return nil
			case <-ctx.Done():
				return nil
			default:
			}
			if servernetwork.IsConnectionClosed(err) {
				return &ErrConnectionClosedByServer{}
			}
			return fmt.Errorf("failed to read from TCP connection: %v", err)
		}

		if err := c.handleMessage(msg); err != nil {
			log.Error("Failed to handle message: %v", err)
		}
	}
}

func (c *TCPClient) handleMessage(msg *messages.Message) error {
	switch msg.Type {
	case messages.MessageTypeServerLoginSuccess:
		loginSuccess := &messages.ServerLoginSuccess{}
		if err := json.Unmarshal(msg.Payload, loginSuccess); err != nil {
			return fmt.Errorf("failed to deserialize server login success message: %v", err)
		}
		c.loginResultChan <- loginResult{clientID: loginSuccess.ClientID}
	case messages.MessageTypeServerLoginFailure:
		loginFailure := &messages.ServerLoginFailure{}
		if err := json.Unmarshal(msg.Payload, loginFailure); err != nil {
			return fmt.Errorf("failed to deserialize server login failure message: %v", err)
		}
		c.loginResultChan <- loginResult{err: fmt.Errorf("server login failure: %s", loginFailure.Reason)}
	case messages.MessageTypeServerPong:
		log.Trace("Received server pong over TCP")
	case messages.MessageTypeServerPlayerConnect,
		messages.MessageTypeServerPlayerDisconnect,
		messages.MessageTypeServerPickupSpawn,
		messages.MessageTypeServerPickupCollected,
		messages.MessageTypeServerToggleResource:
		if err := c.messageQueue.Enqueue(msg); err != nil {
			return fmt.Errorf("failed to enqueue message: %v", err)
		}
	default:
		return fmt.Errorf("received unexpected message type from TCP server: %s", msg.Type)
	}

	return nil
}

// SendMessage sends a message to the TCP server.
func (c *TCPClient) SendMessage(msg *messages.Message) error {
	if c.conn == nil {
		return fmt.Errorf("TCP client is not connected")
	}
	return servernetwork.WriteMessageToTCP(c.conn, msg)
}

// Close closes the TCP connection.
func (c *TCPClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		if c.conn != nil {
			err = c.conn.Close()
		}
	})
	return err
}
