package network

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/messages"
	"github.com/cbodonnell/torchlight/pkg/queue"
)

// UDPClient carries the unreliable channel to the server.
type UDPClient struct {
	serverAddr   *net.UDPAddr
	messageQueue queue.Queue
	pongChan     chan<- time.Time
	conn         *net.UDPConn
	closeOnce    sync.Once
	closed       chan struct{}
}

// NewUDPClient creates a new UDP client.
func NewUDPClient(serverAddr string, messageQueue queue.Queue, pongChan chan<- time.Time) (*UDPClient, error) {
	serverUDPAddr, err := net.ResolveUDPAddr("udp", serverAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve UDP address: %v", err)
	}

	return &UDPClient{
		serverAddr:   serverUDPAddr,
		messageQueue: messageQueue,
		pongChan:     pongChan,
		closed:       make(chan struct{}),
	}, nil
}

func (c *UDPClient) Dial() error {
	conn, err := net.DialUDP("udp", nil, c.serverAddr)
	if err != nil {
		return fmt.Errorf("failed to dial UDP address: %v", err)
	}
	c.conn = conn
	return nil
}

// HandleMessages reads datagrams until the connection is closed.
func (c *UDPClient) HandleMessages(ctx context.Context) error {
	defer c.Close()
	buf := make([]byte, messages.MessageBufferSize)
	for {
		n, err := c.conn.Read(buf)
		if err != nil {
			select {
			case <-c.closed:
				return nil
			case <-ctx.Done():
				return nil
			default:
			}
			log.Error("Failed to read from UDP connection: %v", err)
			continue
		}

		msg, err := messages.DeserializeMessage(buf[:n])
		if err != nil {
			log.Error("Failed to deserialize UDP message: %v", err)
			continue
		}
		log.Trace("Received message from UDP server of type %s", msg.Type)

		switch msg.Type {
		case messages.MessageTypeServerPong:
			select {
			case c.pongChan <- time.Now():
			default:
			}
		case messages.MessageTypeServerToggleResource:
			if err := c.messageQueue.Enqueue(msg); err != nil {
				log.Error("Failed to enqueue message: %v", err)
			}
		default:
			log.Warn("Received unexpected message type from UDP server: %s", msg.Type)
		}
	}
}

// SendMessage sends a message to the UDP server.
func (c *UDPClient) SendMessage(msg *messages.Message) error {
	if c.conn == nil {
		return fmt.Errorf("UDP client is not connected")
	}

	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if _, err := c.conn.Write(b); err != nil {
		return fmt.Errorf("failed to write message to UDP connection: %v", err)
	}

	return nil
}

// Close closes the UDP connection.
func (c *UDPClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		if c.conn != nil {
			err = c.conn.Close()
		}
	})
	return err
}
