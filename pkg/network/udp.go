package network

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/messages"
)

// UDPServer receives datagrams carrying the unreliable channel.
type UDPServer struct {
	port     int
	conn     *net.UDPConn
	connLock sync.RWMutex
}

type NewUDPServerOptions struct {
	Port int
}

// NewUDPServer creates a new UDP server.
func NewUDPServer(opts NewUDPServerOptions) *UDPServer {
	return &UDPServer{
		port: opts.Port,
	}
}

// GameMessageHandler handles a datagram received from addr
type GameMessageHandler func(ctx context.Context, addr *net.UDPAddr, message *messages.Message)

// Start starts the UDP server. It blocks until the context is cancelled.
func (s *UDPServer) Start(ctx context.Context, handler GameMessageHandler) {
	udpAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		log.Error("Failed to resolve UDP address: %v", err)
		return
	}

	udpConn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		log.Error("Failed to listen on UDP address: %v", err)
		return
	}

	log.Info("UDP server listening on %s", udpAddr.String())

	s.connLock.Lock()
	s.conn = udpConn
	s.connLock.Unlock()

	go func() {
		<-ctx.Done()
		udpConn.Close()
	}()

	for {
		message, addr, err := ReadMessageFromUDP(udpConn)
		if err != nil {
			select {
			case <-ctx.Done():
				log.Info("UDP server closed")
				return
			default:
			}
			log.Error("Failed to read message from UDP connection: %v", err)
			continue
		}

		log.Trace("Received UDP message of type %s from %d", message.Type, message.ClientID)
		handler(ctx, addr, message)
	}
}

// GetUDPConn returns the listening connection, or nil before Start has bound it
func (s *UDPServer) GetUDPConn() *net.UDPConn {
	s.connLock.RLock()
	defer s.connLock.RUnlock()
	return s.conn
}

// WriteMessageToUDP writes a Message to a UDP connection
func WriteMessageToUDP(conn *net.UDPConn, addr *net.UDPAddr, msg *messages.Message) error {
	if conn == nil {
		return fmt.Errorf("UDP connection is not open")
	}

	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if len(b) > messages.MessageBufferSize {
		return fmt.Errorf("message of %d bytes exceeds datagram size", len(b))
	}

	if _, err := conn.WriteToUDP(b, addr); err != nil {
		return fmt.Errorf("failed to write message to UDP connection: %v", err)
	}

	return nil
}

// ReadMessageFromUDP reads a Message from a UDP connection
func ReadMessageFromUDP(conn *net.UDPConn) (*messages.Message, *net.UDPAddr, error) {
	buf := make([]byte, messages.MessageBufferSize)
	n, addr, err := conn.ReadFromUDP(buf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read message from UDP connection: %v", err)
	}

	msg, err := messages.DeserializeMessage(buf[:n])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return msg, addr, nil
}
