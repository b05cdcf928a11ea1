package network

import (
	"context"
	"fmt"
	"net"

	"github.com/cbodonnell/torchlight/pkg/log"
)

// TCPServer accepts stream connections carrying the reliable channel.
type TCPServer struct {
	port int
}

type NewTCPServerOptions struct {
	Port int
}

// NewTCPServer creates a new TCP server.
func NewTCPServer(opts NewTCPServerOptions) *TCPServer {
	return &TCPServer{
		port: opts.Port,
	}
}

// Start starts the TCP server. It blocks until the context is cancelled.
func (s *TCPServer) Start(ctx context.Context, disconnectHandler ControlDisconnectHandler, messageHandler ControlMessageHandler) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		log.Error("Failed to resolve TCP address: %v", err)
		return
	}

	tcpListener, err := net.ListenTCP("tcp", tcpAddr)
	if err != nil {
		log.Error("Failed to listen on TCP address: %v", err)
		return
	}

	log.Info("TCP server listening on %s", tcpAddr.String())

	go func() {
		<-ctx.Done()
		tcpListener.Close()
	}()

	for {
		conn, err := tcpListener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				log.Info("TCP server closed")
				return
			default:
			}
			log.Error("Failed to accept TCP connection: %v", err)
			continue
		}

		go s.handleTCPConnection(ctx, conn, disconnectHandler, messageHandler)
	}
}

// handleTCPConnection reads frames until the connection is closed.
func (s *TCPServer) handleTCPConnection(ctx context.Context, conn net.Conn, disconnectHandler ControlDisconnectHandler, messageHandler ControlMessageHandler) {
	defer func() {
		disconnectHandler(conn, nil)
		conn.Close()
	}()

	for {
		message, err := ReadMessageFromTCP(conn)
		if err != nil {
			if IsConnectionClosed(err) {
				log.Trace("TCP connection closed for %s", conn.RemoteAddr().String())
				return
			}
			log.Error("Error reading TCP message from %s: %v", conn.RemoteAddr().String(), err)
			return
		}

		messageHandler(ctx, conn, nil, message)
	}
}
