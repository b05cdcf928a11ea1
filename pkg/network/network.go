package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"

	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/messages"
	"github.com/cbodonnell/torchlight/pkg/queue"
	"nhooyr.io/websocket"
)

// MaxNameLength bounds the display name a client may log in with
const MaxNameLength = 32

type NetworkManager struct {
	ClientManager *ClientManager
	MessageQueue  queue.Queue
	TCPServer     *TCPServer
	UDPServer     *UDPServer
	WSServer      *WSServer
}

type NewNetworkManagerOptions struct {
	ClientManager *ClientManager
	MessageQueue  queue.Queue
	TCPPort       int
	UDPPort       int
	WSPort        int
	WSServerTLS   *TLSConfig
}

func NewNetworkManager(options NewNetworkManagerOptions) *NetworkManager {
	return &NetworkManager{
		ClientManager: options.ClientManager,
		MessageQueue:  options.MessageQueue,
		TCPServer: NewTCPServer(NewTCPServerOptions{
			Port: options.TCPPort,
		}),
		UDPServer: NewUDPServer(NewUDPServerOptions{
			Port: options.UDPPort,
		}),
		WSServer: NewWSServer(NewWSServerOptions{
			Port: options.WSPort,
			TLS:  options.WSServerTLS,
		}),
	}
}

func (n *NetworkManager) Start(ctx context.Context) {
	go n.TCPServer.Start(ctx, n.handleControlDisconnect, n.handleControlMessage)
	go n.UDPServer.Start(ctx, n.handleGameMessage)
	go n.WSServer.Start(ctx, n.handleControlDisconnect, n.handleControlMessage)
}

type ControlDisconnectHandler func(tcpConn net.Conn, wsConn *websocket.Conn)

func (n *NetworkManager) handleControlDisconnect(conn net.Conn, wsConn *websocket.Conn) {
	clientID := n.ClientManager.GetClientIDByTCPConn(conn)
	if clientID == 0 {
		clientID = n.ClientManager.GetClientIDByWSConn(wsConn)
	}
	if clientID == 0 {
		log.Debug("Connection closed before login")
		return
	}

	n.ClientManager.DisconnectClient(clientID)
	log.Info("Client %d disconnected", clientID)
}

type ControlMessageHandler func(ctx context.Context, tcpConn net.Conn, wsConn *websocket.Conn, message *messages.Message)

func (n *NetworkManager) handleControlMessage(ctx context.Context, tcpConn net.Conn, wsConn *websocket.Conn, message *messages.Message) {
	if message.Type == messages.MessageTypeClientLogin {
		clientID, err := n.handleClientLogin(tcpConn, wsConn, message)
		if err != nil {
			log.Error("Failed to handle client login: %v", err)
			if err := n.sendServerLoginFailure(ctx, tcpConn, wsConn, err.Error()); err != nil {
				log.Error("Failed to send server login failure: %v", err)
			}
			return
		}
		log.Info("Client %d connected", clientID)
		if err := n.sendServerLoginSuccess(ctx, clientID); err != nil {
			log.Error("Failed to send server login success: %v", err)
		}
		return
	}

	// the connection decides who the sender is, not the envelope
	clientID := n.ClientManager.GetClientIDByTCPConn(tcpConn)
	if clientID == 0 {
		clientID = n.ClientManager.GetClientIDByWSConn(wsConn)
	}
	if clientID == 0 {
		log.Warn("Received %s message from unknown client that is not a login message", message.Type)
		return
	}
	if message.ClientID != clientID {
		log.Warn("Client %d sent a message claiming to be from %d", clientID, message.ClientID)
		return
	}

	switch message.Type {
	case messages.MessageTypeClientPing:
		// browser clients have no datagram channel, so pong on the socket
		if err := n.SendReliableMessageToClient(ctx, clientID, pongMessage()); err != nil {
			log.Error("Failed to send pong to client %d: %v", clientID, err)
		}
	default:
		if err := n.MessageQueue.Enqueue(message); err != nil {
			log.Error("Failed to enqueue message: %v", err)
		}
	}
}

// handleClientLogin handles a client login message.
func (n *NetworkManager) handleClientLogin(tcpConn net.Conn, wsConn *websocket.Conn, message *messages.Message) (uint32, error) {
	clientLogin := &messages.ClientLogin{}
	if err := json.Unmarshal(message.Payload, clientLogin); err != nil {
		return 0, fmt.Errorf("failed to unmarshal client login: %v", err)
	}

	name := strings.TrimSpace(clientLogin.Name)
	if name == "" {
		return 0, fmt.Errorf("name is required")
	}
	if len(name) > MaxNameLength {
		return 0, fmt.Errorf("name is longer than %d characters", MaxNameLength)
	}

	if n.ClientManager.GetClientIDByTCPConn(tcpConn) != 0 || n.ClientManager.GetClientIDByWSConn(wsConn) != 0 {
		return 0, fmt.Errorf("connection is already logged in")
	}

	clientID, err := n.ClientManager.ConnectClient(tcpConn, wsConn, name)
	if err != nil {
		return 0, fmt.Errorf("failed to connect client: %v", err)
	}

	return clientID, nil
}

func (n *NetworkManager) sendServerLoginSuccess(ctx context.Context, clientID uint32) error {
	serverLoginSuccess := &messages.ServerLoginSuccess{
		ClientID: clientID,
	}

	payload, err := json.Marshal(serverLoginSuccess)
	if err != nil {
		return fmt.Errorf("failed to marshal server login success: %v", err)
	}

	msg := &messages.Message{
		ClientID: 0,
		Type:     messages.MessageTypeServerLoginSuccess,
		Payload:  payload,
	}

	if err := n.SendReliableMessageToClient(ctx, clientID, msg); err != nil {
		return fmt.Errorf("failed to send server login success: %v", err)
	}

	return nil
}

// sendServerLoginFailure answers on the raw connection since no client was registered.
func (n *NetworkManager) sendServerLoginFailure(ctx context.Context, tcpConn net.Conn, wsConn *websocket.Conn, reason string) error {
	serverLoginFailure := &messages.ServerLoginFailure{
		Reason: reason,
	}

	payload, err := json.Marshal(serverLoginFailure)
	if err != nil {
		return fmt.Errorf("failed to marshal server login failure: %v", err)
	}

	msg := &messages.Message{
		ClientID: 0,
		Type:     messages.MessageTypeServerLoginFailure,
		Payload:  payload,
	}

	if tcpConn != nil {
		return WriteMessageToTCP(tcpConn, msg)
	}
	if wsConn != nil {
		return WriteMessageToWS(ctx, wsConn, msg)
	}
	return fmt.Errorf("no connection to answer on")
}

func (n *NetworkManager) handleGameMessage(ctx context.Context, addr *net.UDPAddr, message *messages.Message) {
	if message.ClientID == 0 {
		log.Warn("Received UDP message from unknown client, ignoring")
		return
	}

	if !n.ClientManager.Exists(message.ClientID) {
		log.Warn("Received UDP message from %d, but client is not connected", message.ClientID)
		return
	}

	switch message.Type {
	case messages.MessageTypeClientPing:
		if err := n.handleClientPing(ctx, message.ClientID, addr); err != nil {
			log.Error("Failed to handle client ping: %v", err)
		}
	default:
		// datagrams only count for the client whose address they come from
		if !n.ClientManager.UDPAddressMatches(message.ClientID, addr) {
			log.Warn("Dropping %s for client %d from unbound address %s", message.Type, message.ClientID, addr)
			return
		}
		if err := n.MessageQueue.Enqueue(message); err != nil {
			log.Error("Failed to enqueue message: %v", err)
		}
	}
}

func (n *NetworkManager) handleClientPing(ctx context.Context, clientID uint32, addr *net.UDPAddr) error {
	if err := n.ClientManager.SetUDPAddress(clientID, addr); err != nil {
		return fmt.Errorf("failed to bind %s to client %d: %w", addr, clientID, err)
	}

	if err := n.SendUnreliableMessageToClient(ctx, clientID, pongMessage()); err != nil {
		return fmt.Errorf("failed to write pong message to client: %v", err)
	}

	return nil
}

func pongMessage() *messages.Message {
	return &messages.Message{
		ClientID: 0,
		Type:     messages.MessageTypeServerPong,
		Payload:  nil,
	}
}

func (n *NetworkManager) SendUnreliableMessageToAll(ctx context.Context, msg *messages.Message) {
	n.SendUnreliableMessageToAllExcept(ctx, 0, msg)
}

// SendUnreliableMessageToAllExcept sends msg to every connected client but excludeClientID.
// An excludeClientID of 0 excludes nobody.
func (n *NetworkManager) SendUnreliableMessageToAllExcept(ctx context.Context, excludeClientID uint32, msg *messages.Message) {
	for _, client := range n.ClientManager.GetClients() {
		if excludeClientID != 0 && client.ID == excludeClientID {
			continue
		}
		if err := n.sendUnreliableMessageToClient(ctx, client, msg); err != nil {
			log.Error("Failed to send unreliable message to client %d: %v", client.ID, err)
		}
	}
}

func (n *NetworkManager) sendUnreliableMessageToClient(ctx context.Context, client *Client, msg *messages.Message) error {
	switch client.ConnectionType {
	case ClientConnectionTypeTCPUDP:
		if client.UDPAddress == nil {
			return fmt.Errorf("client %d does not have a UDP address", client.ID)
		}

		if err := WriteMessageToUDP(n.UDPServer.GetUDPConn(), client.UDPAddress, msg); err != nil {
			return fmt.Errorf("failed to write message to UDP connection for client %d: %v", client.ID, err)
		}
	case ClientConnectionTypeWebSocket:
		if err := WriteMessageToWS(ctx, client.WSConn, msg); err != nil {
			return fmt.Errorf("failed to write message to WebSocket connection for client %d: %v", client.ID, err)
		}
	default:
		return fmt.Errorf("unknown connection type for client %d: %v", client.ID, client.ConnectionType)
	}

	return nil
}

func (n *NetworkManager) SendUnreliableMessageToClient(ctx context.Context, clientID uint32, msg *messages.Message) error {
	client, err := n.ClientManager.GetClient(clientID)
	if err != nil {
		return fmt.Errorf("failed to get client %d: %v", clientID, err)
	}

	if err := n.sendUnreliableMessageToClient(ctx, client, msg); err != nil {
		return fmt.Errorf("failed to send unreliable message to client %d: %v", clientID, err)
	}

	return nil
}

func (n *NetworkManager) SendReliableMessageToAll(ctx context.Context, msg *messages.Message) {
	for _, client := range n.ClientManager.GetClients() {
		if err := n.sendReliableMessageToClient(ctx, client, msg); err != nil {
			log.Error("Failed to send reliable message to client %d: %v", client.ID, err)
		}
	}
}

func (n *NetworkManager) sendReliableMessageToClient(ctx context.Context, client *Client, msg *messages.Message) error {
	switch client.ConnectionType {
	case ClientConnectionTypeTCPUDP:
		if err := WriteMessageToTCP(client.TCPConn, msg); err != nil {
			return fmt.Errorf("failed to write message to TCP connection for client %d: %v", client.ID, err)
		}
	case ClientConnectionTypeWebSocket:
		if err := WriteMessageToWS(ctx, client.WSConn, msg); err != nil {
			return fmt.Errorf("failed to write message to WebSocket connection for client %d: %v", client.ID, err)
		}
	default:
		return fmt.Errorf("unknown connection type for client %d: %v", client.ID, client.ConnectionType)
	}

	return nil
}

func (n *NetworkManager) SendReliableMessageToClient(ctx context.Context, clientID uint32, msg *messages.Message) error {
	client, err := n.ClientManager.GetClient(clientID)
	if err != nil {
		return fmt.Errorf("failed to get client %d: %v", clientID, err)
	}

	if err := n.sendReliableMessageToClient(ctx, client, msg); err != nil {
		return fmt.Errorf("failed to send reliable message to client %d: %v", clientID, err)
	}

	return nil
}
