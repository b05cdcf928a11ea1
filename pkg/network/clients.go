package network

import (
	"errors"
	"fmt"
	"math/rand"
	"net"
	"sync"

	"nhooyr.io/websocket"
)

const (
	// ClientIDMaxRetries represents the maximum number of retries when generating a unique ID
	ClientIDMaxRetries = 1024
	// ClientEventChannelSize represents the size of the client event channel
	ClientEventChannelSize = 1024
)

// ErrUDPAddressMismatch is returned when a client's UDP address is already bound to another address
var ErrUDPAddressMismatch = errors.New("UDP address mismatch")

// ClientConnectionType represents how a client is connected to the server
type ClientConnectionType int

const (
	// ClientConnectionTypeTCPUDP uses TCP for reliable and UDP for unreliable messages
	ClientConnectionTypeTCPUDP ClientConnectionType = iota
	// ClientConnectionTypeWebSocket carries both channels over a single socket
	ClientConnectionTypeWebSocket
)

// Client represents a connected client
type Client struct {
	ID             uint32
	Name           string
	ConnectionType ClientConnectionType
	TCPConn        net.Conn
	WSConn         *websocket.Conn
	UDPAddress     *net.UDPAddr
}

// ClientEvent represents an event that happened to a client
type ClientEvent struct {
	ClientID uint32
	Type     ClientEventType
	Name     string
}

// ClientEventType represents the type of a client event
type ClientEventType int

const (
	ClientEventTypeConnect ClientEventType = iota
	ClientEventTypeDisconnect
)

// ClientManager manages connected clients
type ClientManager struct {
	clients         map[uint32]*Client
	clientsLock     sync.RWMutex
	clientEventChan chan ClientEvent
}

// NewClientManager creates a new ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:         make(map[uint32]*Client),
		clientEventChan: make(chan ClientEvent, ClientEventChannelSize),
	}
}

// GetClientEventChan returns a one-way channel for receiving client events
func (cm *ClientManager) GetClientEventChan() <-chan ClientEvent {
	return cm.clientEventChan
}

// GetClients returns a slice with a copy of all connected clients.
func (cm *ClientManager) GetClients() []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, copyClient(client))
	}
	return clients
}

// GetClient returns a copy of the client with the given ID
func (cm *ClientManager) GetClient(clientID uint32) (*Client, error) {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	client, ok := cm.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("client %d not found", clientID)
	}
	return copyClient(client), nil
}

func copyClient(client *Client) *Client {
	c := &Client{
		ID:             client.ID,
		Name:           client.Name,
		ConnectionType: client.ConnectionType,
		TCPConn:        client.TCPConn,
		WSConn:         client.WSConn,
	}
	if client.UDPAddress != nil {
		c.UDPAddress = &net.UDPAddr{
			IP:   client.UDPAddress.IP,
			Port: client.UDPAddress.Port,
			Zone: client.UDPAddress.Zone,
		}
	}
	return c
}

// ConnectClient adds a new client to the manager and returns its ID.
// Exactly one of tcpConn and wsConn is expected to be set.
func (cm *ClientManager) ConnectClient(tcpConn net.Conn, wsConn *websocket.Conn, name string) (uint32, error) {
	if tcpConn == nil && wsConn == nil {
		return 0, fmt.Errorf("no connection provided for %s", name)
	}

	cm.clientsLock.Lock()
	clientID, err := cm.generateUniqueID(ClientIDMaxRetries)
	if err != nil {
		cm.clientsLock.Unlock()
		return 0, fmt.Errorf("failed to generate a unique ID: %v", err)
	}
	client := &Client{
		ID:      clientID,
		Name:    name,
		TCPConn: tcpConn,
		WSConn:  wsConn,
	}
	if wsConn != nil {
		client.ConnectionType = ClientConnectionTypeWebSocket
	}
	cm.clients[clientID] = client
	cm.clientsLock.Unlock()

	cm.clientEventChan <- ClientEvent{
		ClientID: clientID,
		Type:     ClientEventTypeConnect,
		Name:     name,
	}

	return clientID, nil
}

// GetClientIDByTCPConn returns the ID of a client by its TCP connection.
// Returns 0 if the client is not found
func (cm *ClientManager) GetClientIDByTCPConn(conn net.Conn) uint32 {
	if conn == nil {
		return 0
	}
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	for _, client := range cm.clients {
		if client.TCPConn == conn {
			return client.ID
		}
	}
	return 0
}

// GetClientIDByWSConn returns the ID of a client by its WebSocket connection.
// Returns 0 if the client is not found
func (cm *ClientManager) GetClientIDByWSConn(conn *websocket.Conn) uint32 {
	if conn == nil {
		return 0
	}
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	for _, client := range cm.clients {
		if client.WSConn == conn {
			return client.ID
		}
	}
	return 0
}

// DisconnectClient removes a client from the manager
func (cm *ClientManager) DisconnectClient(clientID uint32) {
	cm.clientsLock.Lock()
	client, ok := cm.clients[clientID]
	if !ok {
		cm.clientsLock.Unlock()
		return
	}
	delete(cm.clients, clientID)
	cm.clientsLock.Unlock()

	cm.clientEventChan <- ClientEvent{
		ClientID: client.ID,
		Type:     ClientEventTypeDisconnect,
		Name:     client.Name,
	}
}

// SetUDPAddress binds the UDP address of a client. The first address wins:
// a different address for an already bound client returns ErrUDPAddressMismatch.
// Unknown clients are ignored.
func (cm *ClientManager) SetUDPAddress(clientID uint32, addr *net.UDPAddr) error {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	client, ok := cm.clients[clientID]
	if !ok {
		return nil
	}

	if client.UDPAddress != nil {
		if client.UDPAddress.String() != addr.String() {
			return ErrUDPAddressMismatch
		}
		return nil
	}

	client.UDPAddress = &net.UDPAddr{IP: addr.IP, Port: addr.Port, Zone: addr.Zone}
	return nil
}

// UDPAddressMatches reports whether addr is the UDP address bound to a client
func (cm *ClientManager) UDPAddressMatches(clientID uint32, addr *net.UDPAddr) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()

	client, ok := cm.clients[clientID]
	if !ok || client.UDPAddress == nil || addr == nil {
		return false
	}
	return client.UDPAddress.String() == addr.String()
}

func (cm *ClientManager) Exists(clientID uint32) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	_, ok := cm.clients[clientID]
	return ok
}

// generateUniqueID generates a unique client ID with a maximum number of retries
// it reads from the clients, so it needs to be locked before calling
func (cm *ClientManager) generateUniqueID(maxRetries int) (uint32, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		id := rand.Uint32()
		if id == 0 {
			continue
		}
		if _, ok := cm.clients[id]; !ok {
			return id, nil
		}
	}

	return 0, fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}
