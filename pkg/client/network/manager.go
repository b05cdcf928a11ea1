package network

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/messages"
	"github.com/cbodonnell/torchlight/pkg/queue"
)

const (
	DefaultServerHostname = "localhost"
	DefaultServerTCPPort  = 8888
	DefaultServerUDPPort  = 8889

	// LoginTimeout bounds the wait for the server's login answer
	LoginTimeout = 5 * time.Second
	// PingInterval is how often the UDP address is refreshed and the RTT sampled
	PingInterval = time.Second
)

// NetworkManager owns the client's connections to the server.
type NetworkManager struct {
	serverMessageQueue queue.Queue
	tcpClient          *TCPClient
	udpClient          *UDPClient
	loginResultChan    chan loginResult
	pongChan           chan time.Time
	errChan            chan error
	cancelClientCtx    context.CancelFunc
	clientWaitGroup    *sync.WaitGroup

	clientID      uint32
	clientIDMutex sync.Mutex

	pingMutex    sync.Mutex
	lastPingSent time.Time
	recentRTTs   []int64
	ping         float64
}

type NewNetworkManagerOptions struct {
	ServerHost   string
	TCPPort      int
	UDPPort      int
	MessageQueue queue.Queue
}

// NewNetworkManager creates a new network manager.
func NewNetworkManager(opts NewNetworkManagerOptions) (*NetworkManager, error) {
	if opts.ServerHost == "" {
		opts.ServerHost = DefaultServerHostname
	}
	if opts.TCPPort == 0 {
		opts.TCPPort = DefaultServerTCPPort
	}
	if opts.UDPPort == 0 {
		opts.UDPPort = DefaultServerUDPPort
	}

	loginResultChan := make(chan loginResult, 1)
	pongChan := make(chan time.Time, 1)

	tcpClient := NewTCPClient(fmt.Sprintf("%s:%d", opts.ServerHost, opts.TCPPort), opts.MessageQueue, loginResultChan)
	udpClient, err := NewUDPClient(fmt.Sprintf("%s:%d", opts.ServerHost, opts.UDPPort), opts.MessageQueue, pongChan)
	if err != nil {
		return nil, fmt.Errorf("failed to create UDP client: %v", err)
	}

	return &NetworkManager{
		serverMessageQueue: opts.MessageQueue,
		tcpClient:          tcpClient,
		udpClient:          udpClient,
		loginResultChan:    loginResultChan,
		pongChan:           pongChan,
		errChan:            make(chan error, 2),
		clientWaitGroup:    &sync.WaitGroup{},
	}, nil
}

// Start connects, logs in as name and starts pinging the server.
func (m *NetworkManager) Start(ctx context.Context, name string) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelClientCtx = cancel

	if err := m.tcpClient.Dial(ctx); err != nil {
		cancel()
		return fmt.Errorf("failed to start TCP client: %v", err)
	}
	if err := m.udpClient.Dial(); err != nil {
		cancel()
		m.tcpClient.Close()
		return fmt.Errorf("failed to start UDP client: %v", err)
	}

	m.clientWaitGroup.Add(2)
	go func() {
		defer m.clientWaitGroup.Done()
		if err := m.tcpClient.HandleMessages(ctx); err != nil {
			m.errChan <- err
		}
	}()
	go func() {
		defer m.clientWaitGroup.Done()
		if err := m.udpClient.HandleMessages(ctx); err != nil {
			m.errChan <- err
		}
	}()

	if err := m.login(ctx, name); err != nil {
		m.Stop()
		return err
	}

	m.clientWaitGroup.Add(1)
	go func() {
		defer m.clientWaitGroup.Done()
		m.pingLoop(ctx)
	}()

	return nil
}

func (m *NetworkManager) login(ctx context.Context, name string) error {
	payload, err := json.Marshal(&messages.ClientLogin{Name: name})
	if err != nil {
		return fmt.Errorf("failed to marshal client login: %v", err)
	}

	if err := m.SendReliableMessage(&messages.Message{
		Type:    messages.MessageTypeClientLogin,
		Payload: payload,
	}); err != nil {
		return fmt.Errorf("failed to send client login: %v", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(LoginTimeout):
		return fmt.Errorf("timed out waiting for login")
	case err := <-m.errChan:
		return fmt.Errorf("connection failed during login: %v", err)
	case result := <-m.loginResultChan:
		if result.err != nil {
			return result.err
		}
		m.clientIDMutex.Lock()
		m.clientID = result.clientID
		m.clientIDMutex.Unlock()
		log.Info("Connected to server with client ID %d", result.clientID)
	}

	return nil
}

func (m *NetworkManager) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()

	m.pingUDP()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.pingUDP()
		case received := <-m.pongChan:
			m.recordPong(received)
		}
	}
}

// pingUDP registers the client's UDP address with the server
func (m *NetworkManager) pingUDP() {
	m.pingMutex.Lock()
	m.lastPingSent = time.Now()
	m.pingMutex.Unlock()

	if err := m.SendUnreliableMessage(&messages.Message{
		ClientID: m.ClientID(),
		Type:     messages.MessageTypeClientPing,
	}); err != nil {
		log.Error("Failed to ping UDP: %v", err)
	}
}

func (m *NetworkManager) recordPong(received time.Time) {
	m.pingMutex.Lock()
	defer m.pingMutex.Unlock()

	rtt := received.Sub(m.lastPingSent).Milliseconds()
	m.recentRTTs = append(m.recentRTTs, rtt)
	for len(m.recentRTTs) > MaxRecentRTTs {
		m.recentRTTs = m.recentRTTs[1:]
	}
	m.ping = averagePing(m.recentRTTs)
	log.Trace("Ping: %.1fms", m.ping)
}

// Stop stops the network manager and its clients and clears the server message queue.
func (m *NetworkManager) Stop() {
	if m.cancelClientCtx == nil {
		log.Warn("Network manager already stopped")
		return
	}
	m.cancelClientCtx()

	m.tcpClient.Close()
	m.udpClient.Close()

	log.Debug("Waiting for clients to stop")
	m.clientWaitGroup.Wait()
	m.serverMessageQueue.ClearQueue()

	m.clientIDMutex.Lock()
	m.clientID = 0
	m.clientIDMutex.Unlock()
	m.cancelClientCtx = nil

	log.Info("Network manager stopped")
}

// Ping returns the average round trip time to the server in milliseconds
func (m *NetworkManager) Ping() float64 {
	m.pingMutex.Lock()
	defer m.pingMutex.Unlock()
	return m.ping
}

func (m *NetworkManager) ServerMessageQueue() queue.Queue {
	return m.serverMessageQueue
}

// ErrChan reports connection failures after Start returned
func (m *NetworkManager) ErrChan() <-chan error {
	return m.errChan
}

func (m *NetworkManager) ClientID() uint32 {
	m.clientIDMutex.Lock()
	defer m.clientIDMutex.Unlock()
	return m.clientID
}

func (m *NetworkManager) SendReliableMessage(msg *messages.Message) error {
	return m.tcpClient.SendMessage(msg)
}

func (m *NetworkManager) SendUnreliableMessage(msg *messages.Message) error {
	return m.udpClient.SendMessage(msg)
}
