package network

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientManager_ConnectDisconnect(t *testing.T) {
	cm := NewClientManager()
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	clientID, err := cm.ConnectClient(server, nil, "alice")
	require.NoError(t, err)
	assert.NotZero(t, clientID)
	assert.True(t, cm.Exists(clientID))
	assert.Equal(t, clientID, cm.GetClientIDByTCPConn(server))
	assert.Zero(t, cm.GetClientIDByTCPConn(client))
	assert.Zero(t, cm.GetClientIDByWSConn(nil))

	event := <-cm.GetClientEventChan()
	assert.Equal(t, ClientEvent{ClientID: clientID, Type: ClientEventTypeConnect, Name: "alice"}, event)

	cm.DisconnectClient(clientID)
	assert.False(t, cm.Exists(clientID))

	event = <-cm.GetClientEventChan()
	assert.Equal(t, ClientEvent{ClientID: clientID, Type: ClientEventTypeDisconnect, Name: "alice"}, event)

	// a second disconnect emits nothing
	cm.DisconnectClient(clientID)
	assert.Len(t, cm.GetClientEventChan(), 0)
}

func TestClientManager_ConnectClientRequiresConnection(t *testing.T) {
	cm := NewClientManager()
	_, err := cm.ConnectClient(nil, nil, "alice")
	assert.Error(t, err)
	assert.Len(t, cm.GetClientEventChan(), 0)
}

func TestClientManager_UniqueIDs(t *testing.T) {
	cm := NewClientManager()
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		server, client := net.Pipe()
		defer server.Close()
		defer client.Close()
		clientID, err := cm.ConnectClient(server, nil, "player")
		require.NoError(t, err)
		assert.NotZero(t, clientID)
		assert.False(t, seen[clientID])
		seen[clientID] = true
	}
	assert.Len(t, cm.GetClients(), 100)
}

func TestClientManager_SetUDPAddress(t *testing.T) {
	cm := NewClientManager()
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	clientID, err := cm.ConnectClient(server, nil, "alice")
	require.NoError(t, err)

	addr := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4000}
	require.NoError(t, cm.SetUDPAddress(clientID, addr))
	// rebinding the same address is fine, another address is refused
	require.NoError(t, cm.SetUDPAddress(clientID, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4000}))
	err = cm.SetUDPAddress(clientID, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4001})
	assert.ErrorIs(t, err, ErrUDPAddressMismatch)
	assert.True(t, cm.UDPAddressMatches(clientID, addr))
	assert.False(t, cm.UDPAddressMatches(clientID, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4001}))
	// unknown clients are ignored
	require.NoError(t, cm.SetUDPAddress(clientID+1, addr))
	assert.False(t, cm.UDPAddressMatches(clientID+1, addr))

	got, err := cm.GetClient(clientID)
	require.NoError(t, err)
	assert.Equal(t, addr.String(), got.UDPAddress.String())
	assert.Equal(t, ClientConnectionTypeTCPUDP, got.ConnectionType)

	// copies do not alias the stored address
	got.UDPAddress.Port = 5000
	again, err := cm.GetClient(clientID)
	require.NoError(t, err)
	assert.Equal(t, 4000, again.UDPAddress.Port)

	_, err = cm.GetClient(clientID + 1)
	assert.Error(t, err)
}
