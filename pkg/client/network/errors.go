package network

// ErrConnectionClosedByServer is returned when the server closed the TCP connection
type ErrConnectionClosedByServer struct{}

func (e *ErrConnectionClosedByServer) Error() string {
	return "connection closed by server"
}

// ErrConnectionClosedByClient is returned when the TCP connection was closed locally
type ErrConnectionClosedByClient struct{}

func (e *ErrConnectionClosedByClient) Error() string {
	return "connection closed by client"
}
