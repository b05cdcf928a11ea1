package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/torchlight/pkg/api"
	"github.com/cbodonnell/torchlight/pkg/config"
	"github.com/cbodonnell/torchlight/pkg/game"
	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/network"
	"github.com/cbodonnell/torchlight/pkg/queue"
	"github.com/cbodonnell/torchlight/pkg/repositories"
	"github.com/cbodonnell/torchlight/pkg/state"
	"github.com/cbodonnell/torchlight/pkg/version"
	"github.com/cbodonnell/torchlight/pkg/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	tcpPort := flag.Int("tcp-port", cfg.TCPPort, "TCP port to listen on")
	udpPort := flag.Int("udp-port", cfg.UDPPort, "UDP port to listen on")
	wsPort := flag.Int("ws-port", cfg.WSPort, "WebSocket port to listen on")
	apiPort := flag.Int("api-port", cfg.APIPort, "API port to listen on")
	databaseURL := flag.String("database-url", cfg.DatabaseURL, "Database URL (sqlite:// or postgres://)")
	migrationsDir := flag.String("migrations", "./migrations/sqlite", "SQLite migrations directory")
	tickRate := flag.Int("tick-rate", cfg.TickRate, "Game loop ticks per second")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	certFile := flag.String("cert", "", "TLS certificate file for the WebSocket and API servers")
	keyFile := flag.String("key", "", "TLS key file for the WebSocket and API servers")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	if *tickRate <= 0 {
		panic(fmt.Sprintf("Tick rate must be positive, got %d", *tickRate))
	}

	log.Info("Starting torchlight server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := newRepository(ctx, *databaseURL, *migrationsDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	var wsTLS *network.TLSConfig
	var apiTLS *api.TLSConfig
	if *certFile != "" && *keyFile != "" {
		wsTLS = &network.TLSConfig{CertFile: *certFile, KeyFile: *keyFile}
		apiTLS = &api.TLSConfig{CertFile: *certFile, KeyFile: *keyFile}
	}

	clientManager := network.NewClientManager()
	clientMessageQueue := queue.NewInMemoryQueue(10000)

	networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{
		ClientManager: clientManager,
		MessageQueue:  clientMessageQueue,
		TCPPort:       *tcpPort,
		UDPPort:       *udpPort,
		WSPort:        *wsPort,
		WSServerTLS:   wsTLS,
	})
	go networkManager.Start(ctx)

	connectionEventQueue := queue.NewInMemoryQueue(1000)

	connectionEventWorker := workers.NewConnectionEventWorker(workers.NewConnectionEventWorkerOptions{
		ClientEventChan:  clientManager.GetClientEventChan(),
		Repository:       repository,
		ServerEventQueue: connectionEventQueue,
	})
	go connectionEventWorker.Start(ctx)

	stateManager := state.NewInMemoryStateManager()

	savePlayerInventoryChannelSize := 100
	savePlayerInventoryChan := make(chan workers.SavePlayerInventoryRequest, savePlayerInventoryChannelSize)

	saveLoopInterval := 10 * time.Second
	saveGameStateWorker := workers.NewSaveGameStateWorker(workers.NewSaveGameStateWorkerOptions{
		Repository:              repository,
		SavePlayerInventoryChan: savePlayerInventoryChan,
		StateManager:            stateManager,
		Interval:                saveLoopInterval,
	})
	go saveGameStateWorker.Start(ctx)

	serverMessageChannelSize := 1000
	serverMessageChan := make(chan workers.ServerMessage, serverMessageChannelSize)

	serverMessageWorker := workers.NewServerMessageWorker(workers.NewServerMessageWorkerOptions{
		Sender:            networkManager,
		ServerMessageChan: serverMessageChan,
	})
	go serverMessageWorker.Start(ctx)

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:         *apiPort,
		TLS:          apiTLS,
		StateManager: stateManager,
		Repository:   repository,
	})
	go apiServer.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := apiServer.Stop(shutdownCtx); err != nil {
			log.Error("Failed to stop API server: %v", err)
		}
	}()

	gameLoopInterval := time.Second / time.Duration(*tickRate)
	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		ClientMessageQueue:      clientMessageQueue,
		ConnectionEventQueue:    connectionEventQueue,
		StateManager:            stateManager,
		ServerMessageChan:       serverMessageChan,
		SavePlayerInventoryChan: savePlayerInventoryChan,
		GameLoopInterval:        gameLoopInterval,
	})

	log.Info("Starting game manager at %d ticks per second", *tickRate)
	if err := gameManager.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start game manager: %v", err))
	}
	log.Info("Shutting down")
}

func newRepository(ctx context.Context, databaseURL string, migrationsDir string) (repositories.Repository, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		return repositories.NewSQLiteRepository(ctx, u.Host+u.Path, migrationsDir)
	case "postgres", "postgresql":
		return repositories.NewPostgresRepository(ctx, u.String())
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}
