package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cbodonnell/torchlight/pkg/client/network"
	"github.com/cbodonnell/torchlight/pkg/client/voice"
	"github.com/cbodonnell/torchlight/pkg/client/world"
	"github.com/cbodonnell/torchlight/pkg/config"
	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/queue"
	"github.com/cbodonnell/torchlight/pkg/resource"
	"github.com/cbodonnell/torchlight/pkg/version"
)

// light is the output sink of one torch
type light struct {
	level float64
}

func (l *light) SetOutputLevel(level float64) {
	l.level = level
}

type action func(w *world.World)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	serverHost := flag.String("server-host", cfg.ServerHost, "Server host")
	tcpPort := flag.Int("tcp-port", cfg.TCPPort, "Server TCP port")
	udpPort := flag.Int("udp-port", cfg.UDPPort, "Server UDP port")
	name := flag.String("name", "", "Player name")
	tickRate := flag.Int("tick-rate", cfg.TickRate, "Local ticks per second")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)

	if *name == "" {
		panic("A player name must be given with -name")
	}
	if *tickRate <= 0 {
		panic(fmt.Sprintf("Tick rate must be positive, got %d", *tickRate))
	}

	log.Info("Starting torchlight client version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverMessageQueue := queue.NewInMemoryQueue(1000)
	networkManager, err := network.NewNetworkManager(network.NewNetworkManagerOptions{
		ServerHost:   *serverHost,
		TCPPort:      *tcpPort,
		UDPPort:      *udpPort,
		MessageQueue: serverMessageQueue,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create network manager: %v", err))
	}
	if err := networkManager.Start(ctx, *name); err != nil {
		panic(fmt.Sprintf("Failed to start network manager: %v", err))
	}
	defer networkManager.Stop()

	lights := make(map[uint32]*light)
	w := world.NewWorld(world.NewWorldOptions{
		Sender:             networkManager,
		ServerMessageQueue: serverMessageQueue,
		Hooks: resource.Hooks{
			OnActivate:   func() { fmt.Println("Your torch flares up") },
			OnDeactivate: func() { fmt.Println("Your torch goes out") },
		},
		SinkFactory: func(entityID uint32) resource.OutputSink {
			l := &light{}
			lights[entityID] = l
			return l
		},
	})

	actions := make(chan action, 100)
	toggleTorch := func() { actions <- func(w *world.World) { w.ToggleTorch() } }

	router := voice.NewCommandRouter()
	router.Handle("ACTION", toggleTorch)
	router.Handle("TORCH", toggleTorch)

	recognizer := voice.NewTextRecognizer(100)
	bridge := voice.NewBridge(voice.NewBridgeOptions{
		Recognizer: recognizer,
		Handler:    router,
	})
	go func() {
		if err := bridge.Start(ctx); err != nil {
			log.Error("Voice bridge stopped: %v", err)
		}
	}()
	defer recognizer.Close()

	go readCommands(ctx, actions, recognizer, lights)

	ticker := time.NewTicker(time.Second / time.Duration(*tickRate))
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-networkManager.ErrChan():
			log.Error("Lost connection to server: %v", err)
			return
		case a := <-actions:
			a(w)
		case t := <-ticker.C:
			w.ProcessServerMessages()
			w.Tick(t.Sub(last).Seconds())
			last = t
		}
	}
}

// readCommands turns stdin lines into actions. Lines that are not commands
// are heard by the recognizer.
func readCommands(ctx context.Context, actions chan<- action, recognizer *voice.TextRecognizer, lights map[uint32]*light) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "torch":
			actions <- func(w *world.World) { w.ToggleTorch() }
		case "move":
			if len(fields) != 3 {
				fmt.Println("usage: move X Y")
				continue
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errX != nil || errY != nil {
				fmt.Println("usage: move X Y")
				continue
			}
			actions <- func(w *world.World) {
				if err := w.SendPosition(time.Now().UnixNano(), x, y); err != nil {
					log.Error("Failed to send position: %v", err)
				}
			}
		case "status":
			actions <- func(w *world.World) { printStatus(w, lights) }
		default:
			if err := recognizer.Hear(line); err != nil {
				log.Warn("Failed to hear %q: %v", line, err)
			}
		}
	}
}

func printStatus(w *world.World, lights map[uint32]*light) {
	fmt.Printf("ammo %d/%d, %d pickups in play\n", w.Ammo().Count, w.Ammo().Max, w.Pickups())
	for _, id := range w.Entities() {
		torch, _ := w.Torch(id)
		marker := " "
		if id == w.LocalID() {
			marker = "*"
		}
		fmt.Printf("%s %d %-16s active=%-5t remaining=%5.1f light=%.2f\n",
			marker, id, w.Name(id), torch.Active(), torch.Remaining(), lights[id].level)
	}
}
