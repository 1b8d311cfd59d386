package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/turfwar/server/internal/config"
	"github.com/turfwar/server/internal/data"
	"github.com/turfwar/server/internal/game"
	gonet "github.com/turfwar/server/internal/net"
	"github.com/turfwar/server/internal/scripting"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              turfwar  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        arena simulation · Go server       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("TURFWAR_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Data tables
	printSection("data")
	tables, err := loadTables(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	printStat("factions", tables.Factions.Count())
	printStat("zones", tables.Layout.Count())
	printStat("shop items", tables.Shop.Count())

	// 4. Scripting
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	printOK("lua formulas loaded")
	fmt.Println()

	mode, err := world.ParseMode(cfg.Simulation.Mode)
	if err != nil {
		return fmt.Errorf("simulation mode: %w", err)
	}

	// 5. Network
	netServer, err := gonet.NewServer(cfg.Network, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.Serve()
	gateway := gonet.NewGateway(netServer, cfg.Network.MaxObservers, cfg.Network.MaxMsgPerTick, mode, log)

	// 6. Game
	g := game.New(game.Options{
		Tables:        tables,
		Scripting:     engine,
		Log:           log,
		Publisher:     gateway,
		SnapshotEvery: cfg.Simulation.SnapshotEvery,
		TickRate:      cfg.Simulation.TickRate,
		Seed:          cfg.Simulation.Seed,
	})
	if cfg.Simulation.AutoStart {
		g.StartSession(mode)
	}

	// 7. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("listening on ws://%s%s", netServer.Addr().String(), cfg.Network.Path))
	printReady(fmt.Sprintf("game loop running (tick: %s, mode: %s)", cfg.Simulation.TickRate, mode))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			gateway.Poll()
			if m, ok := gateway.TakeStart(); ok {
				g.StartSession(m)
			}
			for _, a := range gateway.TakeActions() {
				g.Queue(a)
			}
			g.Tick(gateway.Frame())
			gateway.Flush()
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			gateway.Close()
			netServer.Shutdown()
			log.Info("server stopped")
			return nil
		}
	}
}

// loadTables reads YAML tables from dir, or the embedded set when empty.
func loadTables(dir string) (*data.Tables, error) {
	if dir == "" {
		return data.DefaultTables()
	}
	return data.LoadTables(dir)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
