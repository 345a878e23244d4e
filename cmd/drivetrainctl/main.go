package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/gearforge/drivetrain/internal/cache"
	"github.com/gearforge/drivetrain/internal/config"
	"github.com/gearforge/drivetrain/internal/dispatcher"
	"github.com/gearforge/drivetrain/internal/editor"
	"github.com/gearforge/drivetrain/internal/influx"
	"github.com/gearforge/drivetrain/internal/logging"
	intOtel "github.com/gearforge/drivetrain/internal/otel"
	"github.com/gearforge/drivetrain/internal/parser"
	"github.com/gearforge/drivetrain/internal/storage"
)

// ToolVersion can be set at build time via ldflags.
var (
	ToolVersion string = "1.0.0"
	BuildDate   string = "unknown"

	ToolName string = "drivetrainctl"
)

// global state wired up in setup()
var (
	SlogManager *logging.SlogManager
	Logger      *slog.Logger

	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()
	LogFilePath      string
	LogFile          *os.File

	// asset currently being edited, stamped onto every log record
	activeAsset string

	assetCache      *cache.AssetCache = cache.NewAssetCache()
	storageBackend  storage.Backend
	wireParser      *parser.Parser
	editorService   *editor.Service
	eventDispatcher *dispatcher.Dispatcher
	influxManager   *influx.Manager
)

// setup wires config, logging, OTel, storage and the editor service.
func setup() error {
	var err error

	SlogManager = logging.NewSlogManager()
	SlogManager.SetAssetProvider(func() string { return activeAsset })
	SlogManager.Setup(nil, "info", nil)
	Logger = SlogManager.Logger()

	if err = config.Load("."); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	}

	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		_ = os.Mkdir(logsDir, 0755)
	}

	LogFilePath = logging.LogFilePath(logsDir, ToolName, SessionStartTime)
	LogFile, err = os.OpenFile(LogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
	}

	// Initialize OTel provider if enabled (after log file is created)
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    LogFile,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		}
	}

	// Re-setup logging with file output and optional OTel
	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(LogFile, viper.GetString("logLevel"), otelLogProvider)
	Logger = SlogManager.Logger()
	Logger.Info("Session started", "version", ToolVersion, "build", BuildDate, "log", LogFilePath)

	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()

	storageCfg := config.GetStorageConfig()
	storageBackend, err = storage.NewBackend(storageCfg, zl)
	if err != nil {
		return fmt.Errorf("create storage backend: %w", err)
	}
	if err = storageBackend.Init(); err != nil {
		return fmt.Errorf("init storage backend: %w", err)
	}
	Logger.Info("Storage backend ready", "type", storageCfg.Type)

	if viper.GetBool("influx.enabled") {
		influxManager = influx.NewManager(zl, LogFilePath+".influx.gz")
		if err := influxManager.Connect(); err != nil {
			Logger.Warn("InfluxDB unavailable, export metrics disabled", "error", err)
			influxManager = nil
		}
	}

	wireParser = parser.NewParser(Logger,
		viper.GetString("backend.version"),
		viper.GetString("exporter.version"))

	editorService = editor.NewService(editor.Dependencies{
		Cache:   assetCache,
		Backend: storageBackend,
		Parser:  wireParser,
		Logger:  Logger,
	})

	eventDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(Logger))
	if err != nil {
		return fmt.Errorf("create dispatcher: %w", err)
	}
	editorService.RegisterHandlers(eventDispatcher)

	return nil
}

func teardown() {
	if storageBackend != nil {
		if err := storageBackend.Close(); err != nil {
			Logger.Error("Failed to close storage backend", "error", err)
		}
	}
	if influxManager != nil {
		if err := influxManager.Close(); err != nil {
			Logger.Error("Failed to close InfluxDB manager", "error", err)
		}
	}
	if OTelProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = SlogManager.Flush(ctx)
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Error("Failed to shut down OTel provider", "error", err)
		}
	}
	if LogFile != nil {
		_ = LogFile.Close()
	}
}

func main() {
	if err := setup(); err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}
	defer teardown()

	if err := runCommand(os.Args[1:]); err != nil {
		Logger.Error("Command failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		teardown()
		os.Exit(1)
	}
}
