// Package main is the entry point for the ZooDia spectator server. It
// replays a zoo day on a real-time cadence, persists the event log to
// SQLite and streams events to websocket spectators. It only handles
// dependency injection and server initialization; NO business logic
// belongs here.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"github.com/rmbenavides/ZooDia/server/internal/dataset"
	"github.com/rmbenavides/ZooDia/server/internal/engine"
	"github.com/rmbenavides/ZooDia/server/internal/events"
	"github.com/rmbenavides/ZooDia/server/internal/infra/storage"
	"github.com/rmbenavides/ZooDia/server/internal/network"
	"github.com/rmbenavides/ZooDia/server/internal/platform/logger"
	"github.com/rmbenavides/ZooDia/server/internal/platform/metrics"
	"github.com/rmbenavides/ZooDia/server/internal/platform/optimization"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// sqlitePersisterAdapter translates engine events to storage records.
type sqlitePersisterAdapter struct {
	repo  *storage.SQLiteEventRepository
	runID string
}

func (a *sqlitePersisterAdapter) Append(event events.ZooEvent) error {
	payloadBytes, _ := json.Marshal(event.Payload)
	var payloadMap map[string]interface{}
	json.Unmarshal(payloadBytes, &payloadMap)

	record := storage.ZooEventRecord{
		ID:        event.ID,
		RunID:     a.runID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		ActorID:   event.ActorID,
		TargetID:  event.TargetID,
		Payload:   payloadMap,
		Tick:      event.Tick,
	}

	started := time.Now()
	err := a.repo.Append(context.Background(), record)
	metrics.Get().RecordEventWrite(time.Since(started), err)
	return err
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "zoo.db", "SQLite database path")
	datasetPath := flag.String("dataset", "", "YAML dataset file (empty = embedded default)")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	tickRate := flag.Duration("tickrate", engine.DefaultTickRate, "real time per simulated tick")
	flag.Parse()

	appLogger := logger.NewLogger()
	appLogger.Info("initializing ZooDia spectator server")

	opt := optimization.DefaultConfig()

	db, err := storage.InitSQLite(*dbPath, opt)
	if err != nil {
		appLogger.Error("failed to initialize SQLite: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	runID := uuid.NewString()
	eventRepo := storage.NewSQLiteEventRepository(db)
	reportRepo := storage.NewSQLiteReportRepository(db)
	eventLog := events.NewEventLog(&sqlitePersisterAdapter{repo: eventRepo, runID: runID})

	ds := dataset.Default()
	if *datasetPath != "" {
		if ds, err = dataset.Load(*datasetPath); err != nil {
			appLogger.Error("failed to load dataset: %v", err)
			os.Exit(1)
		}
	}
	animals, workers, visitors, err := ds.Entities()
	if err != nil {
		appLogger.Error("invalid dataset: %v", err)
		os.Exit(1)
	}

	cfg := engine.Config{Seed: *seed}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sim, err := engine.NewSimulation(cfg, animals, workers, visitors, eventLog, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize simulation: %v", err)
		os.Exit(1)
	}
	defer sim.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := network.NewHub(appLogger, opt)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx, eventLog)

	// Replay the day and persist the final report once it completes.
	go func() {
		engine.NewTicker(sim, appLogger, *tickRate).Start(ctx)
		if !sim.Finished() {
			return
		}
		report := sim.Report()
		err := reportRepo.Upsert(context.Background(), storage.DayReportRecord{
			RunID:         runID,
			DayLength:     report.DayLength,
			ToursAdmitted: report.ToursAdmitted,
			ToursSkipped:  report.ToursSkipped,
			TotalEarnings: report.TotalEarnings,
			FinishedAt:    time.Now(),
		})
		if err != nil {
			appLogger.Error("failed to persist day report: %v", err)
			return
		}

		// Audit: the report rebuilt from stored events must match the
		// engine's own totals, or events were lost on the write path.
		rebuilt, err := storage.NewReconstructor(eventRepo).RebuildReport(context.Background(), runID)
		if err != nil {
			appLogger.Error("report audit failed: %v", err)
			return
		}
		if rebuilt.TotalEarnings != report.TotalEarnings || rebuilt.ToursAdmitted != report.ToursAdmitted {
			appLogger.Warn("report audit mismatch: live earnings=%d tours=%d, rebuilt earnings=%d tours=%d",
				report.TotalEarnings, report.ToursAdmitted, rebuilt.TotalEarnings, rebuilt.ToursAdmitted)
		} else {
			appLogger.Info("report audit passed: earnings=%d tours=%d skipped=%d",
				rebuilt.TotalEarnings, rebuilt.ToursAdmitted, rebuilt.ToursSkipped)
		}
	}()

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			appLogger.Error("websocket upgrade failed: %v", err)
			return
		}
		client := network.NewClient(hub, conn)
		client.Register()
		go client.WritePump()
		go client.ReadPump()
	})
	mux.HandleFunc("/replay", network.NewReplayHandler(eventLog, appLogger).HandleReplay)
	mux.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sim.Report())
	})
	mux.HandleFunc("/metrics", metrics.Handler())
	mux.HandleFunc("/metrics/prometheus", metrics.PrometheusHandler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	appLogger.Info("listening on %s (run %s, seed %d)", *addr, runID, cfg.Seed)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		appLogger.Error("server error: %v", err)
		os.Exit(1)
	}
	appLogger.Info("server stopped")
}
