package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goldtrust/wallet/internal/api"
	"github.com/goldtrust/wallet/internal/auth"
	"github.com/goldtrust/wallet/internal/config"
	"github.com/goldtrust/wallet/internal/ledger"
	"github.com/goldtrust/wallet/internal/logger"
	"github.com/goldtrust/wallet/internal/metrics"
	"github.com/goldtrust/wallet/internal/services"
	"github.com/goldtrust/wallet/internal/store"
	"github.com/goldtrust/wallet/internal/timers"
	"github.com/goldtrust/wallet/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage trouble is never fatal: degrade to an in-memory session so the
	// wallet still behaves deterministically.
	var st store.Store
	bolt, err := store.Open(cfg.DataFile)
	if err != nil {
		log.Warn("data file unavailable, running without persistence", "file", cfg.DataFile, "err", err)
		st = store.NewMemory()
	} else {
		defer bolt.Close()
		st = bolt
	}

	codeHash, err := auth.HashCode(cfg.WithdrawCode)
	if err != nil {
		log.Error("withdraw code hash", "err", err)
		os.Exit(1)
	}

	ldg := ledger.New(st)
	tm := timers.New(st)
	audit := services.NewAudit(st)
	gate := services.NewRestrictionGate(st, tm)

	profileSvc := services.NewProfileService(st, ldg, audit)
	withdrawalSvc := services.NewWithdrawalService(st, ldg, tm, gate, audit, codeHash, cfg.PaymentWindow, cfg.RestrictionWindow)
	miningSvc := services.NewMiningService(st, ldg, tm, audit, cfg.MineDuration, cfg.MineRewardMin, cfg.MineRewardMax)
	codesSvc := services.NewCodesService(ldg, gate, audit, cfg.CodePrice)

	metrics.Init()
	poller := worker.StartPoller(time.Second, ldg, gate, miningSvc)
	defer poller.Stop()

	tokens := auth.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	r := api.NewRouter(api.Deps{
		Cfg:        cfg,
		TM:         tokens,
		Ledger:     ldg,
		Profile:    profileSvc,
		Withdrawal: withdrawalSvc,
		Mining:     miningSvc,
		Codes:      codesSvc,
		Audit:      audit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
