package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	bookhandler "biblio/internal/book/handler"
	bookservice "biblio/internal/book/service"
	bookstore "biblio/internal/book/store"
	lendinghandler "biblio/internal/lending/handler"
	lendingservice "biblio/internal/lending/service"
	lendingstore "biblio/internal/lending/store"
	memberhandler "biblio/internal/member/handler"
	memberservice "biblio/internal/member/service"
	memberstore "biblio/internal/member/store"
	"biblio/internal/platform/config"
	"biblio/internal/platform/httpserver"
	"biblio/internal/platform/logger"
	"biblio/internal/platform/metrics"
	httptransport "biblio/internal/transport/http"
)

// main wires dependencies explicitly: stores, then services, then handlers,
// then the router. One shared instance per registry for the process
// lifetime; storage is in-memory and resets on restart.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	books := bookstore.NewInMemory()
	members := memberstore.NewInMemory()
	lendings := lendingstore.NewInMemory()

	bookSvc := bookservice.New(books,
		bookservice.WithLogger(log),
		bookservice.WithMetrics(m),
	)
	memberSvc := memberservice.New(members,
		memberservice.WithLogger(log),
		memberservice.WithMetrics(m),
	)
	lendingSvc := lendingservice.New(lendings, bookSvc, memberSvc,
		lendingservice.WithLogger(log),
		lendingservice.WithMetrics(m),
	)

	bookstore.SeedSampleBooks(context.Background(), books)

	router := httptransport.NewRouter(cfg, log, m, httptransport.Handlers{
		Books:    bookhandler.New(bookSvc, log),
		Members:  memberhandler.New(memberSvc, log),
		Lendings: lendinghandler.New(lendingSvc, log),
	})
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting biblio", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
