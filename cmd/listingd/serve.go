package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/theplant/facet/catalog"
	"github.com/theplant/facet/gormlisting"
	"github.com/theplant/facet/listinghttp"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve filtered listings over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, newHandler(db))
	},
}

func newHandler(db *gorm.DB) *listinghttp.Handler {
	opts := []gormlisting.Option{
		gormlisting.WithLimits(cfg.Limits),
		gormlisting.WithComplexityLimits(cfg.Complexity()),
		gormlisting.WithLogger(log),
	}
	h := listinghttp.NewHandler(listinghttp.WithLogger(log), listinghttp.WithLimits(cfg.Limits))
	listinghttp.Register(h, catalog.VehicleSchema, gormlisting.NewFetcher[*catalog.Vehicle](db, catalog.VehicleSchema, opts...))
	listinghttp.Register(h, catalog.PartSchema, gormlisting.NewFetcher[*catalog.Part](db, catalog.PartSchema, opts...))
	listinghttp.Register(h, catalog.ServiceSchema, gormlisting.NewFetcher[*catalog.Service](db, catalog.ServiceSchema, opts...))
	listinghttp.Register(h, catalog.RentalSchema, gormlisting.NewFetcher[*catalog.Rental](db, catalog.RentalSchema, opts...))
	return h
}

func serve(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listing service started", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down listing service")
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
	})
	return g.Wait()
}
