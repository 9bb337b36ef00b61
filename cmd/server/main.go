package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/rl1809/grocery-stock/internal/adapter/handler"
	"github.com/rl1809/grocery-stock/internal/adapter/handler/rpc"
	"github.com/rl1809/grocery-stock/internal/app"
	"github.com/rl1809/grocery-stock/internal/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize storage, guard, ledger and service
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	log.Printf("serving inventory from %s", application.Store.Path())

	// Initial load surfaces a missing or unreadable sheet early; requests
	// keep retrying on every cycle.
	if table, err := application.Service.Table(ctx, ""); err != nil {
		log.Printf("inventory not available yet: %v", err)
	} else {
		log.Printf("loaded %d products", len(table.Rows))
	}

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	rpc.RegisterInventoryServiceServer(grpcServer, handler.NewGRPCHandler(application.Service))

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.Server.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: handler.NewHTTPHandler(application.Service).Routes(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")

	application.Close()
	log.Println("connections closed")
}
