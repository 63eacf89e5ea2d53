package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/patchbay"
	httpAdapter "github.com/aretw0/patchbay/pkg/adapters/http"
	"github.com/aretw0/patchbay/pkg/sessionfile"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve classification results over HTTP",
	Long: `Starts the engine in server mode, exposing the classified groups as a
JSON API with an SSE change stream and Prometheus metrics under /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		sessionPath, _ := cmd.Flags().GetString("session")
		if sessionPath == "" && len(args) > 0 {
			sessionPath = args[0]
		}
		port, _ := cmd.Flags().GetString("port")
		watchMode, _ := cmd.Flags().GetBool("watch")

		if sessionPath == "" {
			fmt.Println("Error: a session file is required (--session)")
			os.Exit(1)
		}

		session, err := sessionfile.Load(sessionPath)
		if err != nil {
			fmt.Printf("Error loading session: %v\n", err)
			os.Exit(1)
		}

		metrics := newGatherMetrics()
		eng, err := patchbay.New(session,
			patchbay.WithLogger(slog.Default()),
			patchbay.WithGatherHooks(metrics.Hooks()),
		)
		if err != nil {
			fmt.Printf("Error initializing patchbay: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handler := httpAdapter.NewHandler(eng)
		eng.Rebuild(ctx)

		if watchMode {
			events, err := sessionfile.Watch(ctx, sessionPath)
			if err != nil {
				fmt.Printf("Error starting watcher: %v\n", err)
				os.Exit(1)
			}
			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case _, ok := <-events:
						if !ok {
							return
						}
						// Delay slightly to ensure the file system is stable
						time.Sleep(100 * time.Millisecond)
						reloaded, err := sessionfile.Load(sessionPath)
						if err != nil {
							slog.Error("Session reload failed", "error", err)
							continue
						}
						if err := eng.SetSource(reloaded); err != nil {
							slog.Error("Source swap failed", "error", err)
							continue
						}
						eng.Rebuild(ctx)
						slog.Info("Change detected, session reloaded",
							"path", sessionPath, "generation", eng.Generation())
					}
				}
			}()
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/", handler)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Patchbay server on %s\n", srv.Addr)
			fmt.Printf("Serving session from: %s\n", sessionPath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case <-ctx.Done():
			fmt.Println("\nStart shutdown...")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Patchbay server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the session file on change")
}
