// Package main runs the shopping cart, either as the interactive menu or,
// with the "serve" argument, as an HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/fairyhunter13/shopping-cart/internal/cli"
	"github.com/fairyhunter13/shopping-cart/internal/config"
	httpapi "github.com/fairyhunter13/shopping-cart/internal/http"
	"github.com/fairyhunter13/shopping-cart/internal/obs"
	"github.com/fairyhunter13/shopping-cart/internal/shop"
	"github.com/fairyhunter13/shopping-cart/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	mode := "menu"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	switch mode {
	case "menu":
		// stdout belongs to the menu
		obs.InitLoggerTo(os.Stderr, cfg.LogLevel)
		os.Exit(runMenu(cfg))
	case "serve":
		obs.InitLoggerTo(os.Stdout, cfg.LogLevel)
		os.Exit(runServer(cfg))
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [menu|serve]\n", os.Args[0])
		os.Exit(2)
	}
}

func openSession(ctx context.Context, cfg config.Config) (store.Store, *shop.Session, error) {
	st, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	sess, err := shop.Open(ctx, st, shop.OptionsFromConfig(cfg))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return st, sess, nil
}

func runMenu(cfg config.Config) int {
	ctx := context.Background()
	st, sess, err := openSession(ctx, cfg)
	if err != nil {
		obs.Logger.Error("session_open_failed", "error", err)
		return 1
	}
	defer st.Close()
	if err := cli.NewMenu(sess, os.Stdin, os.Stdout).Run(ctx); err != nil {
		obs.Logger.Error("menu_exit_failed", "error", err)
		return 1
	}
	return 0
}

func runServer(cfg config.Config) int {
	obs.Logger.Info("service_starting", "store_backend", cfg.StoreBackend)
	st, sess, err := openSession(context.Background(), cfg)
	if err != nil {
		obs.Logger.Error("session_open_failed", "error", err)
		return 1
	}

	app := httpapi.NewApp(cfg, sess)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// one operation so the server drains before the catalog is flushed
			"shop": func(ctx context.Context) error {
				app.StartShutdown()
				if err := srv.Shutdown(ctx); err != nil {
					obs.Logger.Error("http_shutdown_error", "error", err)
				}
				if err := sess.Close(ctx); err != nil {
					return err
				}
				return st.Close()
			},
		},
	)
	code := <-wait
	obs.Logger.Info("service_stopped", "exit_code", code)
	return code
}
