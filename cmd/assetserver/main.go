package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/shravanasati/assetserver/internal/config"
	"github.com/shravanasati/assetserver/middleware"
	"github.com/shravanasati/assetserver/router"
	"github.com/shravanasati/assetserver/server"
)

func newCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "assetserver",
		Usage: "Serve a directory of game assets with permissive CORS headers",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   config.DefaultPort,
				Usage:   "TCP port to listen on",
				Sources: cli.EnvVars("ASSETSERVER_PORT"),
			},
			&cli.StringFlag{
				Name:    "bind",
				Aliases: []string{"b"},
				Value:   config.DefaultBindAddress,
				Usage:   "IP address to bind",
				Sources: cli.EnvVars("ASSETSERVER_BIND"),
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Value:   config.DefaultRoot,
				Usage:   "directory to serve",
				Sources: cli.EnvVars("ASSETSERVER_ROOT"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "disable the access log",
				Sources: cli.EnvVars("ASSETSERVER_QUIET"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "disable colors in the access log",
				Sources: cli.EnvVars("ASSETSERVER_NO_COLOR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Config{
				Port:        int(cmd.Int("port")),
				BindAddress: cmd.String("bind"),
				Root:        cmd.String("root"),
				Quiet:       cmd.Bool("quiet"),
				NoColor:     cmd.Bool("no-color"),
			}
			return run(ctx, cfg, stdout)
		},
	}
}

// newHandler builds the chain logging -> recovery -> cors -> mux over root.
func newHandler(cfg config.Config, root fs.FS) http.Handler {
	app := router.NewRouter(root, nil)
	switch {
	case cfg.Quiet:
	case cfg.NoColor:
		app.Use(middleware.LoggingMiddleware)
	default:
		app.Use(middleware.LoggingMiddlewareColored)
	}
	app.Use(middleware.RecoveryMiddleware)

	return app.Handler()
}

func run(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	root, err := middleware.NewDirFS(cfg.Root)
	if err != nil {
		return fmt.Errorf("unable to open root: %w", err)
	}
	defer root.Close()

	srv, err := server.Serve(server.ServerOpts{Address: cfg.Address()}, newHandler(cfg, root))
	if err != nil {
		return err
	}
	defer srv.Close()

	fmt.Fprintf(stdout, "Serving Flappy Chicken game at %s\n", cfg.URL())
	fmt.Fprintln(stdout, "Press Ctrl+C to stop the server")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		fmt.Fprintln(stdout, "\nServer stopped.")
		return nil
	case <-srv.Done():
		return srv.Wait()
	}
}

// loadDotEnv reads .env from the working directory into the environment.
// Variables that are already set win. A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func main() {
	if err := loadDotEnv(); err != nil {
		log.Println("unable to load .env:", err)
	}

	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
