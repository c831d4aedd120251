package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"skip-checkout/app"
	"skip-checkout/app/terminal"
	"skip-checkout/catalog"
	"skip-checkout/config"
	"skip-checkout/models"
	"skip-checkout/session"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: .env file not found at %s, using system environment variables\n", envPath)
		}
	}

	var cfg *config.Config
	root := &cobra.Command{
		Use:           "skip-checkout",
		Short:         "Skip hire checkout: choose a skip size and move through the order journey",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			return app.SetupLogging(cfg.LogLevel, cfg.IsProduction())
		},
	}

	root.AddCommand(
		serveCmd(func() *config.Config { return cfg }),
		browseCmd(func() *config.Config { return cfg }),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serveCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the checkout HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			handler, err := app.Initialize(ctx, cfg())
			if err != nil {
				return err
			}
			defer app.Shutdown()

			// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
			addr := "0.0.0.0:" + cfg().Port
			server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

			go func() {
				<-ctx.Done()
				log.Info().Msg("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				server.Shutdown(shutdownCtx)
			}()

			log.Info().Str("addr", addr).Msg("Server starting")
			log.Info().Msgf("Mount a session: POST http://localhost:%s/checkout/sessions", cfg().Port)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("server failed to start: %w", err)
			}
			return nil
		},
	}
}

func browseCmd(cfg func() *config.Config) *cobra.Command {
	var (
		postcode string
		area     string
		step     int
		selectID int
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Load the skips for a location and print the selection step",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if postcode == "" {
				postcode, area = c.DefaultPostcode, c.DefaultArea
			}
			if step == 0 {
				step = c.InitialStep
			}

			loader, err := app.NewLoader(cmd.Context(), c)
			if err != nil {
				return err
			}
			defer app.Shutdown()

			s, err := session.Mount(cmd.Context(), "browse", loader, models.Location{Postcode: postcode, Area: area}, step)
			if err != nil {
				return err
			}
			if selectID != 0 && !s.Select(selectID) {
				fmt.Fprintf(os.Stderr, "skip %d is not available, nothing selected\n", selectID)
			}

			view, err := s.View()
			if err != nil {
				return err
			}
			fmt.Print(terminal.View(view))
			if view.Catalog.Status == catalog.StatusFailed {
				log.Warn().Str("postcode", postcode).Msg("catalog could not be loaded, showing empty catalog")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&postcode, "postcode", "", "Postcode to load skips for (default DEFAULT_POSTCODE)")
	cmd.Flags().StringVar(&area, "area", "", "Area to load skips for")
	cmd.Flags().IntVar(&step, "step", 0, "Current journey step 1-6 (default INITIAL_STEP)")
	cmd.Flags().IntVar(&selectID, "select", 0, "Skip id to select")
	return cmd
}
