package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iksnae/stickyboard/internal"
	"github.com/iksnae/stickyboard/internal/server"
)

var (
	serveAddr      string
	serveKeepAlive time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board over HTTP",
	Long: `Serve the board API with a server-sent event stream of board changes
at /events. Every successful mutation is saved to the board database.
AI routes are disabled when no model backend is configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}

		env, err := openBoard()
		if err != nil {
			return err
		}
		defer env.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		assistant, err := newAssistant(ctx, env.board)
		if err != nil {
			internal.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("AI actions disabled: %v", err))
		}

		srv := server.New(env.board, assistant, env.storage)
		internal.PrintInfo(cmd.OutOrStdout(), fmt.Sprintf("Serving board on http://%s", addr))

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(gctx, addr)
		})
		g.Go(func() error {
			return keepAlive(gctx, srv.Broadcaster(), serveKeepAlive)
		})

		runErr := g.Wait()
		if err := env.save(); err != nil {
			internal.LogError("failed to save board on shutdown: %v", err)
			if runErr == nil {
				runErr = err
			}
		}
		return runErr
	},
}

// keepAlive pings event stream clients until ctx ends
func keepAlive(ctx context.Context, b *server.Broadcaster, every time.Duration) error {
	if every <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if b.ClientCount() > 0 {
				b.Broadcast("ping", map[string]int64{"time": t.UnixMilli()})
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default server.addr from config)")
	serveCmd.Flags().DurationVar(&serveKeepAlive, "keepalive", 15*time.Second, "Interval between event stream pings (0 disables)")
}
