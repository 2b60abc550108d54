package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mastercactapus/gcheck/history"
	"github.com/mastercactapus/gcheck/server"
)

var (
	serveAddr  string
	serveDir   string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis server",
	Long: `Serves the analysis API over HTTP:

  POST /api/check   - analyze an uploaded program or ?path= in the data dir
  GET  /api/runs    - recent analysis runs (requires history)
  GET  /ws/lint     - line-by-line lint websocket
  GET  /events/     - SSE stream of analysis summaries
  GET  /files/      - browse the data directory
  GET  /metrics     - Prometheus metrics

With --watch, programs in the data directory are re-analyzed whenever
they change on disk.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveDir, "dir", "", "Data directory (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "Re-analyze programs when files change")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	dir := cfg.Server.DataDir
	if serveDir != "" {
		dir = serveDir
	}

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	srv := server.New(server.Config{
		Analyzer: newAnalyzer(cfg, log),
		DataDir:  dir,
		Store:    store,
		Log:      log,
	})
	defer srv.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if serveWatch {
		go func() {
			if err := srv.Watch(ctx); err != nil {
				log.Warn("watch data directory", zap.Error(err))
			}
		}()
	}

	hs := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "*")
			log.Debug("request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("remote", req.RemoteAddr),
			)
			srv.ServeHTTP(w, req)
		}),
	}

	go func() {
		<-ctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		hs.Shutdown(sctx)
	}()

	log.Info("listening", zap.String("addr", addr), zap.String("dir", dir))
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
