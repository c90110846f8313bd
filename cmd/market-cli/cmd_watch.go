package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/osokina-md/go-market-client/internal/service"
)

var (
	watchInterval time.Duration
	watchSize     int
	watchOrderBy  string
	watchKeyword  string
)

// watchCmd — длительный режим: периодический опрос каталога с отдачей
// метрик Prometheus, если они включены в конфигурации.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Периодически опрашивать каталог",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		var metricsSrv *http.Server
		if a.Cfg.Metrics.Enabled {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())

			metricsSrv = &http.Server{
				Addr:              a.Cfg.Metrics.Addr(),
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				a.Log.Info("metrics_listen_start", slog.String("addr", metricsSrv.Addr))
				if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.Log.Error("metrics_serve_failed", slog.String("err", err.Error()))
				}
			}()
		}

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		poll := func() {
			out, err := a.Service.Products(ctx, service.ListProductsParams{
				Page: 1, PageSize: watchSize, OrderBy: watchOrderBy, Keyword: watchKeyword,
			})
			if err != nil {
				a.Log.Warn("watch_poll_failed", slog.String("err", err.Error()))
				return
			}

			fmt.Printf("%s total=%d\n", time.Now().Format(time.TimeOnly), out.TotalCount)
		}

		poll()

		for {
			select {
			case <-ctx.Done():
				if metricsSrv != nil {
					shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
					defer stop()
					_ = metricsSrv.Shutdown(shutdownCtx)
				}
				return nil
			case <-ticker.C:
				poll()
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 30*time.Second, "poll interval")
	watchCmd.Flags().IntVar(&watchSize, "page-size", 10, "items per page")
	watchCmd.Flags().StringVar(&watchOrderBy, "order-by", "recent", "recent | favorite")
	watchCmd.Flags().StringVar(&watchKeyword, "keyword", "", "search keyword")

	rootCmd.AddCommand(watchCmd)
}
