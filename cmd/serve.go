package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obbardc/fancy-free-walks/internal/kml"
	"github.com/obbardc/fancy-free-walks/internal/walk"
)

var (
	servePort  int
	serveInput string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ranked walk list over HTTP",
	Long:  "Loads the map export once at startup and serves the sorted walk list as JSON, for browsing walks without re-running exports.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		input := serveInput
		if input == "" {
			input = cfg.Input.Path
		}

		root, err := kml.Load(ctx, input)
		if err != nil {
			return eris.Wrap(err, "serve: load map")
		}
		walks, skips, err := walk.Collect(root, walk.Options{
			Home: walk.Coordinate{
				Latitude:  cfg.Home.Latitude,
				Longitude: cfg.Home.Longitude,
			},
			SkipMissingName: true,
		})
		if err != nil {
			return eris.Wrap(err, "serve: collect walks")
		}
		walk.SortByDistance(walks)
		zap.L().Info("loaded walks",
			zap.String("input", input),
			zap.Int("walks", len(walks)),
			zap.Int("skipped", len(skips)),
		)

		mux := newServeMux(walks)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}

		return nil
	},
}

func newServeMux(walks []walk.Walk) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
	})

	mux.HandleFunc("/walks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		filtered, err := filterWalks(walks, r.URL.Query().Get("max_distance"), r.URL.Query().Get("min_length"))
		if err != nil {
			http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(filtered) //nolint:errcheck
	})

	return mux
}

// filterWalks narrows the sorted list by optional max_distance / min_length
// query values. The input slice is never mutated.
func filterWalks(walks []walk.Walk, maxDistance, minLength string) ([]walk.Walk, error) {
	maxD := -1.0
	if maxDistance != "" {
		v, err := strconv.ParseFloat(maxDistance, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "serve: parse max_distance %q", maxDistance)
		}
		maxD = v
	}
	minL := -1.0
	if minLength != "" {
		v, err := strconv.ParseFloat(minLength, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "serve: parse min_length %q", minLength)
		}
		minL = v
	}

	filtered := make([]walk.Walk, 0, len(walks))
	for _, rec := range walks {
		if maxD >= 0 && rec.Distance > maxD {
			continue
		}
		if minL >= 0 && rec.Length < minL {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveInput, "input", "", "map export path or URL (default from config)")
	rootCmd.AddCommand(serveCmd)
}
