package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/route"
	"github.com/sells-group/cafe-scout/internal/traffic"
	"github.com/sells-group/cafe-scout/internal/transit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/api/stores", func(w http.ResponseWriter, req *http.Request) {
			stores, err := e.Store.ListStores(req.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, stores)
		})

		r.Post("/api/stores", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Name    string  `json:"name"`
				Address string  `json:"address"`
				Lat     float64 `json:"lat"`
				Lng     float64 `json:"lng"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, eris.New("invalid request body"))
				return
			}

			coord := geo.Coordinate{Lat: body.Lat, Lng: body.Lng}
			if body.Lat == 0 && body.Lng == 0 && body.Address != "" {
				res, err := e.Geocoder.Geocode(req.Context(), body.Address)
				if err != nil {
					writeError(w, http.StatusBadGateway, err)
					return
				}
				if !res.Matched {
					writeError(w, http.StatusUnprocessableEntity, eris.Errorf("address %q did not geocode", body.Address))
					return
				}
				coord = geo.Coordinate{Lat: res.Latitude, Lng: res.Longitude}
			}
			if err := geo.Validate(coord); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			if body.Name == "" {
				body.Name = body.Address
			}

			st, err := e.Store.AddStore(req.Context(), body.Name, body.Address, coord)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusCreated, st)
		})

		r.Delete("/api/stores/{id}", func(w http.ResponseWriter, req *http.Request) {
			if err := e.Store.RemoveStore(req.Context(), chi.URLParam(req, "id")); err != nil {
				writeError(w, http.StatusNotFound, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/api/route", func(w http.ResponseWriter, req *http.Request) {
			origin, err := coordFromQuery(req, "lat", "lng")
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			mode := route.Mode(req.URL.Query().Get("mode"))
			if mode == "" {
				mode = route.ModeMixed
			}

			stores, err := e.Store.ListStores(req.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}

			ordered := route.Optimize(origin, stores)
			stats := route.NewCalculator(e.Estimator).Stats(origin, ordered, mode)
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"stores": ordered,
				"stats":  stats,
			})
		})

		r.Get("/api/transit/estimate", func(w http.ResponseWriter, req *http.Request) {
			from, err := coordFromQuery(req, "from_lat", "from_lng")
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			to, err := coordFromQuery(req, "to_lat", "to_lng")
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}

			est, err := e.Estimator.Estimate(from, to)
			if err != nil {
				if eris.Is(err, transit.ErrUnavailable) {
					writeJSON(w, http.StatusOK, map[string]interface{}{"available": false})
					return
				}
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"available": true,
				"estimate":  est,
			})
		})

		r.Get("/api/transit/stations", func(w http.ResponseWriter, req *http.Request) {
			at, err := coordFromQuery(req, "lat", "lng")
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			writeJSON(w, http.StatusOK, e.Catalog.Nearby(at, transit.AccessRadiusMiles, 5))
		})

		r.Get("/api/traffic/hours", func(w http.ResponseWriter, req *http.Request) {
			weekend := req.URL.Query().Get("weekend") == "true"
			writeJSON(w, http.StatusOK, traffic.HourlyDistribution(weekend))
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go shutdownOnDone(ctx, srv)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// shutdownOnDone gracefully stops srv once ctx is canceled, draining
// in-flight requests on a fresh deadline.
func shutdownOnDone(ctx context.Context, srv *http.Server) {
	<-ctx.Done()
	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server shutdown", zap.Error(err))
	}
}

func coordFromQuery(req *http.Request, latKey, lngKey string) (geo.Coordinate, error) {
	lat, err1 := strconv.ParseFloat(req.URL.Query().Get(latKey), 64)
	lng, err2 := strconv.ParseFloat(req.URL.Query().Get(lngKey), 64)
	if err1 != nil || err2 != nil {
		return geo.Coordinate{}, eris.Errorf("%s and %s are required numbers", latKey, lngKey)
	}
	coord := geo.Coordinate{Lat: lat, Lng: lng}
	return coord, geo.Validate(coord)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
