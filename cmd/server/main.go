// server runs a normalization over a synthetic clear-sky dataset and streams
// the performance-ratio series to WebSocket clients for dashboarding.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"pv_normalizer/internal/config"
	"pv_normalizer/internal/normalize"
	"pv_normalizer/internal/pvmodel"
	"pv_normalizer/internal/replay"
	"pv_normalizer/internal/solar"
	"pv_normalizer/internal/store"
	"pv_normalizer/internal/timeseries"
	"pv_normalizer/internal/ws"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	configPath := flag.String("config", "", "site YAML config (defaults used when empty)")
	days := flag.Int("days", 365, "days of synthetic data")
	stepMinutes := flag.Int("step-minutes", 60, "irradiance sampling step in minutes")
	degradation := flag.Float64("degradation", 0.5, "simulated degradation rate [%/year]")
	flag.Parse()

	site := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load site config: %v", err)
		}
		site = loaded
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	step := time.Duration(*stepMinutes) * time.Minute

	energy, params, err := buildDataset(site, start, *days, step, *degradation)
	if err != nil {
		log.Fatalf("Failed to build dataset: %v", err)
	}

	normalized, err := normalize.WithPVWatts(energy, params)
	if err != nil {
		log.Fatalf("Normalization failed: %v", err)
	}

	dataStore := store.New()
	dataStore.Put("poa_irradiance", "W/m²", params.POAGlobal)
	if params.TCell != nil {
		dataStore.Put("cell_temperature", "°C", *params.TCell)
	}
	dataStore.Put("measured_energy", "Wh", energy)
	dataStore.Put("normalized_energy", "ratio", normalized)

	tr, ok := dataStore.GlobalTimeRange()
	if !ok {
		log.Fatal("No data generated")
	}
	log.Printf("Site %s: %d normalized intervals, %s to %s", site.Name, normalized.Len(),
		tr.Start.Format("2006-01-02"), tr.End.Format("2006-01-02"))

	hub := ws.NewHub()
	bridge := ws.NewBridge(hub)
	replayer := replay.New(normalized, bridge)
	handler := ws.NewHandler(hub, replayer, dataStore)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", handler)

	log.Printf("Listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

// buildDataset synthesizes clear-sky weather for the site, models DC power,
// and derives a "measured" energy series that degrades linearly over time so
// the streamed ratio trends downward the way a real degradation signal does.
func buildDataset(site config.Site, start time.Time, days int, step time.Duration, degradationPctYear float64) (timeseries.Series, pvmodel.PVWattsParams, error) {
	profile := solar.Oriented(solar.ClearSkyProfile(12, 3), site.Array.AzimuthDeg, site.Array.TiltDeg, 180)

	poa := solar.IrradianceSeries(profile, start, days, step, 1000)
	ambient := solar.TemperatureSeries(start, days, step, 11, 10)
	tCell := solar.CellTemperatureSeries(poa, ambient, site.Module.NoctC)

	params := pvmodel.NewPVWattsParams(poa, site.Module.PStcW)
	params.GStc = site.Module.GStcWm2
	params.TStc = site.Module.TStcC
	params.GammaPdc = site.Module.GammaPdc
	if params.GammaPdc != nil {
		params.TCell = &tCell
	}

	dcPower, err := pvmodel.DCPower(params)
	if err != nil {
		return timeseries.Series{}, pvmodel.PVWattsParams{}, err
	}

	interval := site.EnergyInterval()
	energy := timeseries.ResampleSum(dcPower, interval)
	for i, t := range energy.Times {
		years := t.Sub(start).Hours() / (24 * 365)
		energy.Values[i] *= 1 - degradationPctYear/100*years
	}
	return energy.WithFreq(interval), params, nil
}
