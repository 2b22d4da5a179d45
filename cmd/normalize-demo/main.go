// normalize-demo runs the PVWatts normalization pipeline over a synthetic
// clear-sky dataset and prints the performance-ratio series.
//
// Usage:
//
//	normalize-demo
//	normalize-demo -days 30 -step-minutes 15
//	normalize-demo -degradation 1.0 -csv
//	normalize-demo -config site.yaml
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"pv_normalizer/internal/config"
	"pv_normalizer/internal/normalize"
	"pv_normalizer/internal/pvmodel"
	"pv_normalizer/internal/solar"
	"pv_normalizer/internal/timeseries"
)

func main() {
	configPath := flag.String("config", "", "site YAML config (defaults used when empty)")
	days := flag.Int("days", 30, "days of synthetic data")
	stepMinutes := flag.Int("step-minutes", 60, "irradiance sampling step in minutes")
	degradation := flag.Float64("degradation", 0.5, "simulated degradation rate [%/year]")
	csvOut := flag.Bool("csv", false, "output as CSV")
	flag.Parse()

	site := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading site config: %v\n", err)
			os.Exit(1)
		}
		site = loaded
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	step := time.Duration(*stepMinutes) * time.Minute

	profile := solar.Oriented(solar.ClearSkyProfile(12, 3), site.Array.AzimuthDeg, site.Array.TiltDeg, 180)
	poa := solar.IrradianceSeries(profile, start, *days, step, 1000)
	ambient := solar.TemperatureSeries(start, *days, step, 11, 10)
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
		fmt.Fprintf(os.Stderr, "Error modeling DC power: %v\n", err)
		os.Exit(1)
	}

	interval := site.EnergyInterval()
	energy := timeseries.ResampleSum(dcPower, interval)
	for i, t := range energy.Times {
		years := t.Sub(start).Hours() / (24 * 365)
		energy.Values[i] *= 1 - *degradation/100*years
	}
	energy = energy.WithFreq(interval)

	normalized, err := normalize.WithPVWatts(energy, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error normalizing: %v\n", err)
		os.Exit(1)
	}

	if *csvOut {
		fmt.Println("timestamp,energy_wh,ratio")
		for i, t := range normalized.Times {
			fmt.Printf("%s,%.1f,%.6f\n", t.Format(time.RFC3339), energy.Values[i], normalized.Values[i])
		}
		return
	}

	fmt.Printf("Site %s: %.1f kWp, %d days at %s step, %s intervals\n",
		site.Name, site.Module.PStcW/1000, *days, step, interval)
	fmt.Println()
	fmt.Printf("%-20s  %12s  %8s\n", "Interval", "Energy (Wh)", "Ratio")
	fmt.Printf("%-20s  %12s  %8s\n", "--------------------", "------------", "--------")

	var sum float64
	var count int
	for i, t := range normalized.Times {
		ratio := normalized.Values[i]
		if math.IsNaN(ratio) {
			fmt.Printf("%-20s  %12.1f  %8s\n", t.Format("2006-01-02 15:04"), energy.Values[i], "gap")
			continue
		}
		fmt.Printf("%-20s  %12.1f  %8.4f\n", t.Format("2006-01-02 15:04"), energy.Values[i], ratio)
		sum += ratio
		count++
	}
	if count > 0 {
		fmt.Println()
		fmt.Printf("Mean ratio over %d intervals: %.4f\n", count, sum/float64(count))
	}
}
