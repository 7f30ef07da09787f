package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"wind_simulator/internal/config"
	"wind_simulator/internal/ingest"
	"wind_simulator/internal/model"
	"wind_simulator/internal/modelchain"
)

type plantSummary struct {
	Name          string
	NominalPowerW float64
	Times         []time.Time
	PowerW        []float64
	WindSpeedHub  []float64
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yml", "path to YAML config file")
	outputPath := flag.String("output", "", "write per-timestamp power series to this CSV file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	log := config.NewLogger(cfg.Logging)

	f, err := os.Open(cfg.Weather.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("opening weather data")
	}
	parser := &ingest.WeatherParser{}
	weather, err := parser.Parse(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("parsing weather data")
	}

	turbines, err := cfg.BuildTurbines()
	if err != nil {
		log.Fatal().Err(err).Msg("building turbines")
	}
	farms, err := cfg.BuildFarms(turbines)
	if err != nil {
		log.Fatal().Err(err).Msg("building farms")
	}

	var summaries []plantSummary

	inFleet := make(map[string]bool)
	for _, fy := range cfg.Farms {
		for _, entry := range fy.Fleet {
			inFleet[entry.Turbine] = true
		}
	}

	for _, tc := range cfg.Turbines {
		if inFleet[tc.Name] {
			continue
		}
		t := turbines[tc.Name]
		chain, err := modelchain.New(t, cfg.ChainOptions())
		if err != nil {
			log.Fatal().Err(err).Str("turbine", tc.Name).Msg("building chain")
		}
		if _, err := chain.Run(weather); err != nil {
			log.Fatal().Err(err).Str("turbine", tc.Name).Msg("running chain")
		}
		summaries = append(summaries, plantSummary{
			Name:          tc.Name,
			NominalPowerW: t.NominalPower(),
			Times:         chain.Times,
			PowerW:        chain.PowerOutput,
			WindSpeedHub:  chain.WindSpeedHub,
		})
	}

	for _, farm := range farms {
		chain, err := modelchain.NewFarmChain(farm, cfg.FarmChainOptions())
		if err != nil {
			log.Fatal().Err(err).Str("farm", farm.Name()).Msg("building farm chain")
		}
		if _, err := chain.Run(weather); err != nil {
			log.Fatal().Err(err).Str("farm", farm.Name()).Msg("running farm chain")
		}
		summaries = append(summaries, plantSummary{
			Name:          farm.Name(),
			NominalPowerW: farm.NominalPower(),
			Times:         chain.Times,
			PowerW:        chain.PowerOutput,
			WindSpeedHub:  chain.WindSpeedHub,
		})
	}

	if len(summaries) == 0 {
		log.Fatal().Msg("no plants to analyze")
	}

	printSummary(weather, summaries)

	if *outputPath != "" {
		if err := writeCSV(*outputPath, summaries); err != nil {
			log.Fatal().Err(err).Msg("writing output CSV")
		}
		log.Info().Str("path", *outputPath).Msg("power series written")
	}
}

func printSummary(weather *model.Weather, summaries []plantSummary) {
	times := weather.Times()
	span := times[len(times)-1].Sub(times[0])
	days := span.Hours() / 24

	fmt.Println()
	fmt.Println("Power Output Analysis")
	fmt.Printf("  Data: %s to %s (%.0f days, %d timestamps)\n",
		times[0].Format("2006-01-02"), times[len(times)-1].Format("2006-01-02"), days, len(times))
	fmt.Println()

	fmt.Printf("   %-20s │ %10s │ %10s │ %8s │ %9s\n", "Plant", "Energy", "Max Power", "Cap Fct", "FL Hours")
	fmt.Printf("  ─────────────────────┼────────────┼────────────┼──────────┼──────────\n")

	for _, s := range summaries {
		energyKWh := integrateEnergyKWh(s.Times, s.PowerW)
		maxPower := maxOf(s.PowerW)
		capacityFactor := 0.0
		fullLoadHours := 0.0
		if s.NominalPowerW > 0 && span > 0 {
			capacityFactor = energyKWh * 1000 / (s.NominalPowerW * span.Hours())
			fullLoadHours = energyKWh * 1000 / s.NominalPowerW
		}
		fmt.Printf("   %-20s │ %10s │ %8.1f kW │ %7.1f%% │ %8.0f\n",
			s.Name, formatEnergy(energyKWh), maxPower/1000, capacityFactor*100, fullLoadHours)
	}
	fmt.Println()
}

// integrateEnergyKWh holds power constant from each timestamp to the
// next, matching the replay engine's accumulation.
func integrateEnergyKWh(times []time.Time, powerW []float64) float64 {
	var ws float64
	for i := 0; i+1 < len(times); i++ {
		ws += powerW[i] * times[i+1].Sub(times[i]).Seconds()
	}
	return ws / 3.6e6
}

func maxOf(values []float64) float64 {
	var m float64
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

func formatEnergy(kwh float64) string {
	if kwh >= 1000 {
		return fmt.Sprintf("%.1f MWh", kwh/1000)
	}
	return fmt.Sprintf("%.1f kWh", kwh)
}

func writeCSV(path string, summaries []plantSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time", "wind_speed_hub"}
	for _, s := range summaries {
		header = append(header, s.Name)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	times := summaries[0].Times
	for i, t := range times {
		row := make([]string, 0, len(header))
		row = append(row, t.Format(time.RFC3339))
		row = append(row, strconv.FormatFloat(summaries[0].WindSpeedHub[i], 'f', 3, 64))
		for _, s := range summaries {
			row = append(row, strconv.FormatFloat(s.PowerW[i], 'f', 1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
