package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"wind_simulator/internal/config"
	"wind_simulator/internal/ingest"
	"wind_simulator/internal/model"
	"wind_simulator/internal/modelchain"
	"wind_simulator/internal/sim"
	"wind_simulator/internal/turbine"
	"wind_simulator/internal/ws"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	log := config.NewLogger(cfg.Logging)

	weather, err := loadWeather(cfg.Weather.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Weather.Path).Msg("loading weather data")
	}
	log.Info().Int("timestamps", weather.Len()).Str("path", cfg.Weather.Path).Msg("weather data loaded")

	turbines, err := cfg.BuildTurbines()
	if err != nil {
		log.Fatal().Err(err).Msg("building turbines")
	}
	farms, err := cfg.BuildFarms(turbines)
	if err != nil {
		log.Fatal().Err(err).Msg("building farms")
	}

	frames, plants, err := computeFrames(cfg, weather, turbines, farms, log)
	if err != nil {
		log.Fatal().Err(err).Msg("computing power output")
	}
	if len(frames) == 0 {
		log.Fatal().Msg("no frames computed, check weather data and plant configuration")
	}

	hub := ws.NewHub(log)
	bridge := ws.NewBridge(hub, log)
	engine := sim.New(frames, bridge)
	engine.SetSpeed(cfg.Server.Speed)
	handler := ws.NewHandler(hub, engine, plants, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", handler)

	log.Info().Str("addr", cfg.Server.Addr).Int("plants", len(plants)).Msg("starting server")
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func loadWeather(path string) (*model.Weather, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parser := &ingest.WeatherParser{}
	return parser.Parse(f)
}

// computeFrames runs a model chain per plant and merges the resulting
// series into replay frames. Farms are simulated through the farm
// chain; turbines not assigned to any fleet run standalone.
func computeFrames(cfg *config.Config, weather *model.Weather, turbines map[string]*turbine.Turbine, farms []*turbine.Farm, log zerolog.Logger) ([]sim.Frame, []ws.PlantInfo, error) {
	type plantResult struct {
		name   string
		output []float64
	}

	var (
		results      []plantResult
		plants       []ws.PlantInfo
		windSpeedHub []float64
	)

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
			return nil, nil, fmt.Errorf("turbine %q: %w", tc.Name, err)
		}
		if _, err := chain.Run(weather); err != nil {
			return nil, nil, fmt.Errorf("turbine %q: %w", tc.Name, err)
		}
		log.Info().Str("turbine", tc.Name).Float64("nominal_power_w", t.NominalPower()).Msg("chain computed")

		results = append(results, plantResult{name: tc.Name, output: chain.PowerOutput})
		plants = append(plants, ws.PlantInfo{
			Name:          tc.Name,
			NominalPowerW: t.NominalPower(),
			HubHeightM:    t.HubHeight(),
		})
		if windSpeedHub == nil {
			windSpeedHub = chain.WindSpeedHub
		}
	}

	for _, f := range farms {
		chain, err := modelchain.NewFarmChain(f, cfg.FarmChainOptions())
		if err != nil {
			return nil, nil, fmt.Errorf("farm %q: %w", f.Name(), err)
		}
		if _, err := chain.Run(weather); err != nil {
			return nil, nil, fmt.Errorf("farm %q: %w", f.Name(), err)
		}
		log.Info().Str("farm", f.Name()).Float64("nominal_power_w", f.NominalPower()).Msg("farm chain computed")

		results = append(results, plantResult{name: f.Name(), output: chain.PowerOutput})
		plants = append(plants, ws.PlantInfo{
			Name:          f.Name(),
			NominalPowerW: f.NominalPower(),
			HubHeightM:    f.MeanHubHeight(),
		})
		if windSpeedHub == nil {
			windSpeedHub = chain.WindSpeedHub
		}
	}

	times := weather.Times()
	frames := make([]sim.Frame, len(times))
	for i, t := range times {
		powerW := make(map[string]float64, len(results))
		for _, r := range results {
			powerW[r.name] = r.output[i]
		}
		var v float64
		if windSpeedHub != nil {
			v = windSpeedHub[i]
		}
		frames[i] = sim.Frame{Time: t, WindSpeedHub: v, PowerW: powerW}
	}
	return frames, plants, nil
}
