// Command netlistgen builds a synthetic netlist hierarchy, flattens it,
// and reports the resulting counts — a small demonstration and stress
// harness for pkg/netlist and pkg/flatview.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/vic/netlist/internal/config"
	"github.com/vic/netlist/internal/genrandom"
	"github.com/vic/netlist/internal/logging"
	"github.com/vic/netlist/pkg/flatview"
	"github.com/vic/netlist/pkg/netlist"
)

var configPath string

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "netlistgen",
		Short: "Build and flatten a synthetic netlist hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to a TOML config file (overrides built-in defaults)")
	flags.StringVar(&cfg.Gen.Mode, "mode", cfg.Gen.Mode, "hierarchy shape: chain or random")
	flags.IntVar(&cfg.Gen.ChainDepth, "chain-depth", cfg.Gen.ChainDepth, "chain mode: number of module levels")
	flags.IntVar(&cfg.Gen.ChainFanOut, "chain-fanout", cfg.Gen.ChainFanOut, "chain mode: instances per level")
	flags.Uint64Var(&cfg.Gen.Seed, "seed", cfg.Gen.Seed, "random mode: PRNG seed")
	flags.IntVar(&cfg.Gen.Steps, "steps", cfg.Gen.Steps, "random mode: number of mutation attempts")
	flags.IntVar(&cfg.Gen.MaxModules, "max-modules", cfg.Gen.MaxModules, "random mode: cap on hierarchical modules")
	flags.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "debug, info, warn, or error")
	flags.BoolVar(&cfg.Logging.JSON, "log-json", cfg.Logging.JSON, "emit JSON-encoded logs")

	origRunE := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = mergeFlagOverrides(loaded, cmd.Flags())
		}
		return origRunE(cmd, args)
	}

	return cmd
}

// mergeFlagOverrides re-applies any flag the user actually set on top of a
// freshly loaded config file, so "--config file.toml --steps 50" behaves
// as "file.toml, except steps=50".
func mergeFlagOverrides(loaded config.Config, flags *pflag.FlagSet) config.Config {
	cfg := loaded
	if flags.Changed("mode") {
		cfg.Gen.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("chain-depth") {
		cfg.Gen.ChainDepth, _ = flags.GetInt("chain-depth")
	}
	if flags.Changed("chain-fanout") {
		cfg.Gen.ChainFanOut, _ = flags.GetInt("chain-fanout")
	}
	if flags.Changed("seed") {
		cfg.Gen.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("steps") {
		cfg.Gen.Steps, _ = flags.GetInt("steps")
	}
	if flags.Changed("max-modules") {
		cfg.Gen.MaxModules, _ = flags.GetInt("max-modules")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.Logging.JSON, _ = flags.GetBool("log-json")
	}
	return cfg
}

func run(cfg config.Config) error {
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		return err
	}
	defer log.Sync()

	top := buildHierarchy(cfg.Gen, log)

	view, err := flatview.Build(top, flatview.WithLogger(log))
	if err != nil {
		return fmt.Errorf("netlistgen: %w", err)
	}

	fmt.Printf("top module:        %v\n", top.ID())
	fmt.Printf("flat modules:      %d\n", view.TotalModules())
	fmt.Printf("flat wires:        %d\n", view.TotalWires())
	fmt.Printf("flat ports:        %d\n", view.TotalPorts())
	return nil
}

func buildHierarchy(cfg config.GenConfig, log *zap.Logger) netlist.Module {
	if cfg.Mode == "random" {
		gen := genrandom.New(genrandom.Config{
			Seed:           cfg.Seed,
			Steps:          cfg.Steps,
			CreateProb:     cfg.CreateProb,
			DestroyProb:    cfg.DestroyProb,
			ConnectProb:    cfg.ConnectProb,
			DisconnectProb: cfg.DisconnectProb,
			MaxModules:     cfg.MaxModules,
		})
		applied := gen.Run()
		log.Sugar().Infow("random hierarchy built", "stepsApplied", applied, "stepsRequested", cfg.Steps)
		return gen.Top
	}
	log.Sugar().Infow("chain hierarchy built", "depth", cfg.ChainDepth, "fanOut", cfg.ChainFanOut)
	return genrandom.Chain(cfg.ChainDepth, cfg.ChainFanOut)
}
