package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/benz9527/ordtree/bench"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath string
	profiles   profileFiles
	cfg        bench.Config
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{cfg: *bench.DefaultConfig()}
	cmd := &cobra.Command{
		Use:   "treebench",
		Short: "Benchmark and cross check the normal BST, AVL and red-black trees",
		Long: `treebench inserts the keys into every selected tree variant, removes a part
of them in a different order and verifies the ordering, the balance, the size and
the in-order sequences of all the variants. Flags override the yaml config file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, flags.profiles)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&flags.configPath, "config", "c", "", "yaml config file")
	fs.StringSliceVar(&flags.cfg.Variants, "variants", flags.cfg.Variants, "tree variants: bst, avl, rb")
	fs.IntVarP(&flags.cfg.Count, "count", "n", flags.cfg.Count, "number of distinct keys to insert")
	fs.Float64Var(&flags.cfg.RemoveRatio, "remove-ratio", flags.cfg.RemoveRatio, "ratio of the inserted keys to remove")
	fs.Uint64Var(&flags.cfg.Seed, "seed", flags.cfg.Seed, "seed of the random keys and the removal order")
	fs.StringVar((*string)(&flags.cfg.KeySource), "key-source", string(flags.cfg.KeySource), "random or sequential")
	fs.BoolVar(&flags.cfg.CheckEveryOp, "check-every-op", flags.cfg.CheckEveryOp, "validate the tree after every operation")
	fs.BoolVar(&flags.cfg.Parallel, "parallel", flags.cfg.Parallel, "run the variants in parallel")
	fs.StringVar(&flags.cfg.LogLevel, "log-level", flags.cfg.LogLevel, "DEBUG, INFO, WARN or ERROR")
	fs.StringVar((*string)(&flags.cfg.Metrics), "metrics", string(flags.cfg.Metrics), "none, console or prometheus")
	fs.StringVar(&flags.cfg.MetricsAddr, "metrics-addr", flags.cfg.MetricsAddr, "listen address of the prometheus exporter")
	fs.StringVarP(&flags.cfg.Output, "output", "o", flags.cfg.Output, "write the yaml report to the file")
	fs.StringVar(&flags.profiles.cpu, "cpuprofile", "", "write the CPU profile to the file")
	fs.StringVar(&flags.profiles.mem, "memprofile", "", "write the heap profile to the file on exit")
	return cmd
}

// resolve loads the config file, then applies the flags set explicitly.
func (f *cliFlags) resolve(cmd *cobra.Command) (*bench.Config, error) {
	cfg, err := bench.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	fs := cmd.Flags()
	overrides := map[string]func(){
		"variants":       func() { cfg.Variants = f.cfg.Variants },
		"count":          func() { cfg.Count = f.cfg.Count },
		"remove-ratio":   func() { cfg.RemoveRatio = f.cfg.RemoveRatio },
		"seed":           func() { cfg.Seed = f.cfg.Seed },
		"key-source":     func() { cfg.KeySource = f.cfg.KeySource },
		"check-every-op": func() { cfg.CheckEveryOp = f.cfg.CheckEveryOp },
		"parallel":       func() { cfg.Parallel = f.cfg.Parallel },
		"log-level":      func() { cfg.LogLevel = f.cfg.LogLevel },
		"metrics":        func() { cfg.Metrics = f.cfg.Metrics },
		"metrics-addr":   func() { cfg.MetricsAddr = f.cfg.MetricsAddr },
		"output":         func() { cfg.Output = f.cfg.Output },
	}
	for name, apply := range overrides {
		if fs.Changed(name) {
			apply()
		}
	}
	return cfg, cfg.Validate()
}
