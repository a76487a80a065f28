// Package cli implements the decimalc command.
package cli

import (
	"flag"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"

	"github.com/calebcase/decarith/eval"
)

// Error is the error class for this package.
var Error = errs.Class("decimalc")

// Main is the root command.
var Main = New()

// New builds the command tree. Every tree reads its configuration into its
// own viper instance.
func New() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("decimalc")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var configFile string

	root := &cobra.Command{
		Use:   "decimalc",
		Short: "decimalc infers and evaluates fixed point decimal arithmetic.",
		Example: `decimalc infer multiply 20,2 20,2
decimalc eval divide 1 3
decimalc batch add --left 10,2 --right 10,3 --in values.csv`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return Error.Wrap(err)
			}

			if configFile != "" {
				v.SetConfigFile(configFile)

				if err := v.ReadInConfig(); err != nil {
					return Error.Wrap(err)
				}
			}

			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	pf.String("overflow", eval.OverflowError.String(), "overflow policy: error or wrap")
	pf.Bool("round", true, "round half away from zero when reducing scale, otherwise truncate")
	pf.Int("batch-size", eval.DefaultConfig().BatchSize, "rows per batch chunk")
	pf.Int("parallelism", 0, "chunks evaluated at once (0 uses GOMAXPROCS)")
	pf.Bool("abort", false, "fail the batch on the first row error")
	pf.AddGoFlagSet(flag.CommandLine)

	root.AddCommand(
		newInfer(),
		newEval(v),
		newBatch(v),
	)

	return root
}

// config builds the evaluation configuration from flags, environment and
// config file, in that order of precedence.
func config(v *viper.Viper) (cfg eval.Config, err error) {
	cfg = eval.DefaultConfig()

	cfg.Overflow, err = eval.ParsePolicy(v.GetString("overflow"))
	if err != nil {
		return cfg, err
	}

	cfg.Round = v.GetBool("round")
	cfg.BatchSize = v.GetInt("batch-size")
	cfg.BatchAbort = v.GetBool("abort")

	if n := v.GetInt("parallelism"); n > 0 {
		cfg.Parallelism = n
	}

	glog.V(1).Infof("config: overflow=%s round=%v batch-size=%d parallelism=%d abort=%v",
		cfg.Overflow, cfg.Round, cfg.BatchSize, cfg.Parallelism, cfg.BatchAbort)

	return cfg, nil
}
