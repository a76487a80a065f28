package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calebcase/decarith/decimal"
	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/eval"
)

func newEval(v *viper.Viper) *cobra.Command {
	var out TypeFlag

	cmd := &cobra.Command{
		Use:   "eval OP X Y",
		Short: "Evaluate OP over two decimal literals.",
		Long: `Evaluate OP over two decimal literals. Each literal is typed by the
digits it is written with, so 1.50 is decimal(3,2). The result type is
inferred unless --out is given.`,
		Example: `decimalc eval multiply 1.50 2.25
decimalc eval divide 1 3 --out 10,4 --round=false`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := dectype.ParseOp(args[0])
			if err != nil {
				return err
			}

			x, xp, xs, err := decimal.FromString(args[1])
			if err != nil {
				return err
			}

			y, yp, ys, err := decimal.FromString(args[2])
			if err != nil {
				return err
			}

			cfg, err := config(v)
			if err != nil {
				return err
			}

			left := dectype.Type{Precision: xp, Scale: xs}
			right := dectype.Type{Precision: yp, Scale: ys}

			var p *eval.Plan
			if t, ok := out.Get(); ok {
				p, err = eval.NewPlanWithOutput(op, left, right, t, cfg)
			} else {
				p, err = eval.NewPlan(op, left, right, cfg)
			}
			if err != nil {
				return err
			}

			res, err := p.Eval(x, y)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", res.ToString(p.Out.Scale), p.Out)

			return err
		},
	}

	cmd.Flags().Var(&out, "out", "output type (default inferred)")

	return cmd
}
