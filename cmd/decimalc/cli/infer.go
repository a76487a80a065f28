package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/eval"
)

func newInfer() *cobra.Command {
	return &cobra.Command{
		Use:   "infer OP TYPE TYPE",
		Short: "Print the result type and tier of OP over the operand types.",
		Example: `decimalc infer add 30,3 30,2
decimalc infer divide "decimal(38,10)" 38`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			types := make([]dectype.Type, 0, len(args)-1)
			for _, arg := range args[1:] {
				t, err := dectype.ParseType(arg)
				if err != nil {
					return err
				}

				types = append(types, t)
			}

			sig, err := eval.DefaultRegistry.LookupSignature(args[0], types...)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", sig.Out, sig.Tier)

			return err
		},
	}
}
