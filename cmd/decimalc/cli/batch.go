package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"

	"github.com/calebcase/decarith/decimal"
	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/eval"
	"github.com/calebcase/decarith/stats"
)

type batchOptions struct {
	left, right, out TypeFlag

	in     string
	format string
	order  OrderFlag
}

func newBatch(v *viper.Viper) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch OP --left TYPE --right TYPE",
		Short: "Evaluate OP over a column of operand pairs.",
		Long: `Evaluate OP over a column of operand pairs.

The csv format has one row per pair. An empty field or NULL is a null and
produces a null result. The binary format alternates x and y values in the
left and right types; results are written in the output type, with nulls as
zero. Rows that fail are null unless --abort is set.`,
		Example: `decimalc batch add --left 10,2 --right 10,3 --in values.csv
decimalc batch multiply --left 18,2 --right 18,2 --format binary --order be < pairs.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, v, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.Var(&opts.left, "left", "type of the x column")
	flags.Var(&opts.right, "right", "type of the y column")
	flags.Var(&opts.out, "out", "output type (default inferred)")
	flags.StringVar(&opts.in, "in", "-", "input file, - for stdin")
	flags.StringVar(&opts.format, "format", "csv", "input and output format: csv or binary")
	flags.Var(&opts.order, "order", "byte order of the binary format")

	cobra.CheckErr(cmd.MarkFlagRequired("left"))
	cobra.CheckErr(cmd.MarkFlagRequired("right"))

	return cmd
}

func runBatch(cmd *cobra.Command, v *viper.Viper, opts *batchOptions, name string) (err error) {
	defer Error.WrapP(&err)

	op, err := dectype.ParseOp(name)
	if err != nil {
		return err
	}

	left, _ := opts.left.Get()
	right, _ := opts.right.Get()

	cfg, err := config(v)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()

	collector, err := stats.NewCollector(reg)
	if err != nil {
		return err
	}

	cfg.Observer = collector

	var p *eval.Plan
	if t, ok := opts.out.Get(); ok {
		p, err = eval.NewPlanWithOutput(op, left, right, t, cfg)
	} else {
		p, err = eval.NewPlan(op, left, right, cfg)
	}
	if err != nil {
		return err
	}

	glog.V(1).Infof("plan: %s", p)

	r := cmd.InOrStdin()
	if opts.in != "-" {
		f, ferr := os.Open(opts.in)
		if ferr != nil {
			return ferr
		}
		defer func() { err = errs.Combine(err, f.Close()) }()

		r = f
	}

	mem := memory.NewGoAllocator()

	xs := array.NewDecimal128Builder(mem, left.Arrow())
	defer xs.Release()

	ys := array.NewDecimal128Builder(mem, right.Arrow())
	defer ys.Release()

	var parseErrs int

	switch opts.format {
	case "csv":
		parseErrs, err = readCSV(r, left, right, xs, ys)
	case "binary":
		err = readBinary(r, decimal.ByteOrder(opts.order), left, right, xs, ys)
	default:
		err = Error.New("unknown format %q", opts.format)
	}
	if err != nil {
		return err
	}

	xa, ya := xs.NewDecimal128Array(), ys.NewDecimal128Array()
	defer xa.Release()
	defer ya.Release()

	b, err := p.EvalArrow(cmd.Context(), xa, ya)
	if err != nil {
		return err
	}

	if b.Err != nil {
		glog.V(2).Infof("row errors: %v", b.Err)
	}

	switch opts.format {
	case "csv":
		err = writeText(cmd.OutOrStdout(), b)
	case "binary":
		err = writeBinary(cmd.OutOrStdout(), decimal.ByteOrder(opts.order), b)
	}
	if err != nil {
		return err
	}

	glog.Infof("batch %s: %d rows, %d null, %d unparsed", p, len(b.Values), b.NullCount(), parseErrs)

	lines, err := stats.Summarize(reg)
	if err != nil {
		return err
	}

	for _, line := range lines {
		glog.Info(line)
	}

	return nil
}

func isNull(field string) bool {
	field = strings.TrimSpace(field)

	return field == "" || strings.EqualFold(field, "null")
}

func appendField(bld *array.Decimal128Builder, field string, t dectype.Type) error {
	if isNull(field) {
		bld.AppendNull()
		return nil
	}

	v, err := literal(field, t)
	if err != nil {
		bld.AppendNull()
		return err
	}

	bld.Append(v.Num())

	return nil
}

// readCSV appends every row of r. Fields that do not parse become nulls and
// are counted.
func readCSV(r io.Reader, left, right dectype.Type, xs, ys *array.Decimal128Builder) (parseErrs int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.ReuseRecord = true

	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return parseErrs, nil
		}
		if err != nil {
			return parseErrs, err
		}

		for i, t := range []dectype.Type{left, right} {
			bld := xs
			if i == 1 {
				bld = ys
			}

			if err := appendField(bld, rec[i], t); err != nil {
				parseErrs++
				glog.V(2).Infof("row %d: %v", row, err)
			}
		}
	}
}

func readBinary(r io.Reader, order decimal.ByteOrder, left, right dectype.Type, xs, ys *array.Decimal128Builder) error {
	xd := decimal.NewDecoder(decimal.Schema{Type: left, Order: order}, r)
	yd := decimal.NewDecoder(decimal.Schema{Type: right, Order: order}, r)

	for {
		var x, y decimal.Value

		err := xd.Decode(&x)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := yd.Decode(&y); err != nil {
			if errors.Is(err, io.EOF) {
				return Error.New("missing y value")
			}

			return err
		}

		xs.Append(x.Num())
		ys.Append(y.Num())
	}
}

func writeText(w io.Writer, b *eval.Batch) error {
	for i, v := range b.Values {
		text := "NULL"
		if b.Valid[i] {
			text = v.ToString(b.Type.Scale)
		}

		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}

	return nil
}

func writeBinary(w io.Writer, order decimal.ByteOrder, b *eval.Batch) error {
	enc := decimal.NewEncoder(decimal.Schema{Type: b.Type, Order: order}, w)

	for _, v := range b.Values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}

	return nil
}
