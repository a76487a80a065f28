// Package stats counts evaluation paths and errors in prometheus.
//
//  | Metric                  | Labels          |
//  |-------------------------|-----------------|
//  | decarith_eval_paths     | op, tier, path  |
//  | decarith_eval_errors    | op, tier, kind  |
//  |-------------------------|-----------------|
//
// A Collector is an eval.Observer.
package stats

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/zeebo/errs"

	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/eval"
	"github.com/calebcase/decarith/kernel"
)

// Error is the error class for this package.
var Error = errs.Class("stats")

const namespace = "decarith"

// Collector counts evaluation outcomes.
type Collector struct {
	paths    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

var _ eval.Observer = (*Collector)(nil)

// NewCollector creates the counters and registers them with reg.
func NewCollector(reg prometheus.Registerer) (c *Collector, err error) {
	defer Error.WrapP(&err)

	c = &Collector{
		paths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "eval",
			Name:      "paths",
			Help:      "Evaluations by operator, tier and path.",
		}, []string{"op", "tier", "path"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "eval",
			Name:      "errors",
			Help:      "Failed evaluations by operator, tier and kind.",
		}, []string{"op", "tier", "kind"}),
	}

	for _, coll := range []prometheus.Collector{c.paths, c.failures} {
		if err := reg.Register(coll); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Collector) ObservePath(op dectype.Op, tier kernel.Tier, path eval.Path) {
	c.paths.WithLabelValues(op.String(), tier.String(), path.String()).Inc()
}

func (c *Collector) ObserveError(op dectype.Op, tier kernel.Tier, err error) {
	c.failures.WithLabelValues(op.String(), tier.String(), Kind(err)).Inc()
}

// Kind names the class of an evaluation error.
func Kind(err error) string {
	switch {
	case errors.Is(err, eval.ErrOverflow):
		return "overflow"
	case errors.Is(err, eval.ErrDivideByZero):
		return "divide_by_zero"
	case errors.Is(err, eval.ErrUnsupported):
		return "unsupported"
	}

	return "other"
}

// Summarize renders every counter gathered from g as one line of
// name{labels} value, sorted.
func Summarize(g prometheus.Gatherer) (lines []string, err error) {
	defer Error.WrapP(&err)

	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}

		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}

			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}

	sort.Strings(lines)

	return lines, nil
}
