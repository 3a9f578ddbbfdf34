package app

import (
	"errors"
	"log/slog"

	"github.com/mikesmitty/psychart/pkg/datalog"
	"github.com/mikesmitty/psychart/pkg/stats"
	"github.com/spf13/cobra"
)

// Pair names two log columns measuring the same quantity.
type Pair struct {
	Name string
	A, B string
}

var ComparedPairs = []Pair{
	{"relative humidity", datalog.ColumnPhi2, datalog.ColumnPhi},
	{"dry bulb", datalog.ColumnTbs2, datalog.ColumnTbs},
	{"radiation shield", datalog.ColumnTbsProtect, datalog.ColumnTbsUnprotect},
}

type PairComparison struct {
	Pair
	stats.Comparison
}

func Compare() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		setupLogging()
		l, err := readLog()
		errChk(err)

		for _, c := range CompareLog(l) {
			slog.Info("comparison",
				"pair", c.Name,
				"a", c.A,
				"b", c.B,
				"n", c.N,
				"bias", c.Bias,
				"biasStd", c.BiasStd,
				"slope", c.Slope,
				"intercept", c.Intercept,
				"r2", c.RSquared,
				"p95", c.P95,
			)
		}
		for _, column := range []string{datalog.ColumnTbs, datalog.ColumnTbh, datalog.ColumnTbs2, datalog.ColumnPhi, datalog.ColumnPhi2} {
			s, err := l.Series(column)
			if err != nil {
				continue
			}
			sum := stats.Summarize(s)
			slog.Info("summary", "column", column, "n", sum.N, "mean", sum.Mean, "std", sum.Std, "min", sum.Min, "max", sum.Max)
		}
	}
}

// CompareLog compares every pair whose columns are both in the log.
func CompareLog(l *datalog.Log) []PairComparison {
	var out []PairComparison
	for _, p := range ComparedPairs {
		a, errA := l.Series(p.A)
		b, errB := l.Series(p.B)
		if err := errors.Join(errA, errB); err != nil {
			slog.Warn("skipping comparison", "pair", p.Name, "error", err)
			continue
		}
		out = append(out, PairComparison{Pair: p, Comparison: stats.Compare(a, b)})
	}
	return out
}
