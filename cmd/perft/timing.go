package main

import (
	"math"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// timing summarises repeated counts of the same tree.
type timing struct {
	Mean   time.Duration
	NPS    float64
	StdDev float64
	// Margin is the half width of the 95% confidence interval of NPS.
	Margin float64
}

// zVal returns the two-tailed z value of a confidence level in percent.
func zVal(confidence float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidence/100) / 2)
}

func summarize(nodes uint64, runs []time.Duration) timing {
	if len(runs) == 0 {
		return timing{}
	}
	nps := lo.Map(runs, func(d time.Duration, _ int) float64 {
		return float64(nodes) / math.Max(d.Seconds(), 1e-9)
	})
	secs := lo.Map(runs, func(d time.Duration, _ int) float64 { return d.Seconds() })

	t := timing{Mean: time.Duration(stat.Mean(secs, nil) * float64(time.Second))}
	t.NPS, t.StdDev = stat.MeanStdDev(nps, nil)
	if len(runs) < 2 {
		t.StdDev = 0
		t.NPS = nps[0]
		return t
	}
	t.Margin = zVal(95) * t.StdDev / math.Sqrt(float64(len(runs)))
	return t
}
