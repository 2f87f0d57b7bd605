package cmd

import (
	"flag"
	"slices"

	"github.com/etnz/dividends"
	"github.com/etnz/dividends/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors suggests values of the flags that take a closed set of values.
var flagPredictors = map[string]complete.Predictor{
	"config":    predict.Files("*.toml"),
	"data-dir":  predict.Dirs("*"),
	"log-level": predict.Set{"debug", "info", "warn", "error"},
	"kind":      predict.Set{kindDividends, kindHoldings},
	"o":         predict.Files("*"),
	"format":    predict.Set{"csv", "json"},
	"bracket":   predict.Set{"low", "medium", "high", "very-high"},
	"type":      predict.Set{"regular", "special", "return-of-capital", "stock", "spin-off"},
	"scenario":  predict.Set{"conservative", "moderate", "optimistic"},
}

func init() {
	var methods, taxes predict.Set
	for _, m := range dividends.Methods() {
		methods = append(methods, m.String())
	}
	for _, c := range dividends.TaxClassifications() {
		taxes = append(taxes, c.String())
	}
	flagPredictors["method"] = methods
	flagPredictors["tax"] = taxes

	var statuses predict.Set
	for _, s := range []dividends.FilingStatus{dividends.Single, dividends.MarriedFilingJointly, dividends.MarriedFilingSeparately, dividends.HeadOfHousehold} {
		statuses = append(statuses, s.String())
	}
	flagPredictors["filing"] = statuses
}

// flagsOf returns the completion of the flags defined on f.
func flagsOf(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		p, ok := flagPredictors[fl.Name]
		switch {
		case ok:
		case isBool(fl):
			p = predict.Nothing
		default:
			p = predict.Something
		}
		flags[fl.Name] = p
	})
	return flags
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// Completion describes the command line for shell completion.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagsOf(global),
	}
	for _, g := range Commands {
		for _, c := range g.Commands {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			root.Sub[c.Name()] = &complete.Command{Flags: flagsOf(f)}
		}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(slices.Concat([]string{"readme"}, topics))
	}
	root.Sub["import"].Args = predict.Files("*.csv")
	return root
}
