/*
Package daycolor decides how each day of the calendar is painted.

The decision is made by an ordered list of rules; the first rule that
matches a day wins.
*/
package daycolor

import (
	"inkcal/grid"
	"inkcal/raster"
)

// Input is what a rule sees about one day.
type Input struct {
	Cell    grid.DateCell
	Holiday bool
}

// Decision is how a day is painted. When Invert is set the cell is filled
// with the foreground ink before the number is drawn. When Paint is false
// the number is not drawn at all.
type Decision struct {
	Paint  bool
	Ink    raster.Color
	Invert bool
}

// Rule is a single entry of the policy.
type Rule struct {
	Name   string
	Match  func(Input) bool
	Decide func(Input) Decision
}

func ink(c raster.Color) func(Input) Decision {
	return func(Input) Decision {
		return Decision{Paint: true, Ink: c}
	}
}

// Rules is the policy in evaluation order.
var Rules = []Rule{
	{
		Name:  "today",
		Match: func(in Input) bool { return in.Cell.Today },
		Decide: func(in Input) Decision {
			d := Decision{Paint: true, Ink: raster.Background, Invert: true}
			if in.Holiday || in.Cell.Weekend {
				d.Ink = raster.Accent
			}
			return d
		},
	},
	{
		Name:   "holiday",
		Match:  func(in Input) bool { return in.Holiday },
		Decide: ink(raster.Accent),
	},
	{
		Name:   "weekend",
		Match:  func(in Input) bool { return in.Cell.CurrentMonth && in.Cell.Weekend },
		Decide: ink(raster.Accent),
	},
	{
		Name:   "weekday",
		Match:  func(in Input) bool { return in.Cell.CurrentMonth },
		Decide: ink(raster.Foreground),
	},
	{
		Name:   "adjacent",
		Match:  func(Input) bool { return true },
		Decide: func(Input) Decision { return Decision{} },
	},
}

func match(in Input) Rule {
	for _, r := range Rules {
		if r.Match(in) {
			return r
		}
	}
	return Rules[len(Rules)-1]
}

// Resolve returns how cell is painted.
func Resolve(cell grid.DateCell, holiday bool) Decision {
	in := Input{Cell: cell, Holiday: holiday}
	return match(in).Decide(in)
}

// Explain returns the name of the rule that decides cell.
func Explain(cell grid.DateCell, holiday bool) string {
	return match(Input{Cell: cell, Holiday: holiday}).Name
}
