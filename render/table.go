package render

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/CodeStranger-Fred/gridworld-eval/mdp"
)

// Table prints grids and value tables to a terminal.
type Table struct {
	w  io.Writer
	au aurora.Aurora
}

func NewTable(w io.Writer, color bool) *Table {
	return &Table{w: w, au: aurora.NewAurora(color)}
}

// Values prints V laid out on the grid. The goal is green, the wall is
// shown as a block, negative values are red.
func (t *Table) Values(env *mdp.GridWorld, V mdp.ValueFunction) {
	for r := 0; r < env.Height(); r++ {
		for c := 0; c < env.Width(); c++ {
			st := mdp.State{Row: r, Col: c}
			v := V.Estimate(st)
			switch {
			case st == env.Wall():
				fmt.Fprint(t.w, t.au.Gray(12, "  ####"))
			case st == env.Goal():
				fmt.Fprint(t.w, t.au.Green(format2x2(v)))
			case v < 0:
				fmt.Fprint(t.w, t.au.Red(format2x2(v)))
			default:
				fmt.Fprint(t.w, t.au.Blue(format2x2(v)))
			}
			fmt.Fprint(t.w, t.au.White("|"))
		}
		fmt.Fprintln(t.w)
	}
}

// Grid prints the layout with current highlighted.
func (t *Table) Grid(env *mdp.GridWorld, current mdp.State) {
	for r := 0; r < env.Height(); r++ {
		for c := 0; c < env.Width(); c++ {
			st := mdp.State{Row: r, Col: c}
			label := "."
			switch st {
			case env.Wall():
				label = "#"
			case env.Goal():
				label = "G"
			case env.Start():
				label = "S"
			}
			if st == current {
				fmt.Fprint(t.w, t.au.Green(fmt.Sprintf("%3s ", "*"+label)))
			} else {
				fmt.Fprint(t.w, t.au.Blue(fmt.Sprintf("%3s ", label)))
			}
			fmt.Fprint(t.w, t.au.White("|"))
		}
		fmt.Fprintln(t.w)
	}
}

// Dump prints one "state: value" line per state in row-major order.
func (t *Table) Dump(V mdp.ValueFunction) {
	for _, s := range V.States() {
		fmt.Fprintf(t.w, "%v: %.6f\n", s, V[s])
	}
}

func (t *Table) Episode(episode []mdp.Transition, gamma float64) {
	for i, tr := range episode {
		fmt.Fprintf(t.w, "%3d %v --%v--> %v  r=%v\n", i, tr.State0, tr.Action, tr.State1, tr.Reward)
	}
	fmt.Fprintf(t.w, "steps=%d return=%.6f\n", len(episode), mdp.DiscountedReturn(episode, gamma))
}

func format2x2(x float64) string {
	if x < 0 {
		return " -" + fmt.Sprintf("%05.2f", -x)
	}
	return fmt.Sprintf(" %05.2f", x)
}
