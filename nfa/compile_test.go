package nfa

import (
	"errors"
	"reflect"
	"testing"

	"github.com/coregx/gridrex/internal/intset"
)

// simulate runs the NFA on input and returns the sorted accept labels of
// the final state set.
func simulate(n *NFA, input []int) []int {
	set := intset.New(n.NumStates())
	set.Insert(n.Start())
	n.EpsilonClosure(set)
	for _, c := range input {
		next := intset.New(n.NumStates())
		set.ForEach(func(s int) {
			if t, ok := n.Consumes(s, c); ok {
				next.Insert(t)
			}
		})
		n.EpsilonClosure(next)
		set = next
	}
	labels := intset.New(n.AcceptCount())
	set.ForEach(func(s int) {
		for _, l := range n.Accepts(s) {
			labels.Insert(l)
		}
	})
	return labels.Elements()
}

func sym(alpha, id int) Regex { return Symbol(alpha, id) }

func TestCompileAtoms(t *testing.T) {
	const alpha = 3
	tests := []struct {
		name   string
		re     Regex
		input  []int
		accept bool
	}{
		{"letter match", Concat{[]Regex{sym(alpha, 1), Accept{0}}}, []int{1}, true},
		{"letter mismatch", Concat{[]Regex{sym(alpha, 1), Accept{0}}}, []int{2}, false},
		{"letter too short", Concat{[]Regex{sym(alpha, 1), Accept{0}}}, nil, false},
		{"letter too long", Concat{[]Regex{sym(alpha, 1), Accept{0}}}, []int{1, 1}, false},
		{"wildcard", Concat{[]Regex{Wildcard{}, Accept{0}}}, []int{2}, true},
		{"empty concat accepts empty", Concat{[]Regex{Accept{0}}}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Compile(alpha, 1, tt.re)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			got := len(simulate(n, tt.input)) > 0
			if got != tt.accept {
				t.Errorf("accept = %v, want %v", got, tt.accept)
			}
		})
	}
}

func TestCompileUnionLabels(t *testing.T) {
	const alpha = 2
	// 0 -> label 0, 1 -> label 1; union keeps branch labels separate.
	re := Union{[]Regex{
		Concat{[]Regex{sym(alpha, 0), Accept{0}}},
		Concat{[]Regex{sym(alpha, 1), Accept{1}}},
	}}
	n, err := Compile(alpha, 2, re)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if got := simulate(n, []int{0}); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("labels after 0 = %v, want [0]", got)
	}
	if got := simulate(n, []int{1}); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("labels after 1 = %v, want [1]", got)
	}
	if got := simulate(n, []int{0, 0}); len(got) != 0 {
		t.Errorf("labels after 00 = %v, want none", got)
	}
}

func TestCompileStar(t *testing.T) {
	const alpha = 2
	// (0)*1, accepting label 0.
	re := Concat{[]Regex{
		Star{sym(alpha, 0)},
		sym(alpha, 1),
		Accept{0},
	}}
	n, err := Compile(alpha, 1, re)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	for _, tt := range []struct {
		input  []int
		accept bool
	}{
		{[]int{1}, true},
		{[]int{0, 1}, true},
		{[]int{0, 0, 0, 1}, true},
		{[]int{0}, false},
		{[]int{1, 0}, false},
		{nil, false},
	} {
		if got := len(simulate(n, tt.input)) > 0; got != tt.accept {
			t.Errorf("input %v: accept = %v, want %v", tt.input, got, tt.accept)
		}
	}
}

func TestCompileOverlappingAccepts(t *testing.T) {
	const alpha = 2
	// .*(0|.) with a 0 branch and a wildcard branch: after a 0 both labels
	// fire together, after a 1 only the wildcard's.
	re := Concat{[]Regex{
		Star{Wildcard{}},
		Union{[]Regex{
			Concat{[]Regex{sym(alpha, 0), Accept{0}}},
			Concat{[]Regex{Wildcard{}, Accept{1}}},
		}},
	}}
	n, err := Compile(alpha, 2, re)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if got := simulate(n, []int{0}); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("labels after 0 = %v, want [0 1]", got)
	}
	if got := simulate(n, []int{1}); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("labels after 1 = %v, want [1]", got)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		re   Regex
		want error
	}{
		{"label negative", Accept{-1}, ErrBadLabel},
		{"label too large", Accept{1}, ErrBadLabel},
		{"nil letter set", Letters{}, ErrBadSymbolSet},
		{"wrong domain", Letters{Set: intset.New(7)}, ErrBadSymbolSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(3, 1, tt.re)
			if !errors.Is(err, tt.want) {
				t.Errorf("Compile error = %v, want %v", err, tt.want)
			}
		})
	}
}
