package nfa

import (
	"fmt"

	"github.com/coregx/gridrex/internal/intset"
)

// Compile builds a Thompson NFA for re over an alphabet of alphabetSize
// symbols and accept labels in [0, acceptCount).
//
// The construction is the classic post-order traversal: each node is built
// against a supplied out-state, and returns its in-state. Accept nodes
// attach their label to the out-state without consuming input, so a state's
// accept set is exactly the labels whose expressions complete there.
func Compile(alphabetSize, acceptCount int, re Regex) (*NFA, error) {
	b := &builder{
		nfa: &NFA{
			alphabetSize: alphabetSize,
			acceptCount:  acceptCount,
		},
	}
	out := b.addEmpty()
	start, err := b.build(re, out)
	if err != nil {
		return nil, err
	}
	b.nfa.start = start
	return b.nfa, nil
}

type builder struct {
	nfa *NFA
}

func (b *builder) addEmpty() StateID {
	id := len(b.nfa.states)
	b.nfa.states = append(b.nfa.states, state{})
	return id
}

func (b *builder) addConsuming(letters *intset.Set, next StateID) StateID {
	id := len(b.nfa.states)
	b.nfa.states = append(b.nfa.states, state{letters: letters, next: next})
	return id
}

// build constructs the sub-automaton for re ending at out and returns its
// in-state.
func (b *builder) build(re Regex, out StateID) (StateID, error) {
	switch node := re.(type) {
	case Letters:
		if node.Set == nil || node.Set.Domain() != b.nfa.alphabetSize {
			return 0, &BuildError{Node: "letters", Err: ErrBadSymbolSet}
		}
		return b.addConsuming(node.Set, out), nil

	case Wildcard:
		return b.addConsuming(intset.Full(b.nfa.alphabetSize), out), nil

	case Concat:
		// Thread the out-pointer back to front.
		cur := out
		for i := len(node.Parts) - 1; i >= 0; i-- {
			in, err := b.build(node.Parts[i], cur)
			if err != nil {
				return 0, err
			}
			cur = in
		}
		return cur, nil

	case Union:
		head := b.addEmpty()
		for _, alt := range node.Alts {
			// Each alternative gets its own join state so accept labels
			// inside one branch cannot leak into a sibling's tail.
			mid := b.addEmpty()
			b.nfa.states[mid].epsilons = append(b.nfa.states[mid].epsilons, out)
			in, err := b.build(alt, mid)
			if err != nil {
				return 0, err
			}
			b.nfa.states[head].epsilons = append(b.nfa.states[head].epsilons, in)
		}
		return head, nil

	case Star:
		head := b.addEmpty()
		loop := b.addEmpty()
		b.nfa.states[loop].epsilons = append(b.nfa.states[loop].epsilons, head)
		in, err := b.build(node.Inner, loop)
		if err != nil {
			return 0, err
		}
		b.nfa.states[head].epsilons = append(b.nfa.states[head].epsilons, in, out)
		return head, nil

	case Accept:
		if node.Label < 0 || node.Label >= b.nfa.acceptCount {
			return 0, &BuildError{Node: "accept", Err: ErrBadLabel}
		}
		b.nfa.states[out].accepts = append(b.nfa.states[out].accepts, node.Label)
		return out, nil

	default:
		return 0, &BuildError{Node: fmt.Sprintf("%T", re), Err: ErrUnknownNode}
	}
}
