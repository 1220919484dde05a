package match

import (
	"github.com/hupe1980/addrtrie/trie"
)

// Status classifies a lookup outcome. The zero-identifier convention is an
// internal encoding detail of the data model; public boundaries carry this
// explicit tag instead.
type Status uint8

const (
	// StatusNoPath means matching made no usable progress.
	StatusNoPath Status = iota
	// StatusInsufficient means matching progressed but ended on a
	// non-terminal node: the input under-specifies an address.
	StatusInsufficient
	// StatusAmbiguous means matching ended on a node shared by several
	// addresses that never resolved to a unique terminal.
	StatusAmbiguous
	// StatusExact means a single identifier was resolved.
	StatusExact
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusExact:
		return "EXACT"
	case StatusAmbiguous:
		return "AMBIGUOUS"
	case StatusInsufficient:
		return "INSUFFICIENT"
	default:
		return "NO_PATH"
	}
}

// Outcome is the fixed-shape diagnostic record of a classified lookup.
type Outcome struct {
	Status Status
	// UPRN is meaningful only when Status is StatusExact.
	UPRN uint64
	// MatchedLength is the number of tokens consumed on the best attempt.
	MatchedLength int
	// ConsumedAll reports whether that attempt consumed every input token.
	ConsumedAll bool
	// NodeCount and NodeTerminals describe the node the best attempt ended on.
	NodeCount     uint32
	NodeTerminals uint32
}

// Find resolves tokens against the trie, returning the identifier and true on
// the first acceptance, or false when no (start offset, entry node, walk)
// combination accepts. An empty token sequence fails immediately.
func Find(t *trie.Trie, tokens []string, p Params) (uint64, bool) {
	wr := walkBest(t, tokens, p, false)
	if !wr.exact {
		return 0, false
	}
	return wr.uprn, true
}

// Classify runs the same lookup as Find but reports a classified outcome with
// the diagnostic fields populated from the best attempt.
func Classify(t *trie.Trie, tokens []string, p Params) Outcome {
	wr := walkBest(t, tokens, p, false)
	return classify(wr)
}

func classify(wr walkResult) Outcome {
	out := Outcome{
		MatchedLength: wr.consumed,
		ConsumedAll:   wr.exhausted,
	}
	if wr.node != nil {
		out.NodeCount = wr.node.Count
		out.NodeTerminals = wr.node.Terminals
	}

	switch {
	case wr.exact:
		out.Status = StatusExact
		out.UPRN = wr.uprn
	case wr.consumed == 0:
		out.Status = StatusNoPath
	case wr.exhausted:
		if wr.node != nil && wr.node.Terminals == 0 {
			out.Status = StatusInsufficient
		} else {
			out.Status = StatusAmbiguous
		}
	case wr.node != nil && wr.node.Count > 1:
		out.Status = StatusAmbiguous
	default:
		out.Status = StatusNoPath
	}
	return out
}
