package match

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/addrtrie/trie"
)

// CandidateResult is the diagnostic enumeration of a lookup: every reachable
// identifier beneath the best-reached node plus the step-by-step trace of the
// best walk, to support downstream disambiguation and threshold tuning.
type CandidateResult struct {
	Status Status
	// UPRNs holds the candidate identifiers, deduplicated and sorted. On an
	// exact outcome it contains the single resolved identifier.
	UPRNs []uint64
	// Trace lists each consumed token with the Count of the node stepped to.
	Trace []TraceStep
}

// Candidates runs the same walk machinery as Find. On an exact outcome it
// returns the resolved identifier as the only candidate; on any other outcome
// it depth-first collects every unique terminal identifier reachable beneath
// the node where matching progress was maximal.
func Candidates(t *trie.Trie, tokens []string, p Params) CandidateResult {
	wr := walkBest(t, tokens, p, true)
	out := CandidateResult{
		Status: classify(wr).Status,
		Trace:  wr.trace,
	}

	if wr.exact {
		out.UPRNs = []uint64{wr.uprn}
		return out
	}
	if wr.node == nil || wr.consumed == 0 {
		return out
	}

	// The same identifier can terminate several distinct sequences, so
	// collection goes through a bitmap for dedupe and sorted output.
	set := roaring64.New()
	collectTerminals(wr.node, set)
	if set.GetCardinality() > 0 {
		out.UPRNs = set.ToArray()
	}
	return out
}

func collectTerminals(n *trie.Node, set *roaring64.Bitmap) {
	if n == nil {
		return
	}
	if n.Terminals == 1 {
		set.Add(n.UPRN)
	}
	for i := range n.Children {
		collectTerminals(n.Children[i].Node, set)
	}
}
