package synsearch

import "github.com/naturalli/synsearch/searchnode"

// Termination is the terminal state SynSearch's INIT -> RUNNING ->
// {FOUND, EXHAUSTED, TIMEOUT, OOM} loop reaches.
type Termination int

const (
	Found Termination = iota
	Exhausted
	Timeout
	OOM
)

func (t Termination) String() string {
	switch t {
	case Found:
		return "FOUND"
	case Exhausted:
		return "EXHAUSTED"
	case Timeout:
		return "TIMEOUT"
	case OOM:
		return "OOM"
	default:
		return "UNKNOWN"
	}
}

// Response is the result of a SynSearch call.
type Response struct {
	// Paths holds every accepted proof, each a root-to-leaf sequence of
	// search nodes.
	Paths [][]searchnode.SearchNode
	// TotalTicks is the number of pop+expand iterations performed.
	TotalTicks uint64
	// Termination is the reason the loop stopped.
	Termination Termination
}
