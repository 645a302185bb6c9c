package mutationgraph

import (
	"fmt"

	"github.com/naturalli/synsearch/kb"
	"github.com/naturalli/synsearch/lex"
	"github.com/sugawarayuuta/sonnet"
)

// jsonEdge mirrors one row of an edge-list dump (the Go-native equivalent
// of the original CSV/binary edge tables in original_source/src/Graph.cc).
type jsonEdge struct {
	Source      uint32  `json:"source"`
	SourceSense uint8   `json:"sourceSense"`
	Sink        uint32  `json:"sink"`
	SinkSense   uint8   `json:"sinkSense"`
	Type        uint8   `json:"type"`
	Cost        float32 `json:"cost"`
	Deletion    bool    `json:"deletion"`
}

type jsonGloss struct {
	Word  uint32 `json:"word"`
	Sense uint8  `json:"sense"`
	Text  string `json:"text"`
}

type jsonGraph struct {
	Edges   []jsonEdge  `json:"edges"`
	Glosses []jsonGloss `json:"glosses"`
}

// LoadJSON parses a mutation graph dump and builds an InMemory graph from
// it, using sonnet for allocation-light JSON decoding (see
// syncharvester.go's use of sonnet.Unmarshal for the same reason: fast
// decode of large, flat record arrays).
func LoadJSON(data []byte) (*InMemory, error) {
	var g jsonGraph
	if err := sonnet.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("mutationgraph: decode: %w", err)
	}

	edges := make([]kb.Edge, 0, len(g.Edges))
	deletions := make([]kb.Edge, 0)
	for _, je := range g.Edges {
		e := kb.Edge{
			Source:      lex.NewWord(je.Source),
			SourceSense: je.SourceSense,
			Sink:        lex.NewWord(je.Sink),
			SinkSense:   je.SinkSense,
			Type:        lex.EdgeType(je.Type),
			Cost:        je.Cost,
		}
		edges = append(edges, e)
		if je.Deletion {
			deletions = append(deletions, e)
		}
	}

	glosses := make(map[uint32]string, len(g.Glosses))
	for _, jg := range g.Glosses {
		key := uint32(lex.NewWord(jg.Word))<<8 | uint32(jg.Sense)
		glosses[key] = jg.Text
	}

	return New(edges, deletions, glosses), nil
}
