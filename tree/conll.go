package tree

import (
	"strconv"
	"strings"

	"github.com/naturalli/synsearch/lex"
)

// ParseConLL builds a Tree from a compact test-only textual form, one
// token per line: "word governor relation" (governor is 0-indexed, or the
// literal "root"). Sense and monotonicity default to zero/MonoDefault.
// This mirrors the CoNLL-string constructor documented in the original
// NaturalLI sources for building trees in tests without hand-populating
// packed structs (see original_source/src/SynSearch.h).
func ParseConLL(conll string) (*Tree, error) {
	lines := strings.Split(strings.TrimSpace(conll), "\n")
	words := make([]lex.TaggedWord, 0, len(lines))
	governors := make([]uint8, 0, len(lines))
	relations := make([]uint8, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		w, err := strconv.ParseUint(fields[0], 10, 24)
		if err != nil {
			return nil, err
		}
		var gov uint8
		if fields[1] == "root" {
			gov = lex.TreeRoot
		} else {
			g, err := strconv.ParseUint(fields[1], 10, 8)
			if err != nil {
				return nil, err
			}
			gov = uint8(g)
		}
		rel, err := strconv.ParseUint(fields[2], 10, 8)
		if err != nil {
			return nil, err
		}
		words = append(words, lex.NewTaggedWord(lex.NewWord(uint32(w)), 0, lex.MonoDefault))
		governors = append(governors, gov)
		relations = append(relations, uint8(rel))
	}

	return New(words, governors, relations)
}
