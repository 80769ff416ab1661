package parser

import "github.com/crystalcif/gocif/token"

// tagScope tracks which tags have been used as scalar items or as loop
// columns within a single Block or Frame, so a duplicate (spec.md §3:
// "the same tag may not appear both as an item and as a loop column in
// the same Block") is caught while the parser still has the offending
// span in hand, rather than after the Block has been constructed.
type tagScope struct {
	seen map[string]token.Span
}

func newTagScope() *tagScope {
	return &tagScope{seen: make(map[string]token.Span)}
}

// claim registers tag as used at span, returning an error if it was
// already claimed earlier in this scope.
func (s *tagScope) claim(tag string, span token.Span) error {
	key := lowerTag(tag)
	if first, ok := s.seen[key]; ok {
		_ = first
		return duplicateTagError(span, tag)
	}

	s.seen[key] = span

	return nil
}
