// Package opportunity finds and ranks glyph expansion opportunities.
//
// An opportunity is a font family that lacks only a few characters needed to
// support one or more additional languages. The package has three stages:
//
//   - [Match] computes, for every family and language, the characters the
//     language requires that the family does not cover, and groups languages
//     that share the exact same deficiency against the same family.
//   - [Score] estimates the value of closing a gap (from family popularity and
//     speaker population) and its cost (from the number of glyphs and how
//     many masters or axes the family has).
//   - [Rank] orders scored opportunities by value/cost, best first.
//
// Everything here is pure: inputs are plain values supplied by the catalog
// and popularity packages, and no function performs I/O.
//
// # Example
//
//	res := opportunity.Match(langs, families, opportunity.MatchOptions{MaxMissing: 1})
//	opps := opportunity.ScoreAll(res, families, stats, langs)
//	opportunity.Rank(opps)
package opportunity
