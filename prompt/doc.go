// Package prompt composes the final prompt and negative prompt sent upstream:
// user text, then the style fragments, then the quality-mode HD boost.
package prompt
