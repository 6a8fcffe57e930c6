// Package highlight splits SQL text into colored segments for display.
//
// Highlight never drops input: concatenating the Text of the returned
// segments reproduces the source exactly. Characters the tokenizer skips
// become whitespace-colored gap segments.
//
// Grammar exposes the tokenizer's classification table as regular
// expressions so browser or editor widgets color text the same way.
package highlight
