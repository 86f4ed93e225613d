// Package imports finds the module imports of a template source file.
//
// It is not a parser. It lexes just enough markup to find top-level
// `#import "<source>"` statements while skipping comments, raw blocks,
// escapes and nested code or content blocks, so imports that only appear
// inside strings, raw text or function bodies are not reported.
package imports
