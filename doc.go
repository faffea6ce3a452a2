// Package twgroup expands grouped utility-class notation.
//
// A prefix word followed by a parenthesized list applies the prefix to every
// token inside, and groups nest:
//
//	hover:(bg-red-500 md:(pl-3 pt-2))
//
// expands to
//
//	hover:bg-red-500 hover:md:pl-3 hover:md:pt-2
//
// Prefixes are concatenated as raw text. Any delimiter, such as the colon of a
// variant, belongs to the prefix word itself. Square-bracket payloads like
// bg-[url(a.png)] pass through as single tokens.
//
// Expansion runs in three stages: runtime/lexer splits the string into tokens,
// runtime/parser builds a tree with an explicit group stack, and
// runtime/flatten walks the tree threading the accumulated prefix. Every call
// is independent, so Expand is safe for concurrent use.
package twgroup
