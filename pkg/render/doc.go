// Package render is the reference HTML presentation layer: it turns the
// store's position buckets into fixed-position region containers and
// level-styled toast cards, all styled off the theme's --toastline-*
// variables.
//
// It is one subscriber among possible many — pkg/tui renders the same store
// to a terminal, and hosts are free to bring their own renderer and ignore
// this one entirely.
package render
