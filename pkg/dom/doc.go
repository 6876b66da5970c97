// Package dom hosts rendered blotter markup inside an in-memory HTML document.
// It offers the handful of mutations the form loaders need (replace the
// children of a container, overwrite the text of an element) addressed by
// CSS selectors.
package dom
