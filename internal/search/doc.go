// Package search is the client-side search core: it debounces query input,
// dispatches sequence-numbered fetches so that only the latest request can
// change state, derives filter facets, paginates and tracks favorites.
package search
