package knowledge

import "errors"

var (
	// ErrArticleNotFound indicates no article has the requested id.
	ErrArticleNotFound = errors.New("article not found")
	// ErrEmptyQuery indicates a search with nothing to match.
	ErrEmptyQuery = errors.New("search query is empty")
)
