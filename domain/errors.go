// ABOUTME: Domain-level sentinel errors for the news-explainer service
// ABOUTME: These errors are used with errors.Is() for error type checking
package domain

import "errors"

// Resolution errors
var (
	// ErrInvalidURL indicates the submitted URL is not a well-formed absolute URL
	ErrInvalidURL = errors.New("invalid article URL")

	// ErrUnauthenticated indicates generation was requested without an authenticated user
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrArticleNotFound indicates the requested article does not exist
	ErrArticleNotFound = errors.New("article not found")

	// ErrExplanationNotFound indicates no explanation exists for the article
	ErrExplanationNotFound = errors.New("explanation not found")
)

// External boundary errors
var (
	// ErrFetchFailed indicates the source page could not be retrieved or parsed
	ErrFetchFailed = errors.New("failed to fetch article content")

	// ErrGenerationFailed indicates the model call failed or returned unusable output
	ErrGenerationFailed = errors.New("failed to generate explanation")

	// ErrMalformedExplanation indicates the generator returned output that does
	// not satisfy the expected structure. Persisted never; failed closed.
	ErrMalformedExplanation = errors.New("generator output failed validation")
)

// Authorization errors
var (
	// ErrForbidden indicates the acting user lacks the required capability
	ErrForbidden = errors.New("operation not permitted")
)
