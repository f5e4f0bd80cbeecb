package repositories

// QueryOptions selects the optional parts of the article read queries.
type QueryOptions struct {
	// WithAuthor left-joins users to expose the author's display name.
	WithAuthor bool
	// WithImages adds the has_images existence check and enables the image table.
	WithImages bool
}
