package dict

import "context"

// Querier is the set of lookups a session offers to its callers.
type Querier interface {
	// Databases returns the server's databases. The list is fetched once
	// per session.
	Databases(ctx context.Context) ([]Database, error)

	// Strategies returns the server's matching strategies.
	Strategies(ctx context.Context) ([]Strategy, error)

	// Match returns the words of database matching word under strategy.
	Match(ctx context.Context, word, strategy, database string) ([]string, error)

	// Define returns the definitions of word found in database.
	Define(ctx context.Context, word, database string) ([]Definition, error)

	Close()
}
