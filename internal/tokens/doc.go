/*
Package tokens mints short random identifiers that are unique within a
(table, column) pair.

# Generation

A candidate is the first length characters of the iterated hash of a fresh
salt. The Oracle is asked whether the candidate already exists; on a
collision a new candidate is drawn:

	g := tokens.NewGenerator(oracle, randx.Default, logger)
	tok, err := g.Generate(ctx, "accounts", "user_hash", tokens.DefaultLength)

The loop is bounded by the generator's maximum attempt count. When every
attempt collides Generate returns common.ErrExhaustedAttempts; when the
oracle fails it returns common.ErrOracleUnavailable without retrying.

# Races

Generate is a check-then-act sequence. Another writer may insert the same
value between the oracle answer and the caller's insert. Uniqueness is only
guaranteed when the storage layer enforces it with a constraint. Reserve
closes the gap by regenerating whenever the insert reports a unique
violation:

	tok, err := g.Reserve(ctx, "api_keys", "token", 32, func(ctx context.Context, tok string) error {
		return repo.Create(ctx, &models.APIKey{Token: tok, AccountID: id})
	})
*/
package tokens
