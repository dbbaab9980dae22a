package authenticator

type TokenEngine[T any] interface {
	// Generate signs a token whose subject is sub and whose payload is obj.
	Generate(sub string, obj T) (string, error)

	// Verify checks the signature and expiration of token, then returns the
	// payload embedded in it.
	Verify(token string) (T, error)
}
