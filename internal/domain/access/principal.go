package access

// Principal is an already-authenticated actor. It is built by the identity
// adapter (JWT middleware) and never persisted here.
type Principal struct {
	Sub   string
	Email string
	Admin bool
}
