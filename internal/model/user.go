package model

// User owns exactly one ledger in the multi-user layout. Credential holds a
// bcrypt hash; older files may still carry the plain secret.
type User struct {
	Name       string
	Credential string
}
