package session

import (
	"strings"

	"ecoacustica/internal/services"
)

// Identity is the authenticated user context. Immutable while active.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Verifier validates credentials and resolves them to an identity.
type Verifier interface {
	Verify(email, credential string) (Identity, error)
}

type account struct {
	identity   Identity
	credential string
}

// StaticVerifier matches credentials against a fixed set of known accounts.
type StaticVerifier struct {
	accounts []account
}

// NewStaticVerifier returns a verifier loaded with the built-in demo accounts.
func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{accounts: []account{
		{
			identity: Identity{
				ID:    "user_1",
				Name:  "Dr. María González",
				Email: "admin@ecoacustica.com",
				Role:  "Administradora",
			},
			credential: "password123",
		},
		{
			identity: Identity{
				ID:    "user_2",
				Name:  "Dr. Carlos Mendoza",
				Email: "researcher@ecoacustica.com",
				Role:  "Investigador",
			},
			credential: "research123",
		},
		{
			identity: Identity{
				ID:    "user_3",
				Name:  "Ana Rodríguez",
				Email: "student@ecoacustica.com",
				Role:  "Estudiante",
			},
			credential: "student123",
		},
	}}
}

// Verify returns the identity for an exact email/credential match.
func (v *StaticVerifier) Verify(email, credential string) (Identity, error) {
	email = strings.TrimSpace(email)
	for _, acct := range v.accounts {
		if acct.identity.Email == email && acct.credential == credential {
			return acct.identity, nil
		}
	}
	return Identity{}, services.Wrap(services.ErrAuthenticationFailed, "session", "verify", "no matching credential", nil)
}
