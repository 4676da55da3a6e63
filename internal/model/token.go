package model

// TokenManager issues and validates bearer access tokens. Tokens are issued by
// the campus auth service; this process only needs to validate them, issuing
// exists for tooling and tests.
type TokenManager interface {
	GenerateAccessToken(subjectID int64) (string, error)
	ParseAccessToken(token string) (int64, error)
}
