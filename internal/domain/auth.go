package domain

// Token subject used by the external scheduler when triggering a sweep.
const SchedulerSubject = "lifecycle-scheduler"

// TokenVerifier verifies a bearer token and returns its subject.
// Tokens are issued by the external auth collaborator.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
