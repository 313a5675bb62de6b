package contextkeys

type contextKey string

const (
	AdminSubjectKey contextKey = "AdminSubject"
	RequestIDKey    contextKey = "RequestID"
)
