package auth

type ContextKey string

// UserContextKey is the request-context key under which the middleware
// stores the authenticated user's id.
const UserContextKey ContextKey = "user_id"
