package constants

const (
	ErrorBadRequest       = "Bad Request"
	ErrorInternal         = "Internal Service Error"
	ErrorNotAuthenticated = "Not Authenticated"
	ErrorForbidden        = "Forbidden"
	ErrorNotFound         = "Not found"
	ErrorMissingFields    = "Missing required fields"
	ErrorEmailInUse       = "Email in use"
	ErrorAlreadyJoined    = "Already joined this queue"
	ErrorNotInQueue       = "Not in this queue"
	ErrorQueuePaused      = "Queue is not accepting new members"
	ErrorQueueFull        = "Queue is at capacity"
	ErrorDuplicateReview  = "Queue already reviewed"
	ErrorInvalidReview    = "Rating must be between 1 and 5"
	ErrorPaymentRequired  = "Payment required to join this queue"
	ErrorPaymentInvalid   = "Payment not captured or amount mismatch"
)
