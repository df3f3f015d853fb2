package dto

// Realtime event actions by convention; the server does not enforce the set.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// TransactionEvent is the single event type carried on the per-user
// realtime channel whenever one of the user's transactions mutates.
// Both fields are optional on the wire.
type TransactionEvent struct {
	TransactionID string `json:"transactionId,omitempty"`
	Action        string `json:"action,omitempty"`
}

// SignInRequest is the credential payload accepted by the stub server.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse carries the bearer token minted for a stub session.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}
