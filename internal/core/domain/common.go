package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// The server owns these; the client only displays them.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
