// Package types provides the wire types shared by the gateway, the upstream
// provider client and the streaming relay.
package types

// Role constants for message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message sent upstream. Only plain-text content
// is ever produced by this service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
