package handler

// ErrorBody is the envelope for authentication, routing and binding failures.
type ErrorBody struct {
	Error string `json:"error" example:"invalid token"`
}

// MessageBody is the envelope for domain failures.
type MessageBody struct {
	Message string `json:"message" example:"post not found"`
}
