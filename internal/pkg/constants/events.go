package constants

// Notification event names
const (
	EventNewRequest          = "new_request"
	EventNewOffer            = "new_offer"
	EventOfferAccepted       = "offer_accepted"
	EventRequestStatusUpdate = "request_status_update"
)

// WebSocket control events
const (
	EventError = "error"
	EventPing  = "ping"
	EventPong  = "pong"
)

// WebSocket error codes
const (
	ErrorInvalidFormat = "invalid_format"
	ErrorUnauthorized  = "unauthorized"
	ErrorInternalError = "internal_error"
)
