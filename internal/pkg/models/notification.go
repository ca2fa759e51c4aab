package models

// Notification is the event envelope delivered to subscribers.
// Data is a structured payload keyed by event field names.
type Notification struct {
	Event   string                 `json:"event"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

// ChannelNotification is a notification bound to a logical channel,
// as carried on the wire between publisher and fan-out subscriber
type ChannelNotification struct {
	Channel      string       `json:"channel"`
	Notification Notification `json:"notification"`
}
