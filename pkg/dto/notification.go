package dto

type BroadcastRequest struct {
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Data    map[string]string `json:"data"`
}

type BroadcastResponse struct {
	Sent int `json:"sent"`
}
