package domain

// ChatMessage keeps a snapshot of the sender's name so it survives the sender leaving.
type ChatMessage struct {
	ID         string `json:"id"`
	Timestamp  int64  `json:"ts"`
	SenderName string `json:"name"`
	Text       string `json:"text"`
}
