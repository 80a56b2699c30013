package assistant

import "encoding/json"

// MaxHistory is how many messages a visitor's conversation keeps.
const MaxHistory = 20

// Append adds messages and drops the oldest beyond MaxHistory.
func Append(history []Message, msgs ...Message) []Message {
	history = append(history, msgs...)
	if len(history) > MaxHistory {
		history = append([]Message(nil), history[len(history)-MaxHistory:]...)
	}
	return history
}

// EncodeHistory and DecodeHistory store a conversation as session bytes.
func EncodeHistory(history []Message) ([]byte, error) {
	return json.Marshal(history)
}

// DecodeHistory treats missing or unreadable data as an empty conversation.
func DecodeHistory(raw []byte) []Message {
	if len(raw) == 0 {
		return nil
	}
	var history []Message
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil
	}
	return history
}
