package model

// ChatTurn is one question/answer pair in the assistant log, oldest first.
type ChatTurn struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

// PendingResponse is shown until the server reply overwrites it.
const PendingResponse = "..."
