// internal/services/chatbot/student-chat/models.go
package studentchat

type Input struct {
	UserQuery string `json:"user_query"`
}

type Output struct {
	Reply string `json:"reply"`
}
