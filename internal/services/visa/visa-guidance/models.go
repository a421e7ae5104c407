// internal/services/visa/visa-guidance/models.go
package visaguidance

type Input struct {
	UserQuery string `json:"user_query"`
}

type Output struct {
	Reply string `json:"reply"`
}
