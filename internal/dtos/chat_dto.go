package dtos

type ChatRequest struct {
	Question string `json:"question" binding:"required"`
	Room     string `json:"room"`
}

type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}
