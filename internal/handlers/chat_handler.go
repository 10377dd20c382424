package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/jobscout/internal/dtos"
	"github.com/mkravets/jobscout/internal/models"
	"github.com/mkravets/jobscout/internal/services"
)

const defaultRoom = "general"

// ChatHandler serves the chat page and the JSON chat API. History is
// optional: with no database configured the chat still answers, it just
// forgets the exchange.
type ChatHandler struct {
	Chat    *services.ChatService
	History *services.HistoryService
}

func NewChatHandler(chat *services.ChatService, history *services.HistoryService) *ChatHandler {
	return &ChatHandler{Chat: chat, History: history}
}

// Page is the GET /chat page with the room's history.
func (h *ChatHandler) Page(c *gin.Context) {
	room := c.DefaultQuery("room", defaultRoom)
	c.HTML(http.StatusOK, "chat.html", gin.H{
		"room":    room,
		"history": h.history(room),
	})
}

// Post handles the chat form: run the answerer, persist the exchange,
// re-render the page.
func (h *ChatHandler) Post(c *gin.Context) {
	room := c.DefaultPostForm("room", defaultRoom)
	message := c.PostForm("message")
	if message == "" {
		c.Redirect(http.StatusSeeOther, "/chat?room="+room)
		return
	}

	answer, _, err := h.Chat.Answer(c.Request.Context(), message)
	if err != nil {
		log.Printf("[chat] answer failed: %v", err)
		answer = "Something went wrong while answering, please try again."
	}

	h.persist(room, message, answer)

	c.HTML(http.StatusOK, "chat.html", gin.H{
		"room":    room,
		"history": h.history(room),
	})
}

// PostJSON is the POST /api/v1/chat endpoint.
func (h *ChatHandler) PostJSON(c *gin.Context) {
	var req dtos.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.Room == "" {
		req.Room = defaultRoom
	}

	answer, docs, err := h.Chat.Answer(c.Request.Context(), req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Answer failed: " + err.Error()})
		return
	}

	h.persist(req.Room, req.Question, answer)

	sources := make([]string, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, doc.PageContent)
	}
	c.JSON(http.StatusOK, dtos.ChatResponse{Answer: answer, Sources: sources})
}

// Rooms is the GET /api/v1/rooms endpoint.
func (h *ChatHandler) Rooms(c *gin.Context) {
	if h.History == nil {
		c.JSON(http.StatusOK, []models.ChatRoom{})
		return
	}
	rooms, err := h.History.Rooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Listing rooms failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// DeleteRoom is the DELETE /api/v1/rooms/:name endpoint. Deleting an
// unknown room succeeds.
func (h *ChatHandler) DeleteRoom(c *gin.Context) {
	if h.History == nil {
		c.Status(http.StatusNoContent)
		return
	}
	if err := h.History.DeleteRoom(c.Param("name")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Deleting room failed: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) history(room string) []models.ChatMessage {
	if h.History == nil {
		return nil
	}
	messages, err := h.History.Messages(room)
	if err != nil {
		log.Printf("[chat] loading history for %q failed: %v", room, err)
		return nil
	}
	return messages
}

func (h *ChatHandler) persist(room, message, answer string) {
	if h.History == nil {
		return
	}
	if err := h.History.Append(room, message, answer); err != nil {
		log.Printf("[chat] persisting exchange in %q failed: %v", room, err)
	}
}
