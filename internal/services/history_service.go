package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mkravets/jobscout/internal/models"
)

// HistoryService persists chat exchanges per room. It is a collaborator of
// the web layer, not of the ingestion pipeline.
type HistoryService struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{DB: db}
}

// Append stores one question/answer exchange, creating the room if it
// does not exist yet.
func (s *HistoryService) Append(roomName, userMessage, botResponse string) error {
	var room models.ChatRoom
	// creates the room on first use
	if err := s.DB.Where(models.ChatRoom{Name: roomName}).FirstOrCreate(&room).Error; err != nil {
		return err
	}

	message := &models.ChatMessage{
		ChatRoomID:  room.ID,
		UserMessage: userMessage,
		BotResponse: botResponse,
	}
	return s.DB.Create(message).Error
}

// Messages returns the room's exchanges, oldest first. An unknown room
// yields an empty history.
func (s *HistoryService) Messages(roomName string) ([]models.ChatMessage, error) {
	var room models.ChatRoom
	err := s.DB.Preload("Messages").Where(models.ChatRoom{Name: roomName}).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return room.Messages, nil
}

func (s *HistoryService) Rooms() ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	if err := s.DB.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *HistoryService) DeleteRoom(roomName string) error {
	var room models.ChatRoom
	err := s.DB.Where(models.ChatRoom{Name: roomName}).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.DB.Where("chat_room_id = ?", room.ID).Delete(&models.ChatMessage{}).Error; err != nil {
		return err
	}
	return s.DB.Delete(&room).Error
}
