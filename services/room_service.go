package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lodge-backend/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) ListByLodge(lodgeID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Where("lodge_id = ?", lodgeID).Order("price ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Create(lodgeID uint, room *models.Room) error {
	if !models.ValidRoomType(room.Type) {
		return errors.New("validation: unknown room type")
	}
	if room.Available < 0 {
		return errors.New("validation: available cannot be negative")
	}

	var lodge models.Lodge
	if err := s.DB.First(&lodge, lodgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("lodge_not_found")
		}
		return fmt.Errorf("db error checking lodge %d: %w", lodgeID, err)
	}

	room.LodgeID = lodgeID
	if err := s.DB.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// Update edits the room's descriptive fields. The available counter is
// deliberately excluded; stock moves only through the booking lifecycle.
func (s *RoomService) Update(id uint, updates map[string]interface{}) (*models.Room, error) {
	delete(updates, "available")
	if t, ok := updates["type"].(string); ok && !models.ValidRoomType(t) {
		return nil, errors.New("validation: unknown room type")
	}

	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("room_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve room: %w", err)
	}

	if err := s.DB.Model(&room).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	if err := s.DB.First(&room, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload room: %w", err)
	}
	return &room, nil
}

// SetStock is the explicit admin override for the availability counter.
func (s *RoomService) SetStock(id uint, available int) (*models.Room, error) {
	if available < 0 {
		return nil, errors.New("validation: available cannot be negative")
	}
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("room_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve room: %w", err)
	}
	if err := s.DB.Model(&room).UpdateColumn("available", available).Error; err != nil {
		return nil, fmt.Errorf("failed to set stock: %w", err)
	}
	room.Available = available
	return &room, nil
}

func (s *RoomService) Delete(id uint) error {
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("room_not_found")
	}
	return nil
}
