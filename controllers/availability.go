package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/visitdesk/booking-engine/db"
	"github.com/visitdesk/booking-engine/models"
	"github.com/visitdesk/booking-engine/scheduler"
	"github.com/visitdesk/booking-engine/utils"
)

// BlockInput is one availability block in a day's replacement batch.
type BlockInput struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable *bool  `json:"is_available"`
}

// ReplaceDayRequest is the body of PUT /admin/availability/:dayOfWeek.
type ReplaceDayRequest struct {
	Blocks []BlockInput `json:"blocks"`
}

// ListAvailabilityBlocks returns the weekly template, optionally filtered
// to one day of week.
func ListAvailabilityBlocks(c *fiber.Ctx) error {
	query := db.DB.Order("day_of_week asc, start_time asc")
	if raw := c.Query("day_of_week"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil || !models.DayOfWeek(day).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "day_of_week must be an integer between 0 (Sunday) and 6 (Saturday)",
			})
		}
		query = query.Where("day_of_week = ?", day)
	}

	var blocks []models.AvailabilityBlock
	if err := query.Find(&blocks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability blocks",
			Error:   err.Error(),
		})
	}
	return c.JSON(blocks)
}

// ReplaceDayAvailability validates and applies one day's full block set.
// The batch is all-or-nothing: validation runs before any row is touched,
// and the delete-and-insert happens inside a single transaction so a
// concurrent reader never observes a half-applied day.
func ReplaceDayAvailability(c *fiber.Ctx) error {
	day, err := strconv.Atoi(c.Params("dayOfWeek"))
	if err != nil || !models.DayOfWeek(day).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "dayOfWeek must be an integer between 0 (Sunday) and 6 (Saturday)",
		})
	}

	var req ReplaceDayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	windows := make([]scheduler.Window, 0, len(req.Blocks))
	blocks := make([]models.AvailabilityBlock, 0, len(req.Blocks))
	for _, in := range req.Blocks {
		start, err := scheduler.ParseClock(in.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid block start time",
				Error:   err.Error(),
			})
		}
		end, err := scheduler.ParseClock(in.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid block end time",
				Error:   err.Error(),
			})
		}
		enabled := in.IsAvailable == nil || *in.IsAvailable

		windows = append(windows, scheduler.Window{Start: start, End: end, Enabled: enabled})
		blocks = append(blocks, models.AvailabilityBlock{
			DayOfWeek:   models.DayOfWeek(day),
			StartTime:   scheduler.FormatClock(start),
			EndTime:     scheduler.FormatClock(end),
			IsAvailable: enabled,
		})
	}

	if err := scheduler.ValidateDay(windows, utils.SlotDuration()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Availability blocks rejected",
			Error:   err.Error(),
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("day_of_week = ?", day).
			Delete(&models.AvailabilityBlock{}).Error; err != nil {
			return err
		}
		if len(blocks) == 0 {
			return nil
		}
		return tx.Create(&blocks).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save availability blocks",
			Error:   err.Error(),
		})
	}

	return c.JSON(blocks)
}

// DeleteAvailabilityBlock removes one recurring block by id.
func DeleteAvailabilityBlock(c *fiber.Ctx) error {
	id := c.Params("id")
	var block models.AvailabilityBlock
	if err := db.DB.First(&block, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability block not found",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Unscoped().Delete(&block).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete availability block",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
