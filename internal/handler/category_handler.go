package handler

import (
	"study-deck/internal/domain"
	"study-deck/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// GetCategories lists the fixed study categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /categories [get]
func GetCategories(c *fiber.Ctx) error {
	return c.JSON(dto.CategoriesResponse{
		Categories: domain.Categories(),
		Default:    domain.DefaultCategory,
	})
}
