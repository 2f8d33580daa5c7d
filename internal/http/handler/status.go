package handler

import (
	"github.com/gofiber/fiber/v2"

	"rosapi/internal/model"
)

// processingStatusCode maps create and update outcomes. Anything outside the
// success set, including values this build does not know, is a 500.
func processingStatusCode(s model.ProcessingStatus) int {
	switch s {
	case model.ProcessingCreatedROS, model.ProcessingUpdatedROS:
		return fiber.StatusOK
	default:
		return fiber.StatusInternalServerError
	}
}

func simpleStatusCode(s model.SimpleStatus) int {
	if s == model.SimpleSuccess {
		return fiber.StatusOK
	}
	return fiber.StatusInternalServerError
}

// successfulResults keeps the items with ContentSuccess in their original order.
func successfulResults(results []model.ROSResult) []model.ROSResult {
	out := make([]model.ROSResult, 0, len(results))
	for _, r := range results {
		if r.Status == model.ContentSuccess {
			out = append(out, r)
		}
	}
	return out
}
