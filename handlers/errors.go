package handlers

import (
	"net/http"

	"busfleet/services/booking"
	"busfleet/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status and writes the body.
func respondError(c *gin.Context, err error) {
	switch {
	case booking.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case booking.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case booking.IsInvalidState(err):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Operation not allowed", err.Error())
	case booking.IsConflict(err):
		if seats := booking.ConflictSeats(err); len(seats) > 0 {
			utils.JSONSeatConflict(c, err.Error(), seats)
			return
		}
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

func respondBindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}
