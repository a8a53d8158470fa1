package validate

import (
	"flight_desk/model"
	"flight_desk/utils"

	"github.com/gofiber/fiber/v2"
)

func flightID(in model.FlightInput) uint { return in.ID }

// normalizeDate accepts the layouts date pickers send and rewrites them as
// YYYY-MM-DD before the datetime check runs.
func normalizeDate(in *model.FlightInput) {
	in.DateOut = utils.NormalizeDate(in.DateOut)
}

func CreateFlight() fiber.Handler {
	return body(false, flightID, normalizeDate)
}

func UpdateFlight() fiber.Handler {
	return body(true, flightID, normalizeDate)
}
