package handler

import (
	"errors"
	"flight_desk/constants"
	"flight_desk/desk"
	"flight_desk/helper"
	"flight_desk/model"
	"flight_desk/utils"

	"github.com/gofiber/fiber/v2"
)

func list(c *fiber.Ctx, kind desk.Kind) error {
	rows, total, err := helper.Store.List(c.UserContext(), kind)
	if err != nil {
		return utils.ErrorResponse(c, helper.StatusOf(err), constants.LOAD_FAILED, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       rows,
		TotalCount: int64(total),
	})
}

func getById(c *fiber.Ctx, kind desk.Kind) error {
	id, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
	}
	item, err := helper.Store.Get(c.UserContext(), kind, id)
	if err != nil {
		status := helper.StatusOf(err)
		message := constants.ERROR_INTERNAL_ERROR
		if status == fiber.StatusNotFound {
			message = constants.NOT_FOUND
		}
		return utils.ErrorResponse(c, status, message, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

type mutation func(c *fiber.Ctx, kind desk.Kind, payload any) (desk.Response, error)

func create(c *fiber.Ctx, kind desk.Kind, payload any) (desk.Response, error) {
	return helper.Store.Create(c.UserContext(), kind, payload)
}

func update(c *fiber.Ctx, kind desk.Kind, payload any) (desk.Response, error) {
	return helper.Store.Update(c.UserContext(), kind, payload)
}

// mutate runs the validated input stored by the validate middleware through
// the catalog and answers with the catalog's status.
func mutate[T any](c *fiber.Ctx, kind desk.Kind, run mutation, failed string) error {
	input, ok := c.Locals("input").(T)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	resp, err := run(c, kind, input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, failed, err)
	}
	if resp.Status != desk.StatusOK {
		cause, _ := resp.Body.(error)
		return utils.ErrorResponse(c, resp.Status, failed, cause)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, resp.Body)
}
