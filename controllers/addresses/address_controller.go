package addressController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"vegholic-api/controllers/requests"
	"vegholic-api/models"
	"vegholic-api/responses"
	"vegholic-api/services/addresses"
)

type AddAddressRequest struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name" validate:"required"`
	Mobile    string `json:"mobile" validate:"required"`
	Pincode   string `json:"pincode" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	IsDefault bool   `json:"is_default"`
}

type Controller struct {
	addresses *addresses.Manager
	timeout   time.Duration
}

func New(manager *addresses.Manager, timeout time.Duration) *Controller {
	return &Controller{addresses: manager, timeout: timeout}
}

func (ctl *Controller) GetAddresses(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	userID, err := requests.UserID(c, c.Query("user_id"))
	if err != nil {
		return responses.Error(c, err)
	}
	list, err := ctl.addresses.List(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Addresses fetched", fiber.Map{"addresses": list})
}

func (ctl *Controller) AddAddress(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	var request AddAddressRequest
	if err := requests.Bind(c, &request); err != nil {
		return responses.Error(c, err)
	}
	userID, err := requests.UserID(c, request.UserID)
	if err != nil {
		return responses.Error(c, err)
	}

	addressID, err := ctl.addresses.Create(ctx, models.Address{
		UserID:    userID,
		Name:      request.Name,
		Mobile:    request.Mobile,
		Pincode:   request.Pincode,
		Street:    request.Street,
		City:      request.City,
		IsDefault: request.IsDefault,
	})
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.Created(c, "Address added", fiber.Map{"address_id": addressID})
}

func (ctl *Controller) EditAddress(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	var patch models.AddressPatch
	if err := requests.Bind(c, &patch); err != nil {
		return responses.Error(c, err)
	}
	if err := ctl.addresses.Update(ctx, c.Params("id"), patch); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Address updated", fiber.Map{"address_id": c.Params("id")})
}

func (ctl *Controller) DeleteAddress(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	if err := ctl.addresses.Delete(ctx, c.Params("id")); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Address deleted", fiber.Map{"address_id": c.Params("id")})
}
