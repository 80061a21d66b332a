package userController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"vegholic-api/controllers/requests"
	"vegholic-api/responses"
	"vegholic-api/services/auth"
)

type OTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"otp" validate:"required"`
	Name  string `json:"name"`
}

type Controller struct {
	auth    *auth.Service
	timeout time.Duration
}

func New(service *auth.Service, timeout time.Duration) *Controller {
	return &Controller{auth: service, timeout: timeout}
}

func (ctl *Controller) RequestOTP(c *fiber.Ctx) error {
	var request OTPRequest
	if err := requests.Bind(c, &request); err != nil {
		return responses.Error(c, err)
	}
	challenge, err := ctl.auth.RequestOTP(request.Phone)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, challenge.Message, fiber.Map{"phone": challenge.Phone, "otp": challenge.OTP})
}

func (ctl *Controller) VerifyOTP(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	var request VerifyOTPRequest
	if err := requests.Bind(c, &request); err != nil {
		return responses.Error(c, err)
	}
	session, err := ctl.auth.VerifyOTP(ctx, request.Phone, request.Code, request.Name)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Logged in", fiber.Map{"user_id": session.UserID, "token": session.Token})
}
