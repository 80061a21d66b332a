package accountController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"vegholic-api/controllers/requests"
	"vegholic-api/responses"
	"vegholic-api/services/profile"
)

type Controller struct {
	profiles *profile.Service
	timeout  time.Duration
}

func New(profiles *profile.Service, timeout time.Duration) *Controller {
	return &Controller{profiles: profiles, timeout: timeout}
}

func (ctl *Controller) GetUserProfile(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	userID, err := requests.UserID(c, c.Query("user_id"))
	if err != nil {
		return responses.Error(c, err)
	}
	p, err := ctl.profiles.Get(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Profile fetched", fiber.Map{
		"user":          p.User,
		"addresses":     p.Addresses,
		"recent_orders": p.RecentOrders,
	})
}

func (ctl *Controller) UpdateUserProfile(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	var reqBody struct {
		UserID string `json:"user_id"`
		profile.Update
	}
	if err := requests.Bind(c, &reqBody); err != nil {
		return responses.Error(c, err)
	}
	userID, err := requests.UserID(c, reqBody.UserID)
	if err != nil {
		return responses.Error(c, err)
	}

	user, err := ctl.profiles.Update(ctx, userID, reqBody.Update)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Profile updated", fiber.Map{"user": user})
}
