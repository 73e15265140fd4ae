package staff

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// SalaryRequest sets the base salary and optional allowance for a staff
// member.
type SalaryRequest struct {
	Amount          int64  `json:"amount"`
	Period          string `json:"period"`
	AllowanceAmount *int64 `json:"allowance_amount,omitempty"`
}

// PayoutRequest books a disbursement for a pay period.
type PayoutRequest struct {
	Type        string    `json:"type"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Reference   string    `json:"reference,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// GetSalaryAPI returns the staff member's salary configuration
func GetSalaryAPI(c *fiber.Ctx) error {
	staffID := c.Params("id")

	salary, err := database.GetStaffBaseSalary(config.GetDB(), staffID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "No salary configured"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load salary"})
	}

	allowance, err := database.GetStaffAllowance(config.GetDB(), staffID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load allowance"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"salary":    salary,
			"allowance": allowance,
		},
	})
}

// SetSalaryAPI records a new base salary configuration
func SetSalaryAPI(c *fiber.Ctx) error {
	var req SalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "amount must be greater than zero"})
	}

	period := models.SalaryPeriod(req.Period)
	switch period {
	case models.SalaryDay, models.SalaryWeek, models.SalaryMonth:
	case "":
		period = models.SalaryMonth
	default:
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown salary period " + req.Period})
	}

	if req.AllowanceAmount != nil && *req.AllowanceAmount < 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "allowance_amount cannot be negative"})
	}

	salary := &models.StaffBaseSalary{
		StaffID:       c.Params("id"),
		Amount:        req.Amount,
		Period:        period,
		EffectiveDate: time.Now(),
	}
	if err := database.SetStaffBaseSalary(config.GetDB(), salary); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to set salary"})
	}

	var allowance *models.StaffAllowance
	if req.AllowanceAmount != nil {
		allowance = &models.StaffAllowance{
			StaffID:       salary.StaffID,
			Amount:        *req.AllowanceAmount,
			Period:        period,
			EffectiveDate: salary.EffectiveDate,
		}
		if err := database.SetStaffAllowance(config.GetDB(), allowance); err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to set allowance"})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"salary":    salary,
			"allowance": allowance,
		},
	})
}

// GetPayoutsAPI lists payouts for a staff member
func GetPayoutsAPI(c *fiber.Ctx) error {
	payouts, err := database.GetStaffPayouts(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load payouts"})
	}
	return c.JSON(fiber.Map{"success": true, "data": payouts})
}

// CreatePayoutAPI books a payout computed from the salary configuration and
// records the matching Salaries expense
func CreatePayoutAPI(c *fiber.Ctx) error {
	staffID := c.Params("id")

	var req PayoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() || !req.PeriodEnd.After(req.PeriodStart) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "period_start must precede period_end"})
	}

	payoutType := models.PayoutType(req.Type)
	switch payoutType {
	case models.PayoutBaseSalary, models.PayoutAllowance, models.PayoutCombined:
	case "":
		payoutType = models.PayoutCombined
	default:
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown payout type " + req.Type})
	}

	member, err := database.GetStaffByID(config.GetDB(), staffID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Staff member not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load staff member"})
	}

	exists, err := database.PayoutExists(config.GetDB(), staffID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to check existing payouts"})
	}
	if exists {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "A payout already covers this period"})
	}

	var salary *models.StaffBaseSalary
	if payoutType == models.PayoutBaseSalary || payoutType == models.PayoutCombined {
		salary, err = database.GetStaffBaseSalary(config.GetDB(), staffID)
		if err != nil && err != sql.ErrNoRows {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load salary"})
		}
	}
	allowance, err := database.GetStaffAllowance(config.GetDB(), staffID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load allowance"})
	}

	amount, err := computePayoutAmount(payoutType, salary, allowance)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"success": false, "error": "No salary configured for this staff member"})
	}
	if amount <= 0 {
		return c.Status(422).JSON(fiber.Map{"success": false, "error": "Computed payout amount is zero"})
	}

	payout := &models.StaffPayout{
		StaffID:     staffID,
		Amount:      amount,
		Type:        payoutType,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Reference:   req.Reference,
		Notes:       req.Notes,
	}
	if err := database.CreateStaffPayout(config.GetDB(), payout, member.User.FullName()); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create payout"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": payout})
}

func computePayoutAmount(payoutType models.PayoutType, salary *models.StaffBaseSalary, allowance *models.StaffAllowance) (int64, error) {
	var amount int64

	if payoutType == models.PayoutBaseSalary || payoutType == models.PayoutCombined {
		if salary == nil {
			return 0, sql.ErrNoRows
		}
		amount += salary.Amount
	}

	if payoutType == models.PayoutAllowance || payoutType == models.PayoutCombined {
		if allowance != nil {
			amount += allowance.Amount
		} else if payoutType == models.PayoutAllowance {
			return 0, sql.ErrNoRows
		}
	}

	return amount, nil
}
