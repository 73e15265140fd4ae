package staff

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/validation"
)

// CreateStaffRequest combines the user account and employment profile fields.
type CreateStaffRequest struct {
	Email        string          `json:"email" validate:"required,email"`
	Password     string          `json:"password" validate:"required,min=8"`
	FirstName    string          `json:"first_name" validate:"required"`
	LastName     string          `json:"last_name" validate:"required"`
	Phone        string          `json:"phone,omitempty"`
	StaffNo      string          `json:"staff_no" validate:"required"`
	Position     string          `json:"position" validate:"required"`
	DepartmentID *string         `json:"department_id,omitempty" validate:"omitempty,uuid"`
	HireDate     models.DateOnly `json:"hire_date"`
	Role         string          `json:"role" validate:"omitempty,oneof=Admin Bursar Registrar Lecturer Staff"`
}

// GetStaffAPI lists active staff members
func GetStaffAPI(c *fiber.Ctx) error {
	members, err := database.GetAllStaff(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load staff"})
	}
	return c.JSON(fiber.Map{"success": true, "data": members})
}

// GetStaffByIDAPI returns one staff member
func GetStaffByIDAPI(c *fiber.Ctx) error {
	member, err := database.GetStaffByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Staff member not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load staff member"})
	}
	return c.JSON(fiber.Map{"success": true, "data": member})
}

// CreateStaffAPI creates a user account and staff profile together
func CreateStaffAPI(c *fiber.Ctx) error {
	var req CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Validation failed: " + err.Error()})
	}

	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to hash password"})
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	member := &models.Staff{
		StaffNo:      req.StaffNo,
		Position:     req.Position,
		DepartmentID: req.DepartmentID,
		HireDate:     req.HireDate,
	}

	if err := database.CreateStaff(config.GetDB(), user, member, role); err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"success": false, "error": "Email or staff number already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create staff member"})
	}
	member.User = user

	return c.Status(201).JSON(fiber.Map{"success": true, "data": member})
}
