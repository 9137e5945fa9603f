package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/royalcourier/backoffice-backend/internal/models"
	"gorm.io/gorm"
)

type PayrollInput struct {
	EmployeeName    string  `json:"employeeName" binding:"required"`
	Branch          string  `json:"branch" binding:"required"`
	EmployeeRole    string  `json:"employeeRole" binding:"required"`
	PayPeriod       string  `json:"payPeriod" binding:"required"`
	BasicSalary     float64 `json:"basicSalary" binding:"required"`
	OvertimePay     float64 `json:"overtimePay"`
	Bonuses         float64 `json:"bonuses"`
	TaxDeductions   float64 `json:"taxDeductions"`
	OtherDeductions float64 `json:"otherDeductions"`
}

func (in *PayrollInput) validate() string {
	if !models.ValidEmployeeRole(in.EmployeeRole) {
		return "Invalid employee role"
	}
	if !models.ValidPayPeriod(in.PayPeriod) {
		return "Invalid pay period"
	}
	if in.BasicSalary < 0 || in.OvertimePay < 0 || in.Bonuses < 0 || in.TaxDeductions < 0 || in.OtherDeductions < 0 {
		return "Pay components must be non-negative"
	}
	return ""
}

// GetPayrolls lists all staff payroll records
func GetPayrolls(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payrolls []models.Payroll
		if err := db.Order("employee_name ASC").Find(&payrolls).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payrolls"})
			return
		}

		c.JSON(200, payrolls)
	}
}

// CreatePayroll adds a staff record. Derived pay fields are computed here;
// anything the client sent for them is ignored.
func CreatePayroll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PayrollInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if msg := input.validate(); msg != "" {
			c.JSON(400, gin.H{"error": msg})
			return
		}

		var branch models.Branch
		if result := db.Where("name = ?", input.Branch).First(&branch); result.Error != nil {
			c.JSON(400, gin.H{"error": "Unknown branch"})
			return
		}

		payroll := models.Payroll{
			EmployeeName:    input.EmployeeName,
			Branch:          input.Branch,
			EmployeeRole:    input.EmployeeRole,
			PayPeriod:       input.PayPeriod,
			BasicSalary:     input.BasicSalary,
			OvertimePay:     input.OvertimePay,
			Bonuses:         input.Bonuses,
			TaxDeductions:   input.TaxDeductions,
			OtherDeductions: input.OtherDeductions,
		}

		if err := db.Create(&payroll).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create payroll"})
			return
		}

		c.JSON(201, gin.H{"payroll": payroll})
	}
}

// UpdatePayroll edits a staff record and recomputes the derived fields
func UpdatePayroll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payroll models.Payroll
		if err := db.First(&payroll, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Payroll not found"})
			return
		}

		var input PayrollInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if msg := input.validate(); msg != "" {
			c.JSON(400, gin.H{"error": msg})
			return
		}

		payroll.EmployeeName = input.EmployeeName
		payroll.Branch = input.Branch
		payroll.EmployeeRole = input.EmployeeRole
		payroll.PayPeriod = input.PayPeriod
		payroll.BasicSalary = input.BasicSalary
		payroll.OvertimePay = input.OvertimePay
		payroll.Bonuses = input.Bonuses
		payroll.TaxDeductions = input.TaxDeductions
		payroll.OtherDeductions = input.OtherDeductions

		if err := db.Save(&payroll).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update payroll"})
			return
		}

		c.JSON(200, payroll)
	}
}

// DeletePayroll removes a staff record
func DeletePayroll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Payroll{}, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete payroll"})
			return
		}

		c.JSON(200, gin.H{"message": "Payroll deleted successfully"})
	}
}
