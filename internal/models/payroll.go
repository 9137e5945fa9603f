package models

import "gorm.io/gorm"

type EmployeeRole string

const (
	RoleDriver     EmployeeRole = "Driver"
	RoleWarehouse  EmployeeRole = "Warehouse"
	RoleOperations EmployeeRole = "Operations"
	RoleAdmin      EmployeeRole = "Admin"
	RoleSales      EmployeeRole = "Sales"
	RoleLogistics  EmployeeRole = "Logistics"
	RoleManager    EmployeeRole = "Manager"
	RoleAccountant EmployeeRole = "Accountant"
)

type PayPeriod string

const (
	PayPeriodWeekly     PayPeriod = "weekly"
	PayPeriodEndOfMonth PayPeriod = "endOfMonth"
)

// Payroll is a staff record. The derived fields (grossPay, totalDeductions,
// netPay) are stored denormalized but are recomputed in BeforeSave, so a
// client payload can never put them out of step with the pay components.
type Payroll struct {
	gorm.Model
	EmployeeName    string  `json:"employeeName" gorm:"column:employee_name;not null"`
	Branch          string  `json:"branch" gorm:"not null"`
	EmployeeRole    string  `json:"employeeRole" gorm:"column:employee_role;not null"`
	PayPeriod       string  `json:"payPeriod" gorm:"column:pay_period;not null"`
	BasicSalary     float64 `json:"basicSalary" gorm:"column:basic_salary;not null"`
	OvertimePay     float64 `json:"overtimePay" gorm:"column:overtime_pay;not null;default:0"`
	Bonuses         float64 `json:"bonuses" gorm:"not null;default:0"`
	TaxDeductions   float64 `json:"taxDeductions" gorm:"column:tax_deductions;not null;default:0"`
	OtherDeductions float64 `json:"otherDeductions" gorm:"column:other_deductions;not null;default:0"`
	GrossPay        float64 `json:"grossPay" gorm:"column:gross_pay;not null"`
	TotalDeductions float64 `json:"totalDeductions" gorm:"column:total_deductions;not null"`
	NetPay          float64 `json:"netPay" gorm:"column:net_pay;not null"`
}

// TableName specifies the table name
func (Payroll) TableName() string {
	return "payrolls"
}

// Recalculate refreshes the derived pay fields from the pay components.
func (p *Payroll) Recalculate() {
	p.GrossPay = p.BasicSalary + p.OvertimePay + p.Bonuses
	p.TotalDeductions = p.TaxDeductions + p.OtherDeductions
	p.NetPay = p.GrossPay - p.TotalDeductions
}

func (p *Payroll) BeforeSave(tx *gorm.DB) error {
	p.Recalculate()
	return nil
}

// ValidEmployeeRole reports whether role is one of the known staff roles.
func ValidEmployeeRole(role string) bool {
	switch EmployeeRole(role) {
	case RoleDriver, RoleWarehouse, RoleOperations, RoleAdmin, RoleSales, RoleLogistics, RoleManager, RoleAccountant:
		return true
	}
	return false
}

// ValidPayPeriod reports whether period is a known pay period.
func ValidPayPeriod(period string) bool {
	return PayPeriod(period) == PayPeriodWeekly || PayPeriod(period) == PayPeriodEndOfMonth
}
