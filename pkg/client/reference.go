package client

import "context"

// Branch is an office location selectable on the shipment form.
type Branch struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Staff is a payroll record selectable as the responsible staff member.
type Staff struct {
	ID           uint   `json:"ID"`
	EmployeeName string `json:"employeeName"`
	Branch       string `json:"branch"`
	EmployeeRole string `json:"employeeRole"`
}

// Rider is a delivery rider selectable on the shipment form.
type Rider struct {
	ID          uint   `json:"ID"`
	RiderName   string `json:"riderName"`
	VehicleType string `json:"vehicleType"`
	PlateNumber string `json:"plateNumber"`
}

// Customer is a registered sender.
type Customer struct {
	ID          uint   `json:"ID"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// Resource names one independently fetched reference set.
type Resource string

const (
	ResourceCategories Resource = "categories"
	ResourceBranches   Resource = "branches"
	ResourceStaff      Resource = "staff"
	ResourceRiders     Resource = "riders"
)

// ReferenceData holds whatever reference sets could be loaded for a form
// session. A failed resource leaves its slice empty and records an error;
// the other resources are unaffected.
type ReferenceData struct {
	CategoryNames []string
	Branches      []Branch
	Staff         []Staff
	Riders        []Rider
	Errors        map[Resource]error
}

// Err returns the load error for one resource, or nil.
func (r *ReferenceData) Err(res Resource) error {
	return r.Errors[res]
}

// CategoryNames returns the deduplicated union of category names across all
// price documents, in first-seen order.
func (c *Client) CategoryNames(ctx context.Context) ([]string, error) {
	var prices []struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	if err := c.get(ctx, "/prices", &prices); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, price := range prices {
		for _, cat := range price.Categories {
			if cat.Name == "" || seen[cat.Name] {
				continue
			}
			seen[cat.Name] = true
			names = append(names, cat.Name)
		}
	}
	return names, nil
}

// Branches lists all branches.
func (c *Client) Branches(ctx context.Context) ([]Branch, error) {
	var branches []Branch
	if err := c.get(ctx, "/branch", &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// Staff lists all payroll records.
func (c *Client) Staff(ctx context.Context) ([]Staff, error) {
	var staff []Staff
	if err := c.get(ctx, "/payroll", &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Riders lists all riders.
func (c *Client) Riders(ctx context.Context) ([]Rider, error) {
	var riders []Rider
	if err := c.get(ctx, "/riders", &riders); err != nil {
		return nil, err
	}
	return riders, nil
}

// CustomerByPhone resolves a sender by phone number. A miss surfaces as
// ErrNotFound.
func (c *Client) CustomerByPhone(ctx context.Context, phoneNumber string) (*Customer, error) {
	var customer Customer
	if err := c.get(ctx, "/customers/phone/"+phoneNumber, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// LoadReferenceData fetches every reference set a shipment form needs.
// Each fetch fails independently: a broken resource records an error and
// leaves the rest usable.
func (c *Client) LoadReferenceData(ctx context.Context) *ReferenceData {
	data := &ReferenceData{Errors: make(map[Resource]error)}

	if names, err := c.CategoryNames(ctx); err != nil {
		data.Errors[ResourceCategories] = err
	} else {
		data.CategoryNames = names
	}
	if branches, err := c.Branches(ctx); err != nil {
		data.Errors[ResourceBranches] = err
	} else {
		data.Branches = branches
	}
	if staff, err := c.Staff(ctx); err != nil {
		data.Errors[ResourceStaff] = err
	} else {
		data.Staff = staff
	}
	if riders, err := c.Riders(ctx); err != nil {
		data.Errors[ResourceRiders] = err
	} else {
		data.Riders = riders
	}

	return data
}
