package models

// Resource statuses. Checked-out resources carry a derived status string
// that names the borrower.
const (
	ResourceAvailable   = "Available"
	ResourceMaintenance = "Maintenance"
)

// Resource is a checkable item such as a book or a piece of lab equipment.
type Resource struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	CheckedOutBy string `json:"checked_out_by,omitempty"`
}

// CheckOut records the borrowing student and derives the status.
func (r *Resource) CheckOut(studentID string) {
	r.CheckedOutBy = studentID
	r.Status = "Checked Out to " + studentID
}

// Return clears the borrower and marks the resource available. Returning
// an already available resource is a no-op.
func (r *Resource) Return() {
	r.CheckedOutBy = ""
	r.Status = ResourceAvailable
}

// IsCheckedOut reports whether the resource is currently borrowed.
func (r *Resource) IsCheckedOut() bool {
	return r.CheckedOutBy != ""
}
