package domain

// Department is an organizational unit that owns tickets and staff.
type Department struct {
	ID                    string   `json:"_id,omitempty"`
	DepartmentName        string   `json:"departmentName"`
	DepartmentDescription string   `json:"departmentDescription"`
	PhoneNumber           string   `json:"phoneNumber"`
	EmailAddress          string   `json:"emailAddress"`
	DepartmentHeadID      string   `json:"departmentHeadID,omitempty"`
	OperatingHours        string   `json:"operatingHours"`
	AppointmentReasons    []string `json:"appointmentReasons"`
}

// DepartmentNames indexes department names by id.
func DepartmentNames(departments []Department) map[string]string {
	names := make(map[string]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.DepartmentName
	}
	return names
}
