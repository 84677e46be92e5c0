// ABOUTME: Request and response types for the HirePrep portal API
// ABOUTME: Mirrors the gateway JSON contract field for field

package client

// LoginRequest carries credentials for POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields for POST /api/auth/register
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ErrorResponse represents a portal error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// Address is a postal address on a profile
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

// Education is one qualification entry on a student profile
type Education struct {
	ID             int64   `json:"id,omitempty"`
	Level          string  `json:"level"`
	SchoolName     string  `json:"schoolName"`
	Board          string  `json:"board,omitempty"`
	StartYear      int     `json:"startYear,omitempty"`
	CompletionYear int     `json:"completionYear"`
	Percentage     float64 `json:"percentage,omitempty"`
	CGPA           float64 `json:"cgpa,omitempty"`
}

// ProfileSummary is the short form used for mentor and faculty listings
type ProfileSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

// Profile is the full profile object. Student and faculty profiles share the
// common fields; the role-specific ones are zero for the other role.
type Profile struct {
	Username         string          `json:"username"`
	Email            string          `json:"email"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	PhoneNumber      string          `json:"phoneNumber"`
	Role             string          `json:"role"`
	Gender           string          `json:"gender"`
	PresentAddress   *Address        `json:"presentAddress,omitempty"`
	PermanentAddress *Address        `json:"permanentAddress,omitempty"`
	Education        []Education     `json:"education,omitempty"`
	Experience       string          `json:"experience,omitempty"`
	Disabilities     string          `json:"disabilities,omitempty"`
	ResumePath       string          `json:"resumePath,omitempty"`
	Mentor           *ProfileSummary `json:"mentor,omitempty"`
	Department       string          `json:"department,omitempty"`
	EmployeeID       string          `json:"employeeId,omitempty"`
}

// ProfileUpdate is the role-dependent subset sent on PUT /api/profile/{username}
type ProfileUpdate struct {
	Email            string      `json:"email,omitempty"`
	FirstName        string      `json:"firstName,omitempty"`
	LastName         string      `json:"lastName,omitempty"`
	PhoneNumber      string      `json:"phoneNumber,omitempty"`
	Gender           string      `json:"gender,omitempty"`
	PresentAddress   *Address    `json:"presentAddress,omitempty"`
	PermanentAddress *Address    `json:"permanentAddress,omitempty"`
	Education        []Education `json:"education,omitempty"`
	Experience       string      `json:"experience,omitempty"`
	Disabilities     string      `json:"disabilities,omitempty"`
	ResumePath       string      `json:"resumePath,omitempty"`
	MentorUsername   string      `json:"mentorUsername,omitempty"`
	Department       string      `json:"department,omitempty"`
	EmployeeID       string      `json:"employeeId,omitempty"`
}

// AttendanceRecord is one class attendance entry for a student
type AttendanceRecord struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"` // YYYY-MM-DD
	Subject     string `json:"subject"`
	Present     bool   `json:"present"`
	FacultyName string `json:"facultyName"`
	Remarks     string `json:"remarks"`
}

// AttendanceStats summarizes a student's attendance
type AttendanceStats struct {
	AttendancePercentage float64 `json:"attendancePercentage"`
	ClassesAttended      int     `json:"classesAttended"`
	ClassesMissed        int     `json:"classesMissed"`
}

// StudentMark is one row of a batch attendance submission
type StudentMark struct {
	Username string `json:"username"`
	Present  bool   `json:"present"`
	Remarks  string `json:"remarks"`
}

// MarkAttendanceRequest is the batch payload for POST /api/attendance/mark.
// The batch is all-or-nothing: the portal accepts every row or rejects the
// whole request.
type MarkAttendanceRequest struct {
	Subject         string        `json:"subject"`
	Date            string        `json:"date"` // YYYY-MM-DD
	FacultyUsername string        `json:"facultyUsername"`
	Students        []StudentMark `json:"students"`
}

// Placement is a placement posting
type Placement struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Role              string  `json:"role"`
	Experience        string  `json:"experience"`
	Description       string  `json:"description"`
	Type              string  `json:"type"` // INTERNSHIP or FULLTIME
	DatePosted        string  `json:"datePosted,omitempty"`
	DateOfDrive       string  `json:"dateOfDrive"`
	LastDateToApply   string  `json:"lastDateToApply"`
	Compensation      float64 `json:"compensation"`
	Bond              string  `json:"bond,omitempty"`
	PostedByUsername  string  `json:"postedByUsername"`
	TotalApplications int     `json:"totalApplications,omitempty"`
	HasApplied        bool    `json:"hasApplied,omitempty"`
}

// PlacementInput is the body for POST /api/placements
type PlacementInput struct {
	Title            string  `json:"title"`
	Role             string  `json:"role"`
	Experience       string  `json:"experience"`
	Description      string  `json:"description"`
	Type             string  `json:"type"`
	DateOfDrive      string  `json:"dateOfDrive"`
	LastDateToApply  string  `json:"lastDateToApply"`
	Compensation     float64 `json:"compensation"`
	Bond             string  `json:"bond,omitempty"`
	PostedByUsername string  `json:"postedByUsername"`
}

// Application is one student application to a placement
type Application struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	AppliedAt string    `json:"appliedAt"`
	Placement Placement `json:"placement"`
}
