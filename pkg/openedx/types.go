package openedx

import "encoding/json"

// tokenResponse is the token endpoint's success body. ExpiresIn is a pointer
// so a missing key can be told apart from a zero lifetime.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   *int   `json:"expires_in"`
}

// Course describes one course as returned by the courses v1 API. Timestamps
// are kept as the API's strings; the LMS reports them in several display
// formats and this library does not interpret response content.
type Course struct {
	// ID is the course key, e.g. "course-v1:<org>+<code>+<run>".
	ID       string `json:"id"`
	CourseID string `json:"course_id"`

	Name   string `json:"name"`
	Number string `json:"number"`
	Org    string `json:"org"`

	BlocksURL        string `json:"blocks_url"`
	ShortDescription string `json:"short_description"`
	Effort           string `json:"effort"`

	Start           string `json:"start"`
	StartDisplay    string `json:"start_display"`
	StartType       string `json:"start_type"`
	End             string `json:"end"`
	EnrollmentStart string `json:"enrollment_start"`
	EnrollmentEnd   string `json:"enrollment_end"`

	Pacing          string `json:"pacing"`
	MobileAvailable bool   `json:"mobile_available"`
	Hidden          bool   `json:"hidden"`
	InvitationOnly  bool   `json:"invitation_only"`

	// Media carries the nested media URLs untouched.
	Media json.RawMessage `json:"media,omitempty"`
}

// EnrollmentAction is the operation applied by the bulk enrollment API.
type EnrollmentAction string

const (
	ActionEnroll   EnrollmentAction = "enroll"
	ActionUnenroll EnrollmentAction = "unenroll"
)

// EnrollmentOptions tunes a bulk enrollment call. The zero value matches the
// API defaults: auto-enroll on registration and notify students by email.
type EnrollmentOptions struct {
	// AutoEnroll, when set, controls whether users are enrolled as soon as
	// they register. Defaults to true.
	AutoEnroll *bool

	// EmailStudents, when set, controls whether an email is sent with the
	// update. Defaults to true.
	EmailStudents *bool

	// Cohorts lists cohort names to add the students to.
	Cohorts []string

	// URL overrides the LMS base URL for this call, for multi-site
	// deployments. Defaults to the client's base URL.
	URL string
}

// bulkEnrollRequest is the JSON body of a bulk enrollment call. Courses and
// identifiers are comma-joined, as the endpoint expects.
type bulkEnrollRequest struct {
	AutoEnroll    bool   `json:"auto_enroll"`
	EmailStudents bool   `json:"email_students"`
	Action        string `json:"action"`
	Courses       string `json:"courses"`
	Identifiers   string `json:"identifiers"`
	Cohorts       string `json:"cohorts,omitempty"`
}

// BulkEnrollment is the bulk enrollment API's response.
type BulkEnrollment struct {
	Action        string                      `json:"action"`
	Courses       map[string]CourseEnrollment `json:"courses"`
	EmailStudents bool                        `json:"email_students"`
	AutoEnroll    bool                        `json:"auto_enroll"`
}

// CourseEnrollment is the per-course outcome of a bulk enrollment call.
type CourseEnrollment struct {
	Action     string             `json:"action"`
	Results    []EnrollmentResult `json:"results"`
	AutoEnroll bool               `json:"auto_enroll"`
}

// EnrollmentResult reports the state change for a single identifier.
type EnrollmentResult struct {
	Identifier string          `json:"identifier"`
	Before     EnrollmentState `json:"before"`
	After      EnrollmentState `json:"after"`
}

// EnrollmentState is a snapshot of one user's enrollment in one course.
type EnrollmentState struct {
	Enrollment bool `json:"enrollment"`
	Allowed    bool `json:"allowed"`
	User       bool `json:"user"`
	AutoEnroll bool `json:"auto_enroll"`
}
