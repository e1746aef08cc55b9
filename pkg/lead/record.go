// Package lead defines the prospective-student lead record shared by
// the capture flows, the HTTP API and the CRM client, plus the field
// validation rules applied before a record may be transmitted.
package lead

// Source tags identifying which surface produced a lead.
const (
	SourceWebsiteEnquiry = "website_enquiry"
	SourceCoursePurchase = "course_purchase"
)

// CourseNotSure is the catch-all course selection offered on the
// enquiry form.
const CourseNotSure = "Not Sure"

// Record is one prospective-student submission. UTM fields are
// best-effort attribution and may be absent.
type Record struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Background string `json:"background,omitempty"`
	Course     string `json:"course,omitempty"`
	Source     string `json:"source,omitempty"`

	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
}

// HasRequired reports whether the three mandatory contact fields are
// present. This is a presence check only; Validate applies the full
// format rules.
func (r Record) HasRequired() bool {
	return r.FullName != "" && r.Email != "" && r.Phone != ""
}
