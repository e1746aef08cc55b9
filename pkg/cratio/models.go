package cratio

// Result is the normalized outcome of a lead submission. Provider
// failures are folded in here rather than returned as Go errors so
// callers can never accidentally let a CRM outage break the flow.
type Result struct {
	Success bool   `json:"success"`
	LeadID  string `json:"leadId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrNotConfigured is the Result.Error value reported when the CRM
// endpoint or credential is absent.
const ErrNotConfigured = "not configured"

// leadPayload is the Cratio wire shape. The CRM names the contact
// field lead_name and the phone field mobile; optional fields are
// omitted entirely when empty.
type leadPayload struct {
	LeadName   string `json:"lead_name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Background string `json:"background,omitempty"`
	Course     string `json:"course_interest,omitempty"`
	LeadSource string `json:"lead_source,omitempty"`

	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
}

type providerResponse struct {
	Status  string `json:"status"`
	LeadID  string `json:"lead_id"`
	Message string `json:"message"`
}
