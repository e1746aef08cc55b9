package razorpay

// OrderRequest describes one order to collect. Amount is in whole
// rupees; the client converts to paise on the wire.
type OrderRequest struct {
	Amount      int
	CourseName  string
	StudentName string
	Email       string
	Phone       string
}

// Order is the provider-side record created ahead of checkout.
type Order struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentLinkRequest describes a per-transaction hosted checkout link.
type PaymentLinkRequest struct {
	Amount      int
	CourseName  string
	StudentName string
	Email       string
	Phone       string
	Description string
}

type PaymentLink struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

type orderPayload struct {
	Amount   int               `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type paymentLinkPayload struct {
	Amount      int               `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description,omitempty"`
	Customer    *linkCustomer     `json:"customer,omitempty"`
	Notes       map[string]string `json:"notes,omitempty"`
}

type linkCustomer struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

type providerError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
