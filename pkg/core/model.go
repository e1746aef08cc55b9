package core

type Config struct {
	Environment string
	Port        int
	Otel        OtelConfig
	Redis       RedisConfig
	Cratio      CratioConfig
	Razorpay    RazorpayConfig
	Payment     PaymentConfig
	Admin       AdminConfig
}

type OtlpConfig struct {
	Endpoint string
	Insecure bool
}

type OtelConfig struct {
	OtlpExporter OtlpConfig
	Disable      bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CratioConfig holds the CRM endpoint and credential. Either field
// being empty disables CRM submission entirely; leads then only land
// in the local backup buffer.
type CratioConfig struct {
	APIURL string
	APIKey string
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

// PaymentConfig describes the hosted checkout page the purchase flow
// redirects to when no per-transaction link is created.
type PaymentConfig struct {
	LinkURL string
}

// AdminConfig protects the ops-only routes. Disable skips token
// verification; meant for local development only.
type AdminConfig struct {
	JWKSURL  string
	Issuer   string
	Audience string
	Disable  bool
}
