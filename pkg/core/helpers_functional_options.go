package core

func WithEnvironment(environment string) func(*Config) {
	return func(c *Config) {
		c.Environment = environment
	}
}

func WithPort(port int) func(*Config) {
	return func(c *Config) {
		c.Port = port
	}
}

func WithRedisAddr(addr string) func(*Config) {
	return func(c *Config) {
		c.Redis.Addr = addr
	}
}

func WithRedisPassword(pw string) func(*Config) {
	return func(c *Config) {
		c.Redis.Password = pw
	}
}

func WithRedisDB(db int) func(*Config) {
	return func(c *Config) {
		c.Redis.DB = db
	}
}

func WithOtlpEndpoint(endpoint string) func(*Config) {
	return func(c *Config) {
		c.Otel.OtlpExporter.Endpoint = endpoint
	}
}

func WithOtlpInsecure(insecure bool) func(*Config) {
	return func(c *Config) {
		c.Otel.OtlpExporter.Insecure = insecure
	}
}

func WithOtelDisable(value ...bool) func(*Config) {
	val := true
	if len(value) > 0 {
		val = value[0]
	}

	return func(c *Config) {
		c.Otel.Disable = val
	}
}

func WithCratioAPI(url, key string) func(*Config) {
	return func(c *Config) {
		c.Cratio.APIURL = url
		c.Cratio.APIKey = key
	}
}

func WithRazorpayKeys(keyID, keySecret string) func(*Config) {
	return func(c *Config) {
		c.Razorpay.KeyID = keyID
		c.Razorpay.KeySecret = keySecret
	}
}

func WithRazorpayBaseURL(baseURL string) func(*Config) {
	return func(c *Config) {
		c.Razorpay.BaseURL = baseURL
	}
}

func WithPaymentLinkURL(url string) func(*Config) {
	return func(c *Config) {
		c.Payment.LinkURL = url
	}
}

func WithAdminAuthDisable(value ...bool) func(*Config) {
	val := true
	if len(value) > 0 {
		val = value[0]
	}

	return func(c *Config) {
		c.Admin.Disable = val
	}
}

func WithAdminJWKS(jwksURL, issuer, audience string) func(*Config) {
	return func(c *Config) {
		c.Admin.JWKSURL = jwksURL
		c.Admin.Issuer = issuer
		c.Admin.Audience = audience
	}
}
