package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/learnspace/lead-capture-api/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentLink_Success(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(bytes.NewBufferString(
				`{"id":"plink_Nxy456","short_url":"https://rzp.io/i/abc123","status":"created"}`,
			)),
		},
	}

	svc := New(configured(), Options{HTTPClient: ft})

	link, err := svc.CreatePaymentLink(context.Background(), PaymentLinkRequest{
		Amount:      59999,
		CourseName:  "Data Science and AI",
		StudentName: "Priya Sharma",
		Email:       "priya@example.com",
		Phone:       "+919876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api.razorpay.test/v1/payment_links", ft.req.URL.String())
	assert.Equal(t, "plink_Nxy456", link.ID)
	assert.Equal(t, "https://rzp.io/i/abc123", link.ShortURL)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(ft.body, &sent))

	assert.EqualValues(t, 5999900, sent["amount"])
	assert.Equal(t, "Enrollment: Data Science and AI", sent["description"])

	customer, _ := sent["customer"].(map[string]any)
	require.NotNil(t, customer)
	assert.Equal(t, "Priya Sharma", customer["name"])
	assert.Equal(t, "+919876543210", customer["contact"])
}

func TestCreatePaymentLink_NoCustomerBlockWhenAnonymous(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(`{"id":"plink_1"}`)),
		},
	}

	svc := New(configured(), Options{HTTPClient: ft})

	_, err := svc.CreatePaymentLink(context.Background(), PaymentLinkRequest{Amount: 499})
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(ft.body, &sent))

	assert.NotContains(t, sent, "customer")
}

func TestCreatePaymentLink_NotConfigured(t *testing.T) {
	svc := New(&core.RazorpayConfig{BaseURL: "https://api.razorpay.test/v1"}, Options{})

	_, err := svc.CreatePaymentLink(context.Background(), PaymentLinkRequest{Amount: 499})

	require.ErrorIs(t, err, ErrNotConfigured)
}
