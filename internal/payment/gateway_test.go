package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"

	"rentride-backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func testGateway() *Gateway {
	return NewGateway(config.PaymentConfig{
		GatewayURL: "https://sandbox.gateway.test/paymentv2/vpcpay.html",
		TmnCode:    "TESTCODE",
		HashSecret: "super-secret-hash-key",
		ReturnURL:  "https://rentride.test/api/payment/callback",
	})
}

func signParams(secret string, params url.Values) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(encodeSorted(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

func callbackParams() url.Values {
	params := url.Values{}
	params.Set("vnp_TxnRef", "BOOK-1A2B3C4D")
	params.Set("vnp_Amount", "10000000")
	params.Set("vnp_OrderInfo", "payment for booking book-1")
	params.Set("vnp_ResponseCode", "00")
	params.Set("vnp_BankCode", "NCB")
	params.Set("vnp_PayDate", "20260830120000")
	return params
}

func TestGateway_VerifyCallback(t *testing.T) {
	g := testGateway()

	t.Run("Valid Signature", func(t *testing.T) {
		params := callbackParams()
		params.Set("vnp_SecureHash", signParams("super-secret-hash-key", params))

		result, err := g.VerifyCallback(params)
		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "BOOK-1A2B3C4D", result.TxnRef)
		// Gateway amounts carry two extra zeroes.
		assert.Equal(t, int64(100000), result.AmountCents)
		assert.Equal(t, "payment for booking book-1", result.OrderInfo)
	})

	t.Run("Tampered Amount", func(t *testing.T) {
		params := callbackParams()
		params.Set("vnp_SecureHash", signParams("super-secret-hash-key", params))
		params.Set("vnp_Amount", "99900")

		result, err := g.VerifyCallback(params)
		assert.Nil(t, result)
		assert.Error(t, err)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		params := callbackParams()
		params.Set("vnp_SecureHash", signParams("attacker-key", params))

		result, err := g.VerifyCallback(params)
		assert.Nil(t, result)
		assert.Error(t, err)
	})

	t.Run("Missing Hash", func(t *testing.T) {
		result, err := g.VerifyCallback(callbackParams())
		assert.Nil(t, result)
		assert.Error(t, err)
	})

	t.Run("Failed Payment Verifies But Not Success", func(t *testing.T) {
		params := callbackParams()
		params.Set("vnp_ResponseCode", "24")
		params.Set("vnp_SecureHash", signParams("super-secret-hash-key", params))

		result, err := g.VerifyCallback(params)
		assert.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("Non Gateway Params Ignored", func(t *testing.T) {
		params := callbackParams()
		params.Set("vnp_SecureHash", signParams("super-secret-hash-key", params))
		params.Set("utm_source", "email")

		result, err := g.VerifyCallback(params)
		assert.NoError(t, err)
		assert.True(t, result.Success)
	})
}

func TestGateway_BuildPaymentURL(t *testing.T) {
	g := testGateway()
	raw := g.BuildPaymentURL("BOOK-1A2B3C4D", 100000, "payment for booking book-1", "203.0.113.7")

	parsed, err := url.Parse(raw)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "https://sandbox.gateway.test/"))

	query := parsed.Query()
	assert.Equal(t, "10000000", query.Get("vnp_Amount"))
	assert.Equal(t, "BOOK-1A2B3C4D", query.Get("vnp_TxnRef"))
	assert.Equal(t, "TESTCODE", query.Get("vnp_TmnCode"))
	assert.NotEmpty(t, query.Get("vnp_SecureHash"))

	// The URL's own signature round-trips through verification.
	result, err := g.VerifyCallback(query)
	assert.NoError(t, err)
	assert.Equal(t, "BOOK-1A2B3C4D", result.TxnRef)
}
