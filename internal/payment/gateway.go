// Package payment integrates the VNPay-style hosted payment gateway: it
// builds signed payment URLs and verifies signed callbacks.
package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"rentride-backend/internal/config"
)

const (
	responseCodeSuccess = "00"
	payDateLayout       = "20060102150405"
)

// CallbackResult is the verified outcome of a gateway return callback.
type CallbackResult struct {
	TxnRef      string
	AmountCents int64
	OrderInfo   string
	BankCode    string
	Success     bool
}

type Gateway struct {
	gatewayURL string
	tmnCode    string
	hashSecret string
	returnURL  string
	now        func() time.Time
}

func NewGateway(cfg config.PaymentConfig) *Gateway {
	return &Gateway{
		gatewayURL: cfg.GatewayURL,
		tmnCode:    cfg.TmnCode,
		hashSecret: cfg.HashSecret,
		returnURL:  cfg.ReturnURL,
		now:        time.Now,
	}
}

// BuildPaymentURL produces the redirect URL the renter follows to pay for a
// booking. The gateway expects the amount multiplied by 100 and every
// parameter signed with HMAC-SHA512 over the sorted, URL-encoded query.
func (g *Gateway) BuildPaymentURL(txnRef string, amountCents int64, orderInfo, clientIP string) string {
	now := g.now()
	params := url.Values{}
	params.Set("vnp_Version", "2.1.0")
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", g.tmnCode)
	params.Set("vnp_Amount", fmt.Sprintf("%d", amountCents*100))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", txnRef)
	params.Set("vnp_OrderInfo", orderInfo)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_Locale", "vn")
	params.Set("vnp_ReturnUrl", g.returnURL)
	params.Set("vnp_IpAddr", clientIP)
	params.Set("vnp_CreateDate", now.Format(payDateLayout))
	params.Set("vnp_ExpireDate", now.Add(15*time.Minute).Format(payDateLayout))

	query := encodeSorted(params)
	signature := g.sign(query)
	return g.gatewayURL + "?" + query + "&vnp_SecureHash=" + signature
}

// VerifyCallback validates the gateway's return parameters. The secure hash
// covers every vnp_ parameter except the hash itself, sorted by key.
func (g *Gateway) VerifyCallback(params url.Values) (*CallbackResult, error) {
	received := params.Get("vnp_SecureHash")
	if received == "" {
		return nil, fmt.Errorf("missing vnp_SecureHash")
	}

	signed := url.Values{}
	for key, values := range params {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		if !strings.HasPrefix(key, "vnp_") || len(values) == 0 {
			continue
		}
		signed.Set(key, values[0])
	}

	expected := g.sign(encodeSorted(signed))
	if !hmac.Equal([]byte(strings.ToLower(received)), []byte(expected)) {
		return nil, fmt.Errorf("invalid payment signature")
	}

	var amountCents int64
	if raw := params.Get("vnp_Amount"); raw != "" {
		fmt.Sscanf(raw, "%d", &amountCents)
		amountCents /= 100
	}

	return &CallbackResult{
		TxnRef:      params.Get("vnp_TxnRef"),
		AmountCents: amountCents,
		OrderInfo:   params.Get("vnp_OrderInfo"),
		BankCode:    params.Get("vnp_BankCode"),
		Success:     params.Get("vnp_ResponseCode") == responseCodeSuccess,
	}, nil
}

func (g *Gateway) sign(data string) string {
	mac := hmac.New(sha512.New, []byte(g.hashSecret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// encodeSorted renders the values as key=value pairs sorted by key, with both
// sides URL-encoded, which is the exact byte stream the gateway signs.
func encodeSorted(params url.Values) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(key)))
	}
	return b.String()
}
