package utils

import (
	"amc/config"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var snapClient snap.Client

// InitPaymentGateway wires the Midtrans Snap client. Must be called at
// bootstrap, after LoadConfig.
func InitPaymentGateway() {
	env := midtrans.Sandbox
	if config.AppConfig.MidtransProduction {
		env = midtrans.Production
	}
	snapClient.New(config.AppConfig.MidtransServerKey, env)
	log.Println("Payment gateway client initialized")
}

// CheckoutInput is the enrollment intent turned into a hosted checkout
// session. Amount is in whole rupees.
type CheckoutInput struct {
	OrderID       string
	Amount        int
	CourseName    string
	CenterName    string
	StudentName   string
	StudentPhone  string
	StudentEmail  string
	PreferredTime string
}

// buildSnapRequest maps an enrollment checkout onto the Snap request.
// Center and preferred batch timing ride along as custom fields for
// reconciliation on the gateway dashboard.
func buildSnapRequest(in CheckoutInput) *snap.Request {
	preferred := in.PreferredTime
	if preferred == "" {
		preferred = "Not specified"
	}

	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  in.OrderID,
			GrossAmt: int64(in.Amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.StudentName,
			Email: in.StudentEmail,
			Phone: in.StudentPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       in.OrderID,
				Price:    int64(in.Amount),
				Qty:      1,
				Name:     in.CourseName + " Course Enrollment",
				Category: "enrollment",
			},
		},
		Callbacks: &snap.Callbacks{
			Finish: config.AppConfig.PaymentSuccessURL,
		},
		CustomField1: in.CenterName,
		CustomField2: preferred,
	}
}

// CreateCheckoutSession creates a hosted checkout session and returns
// the redirect URL plus the session token.
func CreateCheckoutSession(in CheckoutInput) (redirectURL string, token string, err error) {
	if in.Amount <= 0 {
		return "", "", errors.New("checkout amount must be positive")
	}
	if in.OrderID == "" {
		return "", "", errors.New("order id is required")
	}

	resp, snapErr := snapClient.CreateTransaction(buildSnapRequest(in))
	if snapErr != nil {
		return "", "", snapErr
	}
	return resp.RedirectURL, resp.Token, nil
}

// VerifyGatewaySignature checks the SHA-512 notification signature
// (order_id + status_code + gross_amount + server key). The webhook
// must reject payloads that fail this check before reading anything
// else out of them.
func VerifyGatewaySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + config.AppConfig.MidtransServerKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signatureKey)) == 1
}
