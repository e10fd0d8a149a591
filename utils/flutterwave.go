package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"mcan/config"

	"github.com/go-resty/resty/v2"
)

// FlutterwaveVerification is the subset of the gateway's verify response we
// act on
type FlutterwaveVerification struct {
	Status    string
	Amount    float64
	Currency  string
	GatewayID string
}

// VerifyFlutterwaveTransaction confirms a transaction reference with
// Flutterwave before a webhook settlement is trusted. Returns nil
// verification when no secret key is configured, in which case the caller
// settles on the webhook payload alone.
func VerifyFlutterwaveTransaction(txRef string) (*FlutterwaveVerification, error) {
	if config.AppConfig.FlutterwaveSecretKey == "" {
		return nil, nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.FlutterwaveSecretKey).
		SetQueryParam("tx_ref", txRef).
		Get(config.AppConfig.FlutterwaveApiURL + "/transactions/verify_by_reference")
	if err != nil {
		log.Printf("[FLUTTERWAVE] Verify request failed for %s: %v", txRef, err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("[FLUTTERWAVE] Verify returned %d for %s: %s", resp.StatusCode(), txRef, resp.String())
		return nil, fmt.Errorf("flutterwave verify failed with status %d", resp.StatusCode())
	}

	var verifyResp struct {
		Status string `json:"status"`
		Data   struct {
			ID       int64   `json:"id"`
			Status   string  `json:"status"`
			Amount   float64 `json:"amount"`
			Currency string  `json:"currency"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &verifyResp); err != nil {
		log.Printf("[FLUTTERWAVE] Failed to parse verify response for %s: %v", txRef, err)
		return nil, err
	}
	if verifyResp.Status != "success" {
		return nil, fmt.Errorf("flutterwave verify rejected reference %s", txRef)
	}

	return &FlutterwaveVerification{
		Status:    strings.ToLower(verifyResp.Data.Status),
		Amount:    verifyResp.Data.Amount,
		Currency:  verifyResp.Data.Currency,
		GatewayID: fmt.Sprintf("%d", verifyResp.Data.ID),
	}, nil
}
