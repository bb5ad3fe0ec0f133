package fast2sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bananabill/internal/port"
)

type fast2smsSender struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewFast2SMSSender creates a Fast2SMS-backed SMSSender.
func NewFast2SMSSender(apiKey, baseURL string) port.SMSSender {
	return &fast2smsSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

type sendRequest struct {
	Route          string `json:"route"`
	VariablesValue string `json:"variables_values"`
	Numbers        string `json:"numbers"`
}

type sendResponse struct {
	Return  bool   `json:"return"`
	Message any    `json:"message"`
	Request string `json:"request_id"`
}

func (s *fast2smsSender) SendOTP(ctx context.Context, mobile, code string) error {
	payload, err := json.Marshal(sendRequest{
		Route:          "otp",
		VariablesValue: code,
		Numbers:        mobile,
	})
	if err != nil {
		return fmt.Errorf("fast2sms marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("fast2sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("authorization", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fast2sms send: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fast2sms send: status %d: %s", resp.StatusCode, body)
	}

	var out sendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("fast2sms decode: %w", err)
	}
	if !out.Return {
		return fmt.Errorf("fast2sms send rejected: %v", out.Message)
	}
	return nil
}
