package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/config"
)

// SMSResult reports the outcome of a single SMS dispatch.
type SMSResult struct {
	Success bool
	To      string
	SID     string
	Error   string
}

// SMSSender is the SMS collaborator, one message per call.
type SMSSender interface {
	Send(body, to string) (SMSResult, error)
}

// TwilioSender posts messages to the Twilio REST API.
type TwilioSender struct {
	client     *http.Client
	accountSID string
	authToken  string
	from       string
	baseURL    string
}

func NewTwilioSender(cfg config.SMSConfig) *TwilioSender {
	return &TwilioSender{
		client:     &http.Client{Timeout: 10 * time.Second},
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.FromNumber,
		baseURL:    "https://api.twilio.com",
	}
}

func (s *TwilioSender) Send(body, to string) (SMSResult, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return SMSResult{To: to, Error: err.Error()}, err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return SMSResult{To: to, Error: err.Error()}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("twilio returned status %d", resp.StatusCode)
		return SMSResult{To: to, Error: err.Error()}, err
	}

	var payload struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SMSResult{To: to, Error: err.Error()}, err
	}
	return SMSResult{Success: true, To: to, SID: payload.SID}, nil
}
