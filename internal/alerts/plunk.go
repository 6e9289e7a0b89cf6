package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

type plunkConfig struct {
	APIKey string
	From   string
	APIURL string
}

// plunkConfigFromEnv reads PLUNK_API_KEY plus optional PLUNK_FROM and
// PLUNK_API_URL.
func plunkConfigFromEnv() plunkConfig {
	cfg := plunkConfig{
		APIKey: os.Getenv("PLUNK_API_KEY"),
		From:   os.Getenv("PLUNK_FROM"),
		APIURL: os.Getenv("PLUNK_API_URL"),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.useplunk.com/v1/send"
	}
	return cfg
}

type plunkSendBody struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	From    string `json:"from,omitempty"`
}

func (m *Mailer) sendViaPlunk(to, subject, body string) error {
	if m.plunk.APIKey == "" {
		return fmt.Errorf("plunk not configured: set PLUNK_API_KEY")
	}

	b, _ := json.Marshal(plunkSendBody{To: to, Subject: subject, Body: body, From: m.plunk.From})
	req, err := http.NewRequest(http.MethodPost, m.plunk.APIURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.plunk.APIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg, readErr := io.ReadAll(resp.Body); readErr == nil && len(msg) > 0 {
			return fmt.Errorf("plunk send failed: status=%d body=%s", resp.StatusCode, msg)
		}
		return fmt.Errorf("plunk send failed: status=%d", resp.StatusCode)
	}
	return nil
}
