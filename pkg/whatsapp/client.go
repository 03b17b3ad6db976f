// Package whatsapp is a small client for the WhatsApp Cloud API messages
// endpoint.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTemplate is sent when a message has no media.
const DefaultTemplate = "pass_notification"

type Client struct {
	APIURL        string
	PhoneNumberID string
	AccessToken   string
	Template      string
	Language      string
	HTTPClient    *http.Client
}

// NewClient returns a client posting to {apiURL}/{phoneNumberID}/messages.
func NewClient(apiURL, phoneNumberID, accessToken string) *Client {
	return &Client{
		APIURL:        strings.TrimSuffix(apiURL, "/"),
		PhoneNumberID: phoneNumberID,
		AccessToken:   accessToken,
		Template:      DefaultTemplate,
		Language:      "en",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendImage sends the image at link to the phone number to.
func (c *Client) SendImage(ctx context.Context, to, link string) (*SendResponse, error) {
	return c.send(ctx, Message{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "image",
		Image:            &Image{Link: link},
	})
}

// SendTemplate sends the configured template to to.
func (c *Client) SendTemplate(ctx context.Context, to string) (*SendResponse, error) {
	name := c.Template
	if name == "" {
		name = DefaultTemplate
	}
	lang := c.Language
	if lang == "" {
		lang = "en"
	}
	return c.send(ctx, Message{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: &Template{
			Name:     name,
			Language: Language{Code: lang},
		},
	})
}

func (c *Client) send(ctx context.Context, msg Message) (*SendResponse, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.APIURL, c.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("whatsapp: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	var out SendResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &out); err != nil {
			return nil, fmt.Errorf("whatsapp: decode response: %w", err)
		}
	}
	return &out, nil
}
