// Package mail implements the outbound email service on top of the Resend
// HTTP API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"frishta/config"
	"frishta/internal/domain/entity"
	"frishta/internal/domain/service"

	"github.com/pkg/errors"
)

const requestTimeout = 15 * time.Second

// resendMailer implements the service.Mailer interface against the Resend
// /emails endpoint.
type resendMailer struct {
	baseURL string
	apiKey  string
	from    string
	replyTo string
	otpTTL  time.Duration
	client  *http.Client
}

// NewResendMailer is the constructor for resendMailer.
func NewResendMailer(cfg *config.Config) service.Mailer {
	return &resendMailer{
		baseURL: strings.TrimRight(cfg.Mailer.BaseURL, "/"),
		apiKey:  cfg.Mailer.APIKey,
		from:    cfg.Mailer.From,
		replyTo: cfg.Mailer.ReplyTo,
		otpTTL:  cfg.Auth.OtpTTL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type sendErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SendOtpEmail delivers the verification code for an in-flight registration.
func (m *resendMailer) SendOtpEmail(ctx context.Context, to string, otp string) error {
	expiryMinutes := int(m.otpTTL.Minutes())
	safeOtp := html.EscapeString(otp)

	var sb strings.Builder
	sb.WriteString(`<div style="font-family:Arial,sans-serif;line-height:1.5">`)
	sb.WriteString("<h2>Frishta Email Verification</h2>")
	sb.WriteString(`<p>Your OTP is:</p><p style="font-size:24px;font-weight:700;letter-spacing:2px">` + safeOtp + "</p>")
	fmt.Fprintf(&sb, "<p>This OTP expires in %d minutes.</p>", expiryMinutes)
	sb.WriteString("<p>If you did not request this, you can ignore this email.</p>")
	sb.WriteString("</div>")

	return m.send(ctx, &sendRequest{
		To:      []string{to},
		Subject: "Frishta Email Verification OTP",
		Text:    fmt.Sprintf("Your Frishta OTP is %s. It expires in %d minutes.", otp, expiryMinutes),
		HTML:    sb.String(),
	})
}

// SendWelcomeEmail delivers the post-verification welcome with the songs
// matching the user's chosen categories.
func (m *resendMailer) SendWelcomeEmail(ctx context.Context, email *service.WelcomeEmail) error {
	userName := email.FullName
	if userName == "" {
		userName = "Frishta User"
	}

	return m.send(ctx, &sendRequest{
		To:      []string{email.To},
		Subject: "Welcome to Frishta - Your Category Songs",
		Text:    buildWelcomeText(userName, email.Categories, email.Songs),
		HTML:    buildWelcomeHTML(userName, email.Categories, email.Songs),
	})
}

func (m *resendMailer) send(ctx context.Context, payload *sendRequest) error {
	if m.apiKey == "" {
		return errors.New("resend api key is not set")
	}

	payload.From = m.from
	payload.ReplyTo = m.replyTo

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal resend payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build resend request")
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "resend request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr sendErrorResponse
	if json.Unmarshal(raw, &apiErr) == nil {
		if apiErr.Message != "" {
			return errors.Errorf("resend api error: %s", apiErr.Message)
		}
		if apiErr.Error != "" {
			return errors.Errorf("resend api error: %s", apiErr.Error)
		}
	}

	return errors.Errorf("resend api request failed (%d)", resp.StatusCode)
}

func buildWelcomeText(userName string, categories []string, songs []*entity.Song) string {
	lines := []string{
		fmt.Sprintf("Hi %s,", userName),
		"",
		"Your account is verified successfully.",
		"",
		"Your selected categories:",
	}

	if len(categories) > 0 {
		for _, category := range categories {
			lines = append(lines, "- "+category)
		}
	} else {
		lines = append(lines, "- None selected")
	}

	lines = append(lines, "", "Songs for your categories:")
	if len(songs) > 0 {
		for i, song := range songs {
			line := fmt.Sprintf("%d. %s [%s]", i+1, song.Title, song.Category)
			if url := songURL(song); url != "" {
				line += "\n   " + url
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "No songs available yet for your selected categories.")
	}

	lines = append(lines, "", "Enjoy your music journey with Frishta.")

	return strings.Join(lines, "\n")
}

func buildWelcomeHTML(userName string, categories []string, songs []*entity.Song) string {
	var sb strings.Builder
	sb.WriteString(`<div style="font-family:Arial,sans-serif;line-height:1.5">`)
	fmt.Fprintf(&sb, "<h2>Welcome to Frishta, %s!</h2>", html.EscapeString(userName))
	sb.WriteString("<p>Your account is verified successfully.</p>")

	sb.WriteString("<h3>Your selected categories</h3>")
	if len(categories) > 0 {
		sb.WriteString("<ul>")
		for _, category := range categories {
			sb.WriteString("<li>" + html.EscapeString(category) + "</li>")
		}
		sb.WriteString("</ul>")
	} else {
		sb.WriteString("<p>None selected.</p>")
	}

	sb.WriteString("<h3>Suggested songs for you</h3><ol>")
	if len(songs) > 0 {
		for _, song := range songs {
			title := html.EscapeString(song.Title)
			category := html.EscapeString(song.Category)
			if url := songURL(song); url != "" {
				fmt.Fprintf(&sb, `<li><strong>%s</strong> <em>[%s]</em> - <a href="%s">Listen</a></li>`,
					title, category, html.EscapeString(url))
			} else {
				fmt.Fprintf(&sb, "<li><strong>%s</strong> <em>[%s]</em></li>", title, category)
			}
		}
	} else {
		sb.WriteString("<li>No songs available yet for your selected categories.</li>")
	}
	sb.WriteString("</ol>")

	sb.WriteString("<p>Enjoy your music journey with Frishta.</p>")
	sb.WriteString("</div>")

	return sb.String()
}

func songURL(song *entity.Song) string {
	if song.AudioURL != "" {
		return song.AudioURL
	}

	return song.AudioPath
}
