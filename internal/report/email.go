package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"regwatch/internal/config"
	"regwatch/pkg/logger"
)

// EmailClient sends comparison reports over an authenticated STARTTLS mail
// submission connection. Recipients come from configuration.
type EmailClient struct {
	cfg config.EmailConfig
	log *logger.Logger
}

// NewEmailClient creates an EmailClient from the injected configuration.
func NewEmailClient(cfg config.EmailConfig, log *logger.Logger) *EmailClient {
	return &EmailClient{cfg: cfg, log: log}
}

// Send delivers one message with an optional attachment to the configured
// recipients and CC list.
func (c *EmailClient) Send(subject, body, attachmentName string, attachment []byte) error {
	msg, err := c.buildMessage(subject, body, attachmentName, attachment)
	if err != nil {
		return err
	}

	recipients := append(append([]string{}, c.cfg.To...), c.cfg.CC...)
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	if err := smtp.SendMail(addr, auth, c.cfg.From, recipients, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.log.Info(fmt.Sprintf("Email sent to %s", strings.Join(c.cfg.To, ", ")))
	return nil
}

// buildMessage assembles a multipart MIME message with a plain-text body and
// an optional base64-encoded attachment.
func (c *EmailClient) buildMessage(subject, body, attachmentName string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", c.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(c.cfg.To, ", "))
	if len(c.cfg.CC) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", strings.Join(c.cfg.CC, ", "))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/plain; charset=utf-8")
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create body part: %w", err)
	}
	if _, err := bodyPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	if len(attachment) > 0 {
		attachmentHeader := textproto.MIMEHeader{}
		attachmentHeader.Set("Content-Type", "application/octet-stream")
		attachmentHeader.Set("Content-Transfer-Encoding", "base64")
		attachmentHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName))
		attachmentPart, err := writer.CreatePart(attachmentHeader)
		if err != nil {
			return nil, fmt.Errorf("failed to create attachment part: %w", err)
		}
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(attachment)))
		base64.StdEncoding.Encode(encoded, attachment)
		if _, err := attachmentPart.Write(encoded); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
