package email

import (
	"fmt"
	"strings"

	"github.com/parlourcover/parlour/internal/infrastructure/document"
)

// Composer builds notification emails from markdown bodies.
type Composer struct {
	md *document.Markdown
}

func NewComposer() *Composer {
	return &Composer{md: document.NewMarkdown()}
}

func (c *Composer) compose(to, subject, markdown string, attachments ...string) (Message, error) {
	html, err := c.md.ToHTML(markdown)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:          to,
		Subject:     subject,
		HTMLBody:    html,
		PlainBody:   strings.TrimSpace(markdown),
		Attachments: attachments,
	}, nil
}

func (c *Composer) PaymentReceipt(to, parlourName, policyNum, amount, date, invoice string) (Message, error) {
	body := fmt.Sprintf(`Payment received

A payment of **R %s** dated %s was recorded for policy **%s**.

%s`, amount, date, document.Escape(policyNum), document.Escape(parlourName))

	var attachments []string
	if invoice != "" {
		attachments = append(attachments, invoice)
	}
	return c.compose(to, fmt.Sprintf("Payment received: %s", policyNum), body, attachments...)
}

func (c *Composer) CertificateIssued(to, parlourName, policyNum, certificate string) (Message, error) {
	body := fmt.Sprintf(`Membership certificate

An updated membership certificate was issued for policy **%s**. It is attached to this email.

%s`, document.Escape(policyNum), document.Escape(parlourName))

	var attachments []string
	if certificate != "" {
		attachments = append(attachments, certificate)
	}
	return c.compose(to, fmt.Sprintf("Certificate issued: %s", policyNum), body, attachments...)
}

func (c *Composer) ApplicantLapsed(to, parlourName, policyNum, previous string) (Message, error) {
	body := fmt.Sprintf(`Policy lapsed

Policy **%s** has lapsed after no payment was received for four months. Its previous status was *%s*.

%s`, document.Escape(policyNum), document.Escape(previous), document.Escape(parlourName))

	return c.compose(to, fmt.Sprintf("Policy lapsed: %s", policyNum), body)
}

func (c *Composer) MemberPromoted(to, parlourName, policyNum, memberName string, originalID, successorID uint) (Message, error) {
	body := fmt.Sprintf(`Main member replaced

**%s** was promoted to main member of policy **%s**. Applicant record %d was archived and the policy continues as record %d.

%s`, document.Escape(memberName), document.Escape(policyNum), originalID, successorID, document.Escape(parlourName))

	return c.compose(to, fmt.Sprintf("Main member replaced: %s", policyNum), body)
}
