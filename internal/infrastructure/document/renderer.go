// Package document renders membership certificates and payment invoices as
// standalone HTML files under the configured documents directory.
package document

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parlourcover/parlour/internal/shared/biztime"
)

const (
	certificateDir = "certificates"
	invoiceDir     = "invoices"
)

type Renderer struct {
	dir string
	md  *Markdown
}

func NewRenderer(dir string) (*Renderer, error) {
	for _, sub := range []string{certificateDir, invoiceDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create documents directory: %w", err)
		}
	}
	return &Renderer{dir: dir, md: NewMarkdown()}, nil
}

// Person is one covered life on a certificate.
type Person struct {
	Name          string
	Type          string
	Relation      string
	IDNumber      string
	DateOfBirth   *time.Time
	DateJoined    time.Time
	WaitingPeriod int
}

type CertificateData struct {
	ParlourName  string
	ParlourPhone string
	ParlourEmail string
	PolicyNum    string
	PlanName     string
	Premium      decimal.Decimal
	Benefits     []string
	MainMember   Person
	Members      []Person
	IssuedAt     time.Time
}

type InvoiceData struct {
	ParlourName    string
	PolicyNum      string
	MainMemberName string
	Amount         decimal.Decimal
	Method         string
	Date           time.Time
	Reference      string
	PaymentID      uint
}

// Certificate writes a certificate and returns its path relative to the
// documents directory.
func (r *Renderer) Certificate(d CertificateData) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Escape(d.ParlourName))
	b.WriteString("## Certificate of Membership\n\n")
	fmt.Fprintf(&b, "**Policy number:** %s  \n", Escape(d.PolicyNum))
	fmt.Fprintf(&b, "**Plan:** %s  \n", Escape(d.PlanName))
	fmt.Fprintf(&b, "**Monthly premium:** R %s  \n", d.Premium.StringFixed(2))
	fmt.Fprintf(&b, "**Issued:** %s\n\n", biztime.FormatDate(d.IssuedAt))

	b.WriteString("### Main member\n\n")
	fmt.Fprintf(&b, "%s, %s\n\n", Escape(d.MainMember.Name), identifier(d.MainMember))

	if len(d.Members) > 0 {
		b.WriteString("### Covered members\n\n")
		b.WriteString("| Name | Type | Relation | ID / Date of birth | Joined | Waiting period |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, m := range d.Members {
			waiting := "served"
			if m.WaitingPeriod > 0 {
				waiting = fmt.Sprintf("%d days", m.WaitingPeriod)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				Escape(m.Name), label(m.Type), label(m.Relation), identifier(m),
				biztime.FormatDate(m.DateJoined), waiting)
		}
		b.WriteString("\n")
	}

	if len(d.Benefits) > 0 {
		b.WriteString("### Benefits\n\n")
		for _, benefit := range d.Benefits {
			fmt.Fprintf(&b, "- %s\n", Escape(benefit))
		}
		b.WriteString("\n")
	}

	contact := strings.TrimSpace(strings.Join(nonEmpty(d.ParlourPhone, d.ParlourEmail), " | "))
	if contact != "" {
		fmt.Fprintf(&b, "---\n\nContact: %s\n", Escape(contact))
	}

	return r.write(certificateDir, "Certificate "+d.PolicyNum, b.String())
}

// Invoice writes a payment receipt and returns its relative path.
func (r *Renderer) Invoice(d InvoiceData) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Escape(d.ParlourName))
	fmt.Fprintf(&b, "## Payment receipt #%06d\n\n", d.PaymentID)
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Policy number | %s |\n", Escape(d.PolicyNum))
	fmt.Fprintf(&b, "| Main member | %s |\n", Escape(d.MainMemberName))
	fmt.Fprintf(&b, "| Date | %s |\n", biztime.FormatDate(d.Date))
	fmt.Fprintf(&b, "| Method | %s |\n", label(d.Method))
	if d.Reference != "" {
		fmt.Fprintf(&b, "| Reference | %s |\n", Escape(d.Reference))
	}
	fmt.Fprintf(&b, "| **Amount** | **R %s** |\n", d.Amount.StringFixed(2))

	return r.write(invoiceDir, fmt.Sprintf("Receipt %06d", d.PaymentID), b.String())
}

// Resolve maps a stored relative path back to a file inside the documents
// directory, rejecting anything that escapes it.
func (r *Renderer) Resolve(rel string) (string, error) {
	full := filepath.Join(r.dir, filepath.Clean("/"+rel))
	base, err := filepath.Abs(r.dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(abs, base+string(filepath.Separator)) {
		return "", fmt.Errorf("document path %q outside documents directory", rel)
	}
	return abs, nil
}

func (r *Renderer) write(sub, title, markdown string) (string, error) {
	body, err := r.md.ToHTML(markdown)
	if err != nil {
		return "", err
	}

	rel := filepath.Join(sub, uuid.NewString()+".html")
	page := fmt.Sprintf(pageLayout, html.EscapeString(title), body)
	if err := os.WriteFile(filepath.Join(r.dir, rel), []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

const pageLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2.5em; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: .3em; }
table { border-collapse: collapse; width: 100%%; margin: 1em 0; }
th, td { border: 1px solid #bbb; padding: .4em .6em; text-align: left; }
</style>
</head>
<body>
%s
</body>
</html>
`

func identifier(p Person) string {
	if p.IDNumber != "" {
		return Escape(p.IDNumber)
	}
	return biztime.FormatDatePtr(p.DateOfBirth)
}

func label(code string) string {
	return Escape(strings.ReplaceAll(code, "_", " "))
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
