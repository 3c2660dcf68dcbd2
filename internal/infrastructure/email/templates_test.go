package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlourcover/parlour/internal/shared/config"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

func TestComposer_PaymentReceipt(t *testing.T) {
	c := NewComposer()

	msg, err := c.PaymentReceipt("office@parlour.test", "Ubuntu Funerals", "POL-7", "150.00", "2026-10-01", "/data/invoices/x.html")
	require.NoError(t, err)

	assert.Equal(t, "office@parlour.test", msg.To)
	assert.Equal(t, "Payment received: POL-7", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "<strong>R 150.00</strong>")
	assert.Contains(t, msg.PlainBody, "POL-7")
	assert.Equal(t, []string{"/data/invoices/x.html"}, msg.Attachments)
}

func TestComposer_LapsedHasNoAttachment(t *testing.T) {
	msg, err := NewComposer().ApplicantLapsed("a@b.test", "P", "POL_1", "skipped")
	require.NoError(t, err)
	assert.Empty(t, msg.Attachments)
	assert.Contains(t, msg.HTMLBody, "POL_1")
}

func TestNewSender_Disabled(t *testing.T) {
	s := NewSender(config.EmailConfig{Enabled: false}, logger.NewLogger())
	err := s.Send(Message{To: "x@y.test"})
	assert.ErrorIs(t, err, ErrEmailServiceNotConfigured)
}

func TestComposer_MemberPromoted(t *testing.T) {
	msg, err := NewComposer().MemberPromoted("a@b.test", "Ubuntu Funerals", "POL-9", "Thandi Dlamini", 4, 11)
	require.NoError(t, err)

	assert.Equal(t, "Main member replaced: POL-9", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "<strong>Thandi Dlamini</strong>")
	assert.Contains(t, msg.PlainBody, "record 4 was archived")
	assert.Contains(t, msg.PlainBody, "record 11")
}
