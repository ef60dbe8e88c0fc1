package notifier

import (
	"context"
	"strings"
	"testing"

	"github.com/mailersend/mailersend-go"
	"github.com/stretchr/testify/assert"

	"github.com/velstore/product-intake/config"
	"github.com/velstore/product-intake/pkg/models"
)

func TestUnconfiguredRelayIsNoop(t *testing.T) {
	n := NewNotifier(config.Email{})
	sub := &models.Submission{Name: "Ada", Contact: "555-0100", Email: "ada@example.com"}

	assert.NoError(t, n.NotifyInternal(context.Background(), sub))
	assert.NoError(t, n.NotifyCustomer(context.Background(), sub))
}

func TestCustomerNotificationSkippedWithoutEmail(t *testing.T) {
	n := &mailersendNotifier{
		ms:  mailersend.NewMailersend("key"),
		cfg: config.Email{APIKey: "key", InternalTo: "team@velstore.example"},
	}
	sub := &models.Submission{Name: "Ada", Contact: "555-0100"}

	assert.NoError(t, n.NotifyCustomer(context.Background(), sub))
}

func TestInternalRenderEscapesUserInput(t *testing.T) {
	sub := &models.Submission{
		Name:         `<script>alert("x")</script>`,
		Contact:      "<b>bold</b>",
		Email:        "ada@example.com",
		ProductLinks: []string{`http://a.com/"><img src=x>`},
		ImageURLs:    []string{"https://media.test/<u1>"},
	}

	body := renderInternalHTML(sub)
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<img src=x>")
	assert.NotContains(t, body, "<b>bold</b>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "&lt;b&gt;bold&lt;/b&gt;")
}

func TestInternalRenderListsLinksAndImages(t *testing.T) {
	sub := &models.Submission{
		Name:         "Ada",
		Contact:      "555-0100",
		ProductLinks: []string{"http://a.com", "http://b.com"},
		ImageURLs:    []string{"https://media.test/u1"},
	}

	body := renderInternalText(sub)
	iA := strings.Index(body, "http://a.com")
	iB := strings.Index(body, "http://b.com")
	assert.GreaterOrEqual(t, iA, 0)
	assert.Greater(t, iB, iA)
	assert.Contains(t, body, "https://media.test/u1")
	assert.Contains(t, body, "Email: not provided")
}

func TestCustomerRenderEscapesName(t *testing.T) {
	sub := &models.Submission{Name: "<i>Ada</i>", Email: "ada@example.com"}

	body := renderCustomerHTML(sub)
	assert.NotContains(t, body, "<i>Ada</i>")
	assert.Contains(t, body, "&lt;i&gt;Ada&lt;/i&gt;")
	assert.Contains(t, body, "WELCOME10")
}
