package notify

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mystore-backend/internal/domain"
)

// ProductEvent is the structured transition a state machine emits; rendering
// (emoji, subject, body) is resolved here, keyed by action.
type ProductEvent struct {
	Action       string
	SellerEmail  string
	SellerName   string
	ProductTitle string
	Details      string
}

var actionEmoji = map[string]string{
	domain.ActionCreated:     "➕",
	domain.ActionUpdated:     "✏️",
	domain.ActionDeleted:     "🗑️",
	domain.ActionPublished:   "✅",
	domain.ActionUnpublished: "🔴",
}

const divider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// Templates renders every outbound email body. URLs are configuration, not
// template content.
type Templates struct {
	DashboardURL string
	LoginURL     string
}

func (t Templates) ProductActivity(ev ProductEvent, at time.Time) (subject, body string) {
	emoji, ok := actionEmoji[ev.Action]
	if !ok {
		emoji = "📦"
	}

	subject = fmt.Sprintf("%s Product %s: %s", emoji, titleCase(ev.Action), ev.ProductTitle)

	body = fmt.Sprintf(`Hello %s,

Your product action was successful!

%s
%s ACTION: %s
%s

Product: %s
Action: %s
Time: %s

%s

%s

View your dashboard: %s

Best regards,
MyStore Team
`, ev.SellerName, divider, emoji, strings.ToUpper(ev.Action), divider,
		ev.ProductTitle, titleCase(ev.Action), at.Format("January 2, 2006 at 3:04 PM"),
		ev.Details, divider, t.DashboardURL)

	return subject, body
}

func (t Templates) DraftSaved(sellerName, title string, price float64, category string) (subject, body string) {
	subject = "📦 Product Saved as Draft"
	body = fmt.Sprintf(`Hello %s,

Your product has been successfully saved as a DRAFT.

Product Details:
• Name: %s
• Price: $%.2f
• Category: %s
• Status: DRAFT (Not visible to customers yet)

Next Steps:
1. Review your product in the dashboard
2. Edit if needed
3. Publish when ready to make it live

Login to Dashboard: %s

Best regards,
MyStore Team
`, sellerName, title, price, category, t.DashboardURL)
	return subject, body
}

func (t Templates) SellerApplicationReceived(name, storeName string) (subject, body string) {
	subject = "Seller Application Received"
	body = fmt.Sprintf(`Hello %s,

Thank you for applying to be a seller on our platform!

Your application is currently Pending Review.
You'll receive another email once your request has been approved.

Store Name: %s

Best,
MyStore Team
`, name, storeName)
	return subject, body
}

func (t Templates) SellerStatusChanged(name, storeName, newStatus string) (subject, body string) {
	if newStatus == domain.SellerApproved {
		subject = "🎉 Your Seller Account is Approved!"
		body = fmt.Sprintf(`Hello %s,

Congratulations! Your seller account has been APPROVED by our team.

You can now start adding products and selling on our platform.

Store Name: %s

Login here: %s

Best regards,
MyStore Team
`, name, storeName, t.LoginURL)
		return subject, body
	}

	subject = "❌ Seller Application Status Update"
	body = fmt.Sprintf(`Hello %s,

We regret to inform you that your seller application has been REJECTED.

If you believe this is a mistake or would like to reapply, please contact our support team.

Store Name: %s

Best regards,
MyStore Team
`, name, storeName)
	return subject, body
}

func (t Templates) OTP(code, purpose string, ttl time.Duration) (subject, body string) {
	subject = "🔑 Your MyStore Verification Code"
	body = fmt.Sprintf(`Your OTP code for %s is %s. It is valid for %d minutes.

If you did not request this code, you can safely ignore this email.

MyStore Team
`, formatPurpose(purpose), code, int(ttl.Minutes()))
	return subject, body
}

func (t Templates) PasswordResetConfirmed(email string) (subject, body string) {
	subject = "Your MyStore Password Was Changed"
	body = fmt.Sprintf(`Hello,

The password for the account %s has just been changed.

If this wasn't you, please contact our support team immediately.

MyStore Team
`, email)
	return subject, body
}

func (t Templates) OrderConfirmation(o domain.Order) (subject, body string) {
	var items strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&items, "%d x %s = $%.2f\n", it.Quantity, it.Title, it.Price*float64(it.Quantity))
	}

	subject = "Your Order Confirmation"
	body = fmt.Sprintf(`Hello %s,

Thank you for your order!

%s
Total: $%.2f

Delivering to:
%s
%s, %s, %s - %s
Phone: %s
`, o.FullName, items.String(), o.TotalPrice, o.FullName, o.Address, o.City, o.State, o.Pincode, o.Phone)
	return subject, body
}

func (t Templates) ContactReceipt(name, subj, message string) (subject, body string) {
	if subj == "" {
		subj = "General Inquiry"
	}
	subject = "We Received Your Message! 📧"
	body = fmt.Sprintf(`Hello %s,

Thank you for contacting MyStore!

We have received your message and will get back to you within 24-48 hours.

Your Message:
%s
Subject: %s

%s
%s

Best regards,
MyStore Support Team

---
This is an automated confirmation email.
`, name, divider, subj, message, divider)
	return subject, body
}

func (t Templates) ContactAdminAlert(name, email, subj, message string, at time.Time) (subject, body string) {
	if subj == "" {
		subj = "General Inquiry"
	}
	subject = fmt.Sprintf("🔔 New Contact Message from %s", name)
	body = fmt.Sprintf(`New contact form submission:

From: %s
Email: %s
Subject: %s

Message:
%s

%s
Received at: %s
`, name, email, subj, message, divider, at.Format("January 2, 2006 at 3:04 PM"))
	return subject, body
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func formatPurpose(purpose string) string {
	p := strings.ReplaceAll(purpose, "_", " ")
	return cases.Title(language.English).String(p)
}
