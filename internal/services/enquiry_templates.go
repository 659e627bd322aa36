package services

import (
	"fmt"
	"strings"

	"meditech-backend/internal/domain"
)

const companyLogoURL = "https://res.cloudinary.com/dq4hevka1/image/upload/v1766235630/products/product-images/gbhs2ft4m5fqvwue0kol.png"

func emailHeader() string {
	return fmt.Sprintf(`<div style="background-color: #ffffff; padding: 25px 30px; text-align: center; border-bottom: 1px solid #e2e8f0;">
  <img src="%s" alt="Silicon Meditech" style="width: 180px; height: auto; display: block; margin: 0 auto;"/>
</div>`, companyLogoURL)
}

func emailFooter() string {
	return `<div style="background-color: #f8fafc; color: #64748b; padding: 20px; text-align: center; font-size: 14px; border-top: 1px solid #e2e8f0;">
  <p style="margin: 0;">Visit us at <a href="https://www.siliconmeditech.in" style="color: #043bbc; text-decoration: none; font-weight: 600;">www.siliconmeditech.in</a></p>
</div>`
}

func emailShell(inner string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7f6; margin: 0; padding: 40px 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 10px rgba(0,0,0,0.05);">
    %s
    %s
    %s
  </div>
</body>
</html>`, emailHeader(), inner, emailFooter())
}

func detailRow(label, value string) string {
	if value == "" {
		value = "N/A"
	}
	return fmt.Sprintf(`<p style="margin: 8px 0;"><strong>%s:</strong> <span style="color: #0f172a;">%s</span></p>`, label, value)
}

func messageBox(message string) string {
	return fmt.Sprintf(`<div style="background-color: #f8fafc; padding: 20px; border-radius: 6px; margin-top: 25px; border: 1px solid #e2e8f0; border-left: 4px solid #043bbc;">
  <p style="margin: 0; color: #0f172a;"><strong>Message:</strong><br/><br/>%s</p>
</div>`, strings.ReplaceAll(message, "\n", "<br/>"))
}

func productSnippet(c *domain.Contact) string {
	if c.ProductTitle == "" {
		return ""
	}
	modelLine := ""
	if c.ModelName != "" {
		modelLine = detailRow("Model", c.ModelName)
	}
	image := ""
	if c.ProductImageURL != "" {
		image = fmt.Sprintf(`<img src="%s" alt="%s" style="width: 140px; height: auto; border-radius: 6px; display: block; margin: 12px auto;"/>`, c.ProductImageURL, c.ProductTitle)
	}
	return fmt.Sprintf(`<div style="background-color: #f8fafc; padding: 16px; border-radius: 6px; margin-top: 20px; border: 1px solid #e2e8f0;">
  %s
  %s
  %s
  %s
</div>`, image, detailRow("Product", c.ProductTitle), modelLine, detailRow("Reference", c.Reference()))
}

// adminNotification builds the operator-facing email for a new enquiry.
func adminNotification(c *domain.Contact) (subject, htmlBody string) {
	var heading string
	switch c.EnquiryType {
	case domain.EnquiryTypeProduct:
		subject = fmt.Sprintf("New Product Enquiry from %s", c.Name)
		heading = "New Product Enquiry"
	case domain.EnquiryTypeAccessory:
		subject = fmt.Sprintf("New Accessory Enquiry from %s", c.Name)
		heading = "New Accessory Enquiry"
	default:
		subject = fmt.Sprintf("New Inquiry from %s", c.Name)
		heading = "New General Inquiry"
	}

	inner := fmt.Sprintf(`<div style="padding: 30px; color: #475569; line-height: 1.6;">
  <h2 style="margin-top: 12px; margin-bottom: 25px; font-size: 22px; font-weight: 600; text-align: center; color: #043bbc;">%s</h2>
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
</div>`,
		heading,
		detailRow("Contact ID", c.ContactID),
		detailRow("Name", c.Name),
		detailRow("Email", c.Email),
		detailRow("Phone", c.Phone),
		detailRow("Company", c.CompanyName),
		detailRow("Location", c.CompanyLocation),
		productSnippet(c),
		messageBox(c.Message))

	return subject, emailShell(inner)
}

// submitterAcknowledgement builds the confirmation sent to the customer.
func submitterAcknowledgement(c *domain.Contact) (subject, htmlBody string) {
	switch c.EnquiryType {
	case domain.EnquiryTypeProduct:
		subject = fmt.Sprintf("We received your enquiry for %s", c.ProductTitle)
	case domain.EnquiryTypeAccessory:
		subject = fmt.Sprintf("We received your accessory enquiry for %s", c.ProductTitle)
	default:
		subject = "We received your message"
	}

	inner := fmt.Sprintf(`<div style="padding: 30px; color: #475569; line-height: 1.6;">
  <h2 style="margin-top: 12px; margin-bottom: 22px; font-size: 22px; text-align: center; font-weight: 600; color: #043bbc;">Message Received</h2>
  <p style="font-size: 16px; color: #0f172a;">Hello <strong>%s</strong>,</p>
  <p>Thank you for contacting us. We have successfully received your inquiry and our team will get back to you shortly.</p>
  %s
  <p style="margin-bottom: 0; margin-top: 30px; color: #0f172a;">Best regards,<br/><strong>Silicon Meditech Team</strong></p>
</div>`, c.Name, productSnippet(c))

	return subject, emailShell(inner)
}

// responseEmail builds the operator reply to an enquiry. The title depends
// on the enquiry type: product replies quote title and model, accessory
// replies quote the title, general replies fall back to the message title.
func responseEmail(c *domain.Contact, responseMessage string) (subject, htmlBody string) {
	var title string
	switch c.EnquiryType {
	case domain.EnquiryTypeProduct:
		title = strings.TrimSpace(c.ProductTitle + " " + c.ModelName)
	case domain.EnquiryTypeAccessory:
		title = c.ProductTitle
	default:
		title = c.MessageTitle
		if title == "" {
			title = "General"
		}
	}
	subject = fmt.Sprintf("Response to your %s enquiry", title)

	inner := fmt.Sprintf(`<div style="padding: 30px; color: #475569; line-height: 1.6;">
  <h2 style="margin-top: 12px; margin-bottom: 22px; font-size: 22px; text-align: center; font-weight: 600; color: #043bbc;">Response to Your Enquiry</h2>
  <p style="font-size: 16px; color: #0f172a;">Hello <strong>%s</strong>,</p>
  %s
  %s
  <p style="margin-bottom: 0; margin-top: 30px; color: #0f172a;">Best regards,<br/><strong>Silicon Meditech Team</strong></p>
</div>`, c.Name, messageBox(responseMessage), productSnippet(c))

	return subject, emailShell(inner)
}

// textFallback is the plain-text part of the multipart message.
func textFallback(subject string) string {
	return subject + "\n\nPlease view this message in an HTML-capable email client."
}
