package handlers

import (
	"html"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/config"
	"github.com/gofiber/fiber/v2"
)

const legalStyle = `<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

type LegalHandler struct {
	appName string
	support string
}

func NewLegalHandler(cfg *config.Config) *LegalHandler {
	return &LegalHandler{
		appName: html.EscapeString(cfg.AppName),
		support: html.EscapeString(cfg.SupportMail),
	}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - ` + h.appName + `</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
` + legalStyle + `
</head><body>
<h1>Privacy Policy</h1>
<h2>Information We Collect</h2>
<p>We store your email address, username, optional profile details, and the notes you write. If you sign in with Apple, we receive your Apple ID identifier.</p>
<h2>Sharing</h2>
<p>Notes are private to you. A note is visible to another user only after you share it with their email address.</p>
<h2>Note History</h2>
<p>` + h.appName + ` keeps earlier versions of a note's title and content so you can review its history. History is deleted together with the note.</p>
<h2>Account Deletion</h2>
<p>Deleting your account removes your notes, their history, the shares you created, and the notes shared with you.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at ` + h.support + `</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - ` + h.appName + `</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
` + legalStyle + `
</head><body>
<h1>Terms of Service</h1>
<h2>Acceptance</h2>
<p>By using ` + h.appName + `, you agree to these terms.</p>
<h2>Your Content</h2>
<p>You own the notes you write. You are responsible for what you share with other users.</p>
<h2>Termination</h2>
<p>We may suspend or terminate accounts that abuse the service.</p>
<h2>Contact</h2>
<p>For questions, contact us at ` + h.support + `</p>
</body></html>`)
}
