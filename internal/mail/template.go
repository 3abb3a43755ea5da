// Package mail renders notification bodies and delivers envelopes from
// the send-mail topic over SMTP.
package mail

import "fmt"

// ForgotPasswordHTML renders the password-reset email body.
func ForgotPasswordHTML(resetLink string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 520px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #1a1a2e;">Reset Your Password</h2>
  <p>We received a request to reset the password for your Work-Ora account.</p>
  <p>Click the button below to choose a new password. This link expires in 15 minutes.</p>
  <p style="text-align: center; margin: 32px 0;">
    <a href="%s" style="background-color: #4f46e5; color: #ffffff; padding: 12px 28px; border-radius: 6px; text-decoration: none;">Reset Password</a>
  </p>
  <p style="color: #6b7280; font-size: 13px;">If you did not request this, you can safely ignore this email.</p>
  <p style="color: #6b7280; font-size: 13px;">&mdash; The Ora Team</p>
</div>`, resetLink)
}

// ApplicationStatusHTML renders the application-status email body.
func ApplicationStatusHTML(jobTitle, status string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 520px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #1a1a2e;">Application Update</h2>
  <p>Your application for <strong>%s</strong> has a new status:</p>
  <p style="text-align: center; margin: 32px 0; font-size: 18px;"><strong>%s</strong></p>
  <p style="color: #6b7280; font-size: 13px;">Log in to Work-Ora to see the details.</p>
  <p style="color: #6b7280; font-size: 13px;">&mdash; The Ora Team</p>
</div>`, jobTitle, status)
}
