// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
)

// ResetEmailData holds data for the password-reset email templates.
type ResetEmailData struct {
	DisplayName string
	ResetLink   string
}

// BuildResetEmail creates a password-reset email with HTML and text bodies.
func BuildResetEmail(data ResetEmailData) Email {
	if data.DisplayName == "" {
		data.DisplayName = "there"
	}
	return Email{
		To:       "", // Set by caller
		Subject:  "Password Reset Request",
		TextBody: buildResetText(data),
		HTMLBody: buildResetHTML(data),
	}
}

func buildResetText(data ResetEmailData) string {
	var buf bytes.Buffer
	buf.WriteString("Hello " + data.DisplayName + ",\n\n")
	buf.WriteString("We received a request to reset your password.\n\n")
	buf.WriteString("Click the following link to reset it:\n")
	buf.WriteString(data.ResetLink + "\n\n")
	buf.WriteString("This link expires in 1 hour.\n\n")
	buf.WriteString("If you did not request this, you can safely ignore this email.\n")
	return buf.String()
}

func buildResetHTML(data ResetEmailData) string {
	tmpl := template.Must(template.New("reset").Parse(resetHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const resetHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Password Reset</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">Password Reset</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Hello {{.DisplayName}},
              </p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                We received a request to reset your password. Click the button below to choose a new one:
              </p>
              <div style="text-align: center; margin-bottom: 24px;">
                <a href="{{.ResetLink}}" style="display: inline-block; padding: 12px 30px; background-color: #4f46e5; color: #ffffff; text-decoration: none; border-radius: 6px; font-size: 16px; font-weight: 600;">Reset Password</a>
              </div>
              <p style="margin: 0 0 24px; font-size: 14px; color: #6b7280;">
                Or copy and paste this link into your browser:<br>
                <span style="word-break: break-all; color: #4f46e5;">{{.ResetLink}}</span>
              </p>
              <p style="margin: 0; font-size: 14px; color: #6b7280;">
                This link expires in 1 hour. If you did not request a reset,
                you can safely ignore this email; your password will not change
                until the link is used.
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; border-top: 1px solid #e5e7eb; text-align: center;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af;">
                This is an automated email, please do not reply.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
