package templates

import (
	"fmt"
	"html"
	"strings"
)

// BulkSummaryEmail generates the HTML and plain-text bodies for a bulk action
// outcome email. Error lines are HTML-escaped before rendering.
func BulkSummaryEmail(multipleRef, action string, processed int, errs []string) (htmlContent, plainText string) {
	var plain strings.Builder
	fmt.Fprintf(&plain, "Bulk action %q on multiple %s has finished.\n\n", action, multipleRef)
	fmt.Fprintf(&plain, "Cases processed: %d\n", processed)
	fmt.Fprintf(&plain, "Errors: %d\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(&plain, "  - %s\n", e)
	}

	var errRows strings.Builder
	for _, e := range errs {
		fmt.Fprintf(&errRows, `<li>%s</li>`, html.EscapeString(e))
	}
	errBlock := "<p>All member cases were processed successfully.</p>"
	if errRows.Len() > 0 {
		errBlock = fmt.Sprintf(`<p>The following case references could not be processed:</p><ul>%s</ul>`, errRows.String())
	}

	htmlContent = fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Multiple %s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f3f2f1; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background-color: #0b0c0c; padding: 30px; text-align: left; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; font-weight: 700; }
    .content { padding: 30px; color: #0b0c0c; line-height: 1.6; font-size: 15px; }
    .footer { padding: 20px 30px; color: #505a5f; font-size: 12px; border-top: 1px solid #b1b4b6; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Multiple %s - %s</h1>
    </div>
    <div class="content">
      <p>Bulk action <strong>%s</strong> has finished.</p>
      <p>Cases processed: <strong>%d</strong></p>
      %s
    </div>
    <div class="footer">
      <p>Employment Tribunals case management - do not reply to this email.</p>
    </div>
  </div>
</body>
</html>`,
		html.EscapeString(multipleRef),
		html.EscapeString(multipleRef), html.EscapeString(action),
		html.EscapeString(action), processed, errBlock)

	return htmlContent, plain.String()
}

// AuditSummaryEmail generates the HTML and plain-text bodies for the nightly
// consistency audit report.
func AuditSummaryEmail(country string, checked int, findings []string) (htmlContent, plainText string) {
	var plain strings.Builder
	fmt.Fprintf(&plain, "Nightly multiples audit for %s.\n\n", country)
	fmt.Fprintf(&plain, "Multiples checked: %d\n", checked)
	fmt.Fprintf(&plain, "Findings: %d\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(&plain, "  - %s\n", f)
	}

	var rows strings.Builder
	for _, f := range findings {
		fmt.Fprintf(&rows, `<li>%s</li>`, html.EscapeString(f))
	}
	body := "<p>No membership drift detected.</p>"
	if rows.Len() > 0 {
		body = fmt.Sprintf(`<p>Membership drift detected:</p><ul>%s</ul>`, rows.String())
	}

	htmlContent = fmt.Sprintf(`<html><body><h2>Nightly multiples audit - %s</h2><p>Multiples checked: %d</p>%s</body></html>`,
		html.EscapeString(country), checked, body)

	return htmlContent, plain.String()
}
