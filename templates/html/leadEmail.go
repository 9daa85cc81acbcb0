package templates

import (
	"fmt"
	"html"
	"strings"

	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

// RenderLeadNotification generates the branded HTML for the "sell your car"
// notification sent to the dealership when a lead is submitted. Uploaded
// photos are embedded and the footer links back to the persisted summary.
func RenderLeadNotification(lead models.Lead, summaryURL string) string {
	esc := html.EscapeString

	var images strings.Builder
	for _, u := range lead.ImageURLs {
		images.WriteString(fmt.Sprintf(
			`<img src="%s" alt="foto veicolo" style="width: 160px; height: 120px; object-fit: cover; border-radius: 6px; margin: 4px;">`,
			esc(u)))
	}

	message := strings.ReplaceAll(esc(lead.Message), "\n", "<br>")

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Nuova richiesta di vendita</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f4f4; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: #1a1a2e; padding: 32px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; font-weight: 700; }
    .content { padding: 32px 30px; color: #333; line-height: 1.6; font-size: 15px; }
    .content table { width: 100%%; border-collapse: collapse; }
    .content td { padding: 6px 0; border-bottom: 1px solid #eee; }
    .content td.label { color: #888; width: 140px; }
    .photos { padding: 0 30px 24px; }
    .footer { padding: 24px 30px; text-align: center; color: #888; font-size: 12px; border-top: 1px solid #eee; }
    .footer a { color: #1a1a2e; text-decoration: none; font-weight: 600; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Nuova richiesta di vendita</h1>
    </div>
    <div class="content">
      <table>
        <tr><td class="label">Nome</td><td>%s</td></tr>
        <tr><td class="label">Email</td><td>%s</td></tr>
        <tr><td class="label">Telefono</td><td>%s</td></tr>
        <tr><td class="label">Veicolo</td><td>%s %s</td></tr>
        <tr><td class="label">Anno</td><td>%s</td></tr>
        <tr><td class="label">Chilometraggio</td><td>%s</td></tr>
      </table>
      <p>%s</p>
    </div>
    <div class="photos">%s</div>
    <div class="footer">
      <p><a href="%s">Apri la richiesta completa</a></p>
      <p>&copy; RD Group | <a href="https://www.rdgroupautomobili.it">rdgroupautomobili.it</a></p>
    </div>
  </div>
</body>
</html>`,
		esc(lead.Name), esc(lead.Email), esc(lead.Phone),
		esc(lead.Make), esc(lead.Model), esc(lead.Year), esc(lead.Mileage),
		message, images.String(), esc(summaryURL))
}
