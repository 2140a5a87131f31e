package utils

import (
	"fmt"

	"jungleetoys_back_end/internal/models"
)

// OrderConfirmationHTML builds the order confirmation mail body. qrDataURI
// is a base64 PNG of the order-tracking QR (see TrackingQR), embedded
// inline so the customer can scan it from their phone.
func OrderConfirmationHTML(order models.Order, qrDataURI string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">£%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">£%.2f</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	qrHTML := ""
	if qrDataURI != "" {
		qrHTML = fmt.Sprintf(`
		<p style="text-align: center;">
			<img src="%s" alt="Track your order" width="160" height="160" />
			<br/><small>Scan to track your order</small>
		</p>`, qrDataURI)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Your JungleeToys order</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #2e7d32;">🦁 Thanks for your JungleeToys order!</h2>
		<p>Hi,</p>
		<p>Your order <strong>%s</strong> is confirmed and the jungle crew is packing it now.</p>

		<h3>Order details</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Price</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right;">Shipping (%s):</td>
					<td style="padding: 8px;">£%.2f</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 8px; font-weight: bold;">£%.2f</td>
				</tr>
			</tfoot>
		</table>
		%s
		<p style="color: #888; font-size: 12px;">JungleeToys Ltd, Unit 7, Riverside Trading Estate, Leeds LS10 1AB</p>
	</div>
</body>
</html>`, order.ID.String(), itemsHTML, order.ShippingName, order.ShippingAmount, order.AmountTotal, qrHTML)
}

// OfferDecisionHTML builds the mail sent when an admin decides an offer.
func OfferDecisionHTML(offer models.Offer) string {
	var headline, detail string

	switch offer.Status {
	case models.OfferStatusAccepted:
		headline = "Your offer was accepted! 🎉"
		detail = fmt.Sprintf(
			`We accepted your offer of <strong>£%.2f</strong> for <strong>%s</strong>. It is valid until %s — just check out as normal and the price will be applied.`,
			offer.Amount, offer.ProductName, offer.ExpiresAt.Format("2 January 2006 15:04"))
	case models.OfferStatusCountered:
		headline = "We have a counter-offer for you"
		detail = fmt.Sprintf(
			`Thanks for your offer of £%.2f for <strong>%s</strong>. We can do <strong>£%.2f</strong> — let us know within 48 hours.`,
			offer.Amount, offer.ProductName, offer.CounterAmount)
	default:
		headline = "About your offer"
		detail = fmt.Sprintf(
			`Unfortunately we can't accept your offer of £%.2f for <strong>%s</strong> this time. The listed price stays £%.2f.`,
			offer.Amount, offer.ProductName, offer.ListPrice)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #2e7d32;">%s</h2>
		<p>%s</p>
		<p style="color: #888; font-size: 12px;">JungleeToys Ltd, Unit 7, Riverside Trading Estate, Leeds LS10 1AB</p>
	</div>
</body>
</html>`, headline, detail)
}
