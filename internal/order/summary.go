package order

import (
	"fmt"
	"strings"

	"github.com/gordopods/storefront/internal/delivery"
	"github.com/gordopods/storefront/internal/money"
)

// RenderSummary builds the WhatsApp message for o. Output depends only on its
// arguments.
func RenderSummary(o Order, loc money.Locale) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Pedido #%s*\n", o.Number)
	fmt.Fprintf(&b, "Data: %s\n", o.CreatedAt.Format("02/01/2006 15:04"))

	b.WriteString("\n*Cliente*\n")
	fmt.Fprintf(&b, "Nome: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "Telefone: %s\n", o.Customer.Phone)
	if !blank(o.Customer.Email) {
		fmt.Fprintf(&b, "E-mail: %s\n", o.Customer.Email)
	}

	if !o.Delivery.IsPickup() {
		a := o.Customer.Address
		b.WriteString("\n*Endereço de entrega*\n")
		line := a.Street + ", " + a.Number
		if !blank(a.Complement) {
			line += " - " + a.Complement
		}
		b.WriteString(line + "\n")
		fmt.Fprintf(&b, "Bairro: %s\n", a.District)
		if !blank(a.City) {
			fmt.Fprintf(&b, "Cidade: %s\n", a.City)
		}
		if !blank(a.Reference) {
			fmt.Fprintf(&b, "Referência: %s\n", a.Reference)
		}
	}

	b.WriteString("\n*Itens*\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%dx %s - %s\n", it.Quantity, it.ProductName, money.Format(it.TotalPrice, loc))
		for _, s := range it.Selections {
			fmt.Fprintf(&b, "  %s: %s", s.GroupName, s.OptionName)
			if s.PriceModifier > 0 {
				fmt.Fprintf(&b, " (+%s)", money.Format(s.PriceModifier, loc))
			} else if s.PriceModifier < 0 {
				fmt.Fprintf(&b, " (%s)", money.Format(s.PriceModifier, loc))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", money.Format(o.Subtotal, loc))
	fmt.Fprintf(&b, "%s\n", deliveryLine(o.Delivery, loc))
	fmt.Fprintf(&b, "*Total: %s*\n", money.Format(o.Total, loc))

	if !blank(o.Notes) {
		fmt.Fprintf(&b, "\nObservações: %s\n", o.Notes)
	}
	return b.String()
}

func deliveryLine(opt delivery.Option, loc money.Locale) string {
	if opt.IsPickup() {
		return delivery.LabelPickup + ": sem taxa"
	}
	return fmt.Sprintf("%s: %s", opt.Label, money.Format(opt.Fee, loc))
}
