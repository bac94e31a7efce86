package views

import "time"

type Footer struct {
	Description     string
	QuickLinks      []Link
	CustomerService []Link
	Address         string
	Phone           string
	Email           string
	Year            int
}

func NewFooter(now time.Time) Footer {
	return Footer{
		Description: "Your premium destination for high-quality audio equipment. Experience sound like never before with our curated collection of headphones, earbuds, and earphones.",
		QuickLinks: []Link{
			{Label: "Home", Href: "/"},
			{Label: "Products", Href: "/products"},
			{Label: "Headphones", Href: "/products?category=headphones"},
			{Label: "Earbuds", Href: "/products?category=earbuds"},
			{Label: "Wireless", Href: "/products?category=wireless"},
		},
		CustomerService: []Link{
			{Label: "Track Order", Href: "/orders"},
			{Label: "Shopping Cart", Href: "/cart"},
		},
		Address: "123 Audio Street, Sound City, SC 12345",
		Phone:   "+1 (555) 123-4567",
		Email:   "support@soundplus.com",
		Year:    now.Year(),
	}
}
