package views

import "github.com/soundplus/storefront/internal/session"

// ScrollThreshold is the window.scrollY past which the layout script
// switches the navbar to its compact style.
const ScrollThreshold = 50

type Link struct {
	Label  string
	Href   string
	Active bool
}

type Navbar struct {
	Links       []Link
	MobileLinks []Link

	SignedIn  bool
	Username  string
	ShowAdmin bool

	// UserMenu lists the dropdown entries; Logout is a form post and is
	// rendered separately.
	UserMenu   []Link
	ShowLogin  bool
	CartCount  int
	MenuOpen   bool
	MenuToggle string
	ScrollOver int
}

func NewNavbar(sess *session.Session, cartCount int, path string, menuOpen bool) Navbar {
	signedIn := sess != nil
	admin := sess.IsAdmin()

	n := Navbar{
		SignedIn:   signedIn,
		ShowAdmin:  admin,
		ShowLogin:  !signedIn,
		CartCount:  cartCount,
		MenuOpen:   menuOpen,
		ScrollOver: ScrollThreshold,
	}
	if signedIn {
		n.Username = sess.Username
	}
	if path == "" {
		path = "/"
	}
	n.MenuToggle = path + "?menu=open"
	if menuOpen {
		n.MenuToggle = path
	}

	n.Links = []Link{{Label: "Home", Href: "/"}, {Label: "Products", Href: "/products"}}
	if admin {
		n.Links = append(n.Links, Link{Label: "Admin", Href: "/admin"})
	}
	if signedIn {
		n.Links = append(n.Links, Link{Label: "My Orders", Href: "/orders"})
		n.UserMenu = []Link{{Label: "My Orders", Href: "/orders"}}
		if admin {
			n.UserMenu = append(n.UserMenu, Link{Label: "Admin Panel", Href: "/admin"})
		}
	}

	n.MobileLinks = append([]Link(nil), n.Links...)
	if !signedIn {
		n.MobileLinks = append(n.MobileLinks,
			Link{Label: "Login", Href: "/login"},
			Link{Label: "Register", Href: "/register"},
		)
	}

	mark(n.Links, path)
	mark(n.MobileLinks, path)
	mark(n.UserMenu, path)
	return n
}

func mark(links []Link, path string) {
	for i := range links {
		links[i].Active = links[i].Href == path
	}
}
