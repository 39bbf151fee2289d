package templates

import "golang.org/x/text/message"

// PageContext carries request-scoped rendering state shared by all pages.
type PageContext struct {
	// Lang is the resolved BCP 47 language tag for the response.
	Lang string
	// Loc localizes catalog keys; templates call it directly.
	Loc *message.Printer
	// Username identifies the signed-in admin, empty on the login page.
	Username string
}
