// Package errx provides error descriptors, the per-package registration
// sets that declare them, and structured error instances raised from them.
//
// Each package that emits errors owns one Set and declares its codes at
// package scope:
//
//	var errs = errx.NewSet("billing")
//
//	var CardDeclined = errs.Define("CARD_DECLINED", "CardDeclined",
//		http.StatusPaymentRequired, "Card {last4} was declined",
//		errx.WithTags("payments"))
//
//	// Errors exposes the billing descriptors to the catalog.
//	func Errors() *errx.Set { return errs }
//
// A Descriptor carries:
//   - A domain naming the owning subsystem (e.g., "auth")
//   - A code, unique within the domain (e.g., "AUTH_MISSING")
//   - The symbolic variant name as declared in source
//   - A message template with optional {field} placeholders
//   - Optional HTTP status, documentation URL and tags
//
// Descriptors are collected into a catalog by package catalog. Errors are
// raised from them at runtime:
//
//	err := errx.New(billing.CardDeclined).
//		WithField("last4", "4242").
//		WithContext("customer", id).
//		WithBase(sentinelErr)
//
//	if errors.Is(err, sentinelErr) {
//		// Handle specific error
//	}
//
//	fmt.Println(errx.UserString(err))  // Card 4242 was declined
//	fmt.Println(errx.DebugString(err)) // Full debug details
package errx
