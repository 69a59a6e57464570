// Package branding applies a resolved tenant's visual attributes (theme
// colors, font, logo, page title) as an observable side effect of
// resolution. Application is idempotent, absent-safe, and can never fail
// or influence routing.
package branding
