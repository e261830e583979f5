// Package domain contains the core domain entities shared by the contact form
// client, the contact service and the storage layer. These types are free of
// infrastructure concerns so they can be passed across packages.
package domain
