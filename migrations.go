// Package sitecontact embeds assets shared by the commands of the site
// contact service.
package sitecontact

import "embed"

// Migrations holds the goose SQL migrations under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
