// Package scaffold provides the embedded starter files written by
// "folio new".
package scaffold

import "embed"

// Templates contains the starter files. Files use Go text/template syntax
// and have a .tmpl suffix; project.json is generated, not templated.
//
//go:embed all:templates
var Templates embed.FS
