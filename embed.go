package folio

import "embed"

// EmbeddedAssets contains the authoring UI: editor.html and editor.js.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
