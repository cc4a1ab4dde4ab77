package logboard

import "embed"

// EmbeddedAssets contains the static assets served with the dashboard:
// style.css, dashboard.js, track.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
