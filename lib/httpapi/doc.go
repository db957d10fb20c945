// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package httpapi serves the bracketing engine as read-only JSON over
// HTTP.
//
// Every endpoint is a GET whose query string overrides the handler's
// base settings field by field:
//
//	bracket_count  shots per bracket (3, 5, 7, 9, 11)
//	ev_spacing     stops between shots (1, 2, 3)
//	min, max       shutter bounds, anything shutter.Parse accepts
//	third_stops    true or false
//
// Routes:
//
//	GET /healthz       liveness and build info
//	GET /v1/settings   the base settings
//	GET /v1/speeds     the bounded shutter table
//	GET /v1/format     ?seconds= to a label
//	GET /v1/parse      ?text= to seconds
//	GET /v1/sequence   ?anchor=&speed= bracket around an anchor
//	GET /v1/window     ?row= or ?scroll_y= sliding window snapshot
//	GET /v1/plan       ?preset= or ?anchor=&speed= shoot plan
//
// Malformed query values produce 400 with a body of the form
// {"error": "..."}. The base settings can follow a settings file
// through [Handler.Follow], so a running server tracks changes made
// from the CLI or the wheel.
//
// [Server] owns the TCP listener and graceful shutdown.
package httpapi
