// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the workspace backend.
//
// The backend exposes one POST endpoint per mode (/assistant, /search,
// /agent) accepting {"query": ...} and answering {"response": ...}, plus
// search results in search mode. Three GET endpoints support the session:
// /health for the startup probe, /sync to trigger a data refresh, and
// /reminders for the scheduled job list.
//
// Retry policy: queries are never retried because submitting one twice
// would double-process it. The idempotent GETs get exactly one retry with
// jitter, and a rate limiter keeps repeated invocations polite.
//
// All failures surface as *APIError or a wrapped transport error; the UI
// converts them to transcript messages or toasts, never crashes.
package api
