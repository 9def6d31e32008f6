// Package phonedata exposes the country list and number validation used by
// the phone-input widget as a small net/http component.
//
// Two routes are served. The countries route answers GET and HEAD with a JSON
// list of countries filtered by the q and limit parameters; prefix matches on
// name, ISO2 code or dial code sort first. The validate route accepts GET
// query parameters or a POST body (JSON or form encoded) carrying number and
// country, and reports the same validity, canonical number and error message
// the widget shows.
//
// An optional guard, per-client rate limit, Prometheus counters and
// OpenTelemetry spans can be configured through options.
package phonedata
