// Package intltel defines the boundary to the international telephone input
// library used by the phone input widget, plus a default implementation backed
// by github.com/nyaruka/phonenumbers.
//
// The contract follows intl-tel-input: a Library binds an Instance to a text
// field; the instance reads the field to produce the canonical (E.164) number,
// reports validity and the libphonenumber validation reason, and tracks the
// selected country.
package intltel
