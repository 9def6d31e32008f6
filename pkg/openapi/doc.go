// Package openapi finds phone number fields in OpenAPI documents so they can
// be rendered as phone-input widgets. The public types wrap the document,
// operations and schemas; the kin-openapi backed loader and parser live under
// internal/openapi and are constructed by the root phoneinput package.
package openapi
