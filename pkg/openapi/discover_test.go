package openapi_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoneinput/pkg/openapi"
)

func TestDiscoverByFormatAndExtension(t *testing.T) {
	ops := map[string]openapi.Operation{
		"signup": {
			ID:     "signup",
			Method: "POST",
			Path:   "/signup",
			RequestBody: openapi.Schema{
				Type:     "object",
				Required: []string{"phone"},
				Properties: map[string]openapi.Schema{
					"phone": {Type: "string", Format: "TEL", Title: " Phone "},
					"email": {Type: "string", Format: "email"},
					"count": {Type: "integer", Format: "tel"},
					"alt": {Type: "string", Extensions: map[string]any{
						openapi.ExtensionKey: map[string]any{
							"placeholder":       "Alternate",
							"country-order":     []any{"de", "at"},
							"format-on-display": true,
							"required":          false,
							"initial-country":   nil,
						},
					}},
					"contacts": {Type: "array", Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]openapi.Schema{
							"number": {Type: "string", Format: "e164"},
						},
					}},
				},
			},
		},
		"empty": {ID: "empty", Method: "GET", Path: "/empty"},
	}

	got := openapi.Discover(ops)
	want := []openapi.PhoneField{
		{
			OperationID: "signup", Method: "POST", Path: "/signup", Field: "alt",
			Attributes: map[string]string{
				"name":              "alt",
				"placeholder":       "Alternate",
				"country-order":     "de,at",
				"format-on-display": "",
				"initial-country":   "",
			},
		},
		{
			OperationID: "signup", Method: "POST", Path: "/signup", Field: "contacts[].number",
			Attributes: map[string]string{"name": "contacts[].number"},
		},
		{
			OperationID: "signup", Method: "POST", Path: "/signup", Field: "phone",
			Attributes: map[string]string{"name": "phone", "required": "", "label": "Phone"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", diff)
	}
}

func TestDiscoverExtensionOptOut(t *testing.T) {
	ops := map[string]openapi.Operation{
		"op": {ID: "op", Method: "POST", Path: "/", RequestBody: openapi.Schema{
			Properties: map[string]openapi.Schema{
				"fax":  {Type: "string", Format: "tel", Extensions: map[string]any{openapi.ExtensionKey: false}},
				"cell": {Type: "string", Extensions: map[string]any{openapi.ExtensionKey: true}},
			},
		}},
	}
	got := openapi.Discover(ops)
	if len(got) != 1 || got[0].Field != "cell" {
		t.Fatalf("expected only cell, got %+v", got)
	}
}

func TestParseSource(t *testing.T) {
	cases := []struct {
		in      string
		kind    openapi.SourceKind
		wantErr bool
	}{
		{in: "https://example.com/openapi.yaml", kind: openapi.SourceKindURL},
		{in: "HTTP://example.com/openapi.yaml", kind: openapi.SourceKindURL},
		{in: "./api/openapi.yaml", kind: openapi.SourceKindFile},
		{in: "  ", wantErr: true},
	}
	for _, tc := range cases {
		src, err := openapi.ParseSource(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if src.Kind() != tc.kind {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.kind, src.Kind())
		}
	}
}
