package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-phoneinput/pkg/widget"
)

// ExtensionKey marks a string property as a phone field. The value is either
// true or an object whose keys are widget attribute names.
const ExtensionKey = "x-phone-input"

// PhoneFormats are the string formats treated as phone numbers.
var PhoneFormats = []string{"tel", "phone", "phone-number", "e164"}

// PhoneField is a discovered request body property.
type PhoneField struct {
	OperationID string
	Method      string
	Path        string
	// Field is the dotted property path inside the request body.
	Field      string
	Attributes map[string]string
}

// Discover walks the request bodies of ops and returns their phone fields
// sorted by operation id and field path.
func Discover(ops map[string]Operation) []PhoneField {
	var out []PhoneField
	for _, op := range ops {
		walk(op.RequestBody, "", 0, func(field string, parent, schema Schema, name string) {
			attrs, ok := phoneAttributes(field, parent.IsRequired(name), schema)
			if !ok {
				return
			}
			out = append(out, PhoneField{
				OperationID: op.ID,
				Method:      op.Method,
				Path:        op.Path,
				Field:       field,
				Attributes:  attrs,
			})
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OperationID != out[j].OperationID {
			return out[i].OperationID < out[j].OperationID
		}
		return out[i].Field < out[j].Field
	})
	return out
}

const maxDepth = 16

func walk(schema Schema, prefix string, depth int, visit func(field string, parent, schema Schema, name string)) {
	if depth > maxDepth {
		return
	}
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prop := schema.Properties[name]
		field := name
		if prefix != "" {
			field = prefix + "." + name
		}
		visit(field, schema, prop, name)
		if len(prop.Properties) > 0 {
			walk(prop, field, depth+1, visit)
		}
		if prop.Items != nil && len(prop.Items.Properties) > 0 {
			walk(*prop.Items, field+"[]", depth+1, visit)
		}
	}
}

func phoneAttributes(field string, required bool, schema Schema) (map[string]string, bool) {
	if schema.Type != "" && schema.Type != "string" {
		return nil, false
	}
	ext, marked := schema.Extensions[ExtensionKey]
	if marked {
		if enabled, isBool := ext.(bool); isBool && !enabled {
			return nil, false
		}
	}
	if !marked && !isPhoneFormat(schema.Format) {
		return nil, false
	}

	attrs := map[string]string{widget.AttrName: field}
	if required {
		attrs[widget.AttrRequired] = ""
	}
	if label := strings.TrimSpace(schema.Title); label != "" {
		attrs[widget.AttrLabel] = label
	}
	if value, ok := schema.Default.(string); ok && value != "" {
		attrs[widget.AttrValue] = value
	}

	overrides, _ := ext.(map[string]any)
	for key, raw := range overrides {
		key = strings.ToLower(strings.TrimSpace(key))
		switch v := raw.(type) {
		case bool:
			if v {
				attrs[key] = ""
			} else {
				delete(attrs, key)
			}
		case string:
			attrs[key] = v
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			attrs[key] = strings.Join(parts, ",")
		case nil:
			attrs[key] = ""
		default:
			attrs[key] = fmt.Sprint(v)
		}
	}
	return attrs, true
}

func isPhoneFormat(format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, candidate := range PhoneFormats {
		if format == candidate {
			return true
		}
	}
	return false
}
