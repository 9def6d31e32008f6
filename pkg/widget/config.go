package widget

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-phoneinput/pkg/dom"
)

// Host attributes.
const (
	AttrValue            = "value"
	AttrRequired         = "required"
	AttrName             = "name"
	AttrPlaceholder      = "placeholder"
	AttrDisabled         = "disabled"
	AttrLabel            = "label"
	AttrInitialCountry   = "initial-country"
	AttrCountryOrder     = "country-order"
	AttrSeparateDialCode = "separate-dial-code"
	AttrFormatOnDisplay  = "format-on-display"
)

// ObservedAttributes lists the attributes whose changes are applied to a
// ready widget. Other attributes are read at render and bind time only.
var ObservedAttributes = []string{
	AttrValue,
	AttrRequired,
	AttrName,
	AttrPlaceholder,
	AttrDisabled,
	AttrLabel,
	AttrInitialCountry,
}

// DefaultName is the field name used when the host has no name attribute.
const DefaultName = "phone"

// DefaultCountryOrder is used when the host has no usable country-order.
var DefaultCountryOrder = []string{"us"}

// Configuration is the widget configuration derived from host attributes.
type Configuration struct {
	Name             string   `yaml:"name" validate:"required"`
	Value            string   `yaml:"value"`
	Label            string   `yaml:"label"`
	Placeholder      string   `yaml:"placeholder"`
	Disabled         bool     `yaml:"disabled"`
	Required         bool     `yaml:"required"`
	InitialCountry   string   `yaml:"initial-country" validate:"omitempty,len=2,alpha"`
	CountryOrder     []string `yaml:"country-order" validate:"dive,len=2,alpha"`
	SeparateDialCode bool     `yaml:"separate-dial-code"`
	FormatOnDisplay  bool     `yaml:"format-on-display"`
}

// ReadConfiguration derives the configuration from host attributes. Missing
// attributes take their defaults; nothing here fails.
func ReadConfiguration(host *dom.Element) Configuration {
	cfg := Configuration{
		Name:         DefaultName,
		CountryOrder: append([]string(nil), DefaultCountryOrder...),
	}
	if host == nil {
		return cfg
	}
	if name := host.GetAttr(AttrName); name != "" {
		cfg.Name = name
	}
	cfg.Value = host.GetAttr(AttrValue)
	cfg.Label = host.GetAttr(AttrLabel)
	cfg.Placeholder = host.GetAttr(AttrPlaceholder)
	cfg.Disabled = host.HasAttr(AttrDisabled)
	cfg.Required = host.HasAttr(AttrRequired)
	cfg.InitialCountry = host.GetAttr(AttrInitialCountry)
	cfg.SeparateDialCode = host.HasAttr(AttrSeparateDialCode)
	cfg.FormatOnDisplay = host.HasAttr(AttrFormatOnDisplay)
	if raw, ok := host.Attr(AttrCountryOrder); ok {
		if order := splitCountryOrder(raw); len(order) > 0 {
			cfg.CountryOrder = order
		}
	}
	return cfg
}

func splitCountryOrder(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if code := strings.TrimSpace(part); code != "" {
			out = append(out, code)
		}
	}
	return out
}

var configValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

// Check reports configuration problems such as malformed country codes. The
// widget logs these and renders anyway.
func (c Configuration) Check() error {
	if err := configValidator().Struct(c); err != nil {
		return fmt.Errorf("widget: invalid configuration: %w", err)
	}
	return nil
}

// Attributes renders the configuration back into host attributes. Boolean
// settings become presence attributes; defaults are omitted.
func (c Configuration) Attributes() map[string]string {
	attrs := make(map[string]string)
	set := func(name, value string) {
		if value != "" {
			attrs[name] = value
		}
	}
	flag := func(name string, on bool) {
		if on {
			attrs[name] = ""
		}
	}
	if c.Name != DefaultName {
		set(AttrName, c.Name)
	}
	set(AttrValue, c.Value)
	set(AttrLabel, c.Label)
	set(AttrPlaceholder, c.Placeholder)
	set(AttrInitialCountry, c.InitialCountry)
	flag(AttrDisabled, c.Disabled)
	flag(AttrRequired, c.Required)
	flag(AttrSeparateDialCode, c.SeparateDialCode)
	flag(AttrFormatOnDisplay, c.FormatOnDisplay)
	if order := splitCountryOrder(strings.Join(c.CountryOrder, ",")); len(order) > 0 && !slices.Equal(order, DefaultCountryOrder) {
		attrs[AttrCountryOrder] = strings.Join(order, ",")
	}
	return attrs
}

// LoadAttributes decodes host attributes from a YAML mapping. Booleans map to
// presence (true) or absence (false), sequences are joined with commas and
// every other scalar is kept as written, so an unquoted +14155552671 stays a
// phone number:
//
//	name: mobile
//	required: true
//	value: +14155552671
//	country-order: [gb, us]
func LoadAttributes(r io.Reader) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("widget: decode attributes: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("widget: attributes must be a mapping")
	}

	attrs := make(map[string]string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := strings.ToLower(strings.TrimSpace(root.Content[i].Value))
		if name == "" {
			continue
		}
		node := root.Content[i+1]
		switch node.Kind {
		case yaml.ScalarNode:
			switch node.Tag {
			case "!!null":
				attrs[name] = ""
			case "!!bool":
				var on bool
				if err := node.Decode(&on); err != nil {
					return nil, fmt.Errorf("widget: attribute %q: %w", name, err)
				}
				if on {
					attrs[name] = ""
				}
			default:
				attrs[name] = node.Value
			}
		case yaml.SequenceNode:
			parts := make([]string, 0, len(node.Content))
			for _, item := range node.Content {
				parts = append(parts, strings.TrimSpace(item.Value))
			}
			attrs[name] = strings.Join(parts, ",")
		default:
			return nil, fmt.Errorf("widget: attribute %q has unsupported value", name)
		}
	}
	return attrs, nil
}

// sortedKeys keeps attribute application deterministic.
func sortedKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
