package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-phoneinput/pkg/widget"
)

// attrFlags collects widget attributes from a YAML file, --attr pairs and
// the dedicated flags, in increasing precedence.
type attrFlags struct {
	config string
	attrs  map[string]string

	name           string
	value          string
	label          string
	placeholder    string
	initialCountry string
	countryOrder   []string
	required       bool
	disabled       bool
	separateDial   bool
	formatDisplay  bool
}

func (a *attrFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&a.config, "config", "c", "", "YAML file with widget attributes")
	fs.StringToStringVar(&a.attrs, "attr", nil, "extra attribute as name=value (repeatable)")
	fs.StringVar(&a.name, widget.AttrName, "", "form field name")
	fs.StringVar(&a.value, widget.AttrValue, "", "initial number")
	fs.StringVar(&a.label, widget.AttrLabel, "", "label text")
	fs.StringVar(&a.placeholder, widget.AttrPlaceholder, "", "placeholder text")
	fs.StringVar(&a.initialCountry, widget.AttrInitialCountry, "", "ISO2 code of the initially selected country")
	fs.StringSliceVar(&a.countryOrder, widget.AttrCountryOrder, nil, "ISO2 codes listed first")
	fs.BoolVar(&a.required, widget.AttrRequired, false, "require a number")
	fs.BoolVar(&a.disabled, widget.AttrDisabled, false, "render the field disabled")
	fs.BoolVar(&a.separateDial, widget.AttrSeparateDialCode, false, "show the dial code next to the field")
	fs.BoolVar(&a.formatDisplay, widget.AttrFormatOnDisplay, false, "format the initial number for display")
}

func (a *attrFlags) resolve(cmd *cobra.Command) (map[string]string, error) {
	attrs := map[string]string{}
	if a.config != "" {
		f, err := os.Open(a.config)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		loaded, err := widget.LoadAttributes(f)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", a.config, err)
		}
		attrs = loaded
	}
	for name, value := range a.attrs {
		attrs[name] = value
	}

	flags := cmd.Flags()
	text := map[string]string{
		widget.AttrName:           a.name,
		widget.AttrValue:          a.value,
		widget.AttrLabel:          a.label,
		widget.AttrPlaceholder:    a.placeholder,
		widget.AttrInitialCountry: a.initialCountry,
	}
	for name, value := range text {
		if flags.Changed(name) {
			attrs[name] = value
		}
	}
	if flags.Changed(widget.AttrCountryOrder) {
		order, _ := flags.GetStringSlice(widget.AttrCountryOrder)
		attrs[widget.AttrCountryOrder] = strings.Join(order, ",")
	}
	presence := map[string]bool{
		widget.AttrRequired:         a.required,
		widget.AttrDisabled:         a.disabled,
		widget.AttrSeparateDialCode: a.separateDial,
		widget.AttrFormatOnDisplay:  a.formatDisplay,
	}
	for name, on := range presence {
		if !flags.Changed(name) {
			continue
		}
		if on {
			attrs[name] = ""
		} else {
			delete(attrs, name)
		}
	}
	return attrs, nil
}
