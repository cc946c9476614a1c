package render

import (
	"fmt"
	"slices"
	"strings"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var allowedFormats = []string{string(FormatHTML), string(FormatText), string(FormatJSON)}

func ValidateFormat(format string) (Format, error) {
	if !slices.Contains(allowedFormats, format) {
		return "", fmt.Errorf("invalid format %s. Must be one of %s", format, strings.Join(allowedFormats, ", "))
	}
	return Format(format), nil
}
