// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"fmt"
	"html/template"
	"time"
)

// DisplayDateFormat is used for dates in change lists and read-only fields.
const DisplayDateFormat = "Jan. 2, 2006, 15:04"

// DisplayValue renders a value for a change list cell. Empty strings and
// zero times show empty.
func DisplayValue(v any, empty string) string {
	switch v := v.(type) {
	case nil:
		return empty
	case string:
		if v == "" {
			return empty
		}
		return v
	case time.Time:
		if v.IsZero() {
			return empty
		}
		return v.Format(DisplayDateFormat)
	case fmt.Stringer:
		s := v.String()
		if s == "" {
			return empty
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}

// BooleanIcon renders a boolean column.
func BooleanIcon(b bool) template.HTML {
	if b {
		return `<span class="icon-yes" title="True">&#10004;</span>`
	}
	return `<span class="icon-no" title="False">&#10008;</span>`
}

// ChoicesLink renders the button that opens the choices of a question.
func ChoicesLink(site *Site, choices Registration, questionID int64) template.HTML {
	href := site.ChangeListURL(choices) + fmt.Sprintf("?question__id__exact=%d", questionID)
	return template.HTML(fmt.Sprintf(`<a class="button" href="%s" target="blank">Choices</a>&nbsp;`,
		template.HTMLEscapeString(href)))
}
