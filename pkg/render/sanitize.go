package render

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// formSanitizer allows the markup trade-entry forms are built from and
// nothing else. Scripts, event handlers and styles are stripped.
func formSanitizer() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"form", "fieldset", "legend", "label", "input", "select", "option",
			"optgroup", "textarea", "button", "div", "span", "p", "h3", "h4",
			"ul", "li", "table", "thead", "tbody", "tr", "th", "td", "small",
		)
		policy.AllowAttrs("class", "id", "title", "role").Globally()
		policy.AllowAttrs("aria-label", "aria-describedby", "aria-hidden").Globally()
		policy.AllowDataAttributes()

		policy.AllowAttrs("name", "type", "value", "placeholder", "checked",
			"disabled", "readonly", "required", "min", "max", "step",
			"autocomplete").OnElements("input")
		policy.AllowAttrs("name", "disabled", "required", "multiple").OnElements("select")
		policy.AllowAttrs("value", "selected", "disabled").OnElements("option")
		policy.AllowAttrs("label").OnElements("optgroup")
		policy.AllowAttrs("name", "rows", "cols", "placeholder", "readonly").OnElements("textarea")
		policy.AllowAttrs("type", "name", "value", "disabled").OnElements("button")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("name", "novalidate", "autocomplete").OnElements("form")
		policy.AllowAttrs("name", "disabled").OnElements("fieldset")
		policy.AllowAttrs("colspan", "rowspan").OnElements("td", "th")

		formPolicy = policy
	})
	return formPolicy
}
