// Package markup checks that a rendered auth page provides the DOM structure
// the wasm widget binds to. It reports the same conditions the client
// diagnoses at runtime, before the page ever reaches a browser.
package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Its-donkey/auth-toggle/internal/ui/controller"
	"github.com/Its-donkey/auth-toggle/internal/ui/forms"
	"github.com/Its-donkey/auth-toggle/internal/ui/view"
)

// SwitchLink is a ".switch-link" element and its declared target.
type SwitchLink struct {
	Target string
	Valid  bool
}

// Report summarises an inspected page.
type Report struct {
	Layout      controller.Layout
	LoginTab    bool
	RegisterTab bool
	SwitchLinks []SwitchLink
	// MissingFields lists inputs that are absent from the page.
	MissingFields []forms.Field
	// Ungrouped lists inputs present on the page but outside their error group.
	Ungrouped []forms.Field
}

// Inspect parses an HTML document and reports on its structure.
func Inspect(r io.Reader) (Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("parse page: %w", err)
	}

	wrapper := doc.Find(".wrapper").First()
	report := Report{
		Layout: controller.Layout{
			ContainerFound:    wrapper.Length() > 0,
			LoginPaneFound:    doc.Find(".login-form").Length() > 0,
			RegisterPaneFound: doc.Find(".register-form").Length() > 0,
		},
		LoginTab:    doc.Find(".title-login").Length() > 0,
		RegisterTab: doc.Find(".title-register").Length() > 0,
	}
	if report.Layout.ContainerFound {
		report.Layout.PanesNested = wrapper.Find(".login-form").Length() > 0 &&
			wrapper.Find(".register-form").Length() > 0
	}

	doc.Find(".switch-link").Each(func(_ int, s *goquery.Selection) {
		target, _ := s.Attr("data-view")
		_, ok := view.Parse(target)
		report.SwitchLinks = append(report.SwitchLinks, SwitchLink{Target: target, Valid: ok})
	})

	fields := append(append([]forms.Field{}, forms.LoginFields...), forms.RegisterFields...)
	for _, f := range fields {
		input := doc.Find("#" + string(f)).First()
		if input.Length() == 0 {
			report.MissingFields = append(report.MissingFields, f)
			continue
		}
		if input.Closest(f.Group()).Length() == 0 {
			report.Ungrouped = append(report.Ungrouped, f)
		}
	}
	return report, nil
}

// Fatal reports whether the widget would disable itself on this page.
func (r Report) Fatal() bool {
	l := r.Layout
	return !l.ContainerFound || !l.LoginPaneFound || !l.RegisterPaneFound
}

// Problems describes every deviation from the expected structure.
func (r Report) Problems() []string {
	var out []string
	if r.Fatal() {
		out = append(out, controller.ErrStructureMissing.Error())
	} else if !r.Layout.PanesNested {
		out = append(out, "forms are not inside .wrapper; inline fallback will be used")
	}
	for _, link := range r.SwitchLinks {
		if !link.Valid {
			out = append(out, fmt.Sprintf("switch link target %q is ignored", link.Target))
		}
	}
	if len(r.MissingFields) > 0 {
		out = append(out, "missing inputs: "+joinFields(r.MissingFields))
	}
	if len(r.Ungrouped) > 0 {
		out = append(out, "inputs outside their error group: "+joinFields(r.Ungrouped))
	}
	return out
}

func joinFields(fields []forms.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = "#" + string(f)
	}
	return strings.Join(names, ", ")
}
