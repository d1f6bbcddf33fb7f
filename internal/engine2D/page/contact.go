package page

import (
	"fmt"

	"ambient-portfolio/internal/contact"
	"ambient-portfolio/internal/content"
	"ambient-portfolio/internal/engine2D/layout"
)

const messageRows = 6

var fieldLabels = [...]string{
	contact.FieldName:    "Name",
	contact.FieldEmail:   "Email",
	contact.FieldSubject: "Subject",
	contact.FieldMessage: "Message",
}

// NoFocus marks that no input has keyboard focus.
const NoFocus contact.Field = -1

// FieldID is the element id of an input.
func FieldID(f contact.Field) string {
	return fmt.Sprintf("field:%d", int(f))
}

// ParseFieldID is the inverse of FieldID.
func ParseFieldID(id string) (contact.Field, bool) {
	var n int
	if _, err := fmt.Sscanf(id, "field:%d", &n); err != nil || n < 0 || n >= len(fieldLabels) {
		return NoFocus, false
	}
	return contact.Field(n), true
}

// SubmitLabel is the submit button caption for the form's state.
func SubmitLabel(form *contact.Form) string {
	switch {
	case form.Status() == contact.StatusSubmitting:
		return "Sending..."
	case form.VerifyState() == contact.VerifyPending:
		return "Verify & Send"
	}
	return "Send Message"
}

// BuildContact lays out the contact links and the message form.
func BuildContact(site *content.Site, form *contact.Form, focus contact.Field, width, height float64, m Measurer) *Page {
	b := newBuilder(m, width, height)
	b.header(site.Title, navLinks)

	end := b.beginSection("contact-form", height-HeaderHeight)
	heading := site.Contact.Heading
	if heading == "" {
		heading = "Get In Touch"
	}
	b.text(KindHeading, heading, HeadingSize)
	var links [][2]string
	for _, cm := range site.Contact.Methods {
		if cm.Link != "" {
			links = append(links, [2]string{cm.Value, cm.Link})
		}
	}
	b.links(links)
	b.y += Gap

	values := form.Fields()
	for f, v := range []string{values.Name, values.Email, values.Subject, values.Message} {
		b.input(contact.Field(f), v, focus)
	}

	busy := form.Status() == contact.StatusSubmitting
	h := b.lineHeight(BodySize) + 2*buttonPadY
	label := SubmitLabel(form)
	r := layout.Rect{X: b.x, Y: b.y, W: b.m.Measure(label, BodySize) + 2*buttonPadX, H: h}
	role := layout.RoleButton
	if busy {
		role = layout.RoleBusy
	}
	el := b.element("submit", role, r)
	el.Disabled = !form.CanSubmit()
	b.add(Block{Kind: KindButton, Lines: []string{label}, Size: BodySize, Bounds: r, Element: el, Accent: !el.Disabled})
	b.y += h + Gap

	switch form.VerifyState() {
	case contact.VerifyPending:
		b.text(KindNotice, "Complete the security check to send your message.", SmallSize)
	case contact.VerifyVerified:
		b.text(KindNotice, "Verified. You can send your message now.", SmallSize)
	case contact.VerifyUnavailable:
		b.text(KindNotice, contact.UnavailableNotice, SmallSize)
	}
	if msg := form.Status().Message(); msg != "" {
		b.text(KindNotice, msg, SmallSize)
	}
	end()
	return b.finish()
}

func (b *builder) input(f contact.Field, value string, focus contact.Field) {
	lh := b.lineHeight(BodySize)
	b.add(Block{Kind: KindText, Lines: []string{fieldLabels[f]}, Size: SmallSize, Bounds: layout.Rect{X: b.x, Y: b.y, W: b.w, H: b.lineHeight(SmallSize)}})
	b.y += b.lineHeight(SmallSize)

	rows := 1
	if f == contact.FieldMessage {
		rows = messageRows
	}
	r := layout.Rect{X: b.x, Y: b.y, W: b.w, H: float64(rows)*lh + buttonPadY*2}
	lines := Wrap(b.m, value, BodySize, b.w-2*chipPadX)
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	el := b.element(FieldID(f), layout.RoleTextInput, r)
	b.add(Block{Kind: KindInput, Lines: lines, Size: BodySize, Bounds: r, Element: el, Accent: f == focus, Index: int(f)})
	b.y += r.H + Gap/2
}
