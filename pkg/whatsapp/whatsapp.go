// Package whatsapp builds wa.me deep links that open a prefilled conversation
// with the foundation's admission admin.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const host = "wa.me"

// Registration carries the four intake fields embedded in the hand-off message.
type Registration struct {
	FullName    string
	NickName    string
	Level       string
	ParentPhone string
}

// NormalizePhone strips everything but digits so the number is usable as a
// wa.me path segment.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RegistrationMessage renders the fixed bilingual hand-off template. The four
// labeled lines always appear in the same order.
func RegistrationMessage(reg Registration) string {
	return fmt.Sprintf(`Halo Admin SPMB Yayasan Dhia El Widad, saya ingin mendaftarkan calon murid baru:

*Nama Lengkap:* %s
*Nama Panggilan:* %s
*Jenjang:* %s
*No HP Orang Tua:* %s

Mohon petunjuk untuk langkah selanjutnya terkait pengiriman berkas. Terima kasih.`,
		reg.FullName, reg.NickName, reg.Level, reg.ParentPhone)
}

// ContactMessage is the plain help-request text used by the landing page's
// "hubungi admin" action.
func ContactMessage() string {
	return "Halo Admin Yayasan Dhia El Widad, saya butuh bantuan terkait pendaftaran murid baru."
}

// Link composes the deep link for the given destination phone and message.
// The phone is normalised to digits; the message is percent-encoded.
func Link(phone, message string) string {
	u := url.URL{
		Scheme:   "https",
		Host:     host,
		Path:     "/" + NormalizePhone(phone),
		RawQuery: url.Values{"text": {message}}.Encode(),
	}
	return u.String()
}

// RegistrationLink is the one-call form used by the public intake.
func RegistrationLink(phone string, reg Registration) string {
	return Link(phone, RegistrationMessage(reg))
}
