// SPDX-License-Identifier: Apache-2.0

package harvest

import "strings"

// ProviderType buckets a harvested address by its domain. The report groups
// addresses per bucket so a reviewer can see at a glance whether a dump is
// consumer webmail, disposable throwaways, or a company directory.
func ProviderType(email string) string {
	parts := strings.Split(strings.ToLower(email), "@")
	if len(parts) != 2 {
		return "EMAIL"
	}
	domain := parts[1]

	switch domain {
	case "gmail.com", "googlemail.com":
		return "GMAIL"
	case "outlook.com", "hotmail.com", "live.com", "msn.com":
		return "OUTLOOK"
	case "yahoo.com", "yahoo.co.uk", "yahoo.ca", "yahoo.de", "yahoo.fr", "yahoo.co.jp", "yahoo.co.in":
		return "YAHOO"
	case "icloud.com", "me.com", "mac.com":
		return "ICLOUD"
	case "aol.com":
		return "AOL"
	case "protonmail.com", "proton.me", "pm.me":
		return "PROTONMAIL"
	case "fastmail.com", "fastmail.fm":
		return "FASTMAIL"
	case "zoho.com", "zohomail.com":
		return "ZOHO"
	case "yandex.com", "yandex.ru":
		return "YANDEX"
	case "mail.ru", "inbox.ru", "list.ru", "bk.ru":
		return "MAIL_RU"
	}

	for _, suffix := range []string{".edu", ".ac.uk", ".edu.au", ".edu.ca", ".ac.in", ".edu.sg"} {
		if strings.HasSuffix(domain, suffix) {
			return "EDUCATIONAL"
		}
	}
	for _, suffix := range []string{".gov", ".gov.uk", ".gov.au", ".gov.ca", ".mil"} {
		if strings.HasSuffix(domain, suffix) {
			return "GOVERNMENT"
		}
	}
	if disposableDomains[domain] {
		return "DISPOSABLE"
	}
	if parts := strings.Split(domain, "."); len(parts) >= 2 && len(parts[0]) > 3 {
		return "BUSINESS"
	}
	return "EMAIL"
}

var disposableDomains = map[string]bool{
	"10minutemail.com":   true,
	"guerrillamail.com":  true,
	"mailinator.com":     true,
	"tempmail.org":       true,
	"temp-mail.org":      true,
	"throwaway.email":    true,
	"maildrop.cc":        true,
	"sharklasers.com":    true,
	"pokemail.net":       true,
	"spam4.me":           true,
	"emailondeck.com":    true,
	"fakeinbox.com":      true,
	"getnada.com":        true,
	"jetable.org":        true,
	"mailcatch.com":      true,
	"mailnesia.com":      true,
	"mytrashmail.com":    true,
	"quickinbox.com":     true,
	"tempinbox.com":      true,
	"trashmail.com":      true,
	"trashmail.de":       true,
	"trashmail.net":      true,
	"wegwerfmail.de":     true,
	"yopmail.com":        true,
}
