package validation

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces markup-significant characters with HTML entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Clean trims and escapes a free-text value.
func Clean(s string) string {
	return Escape(strings.TrimSpace(s))
}

// Mailbox providers whose aliases fold into one address.
var (
	icloudDomains = domainSet("icloud.com me.com")

	outlookDomains = domainSet(`hotmail.at hotmail.be hotmail.ca hotmail.cl hotmail.co.il
		hotmail.co.nz hotmail.co.th hotmail.co.uk hotmail.com hotmail.com.ar hotmail.com.au
		hotmail.com.br hotmail.com.gr hotmail.com.mx hotmail.com.pe hotmail.com.tr
		hotmail.com.vn hotmail.cz hotmail.de hotmail.dk hotmail.es hotmail.fr hotmail.hu
		hotmail.id hotmail.ie hotmail.in hotmail.it hotmail.jp hotmail.kr hotmail.lv
		hotmail.my hotmail.ph hotmail.pt hotmail.sa hotmail.sg hotmail.sk live.be live.co.uk
		live.com live.com.ar live.com.mx live.de live.es live.eu live.fr live.it live.nl
		msn.com outlook.at outlook.be outlook.cl outlook.co.il outlook.co.nz outlook.co.th
		outlook.com outlook.com.ar outlook.com.au outlook.com.br outlook.com.gr
		outlook.com.pe outlook.com.tr outlook.com.vn outlook.cz outlook.de outlook.dk
		outlook.es outlook.fr outlook.hu outlook.id outlook.ie outlook.in outlook.it
		outlook.jp outlook.kr outlook.lv outlook.my outlook.ph outlook.pt outlook.sa
		outlook.sg outlook.sk passport.com`)

	yahooDomains = domainSet(`rocketmail.com yahoo.ca yahoo.co.uk yahoo.com yahoo.de
		yahoo.fr yahoo.in yahoo.it ymail.com`)

	yandexDomains = domainSet("yandex.ru yandex.ua yandex.kz yandex.com yandex.by ya.ru")
)

func domainSet(list string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, d := range strings.Fields(list) {
		set[d] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, domain string) bool {
	_, ok := set[domain]
	return ok
}

// NormalizeEmail lower-cases the address and folds provider aliases into the
// mailbox they deliver to:
//   - Gmail: dots and "+tag" dropped, googlemail.com becomes gmail.com.
//   - iCloud and Outlook/Hotmail/Live: "+tag" dropped.
//   - Yahoo: the last "-tag" dropped.
//   - Yandex: every Yandex domain becomes yandex.ru.
//
// Values without exactly one "@" are only lower-cased.
func NormalizeEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	local, domain, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(domain, "@") || local == "" {
		return s
	}
	switch {
	case domain == "gmail.com" || domain == "googlemail.com":
		local, _, _ = strings.Cut(local, "+")
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	case inSet(icloudDomains, domain), inSet(outlookDomains, domain):
		local, _, _ = strings.Cut(local, "+")
	case inSet(yahooDomains, domain):
		if i := strings.LastIndex(local, "-"); i > 0 {
			local = local[:i]
		}
	case inSet(yandexDomains, domain):
		domain = "yandex.ru"
	}
	if local == "" {
		return s
	}
	return local + "@" + domain
}
