package activity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// titles are display strings only, dedup keys fold them before comparing

func auctionTitle(cat Category, platform string, amount *float64) string {
	name := platformName(platform)
	switch cat {
	case CategoryAuctionSold:
		if amount != nil {
			p := message.NewPrinter(language.English)
			return p.Sprintf("Sold on %s for $%d", name, int64(*amount+0.5))
		}
		return "Sold on " + name
	case CategoryAuctionReserveNotMet:
		return "Reserve not met on " + name
	}
	return "Auction ended on " + name
}

func listingTitle(cat Category, platform, lot string) string {
	name := platformName(platform)
	var b strings.Builder
	switch cat {
	case CategoryScheduledAuction:
		b.WriteString("Upcoming auction on ")
	case CategoryAuctionSold:
		b.WriteString("Sold on ")
	default:
		b.WriteString("Listing ended on ")
	}
	b.WriteString(name)
	if lot = strings.TrimSpace(lot); lot != "" {
		b.WriteString(" (lot ")
		b.WriteString(lot)
		b.WriteString(")")
	}
	return b.String()
}

var platformNames = map[string]string{
	"bat":             "Bring a Trailer",
	"bringatrailer":   "Bring a Trailer",
	"cars_and_bids":   "Cars & Bids",
	"carsandbids":     "Cars & Bids",
	"mecum":           "Mecum",
	"barrett_jackson": "Barrett-Jackson",
	"rm_sothebys":     "RM Sotheby's",
	"pcarmarket":      "PCARMARKET",
	"collecting_cars": "Collecting Cars",
}

func platformName(p string) string {
	key := strings.ToLower(strings.TrimSpace(p))
	if n, ok := platformNames[key]; ok {
		return n
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
