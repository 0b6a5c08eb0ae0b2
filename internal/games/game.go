package games

import (
	"fmt"
	"strconv"
	"strings"

	"pintidy/internal/fuzzy"
	"pintidy/internal/textutil"
)

// Game is one canonical table entry from the front-end XML database.
// TableFile is the table's file base name; Description is the display name
// media files must carry.
type Game struct {
	TableFile    string `xml:"name,attr"`
	Description  string `xml:"description"`
	Rom          string `xml:"rom"`
	Manufacturer string `xml:"manufacturer"`
	Year         string `xml:"year"`
	Type         string `xml:"type"`
	Enabled      string `xml:"enabled"`
	Rating       string `xml:"rating"`
	IpdbID       string `xml:"ipdbid"`
	IpdbNr       string `xml:"ipdbNr"`

	Derived Derived `xml:"-"`
}

// Derived holds fields computed once at load time; they are never
// recomputed from a mutated display name without re-deriving explicitly.
type Derived struct {
	Number                 int
	NameLower              string
	DescriptionLower       string
	YearInt                int
	Ipdb                   string
	IpdbURL                string
	IsOriginal             bool
	TableFileWithExtension string
	// MediaName is the display name with filesystem-unsafe characters
	// replaced; it is the base name media files for this table carry on
	// disk ("AC/DC (Stern 2012)" stores as "AC-DC (Stern 2012)").
	MediaName      string
	MediaNameLower string
}

// InitDerived computes the derived fields for g. Call after load and again
// after any explicit rename-fix mutation of the display name.
func (g *Game) InitDerived(number int) {
	d := &g.Derived
	if number > 0 {
		d.Number = number
	}

	d.IsOriginal = fuzzy.IsOriginalManufacturer(g.Manufacturer)
	if d.IsOriginal {
		d.Ipdb = ""
		d.IpdbURL = ""
	} else {
		d.Ipdb = g.IpdbID
		if d.Ipdb == "" {
			d.Ipdb = g.IpdbNr
		}
		if d.Ipdb == "" {
			d.IpdbURL = ""
		} else {
			d.IpdbURL = fmt.Sprintf("https://www.ipdb.org/machine.cgi?id=%s", d.Ipdb)
		}
	}

	// computed once here instead of on every comparison
	d.NameLower = strings.ToLower(g.TableFile)
	d.DescriptionLower = strings.ToLower(g.Description)
	d.MediaName = textutil.SanitizeFileName(g.Description)
	d.MediaNameLower = strings.ToLower(d.MediaName)
	d.YearInt, _ = strconv.Atoi(strings.TrimSpace(g.Year))
	d.TableFileWithExtension = g.TableFile + ".vpx"
}

// Rename updates the display name to match a resolved file name and
// re-derives the dependent fields.
func (g *Game) Rename(description string) {
	g.Description = description
	g.InitDerived(0)
}

// fuzzy.Candidate implementation.

func (g *Game) MatchName() string { return g.TableFile }

func (g *Game) MatchDescription() string { return g.Description }

func (g *Game) MatchManufacturer() string { return g.Manufacturer }

func (g *Game) MatchYear() int { return g.Derived.YearInt }
