package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// WWWBaseURL is the web frontend all generated links point at.
const WWWBaseURL = "https://www.inaturalist.org"

// Link patterns for recognizing pasted frontend URLs in queries.
var (
	TaxonLinkPat = regexp.MustCompile(WWWBaseURL + `/taxa/(\d+)`)
	ObsLinkPat   = regexp.MustCompile(WWWBaseURL + `/observations/(\d+)`)
	PlaceLinkPat = regexp.MustCompile(WWWBaseURL + `/places/(\d+)`)
	UserLinkPat  = regexp.MustCompile(WWWBaseURL + `/people/(\d+)`)
)

// ObsURL builds an observations search URL from API query parameters. The
// API's observed_on parameter is named on in the frontend; everything else
// carries over verbatim.
func ObsURL(params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		if key == "observed_on" {
			key = "on"
		}
		values.Set(key, value)
	}
	u := WWWBaseURL + "/observations"
	if encoded := values.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// LifelistsURL links to a user's life list page, scoped to a single taxon
// and place when the parameters name exactly one of each. The lifelists
// page cannot filter on multiple ids, so comma-separated values are left
// off rather than misrepresented.
func LifelistsURL(login string, params map[string]string) string {
	values := url.Values{}
	if taxonIDs := params["taxon_id"]; taxonIDs != "" && !strings.Contains(taxonIDs, ",") {
		values.Set("taxon_id", taxonIDs)
	}
	if placeIDs := params["place_id"]; placeIDs != "" && !strings.Contains(placeIDs, ",") {
		values.Set("place_id", placeIDs)
	}
	u := fmt.Sprintf("%s/lifelists/%s", WWWBaseURL, login)
	if encoded := values.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// TaxonURL links to a taxon's page.
func TaxonURL(taxonID int) string {
	return WWWBaseURL + "/taxa/" + strconv.Itoa(taxonID)
}

// TaxonObsURL builds an observations URL narrowed to one taxon, replacing
// any taxon_ids filter from the wider query with the single taxon.
func (r *Response) TaxonObsURL(taxonID int) string {
	params := r.ObsArgs()
	delete(params, "taxon_ids")
	params["taxon_id"] = strconv.Itoa(taxonID)
	return ObsURL(params)
}
