package lead

import "net/url"

// UTM is the marketing attribution triple carried on a lead.
type UTM struct {
	Source   string
	Medium   string
	Campaign string
}

// UTMFromReferrer pulls utm_* parameters out of the referring page's
// URL, falling back per-parameter to the supplied values when the
// referrer lacks them. An unparseable referrer yields the fallback
// unchanged; attribution is best-effort.
func UTMFromReferrer(referrer string, fallback UTM) UTM {
	if referrer == "" {
		return fallback
	}

	u, err := url.Parse(referrer)
	if err != nil {
		return fallback
	}

	q := u.Query()
	out := fallback

	if v := q.Get("utm_source"); v != "" {
		out.Source = v
	}
	if v := q.Get("utm_medium"); v != "" {
		out.Medium = v
	}
	if v := q.Get("utm_campaign"); v != "" {
		out.Campaign = v
	}

	return out
}

// Apply copies the attribution onto a record.
func (u UTM) Apply(r *Record) {
	r.UTMSource = u.Source
	r.UTMMedium = u.Medium
	r.UTMCampaign = u.Campaign
}
