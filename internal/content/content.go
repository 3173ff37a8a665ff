// Package content holds the site's curated informational datasets: the
// monument's history timeline, the board of directors, the landing page
// features, and public affairs documents. The data is editorial, changes a
// few times a year through deployments, and so ships compiled in rather
// than living in the database.
package content

// TimelineEvent is one entry of the monument's history timeline.
type TimelineEvent struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Image       string `json:"image,omitempty"`
}

// Significance is one facet of the monument's historical significance.
type Significance struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// History bundles the full history page payload.
type History struct {
	TimelineEvents         []TimelineEvent `json:"timelineEvents"`
	HistoricalSignificance []Significance  `json:"historicalSignificance"`
}

// BoardMember is one member of the monument's board of directors.
type BoardMember struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Role        string   `json:"role"`
	Photo       string   `json:"photo,omitempty"`
	Description string   `json:"description"`
	Education   string   `json:"education"`
	Expertise   []string `json:"expertise"`
	Experience  []string `json:"experience"`
	Email       string   `json:"email"`
}

// Feature is one landing page feature card linking to a site section.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	To          string `json:"to"`
}

// FormDocument is one downloadable administrative form.
type FormDocument struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Category    string `json:"category"`
	URL         string `json:"url"`
}

// ContactInfo is one way of reaching the monument administration.
type ContactInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Value       string `json:"value"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Action      string `json:"action"`
	ButtonText  string `json:"buttonText"`
}

// PublicAffairs bundles the public affairs page payload.
type PublicAffairs struct {
	FormDocuments []FormDocument `json:"formDocuments"`
	ContactInfo   []ContactInfo  `json:"contactInfo"`
}

// HistoryData returns the history page dataset.
func HistoryData() History {
	return History{
		TimelineEvents:         timelineEvents,
		HistoricalSignificance: historicalSignificance,
	}
}

// BoardMembers returns the board of directors.
func BoardMembers() []BoardMember {
	return boardMembers
}

// Features returns the landing page feature cards.
func Features() []Feature {
	return features
}

// PublicAffairsData returns the public affairs page dataset.
func PublicAffairsData() PublicAffairs {
	return PublicAffairs{
		FormDocuments: formDocuments,
		ContactInfo:   contactInfo,
	}
}
