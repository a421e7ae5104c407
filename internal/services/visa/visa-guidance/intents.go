// internal/services/visa/visa-guidance/intents.go
package visaguidance

import (
	"fmt"
	"strings"

	"advisor-services/internal/dataset"
	"advisor-services/internal/resolver"
)

const (
	IntentSteps         resolver.Intent = "visa_steps"
	IntentDocuments     resolver.Intent = "visa_documents"
	IntentOverview      resolver.Intent = "visa_overview"
	IntentCountryPrompt resolver.Intent = "visa_country_prompt"
	IntentEmpty         resolver.Intent = "empty_query"
)

const EmptyQueryReply = "Sorry, I’m not sure how to answer that. Can you be more specific?"

// MatchCountry returns the first catalog entry named in q. "USA" also
// matches "us " and "u.s.".
func MatchCountry(q string, entries []dataset.VisaRequirement) (dataset.VisaRequirement, bool) {
	for _, e := range entries {
		key := strings.ToLower(e.Country)
		if key != "" && strings.Contains(q, key) {
			return e, true
		}
		if key == "usa" && (strings.Contains(q, "us ") || strings.Contains(q, "u.s.")) {
			return e, true
		}
	}
	return dataset.VisaRequirement{}, false
}

// newCountryTable answers queries that named a country. Handlers receive the
// matched entry as their only record.
func newCountryTable() *resolver.Table[dataset.VisaRequirement] {
	return &resolver.Table[dataset.VisaRequirement]{
		Rules: []resolver.Rule[dataset.VisaRequirement]{
			{
				Intent:  IntentSteps,
				Trigger: resolver.Contains("step", "process", "how to", "how do i"),
				Answer:  steps,
			},
			{
				Intent:  IntentDocuments,
				Trigger: resolver.Contains("document", "paper", "requirement"),
				Answer:  documents,
			},
			{
				Intent:  IntentOverview,
				Trigger: resolver.Always(),
				Answer:  overview,
			},
		},
	}
}

// newNoCountryTable answers queries that named no known country.
func newNoCountryTable(countries []string) *resolver.Table[dataset.VisaRequirement] {
	return &resolver.Table[dataset.VisaRequirement]{
		Rules: []resolver.Rule[dataset.VisaRequirement]{
			{
				Intent:  IntentCountryPrompt,
				Trigger: resolver.Contains("f-1", "student visa", "study permit"),
				Answer: func(string, []dataset.VisaRequirement) string {
					return fmt.Sprintf("Which country do you want to apply for? For example, 'US student visa' or "+
						"'Canada study permit'. Currently, I have data for %s.", joinCountries(countries, "and"))
				},
			},
		},
		Fallback: fmt.Sprintf("I'm not sure which country you're referring to. Currently, I can provide info on %s. "+
			"Please specify a country name.", joinCountries(countries, "or")),
	}
}

func steps(_ string, records []dataset.VisaRequirement) string {
	c := records[0]
	if len(c.Steps) == 0 {
		return fmt.Sprintf("Sorry, I don't have specific steps for %s.", c.Country)
	}
	lines := make([]string, len(c.Steps))
	for i, s := range c.Steps {
		lines[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return fmt.Sprintf("The process for a %s in %s typically includes:\n%s\nGood luck!",
		c.VisaType, c.Country, strings.Join(lines, "\n"))
}

func documents(_ string, records []dataset.VisaRequirement) string {
	c := records[0]
	if len(c.RequiredDocuments) == 0 {
		return fmt.Sprintf("Sorry, I don't have a document list for %s.", c.Country)
	}
	return fmt.Sprintf("For a %s in %s, common required documents include: %s.",
		c.VisaType, c.Country, strings.Join(c.RequiredDocuments, ", "))
}

func overview(_ string, records []dataset.VisaRequirement) string {
	c := records[0]
	return fmt.Sprintf("I see you're interested in %s. You might ask about the 'steps' or 'documents' needed for the %s process.",
		c.Country, c.VisaType)
}

// joinCountries renders "A", "A or B", "A, B or C".
func joinCountries(countries []string, conj string) string {
	switch len(countries) {
	case 0:
		return "no countries yet"
	case 1:
		return countries[0]
	default:
		head := strings.Join(countries[:len(countries)-1], ", ")
		return head + " " + conj + " " + countries[len(countries)-1]
	}
}
