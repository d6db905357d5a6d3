// internal/workers/notification/send-match-digest/digest.go
package sendmatchdigest

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"jobmatch-workers/internal/matching"
	"jobmatch-workers/internal/models"
)

// smsLimit keeps a digest within a single concatenated SMS.
const smsLimit = 300

type digest struct {
	Title   string
	Items   []models.MatchResult
	Omitted int
}

var htmlDigest = template.Must(template.New("digest").Parse(`<html><body>
<h2>{{.Title}}</h2>
<ol>
{{- range .Items}}
<li><strong>{{.JobID}}</strong> ({{.MatchScore}}/100): {{.Explanation}}</li>
{{- end}}
</ol>
{{- if .Omitted}}
<p>and {{.Omitted}} more</p>
{{- end}}
</body></html>`))

// buildDigest keeps matches at or above threshold, in rank order, capped at maxItems.
func buildDigest(in *Input, threshold, maxItems int) digest {
	qualifying := matching.Rank(in.Matches, models.MatchOptions{
		MinScore: float64(threshold),
		Limit:    len(in.Matches) + 1,
	})

	name := in.PersonaName
	if name == "" {
		name = in.PersonaID
	}
	d := digest{Title: fmt.Sprintf("New job matches for %s", name)}
	if len(qualifying) > maxItems {
		d.Omitted = len(qualifying) - maxItems
		qualifying = qualifying[:maxItems]
	}
	d.Items = qualifying
	return d
}

func (d digest) subject() string {
	if len(d.Items)+d.Omitted == 1 {
		return d.Title + ": 1 job"
	}
	return fmt.Sprintf("%s: %d jobs", d.Title, len(d.Items)+d.Omitted)
}

func (d digest) text() string {
	var b strings.Builder
	b.WriteString(d.Title)
	b.WriteString("\n\n")
	for i, item := range d.Items {
		fmt.Fprintf(&b, "%d. %s (%d/100): %s\n", i+1, item.JobID, item.MatchScore, item.Explanation)
	}
	if d.Omitted > 0 {
		fmt.Fprintf(&b, "and %d more\n", d.Omitted)
	}
	return b.String()
}

func (d digest) html() (string, error) {
	var buf bytes.Buffer
	if err := htmlDigest.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// sms lists the top scores only; explanations do not fit.
func (d digest) sms() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d new matches.", len(d.Items)+d.Omitted)
	for _, item := range d.Items {
		entry := fmt.Sprintf(" %s %d%%", item.JobID, item.MatchScore)
		if b.Len()+len(entry) > smsLimit {
			break
		}
		b.WriteString(entry)
	}
	return b.String()
}
