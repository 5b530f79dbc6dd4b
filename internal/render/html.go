package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/KaramelBytes/drawstats-cli/internal/draws"
)

var htmlTmpl = template.Must(template.New("report").Parse(`<div id="result">
  <p id="gameName"><strong>{{.GameName}}</strong></p>
  <p id="latestDate" style="color: red; font-size: 0.9rem;">Latest Drawing Date: {{.LatestDate}}</p>
{{- if .Schedule}}
  <p id="schedule" style="color: black; font-size: 0.7rem;">({{.Schedule}})</p>
{{- end}}
  <p><strong>Predicted Numbers for the Next Drawing:</strong></p>
  <p id="predictedNumbers">Numbers: {{.Numbers}}</p>
  <p id="predictedBonus">Bonus Ball: {{.Bonus}}</p>
  <p style="font-size: 0.9rem;"><strong>Probability Distribution:</strong></p>
  <ul id="mainProbabilities">
{{- range .Main}}
    <li data-value="{{.Value}}">{{.}}</li>
{{- end}}
  </ul>
  <ul id="bonusProbabilities">
{{- range .BonusProbs}}
    <li data-value="{{.Value}}">{{.}}</li>
{{- end}}
  </ul>
</div>
`))

type htmlView struct {
	GameName   string
	LatestDate string
	Schedule   string
	Numbers    string
	Bonus      string
	Main       []draws.ProbabilityEntry
	BonusProbs []draws.ProbabilityEntry
}

type htmlRenderer struct{}

// Render writes an HTML fragment; all report values are escaped.
func (htmlRenderer) Render(w io.Writer, r *draws.StatsReport) error {
	view := htmlView{
		GameName:   r.GameName,
		LatestDate: r.LatestDate,
		Schedule:   r.Schedule,
		Numbers:    draws.JoinNumbers(r.PredictedMainNumbers),
		Bonus:      draws.JoinNumbers(r.PredictedBonusNumbers),
		Main:       draws.ProbabilityEntries(r.MainNumberProbabilities),
		BonusProbs: draws.ProbabilityEntries(r.BonusProbabilities),
	}
	if err := htmlTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
