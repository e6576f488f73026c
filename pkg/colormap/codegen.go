package colormap

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Language is a code generation target.
type Language string

const (
	LangGo     Language = "Go"
	LangCxx    Language = "Cxx"
	LangPython Language = "Python"
)

var langAliases = map[string]Language{
	"go":     LangGo,
	"golang": LangGo,
	"cxx":    LangCxx,
	"cpp":    LangCxx,
	"c++":    LangCxx,
	"python": LangPython,
	"py":     LangPython,
}

// Languages returns the supported targets, sorted.
func Languages() []string {
	return []string{string(LangCxx), string(LangGo), string(LangPython)}
}

// ParseLanguage resolves a target name or alias, ignoring case.
func ParseLanguage(s string) (Language, error) {
	if l, ok := langAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported,
		"the language %s is not available, choose one of these: %s", s, strings.Join(Languages(), ", "))
}

type genPoint struct {
	X, A, B, C string
}

type genData struct {
	Name, Creator, Source string
	Interpolation         string
	Space                 string
	Log10                 bool
	HSV                   bool
	Points                []genPoint
	NaN, Above, Below     string
	TableSize             int
	Discretize            bool
	// target specific enum spellings
	InterpEnum string
}

var cxxSpaces = map[Interpolation]string{
	InterpRGB:       "RGB",
	InterpHSV:       "HSV",
	InterpLab:       "Lab",
	InterpCIEDE2000: "LabCIEDE2000",
	InterpDiverging: "Diverging",
	InterpStep:      "Step",
}

var goInterps = map[Interpolation]string{
	InterpRGB:       "InterpRGB",
	InterpHSV:       "InterpHSV",
	InterpLab:       "InterpLab",
	InterpCIEDE2000: "InterpCIEDE2000",
	InterpDiverging: "InterpDiverging",
	InterpStep:      "InterpStep",
}

const goTemplate = `// {{with .Name}}name: {{.}}, {{end}}{{with .Creator}}creator: {{.}}{{end}}
// interpolation: {{.Interpolation}}, space: {{.Space}}, file name: {{.Source}}
func getCTF() (*colormap.CTF, error) {
	return colormap.New(colormap.Spec{
		Name:          {{printf "%q" .Name}},
{{- if .HSV}}
		Space:         colormap.PointsHSV,
{{- end}}
		Interpolation: colormap.{{.InterpEnum}},
{{- if .Log10}}
		Scale:         colormap.ScaleLog10,
{{- end}}
{{- with .NaN}}
		NaN:           &[3]float64{ {{.}} },
{{- end}}
{{- with .Above}}
		Above:         &[3]float64{ {{.}} },
{{- end}}
{{- with .Below}}
		Below:         &[3]float64{ {{.}} },
{{- end}}
		Discretize:    {{.Discretize}},
		TableSize:     {{.TableSize}},
		Points: []colormap.Point{
{{- range .Points}}
			{X: {{.X}}, V: [3]float64{ {{.A}}, {{.B}}, {{.C}} }, Opacity: 1},
{{- end}}
		},
	})
}
`

const cxxTemplate = `vtkNew<vtkDiscretizableColorTransferFunction> GetCTF()
{
  // {{with .Name}}name: {{.}}, {{end}}{{with .Creator}}creator: {{.}}{{end}}
  // interpolationspace: {{.Interpolation}}, space: {{.Space}}
  // file name: {{.Source}}

  vtkNew<vtkDiscretizableColorTransferFunction> ctf;

  ctf->SetColorSpaceTo{{.InterpEnum}}();
  ctf->SetScaleTo{{if .Log10}}Log10{{else}}Linear{{end}}();
{{- with .NaN}}
  ctf->SetNanColor({{.}});
{{- end}}
{{- with .Above}}
  ctf->SetAboveRangeColor({{.}});
  ctf->UseAboveRangeColorOn();
{{- end}}
{{- with .Below}}
  ctf->SetBelowRangeColor({{.}});
  ctf->UseBelowRangeColorOn();
{{- end}}
{{$hsv := .HSV}}
{{- range .Points}}
  ctf->Add{{if $hsv}}HSV{{else}}RGB{{end}}Point({{.X}}, {{.A}}, {{.B}}, {{.C}});
{{- end}}

  ctf->SetNumberOfValues({{.TableSize}});
  ctf->Discretize{{if .Discretize}}On{{else}}Off{{end}}();

  return ctf;
}
`

const pythonTemplate = `
def get_ctf():
    # {{with .Name}}name: {{.}}, {{end}}{{with .Creator}}creator: {{.}}{{end}}
    # interpolationspace: {{.Interpolation}}, space: {{.Space}}
    # file name: {{.Source}}

    ctf = vtkDiscretizableColorTransferFunction()

    ctf.SetColorSpaceTo{{.InterpEnum}}()
    ctf.SetScaleTo{{if .Log10}}Log10{{else}}Linear{{end}}()
{{- with .NaN}}
    ctf.SetNanColor({{.}})
{{- end}}
{{- with .Above}}
    ctf.SetAboveRangeColor({{.}})
    ctf.UseAboveRangeColorOn()
{{- end}}
{{- with .Below}}
    ctf.SetBelowRangeColor({{.}})
    ctf.UseBelowRangeColorOn()
{{- end}}
{{$hsv := .HSV}}
{{- range .Points}}
    ctf.Add{{if $hsv}}HSV{{else}}RGB{{end}}Point({{.X}}, {{.A}}, {{.B}}, {{.C}})
{{- end}}

    ctf.SetNumberOfValues({{.TableSize}})
    ctf.Discretize{{if .Discretize}}On{{else}}Off{{end}}()

    return ctf
`

var templates = map[Language]*template.Template{
	LangGo:     template.Must(template.New("go").Parse(goTemplate)),
	LangCxx:    template.Must(template.New("cxx").Parse(cxxTemplate)),
	LangPython: template.Must(template.New("python").Parse(pythonTemplate)),
}

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func joinRGB(v *[3]float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(v[0]) + ", " + fmtFloat(v[1]) + ", " + fmtFloat(v[2])
}

// Generate writes source code in lang that rebuilds c.
func Generate(w io.Writer, c *CTF, lang Language) error {
	tmpl, ok := templates[lang]
	if !ok {
		_, err := ParseLanguage(string(lang))
		return err
	}
	s := c.spec
	d := genData{
		Name:          s.Name,
		Creator:       s.Creator,
		Source:        s.Source,
		Interpolation: s.Interpolation.String(),
		Space:         s.Space.String(),
		Log10:         s.Scale == ScaleLog10,
		HSV:           s.Space == PointsHSV,
		NaN:           joinRGB(s.NaN),
		Above:         joinRGB(s.Above),
		Below:         joinRGB(s.Below),
		TableSize:     c.TableSize(),
		Discretize:    s.Discretize,
		InterpEnum:    cxxSpaces[s.Interpolation],
	}
	if lang == LangGo {
		d.InterpEnum = goInterps[s.Interpolation]
	}
	for _, p := range s.Points {
		d.Points = append(d.Points, genPoint{X: fmtFloat(p.X), A: fmtFloat(p.V[0]), B: fmtFloat(p.V[1]), C: fmtFloat(p.V[2])})
	}
	if err := tmpl.Execute(w, d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "generate %s", lang)
	}
	return nil
}

// LanguageAliases returns every accepted spelling of a target, sorted.
func LanguageAliases() []string {
	out := make([]string, 0, len(langAliases))
	for k := range langAliases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
