package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/valyala/fasttemplate"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-cli/internal/weather"
)

//go:embed locales/*.json
var embedded embed.FS

// FallbackLanguage is used when no catalog exists for the requested language.
const FallbackLanguage = "en"

const (
	groupInfo   = "weather-info"
	groupErrors = "weather-errors"

	keyCityNotFound = "city-not-found"
	keyGenericError = "generic-error"
)

// InfoKey names one line of the weather report.
type InfoKey string

const (
	InfoLocation      InfoKey = "location"
	InfoLocaltime     InfoKey = "localtime"
	InfoTemperature   InfoKey = "temperature"
	InfoCondition     InfoKey = "condition"
	InfoHumidity      InfoKey = "humidity"
	InfoPressure      InfoKey = "pressure"
	InfoWind          InfoKey = "wind"
	InfoPrecipitation InfoKey = "precipitation"
	InfoUV            InfoKey = "uv"
)

// InfoKeys is the order report lines are printed in.
var InfoKeys = []InfoKey{
	InfoLocation,
	InfoLocaltime,
	InfoTemperature,
	InfoCondition,
	InfoHumidity,
	InfoPressure,
	InfoWind,
	InfoPrecipitation,
	InfoUV,
}

// Catalog holds compiled message templates for one language. It is immutable
// once loaded.
type Catalog struct {
	Lang string

	info         map[InfoKey]*fasttemplate.Template
	cityNotFound *fasttemplate.Template
	genericError *fasttemplate.Template
}

// Load resolves lang to a catalog file, trying LocalesDir before the embedded
// copies: exact name, then base language (pt-BR -> pt), then English.
// fellBack reports that English was used instead of lang.
func Load(dir, lang string) (cat *Catalog, fellBack bool, err error) {
	candidates := []string{lang}
	if base := baseLanguage(lang); base != "" && base != lang {
		candidates = append(candidates, base)
	}

	for _, name := range candidates {
		data, ok, err := read(dir, name)
		if err != nil {
			return nil, false, err
		}
		if ok {
			cat, err := Parse(name, data)
			return cat, false, err
		}
	}

	data, ok, err := read(dir, FallbackLanguage)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, fmt.Errorf("no translation file for %q or %q", lang, FallbackLanguage)
	}
	cat, err = Parse(FallbackLanguage, data)
	return cat, true, err
}

func read(dir, name string) ([]byte, bool, error) {
	file := name + ".json"
	if name == "" || !fs.ValidPath(file) {
		return nil, false, nil
	}

	if dir != "" {
		data, err := fs.ReadFile(os.DirFS(dir), file)
		if err == nil {
			return data, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("read translation file %s: %w", file, err)
		}
	}

	data, err := fs.ReadFile(embedded, "locales/"+file)
	if err != nil {
		return nil, false, nil
	}
	return data, true, nil
}

func baseLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

// Parse compiles a catalog file and checks it is complete: every report line
// and error message must exist and reference only known placeholders.
func Parse(lang string, data []byte) (*Catalog, error) {
	var groups map[string]map[string]string
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("translation file %s.json: %w", lang, err)
	}

	cat := &Catalog{
		Lang: lang,
		info: make(map[InfoKey]*fasttemplate.Template, len(InfoKeys)),
	}

	for _, key := range InfoKeys {
		t, err := compile(lang, groups, groupInfo, string(key), weather.ReportFields)
		if err != nil {
			return nil, err
		}
		cat.info[key] = t
	}

	var err error
	if cat.cityNotFound, err = compile(lang, groups, groupErrors, keyCityNotFound, []string{"city"}); err != nil {
		return nil, err
	}
	if cat.genericError, err = compile(lang, groups, groupErrors, keyGenericError, []string{"status_code"}); err != nil {
		return nil, err
	}

	return cat, nil
}

func compile(lang string, groups map[string]map[string]string, group, key string, allowed []string) (*fasttemplate.Template, error) {
	src, ok := groups[group][key]
	if !ok {
		return nil, fmt.Errorf("translation file %s.json: missing %s.%s", lang, group, key)
	}

	t, err := fasttemplate.NewTemplate(src, "{", "}")
	if err != nil {
		return nil, fmt.Errorf("translation file %s.json: %s.%s: %w", lang, group, key, err)
	}

	known := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		known[name] = true
	}
	var unknown string
	t.ExecuteFuncString(func(_ io.Writer, tag string) (int, error) {
		if !known[tag] && unknown == "" {
			unknown = tag
		}
		return 0, nil
	})
	if unknown != "" {
		return nil, fmt.Errorf("translation file %s.json: %s.%s: unknown placeholder {%s}", lang, group, key, unknown)
	}

	return t, nil
}

func render(t *fasttemplate.Template, values map[string]string) string {
	return t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		return io.WriteString(w, values[tag])
	})
}

// Info formats one report line.
func (c *Catalog) Info(key InfoKey, r weather.Report) string {
	t, ok := c.info[key]
	if !ok {
		return ""
	}
	return render(t, r.Fields())
}

// Lines formats every report line in InfoKeys order.
func (c *Catalog) Lines(r weather.Report) []string {
	fields := r.Fields()
	lines := make([]string, 0, len(InfoKeys))
	for _, key := range InfoKeys {
		lines = append(lines, render(c.info[key], fields))
	}
	return lines
}

func (c *Catalog) CityNotFound(city string) string {
	return render(c.cityNotFound, map[string]string{"city": city})
}

func (c *Catalog) GenericError(statusCode int) string {
	return render(c.genericError, map[string]string{"status_code": strconv.Itoa(statusCode)})
}

// ErrorMessage renders the user-facing line for an error returned by
// weather.Service.Current.
func (c *Catalog) ErrorMessage(err error) string {
	var unitErr *weather.InvalidUnitError
	if errors.As(err, &unitErr) {
		return weather.InvalidUnitMessage
	}
	if errors.Is(err, weather.ErrEmptyCity) {
		return err.Error()
	}
	var notFound *weather.LocationNotFoundError
	if errors.As(err, &notFound) {
		return c.CityNotFound(notFound.City)
	}
	return c.GenericError(weather.StatusCode(err))
}
