package devserver

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shivam-bit/highlight/internal/types"
)

//go:embed fixture.yaml
var defaultFixtureYAML []byte

type Fixture struct {
	ProjectID         string           `yaml:"project_id"`
	Integrated        bool             `yaml:"integrated"`
	UnprocessedCount  int              `yaml:"unprocessed_count"`
	Billing           fixtureBilling   `yaml:"billing"`
	Sessions          []fixtureSession `yaml:"sessions"`
	SyntheticSessions int              `yaml:"synthetic_sessions"`
	ErrorFields       []fixtureField   `yaml:"error_fields"`
}

type fixtureBilling struct {
	Plan  string `yaml:"plan"`
	Meter int64  `yaml:"meter"`
}

type fixtureSession struct {
	SecureID     string            `yaml:"secure_id"`
	Identifier   string            `yaml:"identifier"`
	City         string            `yaml:"city"`
	Country      string            `yaml:"country"`
	Browser      string            `yaml:"browser"`
	OS           string            `yaml:"os"`
	ActiveLength string            `yaml:"active_length"`
	CreatedAt    time.Time         `yaml:"created_at"`
	Viewed       bool              `yaml:"viewed"`
	Starred      bool              `yaml:"starred"`
	Live         bool              `yaml:"live"`
	Fields       map[string]string `yaml:"fields"`
}

type fixtureField struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

func DefaultFixture() (*Fixture, error) {
	return ParseFixture(defaultFixtureYAML)
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixture(data)
}

func ParseFixture(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	fixture.ProjectID = strings.TrimSpace(fixture.ProjectID)
	if fixture.ProjectID == "" {
		return nil, errors.New("fixture project_id is required")
	}
	return &fixture, nil
}

func (f *Fixture) billingDetails() types.BillingDetails {
	plan := types.PlanType(strings.TrimSpace(f.Billing.Plan))
	if plan == "" {
		plan = types.PlanTypeFree
	}
	return types.BillingDetails{Plan: types.Plan{Type: plan}, Meter: f.Billing.Meter}
}

// buildSessions returns the fixture sessions newest first, with synthetic
// sessions appended after the hand-written ones.
func (f *Fixture) buildSessions() []*types.Session {
	out := make([]*types.Session, 0, len(f.Sessions)+f.SyntheticSessions)
	for i, raw := range f.Sessions {
		id := fmt.Sprintf("%d", i+1)
		secureID := strings.TrimSpace(raw.SecureID)
		if secureID == "" {
			secureID = "fixture-" + id
		}
		active, _ := time.ParseDuration(strings.TrimSpace(raw.ActiveLength))
		fields := map[string]string{}
		for key, value := range raw.Fields {
			fields[strings.ToLower(strings.TrimSpace(key))] = value
		}
		if raw.Browser != "" {
			fields["session_browser"] = raw.Browser
		}
		if raw.OS != "" {
			fields["session_os_name"] = raw.OS
		}
		if raw.Identifier != "" {
			fields["user_identifier"] = raw.Identifier
		}
		out = append(out, &types.Session{
			ID:           id,
			SecureID:     secureID,
			Identifier:   raw.Identifier,
			City:         raw.City,
			Country:      raw.Country,
			BrowserName:  raw.Browser,
			OSName:       raw.OS,
			ActiveLength: active.Milliseconds(),
			CreatedAt:    raw.CreatedAt,
			Viewed:       raw.Viewed,
			Starred:      raw.Starred,
			Processed:    !raw.Live,
			Fields:       fields,
		})
	}
	out = append(out, syntheticSessions(len(out), f.SyntheticSessions)...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

var (
	syntheticBrowsers = []string{"Chrome", "Firefox", "Safari", "Edge"}
	syntheticOSes     = []string{"Mac OS X", "Windows", "Linux", "iOS"}
	syntheticBase     = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
)

func syntheticSessions(offset, n int) []*types.Session {
	out := make([]*types.Session, 0, max(0, n))
	for i := 0; i < n; i++ {
		id := offset + i + 1
		browser := syntheticBrowsers[i%len(syntheticBrowsers)]
		osName := syntheticOSes[(i/2)%len(syntheticOSes)]
		out = append(out, &types.Session{
			ID:           fmt.Sprintf("%d", id),
			SecureID:     fmt.Sprintf("synthetic-%03d", id),
			BrowserName:  browser,
			OSName:       osName,
			ActiveLength: int64((i%9)+1) * 45_000,
			CreatedAt:    syntheticBase.Add(-time.Duration(i) * time.Hour),
			Viewed:       i%3 == 0,
			Processed:    i%7 != 0,
			Fields: map[string]string{
				"session_browser": browser,
				"session_os_name": osName,
			},
		})
	}
	return out
}

func (f *Fixture) buildFields(sessions []*types.Session) []types.QuickSearchOption {
	seen := map[types.QuickSearchOption]struct{}{}
	out := make([]types.QuickSearchOption, 0)
	add := func(opt types.QuickSearchOption) {
		if opt.Value == "" {
			return
		}
		if _, ok := seen[opt]; ok {
			return
		}
		seen[opt] = struct{}{}
		out = append(out, opt)
	}
	for _, session := range sessions {
		for key, value := range session.Fields {
			fieldType, name, ok := strings.Cut(key, "_")
			if !ok {
				continue
			}
			add(types.QuickSearchOption{Type: fieldType, Name: name, Value: value})
		}
	}
	for _, field := range f.ErrorFields {
		add(types.QuickSearchOption{Type: errorFieldType, Name: field.Name, Value: field.Value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Value < out[j].Value
	})
	return out
}
