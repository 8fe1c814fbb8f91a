package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/spf13/pflag"
)

// stageValue is a --stage flag accepting stage codes or column names.
type stageValue struct {
	stage *domain.Stage
}

var _ pflag.Value = (*stageValue)(nil)

func newStageValue(p *domain.Stage) *stageValue { return &stageValue{stage: p} }

func (v *stageValue) String() string {
	if v.stage == nil || *v.stage == "" {
		return ""
	}
	return strings.ToLower(v.stage.Label())
}

func (v *stageValue) Set(s string) error {
	st, err := domain.ParseStage(s)
	if err != nil {
		return err
	}
	*v.stage = st
	return nil
}

func (v *stageValue) Type() string { return "stage" }

// rygValue is a --ryg flag. An empty value is allowed where clearing makes
// sense.
type rygValue struct {
	ryg        *domain.RYG
	allowEmpty bool
}

var _ pflag.Value = (*rygValue)(nil)

func (v *rygValue) String() string { return string(*v.ryg) }

func (v *rygValue) Set(s string) error {
	if strings.TrimSpace(s) == "" && v.allowEmpty {
		*v.ryg = ""
		return nil
	}
	r, err := domain.ParseRYG(s)
	if err != nil {
		return err
	}
	*v.ryg = r
	return nil
}

func (v *rygValue) Type() string { return "ryg" }

// triBool is an optional boolean flag: unset, true or false.
type triBool struct {
	value *bool
}

var _ pflag.Value = (*triBool)(nil)

func (v *triBool) String() string {
	if v.value == nil {
		return ""
	}
	return strconv.FormatBool(*v.value)
}

func (v *triBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("expected true or false, got %q", s)
	}
	v.value = &b
	return nil
}

func (v *triBool) Type() string { return "bool" }

// triBoolVar registers v so that a bare "--name" means "--name=true".
func triBoolVar(fs *pflag.FlagSet, v *triBool, name, usage string) {
	fs.Var(v, name, usage)
	fs.Lookup(name).NoOptDefVal = "true"
}

const dateLayout = "2006-01-02"

// parseOptionalDate parses YYYY-MM-DD in local time. An empty string means
// "clear" and returns nil.
func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return &t, nil
}

// normalizeTags trims, lowercases and de-duplicates tags, dropping empties.
func normalizeTags(raw []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range raw {
		for _, t := range strings.Split(r, ",") {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
