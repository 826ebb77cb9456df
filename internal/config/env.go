package config

import (
	"strconv"
	"strings"
)

// EnvPrefix starts every environment variable the configuration reads.
const EnvPrefix = "REPORTASSIST_"

// LookupFunc reads one environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

type envSetter func(c *Config, value string) error

// envMapping maps variable names, without the prefix, to settings.
var envMapping = map[string]envSetter{
	"LOG_LEVEL":          setString(func(c *Config) *string { return &c.Logging.Level }),
	"LOG_FILE":           setString(func(c *Config) *string { return &c.Logging.File }),
	"MIN_CHARS":          setInt(func(c *Config) *int { return &c.Editor.MinCharsForSuggest }),
	"IDLE_DELAY_MS":      setInt(func(c *Config) *int { return &c.Editor.IdleDelayMS }),
	"SUGGEST_ENABLED":    setBool(func(c *Config) *bool { return &c.Suggest.Enabled }),
	"SUGGEST_BACKEND":    setString(func(c *Config) *string { return &c.Suggest.Backend }),
	"SUGGEST_ENDPOINT":   setString(func(c *Config) *string { return &c.Suggest.Endpoint }),
	"SUGGEST_TIMEOUT_MS": setInt(func(c *Config) *int { return &c.Suggest.TimeoutMS }),
	"SUGGEST_RATE":       setFloat(func(c *Config) *float64 { return &c.Suggest.RatePerSecond }),
	"SUGGEST_BURST":      setInt(func(c *Config) *int { return &c.Suggest.Burst }),
	"LLM_BASE_URL":       setString(func(c *Config) *string { return &c.Suggest.LLM.BaseURL }),
	"LLM_MODEL":          setString(func(c *Config) *string { return &c.Suggest.LLM.Model }),
	"LLM_API_KEY":        setString(func(c *Config) *string { return &c.Suggest.LLM.APIKey }),
	"LIBRARY":            setString(func(c *Config) *string { return &c.Library.Path }),
	"LIBRARY_WATCH":      setBool(func(c *Config) *bool { return &c.Library.Watch }),
	"LUA_SCRIPT":         setString(func(c *Config) *string { return &c.Library.LuaScript }),
	"PATIENT_SEX":        setString(func(c *Config) *string { return &c.Study.PatientSex }),
	"PATIENT_AGE":        setInt(func(c *Config) *int { return &c.Study.PatientAge }),
	"STUDY_HEADER":       setString(func(c *Config) *string { return &c.Study.StudyHeader }),
	"STUDY_INFO":         setString(func(c *Config) *string { return &c.Study.StudyInfo }),
}

// EnvVars returns the names of all recognized environment variables.
func EnvVars() []string {
	out := make([]string, 0, len(envMapping))
	for name := range envMapping {
		out = append(out, EnvPrefix+name)
	}
	return out
}

// ApplyEnv overlays environment variables read through lookup. Empty
// values count as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for name, set := range envMapping {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			return &EnvError{Var: EnvPrefix + name, Value: v, Err: err}
		}
	}
	return nil
}

func setString(field func(*Config) *string) envSetter {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setInt(field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func setFloat(field func(*Config) *float64) envSetter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

// setBool accepts the spellings of strconv.ParseBool plus yes/no and
// on/off.
func setBool(field func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "yes", "on":
			*field(c) = true
			return nil
		case "no", "off":
			*field(c) = false
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}
