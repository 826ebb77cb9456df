// Package config loads reportassist settings.
//
// Settings come from built-in defaults, then an optional TOML file, then
// REPORTASSIST_* environment variables, and are validated last:
//
//	[logging]
//	level = "info"
//	file = "/tmp/reportassist.log"
//
//	[editor]
//	min_chars_for_suggest = 2
//	idle_delay_ms = 2000
//
//	[suggest]
//	enabled = true
//	backend = "http"
//	endpoint = "http://localhost:8080/suggest"
//	timeout_ms = 5000
//
//	# Used by the "llm" (OpenAI-compatible) and "anthropic" backends.
//	[suggest.llm]
//	base_url = "http://localhost:11434/v1/"
//	model = "llama3.1"
//
//	[library]
//	path = "~/.config/reportassist/library.toml"
//	watch = true
//
//	[study]
//	patient_sex = "F"
//	patient_age = 54
//	study_header = "CT ABDOMEN"
package config
