// Package config loads strip's TOML configuration.
//
// Load reads ~/.config/strip/config.toml unless another path is given. A
// missing file is not an error: Default values are used. Empty fields fall
// back to their defaults, paths get tilde expansion, and durations use Go
// duration syntax ("5s", "10m"). Unknown url_style or random_mode values fail
// Load so a typo is reported at startup instead of silently ignored.
//
// Example config.toml:
//
//	base_url = "https://xkcd.com"
//	url_style = "xkcd"
//	random_mode = "move"
//	request_timeout = "10s"
//	refresh_every = "0s"
//	image_preview = true
//	log_path = "~/.local/share/strip/strip.log"
//	log_level = "info"
package config
