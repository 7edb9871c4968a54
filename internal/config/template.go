package config

func DefaultTemplate() string {
	return `bar_width: 24
indent: 2
filled_char: "█"
empty_char: "░"
spinner_frames: ["⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"]
render_interval_ms: 80
estimate_buffer: 0.15
`
}
