package guard

import "runtime"

// systemDenyPaths returns the built-in protected paths for the current
// operating system. Removing any of these, or a directory containing
// one, would be catastrophic regardless of the declared root.
func systemDenyPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\`,
			`C:\Windows`,
			`C:\Program Files`,
			`C:\Program Files (x86)`,
			`C:\ProgramData`,
		}
	case "darwin":
		return []string{
			"/",
			"/System",
			"/Library",
			"/Applications",
			"/usr",
			"/bin",
			"/sbin",
			"/etc",
			"/var",
			"/private",
		}
	default:
		return []string{
			"/",
			"/usr",
			"/bin",
			"/sbin",
			"/etc",
			"/var",
			"/boot",
			"/lib",
			"/opt",
			"/srv",
		}
	}
}
