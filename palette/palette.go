// Package palette holds the static color tables used by the chart
// renderer. It is configuration data, not logic. Color values are RGB
// hex strings without a leading '#'.
package palette

// Colors maps well-known language names to their brand colors.
var Colors = map[string]string{
	"Python":           "3776AB",
	"JavaScript":       "F7DF1E",
	"TypeScript":       "3178C6",
	"Java":             "ED8B00",
	"C++":              "00599C",
	"C":                "A8B9CC",
	"C#":               "239120",
	"Go":               "00ADD8",
	"Rust":             "DEA584",
	"PHP":              "777BB4",
	"Ruby":             "CC342D",
	"Swift":            "FA7343",
	"Kotlin":           "7F52FF",
	"Dart":             "0175C2",
	"HTML":             "E34C26",
	"CSS":              "1572B6",
	"SCSS":             "CF649A",
	"Vue":              "4FC08D",
	"React":            "61DAFB",
	"Angular":          "DD0031",
	"Shell":            "89E051",
	"PowerShell":       "5391FE",
	"Dockerfile":       "2496ED",
	"YAML":             "CB171E",
	"JSON":             "000000",
	"XML":              "FF6600",
	"Jupyter Notebook": "DA5B0B",
	"R":                "276DC3",
	"MATLAB":           "E16737",
	"Other":            "A0A0A0",
}

// Fallback supplies colors for languages without a brand entry,
// indexed by chart position.
var Fallback = []string{
	"1F77B4", "AEC7E8", "FF7F0E", "FFBB78", "2CA02C",
	"98DF8A", "D62728", "FF9896", "9467BD", "C5B0D5",
	"8C564B", "C49C94", "E377C2", "F7B6D2", "7F7F7F",
	"C7C7C7", "BCBD22", "DBDB8D", "17BECF", "9EDAE5",
}

// Dashboard panel color pairs.
var (
	RepoTypeColors   = [2]string{"2E8B57", "FF6347"}
	SocialColors     = [2]string{"4169E1", "32CD32"}
	EngagementColors = [2]string{"FFD700", "FF69B4"}
)

// ColorFor returns the brand color for a language, or a fallback color
// chosen by chart position for languages without one.
func ColorFor(language string, position int) string {
	if c, ok := Colors[language]; ok {
		return c
	}
	if position < 0 {
		position = -position
	}
	return Fallback[position%len(Fallback)]
}
